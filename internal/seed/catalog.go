package seed

import "github.com/spec-kit/storefront-service/internal/domain"

type sampleProduct struct {
	name        string
	price       float64
	description string
	image       string
}

// sampleCatalog is the starter inventory inserted into an empty store.
var sampleCatalog = map[domain.Category][]sampleProduct{
	domain.CategoryGroceries: {
		{"Organic Bananas", 0.79, "Bunch of ripe organic bananas, priced per pound.", "images/groceries/bananas.jpg"},
		{"Whole Milk (1 gal)", 3.49, "Fresh pasteurized whole milk.", "images/groceries/milk.jpg"},
		{"Free-Range Eggs (12)", 4.29, "A dozen large brown free-range eggs.", "images/groceries/eggs.jpg"},
		{"Sourdough Bread", 5.99, "Naturally leavened loaf baked daily.", "images/groceries/sourdough.jpg"},
		{"Basmati Rice (2 lb)", 3.99, "Long-grain aromatic basmati rice.", "images/groceries/rice.jpg"},
	},
	domain.CategoryKitchenUtensils: {
		{"Chef's Knife 8\"", 39.99, "High-carbon stainless steel chef's knife.", "images/kitchen/chefs-knife.jpg"},
		{"Non-Stick Frying Pan", 29.99, "10-inch pan with ceramic non-stick coating.", "images/kitchen/frying-pan.jpg"},
		{"Silicone Spatula Set", 12.49, "Heat-resistant spatulas in three sizes.", "images/kitchen/spatulas.jpg"},
		{"Bamboo Cutting Board", 18.99, "Large reversible bamboo cutting board.", "images/kitchen/cutting-board.jpg"},
		{"Stainless Steel Whisk", 7.99, "Balloon whisk for batters and sauces.", "images/kitchen/whisk.jpg"},
	},
	domain.CategorySnacks: {
		{"Sea Salt Potato Chips", 2.99, "Kettle-cooked chips with sea salt.", "images/snacks/chips.jpg"},
		{"Dark Chocolate Bar", 3.49, "70% cacao single-origin chocolate.", "images/snacks/chocolate.jpg"},
		{"Trail Mix", 5.49, "Nuts, raisins and chocolate pieces.", "images/snacks/trail-mix.jpg"},
		{"Butter Popcorn", 2.49, "Microwave popcorn, three-pack.", "images/snacks/popcorn.jpg"},
		{"Granola Bars (6)", 4.99, "Oat and honey granola bars.", "images/snacks/granola.jpg"},
	},
	domain.CategoryStationery: {
		{"Spiral Notebook", 3.99, "College-ruled notebook, 100 sheets.", "images/stationery/notebook.jpg"},
		{"Gel Pens (10)", 8.99, "Assorted colour gel ink pens.", "images/stationery/gel-pens.jpg"},
		{"Sticky Notes", 4.49, "Pack of six pastel sticky note pads.", "images/stationery/sticky-notes.jpg"},
		{"Highlighter Set", 5.99, "Five chisel-tip highlighters.", "images/stationery/highlighters.jpg"},
		{"Desk Organizer", 14.99, "Mesh organizer with five compartments.", "images/stationery/organizer.jpg"},
	},
	domain.CategoryElectronics: {
		{"Wireless Earbuds", 59.99, "Bluetooth earbuds with charging case.", "images/electronics/earbuds.jpg"},
		{"USB-C Charger 30W", 24.99, "Fast charger for phones and tablets.", "images/electronics/charger.jpg"},
		{"Portable Power Bank", 34.99, "10000 mAh battery with dual outputs.", "images/electronics/power-bank.jpg"},
		{"Bluetooth Speaker", 45.99, "Water-resistant portable speaker.", "images/electronics/speaker.jpg"},
		{"Wireless Mouse", 19.99, "Ergonomic mouse with silent clicks.", "images/electronics/mouse.jpg"},
	},
	domain.CategoryAppliances: {
		{"Electric Kettle", 29.99, "1.7 L kettle with auto shut-off.", "images/appliances/kettle.jpg"},
		{"Toaster (2-Slice)", 24.99, "Wide-slot toaster with six settings.", "images/appliances/toaster.jpg"},
		{"Blender", 49.99, "600 W countertop blender.", "images/appliances/blender.jpg"},
		{"Coffee Maker", 69.99, "12-cup programmable drip coffee maker.", "images/appliances/coffee-maker.jpg"},
		{"Air Fryer", 89.99, "4 qt air fryer with digital controls.", "images/appliances/air-fryer.jpg"},
	},
	domain.CategoryFashion: {
		{"Cotton T-Shirt", 14.99, "Crew-neck tee in organic cotton.", "images/fashion/t-shirt.jpg"},
		{"Denim Jeans", 49.99, "Slim-fit stretch denim.", "images/fashion/jeans.jpg"},
		{"Canvas Sneakers", 39.99, "Low-top everyday sneakers.", "images/fashion/sneakers.jpg"},
		{"Wool Beanie", 12.99, "Ribbed knit beanie.", "images/fashion/beanie.jpg"},
		{"Leather Belt", 24.99, "Full-grain leather belt with metal buckle.", "images/fashion/belt.jpg"},
	},
}

// SampleProducts returns the starter catalog in category display order.
func SampleProducts() []domain.Product {
	products := make([]domain.Product, 0, 35)
	for _, category := range domain.Categories() {
		for _, sample := range sampleCatalog[category] {
			products = append(products, domain.Product{
				Name:        sample.name,
				Category:    category.String(),
				Price:       sample.price,
				Description: sample.description,
				Image:       sample.image,
			})
		}
	}
	return products
}
