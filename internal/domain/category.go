package domain

// Category enumerates the storefront departments.
type Category int

const (
	CategoryGroceries Category = iota
	CategoryKitchenUtensils
	CategorySnacks
	CategoryStationery
	CategoryElectronics
	CategoryAppliances
	CategoryFashion
)

var categoryNames = [...]string{
	CategoryGroceries:       "Groceries",
	CategoryKitchenUtensils: "Kitchen Utensils",
	CategorySnacks:          "Snacks",
	CategoryStationery:      "Stationery",
	CategoryElectronics:     "Electronics",
	CategoryAppliances:      "Appliances",
	CategoryFashion:         "Fashion",
}

var categorySlugs = [...]string{
	CategoryGroceries:       "groceries",
	CategoryKitchenUtensils: "kitchen-utensils",
	CategorySnacks:          "snacks",
	CategoryStationery:      "stationery",
	CategoryElectronics:     "electronics",
	CategoryAppliances:      "appliances",
	CategoryFashion:         "fashion",
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// String returns the display name stored on products.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return ""
	}
	return categoryNames[c]
}

// Slug returns the route segment for the category.
func (c Category) Slug() string {
	if c < 0 || int(c) >= len(categorySlugs) {
		return ""
	}
	return categorySlugs[c]
}

// CategoryFromSlug resolves a route segment.
func CategoryFromSlug(slug string) (Category, bool) {
	for i, s := range categorySlugs {
		if s == slug {
			return Category(i), true
		}
	}
	return 0, false
}
