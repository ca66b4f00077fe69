package dto

import "github.com/spec-kit/storefront-service/internal/service"

// ProductRequest is used for create and partial update; absent fields stay nil.
type ProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// ToInput converts the request into service input.
func (r ProductRequest) ToInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
	}
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
