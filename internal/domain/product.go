package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product represents a catalog product
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
	CategoryID  string         `json:"category_id,omitempty"`
	Stock       int            `json:"stock,omitempty"`
	Images      []ProductImage `json:"images,omitempty"`
}

// ProductImage is one entry in a product's image gallery
type ProductImage struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	Angle     string `json:"angle,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}
