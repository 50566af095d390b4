package domain

import "errors"

var ErrCategoryNotFound = errors.New("category not found")

// Category groups catalog products
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}
