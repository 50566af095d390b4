package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"monoshop/internal/domain"
)

// ProductInput is the payload for product create/update. When any image is
// attached the request is sent as multipart/form-data, otherwise as JSON.
type ProductInput struct {
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Description      string  `json:"description,omitempty"`
	CategoryID       string  `json:"category_id,omitempty"`
	Stock            int     `json:"stock,omitempty"`
	Image            *ImageUpload
	AdditionalImages []AngledImage
}

// AngledImage is a gallery image tagged with the angle it was shot from
type AngledImage struct {
	Image ImageUpload
	Angle string
}

// ListProducts fetches the full catalog
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product with its image gallery
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product, uploading attached images as multipart
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	var product domain.Product
	if in.Image == nil && len(in.AdditionalImages) == 0 {
		if err := c.do(ctx, http.MethodPost, "/products", in, &product); err != nil {
			return nil, err
		}
		return &product, nil
	}

	if err := c.doMultipart(ctx, http.MethodPost, "/products", productForm(in), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a product by ID
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	path := "/products/" + url.PathEscape(id)
	var product domain.Product
	if in.Image == nil && len(in.AdditionalImages) == 0 {
		if err := c.do(ctx, http.MethodPut, path, in, &product); err != nil {
			return nil, err
		}
		return &product, nil
	}

	if err := c.doMultipart(ctx, http.MethodPut, path, productForm(in), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product by ID
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func productForm(in ProductInput) *multipartForm {
	form := newMultipartForm()
	form.setField("name", in.Name)
	form.setField("price", strconv.FormatFloat(in.Price, 'f', -1, 64))
	form.setField("description", in.Description)
	form.setField("category_id", in.CategoryID)
	if in.Stock > 0 {
		form.setField("stock", strconv.Itoa(in.Stock))
	}
	if in.Image != nil {
		form.addFile("image", in.Image.Filename, in.Image.Data)
	}
	for i, extra := range in.AdditionalImages {
		form.addFile("additional_images", extra.Image.Filename, extra.Image.Data)
		form.setField(fmt.Sprintf("angle_%d", i), extra.Angle)
	}
	return form
}
