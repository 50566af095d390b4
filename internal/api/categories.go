package api

import (
	"context"
	"net/http"
	"net/url"

	"monoshop/internal/domain"
)

// CategoryInput is the payload for category create/update. Create and
// update are bearer-token protected on the backend.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Image       *ImageUpload
}

// ListCategories fetches all categories
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a category by ID
func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug fetches a category by its URL slug
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/slug/"+url.PathEscape(slug), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a category (admin only)
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := validateCategoryInput(in); err != nil {
		return nil, err
	}

	var category domain.Category
	if in.Image == nil {
		if err := c.do(ctx, http.MethodPost, "/categories", in, &category); err != nil {
			return nil, err
		}
		return &category, nil
	}

	if err := c.doMultipart(ctx, http.MethodPost, "/categories", categoryForm(in), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category by ID (admin only)
func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	if err := validateCategoryInput(in); err != nil {
		return nil, err
	}

	path := "/categories/" + url.PathEscape(id)
	var category domain.Category
	if in.Image == nil {
		if err := c.do(ctx, http.MethodPut, path, in, &category); err != nil {
			return nil, err
		}
		return &category, nil
	}

	if err := c.doMultipart(ctx, http.MethodPut, path, categoryForm(in), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category by ID (admin only)
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

func categoryForm(in CategoryInput) *multipartForm {
	form := newMultipartForm()
	form.setField("name", in.Name)
	form.setField("slug", in.Slug)
	form.setField("description", in.Description)
	if in.Image != nil {
		form.addFile("image", in.Image.Filename, in.Image.Data)
	}
	return form
}
