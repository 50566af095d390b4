package api

import (
	"context"
	"net/http"
	"net/url"

	"monoshop/internal/domain"
)

// ProductImageUpdate edits gallery image metadata without re-uploading the file
type ProductImageUpdate struct {
	AltText   string `json:"alt_text,omitempty"`
	Angle     string `json:"angle,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// ListProductImages fetches a product's image gallery
func (c *Client) ListProductImages(ctx context.Context, productID string) ([]domain.ProductImage, error) {
	var images []domain.ProductImage
	if err := c.do(ctx, http.MethodGet, imagesPath(productID), nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// AddProductImage uploads a new gallery image
func (c *Client) AddProductImage(ctx context.Context, productID string, img ImageUpload, angle string) (*domain.ProductImage, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}

	form := newMultipartForm()
	form.addFile("image", img.Filename, img.Data)
	form.setField("angle", angle)

	var created domain.ProductImage
	if err := c.doMultipart(ctx, http.MethodPost, imagesPath(productID), form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProductImage updates gallery image metadata
func (c *Client) UpdateProductImage(ctx context.Context, productID, imageID string, update ProductImageUpdate) (*domain.ProductImage, error) {
	var updated domain.ProductImage
	if err := c.do(ctx, http.MethodPut, imagePath(productID, imageID), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ReplaceProductImage swaps the stored file behind an existing gallery entry
func (c *Client) ReplaceProductImage(ctx context.Context, productID, imageID string, img ImageUpload) (*domain.ProductImage, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}

	form := newMultipartForm()
	form.addFile("image", img.Filename, img.Data)

	var replaced domain.ProductImage
	if err := c.doMultipart(ctx, http.MethodPut, imagePath(productID, imageID)+"/replace", form, &replaced); err != nil {
		return nil, err
	}
	return &replaced, nil
}

// DeleteProductImage removes a gallery image
func (c *Client) DeleteProductImage(ctx context.Context, productID, imageID string) error {
	return c.do(ctx, http.MethodDelete, imagePath(productID, imageID), nil, nil)
}

func imagesPath(productID string) string {
	return "/products/" + url.PathEscape(productID) + "/images"
}

func imagePath(productID, imageID string) string {
	return imagesPath(productID) + "/" + url.PathEscape(imageID)
}
