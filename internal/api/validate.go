package api

import (
	"fmt"
	"path/filepath"
	"strings"

	"monoshop/internal/domain"
)

// MaxImageBytes caps uploads before any network call is made
const MaxImageBytes = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ImageUpload is an in-memory image file destined for a multipart request
type ImageUpload struct {
	Filename string
	Data     []byte
}

func validateImage(img ImageUpload) error {
	if img.Filename == "" {
		return fmt.Errorf("%w: image filename is required", domain.ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, ext)
	}
	if len(img.Data) == 0 {
		return fmt.Errorf("%w: image %q is empty", domain.ErrInvalidInput, img.Filename)
	}
	if len(img.Data) > MaxImageBytes {
		return fmt.Errorf("%w: image %q exceeds %d bytes", domain.ErrInvalidInput, img.Filename, MaxImageBytes)
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: product price must be positive", domain.ErrInvalidInput)
	}
	if in.Image != nil {
		if err := validateImage(*in.Image); err != nil {
			return err
		}
	}
	for _, extra := range in.AdditionalImages {
		if err := validateImage(extra.Image); err != nil {
			return err
		}
	}
	return nil
}

func validateCategoryInput(in CategoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	if in.Image != nil {
		if err := validateImage(*in.Image); err != nil {
			return err
		}
	}
	return nil
}
