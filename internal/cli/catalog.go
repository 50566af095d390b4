package cli

import (
	"context"
	"fmt"
)

func (a *App) runProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl products list|show <id>")
	}

	switch args[0] {
	case "list":
		products, err := a.Client.ListProducts(ctx)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			a.printf("no products\n")
			return nil
		}
		for _, p := range products {
			a.printf("%s\t%s\t%.2f\n", p.ID, p.Name, p.Price)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl products show <id>")
		}
		p, err := a.Client.GetProduct(ctx, args[1])
		if err != nil {
			return err
		}
		a.printf("ID:          %s\n", p.ID)
		a.printf("Name:        %s\n", p.Name)
		a.printf("Price:       %.2f\n", p.Price)
		if p.Description != "" {
			a.printf("Description: %s\n", p.Description)
		}
		if p.CategoryID != "" {
			a.printf("Category:    %s\n", p.CategoryID)
		}
		for _, img := range p.Images {
			a.printf("Image:       %s (%s)\n", img.URL, img.Angle)
		}
		return nil

	default:
		return fmt.Errorf("unknown products subcommand %q", args[0])
	}
}

func (a *App) runCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl categories list|show <id-or-slug>")
	}

	switch args[0] {
	case "list":
		categories, err := a.Client.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			a.printf("%s\t%s\t%s\n", c.ID, c.Slug, c.Name)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl categories show <id-or-slug>")
		}
		// Try by ID first, fall back to slug lookup
		c, err := a.Client.GetCategory(ctx, args[1])
		if err != nil {
			c, err = a.Client.GetCategoryBySlug(ctx, args[1])
		}
		if err != nil {
			return err
		}
		a.printf("ID:   %s\n", c.ID)
		a.printf("Name: %s\n", c.Name)
		a.printf("Slug: %s\n", c.Slug)
		if c.Description != "" {
			a.printf("Description: %s\n", c.Description)
		}
		return nil

	default:
		return fmt.Errorf("unknown categories subcommand %q", args[0])
	}
}
