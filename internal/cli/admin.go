package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"monoshop/internal/api"
)

func (a *App) runAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl admin products|product-images|categories|orders|users")
	}

	switch args[0] {
	case "products":
		return a.runAdminProducts(ctx, args[1:])
	case "product-images":
		return a.runAdminProductImages(ctx, args[1:])
	case "categories":
		return a.runAdminCategories(ctx, args[1:])
	case "orders":
		return a.runAdminOrders(ctx, args[1:])
	case "users":
		return a.runAdminUsers(ctx, args[1:])
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

func (a *App) runAdminProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl admin products create|update|delete")
	}

	switch args[0] {
	case "create", "update":
		fs := flag.NewFlagSet("admin products "+args[0], flag.ContinueOnError)
		name := fs.String("name", "", "product name")
		price := fs.Float64("price", 0, "product price")
		description := fs.String("description", "", "product description")
		categoryID := fs.String("category", "", "category ID")
		stock := fs.Int("stock", 0, "units in stock")
		imagePath := fs.String("image", "", "path to primary image file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		input := api.ProductInput{
			Name:        *name,
			Price:       *price,
			Description: *description,
			CategoryID:  *categoryID,
			Stock:       *stock,
		}
		if *imagePath != "" {
			upload, err := readImage(*imagePath)
			if err != nil {
				return err
			}
			input.Image = upload
		}

		if args[0] == "create" {
			product, err := a.Client.CreateProduct(ctx, input)
			if err != nil {
				return err
			}
			a.printf("created product %s\n", product.ID)
			return nil
		}

		if fs.NArg() < 1 {
			return fmt.Errorf("usage: shopctl admin products update [flags] <id>")
		}
		product, err := a.Client.UpdateProduct(ctx, fs.Arg(0), input)
		if err != nil {
			return err
		}
		a.printf("updated product %s\n", product.ID)
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl admin products delete <id>")
		}
		if err := a.Client.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		a.printf("deleted product %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown admin products subcommand %q", args[0])
	}
}

func (a *App) runAdminProductImages(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl admin product-images list|add|update|replace|delete")
	}

	switch args[0] {
	case "list":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl admin product-images list <product-id>")
		}
		images, err := a.Client.ListProductImages(ctx, args[1])
		if err != nil {
			return err
		}
		for _, img := range images {
			primary := ""
			if img.IsPrimary {
				primary = "\tprimary"
			}
			a.printf("%s\t%s\t%s%s\n", img.ID, img.URL, img.Angle, primary)
		}
		return nil

	case "add":
		fs := flag.NewFlagSet("admin product-images add", flag.ContinueOnError)
		imagePath := fs.String("image", "", "path to image file")
		angle := fs.String("angle", "", "shot angle label")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 1 || *imagePath == "" {
			return fmt.Errorf("usage: shopctl admin product-images add --image <file> [--angle X] <product-id>")
		}
		upload, err := readImage(*imagePath)
		if err != nil {
			return err
		}
		img, err := a.Client.AddProductImage(ctx, fs.Arg(0), *upload, *angle)
		if err != nil {
			return err
		}
		a.printf("added image %s\n", img.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("admin product-images update", flag.ContinueOnError)
		altText := fs.String("alt", "", "alt text")
		angle := fs.String("angle", "", "shot angle label")
		primary := fs.Bool("primary", false, "mark as primary image")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 2 {
			return fmt.Errorf("usage: shopctl admin product-images update [flags] <product-id> <image-id>")
		}
		img, err := a.Client.UpdateProductImage(ctx, fs.Arg(0), fs.Arg(1), api.ProductImageUpdate{
			AltText:   *altText,
			Angle:     *angle,
			IsPrimary: *primary,
		})
		if err != nil {
			return err
		}
		a.printf("updated image %s\n", img.ID)
		return nil

	case "replace":
		fs := flag.NewFlagSet("admin product-images replace", flag.ContinueOnError)
		imagePath := fs.String("image", "", "path to replacement image file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 2 || *imagePath == "" {
			return fmt.Errorf("usage: shopctl admin product-images replace --image <file> <product-id> <image-id>")
		}
		upload, err := readImage(*imagePath)
		if err != nil {
			return err
		}
		img, err := a.Client.ReplaceProductImage(ctx, fs.Arg(0), fs.Arg(1), *upload)
		if err != nil {
			return err
		}
		a.printf("replaced image %s\n", img.ID)
		return nil

	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: shopctl admin product-images delete <product-id> <image-id>")
		}
		if err := a.Client.DeleteProductImage(ctx, args[1], args[2]); err != nil {
			return err
		}
		a.printf("deleted image %s\n", args[2])
		return nil

	default:
		return fmt.Errorf("unknown admin product-images subcommand %q", args[0])
	}
}

func (a *App) runAdminCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl admin categories create|update|delete")
	}

	switch args[0] {
	case "create", "update":
		fs := flag.NewFlagSet("admin categories "+args[0], flag.ContinueOnError)
		name := fs.String("name", "", "category name")
		slug := fs.String("slug", "", "URL slug")
		description := fs.String("description", "", "category description")
		imagePath := fs.String("image", "", "path to category image file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		input := api.CategoryInput{Name: *name, Slug: *slug, Description: *description}
		if *imagePath != "" {
			upload, err := readImage(*imagePath)
			if err != nil {
				return err
			}
			input.Image = upload
		}

		if args[0] == "create" {
			category, err := a.Client.CreateCategory(ctx, input)
			if err != nil {
				return err
			}
			a.printf("created category %s\n", category.ID)
			return nil
		}

		if fs.NArg() < 1 {
			return fmt.Errorf("usage: shopctl admin categories update [flags] <id>")
		}
		category, err := a.Client.UpdateCategory(ctx, fs.Arg(0), input)
		if err != nil {
			return err
		}
		a.printf("updated category %s\n", category.ID)
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl admin categories delete <id>")
		}
		if err := a.Client.DeleteCategory(ctx, args[1]); err != nil {
			return err
		}
		a.printf("deleted category %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown admin categories subcommand %q", args[0])
	}
}

func (a *App) runAdminOrders(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl admin orders list|show|update|delete")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("admin orders list", flag.ContinueOnError)
		from := fs.String("from", "", "start date (YYYY-MM-DD)")
		to := fs.String("to", "", "end date (YYYY-MM-DD)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		orders, err := a.Client.ListAllOrders(ctx, *from, *to)
		if err != nil {
			return err
		}
		for _, o := range orders {
			a.printf("%s\t%s\t%s\t%s\t%.2f\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.UserID, o.Status, o.TotalPrice)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl admin orders show <id>")
		}
		order, items, err := a.Client.GetOrderDetail(ctx, args[1])
		if err != nil {
			return err
		}
		a.printf("Order:   %s\n", order.ID)
		a.printf("Status:  %s\n", order.Status)
		a.printf("Payment: %s\n", order.PaymentMethod)
		a.printf("Ship to: %s, %s %s\n", order.ShippingAddress, order.City, order.Pincode)
		for _, line := range items {
			a.printf("  %s\t%s\tx%d\t%.2f\n", line.ProductID, line.Name, line.Quantity, line.Price*float64(line.Quantity))
		}
		a.printf("Total:   %.2f\n", order.TotalPrice)
		return nil

	case "update":
		fs := flag.NewFlagSet("admin orders update", flag.ContinueOnError)
		status := fs.String("status", "", "new status")
		address := fs.String("address", "", "new shipping address")
		city := fs.String("city", "", "new city")
		pincode := fs.String("pincode", "", "new postal code")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return fmt.Errorf("usage: shopctl admin orders update [flags] <id>")
		}
		order, err := a.Client.UpdateOrder(ctx, fs.Arg(0), api.OrderUpdate{
			Status:          *status,
			ShippingAddress: *address,
			City:            *city,
			Pincode:         *pincode,
		})
		if err != nil {
			return err
		}
		a.printf("order %s now %s\n", order.ID, order.Status)
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl admin orders delete <id>")
		}
		if err := a.Client.DeleteOrder(ctx, args[1]); err != nil {
			return err
		}
		a.printf("deleted order %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown admin orders subcommand %q", args[0])
	}
}

func (a *App) runAdminUsers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl admin users list|show")
	}

	switch args[0] {
	case "list":
		users, err := a.Client.ListAllUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			a.printf("%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl admin users show <id>")
		}
		user, orders, err := a.Client.GetUserDetail(ctx, args[1])
		if err != nil {
			return err
		}
		a.printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		a.printf("orders: %d\n", len(orders))
		for _, o := range orders {
			a.printf("  %s\t%s\t%.2f\n", o.ID, o.Status, o.TotalPrice)
		}
		return nil

	default:
		return fmt.Errorf("unknown admin users subcommand %q", args[0])
	}
}

func readImage(path string) (*api.ImageUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return &api.ImageUpload{Filename: filepath.Base(path), Data: data}, nil
}
