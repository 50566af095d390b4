package cli

import (
	"context"
	"fmt"
)

func (a *App) runWishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl wishlist show|add|remove|clear")
	}

	switch args[0] {
	case "show":
		entries := a.Wishlist.Entries()
		if len(entries) == 0 {
			a.printf("wishlist is empty\n")
			return nil
		}
		for _, e := range entries {
			a.printf("%s\t%s\t%.2f\t%s\n", e.ProductID, e.Name, e.Price, e.AddedAt.Format("2006-01-02"))
		}
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl wishlist add <product-id>")
		}
		product, err := a.Client.GetProduct(ctx, args[1])
		if err != nil {
			return err
		}
		a.Wishlist.Add(ctx, *product)
		a.printf("added %s\n", product.Name)
		return nil

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl wishlist remove <product-id>")
		}
		a.Wishlist.Remove(ctx, args[1])
		a.printf("removed %s\n", args[1])
		return nil

	case "clear":
		a.Wishlist.Clear(ctx)
		a.printf("wishlist cleared\n")
		return nil

	default:
		return fmt.Errorf("unknown wishlist subcommand %q", args[0])
	}
}
