package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
)

func (a *App) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl cart show|add|remove|set-qty|clear")
	}

	switch args[0] {
	case "show":
		items := a.Cart.Items()
		if len(items) == 0 {
			a.printf("cart is empty\n")
			return nil
		}
		for _, line := range items {
			a.printf("%s\t%s\tx%d\t%.2f\n", line.ProductID, line.Name, line.Quantity, line.Price*float64(line.Quantity))
		}
		a.printf("total: %.2f (%d items)\n", a.Cart.TotalPrice(), a.Cart.TotalItemCount())
		return nil

	case "add":
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		qty := fs.Int("qty", 1, "quantity to add")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return fmt.Errorf("usage: shopctl cart add [--qty N] <product-id>")
		}
		if *qty < 1 {
			*qty = 1
		}
		product, err := a.Client.GetProduct(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		a.Cart.AddItem(ctx, *product, *qty)
		a.printf("added %s x%d\n", product.Name, *qty)
		return nil

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl cart remove <product-id>")
		}
		a.Cart.RemoveItem(ctx, args[1])
		a.printf("removed %s\n", args[1])
		return nil

	case "set-qty":
		if len(args) < 3 {
			return fmt.Errorf("usage: shopctl cart set-qty <product-id> <quantity>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		if qty < 1 {
			qty = 1
		}
		a.Cart.SetQuantity(ctx, args[1], qty)
		a.printf("quantity set\n")
		return nil

	case "clear":
		a.Cart.Clear(ctx)
		a.printf("cart cleared\n")
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}
