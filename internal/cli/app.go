// Package cli implements the shopctl terminal console: catalog browsing,
// auth, cart and wishlist manipulation, checkout, and admin operations,
// all backed by the REST client and the local state stores.
package cli

import (
	"context"
	"fmt"
	"io"

	"monoshop/internal/api"
	"monoshop/internal/store"
)

// App wires the stores and the API client behind the subcommand dispatch.
// Output goes to Out so tests can capture it.
type App struct {
	Client   *api.Client
	Auth     *store.AuthStore
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Out      io.Writer
}

// Run dispatches args (without the program name) to a subcommand. Returned
// errors are user-facing: backend rejections carry the backend's message
// verbatim.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.runProducts(ctx, rest)
	case "categories":
		return a.runCategories(ctx, rest)
	case "auth":
		return a.runAuth(ctx, rest)
	case "cart":
		return a.runCart(ctx, rest)
	case "wishlist":
		return a.runWishlist(ctx, rest)
	case "checkout":
		return a.runCheckout(ctx, rest)
	case "orders":
		return a.runOrders(ctx, rest)
	case "admin":
		return a.runAdmin(ctx, rest)
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// Drain blocks until background mirror syncs finish. Called before process
// exit so fire-and-forget calls get a chance to land.
func (a *App) Drain() {
	a.Cart.Wait()
	a.Wishlist.Wait()
}

func (a *App) printUsage() {
	fmt.Fprint(a.Out, `usage: shopctl <command> [arguments]

commands:
  products   list|show          browse the catalog
  categories list|show          browse categories
  auth       signup|login|logout|whoami
  cart       show|add|remove|set-qty|clear
  wishlist   show|add|remove|clear
  checkout   place an order (--method cod|razorpay)
  orders     list               your order history
  admin      products|product-images|categories|orders|users
`)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
