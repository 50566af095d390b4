package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"monoshop/internal/api"
	"monoshop/internal/cli"
	"monoshop/internal/config"
	"monoshop/internal/observability"
	"monoshop/internal/storage"
	"monoshop/internal/store"
)

func main() {
	// Load configuration first
	cfg := config.Load()

	// Initialize structured logging
	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	kv, err := storage.Open(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open local storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer kv.Close()

	// The token source closes over the auth store, which itself needs the
	// client; declare first, assign after.
	var auth *store.AuthStore
	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithTokenSource(tokenFunc(func() string {
			if auth == nil {
				return ""
			}
			return auth.Token()
		})),
	)
	auth = store.NewAuthStore(client, kv)
	cart := store.NewCartStore(client, kv, auth)
	wishlist := store.NewWishlistStore(client, kv, auth)

	// Login replaces local collections with the server's copies; register
	// before Load so a restored session triggers the same replace.
	auth.OnSessionChange(cart.SessionChanged)
	auth.OnSessionChange(wishlist.SessionChanged)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Restore persisted state: snapshots synchronously, session best-effort
	cart.Load(ctx)
	wishlist.Load(ctx)
	auth.Load(ctx)

	app := &cli.App{
		Client:   client,
		Auth:     auth,
		Cart:     cart,
		Wishlist: wishlist,
		Out:      os.Stdout,
	}

	runErr := app.Run(ctx, os.Args[1:])

	// Give fire-and-forget mirror calls a chance to land before exit
	app.Drain()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "shopctl: %v\n", runErr)
		os.Exit(1)
	}
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }
