package cli

import (
	"bytes"
	"context"
	"testing"

	"monoshop/internal/api"
	"monoshop/internal/domain"
	"monoshop/internal/storage"
	"monoshop/internal/store"
	"monoshop/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires a full console against the in-memory fake backend, the
// same way cmd/shopctl does in main
func newTestApp(t *testing.T) (*App, *testutil.FakeBackend, *bytes.Buffer) {
	t.Helper()

	fake, srv := testutil.StartServer(t)

	kv, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	var auth *store.AuthStore
	client := api.New(srv.URL, api.WithTokenSource(tokenFunc(func() string { return auth.Token() })))
	auth = store.NewAuthStore(client, kv)

	cart := store.NewCartStore(client, kv, auth)
	wishlist := store.NewWishlistStore(client, kv, auth)
	auth.OnSessionChange(cart.SessionChanged)
	auth.OnSessionChange(wishlist.SessionChanged)

	out := &bytes.Buffer{}
	app := &App{Client: client, Auth: auth, Cart: cart, Wishlist: wishlist, Out: out}
	return app, fake, out
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func TestApp_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Run(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestApp_ProductsList(t *testing.T) {
	app, fake, out := newTestApp(t)
	fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	require.NoError(t, app.Run(context.Background(), []string{"products", "list"}))
	assert.Contains(t, out.String(), "Mono Tee")
}

func TestApp_AuthLoginAndWhoami(t *testing.T) {
	app, fake, out := newTestApp(t)
	fake.SeedUser("Asha", "asha@example.com", "pw", "customer")

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"auth", "login", "--email", "asha@example.com", "--password", "pw"}))
	require.NoError(t, app.Run(ctx, []string{"auth", "whoami"}))
	assert.Contains(t, out.String(), "asha@example.com")

	require.NoError(t, app.Run(ctx, []string{"auth", "logout"}))
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"auth", "whoami"}))
	assert.Contains(t, out.String(), "not logged in")
}

func TestApp_AuthLoginBadPassword(t *testing.T) {
	app, fake, _ := newTestApp(t)
	fake.SeedUser("Asha", "asha@example.com", "pw", "customer")

	err := app.Run(context.Background(), []string{"auth", "login", "--email", "asha@example.com", "--password", "nope"})
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestApp_CartAddAndShow(t *testing.T) {
	app, fake, out := newTestApp(t)
	product := fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"cart", "add", "--qty", "2", product.ID}))
	require.NoError(t, app.Run(ctx, []string{"cart", "show"}))

	assert.Contains(t, out.String(), "Mono Tee")
	assert.Contains(t, out.String(), "total: 998.00 (2 items)")
}

func TestApp_CartAddUnknownProduct(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Run(context.Background(), []string{"cart", "add", "nope"})
	require.Error(t, err)
}

func TestApp_CartMirroredToBackendWhenLoggedIn(t *testing.T) {
	app, fake, _ := newTestApp(t)
	user, _ := fake.SeedUser("Asha", "asha@example.com", "pw", "customer")
	product := fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"auth", "login", "--email", "asha@example.com", "--password", "pw"}))
	require.NoError(t, app.Run(ctx, []string{"cart", "add", product.ID}))
	app.Drain()

	serverCart := fake.Cart(user.ID)
	require.Len(t, serverCart, 1)
	assert.Equal(t, product.ID, serverCart[0].ProductID)
}

func TestApp_LoginReplacesCartFromServer(t *testing.T) {
	app, fake, _ := newTestApp(t)
	user, _ := fake.SeedUser("Asha", "asha@example.com", "pw", "customer")
	local := fake.SeedProduct(domain.Product{Name: "Local pick", Price: 100})
	fake.SeedCart(user.ID, []domain.CartLine{{ProductID: "srv-1", Name: "Server pick", Price: 50, Quantity: 3}})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"cart", "add", local.ID}))
	require.NoError(t, app.Run(ctx, []string{"auth", "login", "--email", "asha@example.com", "--password", "pw"}))

	items := app.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "srv-1", items[0].ProductID, "server copy wins wholesale on login")
}

func TestApp_WishlistAddShowRemove(t *testing.T) {
	app, fake, out := newTestApp(t)
	product := fake.SeedProduct(domain.Product{Name: "Mono Cap", Price: 299})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"wishlist", "add", product.ID}))
	require.NoError(t, app.Run(ctx, []string{"wishlist", "show"}))
	assert.Contains(t, out.String(), "Mono Cap")

	require.NoError(t, app.Run(ctx, []string{"wishlist", "remove", product.ID}))
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"wishlist", "show"}))
	assert.Contains(t, out.String(), "wishlist is empty")
}

func TestApp_CheckoutCOD(t *testing.T) {
	app, fake, out := newTestApp(t)
	fake.SeedUser("Asha", "asha@example.com", "pw", "customer")
	product := fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"auth", "login", "--email", "asha@example.com", "--password", "pw"}))
	require.NoError(t, app.Run(ctx, []string{"cart", "add", product.ID}))
	require.NoError(t, app.Run(ctx, []string{
		"checkout", "--method", "cod",
		"--address", "1 Mono Lane", "--city", "Pune", "--pincode", "411001",
	}))

	assert.Contains(t, out.String(), "cash on delivery")
	assert.Zero(t, app.Cart.TotalItemCount(), "checkout clears the cart")

	orders := fake.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, domain.PaymentMethodCOD, orders[0].PaymentMethod)
	assert.Equal(t, "asha@example.com", orders[0].Email)
}

func TestApp_CheckoutEmptyCart(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Run(context.Background(), []string{
		"checkout", "--address", "1 Mono Lane", "--city", "Pune", "--pincode", "411001",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestApp_CheckoutMissingShipping(t *testing.T) {
	app, fake, _ := newTestApp(t)
	product := fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"cart", "add", product.ID}))

	err := app.Run(ctx, []string{"checkout", "--city", "Pune"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--address")
}

func TestApp_CheckoutRazorpayTwoPhase(t *testing.T) {
	app, fake, out := newTestApp(t)
	product := fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"cart", "add", "--qty", "2", product.ID}))

	require.NoError(t, app.Run(ctx, []string{
		"checkout", "--method", "razorpay",
		"--name", "Walk-in", "--email", "guest@example.com",
		"--address", "1 Mono Lane", "--city", "Pune", "--pincode", "411001",
	}))
	assert.Contains(t, out.String(), "99800 paise")
	assert.Equal(t, 2, app.Cart.TotalItemCount(), "cart untouched until payment verifies")

	// Fake gateway signatures are sig:<order>:<payment>
	require.NoError(t, app.Run(ctx, []string{
		"checkout", "verify",
		"--payment-order", "rzp_order-2", "--payment-id", "pay-1",
		"--signature", "sig:rzp_order-2:pay-1",
		"--name", "Walk-in", "--email", "guest@example.com",
		"--address", "1 Mono Lane", "--city", "Pune", "--pincode", "411001",
	}))

	assert.Zero(t, app.Cart.TotalItemCount())
	orders := fake.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, domain.PaymentMethodRazorpay, orders[0].PaymentMethod)
	assert.Equal(t, "Walk-in", orders[0].GuestName)
}

func TestApp_CheckoutRazorpayBadSignatureKeepsCart(t *testing.T) {
	app, fake, _ := newTestApp(t)
	product := fake.SeedProduct(domain.Product{Name: "Mono Tee", Price: 499})

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"cart", "add", product.ID}))

	err := app.Run(ctx, []string{
		"checkout", "verify",
		"--payment-order", "rzp-x", "--payment-id", "pay-1", "--signature", "forged",
		"--address", "1 Mono Lane", "--city", "Pune", "--pincode", "411001",
	})
	require.Error(t, err)
	assert.Equal(t, 1, app.Cart.TotalItemCount())
	assert.Empty(t, fake.Orders())
}

func TestApp_AdminCategoryLifecycle(t *testing.T) {
	app, fake, out := newTestApp(t)
	fake.SeedUser("Root", "root@example.com", "pw", "admin")

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"auth", "login", "--email", "root@example.com", "--password", "pw"}))
	require.NoError(t, app.Run(ctx, []string{"admin", "categories", "create", "--name", "Tees", "--slug", "tees"}))
	require.NoError(t, app.Run(ctx, []string{"categories", "list"}))
	assert.Contains(t, out.String(), "tees")
}

func TestApp_AdminOrdersRequireAdminRole(t *testing.T) {
	app, fake, _ := newTestApp(t)
	fake.SeedUser("Asha", "asha@example.com", "pw", "customer")

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"auth", "login", "--email", "asha@example.com", "--password", "pw"}))

	err := app.Run(ctx, []string{"admin", "orders", "list"})
	require.Error(t, err)
	assert.Equal(t, "admin access required", err.Error())
}
