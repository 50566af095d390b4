package cli

import (
	"context"
	"flag"
	"fmt"
	"math"

	"monoshop/internal/domain"
)

type shippingFlags struct {
	fullName string
	email    string
	phone    string
	address  string
	city     string
	pincode  string
}

func registerShippingFlags(fs *flag.FlagSet) *shippingFlags {
	s := &shippingFlags{}
	fs.StringVar(&s.fullName, "name", "", "recipient name (guests)")
	fs.StringVar(&s.email, "email", "", "contact email (guests)")
	fs.StringVar(&s.phone, "phone", "", "contact phone")
	fs.StringVar(&s.address, "address", "", "shipping address")
	fs.StringVar(&s.city, "city", "", "city")
	fs.StringVar(&s.pincode, "pincode", "", "postal code")
	return s
}

func (s *shippingFlags) validate() error {
	if s.address == "" || s.city == "" || s.pincode == "" {
		return fmt.Errorf("checkout requires --address, --city and --pincode")
	}
	return nil
}

// runCheckout places an order from the current cart. COD orders go straight
// to the backend; razorpay checkouts open a gateway order first and complete
// via `checkout verify`.
func (a *App) runCheckout(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "verify" {
		return a.runCheckoutVerify(ctx, args[1:])
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	method := fs.String("method", domain.PaymentMethodCOD, "payment method: cod or razorpay")
	shipping := registerShippingFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := shipping.validate(); err != nil {
		return err
	}

	items := a.Cart.Items()
	if len(items) == 0 {
		return fmt.Errorf("cart is empty")
	}
	total := a.Cart.TotalPrice()

	switch *method {
	case domain.PaymentMethodCOD:
		placed, err := a.Client.PlaceOrder(ctx, a.buildOrder(items, total, *method, shipping))
		if err != nil {
			return err
		}
		a.Cart.Clear(ctx)
		a.printf("order %s placed (cash on delivery), total %.2f\n", placed.ID, placed.TotalPrice)
		return nil

	case domain.PaymentMethodRazorpay:
		paymentOrder, err := a.Client.CreateRazorpayOrder(ctx, toPaise(total))
		if err != nil {
			return err
		}
		a.printf("payment order %s opened for %d paise\n", paymentOrder.ID, paymentOrder.Amount)
		a.printf("complete with: shopctl checkout verify --payment-order %s --payment-id <id> --signature <sig> [shipping flags]\n", paymentOrder.ID)
		return nil

	default:
		return fmt.Errorf("unknown payment method %q", *method)
	}
}

// runCheckoutVerify submits the gateway receipt; on success the order is
// placed and the cart cleared
func (a *App) runCheckoutVerify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout verify", flag.ContinueOnError)
	paymentOrderID := fs.String("payment-order", "", "gateway order ID from checkout")
	paymentID := fs.String("payment-id", "", "gateway payment ID")
	signature := fs.String("signature", "", "gateway signature")
	shipping := registerShippingFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *paymentOrderID == "" || *paymentID == "" || *signature == "" {
		return fmt.Errorf("checkout verify requires --payment-order, --payment-id and --signature")
	}
	if err := shipping.validate(); err != nil {
		return err
	}

	verifiedID, err := a.Client.VerifyRazorpayPayment(ctx, domain.PaymentVerification{
		OrderID:   *paymentOrderID,
		PaymentID: *paymentID,
		Signature: *signature,
	})
	if err != nil {
		return err
	}

	items := a.Cart.Items()
	if len(items) == 0 {
		return fmt.Errorf("cart is empty")
	}

	placed, err := a.Client.PlaceOrder(ctx, a.buildOrder(items, a.Cart.TotalPrice(), domain.PaymentMethodRazorpay, shipping))
	if err != nil {
		return err
	}
	a.Cart.Clear(ctx)
	a.printf("payment %s verified, order %s placed\n", verifiedID, placed.ID)
	return nil
}

func (a *App) runOrders(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "list" {
		return fmt.Errorf("usage: shopctl orders list")
	}

	orders, err := a.Client.ListMyOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		a.printf("no orders\n")
		return nil
	}
	for _, o := range orders {
		a.printf("%s\t%s\t%s\t%.2f\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, o.TotalPrice)
	}
	return nil
}

func (a *App) buildOrder(items []domain.CartLine, total float64, method string, shipping *shippingFlags) domain.Order {
	order := domain.Order{
		Items:           items,
		TotalPrice:      total,
		ShippingAddress: shipping.address,
		City:            shipping.city,
		Pincode:         shipping.pincode,
		Phone:           shipping.phone,
		PaymentMethod:   method,
	}

	if session := a.Auth.Session(); session != nil && session.User != nil {
		order.FullName = session.User.Name
		order.Email = session.User.Email
	} else {
		order.GuestName = shipping.fullName
		order.GuestEmail = shipping.email
	}
	return order
}

// toPaise converts a rupee amount to the gateway's integer paise unit
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
