package services

import (
	"errors"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/models"
	"github.com/quickbites/storefront/internal/store"
)

var (
	taxRate          = decimal.RequireFromString("0.08")
	deliveryFee      = decimal.RequireFromString("2.99")
	freeDeliveryOver = decimal.RequireFromString("30")
)

var (
	// ErrEmptyCart is returned when placing an order with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrEmptyAddress is returned when the delivery address is blank.
	ErrEmptyAddress = errors.New("delivery address is required")
)

// Quote holds the derived checkout figures. They are recomputed from the
// live cart on every call, never cached.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// ComputeQuote derives tax, delivery fee and total from a subtotal. Tax is
// 8% of the subtotal; the delivery fee is waived for subtotals strictly
// above the free-delivery threshold.
func ComputeQuote(subtotal decimal.Decimal, itemCount int) Quote {
	tax := subtotal.Mul(taxRate)
	fee := deliveryFee
	if subtotal.GreaterThan(freeDeliveryOver) {
		fee = decimal.Zero
	}
	return Quote{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee),
		ItemCount:   itemCount,
	}
}

// CheckoutService converts the active cart into a placed order. It owns the
// derived pricing figures and the post-checkout cart clear; the order store
// itself never touches the cart.
type CheckoutService struct {
	cart   *store.CartStore
	orders *store.OrderStore
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(cart *store.CartStore, orders *store.OrderStore) *CheckoutService {
	if cart == nil || orders == nil {
		panic("services: NewCheckoutService requires cart and order stores")
	}
	return &CheckoutService{
		cart:   cart,
		orders: orders,
	}
}

// Quote returns the current checkout figures for the live cart.
func (s *CheckoutService) Quote() Quote {
	return ComputeQuote(s.cart.Total(), s.cart.ItemCount())
}

// PlaceOrder snapshots the cart into an order, records it and clears the
// cart. It returns the new order's id.
func (s *CheckoutService) PlaceOrder(deliveryAddress, paymentMethod string) (string, error) {
	address := strings.TrimSpace(deliveryAddress)
	if address == "" {
		return "", ErrEmptyAddress
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	quote := s.Quote()
	orderLines := make([]models.OrderLine, len(lines))
	for i, l := range lines {
		orderLines[i] = models.OrderLine{
			ItemID:   l.Item.ID,
			Name:     l.Item.Name,
			Price:    l.Item.Price,
			Quantity: l.Quantity,
			Image:    l.Item.Image,
		}
	}

	id := s.orders.Add(orderLines, quote.Total, address, paymentMethod)
	s.cart.Clear()
	log.Printf("Order %s placed: %d items, total %s", id, quote.ItemCount, quote.Total.StringFixed(2))
	return id, nil
}
