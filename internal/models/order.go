package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the delivery status of a placed order.
type OrderStatus string

const (
	// OrderStatusPreparing indicates the kitchen has accepted the order.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusCooking indicates the order is being cooked.
	OrderStatusCooking OrderStatus = "cooking"
	// OrderStatusOnTheWay indicates the order is out for delivery.
	OrderStatusOnTheWay OrderStatus = "on-the-way"
	// OrderStatusDelivered indicates the order has been delivered.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Valid reports whether s is one of the declared statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusCooking, OrderStatusOnTheWay,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderLine is a frozen snapshot of a cart line taken at checkout time.
// It is independent of any later cart or catalog mutation.
type OrderLine struct {
	ItemID   int             `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// Order is an immutable order record. Once created, Lines and Total never
// change; only Status advances.
type Order struct {
	ID                string          `json:"id"`
	Lines             []OrderLine     `json:"lines"`
	Total             decimal.Decimal `json:"total"`
	Status            OrderStatus     `json:"status"`
	OrderDate         time.Time       `json:"order_date"`
	DeliveryAddress   string          `json:"delivery_address"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	PaymentMethod     string          `json:"payment_method"`
}

// Clone returns a deep copy of the order, detached from store state.
func (o Order) Clone() Order {
	c := o
	c.Lines = append([]OrderLine(nil), o.Lines...)
	return c
}
