package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/metrics"
	"github.com/quickbites/storefront/internal/models"
)

// estimatedDelivery is the fixed window quoted on every order.
const estimatedDelivery = "30-45 minutes"

// statusSchedule is the scripted delivery progression, relative to order
// creation time.
var statusSchedule = []struct {
	after  time.Duration
	status models.OrderStatus
}{
	{3 * time.Second, models.OrderStatusCooking},
	{8 * time.Second, models.OrderStatusOnTheWay},
	{15 * time.Second, models.OrderStatusDelivered},
}

var (
	// ErrOrderNotFound is returned when the given order id does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderTerminal is returned when an order can no longer transition.
	ErrOrderTerminal = errors.New("order is already in a terminal status")
)

// OrderStore holds the session's order history, most recent first, and runs
// the scripted status progression for each placed order. Orders are
// immutable once created except for their status; a status never leaves
// delivered or cancelled.
type OrderStore struct {
	mu      sync.RWMutex
	orders  []models.Order
	pending map[string][]CancelFunc
	sched   Scheduler
	reg     *metrics.Registry
	now     func() time.Time
}

// NewOrderStore creates an empty order history driven by the given
// scheduler.
func NewOrderStore(sched Scheduler, reg *metrics.Registry) *OrderStore {
	if sched == nil {
		panic("store: NewOrderStore requires a scheduler")
	}
	if reg == nil {
		panic("store: NewOrderStore requires a metrics registry")
	}
	return &OrderStore{
		pending: make(map[string][]CancelFunc),
		sched:   sched,
		reg:     reg,
		now:     time.Now,
	}
}

// Add creates an order from the given line snapshots, prepends it to the
// history and schedules the cooking, on-the-way and delivered transitions.
// It returns the new order's id. The caller owns clearing the cart.
func (s *OrderStore) Add(lines []models.OrderLine, total decimal.Decimal, deliveryAddress, paymentMethod string) string {
	s.mu.Lock()

	id := s.newOrderID()
	order := models.Order{
		ID:                id,
		Lines:             append([]models.OrderLine(nil), lines...),
		Total:             total,
		Status:            models.OrderStatusPreparing,
		OrderDate:         s.now(),
		DeliveryAddress:   deliveryAddress,
		EstimatedDelivery: estimatedDelivery,
		PaymentMethod:     paymentMethod,
	}
	s.orders = append([]models.Order{order}, s.orders...)

	cancels := make([]CancelFunc, 0, len(statusSchedule))
	for _, step := range statusSchedule {
		status := step.status
		cancels = append(cancels, s.sched.AfterFunc(step.after, func() {
			s.advance(id, status)
		}))
	}
	s.pending[id] = cancels
	s.mu.Unlock()

	s.reg.OrdersPlaced.Inc()
	s.reg.OpenOrders.Inc()
	return id
}

// advance is the timer callback. Missing orders and orders already in a
// terminal status are tolerated as no-ops.
func (s *OrderStore) advance(id string, status models.OrderStatus) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.orders[i].Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	s.orders[i].Status = status
	if status == models.OrderStatusDelivered {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if status == models.OrderStatusDelivered {
		s.reg.OrdersDelivered.Inc()
		s.reg.OpenOrders.Dec()
	}
}

// UpdateStatus sets the status on the matching order. Unknown ids are a
// no-op. Transitions out of a terminal status are refused; reaching a
// terminal status stops the order's remaining scheduled transitions.
func (s *OrderStore) UpdateStatus(id string, status models.OrderStatus) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.orders[i].Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	s.orders[i].Status = status
	if status.IsTerminal() {
		s.cancelPending(id)
	}
	s.mu.Unlock()

	switch status {
	case models.OrderStatusDelivered:
		s.reg.OrdersDelivered.Inc()
		s.reg.OpenOrders.Dec()
	case models.OrderStatusCancelled:
		s.reg.OrdersCancelled.Inc()
		s.reg.OpenOrders.Dec()
	}
}

// Cancel marks a non-terminal order cancelled and stops its pending
// transitions.
func (s *OrderStore) Cancel(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrOrderNotFound
	}
	if s.orders[i].Status.IsTerminal() {
		s.mu.Unlock()
		return ErrOrderTerminal
	}
	s.orders[i].Status = models.OrderStatusCancelled
	s.cancelPending(id)
	s.mu.Unlock()

	s.reg.OrdersCancelled.Inc()
	s.reg.OpenOrders.Dec()
	return nil
}

// GetByID returns a copy of the order with the given id, or false if absent.
func (s *OrderStore) GetByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.orders[i].Clone(), true
	}
	return models.Order{}, false
}

// Orders returns a snapshot of the history, most recent first.
func (s *OrderStore) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

// Count returns the number of orders in the history.
func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Reorder returns a copy of a past order's lines for the caller to add back
// to the cart, or an empty slice if the order does not exist. The store
// never mutates the cart itself.
func (s *OrderStore) Reorder(id string) []models.OrderLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return append([]models.OrderLine(nil), s.orders[i].Lines...)
	}
	return nil
}

// ClearHistory drops all orders and stops any pending transitions.
func (s *OrderStore) ClearHistory() {
	s.mu.Lock()
	open := 0
	for _, o := range s.orders {
		if !o.Status.IsTerminal() {
			open++
		}
	}
	for id := range s.pending {
		s.cancelPending(id)
	}
	s.orders = nil
	s.mu.Unlock()

	s.reg.OpenOrders.Sub(float64(open))
}

// newOrderID combines creation time with a random suffix so that ids stay
// unique even for orders created in the same millisecond.
func (s *OrderStore) newOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", s.now().UnixMilli(), uuid.NewString()[:8])
}

func (s *OrderStore) indexOf(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (s *OrderStore) cancelPending(id string) {
	for _, cancel := range s.pending[id] {
		cancel()
	}
	delete(s.pending, id)
}
