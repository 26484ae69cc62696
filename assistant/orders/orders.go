// Package orders serves the synthetic order fixture set. Lookups verify
// the customer email before releasing any order contents.
package orders

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

//go:embed data/orders.json
var ordersRaw []byte

const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
	StatusDelayed    = "Delayed"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmailMismatch = errors.New("email does not match order records")
)

// Order is a read-only fixture record.
type Order struct {
	OrderID       string   `json:"orderId"`
	CustomerEmail string   `json:"customerEmail"`
	Status        string   `json:"status"`
	Items         []string `json:"items"`
	Total         float64  `json:"total"`
	DeliveryDate  string   `json:"deliveryDate"`
	Carrier       string   `json:"carrier"`
	TrackingURL   string   `json:"trackingURL,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// StoreOption customizes Store.
type StoreOption func(*Store)

// WithLookupDelay emulates the latency of a real order backend. Zero
// disables the delay.
func WithLookupDelay(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.delay = d
		}
	}
}

// Store holds the fixture orders, parsed once at startup.
type Store struct {
	orders []Order
	delay  time.Duration
}

func NewStore(opts ...StoreOption) (*Store, error) {
	var orders []Order
	if err := json.Unmarshal(ordersRaw, &orders); err != nil {
		return nil, fmt.Errorf("parse orders fixture: %w", err)
	}

	store := &Store{orders: orders}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Status looks up an order by case-insensitive exact id match and verifies
// the supplied email against the order's recorded email. The full record
// is returned only when both checks pass.
func (s *Store) Status(ctx context.Context, orderID, email string) (Order, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return Order{}, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	order, ok := s.find(orderID)
	if !ok {
		return Order{}, fmt.Errorf("%w: id=%s", ErrOrderNotFound, orderID)
	}

	if !strings.EqualFold(strings.TrimSpace(email), order.CustomerEmail) {
		return Order{}, ErrEmailMismatch
	}

	return order, nil
}

func (s *Store) find(orderID string) (Order, bool) {
	trimmed := strings.TrimSpace(orderID)
	for _, o := range s.orders {
		if strings.EqualFold(o.OrderID, trimmed) {
			return o, true
		}
	}
	return Order{}, false
}
