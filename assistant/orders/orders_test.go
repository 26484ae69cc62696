package orders

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreStatusFound(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	order, err := store.Status(context.Background(), "ord-123", "ALEX.RIVERA@example.com")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if order.OrderID != "ORD-123" {
		t.Fatalf("unexpected order id: %s", order.OrderID)
	}
	if order.Status != StatusShipped {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if len(order.Items) == 0 {
		t.Fatal("expected order items")
	}
}

func TestStoreStatusNotFound(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	_, err = store.Status(context.Background(), "ORD-999", "anyone@example.com")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("Status() error = %v, want ErrOrderNotFound", err)
	}
}

func TestStoreStatusEmailMismatch(t *testing.T) {
	t.Parallel()

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	_, err = store.Status(context.Background(), "ORD-123", "intruder@example.com")
	if !errors.Is(err, ErrEmailMismatch) {
		t.Fatalf("Status() error = %v, want ErrEmailMismatch", err)
	}
}

func TestStoreStatusHonorsContextDuringDelay(t *testing.T) {
	t.Parallel()

	store, err := NewStore(WithLookupDelay(time.Minute))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Status(ctx, "ORD-123", "alex.rivera@example.com")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Status() error = %v, want context.Canceled", err)
	}
}
