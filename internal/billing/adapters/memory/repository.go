package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/orderbilling/internal/billing/domain"
	"github.com/dejobratic/orderbilling/internal/billing/ports"
)

// Repository provides an in-memory bill store useful for local
// development and tests. It enforces the same one-bill-per-order
// constraint as the postgres schema.
type Repository struct {
	mu            sync.RWMutex
	bills         []domain.Bill
	byOrderID     map[string]struct{}
	nextCreateErr error
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{byOrderID: make(map[string]struct{})}
}

// Create stores a bill, rejecting a second bill for the same order.
func (r *Repository) Create(_ context.Context, bill domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nextCreateErr != nil {
		err := r.nextCreateErr
		r.nextCreateErr = nil
		return err
	}

	if _, exists := r.byOrderID[bill.OrderID]; exists {
		return ports.ErrDuplicateOrder
	}

	r.byOrderID[bill.OrderID] = struct{}{}
	r.bills = append(r.bills, bill)
	return nil
}

// List returns all stored bills in creation order.
func (r *Repository) List(_ context.Context) ([]domain.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Bill, len(r.bills))
	copy(result, r.bills)
	return result, nil
}

// FailNextCreate makes the next Create call return err once.
func (r *Repository) FailNextCreate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextCreateErr = err
}

// CreationOrder returns the originating order IDs in the order their
// bills were created.
func (r *Repository) CreationOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.bills))
	for i, bill := range r.bills {
		ids[i] = bill.OrderID
	}
	return ids
}
