package postgres

import (
	"context"
	"fmt"

	"github.com/dejobratic/orderbilling/internal/billing/domain"
	"github.com/dejobratic/orderbilling/internal/billing/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a bill. The unique constraint on order_id is the
// dedup guard for redelivered events: a conflicting insert affects no
// rows and is reported as ErrDuplicateOrder.
func (r *Repository) Create(ctx context.Context, bill domain.Bill) error {
	query := `
		INSERT INTO bills (id, order_id, customer_id, amount_cents, paid)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query,
		bill.ID,
		bill.OrderID,
		bill.CustomerID,
		bill.AmountCents,
		bill.Paid,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrDuplicateOrder
	}

	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Bill, error) {
	query := `
		SELECT id, order_id, customer_id, amount_cents, paid
		FROM bills
		ORDER BY order_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var bill domain.Bill
		if err := rows.Scan(
			&bill.ID,
			&bill.OrderID,
			&bill.CustomerID,
			&bill.AmountCents,
			&bill.Paid,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}

	return bills, nil
}
