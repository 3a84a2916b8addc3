package domain

import (
	"github.com/dejobratic/orderbilling/internal/events"
	"github.com/google/uuid"
)

// Bill is the billing-side record derived from an order created event.
// Bills carry their own identifier; the originating order's identifier
// is kept as the deduplication key for redelivered events.
type Bill struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
	Paid        bool   `json:"paid"`
}

// NewBill derives a bill from an order created event. Bills are
// settled immediately at creation.
func NewBill(event events.OrderCreated) Bill {
	return Bill{
		ID:          uuid.NewString(),
		OrderID:     event.ID,
		CustomerID:  event.CustomerID,
		AmountCents: event.AmountCents,
		Paid:        true,
	}
}
