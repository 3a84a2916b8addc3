package domain

import "strings"

// Order represents a purchase order accepted by the intake API. The
// identifier is assigned by the caller and trusted as-is; an order is
// written exactly once and never updated afterwards.
type Order struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
}

// ValidationError reports a structurally malformed order.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Validate checks structural well-formedness. The intake surface does
// no business validation beyond this.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return &ValidationError{msg: "id is required"}
	}
	if strings.TrimSpace(o.CustomerID) == "" {
		return &ValidationError{msg: "customer_id is required"}
	}
	if o.AmountCents < 0 {
		return &ValidationError{msg: "amount_cents must be non-negative"}
	}
	return nil
}
