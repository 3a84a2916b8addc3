// Package events defines the payloads carried on the event channel
// between the orders and billing services.
package events

// OrderCreated is the wire form of an order at the moment it was
// persisted. It mirrors the Order record field for field so nothing is
// lost in transit; it is never stored, it exists only on the channel.
type OrderCreated struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
}
