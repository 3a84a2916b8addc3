package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/orderbilling/internal/events"
)

// EventSource yields order created events one at a time. Next blocks
// until the channel delivers a message or ctx is done.
type EventSource interface {
	Next(ctx context.Context) (events.OrderCreated, error)
}

// ErrMalformedEvent marks a delivery whose payload is absent or cannot
// be decoded. The consumer skips these; they never carry an event.
var ErrMalformedEvent = errors.New("malformed order created event")
