package ports

import (
	"context"

	"github.com/dejobratic/orderbilling/internal/events"
)

// EventBus publishes order lifecycle events onto the event channel.
// Publish is fire-and-forget: a nil return means the channel accepted
// the message, not that any consumer has seen it.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreated) error
}
