package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dejobratic/orderbilling/internal/events"
	ordersports "github.com/dejobratic/orderbilling/internal/orders/ports"
	"github.com/nats-io/nats.go"
)

// Publisher emits order created events on a single subject.
// Publishing is fire-and-forget: the only acknowledgment is the
// channel accepting the message.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

func NewPublisher(conn *nats.Conn, subject string) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: subject,
	}
}

func (p *Publisher) PublishOrderCreated(_ context.Context, event events.OrderCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order created event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}

	return nil
}

var _ ordersports.EventBus = (*Publisher)(nil)
