package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	billingports "github.com/dejobratic/orderbilling/internal/billing/ports"
	"github.com/dejobratic/orderbilling/internal/events"
	"github.com/nats-io/nats.go"
)

// Subscription is a synchronous subscription on the order created
// subject. Next yields one decoded event at a time, which keeps the
// consumer strictly sequential.
type Subscription struct {
	sub *nats.Subscription
}

func Subscribe(conn *nats.Conn, subject string) (*Subscription, error) {
	sub, err := conn.SubscribeSync(subject)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", subject, err)
	}

	return &Subscription{sub: sub}, nil
}

// Next blocks until the channel delivers a message or ctx is done.
// Deliveries with an absent or undecodable payload are reported as
// ErrMalformedEvent so the consumer can skip them.
func (s *Subscription) Next(ctx context.Context) (events.OrderCreated, error) {
	msg, err := s.sub.NextMsgWithContext(ctx)
	if err != nil {
		return events.OrderCreated{}, err
	}

	if len(msg.Data) == 0 {
		return events.OrderCreated{}, fmt.Errorf("%w: empty payload", billingports.ErrMalformedEvent)
	}

	var event events.OrderCreated
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		return events.OrderCreated{}, fmt.Errorf("%w: %v", billingports.ErrMalformedEvent, err)
	}

	if strings.TrimSpace(event.ID) == "" {
		return events.OrderCreated{}, fmt.Errorf("%w: missing order id", billingports.ErrMalformedEvent)
	}

	return event, nil
}

// Unsubscribe tears the subscription down. Only called at shutdown;
// in-flight processing is unwound with the process.
func (s *Subscription) Unsubscribe() error {
	return s.sub.Unsubscribe()
}

var _ billingports.EventSource = (*Subscription)(nil)
