// Package nats adapts the NATS client to the event channel ports used
// by the orders and billing services.
package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect opens the single long-lived connection a service holds to
// the event channel. The caller owns the connection and closes it at
// shutdown.
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}

	return conn, nil
}
