// Package client is a Go consumer of the server's event feed. It
// owns the reconnect policy: the server never resumes a session, so
// on any drop the client redials on a fixed delay, re-registers its
// role, and relies on the registration catch-up (or its own refetch)
// to resynchronize.
package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/domain"
)

// Event is one decoded server push. Fields beyond Type are filled per
// event kind: Order for new_order/order_updated, OrderID for
// order_deleted, TableNum for table_cleared, Orders for the
// initial_orders catch-up snapshot.
type Event struct {
	Type     string          `json:"type"`
	Order    *domain.Order   `json:"order,omitempty"`
	OrderID  int             `json:"orderId,omitempty"`
	TableNum int             `json:"tableNum,omitempty"`
	Orders   []*domain.Order `json:"orders,omitempty"`
}

type Client struct {
	URL   string
	Role  domain.Role
	Delay time.Duration

	events chan Event
}

func New(url string, role domain.Role, delay time.Duration) *Client {
	if delay <= 0 {
		delay = 3 * time.Second
	}
	return &Client{
		URL:    url,
		Role:   role,
		Delay:  delay,
		events: make(chan Event, 32),
	}
}

// Events delivers decoded pushes. The channel closes when Run returns.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Run dials, registers, and reads until ctx is cancelled. Connection
// loss is not an error: it retries forever on the fixed delay.
func (c *Client) Run(ctx context.Context) {
	defer close(c.events)
	for {
		if err := c.session(ctx); err != nil {
			log.Warn().Err(err).Str("module", "client").Msg("connection lost")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.Delay):
		}
	}
}

func (c *Client) session(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// The registration handshake: until this lands, the server sends
	// nothing to this connection.
	reg := struct {
		Type string `json:"type"`
		Role string `json:"role"`
	}{"register", string(c.Role)}
	if err := conn.WriteJSON(reg); err != nil {
		return err
	}
	log.Info().Str("module", "client").Str("role", string(c.Role)).Msg("registered")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Error().Err(err).Str("module", "client").Msg("bad event")
			continue
		}
		select {
		case c.events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}
