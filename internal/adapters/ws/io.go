package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/domain"
)

func (ctl *Controller) writePump(ctx context.Context, cancel context.CancelFunc, c *wsConn) {
	// A write failure means the peer is gone: closing the socket here
	// unblocks readPump so the connection leaves its hub group.
	defer func() {
		cancel()
		c.Close()
	}()
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "ws").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "ws").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, id string, c *wsConn) {
	defer func() {
		log.Info().Str("module", "ws").Str("conn_id", id).Msg("readPump closing")
		ctl.Hub.Unregister(id)
		cancel()
		c.Close()
	}()

	// Pongs answer writePump's pings; a peer that stops answering
	// trips the read deadline instead of blocking ReadMessage forever.
	pongWait := ctl.PingPeriod + 10*time.Second
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Str("conn_id", id).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "ws").Str("conn_id", id).Msg("readPump read error")
				return
			}
			ctl.handleMessage(id, c, data)
		}
	}
}

func (ctl *Controller) handleMessage(id string, c *wsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad json")
		return
	}

	switch env.Type {
	case "register":
		ctl.handleRegister(id, c, data)
	case "ping":
		ctl.sendJSON(c, struct {
			Type string `json:"type"`
		}{"pong"})
	default:
		log.Warn().Str("module", "ws").Str("type", env.Type).Msg("unknown message")
	}
}

// handleRegister is the one-shot registration handshake. A barmen
// registration additionally gets the catch-up snapshot of every order
// the kitchen still has to act on.
func (ctl *Controller) handleRegister(id string, c *wsConn, data []byte) {
	type registerPayload struct {
		Type string `json:"type"`
		Role string `json:"role"`
	}
	var p registerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad register payload")
		ctl.sendJSON(c, map[string]any{
			"type":  "error",
			"error": "bad_payload",
		})
		return
	}
	role, err := domain.ParseRole(p.Role)
	if err != nil {
		ctl.sendJSON(c, map[string]any{
			"type":  "error",
			"error": "unknown role",
		})
		return
	}

	if !ctl.Hub.Register(id, role, c) {
		ctl.sendJSON(c, map[string]any{
			"type":  "error",
			"error": "already registered",
		})
		return
	}

	if role == domain.RoleBarmen {
		open, err := ctl.Repo.ListOrders(app.Filter{Open: true})
		if err != nil {
			log.Error().Err(err).Str("module", "ws").Msg("initial orders")
			return
		}
		ctl.sendJSON(c, struct {
			Type   string          `json:"type"`
			Orders []*domain.Order `json:"orders"`
		}{"initial_orders", open})
	}
}

func (ctl *Controller) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
