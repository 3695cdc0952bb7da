// Package hub fans order events out to role-scoped subscriber groups.
// Delivery is best-effort and at-most-once per connection: a send that
// fails or would block is dropped for that subscriber and never
// surfaces into the mutation that triggered it.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/domain"
)

// Conn is the hub's view of one client connection. TrySend must not
// block; it returns an error when the connection is closed or its
// buffer is full.
type Conn interface {
	TrySend(data []byte) error
}

type subscriber struct {
	role domain.Role
	conn Conn
}

// Hub keys subscribers by connection ID. A connection joins a group
// only through Register; until then it receives nothing.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*subscriber
}

func New() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

// Register places the connection in its role group. Registration is
// one-shot: a second register on the same connection is refused.
func (h *Hub) Register(id string, role domain.Role, conn Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[id]; ok {
		log.Warn().Str("module", "hub").Str("conn_id", id).Msg("already registered")
		return false
	}
	h.subs[id] = &subscriber{role: role, conn: conn}
	log.Info().Str("module", "hub").Str("conn_id", id).Str("role", string(role)).Msg("registered")
	return true
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[id]; ok {
		delete(h.subs, id)
		log.Info().Str("module", "hub").Str("conn_id", id).Msg("unregistered")
	}
}

// Subscribers returns the current count per role, for introspection.
func (h *Hub) Subscribers() map[domain.Role]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[domain.Role]int)
	for _, s := range h.subs {
		out[s.role]++
	}
	return out
}

func (h *Hub) broadcast(v any, roles ...domain.Role) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "hub").Msg("marshal event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.subs {
		wanted := false
		for _, role := range roles {
			if s.role == role {
				wanted = true
				break
			}
		}
		if !wanted {
			continue
		}
		if err := s.conn.TrySend(data); err != nil {
			// Dead or slow subscriber. It catches up after its own
			// reconnect; the event is not retried.
			log.Warn().Err(err).Str("module", "hub").Str("conn_id", id).Msg("dropped event")
		}
	}
}

func (h *Hub) OrderCreated(o *domain.Order) {
	h.broadcast(struct {
		Type  string        `json:"type"`
		Order *domain.Order `json:"order"`
	}{"new_order", o}, domain.RoleBarmen, domain.RoleAdmin)
}

func (h *Hub) OrderUpdated(o *domain.Order) {
	h.broadcast(struct {
		Type  string        `json:"type"`
		Order *domain.Order `json:"order"`
	}{"order_updated", o}, domain.RoleWaiter, domain.RoleBarmen, domain.RoleAdmin)
}

func (h *Hub) OrderDeleted(orderID int) {
	h.broadcast(struct {
		Type    string `json:"type"`
		OrderID int    `json:"orderId"`
	}{"order_deleted", orderID}, domain.RoleWaiter, domain.RoleBarmen, domain.RoleAdmin)
}

func (h *Hub) TableCleared(tableNum int) {
	h.broadcast(struct {
		Type     string `json:"type"`
		TableNum int    `json:"tableNum"`
	}{"table_cleared", tableNum}, domain.RoleWaiter, domain.RoleBarmen, domain.RoleAdmin)
}

func (h *Hub) MenuUpdated() {
	h.broadcast(struct {
		Type string `json:"type"`
	}{"menu_updated"}, domain.RoleWaiter, domain.RoleBarmen, domain.RoleAdmin)
}
