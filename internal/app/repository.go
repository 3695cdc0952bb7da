package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/domain"
	"github.com/example/barboard/internal/store"
)

// Events receives a notification after each committed mutation. The
// hub implements it; delivery is fire-and-forget and never feeds back
// into the mutation's result.
type Events interface {
	OrderCreated(*domain.Order)
	OrderUpdated(*domain.Order)
	OrderDeleted(orderID int)
	TableCleared(tableNum int)
	MenuUpdated()
}

// Repository owns the order collection. All mutations are serialized
// under one mutex and follow persist-then-commit: the durable write
// happens against a mutated copy, and memory is only swapped after the
// write succeeds, so a store failure leaves state untouched.
type Repository struct {
	mu     sync.RWMutex
	store  store.Store
	events Events
	tables int

	orders []*domain.Order // creation order
	byID   map[int]*domain.Order
	nextID int
}

func NewRepository(st store.Store, events Events, tables int) (*Repository, error) {
	loaded, err := st.LoadOrders()
	if err != nil {
		return nil, err
	}
	r := &Repository{
		store:  st,
		events: events,
		tables: tables,
		orders: loaded,
		byID:   make(map[int]*domain.Order, len(loaded)),
		nextID: 1,
	}
	for _, o := range loaded {
		r.byID[o.ID] = o
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
	}
	log.Info().Str("module", "app.repository").Int("orders", len(loaded)).Int("next_id", r.nextID).Msg("loaded orders")
	return r, nil
}

// Tables returns the configured table count.
func (r *Repository) Tables() int {
	return r.tables
}

func (r *Repository) CreateOrder(table int, items []domain.OrderItem, notes, waiter string) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.Validationf("order has no items")
	}
	if table < 1 || table > r.tables {
		return nil, domain.Validationf("table %d out of range 1..%d", table, r.tables)
	}
	// The order owns its own copy; the caller's slice stays untouched
	// and never aliases repository state.
	owned := make([]domain.OrderItem, len(items))
	copy(owned, items)
	for i := range owned {
		if owned[i].Price < 0 {
			return nil, domain.Validationf("item %q has negative price", owned[i].Name)
		}
		if owned[i].Quantity == 0 {
			owned[i].Quantity = 1
		}
		if owned[i].Quantity < 1 {
			return nil, domain.Validationf("item %q has invalid quantity", owned[i].Name)
		}
	}

	r.mu.Lock()
	order := &domain.Order{
		ID:        r.nextID,
		Table:     table,
		Items:     owned,
		Notes:     notes,
		Status:    domain.StatusPending,
		Timestamp: time.Now(),
		Waiter:    waiter,
	}
	snapshot := append(append([]*domain.Order(nil), r.orders...), order)
	if err := r.store.SaveOrders(snapshot); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.orders = snapshot
	r.byID[order.ID] = order
	r.nextID++
	out := order.Clone()
	r.mu.Unlock()

	log.Info().Str("module", "app.repository").Int("order_id", out.ID).Int("table", out.Table).Str("waiter", waiter).Msg("order created")
	if r.events != nil {
		r.events.OrderCreated(out)
	}
	return out, nil
}

func (r *Repository) SetStatus(orderID int, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validationf("unknown status %q", status)
	}

	r.mu.Lock()
	order, ok := r.byID[orderID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if !order.Status.CanTransition(status) {
		r.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}

	next := order.Clone()
	next.Status = status
	if status == domain.StatusCompleted && next.CompletedAt == nil {
		now := time.Now()
		next.CompletedAt = &now
	}
	if status != domain.StatusCompleted {
		next.CompletedAt = nil
	}
	if err := r.store.SaveOrders(r.replaced(next)); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	*order = *next
	out := next.Clone()
	r.mu.Unlock()

	log.Info().Str("module", "app.repository").Int("order_id", orderID).Str("status", string(status)).Msg("order status changed")
	if r.events != nil {
		r.events.OrderUpdated(out)
	}
	return out, nil
}

func (r *Repository) DeleteOrder(orderID int) error {
	r.mu.Lock()
	if _, ok := r.byID[orderID]; !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	snapshot := make([]*domain.Order, 0, len(r.orders)-1)
	for _, o := range r.orders {
		if o.ID != orderID {
			snapshot = append(snapshot, o)
		}
	}
	if err := r.store.SaveOrders(snapshot); err != nil {
		r.mu.Unlock()
		return err
	}
	r.orders = snapshot
	delete(r.byID, orderID)
	r.mu.Unlock()

	log.Info().Str("module", "app.repository").Int("order_id", orderID).Msg("order deleted")
	if r.events != nil {
		r.events.OrderDeleted(orderID)
	}
	return nil
}

// ClearTable force-completes every uncleared order on the table and
// stamps who cleared it. Already-cleared orders are skipped, which
// makes a second call a no-op returning 0.
func (r *Repository) ClearTable(tableNum int, clearedBy string) (int, error) {
	if tableNum < 1 || tableNum > r.tables {
		return 0, domain.Validationf("table %d out of range 1..%d", tableNum, r.tables)
	}

	r.mu.Lock()
	now := time.Now()
	snapshot := make([]*domain.Order, len(r.orders))
	var touched []*domain.Order
	for i, o := range r.orders {
		if o.Table == tableNum && !o.Cleared() {
			next := o.Clone()
			next.Status = domain.StatusCompleted
			if next.CompletedAt == nil {
				t := now
				next.CompletedAt = &t
			}
			name := clearedBy
			next.ClearedBy = &name
			snapshot[i] = next
			touched = append(touched, next)
		} else {
			snapshot[i] = o
		}
	}
	if len(touched) == 0 {
		r.mu.Unlock()
		return 0, nil
	}
	if err := r.store.SaveOrders(snapshot); err != nil {
		r.mu.Unlock()
		return 0, err
	}
	for _, next := range touched {
		*r.byID[next.ID] = *next
	}
	count := len(touched)
	r.mu.Unlock()

	log.Info().Str("module", "app.repository").Int("table", tableNum).Int("cleared", count).Str("by", clearedBy).Msg("table cleared")
	if r.events != nil {
		r.events.TableCleared(tableNum)
	}
	return count, nil
}

func (r *Repository) Get(orderID int) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

// Snapshot returns clones of every order in creation order. Derived
// views (occupancy, stats) recompute from this on each query.
func (r *Repository) Snapshot() []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = o.Clone()
	}
	return out
}

// replaced builds a snapshot slice with the order matching next.ID
// swapped for next. Caller holds the lock.
func (r *Repository) replaced(next *domain.Order) []*domain.Order {
	snapshot := make([]*domain.Order, len(r.orders))
	for i, o := range r.orders {
		if o.ID == next.ID {
			snapshot[i] = next
		} else {
			snapshot[i] = o
		}
	}
	return snapshot
}
