package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/domain"
	"github.com/example/barboard/internal/store"
)

// MenuService owns the menu collection. Only admin handlers reach the
// mutating methods; the order core reads it at most.
type MenuService struct {
	mu     sync.RWMutex
	store  store.Store
	events Events
	items  []*domain.MenuItem
}

func NewMenuService(st store.Store, events Events) (*MenuService, error) {
	items, err := st.LoadMenu()
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.menu").Int("items", len(items)).Msg("loaded menu")
	return &MenuService{store: st, events: events, items: items}, nil
}

// List returns the menu; with availableOnly set, hidden items are
// filtered out (the shape waiters see).
func (m *MenuService) List(availableOnly bool) []*domain.MenuItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.MenuItem, 0, len(m.items))
	for _, it := range m.items {
		if availableOnly && !it.Available {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out
}

func (m *MenuService) Create(item domain.MenuItem) (*domain.MenuItem, error) {
	if item.Name == "" {
		return nil, domain.Validationf("menu item has no name")
	}
	if item.Price < 0 {
		return nil, domain.Validationf("menu item %q has negative price", item.Name)
	}
	item.ID = uuid.NewString()
	item.Available = true

	m.mu.Lock()
	snapshot := append(append([]*domain.MenuItem(nil), m.items...), &item)
	if err := m.store.SaveMenu(snapshot); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.items = snapshot
	m.mu.Unlock()

	log.Info().Str("module", "app.menu").Str("item_id", item.ID).Str("name", item.Name).Msg("menu item created")
	if m.events != nil {
		m.events.MenuUpdated()
	}
	cp := item
	return &cp, nil
}

// MenuPatch is a partial update: nil fields keep the item's current
// value, so price and availability can be set to their zero values.
type MenuPatch struct {
	Name      *string
	Category  *string
	Price     *float64
	Icon      *string
	Available *bool
}

func (m *MenuService) Update(id string, patch MenuPatch) (*domain.MenuItem, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, domain.Validationf("menu item price is negative")
	}

	m.mu.Lock()
	idx := -1
	for i, it := range m.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	next := *m.items[idx]
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Icon != nil {
		next.Icon = *patch.Icon
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Available != nil {
		next.Available = *patch.Available
	}

	snapshot := append([]*domain.MenuItem(nil), m.items...)
	snapshot[idx] = &next
	if err := m.store.SaveMenu(snapshot); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.items = snapshot
	m.mu.Unlock()

	log.Info().Str("module", "app.menu").Str("item_id", id).Msg("menu item updated")
	if m.events != nil {
		m.events.MenuUpdated()
	}
	cp := next
	return &cp, nil
}

func (m *MenuService) Delete(id string) error {
	m.mu.Lock()
	idx := -1
	for i, it := range m.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.mu.Unlock()
		return domain.ErrNotFound
	}
	snapshot := append([]*domain.MenuItem(nil), m.items[:idx]...)
	snapshot = append(snapshot, m.items[idx+1:]...)
	if err := m.store.SaveMenu(snapshot); err != nil {
		m.mu.Unlock()
		return err
	}
	m.items = snapshot
	m.mu.Unlock()

	log.Info().Str("module", "app.menu").Str("item_id", id).Msg("menu item deleted")
	if m.events != nil {
		m.events.MenuUpdated()
	}
	return nil
}
