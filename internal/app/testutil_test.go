package app

import (
	"errors"
	"testing"

	"github.com/example/barboard/internal/domain"
)

// fakeStore is an in-memory store.Store. Set failSaves to make every
// write fail with a PersistenceError.
type fakeStore struct {
	orders []*domain.Order
	menu   []*domain.MenuItem
	users  []*domain.User

	failSaves  bool
	orderSaves int
}

func (s *fakeStore) LoadOrders() ([]*domain.Order, error) { return s.orders, nil }

func (s *fakeStore) SaveOrders(orders []*domain.Order) error {
	if s.failSaves {
		return &domain.PersistenceError{Err: errors.New("disk full")}
	}
	s.orders = orders
	s.orderSaves++
	return nil
}

func (s *fakeStore) LoadMenu() ([]*domain.MenuItem, error) { return s.menu, nil }

func (s *fakeStore) SaveMenu(items []*domain.MenuItem) error {
	if s.failSaves {
		return &domain.PersistenceError{Err: errors.New("disk full")}
	}
	s.menu = items
	return nil
}

func (s *fakeStore) LoadUsers() ([]*domain.User, error) { return s.users, nil }

func (s *fakeStore) SaveUsers(users []*domain.User) error {
	if s.failSaves {
		return &domain.PersistenceError{Err: errors.New("disk full")}
	}
	s.users = users
	return nil
}

// fakeEvents records which notifications fired.
type fakeEvents struct {
	created []int
	updated []int
	deleted []int
	cleared []int
	menu    int
}

func (e *fakeEvents) OrderCreated(o *domain.Order) { e.created = append(e.created, o.ID) }
func (e *fakeEvents) OrderUpdated(o *domain.Order) { e.updated = append(e.updated, o.ID) }
func (e *fakeEvents) OrderDeleted(id int)          { e.deleted = append(e.deleted, id) }
func (e *fakeEvents) TableCleared(t int)           { e.cleared = append(e.cleared, t) }
func (e *fakeEvents) MenuUpdated()                 { e.menu++ }

func newTestRepo(t *testing.T) (*Repository, *fakeStore, *fakeEvents) {
	t.Helper()
	st := &fakeStore{}
	ev := &fakeEvents{}
	repo, err := NewRepository(st, ev, 10)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return repo, st, ev
}

func item(name string, price float64, qty int) domain.OrderItem {
	return domain.OrderItem{Name: name, Icon: "☕", Price: price, Quantity: qty}
}
