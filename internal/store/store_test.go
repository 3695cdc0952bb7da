package store

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/example/barboard/internal/domain"
)

func TestMissingFilesAreEmptyCollections(t *testing.T) {
	t.Parallel()
	st := NewFileStore(afero.NewMemMapFs(), "data")

	orders, err := st.LoadOrders()
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("orders from empty store: got %d", len(orders))
	}
	if _, err := st.LoadMenu(); err != nil {
		t.Errorf("LoadMenu: %v", err)
	}
	if _, err := st.LoadUsers(); err != nil {
		t.Errorf("LoadUsers: %v", err)
	}
}

func TestOrdersRoundTrip(t *testing.T) {
	t.Parallel()
	st := NewFileStore(afero.NewMemMapFs(), "data")

	cleared := "Bob"
	done := time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC)
	in := []*domain.Order{
		{
			ID:          1,
			Table:       3,
			Items:       []domain.OrderItem{{Name: "latte", Icon: "☕", Price: 4.5, Quantity: 2, Notes: "oat milk"}},
			Notes:       "birthday",
			Status:      domain.StatusCompleted,
			Timestamp:   done.Add(-time.Hour),
			CompletedAt: &done,
			ClearedBy:   &cleared,
			Waiter:      "Alice",
		},
		{ID: 2, Table: 4, Status: domain.StatusPending, Timestamp: done, Waiter: "Alice"},
	}
	if err := st.SaveOrders(in); err != nil {
		t.Fatalf("SaveOrders: %v", err)
	}

	out, err := st.LoadOrders()
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("orders: got %d, want 2", len(out))
	}
	got := out[0]
	if got.ID != 1 || got.Table != 3 || got.Waiter != "Alice" {
		t.Errorf("order fields: %+v", got)
	}
	if got.ClearedBy == nil || *got.ClearedBy != "Bob" {
		t.Errorf("clearedBy lost in round trip")
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("completedAt lost in round trip")
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("items lost in round trip: %+v", got.Items)
	}
	if out[1].ClearedBy != nil || out[1].CompletedAt != nil {
		t.Errorf("nil markers must stay nil, got %+v", out[1])
	}
}

func TestMenuAndUsersRoundTrip(t *testing.T) {
	t.Parallel()
	st := NewFileStore(afero.NewMemMapFs(), "data")

	menu := []*domain.MenuItem{{ID: "m1", Name: "Espresso", Category: "coffee", Price: 2.5, Icon: "☕", Available: true}}
	if err := st.SaveMenu(menu); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}
	gotMenu, err := st.LoadMenu()
	if err != nil {
		t.Fatalf("LoadMenu: %v", err)
	}
	if len(gotMenu) != 1 || gotMenu[0].Name != "Espresso" || !gotMenu[0].Available {
		t.Errorf("menu round trip: %+v", gotMenu)
	}

	users := []*domain.User{{ID: 1, Username: "boss", Password: "$2a$10$hash", Role: domain.RoleAdmin, Name: "Boss"}}
	if err := st.SaveUsers(users); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	gotUsers, err := st.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(gotUsers) != 1 || gotUsers[0].Password != "$2a$10$hash" {
		t.Errorf("the store must persist password hashes, got %+v", gotUsers)
	}
}

func TestSaveFailureIsPersistenceError(t *testing.T) {
	t.Parallel()
	st := NewFileStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "data")

	err := st.SaveOrders([]*domain.Order{{ID: 1}})
	if err == nil {
		t.Fatalf("save on read-only fs succeeded")
	}
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Errorf("got %T, want PersistenceError", err)
	}
}
