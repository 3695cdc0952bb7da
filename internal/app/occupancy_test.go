package app

import (
	"testing"

	"github.com/example/barboard/internal/domain"
)

func TestOccupancyFollowsClearedByNotStatus(t *testing.T) {
	t.Parallel()
	repo, _, _ := newTestRepo(t)

	if Occupied(repo.Snapshot(), 4) {
		t.Fatalf("empty table must be free")
	}

	order, _ := repo.CreateOrder(4, []domain.OrderItem{item("tea", 2, 1)}, "", "Alice")
	if !Occupied(repo.Snapshot(), 4) {
		t.Errorf("table with a pending order must be occupied")
	}

	// Kitchen finishes the order; the table is still held until staff
	// clears it.
	repo.SetStatus(order.ID, domain.StatusPreparing)
	repo.SetStatus(order.ID, domain.StatusCompleted)
	if !Occupied(repo.Snapshot(), 4) {
		t.Errorf("completed-but-uncleared order must still occupy the table")
	}

	repo.ClearTable(4, "Bob")
	if Occupied(repo.Snapshot(), 4) {
		t.Errorf("cleared table must be free")
	}
}

func TestTableOccupancyAggregates(t *testing.T) {
	t.Parallel()
	repo, _, _ := newTestRepo(t)

	// 2×4.50 + 1×2.00 active on table 3
	repo.CreateOrder(3, []domain.OrderItem{item("latte", 4.5, 2)}, "", "Alice")
	second, _ := repo.CreateOrder(3, []domain.OrderItem{item("tea", 2, 1)}, "", "Alice")
	repo.SetStatus(second.ID, domain.StatusPreparing)
	repo.CreateOrder(8, []domain.OrderItem{item("beer", 5, 1)}, "", "Alice")

	view := TableOccupancy(repo.Snapshot(), 3)
	if !view.Occupied {
		t.Errorf("table 3 must be occupied")
	}
	if view.ActiveOrders != 2 {
		t.Errorf("active orders: got %d, want 2", view.ActiveOrders)
	}
	if view.StatusCounts[domain.StatusPending] != 1 || view.StatusCounts[domain.StatusPreparing] != 1 {
		t.Errorf("status breakdown: got %v", view.StatusCounts)
	}
	if view.ActiveTotal != 11 {
		t.Errorf("active total: got %v, want 11 (price×quantity)", view.ActiveTotal)
	}
	if view.ClearedTotal != 0 {
		t.Errorf("cleared total: got %v, want 0", view.ClearedTotal)
	}

	repo.ClearTable(3, "Bob")
	view = TableOccupancy(repo.Snapshot(), 3)
	if view.Occupied || view.ActiveOrders != 0 || view.ActiveTotal != 0 {
		t.Errorf("after clear: %+v", view)
	}
	if view.ClearedTotal != 11 {
		t.Errorf("cleared history total: got %v, want 11", view.ClearedTotal)
	}
}

func TestOverviewCoversAllTables(t *testing.T) {
	t.Parallel()
	repo, _, _ := newTestRepo(t)
	repo.CreateOrder(2, []domain.OrderItem{item("tea", 2, 1)}, "", "Alice")

	views := Overview(repo.Snapshot(), repo.Tables())
	if len(views) != 10 {
		t.Fatalf("views: got %d, want 10", len(views))
	}
	if !views[1].Occupied {
		t.Errorf("table 2 must be occupied")
	}
	if views[0].Occupied {
		t.Errorf("table 1 must be free")
	}
}
