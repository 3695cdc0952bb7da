package app

import (
	"testing"
	"time"

	"github.com/example/barboard/internal/domain"
)

func mkOrder(id, table int, ts time.Time, status domain.OrderStatus, clearedBy string, items ...domain.OrderItem) *domain.Order {
	o := &domain.Order{ID: id, Table: table, Timestamp: ts, Status: status, Items: items}
	if status == domain.StatusCompleted {
		done := ts.Add(10 * time.Minute)
		o.CompletedAt = &done
	}
	if clearedBy != "" {
		name := clearedBy
		o.ClearedBy = &name
	}
	return o
}

func TestRevenueCountsOnlyClearedOrders(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	// Order A is kitchen-completed but never cleared; its $10 is not
	// realized. Order B was cleared by Bob, so its $7.50 counts.
	orders := []*domain.Order{
		mkOrder(1, 1, day, domain.StatusCompleted, "", item("plate", 10, 1)),
		mkOrder(2, 2, day, domain.StatusCompleted, "Bob", item("soup", 2.5, 3)),
	}

	stats := StatsForDay(orders, day, 10)
	if stats.Revenue != 7.5 {
		t.Errorf("revenue: got %v, want 7.5", stats.Revenue)
	}
	if stats.Orders != 2 {
		t.Errorf("day orders: got %d, want 2", stats.Orders)
	}
	if stats.Active != 1 {
		t.Errorf("active: got %d, want 1 (A is uncleared)", stats.Active)
	}
	if stats.Cleared != 1 {
		t.Errorf("cleared: got %d, want 1", stats.Cleared)
	}
}

func TestStatsDayScoping(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	orders := []*domain.Order{
		mkOrder(1, 1, day.Add(-time.Minute), domain.StatusCompleted, "Bob", item("tea", 2, 1)),
		mkOrder(2, 2, day.Add(time.Hour), domain.StatusPending, "", item("tea", 2, 1)),
		mkOrder(3, 3, day.Add(23*time.Hour+59*time.Minute), domain.StatusCompleted, "Bob", item("cake", 3, 2)),
		mkOrder(4, 4, day.AddDate(0, 0, 1), domain.StatusCompleted, "Bob", item("tea", 2, 1)),
	}

	stats := StatsForDay(orders, day.Add(15*time.Hour), 10)
	if stats.Orders != 2 {
		t.Errorf("day orders: got %d, want 2 (midnight boundaries)", stats.Orders)
	}
	if stats.Revenue != 6 {
		t.Errorf("revenue: got %v, want 6 (order 3 only)", stats.Revenue)
	}
	if stats.Date != "2026-08-29" {
		t.Errorf("date: got %q", stats.Date)
	}
}

func TestOccupiedTablesNotDayScoped(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	// An old uncleared order still occupies its table even though it
	// contributes nothing to the reference day's counts.
	orders := []*domain.Order{
		mkOrder(1, 5, day.AddDate(0, 0, -3), domain.StatusPending, "", item("tea", 2, 1)),
		mkOrder(2, 6, day, domain.StatusPending, "", item("tea", 2, 1)),
		mkOrder(3, 7, day, domain.StatusCompleted, "Bob", item("tea", 2, 1)),
	}

	stats := StatsForDay(orders, day, 10)
	if stats.OccupiedTables != 2 {
		t.Errorf("occupied tables: got %d, want 2 (tables 5 and 6)", stats.OccupiedTables)
	}
	if stats.Orders != 2 {
		t.Errorf("day orders: got %d, want 2", stats.Orders)
	}
}
