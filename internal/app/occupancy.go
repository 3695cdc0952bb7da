package app

import "github.com/example/barboard/internal/domain"

// TableView is the derived state of one table. Occupancy follows the
// clearedBy rule: a kitchen-completed order that nobody has cleared
// still holds its table.
type TableView struct {
	Table        int                        `json:"table"`
	Occupied     bool                       `json:"occupied"`
	ActiveOrders int                        `json:"activeOrders"`
	StatusCounts map[domain.OrderStatus]int `json:"statusCounts"`
	ActiveTotal  float64                    `json:"activeTotal"`
	ClearedTotal float64                    `json:"clearedTotal"`
}

// TableOccupancy derives the view for one table from an order
// snapshot. Pure function; nothing is cached between calls.
func TableOccupancy(orders []*domain.Order, table int) TableView {
	view := TableView{
		Table:        table,
		StatusCounts: make(map[domain.OrderStatus]int),
	}
	for _, o := range orders {
		if o.Table != table {
			continue
		}
		if o.Cleared() {
			view.ClearedTotal += o.Total()
			continue
		}
		view.Occupied = true
		view.ActiveOrders++
		view.StatusCounts[o.Status]++
		view.ActiveTotal += o.Total()
	}
	return view
}

// Occupied reports whether any order on the table has not been
// through a clear.
func Occupied(orders []*domain.Order, table int) bool {
	for _, o := range orders {
		if o.Table == table && !o.Cleared() {
			return true
		}
	}
	return false
}

// Overview derives every table's view for tables 1..count.
func Overview(orders []*domain.Order, count int) []TableView {
	views := make([]TableView, count)
	for t := 1; t <= count; t++ {
		views[t-1] = TableOccupancy(orders, t)
	}
	return views
}
