package app

import (
	"time"

	"github.com/example/barboard/internal/domain"
)

// DayStats is the rollup for one reference day. Revenue counts only
// cleared orders: money is realized when staff clears the table, not
// when the kitchen marks an order done.
type DayStats struct {
	Date           string  `json:"date"`
	Orders         int     `json:"orders"`
	Active         int     `json:"active"`
	OccupiedTables int     `json:"occupiedTables"`
	Cleared        int     `json:"cleared"`
	Revenue        float64 `json:"revenue"`
}

// StatsForDay computes the rollup over a snapshot. Day membership is
// by creation timestamp between local midnights. Occupied tables are
// counted over the whole snapshot: occupancy is a current-moment
// concept, not a day-scoped one.
func StatsForDay(orders []*domain.Order, day time.Time, tables int) DayStats {
	from := startOfDay(day)
	to := from.AddDate(0, 0, 1)

	stats := DayStats{Date: from.Format("2006-01-02")}
	for _, o := range orders {
		if o.Timestamp.Before(from) || !o.Timestamp.Before(to) {
			continue
		}
		stats.Orders++
		if o.Cleared() {
			stats.Cleared++
			stats.Revenue += o.Total()
		} else {
			stats.Active++
		}
	}
	for t := 1; t <= tables; t++ {
		if Occupied(orders, t) {
			stats.OccupiedTables++
		}
	}
	return stats
}
