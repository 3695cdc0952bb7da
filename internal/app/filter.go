package app

import (
	"sort"
	"time"

	"github.com/example/barboard/internal/domain"
)

type Window string

const (
	WindowAll   Window = ""
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Filter narrows a listing. Zero values mean "no constraint".
type Filter struct {
	Status domain.OrderStatus
	// Open keeps only orders whose status is not completed. Used for
	// the barmen catch-up snapshot.
	Open        bool
	Window      Window
	Table       int
	NewestFirst bool
}

// ListOrders returns matching orders, in creation order unless
// NewestFirst is set.
func (r *Repository) ListOrders(f Filter) ([]*domain.Order, error) {
	var since time.Time
	switch f.Window {
	case WindowAll:
	case WindowToday:
		since = startOfDay(time.Now())
	case WindowWeek:
		since = startOfDay(time.Now()).AddDate(0, 0, -6)
	case WindowMonth:
		since = startOfDay(time.Now()).AddDate(0, 0, -29)
	default:
		return nil, domain.Validationf("unknown window %q", f.Window)
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Validationf("unknown status %q", f.Status)
	}

	var out []*domain.Order
	for _, o := range r.Snapshot() {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Open && o.Status == domain.StatusCompleted {
			continue
		}
		if f.Table != 0 && o.Table != f.Table {
			continue
		}
		if !since.IsZero() && o.Timestamp.Before(since) {
			continue
		}
		out = append(out, o)
	}
	if f.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out, nil
}

// startOfDay truncates to local midnight. Date windows are anchored to
// wall-clock midnight boundaries, not rolling 24h periods.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
