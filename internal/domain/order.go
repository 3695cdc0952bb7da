// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports caller input that can never succeed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a failed durable-store write. The in-memory
// state is unchanged when one of these is returned.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// allowed successors; completed is terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing},
	StatusPreparing: {StatusPending, StatusCompleted},
	StatusCompleted: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, succ := range transitions[s] {
		if succ == next {
			return true
		}
	}
	return false
}

type OrderItem struct {
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`
}

type Order struct {
	ID          int         `json:"id"`
	Table       int         `json:"table"`
	Items       []OrderItem `json:"items"`
	Notes       string      `json:"notes"`
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	CompletedAt *time.Time  `json:"completedAt"`
	ClearedBy   *string     `json:"clearedBy"`
	Waiter      string      `json:"waiter"`
}

// Total is the order's price sum. Quantity always multiplies price;
// any view that sums raw prices is wrong.
func (o *Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Cleared reports whether the order has been through a table clear.
// Distinct from StatusCompleted: the kitchen can finish an order while
// the table still holds it.
func (o *Order) Cleared() bool {
	return o.ClearedBy != nil
}

// Clone returns an independent copy, items included.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = make([]OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		cp.CompletedAt = &t
	}
	if o.ClearedBy != nil {
		s := *o.ClearedBy
		cp.ClearedBy = &s
	}
	return &cp
}
