package client

import (
	"encoding/json"
	"testing"

	"github.com/example/barboard/internal/domain"
)

func TestEventDecoding(t *testing.T) {
	t.Parallel()

	var ev Event
	raw := `{"type":"new_order","order":{"id":7,"table":2,"status":"pending","items":[{"name":"latte","price":4.5,"quantity":2}]}}`
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal new_order: %v", err)
	}
	if ev.Type != "new_order" || ev.Order == nil || ev.Order.ID != 7 {
		t.Errorf("new_order: %+v", ev)
	}
	if ev.Order.Total() != 9 {
		t.Errorf("total: got %v, want 9", ev.Order.Total())
	}

	ev = Event{}
	if err := json.Unmarshal([]byte(`{"type":"order_deleted","orderId":7}`), &ev); err != nil {
		t.Fatalf("unmarshal order_deleted: %v", err)
	}
	if ev.OrderID != 7 {
		t.Errorf("order_deleted: %+v", ev)
	}

	ev = Event{}
	if err := json.Unmarshal([]byte(`{"type":"table_cleared","tableNum":4}`), &ev); err != nil {
		t.Fatalf("unmarshal table_cleared: %v", err)
	}
	if ev.TableNum != 4 {
		t.Errorf("table_cleared: %+v", ev)
	}

	ev = Event{}
	raw = `{"type":"initial_orders","orders":[{"id":1,"status":"pending"},{"id":2,"status":"preparing"}]}`
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal initial_orders: %v", err)
	}
	if len(ev.Orders) != 2 || ev.Orders[1].Status != domain.StatusPreparing {
		t.Errorf("initial_orders: %+v", ev)
	}
}

func TestNewDefaultsDelay(t *testing.T) {
	t.Parallel()
	c := New("ws://localhost:3000/ws", domain.RoleBarmen, 0)
	if c.Delay <= 0 {
		t.Errorf("delay: got %v, want a positive default", c.Delay)
	}
}
