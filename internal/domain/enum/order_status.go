package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the status of a service order
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusActive    OrderStatus = 1
	OrderStatusCompleted OrderStatus = 2
	OrderStatusCancelled OrderStatus = 3
)

func (s OrderStatus) String() string {
	return [...]string{"Pending", "Active", "Completed", "Cancelled"}[s]
}

// IsTerminal reports whether the order reached a final state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Active":
		*s = OrderStatusActive
	case "Completed":
		*s = OrderStatusCompleted
	case "Cancelled":
		*s = OrderStatusCancelled
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
