package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentSource identifies where a payment method definition comes from:
// the three built-in system channels or a shop-defined custom channel.
type PaymentSource int

const (
	PaymentSourceCash   PaymentSource = 0
	PaymentSourceCard   PaymentSource = 1
	PaymentSourceQR     PaymentSource = 2
	PaymentSourceCustom PaymentSource = 3
)

func (s PaymentSource) String() string {
	return [...]string{"Cash", "Card", "QR", "Custom"}[s]
}

// IsSystem reports whether the source is one of the built-in channels.
func (s PaymentSource) IsSystem() bool {
	return s != PaymentSourceCustom
}

func (s PaymentSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentSource(i)
		return nil
	}
	switch str {
	case "Cash":
		*s = PaymentSourceCash
	case "Card":
		*s = PaymentSourceCard
	case "QR":
		*s = PaymentSourceQR
	case "Custom":
		*s = PaymentSourceCustom
	}
	return nil
}

func (s PaymentSource) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentSource) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentSourceCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentSource(v)
	case int:
		*s = PaymentSource(v)
	}
	return nil
}

// PaymentScope controls balance sharing: a Dedicated method belongs to one
// register, a Shared method is a single warehouse-level record reused by
// every register of the shop.
type PaymentScope int

const (
	PaymentScopeDedicated PaymentScope = 0
	PaymentScopeShared    PaymentScope = 1
)

func (s PaymentScope) String() string {
	return [...]string{"Dedicated", "Shared"}[s]
}

func (s PaymentScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentScope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentScope(i)
		return nil
	}
	switch str {
	case "Dedicated":
		*s = PaymentScopeDedicated
	case "Shared":
		*s = PaymentScopeShared
	}
	return nil
}

func (s PaymentScope) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentScope) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentScopeDedicated
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentScope(v)
	case int:
		*s = PaymentScope(v)
	}
	return nil
}

// MethodStatus represents whether a payment method is selectable at sale time.
// Inactive methods stay in the database for historical transaction display.
type MethodStatus int

const (
	MethodStatusActive   MethodStatus = 0
	MethodStatusInactive MethodStatus = 1
)

func (s MethodStatus) String() string {
	return [...]string{"Active", "Inactive"}[s]
}

func (s MethodStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MethodStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = MethodStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = MethodStatusActive
	case "Inactive":
		*s = MethodStatusInactive
	}
	return nil
}

func (s MethodStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *MethodStatus) Scan(value interface{}) error {
	if value == nil {
		*s = MethodStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = MethodStatus(v)
	case int:
		*s = MethodStatus(v)
	}
	return nil
}
