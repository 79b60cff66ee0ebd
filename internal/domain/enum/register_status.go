package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RegisterStatus represents the operational status of a cash register.
// A register in maintenance cannot open shifts.
type RegisterStatus int

const (
	RegisterStatusActive      RegisterStatus = 0
	RegisterStatusInactive    RegisterStatus = 1
	RegisterStatusMaintenance RegisterStatus = 2
)

func (s RegisterStatus) String() string {
	return [...]string{"Active", "Inactive", "Maintenance"}[s]
}

func (s RegisterStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RegisterStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = RegisterStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = RegisterStatusActive
	case "Inactive":
		*s = RegisterStatusInactive
	case "Maintenance":
		*s = RegisterStatusMaintenance
	}
	return nil
}

func (s RegisterStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *RegisterStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RegisterStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = RegisterStatus(v)
	case int:
		*s = RegisterStatus(v)
	}
	return nil
}
