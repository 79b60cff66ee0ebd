package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RegisterType represents the kind of cash register
type RegisterType int

const (
	RegisterTypeStationary  RegisterType = 0
	RegisterTypeMobile      RegisterType = 1
	RegisterTypeExpress     RegisterType = 2
	RegisterTypeSelfService RegisterType = 3
)

func (t RegisterType) String() string {
	return [...]string{"Stationary", "Mobile", "Express", "SelfService"}[t]
}

func (t RegisterType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RegisterType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = RegisterType(i)
		return nil
	}
	switch str {
	case "Stationary":
		*t = RegisterTypeStationary
	case "Mobile":
		*t = RegisterTypeMobile
	case "Express":
		*t = RegisterTypeExpress
	case "SelfService":
		*t = RegisterTypeSelfService
	}
	return nil
}

func (t RegisterType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *RegisterType) Scan(value interface{}) error {
	if value == nil {
		*t = RegisterTypeStationary
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = RegisterType(v)
	case int:
		*t = RegisterType(v)
	}
	return nil
}
