package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty" valid:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty" valid:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty" valid:"required"`
	Phone      string `json:"phone,omitempty"`
}

// JSONAddress is a nullable address stored in a JSON column.
type JSONAddress struct {
	*Address
}

func (a JSONAddress) Value() (driver.Value, error) {
	if a.Address == nil {
		return nil, nil
	}
	return json.Marshal(a.Address)
}

func (a *JSONAddress) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		a.Address = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("can't scan %T into address", src)
	}
	var addr Address
	if err := json.Unmarshal(b, &addr); err != nil {
		return fmt.Errorf("can't unmarshal address: %w", err)
	}
	a.Address = &addr
	return nil
}
