package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Ref is a relationship to another record. In JSON it accepts both the bare
// identifier ("prod_1", 42) and an expanded object carrying an "id" field.
type Ref string

func (r Ref) String() string {
	return string(r)
}

func (r Ref) IsZero() bool {
	return r == ""
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	case '{':
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		return r.UnmarshalJSON(obj.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported reference %s", string(b))
		}
		*r = Ref(n.String())
		return nil
	}
}

// Value stores an empty reference as NULL.
func (r Ref) Value() (driver.Value, error) {
	if r == "" {
		return nil, nil
	}
	return string(r), nil
}

func (r *Ref) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = ""
	case string:
		*r = Ref(v)
	case []byte:
		*r = Ref(string(v))
	case int64:
		*r = Ref(fmt.Sprint(v))
	default:
		return fmt.Errorf("can't scan %T into Ref", src)
	}
	return nil
}
