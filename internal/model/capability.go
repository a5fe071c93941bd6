package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CapabilitySet is the set of named permission flags a principal holds.
// Stored as a jsonb array.
type CapabilitySet []string

func (c CapabilitySet) Has(name string) bool {
	for _, cap := range c {
		if cap == name {
			return true
		}
	}
	return false
}

func (c CapabilitySet) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

func (c *CapabilitySet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into CapabilitySet", src)
	}
}
