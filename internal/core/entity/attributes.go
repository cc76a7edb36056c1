package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Attributes stores entity custom fields as a JSONB column.
type Attributes map[string]any

// Value implements driver.Valuer for database serialization.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database deserialization.
func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("attributes: unsupported scan type %T", src)
	}

	return json.Unmarshal(data, a)
}
