package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap stores an untyped JSON object in a single column. Proposals ride
// in as whatever shape the submitting client sent; readers must apply their
// own fallbacks.
type JSONMap map[string]interface{}

// Value implements database/sql/driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements database/sql.Scanner
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan JSONMap")
	}

	return json.Unmarshal(bytes, m)
}

// String reads a string field, returning fallback when the field is absent,
// empty, or not a string.
func (m JSONMap) String(key, fallback string) string {
	if m == nil {
		return fallback
	}
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// StringPtr reads an optional string field as a nullable column value.
func (m JSONMap) StringPtr(key string) *string {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// Float reads an optional numeric field. JSON numbers decode as float64.
func (m JSONMap) Float(key string) *float64 {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

// Int reads an optional numeric field as an integer id.
func (m JSONMap) Int(key string) *uint {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(float64); ok && v >= 0 {
		n := uint(v)
		return &n
	}
	return nil
}

// Bool reads a boolean field, returning fallback when absent or mistyped.
func (m JSONMap) Bool(key string, fallback bool) bool {
	if m == nil {
		return fallback
	}
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}
