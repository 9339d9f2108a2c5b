package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap maps a jsonb column onto an opaque form payload.
type JSONMap map[string]any

// Scan decodes the jsonb text returned by postgres.
func (m *JSONMap) Scan(src interface{}) error {
	b, err := jsonBytes(src, "JSONMap")
	if err != nil || b == nil {
		*m = nil
		return err
	}
	out := JSONMap{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("JSONMap.Scan: %w", err)
	}
	*m = out
	return nil
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// StringList maps a jsonb array of strings.
type StringList []string

func (l *StringList) Scan(src interface{}) error {
	b, err := jsonBytes(src, "StringList")
	if err != nil || b == nil {
		*l = nil
		return err
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("StringList.Scan: %w", err)
	}
	*l = out
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonBytes(src interface{}, typ string) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%s.Scan: unsupported type %T", typ, src)
	}
}
