package tablestore

import (
	"encoding/json"
	"strconv"
)

// Entity property names every stored entity carries. Together they form
// the entity's unique identity within a table; they are caller-assigned
// and never reused.
const (
	PropPartitionKey = "PartitionKey"
	PropRowKey       = "RowKey"
)

// Entity is the wire representation exchanged with the table service.
// The store is schema-less: beyond PartitionKey and RowKey all properties
// are table-specific scalars.
type Entity map[string]any

// PartitionKey returns the entity's partition key, or "" if absent.
func (e Entity) PartitionKey() string {
	return e.String(PropPartitionKey)
}

// RowKey returns the entity's row key, or "" if absent.
func (e Entity) RowKey() string {
	return e.String(PropRowKey)
}

// String returns the named property as a string, or "" when the property
// is absent or not a string.
func (e Entity) String(name string) string {
	if v, ok := e[name].(string); ok {
		return v
	}
	return ""
}

// Int returns the named property coerced to an int. JSON decoding yields
// float64 for numbers; older records written by permissive clients may
// hold numeric strings. Anything non-numeric yields 0.
func (e Entity) Int(name string) int {
	switch v := e[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
