package manifest

import (
	"encoding/json"
	"strconv"
)

// Draft values arrive as whatever JSON decoding produced: numbers as
// float64, checklists as []any, nested tables as map[string]any. These
// coercions are the one place draft values become typed columns.

// String returns the field as a string, empty when unset.
func String(draft map[string]any, field string) string {
	switch v := draft[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the field as an int, zero when unset or non-numeric.
func Int(draft map[string]any, field string) int {
	switch v := draft[field].(type) {
	case int:
		return v
	case float64:
		return int(v)
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

// Float returns the field as a float64, zero when unset or non-numeric.
func Float(draft map[string]any, field string) float64 {
	switch v := draft[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// JSONText encodes a checklist or nested table as column text. Values
// already stored as text pass through; nil becomes an empty string.
func JSONText(draft map[string]any, field string) string {
	v, ok := draft[field]
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
