package models

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// NumericValue returns v as a float64 when it is a JSON or YAML number.
// Strings and booleans are never treated as numbers.
func NumericValue(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// ValuesEqual compares two parameter values. Numbers compare by value
// regardless of their Go representation; everything else must have the same
// type and be deeply equal, so "4" never equals 4.
func ValuesEqual(a, b interface{}) bool {
	af, aNum := NumericValue(a)
	bf, bNum := NumericValue(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	return reflect.DeepEqual(a, b)
}

// FormatValue renders a parameter value for diagnostics.
func FormatValue(v interface{}) string {
	if v == nil {
		return "<none>"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
