// Package values contains domain value objects that encapsulate primitive
// types with validation.
package values

import "fmt"

// OptionKind is the expected value kind of a widget option.
type OptionKind string

const (
	KindString OptionKind = "string"
	KindInt    OptionKind = "int"
	KindFloat  OptionKind = "float"
	KindBool   OptionKind = "bool"
	KindList   OptionKind = "list"
	KindMap    OptionKind = "map"
)

// ParseOptionKind converts a JSON Schema type name or kind string into an
// OptionKind.
func ParseOptionKind(s string) (OptionKind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "number":
		return KindFloat, nil
	case "bool", "boolean":
		return KindBool, nil
	case "list", "array":
		return KindList, nil
	case "map", "object":
		return KindMap, nil
	default:
		return "", fmt.Errorf("unknown option kind: %q", s)
	}
}

// Matches reports whether a decoded YAML value conforms to the kind.
// Integers are accepted where floats are expected, matching YAML's numeric
// model.
func (k OptionKind) Matches(v interface{}) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		return isInt(v)
	case KindFloat:
		if isInt(v) {
			return true
		}
		switch v.(type) {
		case float32, float64:
			return true
		}
		return false
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindList:
		_, ok := v.([]interface{})
		return ok
	case KindMap:
		_, ok := v.(map[string]interface{})
		return ok
	default:
		return false
	}
}

func (k OptionKind) String() string {
	return string(k)
}

func isInt(v interface{}) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		// JSON round-trips decode integers as float64.
		return n == float64(int64(n))
	default:
		return false
	}
}
