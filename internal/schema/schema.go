package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Schema is a declarative structural contract over JSON-like values:
// required keys, primitive types, nullable unions, nested objects,
// arrays of objects, and fixed string enumerations.
type Schema struct {
	// Types lists the accepted JSON types ("object", "array", "string",
	// "integer", "boolean", "null"). A value satisfies the schema when it
	// matches any listed type. Empty means any type is accepted.
	Types      []string
	Properties map[string]*Schema
	Required   []string
	Items      *Schema
	Enum       []string
}

// Outcome is the result of validating a value. A non-conforming value is
// a normal, representable outcome, not an error.
type Outcome struct {
	Valid  bool
	Detail string
}

func valid() Outcome {
	return Outcome{Valid: true}
}

func invalid(path, format string, args ...interface{}) Outcome {
	return Outcome{Detail: fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...))}
}

// Validate checks value against s and reports the first violated
// constraint. It is a pure function of its inputs and never panics on
// malformed input.
func Validate(value interface{}, s *Schema) Outcome {
	if s == nil {
		return valid()
	}
	return validate(value, s, "$")
}

func validate(value interface{}, s *Schema, path string) Outcome {
	if len(s.Types) > 0 && !matchesAnyType(value, s.Types) {
		return invalid(path, "expected %s, got %s", strings.Join(s.Types, "|"), typeName(value))
	}

	if len(s.Enum) > 0 {
		str, ok := value.(string)
		if !ok || !contains(s.Enum, str) {
			return invalid(path, "value %v not in enum [%s]", value, strings.Join(s.Enum, ", "))
		}
	}

	if obj, ok := value.(map[string]interface{}); ok {
		for _, key := range s.Required {
			if _, present := obj[key]; !present {
				return invalid(path, "missing required key %q", key)
			}
		}

		// Sorted iteration keeps the reported violation deterministic.
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			child, present := obj[name]
			if !present {
				continue
			}
			if outcome := validate(child, s.Properties[name], path+"."+name); !outcome.Valid {
				return outcome
			}
		}
	}

	if arr, ok := value.([]interface{}); ok && s.Items != nil {
		for i, item := range arr {
			if outcome := validate(item, s.Items, fmt.Sprintf("%s[%d]", path, i)); !outcome.Valid {
				return outcome
			}
		}
	}

	return valid()
}

func matchesAnyType(value interface{}, types []string) bool {
	for _, t := range types {
		if matchesType(value, t) {
			return true
		}
	}
	return false
}

func matchesType(value interface{}, t string) bool {
	switch t {
	case "null":
		return value == nil
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer":
		return isInteger(value)
	case "number":
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case "object":
		_, ok := value.(map[string]interface{})
		return ok
	case "array":
		_, ok := value.([]interface{})
		return ok
	}
	return false
}

// isInteger accepts both native ints and the float64 representation
// encoding/json uses, as long as the number has no fractional part.
func isInteger(value interface{}) bool {
	switch v := value.(type) {
	case int, int64:
		return true
	case float64:
		return v == math.Trunc(v)
	}
	return false
}

func typeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	}
	return fmt.Sprintf("%T", value)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
