package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value holds either a single string or an ordered list of strings. The zero
// value is an empty scalar.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar builds a single-string value.
func Scalar(value string) Value {
	return Value{scalar: value}
}

// List builds an ordered list value. A nil slice yields an empty list.
func List(values ...string) Value {
	return Value{list: append([]string{}, values...), isList: true}
}

// IsList reports whether the value carries a list.
func (v Value) IsList() bool {
	return v.isList
}

// String returns the scalar, or the first list element for list values.
func (v Value) String() string {
	if v.isList {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// Strings returns a copy of the list, or a one-element list for non-empty
// scalars.
func (v Value) Strings() []string {
	if v.isList {
		return append([]string{}, v.list...)
	}
	if v.scalar == "" {
		return []string{}
	}
	return []string{v.scalar}
}

// Empty reports whether the value is an empty (or whitespace) scalar or a
// list without non-blank entries.
func (v Value) Empty() bool {
	if v.isList {
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(v.scalar) == ""
}

// Equal compares shape and content.
func (v Value) Equal(other Value) bool {
	if v.isList != other.isList {
		return false
	}
	if !v.isList {
		return v.scalar == other.scalar
	}
	if len(v.list) != len(other.list) {
		return false
	}
	for i := range v.list {
		if v.list[i] != other.list[i] {
			return false
		}
	}
	return true
}

// Interface returns a string or []string suitable for plain records.
func (v Value) Interface() any {
	if v.isList {
		return v.Strings()
	}
	return v.scalar
}

// ValueOf converts plain decoded data (string, []string, []any, bool,
// numbers) into a Value.
func ValueOf(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Scalar(""), nil
	case Value:
		return typed, nil
	case string:
		return Scalar(typed), nil
	case []string:
		return List(typed...), nil
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			str, ok := item.(string)
			if !ok {
				str = fmt.Sprint(item)
			}
			items = append(items, str)
		}
		return List(items...), nil
	case bool:
		if typed {
			return Scalar("true"), nil
		}
		return Scalar("false"), nil
	case int, int32, int64, float32, float64:
		return Scalar(fmt.Sprint(typed)), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", raw)
	}
}

// MarshalJSON encodes scalars as JSON strings and lists as string arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		return json.Marshal(v.Strings())
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON accepts a string, an array of strings or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Scalar("")
		return nil
	}
	if trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("model: decode list value: %w", err)
		}
		*v = List(items...)
		return nil
	}
	var scalar string
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return fmt.Errorf("model: decode scalar value: %w", err)
	}
	*v = Scalar(scalar)
	return nil
}

// MarshalYAML encodes scalars as YAML strings and lists as sequences.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML accepts a scalar, a sequence of scalars or null.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("model: decode list value: %w", err)
		}
		*v = List(items...)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*v = Scalar("")
			return nil
		}
		*v = Scalar(node.Value)
	default:
		return fmt.Errorf("model: unsupported yaml value at line %d", node.Line)
	}
	return nil
}
