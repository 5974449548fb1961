package models

import (
	"encoding/json"
	"fmt"
)

// ValueKind enumerates the JSON value variants.
type ValueKind int

const (
	NullValue ValueKind = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

// Value is a tagged-union JSON value with explicit accessors. It replaces
// ad-hoc any-typed decoding at the wildfire-fallback boundary, where feature
// properties are heterogeneous and only loosely specified upstream.
type Value struct {
	kind ValueKind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  map[string]Value
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is JSON null (or absent).
func (v Value) IsNull() bool { return v.kind == NullValue }

// Bool returns the boolean payload; ok is false for other kinds.
func (v Value) Bool() (b bool, ok bool) { return v.b, v.kind == BoolValue }

// Number returns the numeric payload; ok is false for other kinds.
func (v Value) Number() (n float64, ok bool) { return v.num, v.kind == NumberValue }

// Str returns the string payload; ok is false for other kinds.
func (v Value) Str() (s string, ok bool) { return v.str, v.kind == StringValue }

// Index returns element i of an array value; ok is false for other kinds
// or out-of-range indexes.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ArrayValue || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Field returns the named member of an object value; ok is false for other
// kinds or missing keys.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != ObjectValue {
		return Value{}, false
	}
	val, ok := v.obj[name]
	return val, ok
}

// UnmarshalJSON decodes any JSON value into its tagged form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromInterface(raw)
	return nil
}

// MarshalJSON re-encodes the tagged value as plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullValue:
		return []byte("null"), nil
	case BoolValue:
		return json.Marshal(v.b)
	case NumberValue:
		return json.Marshal(v.num)
	case StringValue:
		return json.Marshal(v.str)
	case ArrayValue:
		return json.Marshal(v.arr)
	case ObjectValue:
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

func fromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Value{kind: NullValue}
	case bool:
		return Value{kind: BoolValue, b: t}
	case float64:
		return Value{kind: NumberValue, num: t}
	case string:
		return Value{kind: StringValue, str: t}
	case []interface{}:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = fromInterface(e)
		}
		return Value{kind: ArrayValue, arr: arr}
	case map[string]interface{}:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			obj[k] = fromInterface(e)
		}
		return Value{kind: ObjectValue, obj: obj}
	default:
		return Value{kind: NullValue}
	}
}
