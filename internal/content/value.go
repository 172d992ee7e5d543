package content

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the shapes a payload field can take. Payloads are
// schema-less: nothing outside this package should assume a fixed layout.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is one node of a screen payload: a scalar, an ordered list of
// values, or an object keyed by field name. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	obj  map[string]Value
}

func Null() Value                    { return Value{} }
func String(s string) Value          { return Value{kind: KindString, str: s} }
func Number(n float64) Value         { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value              { return Value{kind: KindBool, b: b} }
func List(items ...Value) Value      { return Value{kind: KindList, list: items} }
func Object(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindObject, obj: m}
}

func (v Value) Kind() Kind { return v.kind }

// Str returns the string content, or "" for non-strings.
func (v Value) Str() string { return v.str }

// Num returns the numeric content, or 0 for non-numbers.
func (v Value) Num() float64 { return v.num }

// IsTrue returns the boolean content, or false for non-bools.
func (v Value) IsTrue() bool { return v.b }

// Items returns the list elements; nil for non-lists.
func (v Value) Items() []Value { return v.list }

// Fields returns the object fields; nil for non-objects.
func (v Value) Fields() map[string]Value { return v.obj }

// Field returns a named field of an object value.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.obj[name]
	return val, ok
}

// FieldNames returns an object's field names in sorted order, so callers
// that render or diff payloads get a stable sequence.
func (v Value) FieldNames() []string {
	if v.kind != KindObject {
		return nil
	}
	names := make([]string, 0, len(v.obj))
	for name := range v.obj {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy. Mutating the copy never aliases the original.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return Value{kind: KindList, list: items}
	case KindObject:
		fields := make(map[string]Value, len(v.obj))
		for name, field := range v.obj {
			fields[name] = field.Clone()
		}
		return Value{kind: KindObject, obj: fields}
	default:
		return v
	}
}

// Interface converts the value into plain Go types (the encoding/json
// shapes: string, float64, bool, []any, map[string]any, nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		fields := make(map[string]any, len(v.obj))
		for name, field := range v.obj {
			fields[name] = field.Interface()
		}
		return fields
	default:
		return nil
	}
}

// FromInterface builds a Value from the plain Go shapes produced by
// encoding/json. Integers are accepted alongside float64 for convenience.
func FromInterface(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(typed), nil
	case float64:
		return Number(typed), nil
	case int:
		return Number(float64(typed)), nil
	case bool:
		return Bool(typed), nil
	case []any:
		items := make([]Value, len(typed))
		for i, elem := range typed {
			item, err := FromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return Value{kind: KindList, list: items}, nil
	case map[string]any:
		fields := make(map[string]Value, len(typed))
		for name, elem := range typed {
			field, err := FromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			fields[name] = field
		}
		return Value{kind: KindObject, obj: fields}, nil
	default:
		return Value{}, fmt.Errorf("unsupported payload value type %T", raw)
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
