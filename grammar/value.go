package grammar

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Kind indicates the variant held by a [Value].
type Kind int

const (
	// KindNull represents the absence of a value.
	KindNull Kind = iota

	// KindString represents a literal string value.
	KindString

	// KindNumber represents a numeric value.
	KindNumber

	// KindArray represents an ordered list of values.
	KindArray

	// KindObject represents a mapping from string keys to values.
	KindObject
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is the structured representation of grammar source and rule contents:
// a tagged union over null, string, number, array, and object.
//
// Grammar source is a Value of [KindObject] mapping rule names to rule
// contents. Rule contents are strings (literal expansions), arrays
// (alternatives), or objects (handler-driven generators).
type Value struct {
	Kind Kind
	// Exactly one of these is meaningful, selected by Kind.
	Str string
	Num float64
	Arr []*Value
	Obj map[string]*Value
}

// NewString creates a string value.
func NewString(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// NewNumber creates a numeric value.
func NewNumber(n float64) *Value {
	return &Value{Kind: KindNumber, Num: n}
}

// NewArray creates an array value from the given elements.
func NewArray(elems ...*Value) *Value {
	return &Value{Kind: KindArray, Arr: elems}
}

// NewStringArray creates an array value whose elements are the given strings.
func NewStringArray(elems ...string) *Value {
	arr := make([]*Value, 0, len(elems))
	for _, s := range elems {
		arr = append(arr, NewString(s))
	}

	return &Value{Kind: KindArray, Arr: arr}
}

// NewObject creates an object value from the given mapping.
func NewObject(fields map[string]*Value) *Value {
	return &Value{Kind: KindObject, Obj: fields}
}

// FromAny converts a dynamically typed value, as produced by YAML or JSON
// decoding, into a structured Value.
//
// Supported dynamic types are nil, string, the Go numeric types produced by
// decoders, []any, and map[string]any. Anything else is rejected with
// [ErrUnexpectedType].
func FromAny(v any) (*Value, error) {
	switch t := v.(type) {
	case nil:
		return &Value{Kind: KindNull}, nil
	case string:
		return NewString(t), nil
	case int:
		return NewNumber(float64(t)), nil
	case int64:
		return NewNumber(float64(t)), nil
	case uint64:
		return NewNumber(float64(t)), nil
	case float64:
		return NewNumber(t), nil
	case []any:
		arr := make([]*Value, 0, len(t))

		for _, elem := range t {
			ev, err := FromAny(elem)
			if err != nil {
				return nil, err
			}

			arr = append(arr, ev)
		}

		return &Value{Kind: KindArray, Arr: arr}, nil
	case map[string]any:
		obj := make(map[string]*Value, len(t))

		for key, elem := range t {
			ev, err := FromAny(elem)
			if err != nil {
				return nil, err
			}

			obj[key] = ev
		}

		return &Value{Kind: KindObject, Obj: obj}, nil
	default:
		return nil, ErrUnexpectedType.
			With(slog.String("type", typeName(v)))
	}
}

// ParseSource decodes grammar source text into a structured Value.
// YAML is a superset of JSON, so grammars may be written in either encoding.
func ParseSource(src []byte) (*Value, error) {
	var raw any

	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, WrapError(err)
	}

	return FromAny(raw)
}

// String renders the value as the text it contributes to generated output.
// Null renders empty, numbers render in their shortest decimal form, arrays
// and objects render a diagnostic form (they never reach final output).
func (v *Value) String() string {
	if v == nil {
		return ""
	}

	switch v.Kind {
	case KindNull:
		return ""
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindArray:
		parts := make([]string, 0, len(v.Arr))
		for _, elem := range v.Arr {
			parts = append(parts, elem.String())
		}

		return "[" + strings.Join(parts, ",") + "]"
	case KindObject:
		keys := make([]string, 0, len(v.Obj))
		for key := range v.Obj {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+":"+v.Obj[key].String())
		}

		return "{" + strings.Join(parts, ",") + "}"
	default:
		return ""
	}
}

// Field returns the named field of an object value.
// Returns (nil, false) for non-objects and missing fields.
func (v *Value) Field(name string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}

	f, ok := v.Obj[name]

	return f, ok
}
