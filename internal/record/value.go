// Package record holds the nested, insertion-ordered value tree that a
// system report is rendered from.
package record

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Value is one node of a report: a scalar leaf, a mapping with ordered keys,
// or a sequence. The zero Value is a nil scalar.
type Value struct {
	kind   Kind
	scalar any
	fields []Field
	items  []Value
}

// Field is a single key of a mapping.
type Field struct {
	Key   string
	Value Value
}

// Scalar wraps a leaf value (string, number, bool or nil). Integers are
// stored as int64 and float32 as float64, the types a decoded document holds.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: normalize(v)}
}

func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		if uint64(n) <= math.MaxInt64 {
			return int64(n)
		}
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n)
		}
	case float32:
		return float64(n)
	}
	return v
}

// FormatFloat renders f in plain decimal notation, keeping a ".0" on whole
// numbers so they stay floats when read back. NaN and infinities use the
// strconv spellings.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Mapping builds a mapping that keeps the given key order.
func Mapping(fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: KindMapping, fields: fields}
}

// Sequence builds a sequence of values.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

// KV is shorthand for a mapping field holding a scalar.
func KV(key string, v any) Field {
	return Field{Key: key, Value: Scalar(v)}
}

// Nested is shorthand for a mapping field holding any value.
func Nested(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// Floats builds a sequence of numeric scalars.
func Floats(fs []float64) Value {
	items := make([]Value, len(fs))
	for i, f := range fs {
		items[i] = Scalar(f)
	}
	return Sequence(items...)
}

func (v Value) Kind() Kind { return v.kind }

// Interface returns the scalar payload, or nil for mappings and sequences.
func (v Value) Interface() any {
	if v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

func (v Value) Fields() []Field { return v.fields }

func (v Value) Items() []Value { return v.items }

// Len reports the number of fields or items; scalars have length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.fields)
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Get looks up key in a mapping. The first occurrence wins.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether a mapping contains key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Index returns the i-th item of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Plain converts the tree into map[string]any / []any / scalar form for
// encoders that do not understand Value. Key order is lost.
func (v Value) Plain() any {
	switch v.kind {
	case KindMapping:
		m := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			m[f.Key] = f.Value.Plain()
		}
		return m
	case KindSequence:
		s := make([]any, len(v.items))
		for i, item := range v.items {
			s[i] = item.Plain()
		}
		return s
	default:
		return v.scalar
	}
}
