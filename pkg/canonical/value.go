// Package canonical implements the deterministic byte encoding that every
// hash and signature in the protocol is computed over. It is total on the
// canonical value domain (null, bool, safe integers, strings, arrays, and
// string-keyed maps) and rejects everything else, in particular floats and
// out-of-range integers.
package canonical

import "github.com/oerc-s/primordia/pkg/perrors"

// Kind identifies the runtime shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindArray
	KindMap
)

// Value is a canonical-domain value. Construct one with the Null/Bool/Int/
// String/Array/Map helpers rather than the struct literal directly.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	arr  []Value
	m    map[string]Value
}

// MaxSafeInt and MinSafeInt bound the integers the codec will encode,
// matching the spec's 53-bit-safe integer domain.
const (
	MaxSafeInt int64 = (1 << 53) - 1
	MinSafeInt int64 = -(1<<53 - 1)
)

func Null() Value            { return Value{kind: KindNull} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

// Map builds a canonical map value. Key order in the argument is irrelevant;
// Encode always emits keys sorted by code point.
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// MapBuilder accumulates key/value pairs for a Map, convenient for building
// record content maps field by field.
type MapBuilder struct {
	m map[string]Value
}

func NewMapBuilder() *MapBuilder { return &MapBuilder{m: make(map[string]Value)} }

func (b *MapBuilder) Set(key string, v Value) *MapBuilder {
	b.m[key] = v
	return b
}

func (b *MapBuilder) Build() Value { return Map(b.m) }

// validateInt reports whether i falls within the safe integer range.
func validateInt(i int64) error {
	if i < MinSafeInt || i > MaxSafeInt {
		return perrors.New(perrors.KindCanonical, "integer %d outside safe range [%d, %d]", i, MinSafeInt, MaxSafeInt)
	}
	return nil
}
