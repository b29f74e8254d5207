// Package value defines the tree representation of a parsed JSON document.
//
// Unlike map-based representations, mappings here preserve the order in
// which members appear in the source document, which makes parse/encode
// round trips stable.
package value

import (
	"strconv"
)

// Kind identifies the type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	Mapping
)

// String returns the lowercase name of the kind, matching JSON terminology.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "array"
	case Mapping:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair within a Mapping.
type Member struct {
	Key   string
	Value *Value
}

// Value is one node of a document tree. Values are built once during
// parsing and treated as immutable afterwards.
type Value struct {
	kind    Kind
	boolean bool
	number  string // verbatim lexeme from the source document
	str     string
	items   []*Value
	members []Member
}

// NewNull returns a null value.
func NewNull() *Value {
	return &Value{kind: Null}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return &Value{kind: Bool, boolean: b}
}

// NewNumber returns a number value holding the given lexeme. The lexeme is
// kept verbatim so that encoding reproduces the source text exactly.
func NewNumber(lexeme string) *Value {
	return &Value{kind: Number, number: lexeme}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{kind: String, str: s}
}

// NewSequence returns a sequence holding the given items.
func NewSequence(items ...*Value) *Value {
	return &Value{kind: Sequence, items: items}
}

// NewMapping returns an empty mapping. Members are added with Set.
func NewMapping() *Value {
	return &Value{kind: Mapping}
}

// Kind returns the kind of the value.
func (v *Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload. It is only meaningful for Bool values.
func (v *Value) Bool() bool {
	return v.boolean
}

// Str returns the string payload. It is only meaningful for String values.
func (v *Value) Str() string {
	return v.str
}

// NumberLexeme returns the verbatim number lexeme from the source document.
func (v *Value) NumberLexeme() string {
	return v.number
}

// Float64 converts a number value using standard decimal parsing semantics.
func (v *Value) Float64() (float64, error) {
	return strconv.ParseFloat(v.number, 64)
}

// Int64 converts a number value to an integer. It fails for numbers with a
// fractional part or ones that overflow int64.
func (v *Value) Int64() (int64, error) {
	return strconv.ParseInt(v.number, 10, 64)
}

// Len returns the number of items in a sequence or members in a mapping,
// and zero for scalar values.
func (v *Value) Len() int {
	switch v.kind {
	case Sequence:
		return len(v.items)
	case Mapping:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th item of a sequence, or nil if out of range.
func (v *Value) Index(i int) *Value {
	if v.kind != Sequence || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns the items of a sequence in document order.
func (v *Value) Items() []*Value {
	return v.items
}

// Members returns the members of a mapping in document order.
func (v *Value) Members() []Member {
	return v.members
}

// Get looks up a mapping member by key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != Mapping {
		return nil, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set adds a member to a mapping. If the key already exists the member's
// value is overwritten in place, keeping its original position, so repeated
// keys in a source document follow last-write-wins.
func (v *Value) Set(key string, val *Value) {
	for i, m := range v.members {
		if m.Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Append adds an item to the end of a sequence.
func (v *Value) Append(item *Value) {
	v.items = append(v.items, item)
}

// Equal reports whether two values are structurally equal. Mappings must
// agree on member order as well as content. Numbers compare by lexeme
// first, then by parsed float, so "1e1" and "10" compare equal.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.boolean == other.boolean
	case String:
		return v.str == other.str
	case Number:
		if v.number == other.number {
			return true
		}
		a, errA := v.Float64()
		b, errB := other.Float64()
		return errA == nil && errB == nil && a == b
	case Sequence:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key {
				return false
			}
			if !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
