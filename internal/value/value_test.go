package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "boolean", Bool.String())
	assert.Equal(t, "number", Number.String())
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "array", Sequence.String())
	assert.Equal(t, "object", Mapping.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNumberConversions(t *testing.T) {
	n := NewNumber("42")
	i, err := n.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	f, err := n.Float64()
	require.NoError(t, err)
	assert.Equal(t, 42.0, f)

	frac := NewNumber("3.14")
	_, err = frac.Int64()
	assert.Error(t, err, "fractional lexeme should not convert to int64")
	f, err = frac.Float64()
	require.NoError(t, err)
	assert.Equal(t, 3.14, f)

	assert.Equal(t, "3.14", frac.NumberLexeme())
}

func TestMappingSetPreservesOrder(t *testing.T) {
	m := NewMapping()
	m.Set("b", NewNumber("1"))
	m.Set("a", NewNumber("2"))
	m.Set("c", NewNumber("3"))

	keys := []string{}
	for _, member := range m.Members() {
		keys = append(keys, member.Key)
	}
	assert.Equal(t, []string{"b", "a", "c"}, keys)
}

func TestMappingSetOverwritesInPlace(t *testing.T) {
	m := NewMapping()
	m.Set("a", NewNumber("1"))
	m.Set("b", NewNumber("2"))
	m.Set("a", NewNumber("3"))

	require.Equal(t, 2, m.Len())
	assert.Equal(t, "a", m.Members()[0].Key)
	assert.Equal(t, "3", m.Members()[0].Value.NumberLexeme())
	assert.Equal(t, "b", m.Members()[1].Key)
}

func TestMappingGet(t *testing.T) {
	m := NewMapping()
	m.Set("name", NewString("Alice"))

	v, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", v.Str())

	_, ok = m.Get("missing")
	assert.False(t, ok)

	_, ok = NewString("not a mapping").Get("name")
	assert.False(t, ok)
}

func TestSequenceIndex(t *testing.T) {
	s := NewSequence(NewNumber("1"), NewNumber("2"))
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "1", s.Index(0).NumberLexeme())
	assert.Equal(t, "2", s.Index(1).NumberLexeme())
	assert.Nil(t, s.Index(2))
	assert.Nil(t, s.Index(-1))

	s.Append(NewNumber("3"))
	assert.Equal(t, 3, s.Len())
}

func TestLenOnScalars(t *testing.T) {
	assert.Equal(t, 0, NewNull().Len())
	assert.Equal(t, 0, NewString("x").Len())
	assert.Equal(t, 0, NewNumber("1").Len())
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"Nulls", NewNull(), NewNull(), true},
		{"Bools", NewBool(true), NewBool(true), true},
		{"BoolMismatch", NewBool(true), NewBool(false), false},
		{"KindMismatch", NewNull(), NewBool(false), false},
		{"Strings", NewString("a"), NewString("a"), true},
		{"SameLexeme", NewNumber("1.5"), NewNumber("1.5"), true},
		{"EquivalentLexemes", NewNumber("1e1"), NewNumber("10"), true},
		{"DifferentNumbers", NewNumber("1"), NewNumber("2"), false},
		{"Sequences", NewSequence(NewNumber("1")), NewSequence(NewNumber("1")), true},
		{"SequenceLength", NewSequence(NewNumber("1")), NewSequence(), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
		})
	}
}

func TestEqualMappingOrderMatters(t *testing.T) {
	ab := NewMapping()
	ab.Set("a", NewNumber("1"))
	ab.Set("b", NewNumber("2"))

	ba := NewMapping()
	ba.Set("b", NewNumber("2"))
	ba.Set("a", NewNumber("1"))

	same := NewMapping()
	same.Set("a", NewNumber("1"))
	same.Set("b", NewNumber("2"))

	assert.True(t, ab.Equal(same))
	assert.False(t, ab.Equal(ba))
}
