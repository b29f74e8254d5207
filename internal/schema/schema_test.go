package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsontree-cli/jsontree/internal/encoder"
	"github.com/jsontree-cli/jsontree/internal/parser"
)

func infer(t *testing.T, doc string) *Schema {
	t.Helper()
	v, err := parser.Parse(doc)
	require.NoError(t, err)
	return Infer(v)
}

func TestInfer_Scalars(t *testing.T) {
	assert.Equal(t, "null", infer(t, `null`).Type)
	assert.Equal(t, "boolean", infer(t, `true`).Type)
	assert.Equal(t, "integer", infer(t, `42`).Type)
	assert.Equal(t, "number", infer(t, `3.14`).Type)
	assert.Equal(t, "number", infer(t, `1e10`).Type)
	assert.Equal(t, "string", infer(t, `"x"`).Type)
}

func TestInfer_Object(t *testing.T) {
	s := infer(t, `{"name": "Alice", "age": 30}`)

	assert.Equal(t, "object", s.Type)
	require.Len(t, s.Properties, 2)
	assert.Equal(t, "name", s.Properties[0].Name)
	assert.Equal(t, "string", s.Properties[0].Schema.Type)
	assert.Equal(t, "age", s.Properties[1].Name)
	assert.Equal(t, "integer", s.Properties[1].Schema.Type)
	assert.Equal(t, []string{"name", "age"}, s.Required)
}

func TestInfer_ArrayMergesElementSchemas(t *testing.T) {
	s := infer(t, `[{"a": 1, "b": 2}, {"a": 3}]`)

	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, "object", s.Items.Type)
	require.Len(t, s.Items.Properties, 2)
	// A key missing from one element is no longer required.
	assert.Equal(t, []string{"a"}, s.Items.Required)
}

func TestInfer_ArrayWidensIntegerToNumber(t *testing.T) {
	s := infer(t, `[1, 2.5, 3]`)

	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, "number", s.Items.Type)
}

func TestInfer_ArrayTypeConflict(t *testing.T) {
	s := infer(t, `[1, "two"]`)

	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, "", s.Items.Type, "conflicting element types leave the items schema untyped")
}

func TestInfer_EmptyArray(t *testing.T) {
	s := infer(t, `[]`)
	assert.Equal(t, "array", s.Type)
	assert.Nil(t, s.Items)
}

func TestInfer_NestedObjectMerge(t *testing.T) {
	s := infer(t, `[{"meta": {"x": 1, "y": 2}}, {"meta": {"x": 3}}]`)

	meta := s.Items.Properties[0].Schema
	assert.Equal(t, "object", meta.Type)
	assert.Equal(t, []string{"x"}, meta.Required)
	require.Len(t, meta.Properties, 2)
}

func TestSchemaValue_Serializes(t *testing.T) {
	s := infer(t, `{"id": 1, "tags": ["a"]}`)

	out := encoder.Compact(s.Value())
	want := `{"type":"object","properties":{"id":{"type":"integer"},"tags":{"type":"array","items":{"type":"string"}}},"required":["id","tags"]}`
	assert.Equal(t, want, out)
}

func TestSchemaValue_OmitsEmptySections(t *testing.T) {
	s := infer(t, `"hello"`)
	assert.Equal(t, `{"type":"string"}`, encoder.Compact(s.Value()))
}
