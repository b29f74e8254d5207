package inspector

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsontree-cli/jsontree/internal/parser"
)

func TestInspect_NestedDocument(t *testing.T) {
	root, err := parser.Parse(`{"users": [{"name": "Alice"}], "count": 1}`)
	require.NoError(t, err)

	records := Inspect(root)

	expected := []Record{
		{Path: "$", Kind: "object", Children: 2, Depth: 0},
		{Path: "$.users", Kind: "array", Children: 1, Depth: 1},
		{Path: "$.users[0]", Kind: "object", Children: 1, Depth: 2},
		{Path: "$.users[0].name", Kind: "string", Children: 0, Depth: 3},
		{Path: "$.count", Kind: "number", Children: 0, Depth: 1},
	}
	assert.Equal(t, expected, records)
}

func TestInspect_Scalar(t *testing.T) {
	root, err := parser.Parse(`true`)
	require.NoError(t, err)

	records := Inspect(root)
	require.Len(t, records, 1)
	assert.Equal(t, Record{Path: "$", Kind: "boolean"}, records[0])
}

func TestSummarize(t *testing.T) {
	root, err := parser.Parse(`{"a": [1, 2], "b": null}`)
	require.NoError(t, err)

	sum := Summarize(Inspect(root))

	assert.Equal(t, 5, sum.TotalNodes)
	assert.Equal(t, 2, sum.MaxDepth)
	assert.Equal(t, 1, sum.Counts["object"])
	assert.Equal(t, 1, sum.Counts["array"])
	assert.Equal(t, 2, sum.Counts["number"])
	assert.Equal(t, 1, sum.Counts["null"])
}

func TestRenderPlain(t *testing.T) {
	root, err := parser.Parse(`{"a": 1}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderPlain(&buf, Inspect(root))

	assert.Equal(t, "$\tobject\n$.a\tnumber\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	root, err := parser.Parse(`{"a": [true]}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderTable(&buf, Inspect(root))
	out := buf.String()

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "$.a[0]")
	assert.Contains(t, out, "boolean")
	assert.NotEmpty(t, out)
}
