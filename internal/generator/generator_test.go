package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsontree-cli/jsontree/internal/analyzer"
	"github.com/jsontree-cli/jsontree/internal/models"
	"github.com/jsontree-cli/jsontree/internal/parser"
)

func TestGenerateStructs_SimpleStruct(t *testing.T) {
	result := models.AnalysisResult{
		Structs: []models.StructDef{
			{
				Name: "Person",
				Fields: []models.FieldInfo{
					{JSONKey: "name", GoName: "Name", GoType: models.TypeInfo{Kind: models.String, Name: "string"}, JSONTag: "`json:\"name\"`"},
					{JSONKey: "age", GoName: "Age", GoType: models.TypeInfo{Kind: models.Int, Name: "int64"}, JSONTag: "`json:\"age\"`"},
				},
				IsRoot: true,
			},
		},
		Imports: map[string]struct{}{},
	}

	g := NewGenerator()
	code, err := g.GenerateStructs(result, "main")
	require.NoError(t, err)

	assert.Contains(t, code, "package main")
	assert.Contains(t, code, "type Person struct {")
	assert.Contains(t, code, "Name string `json:\"name\"`")
	assert.Contains(t, code, "Age  int64  `json:\"age\"`")
	assert.NotContains(t, code, "import")
}

func TestGenerateStructs_FieldsKeepDocumentOrder(t *testing.T) {
	root, err := parser.Parse(`{"zebra": 1, "apple": 2, "mango": 3}`)
	require.NoError(t, err)

	a := analyzer.NewAnalyzer()
	result, err := a.Analyze(root, "Fruit")
	require.NoError(t, err)

	g := NewGenerator()
	code, err := g.GenerateStructs(result, "main")
	require.NoError(t, err)

	zebra := strings.Index(code, "Zebra")
	apple := strings.Index(code, "Apple")
	mango := strings.Index(code, "Mango")
	require.True(t, zebra >= 0 && apple >= 0 && mango >= 0)
	assert.True(t, zebra < apple && apple < mango, "fields should keep document order, got:\n%s", code)
}

func TestGenerateStructs_WithImports(t *testing.T) {
	result := models.AnalysisResult{
		Structs: []models.StructDef{
			{
				Name: "Event",
				Fields: []models.FieldInfo{
					{JSONKey: "created_at", GoName: "CreatedAt", GoType: models.TypeInfo{Kind: models.Time, Name: "time.Time"}, JSONTag: "`json:\"created_at\"`"},
					{JSONKey: "id", GoName: "Id", GoType: models.TypeInfo{Kind: models.String, Name: "uuid.UUID"}, JSONTag: "`json:\"id\"`"},
				},
				IsRoot: true,
			},
		},
		Imports: map[string]struct{}{
			"time":                   {},
			"github.com/google/uuid": {},
		},
	}

	g := NewGenerator()
	code, err := g.GenerateStructs(result, "models")
	require.NoError(t, err)

	assert.Contains(t, code, "package models")
	assert.Contains(t, code, "import (")
	// Stdlib imports come before third-party ones.
	timeIdx := strings.Index(code, "\"time\"")
	uuidIdx := strings.Index(code, "\"github.com/google/uuid\"")
	require.True(t, timeIdx >= 0 && uuidIdx >= 0)
	assert.Less(t, timeIdx, uuidIdx)
}

func TestGenerateStructs_RootStructFirst(t *testing.T) {
	result := models.AnalysisResult{
		Structs: []models.StructDef{
			{Name: "Inner", Fields: nil, IsRoot: false},
			{Name: "Outer", Fields: nil, IsRoot: true},
		},
		Imports: map[string]struct{}{},
	}

	g := NewGenerator()
	code, err := g.GenerateStructs(result, "main")
	require.NoError(t, err)

	outerIdx := strings.Index(code, "type Outer struct")
	innerIdx := strings.Index(code, "type Inner struct")
	require.True(t, outerIdx >= 0 && innerIdx >= 0)
	assert.Less(t, outerIdx, innerIdx)
}

func TestGetTypeString(t *testing.T) {
	intType := models.TypeInfo{Kind: models.Int, Name: "int64"}
	testCases := []struct {
		name string
		in   models.TypeInfo
		want string
	}{
		{"Plain", intType, "int64"},
		{"Pointer", models.TypeInfo{Kind: models.Struct, Name: "User", StructName: "User", IsPointer: true}, "*User"},
		{"Slice", models.TypeInfo{Kind: models.Slice, Name: "[]int64", SliceElementType: &intType}, "[]int64"},
		{"PointerSlice", models.TypeInfo{Kind: models.Slice, Name: "[]int64", SliceElementType: &intType, IsPointer: true}, "*[]int64"},
		{"SliceWithoutElement", models.TypeInfo{Kind: models.Slice, Name: "[]interface{}"}, "[]interface{}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, getTypeString(tc.in))
		})
	}
}
