// Package models holds the shared data structures produced by the analyzer
// and consumed by the generator.
package models

// TypeKind classifies an inferred Go type.
type TypeKind int

const (
	Interface TypeKind = iota
	Bool
	Int
	Float
	String
	Time
	Slice
	Struct
)

// TypeInfo describes the Go type inferred for one JSON node.
type TypeInfo struct {
	Kind TypeKind
	// Name is the rendered Go type, e.g. "int64", "[]*User", "time.Time".
	Name string
	// StructName is set when Kind is Struct and names the generated struct.
	StructName string
	// SliceElementType is set when Kind is Slice.
	SliceElementType *TypeInfo
	IsPointer        bool
}

// FieldInfo describes one field of a generated struct.
type FieldInfo struct {
	JSONKey string
	GoName  string
	GoType  TypeInfo
	JSONTag string
}

// StructDef is a complete struct definition discovered during analysis.
// Fields keep the order of the corresponding members in the source
// document.
type StructDef struct {
	Name   string
	Fields []FieldInfo
	IsRoot bool
}

// AnalysisResult collects every struct discovered in a document together
// with the imports their field types require.
type AnalysisResult struct {
	Structs []StructDef
	Imports map[string]struct{}
}
