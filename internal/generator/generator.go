// Package generator renders Go source code for the struct definitions
// discovered by the analyzer.
package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jsontree-cli/jsontree/internal/models"
)

// Generator is responsible for generating Go struct definitions from analysis results
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateStructs generates Go struct definitions from the analysis result.
// Struct fields are emitted in document order.
func (g *Generator) GenerateStructs(result models.AnalysisResult, packageName string) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("package %s\n", packageName))

	if len(result.Imports) > 0 {
		buf.WriteString("\nimport (\n")

		imports := make([]string, 0, len(result.Imports))
		for imp := range result.Imports {
			imports = append(imports, imp)
		}
		sort.Strings(imports)

		stdLibImports := make([]string, 0)
		thirdPartyImports := make([]string, 0)
		for _, imp := range imports {
			if !strings.Contains(imp, ".") { // Standard library imports don't have dots
				stdLibImports = append(stdLibImports, imp)
			} else {
				thirdPartyImports = append(thirdPartyImports, imp)
			}
		}

		for _, imp := range stdLibImports {
			buf.WriteString(fmt.Sprintf("\t\"%s\"\n", imp))
		}
		if len(stdLibImports) > 0 && len(thirdPartyImports) > 0 {
			buf.WriteString("\n")
		}
		for _, imp := range thirdPartyImports {
			buf.WriteString(fmt.Sprintf("\t\"%s\"\n", imp))
		}

		buf.WriteString(")\n")
	}

	// Root structs come first.
	sortedStructs := sortStructs(result.Structs)

	for i, structDef := range sortedStructs {
		if i == 0 {
			buf.WriteString("\n")
		}

		buf.WriteString(fmt.Sprintf("type %s struct {\n", structDef.Name))

		// Align field names and types within the struct.
		maxNameWidth := 0
		maxTypeWidth := 0
		for _, field := range structDef.Fields {
			if w := len(field.GoName); w > maxNameWidth {
				maxNameWidth = w
			}
			if w := len(getTypeString(field.GoType)); w > maxTypeWidth {
				maxTypeWidth = w
			}
		}

		for _, field := range structDef.Fields {
			buf.WriteString(fmt.Sprintf("\t%-*s %-*s %s\n",
				maxNameWidth, field.GoName,
				maxTypeWidth, getTypeString(field.GoType),
				field.JSONTag))
		}

		buf.WriteString("}\n")

		if i < len(sortedStructs)-1 {
			buf.WriteString("\n")
		}
	}

	return buf.String(), nil
}

// sortStructs sorts structs to ensure root structs come first, followed by nested structs
func sortStructs(structs []models.StructDef) []models.StructDef {
	sorted := make([]models.StructDef, len(structs))
	copy(sorted, structs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsRoot != sorted[j].IsRoot {
			return sorted[i].IsRoot
		}
		return sorted[i].Name < sorted[j].Name
	})

	return sorted
}

// getTypeString converts a TypeInfo to a string representation of the Go type
func getTypeString(typeInfo models.TypeInfo) string {
	var typeStr string

	switch typeInfo.Kind {
	case models.Struct:
		typeStr = typeInfo.StructName
	case models.Slice:
		if typeInfo.SliceElementType != nil {
			typeStr = "[]" + getTypeString(*typeInfo.SliceElementType)
		} else {
			typeStr = "[]interface{}"
		}
	default:
		typeStr = typeInfo.Name
	}

	if typeInfo.IsPointer {
		return "*" + typeStr
	}

	return typeStr
}
