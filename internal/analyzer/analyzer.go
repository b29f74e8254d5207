// Package analyzer infers Go struct definitions from a parsed JSON value
// tree. Because mappings preserve document order, generated struct fields
// follow the order of the source document.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsontree-cli/jsontree/internal/config"
	"github.com/jsontree-cli/jsontree/internal/models"
	"github.com/jsontree-cli/jsontree/internal/value"
)

// DefaultRootName is the default name for the root struct if not specified.
const DefaultRootName = "RootType"

// Regex patterns for special string types
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// Time format patterns (ordered by specificity)
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)
)

// Analyzer analyzes a value tree and determines Go types and struct definitions
type Analyzer struct {
	// structNames tracks generated struct names to avoid collisions
	structNames map[string]int
	// analysisResult holds discovered structs and imports
	analysisResult models.AnalysisResult
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{
		structNames: make(map[string]int),
		analysisResult: models.AnalysisResult{
			Structs: make([]models.StructDef, 0),
			Imports: make(map[string]struct{}),
		},
		config: cfg,
	}
}

// Analyze processes a value tree and returns struct definitions and imports.
func (a *Analyzer) Analyze(root *value.Value, rootStructName string) (models.AnalysisResult, error) {
	if rootStructName == "" {
		rootStructName = DefaultRootName
	}
	rootStructName = a.generateUniqueStructName(a.getFieldName(rootStructName))

	rootIsSequence := root != nil && root.Kind() == value.Sequence

	var rootTypeInfo models.TypeInfo
	var err error

	if root == nil || root.Kind() == value.Null {
		// Wrap a null document in a struct with a single nullable field.
		candidate := models.StructDef{
			Name: rootStructName,
			Fields: []models.FieldInfo{
				{
					JSONKey: "value",
					GoName:  "Value",
					GoType:  models.TypeInfo{Kind: models.Interface, Name: "interface{}", IsPointer: true},
					JSONTag: "`json:\"value,omitempty\"`",
				},
			},
			IsRoot: true,
		}
		a.analysisResult.Structs = append(a.analysisResult.Structs, candidate)
		rootTypeInfo = models.TypeInfo{Kind: models.Struct, Name: rootStructName, StructName: rootStructName}
	} else {
		rootTypeInfo, err = a.analyzeNode(root, rootStructName, true, false)
		if err != nil {
			return models.AnalysisResult{}, fmt.Errorf("failed to analyze root node: %w", err)
		}

		// Wrap primitive documents in a struct so the generator always has
		// at least one type to emit.
		if !rootIsSequence && rootTypeInfo.Kind != models.Struct {
			candidate := models.StructDef{
				Name: rootStructName,
				Fields: []models.FieldInfo{
					{
						JSONKey: "value",
						GoName:  "Value",
						GoType:  rootTypeInfo,
						JSONTag: "`json:\"value\"`",
					},
				},
				IsRoot: true,
			}
			a.analysisResult.Structs = append(a.analysisResult.Structs, candidate)
			rootTypeInfo = models.TypeInfo{Kind: models.Struct, Name: rootStructName, StructName: rootStructName}
		}
	}

	if rootIsSequence {
		// The sequence itself is conceptually the root, not its element
		// struct.
		for i := range a.analysisResult.Structs {
			a.analysisResult.Structs[i].IsRoot = false
		}
	} else {
		for i, s := range a.analysisResult.Structs {
			if s.Name == rootStructName || (s.Name == rootTypeInfo.StructName && rootTypeInfo.Kind == models.Struct) {
				a.analysisResult.Structs[i].IsRoot = true
				break
			}
		}
	}

	return a.analysisResult, nil
}

// analyzeNode is the core recursive function that determines the TypeInfo
// for a given node, discovering and defining new structs as needed.
func (a *Analyzer) analyzeNode(node *value.Value, suggestedName string, isRootNode bool, isSequenceElement bool) (models.TypeInfo, error) {
	switch node.Kind() {
	case value.Null:
		return models.TypeInfo{Kind: models.Interface, Name: "interface{}", IsPointer: true}, nil
	case value.Bool:
		return models.TypeInfo{Kind: models.Bool, Name: "bool"}, nil
	case value.String:
		return a.analyzeString(node.Str()), nil
	case value.Number:
		return a.analyzeNumber(node), nil
	case value.Mapping:
		return a.analyzeMapping(node, suggestedName, isRootNode, isSequenceElement)
	case value.Sequence:
		return a.analyzeSequence(node, suggestedName, isSequenceElement)
	default:
		return models.TypeInfo{}, fmt.Errorf("unexpected value kind: %v", node.Kind())
	}
}

func (a *Analyzer) analyzeString(s string) models.TypeInfo {
	// UUIDs stay plain strings to avoid pulling in a dependency.
	if uuidRegex.MatchString(s) {
		return models.TypeInfo{Kind: models.String, Name: "string"}
	}

	if rfc3339Regex.MatchString(s) || dateOnlyRegex.MatchString(s) || dateTimeRegex.MatchString(s) {
		a.analysisResult.Imports["time"] = struct{}{}
		return models.TypeInfo{Kind: models.Time, Name: "time.Time"}
	}

	return models.TypeInfo{Kind: models.String, Name: "string"}
}

func (a *Analyzer) analyzeNumber(num *value.Value) models.TypeInfo {
	if _, err := num.Int64(); err == nil {
		return models.TypeInfo{Kind: models.Int, Name: "int64"}
	}
	return models.TypeInfo{Kind: models.Float, Name: "float64"}
}

func (a *Analyzer) analyzeMapping(obj *value.Value, suggestedName string, isRootNode bool, isSequenceElement bool) (models.TypeInfo, error) {
	structName := suggestedName
	if !isRootNode {
		structName = a.getFieldName(suggestedName)
	}

	candidate := models.StructDef{
		Name:   structName, // temporary, finalized by findOrAddStructDef
		Fields: make([]models.FieldInfo, 0, obj.Len()),
	}

	// Members arrive in document order, which becomes the field order.
	for _, member := range obj.Members() {
		key := member.Key
		val := member.Value
		goFieldName := a.getFieldName(key)

		// Check for custom type mapping first
		if mapping, found := a.config.FindTypeMapping(key); found {
			fieldTypeInfo := models.TypeInfo{
				Kind: models.String,
				Name: mapping.Type,
			}
			if mapping.Import != "" {
				a.analysisResult.Imports[mapping.Import] = struct{}{}
			}
			if val.Kind() == value.Null {
				fieldTypeInfo.IsPointer = true
			}

			candidate.Fields = append(candidate.Fields, models.FieldInfo{
				JSONKey: key,
				GoName:  goFieldName,
				GoType:  fieldTypeInfo,
				JSONTag: fmt.Sprintf("`json:\"%s%s\"`", key, determineOmitempty(val, fieldTypeInfo)),
			})
			continue
		}

		nestedSuggestedName := structName + goFieldName

		fieldTypeInfo, err := a.analyzeNode(val, nestedSuggestedName, false, false)
		if err != nil {
			return models.TypeInfo{}, fmt.Errorf("failed to analyze field '%s' in object '%s': %w", key, structName, err)
		}

		// Nullable fields and container fields become pointers.
		if val.Kind() == value.Null || fieldTypeInfo.Kind == models.Struct || fieldTypeInfo.Kind == models.Slice || fieldTypeInfo.Kind == models.Interface {
			fieldTypeInfo.IsPointer = true
		}

		candidate.Fields = append(candidate.Fields, models.FieldInfo{
			JSONKey: key,
			GoName:  goFieldName,
			GoType:  fieldTypeInfo,
			JSONTag: fmt.Sprintf("`json:\"%s%s\"`", key, determineOmitempty(val, fieldTypeInfo)),
		})
	}

	typeInfo := a.findOrAddStructDef(candidate, structName, isRootNode, isSequenceElement)
	return typeInfo, nil
}

func (a *Analyzer) analyzeSequence(arr *value.Value, suggestedElementName string, isSequenceElement bool) (models.TypeInfo, error) {
	if arr.Len() == 0 {
		elementType := models.TypeInfo{Kind: models.Interface, Name: "interface{}"}
		return models.TypeInfo{Kind: models.Slice, Name: "[]interface{}", SliceElementType: &elementType, IsPointer: true}, nil
	}

	elementSuggestedName := singularize(a.getFieldName(suggestedElementName))

	isRootSequence := a.structNames[elementSuggestedName] == 1

	// If every element is a mapping, merge them into a single struct type.
	allMappings := true
	mappingElements := make([]*value.Value, 0, arr.Len())
	for _, element := range arr.Items() {
		if element.Kind() == value.Mapping {
			mappingElements = append(mappingElements, element)
		} else {
			allMappings = false
			break
		}
	}

	if allMappings && len(mappingElements) > 0 {
		mergedStructDef, err := a.createMergedStructDef(mappingElements, elementSuggestedName)
		if err != nil {
			return models.TypeInfo{}, fmt.Errorf("failed to create merged struct definition: %w", err)
		}

		typeInfo := a.findOrAddStructDef(mergedStructDef, elementSuggestedName, isRootSequence, true)

		// Struct elements in slices are pointers, common Go practice.
		pointerElementInfo := typeInfo
		pointerElementInfo.IsPointer = true

		return models.TypeInfo{
			Kind:             models.Slice,
			Name:             "[]*" + typeInfo.Name,
			SliceElementType: &pointerElementInfo,
			IsPointer:        true,
		}, nil
	}

	// Analyze all elements to determine if they share a common type.
	elementInfos := make([]models.TypeInfo, arr.Len())
	for i, element := range arr.Items() {
		isRootElement := isRootSequence && i == 0
		typeInfo, err := a.analyzeNode(element, elementSuggestedName, isRootElement, true)
		if err != nil {
			return models.TypeInfo{}, fmt.Errorf("failed to analyze element %d of sequence '%s': %w", i, suggestedElementName, err)
		}
		elementInfos[i] = typeInfo
	}

	// Nested sequences flatten to a multi-dimensional slice when uniform.
	if elementInfos[0].Kind == models.Slice {
		allSlices := true
		for _, info := range elementInfos {
			if info.Kind != models.Slice {
				allSlices = false
				break
			}
		}
		if allSlices && elementInfos[0].SliceElementType != nil {
			return models.TypeInfo{
				Kind:             models.Slice,
				Name:             "[]" + elementInfos[0].Name,
				SliceElementType: elementInfos[0].SliceElementType,
				IsPointer:        true,
			}, nil
		}
	}

	firstElementInfo := elementInfos[0]
	isHomogeneous := true
	for i := 1; i < len(elementInfos); i++ {
		if !areTypeInfosEqual(&firstElementInfo, &elementInfos[i]) {
			isHomogeneous = false
			break
		}
	}

	if isHomogeneous {
		sliceName := "[]" + firstElementInfo.Name
		if firstElementInfo.Kind == models.Struct {
			pointerElementInfo := firstElementInfo
			pointerElementInfo.IsPointer = true
			return models.TypeInfo{
				Kind:             models.Slice,
				Name:             "[]*" + firstElementInfo.Name,
				SliceElementType: &pointerElementInfo,
				IsPointer:        true,
			}, nil
		} else if firstElementInfo.IsPointer {
			sliceName = "[]*" + firstElementInfo.Name
		}
		return models.TypeInfo{
			Kind:             models.Slice,
			Name:             sliceName,
			SliceElementType: &firstElementInfo,
			IsPointer:        true,
		}, nil
	}

	// Heterogeneous sequence, fall back to []interface{}.
	return models.TypeInfo{
		Kind:             models.Slice,
		Name:             "[]interface{}",
		SliceElementType: &models.TypeInfo{Kind: models.Interface, Name: "interface{}"},
		IsPointer:        true,
	}, nil
}

// generateUniqueStructName ensures that the struct name is unique by appending a number if needed.
func (a *Analyzer) generateUniqueStructName(baseName string) string {
	name := baseName
	count := a.structNames[baseName]
	if count > 0 {
		name = fmt.Sprintf("%s%d", baseName, count)
	}
	a.structNames[baseName] = count + 1
	return name
}

// getFieldName returns the Go field name for a JSON key using configuration
func (a *Analyzer) getFieldName(jsonKey string) string {
	name := a.config.GetFieldName(jsonKey)
	if name == "" {
		// Purely symbolic keys like "_" convert to nothing.
		return "Field"
	}
	return name
}

// singularize attempts to convert a plural name to a singular one.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"children":  "child",
	"people":    "person",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
}

func singularize(plural string) string {
	if singular, ok := knownSingulars[strings.ToLower(plural)]; ok {
		// Preserve original casing if the first letter was capitalized
		if len(plural) > 0 && strings.ToUpper(string(plural[0])) == string(plural[0]) {
			if len(singular) > 0 {
				return strings.ToUpper(string(singular[0])) + singular[1:]
			}
		}
		return singular
	}

	lowerPlural := strings.ToLower(plural)

	if strings.HasSuffix(lowerPlural, "ies") && len(lowerPlural) > 3 {
		return plural[:len(plural)-3] + "y"
	}

	// Avoid removing 's' from words like 'bus', 'status', 'analysis'
	if strings.HasSuffix(lowerPlural, "ss") ||
		strings.HasSuffix(lowerPlural, "us") ||
		strings.HasSuffix(lowerPlural, "is") {
		return plural
	}

	if strings.HasSuffix(lowerPlural, "s") && len(lowerPlural) > 1 {
		return plural[:len(plural)-1]
	}

	return plural
}

// determineOmitempty decides if ",omitempty" should be added to the JSON tag.
func determineOmitempty(originalValue *value.Value, typeInfo models.TypeInfo) string {
	if typeInfo.IsPointer {
		return ",omitempty"
	}
	switch typeInfo.Kind {
	case models.Slice, models.Interface:
		return ",omitempty"
	default:
		if originalValue != nil && originalValue.Kind() == value.Null {
			return ",omitempty"
		}
		return ""
	}
}

// areTypeInfosEqual checks if two TypeInfo objects represent the same type.
func areTypeInfosEqual(t1, t2 *models.TypeInfo) bool {
	if t1 == nil || t2 == nil {
		return t1 == t2
	}
	if t1.Kind != t2.Kind || t1.Name != t2.Name || t1.IsPointer != t2.IsPointer || t1.StructName != t2.StructName {
		return false
	}
	if t1.Kind == models.Slice {
		return areTypeInfosEqual(t1.SliceElementType, t2.SliceElementType)
	}
	return true
}

// areStructDefsEquivalent compares two StructDefs for structural equality.
// Field names, their Go types, and JSON tags must match; field order does
// not matter.
func areStructDefsEquivalent(s1, s2 *models.StructDef) bool {
	if s1 == nil || s2 == nil {
		return s1 == s2
	}
	if len(s1.Fields) != len(s2.Fields) {
		return false
	}

	s1Fields := make(map[string]models.FieldInfo)
	for _, f := range s1.Fields {
		s1Fields[f.JSONKey] = f
	}

	for _, f2 := range s2.Fields {
		f1, ok := s1Fields[f2.JSONKey]
		if !ok {
			return false
		}
		if f1.GoName != f2.GoName || f1.JSONTag != f2.JSONTag || !areTypeInfosEqual(&f1.GoType, &f2.GoType) {
			return false
		}
	}
	return true
}

// createMergedStructDef creates a struct definition that merges fields from
// multiple mapping elements of one sequence. Fields keep the order in which
// keys are first seen across the elements.
func (a *Analyzer) createMergedStructDef(mappings []*value.Value, suggestedName string) (models.StructDef, error) {
	var fieldOrder []string
	allFields := make(map[string]models.FieldInfo)
	nestedMappingFields := make(map[string][]*value.Value)

	for _, obj := range mappings {
		for _, member := range obj.Members() {
			key := member.Key
			val := member.Value
			goFieldName := a.getFieldName(key)
			nestedSuggestedName := suggestedName + goFieldName

			if _, seen := allFields[key]; !seen {
				if _, pending := nestedMappingFields[key]; !pending {
					fieldOrder = append(fieldOrder, key)
				}
			}

			// Nested mappings are collected and merged after all elements
			// have been seen.
			if val.Kind() == value.Mapping {
				nestedMappingFields[key] = append(nestedMappingFields[key], val)
				continue
			}

			fieldTypeInfo, err := a.analyzeNode(val, nestedSuggestedName, false, false)
			if err != nil {
				return models.StructDef{}, fmt.Errorf("failed to analyze field '%s' in merged object: %w", key, err)
			}

			if val.Kind() == value.Null || fieldTypeInfo.Kind == models.Struct || fieldTypeInfo.Kind == models.Slice || fieldTypeInfo.Kind == models.Interface {
				fieldTypeInfo.IsPointer = true
			}

			allFields[key] = models.FieldInfo{
				JSONKey: key,
				GoName:  goFieldName,
				GoType:  fieldTypeInfo,
				JSONTag: fmt.Sprintf("`json:\"%s%s\"`", key, determineOmitempty(val, fieldTypeInfo)),
			}
		}
	}

	for key, nested := range nestedMappingFields {
		if len(nested) == 0 {
			continue
		}
		goFieldName := a.getFieldName(key)
		nestedSuggestedName := suggestedName + goFieldName

		mergedNested, err := a.createMergedStructDef(nested, nestedSuggestedName)
		if err != nil {
			return models.StructDef{}, fmt.Errorf("failed to create merged struct for nested field '%s': %w", key, err)
		}

		typeInfo := a.findOrAddStructDef(mergedNested, nestedSuggestedName, false, false)
		typeInfo.IsPointer = true

		allFields[key] = models.FieldInfo{
			JSONKey: key,
			GoName:  goFieldName,
			GoType:  typeInfo,
			JSONTag: fmt.Sprintf("`json:\"%s,omitempty\"`", key),
		}
	}

	fields := make([]models.FieldInfo, 0, len(allFields))
	for _, key := range fieldOrder {
		fields = append(fields, allFields[key])
	}

	return models.StructDef{
		Name:   suggestedName, // finalized by findOrAddStructDef
		Fields: fields,
	}, nil
}

// findOrAddStructDef checks if an equivalent struct definition already
// exists. If yes, it returns the TypeInfo of the existing struct; otherwise
// it finalizes the candidate under a unique name and records it.
func (a *Analyzer) findOrAddStructDef(candidate models.StructDef, suggestedName string, isRoot bool, isSequenceElement bool) models.TypeInfo {
	for _, existing := range a.analysisResult.Structs {
		if areStructDefsEquivalent(&candidate, &existing) {
			return models.TypeInfo{
				Kind:       models.Struct,
				Name:       existing.Name,
				StructName: existing.Name,
			}
		}
	}

	finalName := suggestedName
	if !isRoot {
		finalName = a.generateUniqueStructName(suggestedName)
	} else {
		// Root names are assigned by Analyze(); record without renaming.
		a.structNames[suggestedName] = a.structNames[suggestedName] + 1
	}

	candidate.Name = finalName
	// A sequence element struct is never the root; the sequence is.
	if isSequenceElement {
		candidate.IsRoot = false
	} else {
		candidate.IsRoot = isRoot
	}

	a.analysisResult.Structs = append(a.analysisResult.Structs, candidate)

	return models.TypeInfo{
		Kind:       models.Struct,
		Name:       finalName,
		StructName: finalName,
	}
}
