// Package schema infers a minimal JSON-Schema-shaped description from a
// parsed document. The inferred schema captures types, object properties
// with their required keys, and array item types.
package schema

import (
	"github.com/jsontree-cli/jsontree/internal/value"
)

// Property is one named property of an object schema, in document order.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema describes the shape of a JSON value.
type Schema struct {
	// Type is the JSON Schema type name: "null", "boolean", "integer",
	// "number", "string", "array" or "object". Empty when elements of an
	// array disagree on their type.
	Type       string
	Properties []Property
	Required   []string
	Items      *Schema
}

// Infer derives a schema from a single document instance. Every key seen
// in an object is considered required; array item schemas are merged
// across elements.
func Infer(v *value.Value) *Schema {
	switch v.Kind() {
	case value.Null:
		return &Schema{Type: "null"}
	case value.Bool:
		return &Schema{Type: "boolean"}
	case value.Number:
		if _, err := v.Int64(); err == nil {
			return &Schema{Type: "integer"}
		}
		return &Schema{Type: "number"}
	case value.String:
		return &Schema{Type: "string"}
	case value.Sequence:
		s := &Schema{Type: "array"}
		for _, item := range v.Items() {
			s.Items = merge(s.Items, Infer(item))
		}
		return s
	case value.Mapping:
		s := &Schema{Type: "object"}
		for _, m := range v.Members() {
			s.Properties = append(s.Properties, Property{Name: m.Key, Schema: Infer(m.Value)})
			s.Required = append(s.Required, m.Key)
		}
		return s
	default:
		return &Schema{}
	}
}

// merge combines the schemas of two sibling array elements. Matching types
// merge recursively; a type conflict degrades to an untyped schema. Object
// properties missing from one sibling drop out of the required list.
func merge(a, b *Schema) *Schema {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Type != b.Type {
		// "integer" and "number" merge to the wider "number".
		if (a.Type == "integer" && b.Type == "number") || (a.Type == "number" && b.Type == "integer") {
			return &Schema{Type: "number"}
		}
		return &Schema{}
	}

	switch a.Type {
	case "object":
		out := &Schema{Type: "object"}
		index := make(map[string]*Schema, len(a.Properties))
		for _, p := range a.Properties {
			index[p.Name] = p.Schema
		}
		seen := make(map[string]bool, len(a.Properties))
		for _, p := range a.Properties {
			out.Properties = append(out.Properties, p)
			seen[p.Name] = true
		}
		for _, p := range b.Properties {
			if existing, ok := index[p.Name]; ok {
				for i := range out.Properties {
					if out.Properties[i].Name == p.Name {
						out.Properties[i].Schema = merge(existing, p.Schema)
					}
				}
				continue
			}
			out.Properties = append(out.Properties, p)
		}
		// Required keys must be present in both siblings.
		bRequired := make(map[string]bool, len(b.Required))
		for _, k := range b.Required {
			bRequired[k] = true
		}
		for _, k := range a.Required {
			if bRequired[k] {
				out.Required = append(out.Required, k)
			}
		}
		return out
	case "array":
		return &Schema{Type: "array", Items: merge(a.Items, b.Items)}
	default:
		return &Schema{Type: a.Type}
	}
}

// Value converts the schema to a value tree so the encoder can serialize
// it as a JSON document.
func (s *Schema) Value() *value.Value {
	m := value.NewMapping()
	if s.Type != "" {
		m.Set("type", value.NewString(s.Type))
	}
	if len(s.Properties) > 0 {
		props := value.NewMapping()
		for _, p := range s.Properties {
			props.Set(p.Name, p.Schema.Value())
		}
		m.Set("properties", props)
	}
	if len(s.Required) > 0 {
		req := value.NewSequence()
		for _, k := range s.Required {
			req.Append(value.NewString(k))
		}
		m.Set("required", req)
	}
	if s.Items != nil {
		m.Set("items", s.Items.Value())
	}
	return m
}
