// Package schema renders inferred schemas as JSON Schema documents.
package schema

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/mcncl/proptyper/internal/config"
	"github.com/mcncl/proptyper/internal/errors"
	"github.com/mcncl/proptyper/internal/models"
)

// Emitter converts SchemaNodes into JSON Schema (draft 2020-12)
type Emitter struct {
	header         string
	requiredFields bool
}

// NewEmitter creates an Emitter using the settings of cfg
func NewEmitter(cfg *config.Config) *Emitter {
	return &Emitter{
		header:         cfg.Output.FileHeader,
		requiredFields: cfg.Render.RequiredFields,
	}
}

// Emit returns the compact JSON Schema document for node, titled name.
func (e *Emitter) Emit(node *models.SchemaNode, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.NewGenerateError("schema name is empty", errors.ErrInvalidName)
	}

	root := e.Convert(node)
	root.Version = jsonschema.Version
	root.Title = name
	root.Comments = strings.TrimSpace(e.header)

	data, err := root.MarshalJSON()
	if err != nil {
		return "", errors.NewGenerateError(fmt.Sprintf("failed to encode JSON Schema for '%s'", name), err)
	}
	return string(data), nil
}

// Convert maps node onto a jsonschema.Schema. Unknown types become the empty
// schema, which accepts anything.
func (e *Emitter) Convert(node *models.SchemaNode) *jsonschema.Schema {
	if node == nil {
		return &jsonschema.Schema{}
	}
	switch node.Kind {
	case models.PrimitiveNode:
		return convertPrimitive(node.Primitive)
	case models.ArrayNode:
		s := &jsonschema.Schema{Type: "array"}
		if node.Elem != nil {
			s.Items = e.Convert(node.Elem)
		}
		return s
	case models.ObjectNode:
		s := &jsonschema.Schema{Type: "object"}
		if len(node.Fields) == 0 {
			return s
		}
		s.Properties = jsonschema.NewProperties()
		for _, f := range node.Fields {
			s.Properties.Set(f.Name, e.Convert(f.Schema))
			if e.requiredFields && f.Required {
				s.Required = append(s.Required, f.Name)
			}
		}
		return s
	case models.UnionNode:
		s := &jsonschema.Schema{}
		for _, alt := range node.Alternatives {
			s.AnyOf = append(s.AnyOf, e.Convert(alt))
		}
		return s
	}
	return &jsonschema.Schema{}
}

func convertPrimitive(kind models.PrimitiveKind) *jsonschema.Schema {
	switch kind {
	case models.StringType:
		return &jsonschema.Schema{Type: "string"}
	case models.NumberType:
		return &jsonschema.Schema{Type: "number"}
	case models.BooleanType:
		return &jsonschema.Schema{Type: "boolean"}
	default:
		return &jsonschema.Schema{}
	}
}
