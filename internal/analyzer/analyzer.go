// Package analyzer infers a structural schema from a parsed JSON document.
//
// Inference is a single bottom-up pass. Arrays collapse their elements into
// distinct alternatives, except that object elements are deep-merged into one
// shape (see merge.go) on the assumption that they describe the same record.
package analyzer

import (
	"github.com/mcncl/proptyper/internal/config"
	"github.com/mcncl/proptyper/internal/models"
)

// ConflictPolicy decides what happens when merged objects disagree on the
// schema of a field that is not an array or object on both sides.
type ConflictPolicy int

const (
	// LastWriteWins keeps the schema from the later element.
	LastWriteWins ConflictPolicy = iota
	// UnionConflicts keeps both schemas as alternatives of a union.
	UnionConflicts
)

// Analyzer infers schemas. It holds no state between calls.
type Analyzer struct {
	conflicts ConflictPolicy
}

// NewAnalyzer creates an Analyzer with last-write-wins merging.
func NewAnalyzer() *Analyzer {
	return &Analyzer{conflicts: LastWriteWins}
}

// NewAnalyzerWithConfig creates an Analyzer honouring the merge settings of cfg.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	a := NewAnalyzer()
	if cfg != nil && cfg.Merge.Conflict == config.ConflictUnion {
		a.conflicts = UnionConflicts
	}
	return a
}

// Infer returns the schema of value. It never fails.
func (a *Analyzer) Infer(value models.JSONValue) *models.SchemaNode {
	switch value.Kind {
	case models.String:
		return models.NewPrimitive(models.StringType)
	case models.Number:
		return models.NewPrimitive(models.NumberType)
	case models.Bool:
		return models.NewPrimitive(models.BooleanType)
	case models.Array:
		return a.inferArray(value.Array)
	case models.Object:
		return a.inferObject(value.Members)
	default:
		return models.NewPrimitive(models.Unknown)
	}
}

func (a *Analyzer) inferObject(members []models.Member) *models.SchemaNode {
	fields := make([]models.Field, 0, len(members))
	for _, m := range members {
		fields = append(fields, models.Field{
			Name:     m.Key,
			Schema:   a.Infer(m.Value),
			Required: m.Value.Kind != models.Null,
		})
	}
	return models.NewObject(fields...)
}

func (a *Analyzer) inferArray(elems []models.JSONValue) *models.SchemaNode {
	if len(elems) == 0 {
		return models.NewArray(nil)
	}
	schemas := make([]*models.SchemaNode, 0, len(elems))
	for _, elem := range elems {
		schemas = append(schemas, a.Infer(elem))
	}
	return a.arrayOf(schemas)
}

// arrayOf builds an array schema from element schemas. An array without
// element alternatives is the degenerate array.
func (a *Analyzer) arrayOf(schemas []*models.SchemaNode) *models.SchemaNode {
	elem := a.collapse(schemas)
	if elem == nil {
		return models.NewArray(nil)
	}
	return models.NewArray(elem)
}

// collapse reduces schemas to one schema. Object shapes are merged into a
// single shape placed where the first of them appeared; all other
// alternatives are deduplicated in first-seen order. A union among the inputs
// contributes its members individually. It returns nil for no input.
func (a *Analyzer) collapse(schemas []*models.SchemaNode) *models.SchemaNode {
	var (
		alternatives []*models.SchemaNode
		shapes       []*models.SchemaNode
		shapeAt      = -1
	)
	for _, s := range schemas {
		for _, opt := range s.Options() {
			if opt.Kind == models.ObjectNode {
				if shapeAt < 0 {
					shapeAt = len(alternatives)
					alternatives = append(alternatives, nil)
				}
				shapes = append(shapes, opt)
				continue
			}
			alternatives = append(alternatives, opt)
		}
	}
	if len(alternatives) == 0 {
		return nil
	}
	if shapeAt >= 0 {
		alternatives[shapeAt] = a.MergeShapes(shapes)
	}
	return models.NewUnion(alternatives...)
}
