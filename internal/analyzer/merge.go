package analyzer

import "github.com/mcncl/proptyper/internal/models"

// MergeShapes deep-merges object shapes left to right into a single shape.
// Fields missing from some shapes are kept but lose their Required mark.
// Inputs are not modified.
func (a *Analyzer) MergeShapes(shapes []*models.SchemaNode) *models.SchemaNode {
	if len(shapes) == 0 {
		return models.NewObject()
	}
	merged := shapes[0]
	for _, next := range shapes[1:] {
		merged = a.merge(merged, next)
	}
	return merged
}

// merge combines the schemas two elements gave for the same field.
func (a *Analyzer) merge(left, right *models.SchemaNode) *models.SchemaNode {
	switch {
	case left.Kind == models.ObjectNode && right.Kind == models.ObjectNode:
		return a.mergeObjects(left, right)
	case left.Kind == models.ArrayNode && right.Kind == models.ArrayNode:
		return a.mergeArrays(left, right)
	default:
		return a.mergeConflict(left, right)
	}
}

// mergeObjects merges field by field. Fields of left keep their position and
// fields only right has are appended in right's order.
func (a *Analyzer) mergeObjects(left, right *models.SchemaNode) *models.SchemaNode {
	fields := make([]models.Field, len(left.Fields), len(left.Fields)+len(right.Fields))
	copy(fields, left.Fields)

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
		fields[i].Required = false
	}
	for _, rf := range right.Fields {
		i, ok := index[rf.Name]
		if !ok {
			index[rf.Name] = len(fields)
			fields = append(fields, models.Field{Name: rf.Name, Schema: rf.Schema})
			continue
		}
		lf, _ := left.Field(rf.Name)
		fields[i].Schema = a.merge(lf.Schema, rf.Schema)
		fields[i].Required = lf.Required && rf.Required
	}
	return models.NewObject(fields...)
}

// mergeArrays pools the element alternatives of both arrays and applies the
// array rule again, which is what inferring the concatenated arrays yields.
func (a *Analyzer) mergeArrays(left, right *models.SchemaNode) *models.SchemaNode {
	pooled := append(append([]*models.SchemaNode{}, left.Elem.Options()...), right.Elem.Options()...)
	return a.arrayOf(pooled)
}

func (a *Analyzer) mergeConflict(left, right *models.SchemaNode) *models.SchemaNode {
	if a.conflicts == UnionConflicts {
		return a.collapse(append(append([]*models.SchemaNode{}, left.Options()...), right.Options()...))
	}
	return right
}
