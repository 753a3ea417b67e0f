package models

// NodeKind identifies which variant a SchemaNode holds.
type NodeKind int

const (
	PrimitiveNode NodeKind = iota
	ArrayNode
	ObjectNode
	UnionNode
)

// PrimitiveKind is the type of a scalar schema.
type PrimitiveKind int

const (
	// Unknown covers null and anything that carries no usable type.
	Unknown PrimitiveKind = iota
	StringType
	NumberType
	BooleanType
)

func (p PrimitiveKind) String() string {
	switch p {
	case StringType:
		return "string"
	case NumberType:
		return "number"
	case BooleanType:
		return "boolean"
	default:
		return "unknown"
	}
}

// SchemaNode is the inferred schema of a JSON value.
//
// An ArrayNode with a nil Elem and an ObjectNode without fields are
// degenerate: they come from [] and {} and carry no type information.
type SchemaNode struct {
	Kind         NodeKind
	Primitive    PrimitiveKind
	Elem         *SchemaNode
	Fields       []Field
	Alternatives []*SchemaNode
}

// Field is a named entry of an object shape. Required is true when the field
// was present in every source object that contributed to the shape.
type Field struct {
	Name     string
	Schema   *SchemaNode
	Required bool
}

// NewPrimitive returns a scalar schema.
func NewPrimitive(kind PrimitiveKind) *SchemaNode {
	return &SchemaNode{Kind: PrimitiveNode, Primitive: kind}
}

// NewArray returns an array schema. A nil elem yields the degenerate array.
func NewArray(elem *SchemaNode) *SchemaNode {
	return &SchemaNode{Kind: ArrayNode, Elem: elem}
}

// NewObject returns an object shape. No fields yields the degenerate object.
func NewObject(fields ...Field) *SchemaNode {
	return &SchemaNode{Kind: ObjectNode, Fields: fields}
}

// NewUnion builds a union from alternatives. Nested unions are flattened,
// structurally equal alternatives are dropped (first one wins) and a single
// remaining alternative is returned as is.
func NewUnion(alternatives ...*SchemaNode) *SchemaNode {
	flat := make([]*SchemaNode, 0, len(alternatives))
	for _, alt := range alternatives {
		if alt == nil {
			continue
		}
		if alt.Kind == UnionNode {
			for _, inner := range alt.Alternatives {
				flat = appendDistinct(flat, inner)
			}
			continue
		}
		flat = appendDistinct(flat, alt)
	}
	switch len(flat) {
	case 0:
		return NewPrimitive(Unknown)
	case 1:
		return flat[0]
	default:
		return &SchemaNode{Kind: UnionNode, Alternatives: flat}
	}
}

func appendDistinct(nodes []*SchemaNode, n *SchemaNode) []*SchemaNode {
	for _, existing := range nodes {
		if Equal(existing, n) {
			return nodes
		}
	}
	return append(nodes, n)
}

// IsEmpty reports whether the node is a degenerate array or object.
func (n *SchemaNode) IsEmpty() bool {
	if n == nil {
		return true
	}
	switch n.Kind {
	case ArrayNode:
		return n.Elem == nil
	case ObjectNode:
		return len(n.Fields) == 0
	default:
		return false
	}
}

// Field returns the field with the given name.
func (n *SchemaNode) Field(name string) (Field, bool) {
	if n == nil {
		return Field{}, false
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Options returns the node's alternatives: the members of a union, or the node
// itself otherwise. A nil node has none.
func (n *SchemaNode) Options() []*SchemaNode {
	if n == nil {
		return nil
	}
	if n.Kind == UnionNode {
		return n.Alternatives
	}
	return []*SchemaNode{n}
}

// Equal reports whether two schemas describe the same structure. Object fields
// are compared as a set, so field order does not matter; union alternatives
// are compared the same way.
func Equal(a, b *SchemaNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case PrimitiveNode:
		return a.Primitive == b.Primitive
	case ArrayNode:
		return Equal(a.Elem, b.Elem)
	case ObjectNode:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for _, fa := range a.Fields {
			fb, ok := b.Field(fa.Name)
			if !ok || !Equal(fa.Schema, fb.Schema) {
				return false
			}
		}
		return true
	case UnionNode:
		if len(a.Alternatives) != len(b.Alternatives) {
			return false
		}
		for _, alt := range a.Alternatives {
			found := false
			for _, other := range b.Alternatives {
				if Equal(alt, other) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}
