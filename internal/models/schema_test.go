package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnion(t *testing.T) {
	str := NewPrimitive(StringType)
	num := NewPrimitive(NumberType)

	t.Run("no alternatives is unknown", func(t *testing.T) {
		u := NewUnion()
		assert.Equal(t, PrimitiveNode, u.Kind)
		assert.Equal(t, Unknown, u.Primitive)
	})

	t.Run("single alternative collapses", func(t *testing.T) {
		assert.Same(t, num, NewUnion(num, nil, NewPrimitive(NumberType)))
	})

	t.Run("duplicates dropped, first wins", func(t *testing.T) {
		u := NewUnion(num, str, NewPrimitive(NumberType))
		require.Equal(t, UnionNode, u.Kind)
		require.Len(t, u.Alternatives, 2)
		assert.Same(t, num, u.Alternatives[0])
		assert.Same(t, str, u.Alternatives[1])
	})

	t.Run("nested unions flatten", func(t *testing.T) {
		inner := NewUnion(num, str)
		u := NewUnion(NewPrimitive(BooleanType), inner, str)
		require.Equal(t, UnionNode, u.Kind)
		require.Len(t, u.Alternatives, 3)
		for _, alt := range u.Alternatives {
			assert.NotEqual(t, UnionNode, alt.Kind)
		}
	})
}

func TestEqual(t *testing.T) {
	str := NewPrimitive(StringType)
	num := NewPrimitive(NumberType)

	tests := []struct {
		name string
		a, b *SchemaNode
		want bool
	}{
		{"same primitive", NewPrimitive(StringType), str, true},
		{"different primitive", str, num, false},
		{"nil and nil", nil, nil, true},
		{"nil and node", nil, str, false},
		{"array elements", NewArray(num), NewArray(NewPrimitive(NumberType)), true},
		{"empty array vs array", NewArray(nil), NewArray(num), false},
		{"empty array vs empty object", NewArray(nil), NewObject(), false},
		{
			name: "object field order does not matter",
			a:    NewObject(Field{Name: "a", Schema: num}, Field{Name: "b", Schema: str}),
			b:    NewObject(Field{Name: "b", Schema: str}, Field{Name: "a", Schema: num}),
			want: true,
		},
		{
			name: "object required flag does not matter",
			a:    NewObject(Field{Name: "a", Schema: num, Required: true}),
			b:    NewObject(Field{Name: "a", Schema: num}),
			want: true,
		},
		{
			name: "object field types differ",
			a:    NewObject(Field{Name: "a", Schema: num}),
			b:    NewObject(Field{Name: "a", Schema: str}),
			want: false,
		},
		{
			name: "object field sets differ",
			a:    NewObject(Field{Name: "a", Schema: num}),
			b:    NewObject(Field{Name: "b", Schema: num}),
			want: false,
		},
		{"union order does not matter", NewUnion(num, str), NewUnion(str, num), true},
		{"union members differ", NewUnion(num, str), NewUnion(num, NewPrimitive(BooleanType)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	var nilNode *SchemaNode
	assert.True(t, nilNode.IsEmpty())
	assert.True(t, NewArray(nil).IsEmpty())
	assert.True(t, NewObject().IsEmpty())
	assert.False(t, NewPrimitive(Unknown).IsEmpty())
	assert.False(t, NewArray(NewPrimitive(StringType)).IsEmpty())
	assert.False(t, NewObject(Field{Name: "a", Schema: NewPrimitive(StringType)}).IsEmpty())
}

func TestOptions(t *testing.T) {
	str := NewPrimitive(StringType)
	num := NewPrimitive(NumberType)

	var nilNode *SchemaNode
	assert.Nil(t, nilNode.Options())
	assert.Equal(t, []*SchemaNode{str}, str.Options())
	assert.Len(t, NewUnion(str, num).Options(), 2)
}

func TestJSONValue_Accessors(t *testing.T) {
	v := ObjectValue(
		Member{Key: "b", Value: NumberValue("1")},
		Member{Key: "a", Value: StringValue("x")},
	)
	assert.Equal(t, []string{"b", "a"}, v.Keys())

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "x", a.String)

	_, ok = v.Get("missing")
	assert.False(t, ok)

	assert.NotNil(t, ArrayValue().Array)
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "null", NullValue().Kind.String())
}
