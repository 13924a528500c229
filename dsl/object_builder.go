package dsl

import (
	"fmt"

	"github.com/reoring/goshape/ast"
)

// ObjectBuilder assembles a struct node fluently. Fields keep their
// registration order. The FieldDef form (Struct/MustStruct) is equivalent;
// the builder reads better when policies are decided per field inline.
type ObjectBuilder struct {
	fields []ast.Field
	err    error
}

// FieldStep scopes the policy methods to the field just registered. Every
// policy method returns the builder so chains stay flat.
type FieldStep struct {
	b *ObjectBuilder
}

// Object creates an empty builder.
func Object() *ObjectBuilder { return &ObjectBuilder{} }

// Field registers a required field and opens its policy step.
func (b *ObjectBuilder) Field(name string, n ast.Node) *FieldStep {
	b.fields = append(b.fields, ast.Field{Name: name, Node: n, Mode: ast.Required})
	return &FieldStep{b: b}
}

func (b *ObjectBuilder) last() *ast.Field { return &b.fields[len(b.fields)-1] }

// Required keeps the field required (the default) and returns the builder.
func (f *FieldStep) Required() *ObjectBuilder {
	f.b.last().Mode = ast.Required
	return f.b
}

// Optional lets the field be missing; an explicit null counts as absent.
func (f *FieldStep) Optional() *ObjectBuilder {
	f.b.last().Mode = ast.Optional
	return f.b
}

// OptionalExact lets the field be missing but rejects an explicit null.
func (f *FieldStep) OptionalExact() *ObjectBuilder {
	f.b.last().Mode = ast.OptionalExact
	return f.b
}

// Default fills the field from the thunk when the key is missing.
func (f *FieldStep) Default(thunk func() any) *ObjectBuilder {
	fd := f.b.last()
	fd.Mode = ast.OptionalDefault
	fd.DecodeDefault = thunk
	return f.b
}

// NullOr decodes both a missing key and an explicit null to the empty
// Option container.
func (f *FieldStep) NullOr() *ObjectBuilder {
	f.b.last().Mode = ast.OptionalNull
	return f.b
}

// AsOption wraps every outcome of the field in an Option container.
func (f *FieldStep) AsOption() *ObjectBuilder {
	f.b.last().Mode = ast.OptionalContainer
	return f.b
}

// Rename sets the wire-side key and stays on the field step so a policy can
// follow.
func (f *FieldStep) Rename(wire string) *FieldStep {
	f.b.last().EncodedName = wire
	return f
}

// Field closes the current field as required and registers the next one.
func (f *FieldStep) Field(name string, n ast.Node) *FieldStep {
	return f.b.Field(name, n)
}

// Build finalizes the struct node.
func (f *FieldStep) Build() (ast.Node, error) { return f.b.Build() }

// MustBuild is Build for package-level schema variables.
func (f *FieldStep) MustBuild() ast.Node { return f.b.MustBuild() }

// Build finalizes the struct node, reporting duplicate names and policy
// conflicts.
func (b *ObjectBuilder) Build() (ast.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.fields) == 0 {
		return nil, fmt.Errorf("dsl: Object: no fields registered")
	}
	return ast.NewStruct(b.fields...)
}

// MustBuild panics on a construction error.
func (b *ObjectBuilder) MustBuild() ast.Node {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}
