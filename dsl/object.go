package dsl

import (
	"fmt"

	"github.com/reoring/goshape/ast"
)

// FieldDef is one property signature under construction. Chained policy
// methods accumulate; conflicting policies surface as an error from Struct.
type FieldDef struct {
	f   ast.Field
	err error
}

// Required declares a field that must be present.
func Required(name string, n ast.Node) FieldDef {
	return FieldDef{f: ast.Field{Name: name, Node: n, Mode: ast.Required}}
}

// Optional declares a field that may be missing; an explicit null is treated
// as absent.
func Optional(name string, n ast.Node) FieldDef {
	return FieldDef{f: ast.Field{Name: name, Node: n, Mode: ast.Optional}}
}

// OptionalExact declares a field that may be missing but rejects an explicit
// null.
func OptionalExact(name string, n ast.Node) FieldDef {
	return FieldDef{f: ast.Field{Name: name, Node: n, Mode: ast.OptionalExact}}
}

// WithDefault declares a field whose missing value is filled by the thunk at
// decode time. The default is applied verbatim, without re-validation, and
// is never re-applied on encode.
func WithDefault(name string, n ast.Node, thunk func() any) FieldDef {
	return FieldDef{f: ast.Field{Name: name, Node: n, Mode: ast.OptionalDefault, DecodeDefault: thunk}}
}

// NullOr declares a field where both a missing key and an explicit null
// decode to the empty Option container, and a present value decodes to a
// full container.
func NullOr(name string, n ast.Node) FieldDef {
	return FieldDef{f: ast.Field{Name: name, Node: n, Mode: ast.OptionalNull}}
}

// AsOption declares a field always wrapped in an Option container: missing
// decodes to empty, present to full.
func AsOption(name string, n ast.Node) FieldDef {
	return FieldDef{f: ast.Field{Name: name, Node: n, Mode: ast.OptionalContainer}}
}

// Rename sets a distinct wire-side key for the field.
func (d FieldDef) Rename(wire string) FieldDef {
	d.f.EncodedName = wire
	return d
}

// Default converts an Optional field into one carrying a decode-time default.
// Combining it with a container policy is a construction-time error.
func (d FieldDef) Default(thunk func() any) FieldDef {
	if d.err != nil {
		return d
	}
	switch d.f.Mode {
	case ast.Optional, ast.OptionalExact, ast.OptionalDefault:
		d.f.Mode = ast.OptionalDefault
		d.f.DecodeDefault = thunk
	default:
		d.err = fmt.Errorf("dsl: field %q: default conflicts with its optionality policy", d.f.Name)
	}
	return d
}

// ConstructDefault attaches a construction-time default thunk. It never
// participates in decoding.
func (d FieldDef) ConstructDefault(thunk func() any) FieldDef {
	d.f.ConstructDefault = thunk
	return d
}

// Struct assembles the property signatures into a struct node. Duplicate
// names or keys and conflicting field policies are reported here.
func Struct(defs ...FieldDef) (ast.Node, error) {
	fields := make([]ast.Field, 0, len(defs))
	for _, d := range defs {
		if d.err != nil {
			return nil, d.err
		}
		fields = append(fields, d.f)
	}
	return ast.NewStruct(fields...)
}

// MustStruct is Struct for package-level schema variables; it panics on a
// construction error.
func MustStruct(defs ...FieldDef) ast.Node {
	n, err := Struct(defs...)
	if err != nil {
		panic(err)
	}
	return n
}
