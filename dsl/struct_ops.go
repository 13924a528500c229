package dsl

import (
	"fmt"

	"github.com/reoring/goshape/ast"
)

// Struct-shape operators. Each one is a node-to-node rewrite: untouched
// field nodes are shared by reference with the source struct, never copied.

func asStruct(n ast.Node, op string) (*ast.Struct, error) {
	s, ok := n.(*ast.Struct)
	if !ok {
		return nil, fmt.Errorf("dsl: %s requires a struct node, got %s", op, n.Kind())
	}
	return s, nil
}

// Pick keeps only the named fields, in their original declaration order.
func Pick(n ast.Node, names ...string) (ast.Node, error) {
	s, err := asStruct(n, "Pick")
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(names))
	for _, nm := range names {
		if _, ok := s.FieldByName(nm); !ok {
			return nil, fmt.Errorf("dsl: Pick: no field %q", nm)
		}
		want[nm] = struct{}{}
	}
	out := make([]ast.Field, 0, len(names))
	for _, f := range s.Fields {
		if _, ok := want[f.Name]; ok {
			out = append(out, f)
		}
	}
	return ast.NewStruct(out...)
}

// Omit drops the named fields.
func Omit(n ast.Node, names ...string) (ast.Node, error) {
	s, err := asStruct(n, "Omit")
	if err != nil {
		return nil, err
	}
	drop := make(map[string]struct{}, len(names))
	for _, nm := range names {
		drop[nm] = struct{}{}
	}
	out := make([]ast.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if _, ok := drop[f.Name]; !ok {
			out = append(out, f)
		}
	}
	return ast.NewStruct(out...)
}

// Extend appends b's fields after a's. Overlapping names are a
// construction-time error, reported by NewStruct.
func Extend(a, b ast.Node) (ast.Node, error) {
	sa, err := asStruct(a, "Extend")
	if err != nil {
		return nil, err
	}
	sb, err := asStruct(b, "Extend")
	if err != nil {
		return nil, err
	}
	out := make([]ast.Field, 0, len(sa.Fields)+len(sb.Fields))
	out = append(out, sa.Fields...)
	out = append(out, sb.Fields...)
	return ast.NewStruct(out...)
}

// Partial relaxes every required field to optional. Fields already carrying
// an optional policy keep it.
func Partial(n ast.Node) (ast.Node, error) {
	s, err := asStruct(n, "Partial")
	if err != nil {
		return nil, err
	}
	out := make([]ast.Field, len(s.Fields))
	for i, f := range s.Fields {
		if f.Mode == ast.Required {
			f.Mode = ast.Optional
		}
		out[i] = f
	}
	return ast.NewStruct(out...)
}

// RequiredAll tightens every field to required, dropping defaults and
// container policies.
func RequiredAll(n ast.Node) (ast.Node, error) {
	s, err := asStruct(n, "RequiredAll")
	if err != nil {
		return nil, err
	}
	out := make([]ast.Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Mode = ast.Required
		f.DecodeDefault = nil
		out[i] = f
	}
	return ast.NewStruct(out...)
}

// RenameKey gives one field a distinct wire-side key.
func RenameKey(n ast.Node, name, wire string) (ast.Node, error) {
	s, err := asStruct(n, "RenameKey")
	if err != nil {
		return nil, err
	}
	if _, ok := s.FieldByName(name); !ok {
		return nil, fmt.Errorf("dsl: RenameKey: no field %q", name)
	}
	out := make([]ast.Field, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == name {
			f.EncodedName = wire
		}
		out[i] = f
	}
	return ast.NewStruct(out...)
}
