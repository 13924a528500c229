package dsl

import "github.com/reoring/goshape/ast"

// Transform pairs an encoded-side node (from) with a type-side node (to) and
// the conversion functions across the boundary. Decoding checks from first,
// then runs dec; encoding runs enc first, then checks the result against
// from. Either function may be nil for a one-way transform.
func Transform(from, to ast.Node, dec, enc ast.TransformFunc) ast.Node {
	return &ast.Transform{From: from, To: to, DecodeFn: dec, EncodeFn: enc}
}

// Brand marks the node with a nominal tag for downstream typing tools. It
// has no runtime effect.
func Brand(inner ast.Node, tag string) ast.Node {
	return &ast.Brand{Inner: inner, Tag: tag}
}

// Suspend defers node construction to a thunk, enabling self-referential
// schemas:
//
//	var category ast.Node
//	category = dsl.MustStruct(
//		dsl.Required("name", dsl.String()),
//		dsl.Required("children", dsl.Array(dsl.Suspend(func() ast.Node { return category }))),
//	)
func Suspend(thunk func() ast.Node) ast.Node {
	return &ast.Suspend{Thunk: thunk}
}
