// Package dsl provides the combinator surface for building goshape schema
// trees. Every constructor is pure: it allocates a fresh node, never mutates
// its inputs, and never panics (the Must* helpers are the only exception and
// exist for package-level schema variables).
package dsl

import "github.com/reoring/goshape/ast"

// String matches a string value.
func String() ast.Node { return &ast.Primitive{Prim: ast.PrimString} }

// Number matches any finite numeric value (float64, int, json.Number).
func Number() ast.Node { return &ast.Primitive{Prim: ast.PrimNumber} }

// Int matches integral numeric values; decoding normalizes to int64.
func Int() ast.Node { return &ast.Primitive{Prim: ast.PrimInt} }

// BigInt matches arbitrary-precision integers; decoding normalizes to
// *big.Int.
func BigInt() ast.Node { return &ast.Primitive{Prim: ast.PrimBigInt} }

// Bool matches a boolean value.
func Bool() ast.Node { return &ast.Primitive{Prim: ast.PrimBool} }

// Null matches exactly null.
func Null() ast.Node { return &ast.Primitive{Prim: ast.PrimNull} }

// Undefined matches an absent value; in this engine's value model absence at
// a position is represented by nil.
func Undefined() ast.Node { return &ast.Primitive{Prim: ast.PrimUndefined} }

// Unknown accepts any value unchanged.
func Unknown() ast.Node { return &ast.Primitive{Prim: ast.PrimUnknown} }

// Never rejects every value.
func Never() ast.Node { return &ast.Primitive{Prim: ast.PrimNever} }

// ObjectAny matches any object without inspecting its properties.
func ObjectAny() ast.Node { return &ast.Primitive{Prim: ast.PrimObject} }

// Literal matches one or more exact scalar values by equality. With a single
// value a mismatch reports invalid_type; with several, invalid_enum.
func Literal(values ...any) ast.Node { return &ast.Literal{Values: values} }

// Enum matches one of the given string values.
func Enum(values ...string) ast.Node {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return &ast.Literal{Values: vs}
}
