package dsl

import "github.com/reoring/goshape/ast"

// Array matches a homogeneous slice of elem.
func Array(elem ast.Node) ast.Node { return &ast.Array{Elem: elem} }

// Tuple matches a fixed-arity positional sequence.
func Tuple(elems ...ast.Node) ast.Node { return &ast.Tuple{Head: elems} }

// TupleWithRest matches head positions followed by any number of rest
// elements.
func TupleWithRest(rest ast.Node, head ...ast.Node) ast.Node {
	return &ast.Tuple{Head: head, Rest: rest}
}

// Record matches a homogeneous map; every key checks against key and every
// value against value. Use a refined String (for example Pattern) for
// template-shaped keys.
func Record(key, value ast.Node) ast.Node { return &ast.Record{Key: key, Value: value} }

// Union matches the first member accepting the input, in declaration order.
// When every member is a struct sharing one required literal-valued key the
// union dispatches on that discriminant instead of trying members in turn.
func Union(members ...ast.Node) ast.Node { return ast.NewUnion(members...) }
