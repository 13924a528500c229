package dsl

import "github.com/reoring/goshape/ast"

// Annotation helpers. Each returns a copy of the node carrying the extra
// metadata; subtrees are shared, so annotating is cheap and the original
// node is untouched.

// Identify attaches an identifier used in union error labels and by external
// documentation tools.
func Identify(n ast.Node, id string) ast.Node {
	return n.Annotate(ast.Annotations{ast.AnnIdentifier: id})
}

// Title attaches a human-readable title.
func Title(n ast.Node, title string) ast.Node {
	return n.Annotate(ast.Annotations{ast.AnnTitle: title})
}

// Describe attaches a description.
func Describe(n ast.Node, desc string) ast.Node {
	return n.Annotate(ast.Annotations{ast.AnnDescription: desc})
}

// Examples attaches example values for documentation and generation tools.
func Examples(n ast.Node, examples ...any) ast.Node {
	return n.Annotate(ast.Annotations{ast.AnnExamples: examples})
}

// DefaultValue records a default for external consumers; it does not change
// decoding (use WithDefault on the field for that).
func DefaultValue(n ast.Node, v any) ast.Node {
	return n.Annotate(ast.Annotations{ast.AnnDefault: v})
}

// WithMessage overrides the issue text the engines emit for this node.
func WithMessage(n ast.Node, f ast.MessageFunc) ast.Node {
	return n.Annotate(ast.Annotations{ast.AnnMessage: f})
}

// Annotate attaches an arbitrary annotation key.
func Annotate(n ast.Node, key ast.AnnKey, v any) ast.Node {
	return n.Annotate(ast.Annotations{key: v})
}
