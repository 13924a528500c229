package ast

// Visitor receives each node during Walk. Returning false skips the node's
// children.
type Visitor func(n Node) bool

// Walk traverses the node tree depth-first in declaration order, calling v
// for every node. Suspend nodes are visited but their thunks are not
// resolved, so walking a self-referential schema terminates; consumers that
// need one level of the recursion can call Resolve themselves.
func Walk(n Node, v Visitor) {
	if n == nil || !v(n) {
		return
	}
	switch t := n.(type) {
	case *Primitive, *Literal, *Suspend:
		// leaves
	case *Struct:
		for _, f := range t.Fields {
			Walk(f.Node, v)
		}
	case *Array:
		Walk(t.Elem, v)
	case *Tuple:
		for _, h := range t.Head {
			Walk(h, v)
		}
		if t.Rest != nil {
			Walk(t.Rest, v)
		}
	case *Record:
		Walk(t.Key, v)
		Walk(t.Value, v)
	case *Union:
		for _, m := range t.Members {
			Walk(m, v)
		}
	case *Refine:
		Walk(t.Inner, v)
	case *Transform:
		Walk(t.From, v)
		Walk(t.To, v)
	case *Brand:
		Walk(t.Inner, v)
	}
}
