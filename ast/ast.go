// Package ast defines the immutable schema node tree interpreted by the
// goshape decode/encode/validate engines.
//
// The node set is closed: every variant is a concrete struct in this package
// and carries a Kind tag so engines and external consumers can switch
// exhaustively. Nodes are values built once by the dsl package and shared
// read-only afterwards; no method on any node mutates the receiver.
package ast

import "context"

// Kind identifies a node variant.
type Kind int

const (
	KindPrimitive Kind = iota
	KindLiteral
	KindStruct
	KindArray
	KindTuple
	KindRecord
	KindUnion
	KindRefine
	KindTransform
	KindBrand
	KindSuspend
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindLiteral:
		return "literal"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	case KindRefine:
		return "refine"
	case KindTransform:
		return "transform"
	case KindBrand:
		return "brand"
	case KindSuspend:
		return "suspend"
	default:
		return "unknown"
	}
}

// Node is the root interface implemented by every schema variant.
// Annotate returns a copy of the node carrying the given annotations;
// children are shared by reference, so annotating is O(1).
type Node interface {
	Kind() Kind
	Annotations() Annotations
	Annotate(a Annotations) Node
}

// PrimKind tags the base type carried by a Primitive node.
type PrimKind int

const (
	PrimString PrimKind = iota
	PrimNumber
	PrimInt
	PrimBigInt
	PrimBool
	PrimNull
	PrimUndefined
	PrimUnknown
	PrimNever
	PrimObject
)

func (p PrimKind) String() string {
	switch p {
	case PrimString:
		return "string"
	case PrimNumber:
		return "number"
	case PrimInt:
		return "integer"
	case PrimBigInt:
		return "bigint"
	case PrimBool:
		return "boolean"
	case PrimNull:
		return "null"
	case PrimUndefined:
		return "undefined"
	case PrimUnknown:
		return "unknown"
	case PrimNever:
		return "never"
	case PrimObject:
		return "object"
	default:
		return "unknown"
	}
}

// Primitive matches a single base type.
type Primitive struct {
	Prim PrimKind
	Ann  Annotations
}

func (n *Primitive) Kind() Kind               { return KindPrimitive }
func (n *Primitive) Annotations() Annotations { return n.Ann }
func (n *Primitive) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Literal matches one or more exact scalar values by equality.
type Literal struct {
	Values []any
	Ann    Annotations
}

func (n *Literal) Kind() Kind               { return KindLiteral }
func (n *Literal) Annotations() Annotations { return n.Ann }
func (n *Literal) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Optionality is the per-field policy applied by struct decoding.
type Optionality int

const (
	// Required rejects a missing key.
	Required Optionality = iota
	// Optional accepts a missing key and treats an explicit null as absent.
	Optional
	// OptionalExact accepts a missing key but rejects an explicit null.
	OptionalExact
	// OptionalDefault applies the field's DecodeDefault thunk when missing.
	OptionalDefault
	// OptionalNull maps both a missing key and an explicit null to the empty
	// Option container; a present value decodes into a full container.
	OptionalNull
	// OptionalContainer wraps every outcome in an Option container: missing
	// becomes empty, present becomes full.
	OptionalContainer
)

// Field is one property signature inside a Struct.
type Field struct {
	Name        string
	EncodedName string // wire-side key; empty means same as Name
	Node        Node
	Mode        Optionality
	// DecodeDefault supplies the value used when the key is missing and Mode
	// is OptionalDefault. The thunk runs per decode call.
	DecodeDefault func() any
	// ConstructDefault supplies the value used by construction helpers; it
	// never participates in decoding.
	ConstructDefault func() any
}

// Key returns the wire-side key for the field.
func (f Field) Key() string {
	if f.EncodedName != "" {
		return f.EncodedName
	}
	return f.Name
}

// Struct is an ordered list of property signatures. Field names are unique;
// NewStruct enforces this at construction time.
type Struct struct {
	Fields []Field
	Ann    Annotations
}

func (n *Struct) Kind() Kind               { return KindStruct }
func (n *Struct) Annotations() Annotations { return n.Ann }
func (n *Struct) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// FieldByName returns the field with the given type-side name.
func (n *Struct) FieldByName(name string) (Field, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Array matches a homogeneous slice.
type Array struct {
	Elem Node
	Ann  Annotations
}

func (n *Array) Kind() Kind               { return KindArray }
func (n *Array) Annotations() Annotations { return n.Ann }
func (n *Array) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Tuple matches a fixed head of positional elements plus an optional variadic
// rest segment. Rest == nil means fixed arity.
type Tuple struct {
	Head []Node
	Rest Node
	Ann  Annotations
}

func (n *Tuple) Kind() Kind               { return KindTuple }
func (n *Tuple) Annotations() Annotations { return n.Ann }
func (n *Tuple) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Record matches a homogeneous map: every key checks against Key, every
// value against Value.
type Record struct {
	Key   Node
	Value Node
	Ann   Annotations
}

func (n *Record) Kind() Kind               { return KindRecord }
func (n *Record) Annotations() Annotations { return n.Ann }
func (n *Record) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Union matches the first member that accepts the input, in declaration
// order. When every member is a Struct sharing one required literal-valued
// key, NewUnion precomputes a discriminator table for O(1) dispatch.
type Union struct {
	Members []Node
	// Discriminator is the shared literal key, or empty for ordered-trial
	// unions.
	Discriminator string
	// ByTag maps a discriminant literal value to the member index.
	ByTag map[any]int
	Ann   Annotations
}

func (n *Union) Kind() Kind               { return KindUnion }
func (n *Union) Annotations() Annotations { return n.Ann }
func (n *Union) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Predicate is a refinement check over the type-side value. A nil return
// means the value passed; any error is surfaced as a forbidden issue (or
// verbatim when the error already carries issues).
type Predicate func(ctx context.Context, v any) error

// Refine narrows the wrapped node with a predicate without changing the
// carrier type. Effectful marks predicates that may block on external work;
// engines check for cancellation before invoking them.
type Refine struct {
	Inner     Node
	Name      string
	Pred      Predicate
	Message   string
	Effectful bool
	// Params exposes the rule's parameters (min, max, pattern, ...) to
	// read-only consumers such as schema exporters. Engines ignore it.
	Params map[string]any
	Ann    Annotations
}

func (n *Refine) Kind() Kind               { return KindRefine }
func (n *Refine) Annotations() Annotations { return n.Ann }
func (n *Refine) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// TransformFunc converts a value across the node boundary. Failure is a
// first-class return value, never a panic.
type TransformFunc func(ctx context.Context, v any) (any, error)

// Transform pairs an encoded-side node (From) with a type-side node (To) and
// the two conversion functions between them.
type Transform struct {
	From     Node
	To       Node
	DecodeFn TransformFunc
	EncodeFn TransformFunc
	Ann      Annotations
}

func (n *Transform) Kind() Kind               { return KindTransform }
func (n *Transform) Annotations() Annotations { return n.Ann }
func (n *Transform) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Brand marks the wrapped node with a nominal tag. It has no runtime effect.
type Brand struct {
	Inner Node
	Tag   string
	Ann   Annotations
}

func (n *Brand) Kind() Kind               { return KindBrand }
func (n *Brand) Annotations() Annotations { return n.Ann }
func (n *Brand) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Suspend defers node resolution to a thunk, enabling self-referential
// shapes. The thunk is resolved once per engine call and never memoized
// across calls.
type Suspend struct {
	Thunk func() Node
	Ann   Annotations
}

func (n *Suspend) Kind() Kind               { return KindSuspend }
func (n *Suspend) Annotations() Annotations { return n.Ann }
func (n *Suspend) Annotate(a Annotations) Node {
	c := *n
	c.Ann = c.Ann.Merge(a)
	return &c
}

// Resolve evaluates the thunk. A nil thunk or a thunk returning nil yields
// nil; engines surface that as a parse error.
func (n *Suspend) Resolve() Node {
	if n.Thunk == nil {
		return nil
	}
	return n.Thunk()
}
