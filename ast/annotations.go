package ast

// AnnKey names one annotation entry. Keys recognized by the engines and the
// stock consumers are exported below; schema authors may attach arbitrary
// keys of their own.
type AnnKey string

const (
	AnnIdentifier  AnnKey = "identifier"
	AnnTitle       AnnKey = "title"
	AnnDescription AnnKey = "description"
	AnnExamples    AnnKey = "examples"
	AnnDefault     AnnKey = "default"
	// AnnMessage holds a MessageFunc consulted by the engines when building
	// issue text for this node.
	AnnMessage AnnKey = "message"
	// AnnSchemaHint carries an opaque hint for external schema exporters.
	AnnSchemaHint AnnKey = "schemaHint"
	// AnnArbitrary carries a value-generator function for external tools.
	AnnArbitrary AnnKey = "arbitrary"
	// AnnPretty carries a display function for external tools.
	AnnPretty AnnKey = "pretty"
	// AnnEquivalence carries an equality function for external tools.
	AnnEquivalence AnnKey = "equivalence"
)

// MessageFunc produces a custom issue message. code is the issue code being
// raised and actual the offending value.
type MessageFunc func(code string, actual any) string

// Annotations is an immutable key/value store attached to a node. The zero
// value (nil) is a valid empty store. With and Merge copy; callers never
// observe mutation of a shared map.
type Annotations map[AnnKey]any

// Get returns the value for key.
func (a Annotations) Get(key AnnKey) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// With returns a copy of a with key set to value.
func (a Annotations) With(key AnnKey, value any) Annotations {
	out := make(Annotations, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[key] = value
	return out
}

// Merge returns a copy of a overlaid with b; entries in b win.
func (a Annotations) Merge(b Annotations) Annotations {
	if len(b) == 0 {
		return a
	}
	out := make(Annotations, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Identifier returns the identifier annotation when present.
func Identifier(n Node) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Annotations().Get(AnnIdentifier)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Message returns the custom message function attached to n, if any.
func Message(n Node) (MessageFunc, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.Annotations().Get(AnnMessage)
	if !ok {
		return nil, false
	}
	f, ok := v.(MessageFunc)
	return f, ok
}
