package jsonschema

import (
	"fmt"

	"github.com/reoring/goshape/ast"
)

// Export converts a schema node into a JSON Schema document. Transform nodes
// export their encoded (from) side, since JSON Schema describes the wire
// shape. Recursive schemas built with Suspend are cut at the point of
// re-entry with an unconstrained schema.
func Export(n ast.Node) (*Schema, error) {
	e := &exporter{seen: map[*ast.Suspend]bool{}}
	return e.node(n)
}

type exporter struct {
	seen map[*ast.Suspend]bool
}

func (e *exporter) node(n ast.Node) (*Schema, error) {
	var s *Schema
	var err error
	switch t := n.(type) {
	case *ast.Primitive:
		s, err = primitiveSchema(t.Prim)
	case *ast.Literal:
		s = literalSchema(t)
	case *ast.Struct:
		s, err = e.structSchema(t)
	case *ast.Array:
		s, err = e.arraySchema(t)
	case *ast.Tuple:
		s, err = e.tupleSchema(t)
	case *ast.Record:
		s, err = e.recordSchema(t)
	case *ast.Union:
		s, err = e.unionSchema(t)
	case *ast.Refine:
		s, err = e.refineSchema(t)
	case *ast.Transform:
		s, err = e.node(t.From)
	case *ast.Brand:
		s, err = e.node(t.Inner)
	case *ast.Suspend:
		if e.seen[t] {
			return &Schema{}, nil
		}
		e.seen[t] = true
		s, err = e.node(t.Resolve())
		delete(e.seen, t)
	default:
		return nil, fmt.Errorf("jsonschema: unsupported node %T", n)
	}
	if err != nil {
		return nil, err
	}
	applyAnnotations(s, n.Annotations())
	return s, nil
}

func primitiveSchema(p ast.PrimKind) (*Schema, error) {
	switch p {
	case ast.PrimString:
		return &Schema{Type: "string"}, nil
	case ast.PrimNumber:
		return &Schema{Type: "number"}, nil
	case ast.PrimInt, ast.PrimBigInt:
		return &Schema{Type: "integer"}, nil
	case ast.PrimBool:
		return &Schema{Type: "boolean"}, nil
	case ast.PrimNull:
		return &Schema{Type: "null"}, nil
	case ast.PrimObject:
		return &Schema{Type: "object"}, nil
	case ast.PrimUnknown:
		return &Schema{}, nil
	case ast.PrimNever, ast.PrimUndefined:
		// No JSON value satisfies these; "not anything" via empty enum.
		return &Schema{Enum: []any{}}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unsupported primitive %v", p)
	}
}

func literalSchema(n *ast.Literal) *Schema {
	if len(n.Values) == 1 {
		return &Schema{Const: n.Values[0]}
	}
	return &Schema{Enum: append([]any(nil), n.Values...)}
}

func (e *exporter) structSchema(n *ast.Struct) (*Schema, error) {
	s := &Schema{
		Type:                 "object",
		Properties:           map[string]*Schema{},
		AdditionalProperties: false,
	}
	for _, f := range n.Fields {
		fs, err := e.node(f.Node)
		if err != nil {
			return nil, err
		}
		if f.Mode == ast.OptionalDefault && f.DecodeDefault != nil {
			fs.Default = f.DecodeDefault()
		}
		s.Properties[f.Key()] = fs
		if f.Mode == ast.Required {
			s.Required = append(s.Required, f.Key())
		}
	}
	return s, nil
}

func (e *exporter) arraySchema(n *ast.Array) (*Schema, error) {
	items, err := e.node(n.Elem)
	if err != nil {
		return nil, err
	}
	return &Schema{Type: "array", Items: items}, nil
}

func (e *exporter) tupleSchema(n *ast.Tuple) (*Schema, error) {
	s := &Schema{Type: "array"}
	for _, el := range n.Head {
		es, err := e.node(el)
		if err != nil {
			return nil, err
		}
		s.PrefixItems = append(s.PrefixItems, es)
	}
	k := len(n.Head)
	s.MinItems = &k
	if n.Rest != nil {
		items, err := e.node(n.Rest)
		if err != nil {
			return nil, err
		}
		s.Items = items
	} else {
		m := k
		s.MaxItems = &m
	}
	return s, nil
}

func (e *exporter) recordSchema(n *ast.Record) (*Schema, error) {
	val, err := e.node(n.Value)
	if err != nil {
		return nil, err
	}
	return &Schema{Type: "object", AdditionalProperties: val}, nil
}

func (e *exporter) unionSchema(n *ast.Union) (*Schema, error) {
	s := &Schema{}
	for _, m := range n.Members {
		ms, err := e.node(m)
		if err != nil {
			return nil, err
		}
		s.OneOf = append(s.OneOf, ms)
	}
	return s, nil
}

func (e *exporter) refineSchema(n *ast.Refine) (*Schema, error) {
	s, err := e.node(n.Inner)
	if err != nil {
		return nil, err
	}
	applyRule(s, n.Name, n.Params)
	return s, nil
}

// applyRule maps the stock rule parameters onto schema keywords. Rules the
// exporter does not recognize contribute nothing; the refined base schema is
// still emitted.
func applyRule(s *Schema, name string, params map[string]any) {
	switch name {
	case "minLength":
		if v, ok := intParam(params, "min"); ok {
			s.MinLength = &v
		}
	case "maxLength":
		if v, ok := intParam(params, "max"); ok {
			s.MaxLength = &v
		}
	case "pattern":
		if v, ok := params["pattern"].(string); ok {
			s.Pattern = v
		}
	case "min":
		if v, ok := floatParam(params, "min"); ok {
			s.Minimum = &v
		}
	case "max":
		if v, ok := floatParam(params, "max"); ok {
			s.Maximum = &v
		}
	case "intRange":
		if v, ok := floatParam(params, "min"); ok {
			s.Minimum = &v
		}
		if v, ok := floatParam(params, "max"); ok {
			s.Maximum = &v
		}
	}
}

func intParam(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func floatParam(params map[string]any, key string) (float64, bool) {
	switch v := params[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func applyAnnotations(s *Schema, ann ast.Annotations) {
	if v, ok := ann.Get(ast.AnnTitle); ok {
		if t, ok := v.(string); ok {
			s.Title = t
		}
	}
	if v, ok := ann.Get(ast.AnnDescription); ok {
		if d, ok := v.(string); ok {
			s.Description = d
		}
	}
	if v, ok := ann.Get(ast.AnnDefault); ok {
		s.Default = v
	}
	if v, ok := ann.Get(ast.AnnExamples); ok {
		if xs, ok := v.([]any); ok {
			s.Examples = xs
		}
	}
}
