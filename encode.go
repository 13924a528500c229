package goshape

import (
	"context"

	"github.com/reoring/goshape/ast"
	"github.com/reoring/goshape/i18n"
)

// encodeNode mirrors decodeNode, walking Type -> Encoded. A transform's
// encode function runs at the node's own boundary first; the result is then
// encoded against the from-side node.
func (st *state) encodeNode(ctx context.Context, n ast.Node, path string, v any) (any, Issues) {
	switch t := n.(type) {
	case *ast.Primitive:
		return st.decodePrimitive(t, path, v)
	case *ast.Literal:
		return st.decodeLiteral(t, path, v)
	case *ast.Struct:
		return st.encodeStruct(ctx, t, path, v)
	case *ast.Array:
		return st.encodeArray(ctx, t, path, v)
	case *ast.Tuple:
		return st.encodeTuple(ctx, t, path, v)
	case *ast.Record:
		return st.encodeRecord(ctx, t, path, v)
	case *ast.Union:
		return st.encodeUnion(ctx, t, path, v)
	case *ast.Refine:
		return st.encodeRefine(ctx, t, path, v)
	case *ast.Transform:
		return st.encodeTransform(ctx, t, path, v)
	case *ast.Brand:
		return st.encodeNode(ctx, t.Inner, path, v)
	case *ast.Suspend:
		inner := t.Resolve()
		if inner == nil {
			return nil, Issues{{Path: path, Code: CodeParseError, Message: "unresolved suspend node"}}
		}
		return st.encodeNode(ctx, inner, path, v)
	default:
		return nil, Issues{{Path: path, Code: CodeParseError, Message: "unknown node kind"}}
	}
}

func (st *state) encodeStruct(ctx context.Context, n *ast.Struct, path string, v any) (any, Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected object", nil)}
	}
	out := make(map[string]any, len(src))
	var iss Issues
	for _, f := range n.Fields {
		fp := childPath(path, f.Key())
		val, exists := src[f.Name]
		if !exists {
			// Default-bearing fields encode whatever value they currently
			// hold; they are never re-defaulted on the way out.
			if f.Mode == ast.Required {
				iss = AppendIssues(iss, issueFor(f.Node, fp, CodeRequired, nil, "required property missing", nil))
				if st.failFast() {
					return nil, iss
				}
			}
			continue
		}
		switch f.Mode {
		case ast.OptionalNull, ast.OptionalContainer:
			o, ok := val.(Option)
			if !ok {
				iss = AppendIssues(iss, issueFor(f.Node, fp, CodeInvalidType, val, "expected option container", nil))
				if st.failFast() {
					return nil, iss
				}
				continue
			}
			if o.IsNone() {
				continue
			}
			inner, _ := o.Value()
			ev, i2 := st.encodeNode(ctx, f.Node, fp, inner)
			if len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
				if st.failFast() {
					return nil, iss
				}
				continue
			}
			out[f.Key()] = ev
			continue
		case ast.Optional:
			if val == nil {
				continue
			}
		}
		ev, i2 := st.encodeNode(ctx, f.Node, fp, val)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out[f.Key()] = ev
	}
	// There is no excess on the way out; preserved keys pass through only
	// when the caller decoded with ExcessPreserve.
	if st.opt.OnExcessProperty == ExcessPreserve {
		known := make(map[string]struct{}, len(n.Fields))
		for _, f := range n.Fields {
			known[f.Name] = struct{}{}
		}
		for k, val := range src {
			if _, ok := known[k]; !ok {
				out[k] = val
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) encodeArray(ctx context.Context, n *ast.Array, path string, v any) (any, Issues) {
	src, ok := v.([]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected array", nil)}
	}
	out := make([]any, 0, len(src))
	var iss Issues
	for i, el := range src {
		ev, i2 := st.encodeNode(ctx, n.Elem, indexPath(path, i), el)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) encodeTuple(ctx context.Context, n *ast.Tuple, path string, v any) (any, Issues) {
	src, ok := v.([]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected tuple", nil)}
	}
	if n.Rest == nil && len(src) != len(n.Head) {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "wrong tuple length", map[string]any{"expected": len(n.Head), "got": len(src)})}
	}
	if len(src) < len(n.Head) {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "tuple too short", map[string]any{"expected": len(n.Head), "got": len(src)})}
	}
	out := make([]any, 0, len(src))
	var iss Issues
	for i := range src {
		elem := n.Rest
		if i < len(n.Head) {
			elem = n.Head[i]
		}
		ev, i2 := st.encodeNode(ctx, elem, indexPath(path, i), src[i])
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) encodeRecord(ctx context.Context, n *ast.Record, path string, v any) (any, Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected object", nil)}
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sortStrings(keys)
	out := make(map[string]any, len(src))
	var iss Issues
	for _, k := range keys {
		kp := childPath(path, k)
		if _, i2 := st.encodeNode(ctx, n.Key, kp, k); len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		ev, i2 := st.encodeNode(ctx, n.Value, kp, src[k])
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out[k] = ev
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) encodeUnion(ctx context.Context, n *ast.Union, path string, v any) (any, Issues) {
	if n.Discriminator != "" {
		if m, ok := v.(map[string]any); ok {
			tag, present := m[n.Discriminator]
			if present {
				if idx, ok := lookupTag(n.ByTag, tag); ok {
					return st.encodeNode(ctx, n.Members[idx], path, v)
				}
				return nil, Issues{issueFor(n, childPath(path, n.Discriminator), CodeDiscriminatorUnknown, tag, "unknown variant", map[string]any{"discriminator": n.Discriminator})}
			}
		}
	}
	children := make(Issues, 0, len(n.Members))
	for i, m := range n.Members {
		// Pick the first member whose type view accepts the value.
		vs := &state{opt: DecodeOpt{Errors: ErrorsFirst}, mode: modeValidate}
		_, iss := vs.decodeNode(ctx, m, path, v)
		if len(iss) == 0 {
			return st.encodeNode(ctx, m, path, v)
		}
		if len(iss) == 1 {
			children = append(children, iss[0])
			continue
		}
		children = append(children, Issue{Path: path, Code: CodeComposite, Message: memberLabel(m, i) + " failed", Children: iss})
	}
	return nil, Issues{{
		Path:     path,
		Code:     CodeUnionExhausted,
		Message:  i18n.T(CodeUnionExhausted, nil),
		Actual:   v,
		Children: children,
	}}
}

// encodeRefine re-checks the predicate so that encoding an invalid in-memory
// value fails instead of silently producing bad output.
func (st *state) encodeRefine(ctx context.Context, n *ast.Refine, path string, v any) (any, Issues) {
	if n.Pred != nil {
		if n.Effectful {
			if err := ctx.Err(); err != nil {
				return nil, Issues{{Path: path, Code: CodeCancelled, Message: "encode cancelled", Cause: err}}
			}
		}
		if err := n.Pred(ctx, v); err != nil {
			if i2, ok := AsIssues(err); ok {
				return nil, rebaseIssues(path, i2)
			}
			msg := n.Message
			if msg == "" {
				msg = err.Error()
			}
			return nil, Issues{{Path: path, Code: CodeForbidden, Message: msg, Cause: err, Actual: v, Params: map[string]any{"refinement": n.Name}}}
		}
	}
	return st.encodeNode(ctx, n.Inner, path, v)
}

func (st *state) encodeTransform(ctx context.Context, n *ast.Transform, path string, v any) (any, Issues) {
	fv := v
	if n.EncodeFn != nil {
		ev, err := n.EncodeFn(ctx, v)
		if err != nil {
			if i2, ok := AsIssues(err); ok {
				return nil, rebaseIssues(path, i2)
			}
			return nil, Issues{{Path: path, Code: CodeTransform, Message: err.Error(), Cause: err, Actual: v}}
		}
		fv = ev
	}
	return st.encodeNode(ctx, n.From, path, fv)
}
