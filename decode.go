package goshape

import (
	"context"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/reoring/goshape/ast"
	"github.com/reoring/goshape/i18n"
)

type engineMode int

const (
	modeDecode engineMode = iota
	modeValidate
)

// state threads the per-call options through the traversal. It is created
// fresh for every entry-point call and never retained.
type state struct {
	opt  DecodeOpt
	mode engineMode
	meta *Meta
}

func (st *state) failFast() bool { return st.opt.Errors == ErrorsFirst }

// ---- path helpers (JSON Pointer, RFC 6901) ----

func escapeKey(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
}

func childPath(base, key string) string {
	if base == "" || base == "/" {
		return "/" + escapeKey(key)
	}
	return base + "/" + escapeKey(key)
}

func indexPath(base string, i int) string {
	return childPath(base, strconv.Itoa(i))
}

// rebaseIssues prefixes issue paths produced relative to a sub-root.
func rebaseIssues(base string, iss Issues) Issues {
	if base == "" || base == "/" || len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case strings.HasPrefix(p, "/"):
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		it.Children = rebaseIssues(base, it.Children)
		out[i] = it
	}
	return out
}

// issueFor builds an Issue, letting a message annotation on the node
// override the catalog text.
func issueFor(n ast.Node, path, code string, actual any, hint string, params map[string]any) Issue {
	msg := ""
	if f, ok := ast.Message(n); ok && f != nil {
		msg = f(code, actual)
	}
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return Issue{Path: path, Code: code, Message: msg, Hint: hint, Actual: actual, Params: params}
}

// ---- number coercion helpers ----

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && inInt64Range(f) {
			return int64(f), true
		}
		return 0, false
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && inInt64Range(n) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// inInt64Range reports whether f converts to int64 without overflow.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func inInt64Range(f float64) bool {
	return f >= math.MinInt64 && f < math.MaxInt64
}

func asBigInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case *big.Int:
		return n, true
	case json.Number:
		if b, ok := new(big.Int).SetString(n.String(), 10); ok {
			return b, true
		}
		return nil, false
	default:
		if i, ok := asInt(v); ok {
			return big.NewInt(i), true
		}
		return nil, false
	}
}

// ---- core traversal ----

func (st *state) decodeNode(ctx context.Context, n ast.Node, path string, v any) (any, Issues) {
	switch t := n.(type) {
	case *ast.Primitive:
		return st.decodePrimitive(t, path, v)
	case *ast.Literal:
		return st.decodeLiteral(t, path, v)
	case *ast.Struct:
		return st.decodeStruct(ctx, t, path, v)
	case *ast.Array:
		return st.decodeArray(ctx, t, path, v)
	case *ast.Tuple:
		return st.decodeTuple(ctx, t, path, v)
	case *ast.Record:
		return st.decodeRecord(ctx, t, path, v)
	case *ast.Union:
		return st.decodeUnion(ctx, t, path, v)
	case *ast.Refine:
		return st.decodeRefine(ctx, t, path, v)
	case *ast.Transform:
		return st.decodeTransform(ctx, t, path, v)
	case *ast.Brand:
		return st.decodeNode(ctx, t.Inner, path, v)
	case *ast.Suspend:
		inner := t.Resolve()
		if inner == nil {
			return nil, Issues{{Path: path, Code: CodeParseError, Message: "unresolved suspend node"}}
		}
		return st.decodeNode(ctx, inner, path, v)
	default:
		return nil, Issues{{Path: path, Code: CodeParseError, Message: "unknown node kind"}}
	}
}

func (st *state) decodePrimitive(n *ast.Primitive, path string, v any) (any, Issues) {
	mismatch := func() (any, Issues) {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected "+n.Prim.String(), map[string]any{"expected": n.Prim.String()})}
	}
	switch n.Prim {
	case ast.PrimString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return mismatch()
	case ast.PrimNumber:
		if f, ok := asFloat(v); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return mismatch()
			}
			return v, nil
		}
		return mismatch()
	case ast.PrimInt:
		if i, ok := asInt(v); ok {
			return i, nil
		}
		return mismatch()
	case ast.PrimBigInt:
		if b, ok := asBigInt(v); ok {
			return b, nil
		}
		return mismatch()
	case ast.PrimBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return mismatch()
	case ast.PrimNull, ast.PrimUndefined:
		if v == nil {
			return nil, nil
		}
		return mismatch()
	case ast.PrimUnknown:
		return v, nil
	case ast.PrimNever:
		return mismatch()
	case ast.PrimObject:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
		return mismatch()
	default:
		return mismatch()
	}
}

func literalEqual(want, got any) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	switch w := want.(type) {
	case string:
		g, ok := got.(string)
		return ok && g == w
	case bool:
		g, ok := got.(bool)
		return ok && g == w
	case *big.Int:
		g, ok := asBigInt(got)
		return ok && w.Cmp(g) == 0
	default:
		wf, wok := asFloat(want)
		gf, gok := asFloat(got)
		return wok && gok && wf == gf
	}
}

func (st *state) decodeLiteral(n *ast.Literal, path string, v any) (any, Issues) {
	for _, want := range n.Values {
		if literalEqual(want, v) {
			return want, nil
		}
	}
	code := CodeInvalidType
	if len(n.Values) > 1 {
		code = CodeInvalidEnum
	}
	return nil, Issues{issueFor(n, path, code, v, "", map[string]any{"expected": n.Values})}
}

func (st *state) decodeStruct(ctx context.Context, n *ast.Struct, path string, v any) (any, Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected object", nil)}
	}
	out := make(map[string]any, len(src))
	var iss Issues
	consumed := make(map[string]struct{}, len(n.Fields))
	for _, f := range n.Fields {
		key := f.Key()
		fp := childPath(path, key)
		val, exists := src[key]
		if exists {
			consumed[key] = struct{}{}
			i2 := st.decodePresentField(ctx, f, fp, val, out)
			if len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
				if st.failFast() {
					return nil, iss
				}
			}
			continue
		}
		i2 := st.decodeMissingField(ctx, f, fp, out)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
		}
	}
	i2 := st.collectExcess(n, path, src, consumed, out)
	if len(i2) > 0 {
		iss = AppendIssues(iss, i2...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) decodePresentField(ctx context.Context, f ast.Field, fp string, val any, out map[string]any) Issues {
	st.meta.mark(fp, PresenceSeen)
	if val == nil {
		st.meta.mark(fp, PresenceWasNull)
	}
	if st.mode == modeValidate {
		return st.validateFieldValue(ctx, f, fp, val, out)
	}
	switch f.Mode {
	case ast.Optional:
		if val == nil {
			return nil // explicit null treated as absent
		}
	case ast.OptionalExact:
		if val == nil {
			return Issues{issueFor(f.Node, fp, CodeInvalidType, nil, "explicit null not allowed", nil)}
		}
	case ast.OptionalNull:
		if val == nil {
			out[f.Name] = None()
			return nil
		}
	}
	dv, i2 := st.decodeNode(ctx, f.Node, fp, val)
	if len(i2) > 0 {
		return i2
	}
	switch f.Mode {
	case ast.OptionalNull, ast.OptionalContainer:
		out[f.Name] = Some(dv)
	default:
		out[f.Name] = dv
	}
	return nil
}

func (st *state) decodeMissingField(ctx context.Context, f ast.Field, fp string, out map[string]any) Issues {
	if st.mode == modeValidate {
		// On the type side, default-applied fields materialize as required.
		if f.Mode == ast.Required || f.Mode == ast.OptionalDefault {
			return Issues{issueFor(f.Node, fp, CodeRequired, nil, "required property missing", nil)}
		}
		return nil
	}
	switch f.Mode {
	case ast.Required:
		return Issues{issueFor(f.Node, fp, CodeRequired, nil, "required property missing", nil)}
	case ast.OptionalDefault:
		// The decode-time default is applied without further validation.
		out[f.Name] = f.DecodeDefault()
		st.meta.mark(fp, PresenceDefaultApplied)
	case ast.OptionalNull, ast.OptionalContainer:
		out[f.Name] = None()
	}
	return nil
}

// validateFieldValue checks a present type-side value against the field,
// unwrapping Option containers and never applying decode-time policies.
func (st *state) validateFieldValue(ctx context.Context, f ast.Field, fp string, val any, out map[string]any) Issues {
	switch f.Mode {
	case ast.OptionalNull, ast.OptionalContainer:
		o, ok := val.(Option)
		if !ok {
			return Issues{issueFor(f.Node, fp, CodeInvalidType, val, "expected option container", nil)}
		}
		if o.IsNone() {
			out[f.Name] = o
			return nil
		}
		inner, _ := o.Value()
		dv, i2 := st.decodeNode(ctx, f.Node, fp, inner)
		if len(i2) > 0 {
			return i2
		}
		out[f.Name] = Some(dv)
		return nil
	case ast.Optional:
		if val == nil {
			return nil
		}
	}
	dv, i2 := st.decodeNode(ctx, f.Node, fp, val)
	if len(i2) > 0 {
		return i2
	}
	out[f.Name] = dv
	return nil
}

func (st *state) collectExcess(n *ast.Struct, path string, src map[string]any, consumed map[string]struct{}, out map[string]any) Issues {
	var extra []string
	for k := range src {
		if _, ok := consumed[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sortStrings(extra)
	var iss Issues
	for _, k := range extra {
		switch st.opt.OnExcessProperty {
		case ExcessError:
			iss = AppendIssues(iss, issueFor(n, childPath(path, k), CodeUnknownKey, src[k], "", nil))
			if st.failFast() {
				return iss
			}
		case ExcessPreserve:
			out[k] = src[k]
		case ExcessIgnore:
			// drop
		}
	}
	return iss
}

func (st *state) decodeArray(ctx context.Context, n *ast.Array, path string, v any) (any, Issues) {
	src, ok := v.([]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected array", nil)}
	}
	out := make([]any, 0, len(src))
	var iss Issues
	for i, el := range src {
		dv, i2 := st.decodeNode(ctx, n.Elem, indexPath(path, i), el)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out = append(out, dv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) decodeTuple(ctx context.Context, n *ast.Tuple, path string, v any) (any, Issues) {
	src, ok := v.([]any)
	if !ok {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected tuple", nil)}
	}
	// Arity mismatch is a single issue at the tuple itself, not per element.
	if n.Rest == nil && len(src) != len(n.Head) {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "wrong tuple length", map[string]any{"expected": len(n.Head), "got": len(src)})}
	}
	if len(src) < len(n.Head) {
		return nil, Issues{issueFor(n, path, CodeInvalidType, v, "tuple too short", map[string]any{"expected": len(n.Head), "got": len(src)})}
	}
	out := make([]any, 0, len(src))
	var iss Issues
	for i, h := range n.Head {
		dv, i2 := st.decodeNode(ctx, h, indexPath(path, i), src[i])
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out = append(out, dv)
	}
	for i := len(n.Head); i < len(src); i++ {
		dv, i2 := st.decodeNode(ctx, n.Rest, indexPath(path, i), src[i])
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out = append(out, dv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (st *state) decodeRecord(ctx context.Context, n *ast.Record, path string, v any) (any, Issues) {
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
		if _, i2 := st.decodeNode(ctx, n.Key, kp, k); len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		dv, i2 := st.decodeNode(ctx, n.Value, kp, src[k])
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if st.failFast() {
				return nil, iss
			}
			continue
		}
		out[k] = dv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func lookupTag(byTag map[any]int, tag any) (int, bool) {
	switch tag.(type) {
	case string, bool, int, int64, float64, json.Number, nil:
	default:
		// Composite discriminants can arrive from wire input; they can
		// never match a registered tag and must not reach the map index.
		return 0, false
	}
	if i, ok := byTag[tag]; ok {
		return i, true
	}
	if i64, ok := asInt(tag); ok {
		if i, ok := byTag[i64]; ok {
			return i, true
		}
		if i, ok := byTag[int(i64)]; ok {
			return i, true
		}
	}
	if f, ok := asFloat(tag); ok {
		if i, ok := byTag[f]; ok {
			return i, true
		}
	}
	return 0, false
}

func memberLabel(n ast.Node, i int) string {
	if id, ok := ast.Identifier(n); ok {
		return id
	}
	return "member " + strconv.Itoa(i)
}

func (st *state) decodeUnion(ctx context.Context, n *ast.Union, path string, v any) (any, Issues) {
	if n.Discriminator != "" {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, Issues{issueFor(n, path, CodeInvalidType, v, "expected object", nil)}
		}
		tag, present := m[n.Discriminator]
		if present {
			if idx, ok := lookupTag(n.ByTag, tag); ok {
				// Matched member failures are reported directly, not wrapped.
				return st.decodeNode(ctx, n.Members[idx], path, v)
			}
			return nil, Issues{issueFor(n, childPath(path, n.Discriminator), CodeDiscriminatorUnknown, tag, "unknown variant", map[string]any{"discriminator": n.Discriminator})}
		}
		// Discriminant absent: fall through to ordered trial so the error
		// report keeps declaration order.
	}
	children := make(Issues, 0, len(n.Members))
	for i, m := range n.Members {
		dv, iss := st.decodeNode(ctx, m, path, v)
		if len(iss) == 0 {
			return dv, nil
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

func (st *state) decodeRefine(ctx context.Context, n *ast.Refine, path string, v any) (any, Issues) {
	dv, iss := st.decodeNode(ctx, n.Inner, path, v)
	if len(iss) > 0 {
		return nil, iss
	}
	if n.Pred == nil {
		return dv, nil
	}
	if n.Effectful {
		// Cooperative cancellation point: an in-flight decode stops before
		// invoking an outstanding effectful predicate.
		if err := ctx.Err(); err != nil {
			return nil, Issues{{Path: path, Code: CodeCancelled, Message: "decode cancelled", Cause: err}}
		}
	}
	if err := n.Pred(ctx, dv); err != nil {
		if i2, ok := AsIssues(err); ok {
			return nil, rebaseIssues(path, i2)
		}
		msg := n.Message
		if f, ok := ast.Message(n); ok && f != nil {
			if s := f(CodeForbidden, dv); s != "" {
				msg = s
			}
		}
		if msg == "" {
			msg = err.Error()
		}
		return nil, Issues{{Path: path, Code: CodeForbidden, Message: msg, Cause: err, Actual: dv, Params: map[string]any{"refinement": n.Name}}}
	}
	return dv, nil
}

func (st *state) decodeTransform(ctx context.Context, n *ast.Transform, path string, v any) (any, Issues) {
	if st.mode == modeValidate {
		// The validator sees only the type side and never runs transform
		// functions.
		return st.decodeNode(ctx, n.To, path, v)
	}
	fv, iss := st.decodeNode(ctx, n.From, path, v)
	if len(iss) > 0 {
		return nil, iss
	}
	if n.DecodeFn == nil {
		return fv, nil
	}
	tv, err := n.DecodeFn(ctx, fv)
	if err != nil {
		if i2, ok := AsIssues(err); ok {
			return nil, rebaseIssues(path, i2)
		}
		return nil, Issues{{Path: path, Code: CodeTransform, Message: err.Error(), Cause: err, Actual: fv}}
	}
	return tv, nil
}

// sortStrings is a tiny insertion sort; excess/record key sets are small and
// this keeps the hot path free of the sort package's interface boxing.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
