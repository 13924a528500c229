package dsl

import (
	"context"
	"encoding/json"
	"regexp"
	"unicode/utf8"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/ast"
	"github.com/reoring/goshape/i18n"
)

// Refine narrows inner with a pure predicate. A false return yields a
// forbidden issue carrying msg (or the catalog text when msg is empty).
func Refine(inner ast.Node, name string, pred func(v any) bool, msg string) ast.Node {
	return &ast.Refine{
		Inner:   inner,
		Name:    name,
		Message: msg,
		Pred: func(_ context.Context, v any) error {
			if pred(v) {
				return nil
			}
			return goshape.Issues{{Path: "/", Code: goshape.CodeForbidden, Message: refineMsg(msg), Actual: v, Params: map[string]any{"refinement": name}}}
		},
	}
}

// RefineErr narrows inner with a predicate that reports failure as an error.
// Returning an Issues value places issues at sub-paths (build them with
// goshape.At / PathRef); any other error becomes a forbidden issue.
func RefineErr(inner ast.Node, name string, fn func(ctx context.Context, v any) error) ast.Node {
	return &ast.Refine{Inner: inner, Name: name, Pred: ast.Predicate(fn)}
}

// RefineEffect marks the predicate as effectful: it may block on external
// work, and the engines check for cancellation before invoking it.
func RefineEffect(inner ast.Node, name string, fn func(ctx context.Context, v any) error) ast.Node {
	return &ast.Refine{Inner: inner, Name: name, Pred: ast.Predicate(fn), Effectful: true}
}

func refineMsg(msg string) string {
	if msg != "" {
		return msg
	}
	return i18n.T(goshape.CodeForbidden, nil)
}

// ---- stock rules ----

func ruleIssue(code string, actual any, params map[string]any) error {
	return goshape.Issues{{Path: "/", Code: code, Message: i18n.T(code, nil), Actual: actual, Params: params}}
}

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case []any:
		return len(t), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
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

// MinLen fails when the string or array length is strictly below min.
func MinLen(inner ast.Node, min int) ast.Node {
	return &ast.Refine{Inner: inner, Name: "minLength", Params: map[string]any{"min": min}, Pred: func(_ context.Context, v any) error {
		if l, ok := lengthOf(v); ok && l < min {
			return ruleIssue(goshape.CodeTooShort, v, map[string]any{"min": min, "got": l})
		}
		return nil
	}}
}

// MaxLen fails when the string or array length exceeds max.
func MaxLen(inner ast.Node, max int) ast.Node {
	return &ast.Refine{Inner: inner, Name: "maxLength", Params: map[string]any{"max": max}, Pred: func(_ context.Context, v any) error {
		if l, ok := lengthOf(v); ok && l > max {
			return ruleIssue(goshape.CodeTooLong, v, map[string]any{"max": max, "got": l})
		}
		return nil
	}}
}

// Pattern fails when a string does not match the compiled expression.
func Pattern(inner ast.Node, re *regexp.Regexp) ast.Node {
	return &ast.Refine{Inner: inner, Name: "pattern", Params: map[string]any{"pattern": re.String()}, Pred: func(_ context.Context, v any) error {
		if s, ok := v.(string); ok && !re.MatchString(s) {
			return ruleIssue(goshape.CodePattern, v, map[string]any{"pattern": re.String()})
		}
		return nil
	}}
}

// Min fails when a numeric value is strictly below min (inclusive bound).
func Min(inner ast.Node, min float64) ast.Node {
	return &ast.Refine{Inner: inner, Name: "min", Params: map[string]any{"min": min}, Pred: func(_ context.Context, v any) error {
		if f, ok := toFloat(v); ok && f < min {
			return ruleIssue(goshape.CodeTooSmall, v, map[string]any{"min": min})
		}
		return nil
	}}
}

// Max fails when a numeric value exceeds max (inclusive bound).
func Max(inner ast.Node, max float64) ast.Node {
	return &ast.Refine{Inner: inner, Name: "max", Params: map[string]any{"max": max}, Pred: func(_ context.Context, v any) error {
		if f, ok := toFloat(v); ok && f > max {
			return ruleIssue(goshape.CodeTooBig, v, map[string]any{"max": max})
		}
		return nil
	}}
}

// IntRange bounds an integer inclusively on both ends.
func IntRange(inner ast.Node, lo, hi int64) ast.Node {
	return &ast.Refine{Inner: inner, Name: "intRange", Params: map[string]any{"min": lo, "max": hi}, Pred: func(_ context.Context, v any) error {
		i, ok := v.(int64)
		if !ok {
			return nil
		}
		if i < lo {
			return ruleIssue(goshape.CodeTooSmall, v, map[string]any{"min": lo})
		}
		if i > hi {
			return ruleIssue(goshape.CodeTooBig, v, map[string]any{"max": hi})
		}
		return nil
	}}
}
