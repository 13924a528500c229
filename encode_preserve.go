package goshape

import (
	"context"

	"github.com/reoring/goshape/ast"
)

// EncodePreserving encodes a decoded value while honoring its presence
// metadata: fields that materialized only from decode-time defaults
// (PresenceDefaultApplied set while never seen) are removed again so they
// stay missing on the wire. Fields explicitly present as null keep their
// null.
func EncodePreserving(ctx context.Context, n ast.Node, d Decoded, opts ...DecodeOpt) (any, error) {
	out, err := Encode(ctx, n, d.Value, opts...)
	if err != nil {
		return nil, err
	}
	if d.Meta == nil {
		return out, nil
	}
	return stripDefaultOnly(out, "/", d.Meta), nil
}

func stripDefaultOnly(v any, path string, m *Meta) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			p := childPath(path, k)
			if m.defaultOnly(p) {
				continue
			}
			out[k] = stripDefaultOnly(val, p, m)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = stripDefaultOnly(val, indexPath(path, i), m)
		}
		return out
	default:
		return v
	}
}
