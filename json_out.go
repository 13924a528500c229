package goshape

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"

	"github.com/reoring/goshape/ast"
)

// EncodeJSON encodes the type-side value and marshals the result as
// canonical JSON (object keys sorted).
func EncodeJSON(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) ([]byte, error) {
	out, err := Encode(ctx, n, v, opts...)
	if err != nil {
		return nil, err
	}
	data, merr := j.Marshal(out)
	if merr != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: merr.Error(), Cause: merr}}
	}
	return data, nil
}

// EncodeJSONPreserving encodes a decoded value honoring its metadata: fields
// materialized only by defaults stay missing, and objects are written in the
// original input key order recorded under PreserveKeyOrder.
func EncodeJSONPreserving(ctx context.Context, n ast.Node, d Decoded, opts ...DecodeOpt) ([]byte, error) {
	out, err := EncodePreserving(ctx, n, d, opts...)
	if err != nil {
		return nil, err
	}
	var meta *Meta
	if d.Meta != nil && d.Meta.KeyOrder != nil {
		meta = d.Meta
	}
	buf := &bytes.Buffer{}
	if werr := writeOrdered(buf, out, "/", meta); werr != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: werr.Error(), Cause: werr}}
	}
	return buf.Bytes(), nil
}

func writeOrdered(buf *bytes.Buffer, v any, path string, meta *Meta) error {
	switch t := v.(type) {
	case map[string]any:
		keys := orderedKeys(t, path, meta)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := j.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeOrdered(buf, t[k], childPath(path, k), meta); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeOrdered(buf, el, indexPath(path, i), meta); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := j.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}

// orderedKeys yields the recorded input order first, then any remaining keys
// sorted, so preserved output stays deterministic even for keys the source
// never observed.
func orderedKeys(m map[string]any, path string, meta *Meta) []string {
	out := make([]string, 0, len(m))
	taken := make(map[string]struct{}, len(m))
	if meta != nil {
		for _, k := range meta.KeyOrder[path] {
			if _, ok := m[k]; ok {
				out = append(out, k)
				taken[k] = struct{}{}
			}
		}
	}
	var rest []string
	for k := range m {
		if _, ok := taken[k]; !ok {
			rest = append(rest, k)
		}
	}
	sortStrings(rest)
	return append(out, rest...)
}
