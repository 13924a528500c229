// Package codec provides stock transform nodes for common wire conversions.
// Each constructor returns a Transform whose from side validates the encoded
// representation and whose to side validates the in-memory one, so the
// validator and the encoders see the right shape on each side.
package codec

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/reoring/goshape/ast"
	"github.com/reoring/goshape/dsl"
)

// Identity returns a transform that performs no conversion in either
// direction. Useful as a neutral wrapper in tests and compositions.
func Identity(n ast.Node) ast.Node {
	return dsl.Transform(n, n, nil, nil)
}

// opaque builds a type-side node that accepts exactly one dynamic Go type.
func opaque(name string, check func(v any) bool) ast.Node {
	return dsl.Refine(dsl.Unknown(), name, check, "expected "+name)
}

// TimeRFC3339 converts between RFC3339 strings and time.Time. Decoding
// accepts RFC3339Nano input; encoding emits the canonical UTC RFC3339Nano
// form.
func TimeRFC3339() ast.Node {
	to := opaque("time.Time", func(v any) bool {
		_, ok := v.(time.Time)
		return ok
	})
	dec := func(_ context.Context, v any) (any, error) {
		s := v.(string)
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid RFC3339 time: %w", err)
		}
		return t, nil
	}
	enc := func(_ context.Context, v any) (any, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected time.Time, got %T", v)
		}
		return t.UTC().Format(time.RFC3339Nano), nil
	}
	return dsl.Transform(dsl.String(), to, dec, enc)
}

// NumberFromString converts numeric strings to float64 and back.
func NumberFromString() ast.Node {
	dec := func(_ context.Context, v any) (any, error) {
		f, err := strconv.ParseFloat(v.(string), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal: %w", err)
		}
		return f, nil
	}
	enc := func(_ context.Context, v any) (any, error) {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected float64, got %T", v)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return dsl.Transform(dsl.String(), dsl.Number(), dec, enc)
}

// Base64Bytes converts between standard-encoding base64 strings and []byte.
func Base64Bytes() ast.Node {
	to := opaque("bytes", func(v any) bool {
		_, ok := v.([]byte)
		return ok
	})
	dec := func(_ context.Context, v any) (any, error) {
		b, err := base64.StdEncoding.DecodeString(v.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		return b, nil
	}
	enc := func(_ context.Context, v any) (any, error) {
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("expected []byte, got %T", v)
		}
		return base64.StdEncoding.EncodeToString(b), nil
	}
	return dsl.Transform(dsl.String(), to, dec, enc)
}
