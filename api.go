package goshape

import (
	"context"

	"github.com/reoring/goshape/ast"
)

// Decode interprets the schema node against untrusted input, producing the
// type-side value or Issues. It never panics; the error, when non-nil, is
// always an Issues value.
func Decode(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) (any, error) {
	st := &state{opt: lastOpt(opts), mode: modeDecode}
	return run(ctx, st, n, v)
}

// DecodeWithMeta decodes and additionally collects presence metadata per
// field path. Source-backed entry points merge observed key order into the
// returned Meta when PreserveKeyOrder is set.
func DecodeWithMeta(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) (Decoded, error) {
	st := &state{opt: lastOpt(opts), mode: modeDecode, meta: newMeta()}
	st.meta.mark("/", PresenceSeen)
	out, err := run(ctx, st, n, v)
	return Decoded{Value: out, Meta: st.meta}, err
}

// Encode interprets the schema node against a type-side value, producing the
// encoded value or Issues.
func Encode(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) (any, error) {
	if n == nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, Issues{{Path: "/", Code: CodeCancelled, Message: "encode cancelled", Cause: err}}
	}
	st := &state{opt: lastOpt(opts), mode: modeDecode}
	out, iss := st.encodeNode(ctx, n, "/", v)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Validate checks that a value already conforms to the type-side shape. No
// transform function runs; a nil return means the value is valid under the
// given options.
func Validate(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) error {
	st := &state{opt: lastOpt(opts), mode: modeValidate}
	_, err := run(ctx, st, n, v)
	return err
}

// Is reports whether v conforms to the type-side shape of n.
func Is(ctx context.Context, n ast.Node, v any) bool {
	return Validate(ctx, n, v) == nil
}

// MustDecode is the -or-raise variant of Decode. It panics with the Issues
// error on failure; the engine itself never raises.
func MustDecode(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) any {
	out, err := Decode(ctx, n, v, opts...)
	if err != nil {
		panic(err)
	}
	return out
}

// MustEncode is the -or-raise variant of Encode.
func MustEncode(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) any {
	out, err := Encode(ctx, n, v, opts...)
	if err != nil {
		panic(err)
	}
	return out
}

// MustValidate panics with the Issues error when v does not conform.
func MustValidate(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) {
	if err := Validate(ctx, n, v, opts...); err != nil {
		panic(err)
	}
}

// DecodeAs decodes and type-asserts the result to T.
func DecodeAs[T any](ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) (T, error) {
	var zero T
	out, err := Decode(ctx, n, v, opts...)
	if err != nil {
		return zero, err
	}
	tv, ok := out.(T)
	if !ok {
		return zero, Issues{{Path: "/", Code: CodeInvalidType, Message: "decoded value has unexpected dynamic type", Actual: out}}
	}
	return tv, nil
}

// AsyncResult is delivered by DecodeAsync when the decode settles.
type AsyncResult struct {
	Value any
	Err   error
}

// DecodeAsync runs the synchronous decode and delivers the result on the
// returned channel. The core algorithm never suspends on its own; the only
// cooperative points are effectful refinement predicates, which observe ctx
// cancellation.
func DecodeAsync(ctx context.Context, n ast.Node, v any, opts ...DecodeOpt) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)
	go func() {
		out, err := Decode(ctx, n, v, opts...)
		ch <- AsyncResult{Value: out, Err: err}
		close(ch)
	}()
	return ch
}

func run(ctx context.Context, st *state, n ast.Node, v any) (any, error) {
	if n == nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, Issues{{Path: "/", Code: CodeCancelled, Message: "decode cancelled", Cause: err}}
	}
	out, iss := st.decodeNode(ctx, n, "/", v)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
