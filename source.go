package goshape

import (
	"context"
	"io"

	"github.com/reoring/goshape/ast"
	eng "github.com/reoring/goshape/internal/engine"
	"github.com/reoring/goshape/source/gojson"
	"github.com/reoring/goshape/source/yamlsrc"
)

// Source wraps a wire-format token stream. The engine core never performs
// I/O itself; a Source is drained into a plain value before the schema walk
// starts.
type Source struct {
	ts eng.TokenSource
}

// JSONBytes wraps a byte slice as a JSON Source (goccy/go-json backed).
func JSONBytes(b []byte) Source { return Source{ts: gojson.NewBytes(b)} }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return Source{ts: gojson.NewReader(r)} }

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source { return Source{ts: yamlsrc.NewBytes(b)} }

// DecodeFrom drains the source under the wire-level options, then decodes
// the built value against the schema.
func DecodeFrom(ctx context.Context, n ast.Node, src Source, sopt SourceOpt, opts ...DecodeOpt) (any, error) {
	res, err := buildFromSource(src, sopt, lastOpt(opts))
	if err != nil {
		return nil, err
	}
	return Decode(ctx, n, res.Value, opts...)
}

// DecodeFromWithMeta additionally collects presence metadata, wire-level
// warnings, and (when PreserveKeyOrder is set) the original key order.
func DecodeFromWithMeta(ctx context.Context, n ast.Node, src Source, sopt SourceOpt, opts ...DecodeOpt) (Decoded, error) {
	res, err := buildFromSource(src, sopt, lastOpt(opts))
	if err != nil {
		return Decoded{}, err
	}
	d, derr := DecodeWithMeta(ctx, n, res.Value, opts...)
	d.Meta.MergeKeyOrder(res.KeyOrder)
	for _, f := range res.Findings {
		d.Meta.Warnings = AppendIssues(d.Meta.Warnings, Issue{Path: f.Path, Code: f.Code, Message: f.Message})
	}
	return d, derr
}

// DecodeJSON decodes a JSON document against the schema.
func DecodeJSON(ctx context.Context, n ast.Node, data []byte, sopt SourceOpt, opts ...DecodeOpt) (any, error) {
	return DecodeFrom(ctx, n, JSONBytes(data), sopt, opts...)
}

// DecodeYAML decodes a YAML document against the schema.
func DecodeYAML(ctx context.Context, n ast.Node, data []byte, sopt SourceOpt, opts ...DecodeOpt) (any, error) {
	return DecodeFrom(ctx, n, YAMLBytes(data), sopt, opts...)
}

func buildFromSource(src Source, sopt SourceOpt, dopt DecodeOpt) (*eng.Result, error) {
	res, err := eng.Build(src.ts, eng.Options{
		OnDuplicate:     toDupMode(sopt.OnDuplicateKey),
		MaxDepth:        sopt.MaxDepth,
		MaxBytes:        sopt.MaxBytes,
		CaptureKeyOrder: dopt.PreserveKeyOrder,
	})
	if err != nil {
		return nil, sourceIssues(err)
	}
	return res, nil
}

func toDupMode(s Severity) eng.DupMode {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func sourceIssues(err error) Issues {
	if fe, ok := err.(eng.FindingError); ok {
		return Issues{{Path: fe.Path, Code: fe.Code, Message: fe.Message}}
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
