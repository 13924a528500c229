// Package engine holds the wire-level token model shared by the input
// sources. It builds the any-value the schema engines consume, enforcing
// duplicate-key policy, nesting depth, and byte budgets while streaming.
package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// numberValue keeps numbers textual so schema nodes decide precision.
func numberValue(s string) any { return json.Number(s) }

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface a wire format implements.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DupMode selects duplicate-key handling while building.
type DupMode int

const (
	DupIgnore DupMode = iota // last write wins, silently
	DupWarn                  // record a finding, keep going
	DupError                 // fail at the first duplicate
)

// Options controls enforcement during Build.
type Options struct {
	OnDuplicate     DupMode
	MaxDepth        int   // 0 disables
	MaxBytes        int64 // 0 disables; checked against TokenSource.Location
	CaptureKeyOrder bool
}

// Finding is a wire-level problem detected while building.
type Finding struct {
	Code    string
	Path    string
	Message string
}

// Result carries the built value plus everything observed along the way.
type Result struct {
	Value    any
	KeyOrder map[string][]string // object path -> keys in input order
	Findings []Finding
}

type builder struct {
	src   TokenSource
	opt   Options
	depth int
	res   *Result
}

// Build consumes the full token stream into an any value. Objects become
// map[string]any, arrays []any, numbers stay textual as json.Number-style
// strings converted by the caller's source.
func Build(src TokenSource, opt Options) (*Result, error) {
	b := &builder{src: src, opt: opt, res: &Result{}}
	if opt.CaptureKeyOrder {
		b.res.KeyOrder = map[string][]string{}
	}
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	v, err := b.value(tok, "/")
	if err != nil {
		return nil, err
	}
	b.res.Value = v
	return b.res, nil
}

func (b *builder) value(tok Token, path string) (any, error) {
	if err := b.checkBytes(path); err != nil {
		return nil, err
	}
	switch tok.Kind {
	case KindBeginObject:
		return b.object(path)
	case KindBeginArray:
		return b.array(path)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return numberValue(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (b *builder) object(path string) (any, error) {
	if err := b.push(path); err != nil {
		return nil, err
	}
	defer b.pop()
	m := make(map[string]any)
	seen := make(map[string]struct{})
	for {
		tok, err := b.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		key := tok.String
		kp := joinPath(path, key)
		if _, dup := seen[key]; dup {
			switch b.opt.OnDuplicate {
			case DupWarn:
				b.res.Findings = append(b.res.Findings, Finding{Code: "duplicate_key", Path: kp, Message: "duplicate key " + strconv.Quote(key)})
			case DupError:
				return nil, FindingError{Finding{Code: "duplicate_key", Path: kp, Message: "duplicate key " + strconv.Quote(key)}}
			}
		} else {
			seen[key] = struct{}{}
			if b.res.KeyOrder != nil {
				b.res.KeyOrder[path] = append(b.res.KeyOrder[path], key)
			}
		}
		vt, err := b.src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := b.value(vt, kp)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func (b *builder) array(path string) (any, error) {
	if err := b.push(path); err != nil {
		return nil, err
	}
	defer b.pop()
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := b.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := b.value(tok, joinPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (b *builder) push(path string) error {
	b.depth++
	if b.opt.MaxDepth > 0 && b.depth > b.opt.MaxDepth {
		return FindingError{Finding{Code: "parse_error", Path: path, Message: fmt.Sprintf("max depth %d exceeded", b.opt.MaxDepth)}}
	}
	return nil
}

func (b *builder) pop() { b.depth-- }

func (b *builder) checkBytes(path string) error {
	if b.opt.MaxBytes > 0 {
		if loc := b.src.Location(); loc > b.opt.MaxBytes {
			return FindingError{Finding{Code: "truncated", Path: path, Message: "max bytes exceeded"}}
		}
	}
	return nil
}

// FindingError is a wire-level failure carrying its Finding.
type FindingError struct{ Finding }

func (e FindingError) Error() string { return e.Message }

func joinPath(base, key string) string {
	if base == "" || base == "/" {
		return "/" + key
	}
	return base + "/" + key
}
