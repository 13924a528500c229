// Package gojson adapts the goccy/go-json streaming decoder to the engine
// token model used by goshape input sources.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/goshape/internal/engine"
)

type frameKind int

const (
	inObject frameKind = iota
	inArray
)

type frame struct {
	kind      frameKind
	expectKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into a token source for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into a token source for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) Location() int64 { return s.dec.InputOffset() }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.push(frame{kind: inObject, expectKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
		case '}':
			s.pop()
			s.valueDone()
			return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
		case '[':
			s.push(frame{kind: inArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
		default: // ']'
			s.pop()
			s.valueDone()
			return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
		}
	case string:
		if top := s.top(); top != nil && top.kind == inObject && top.expectKey {
			top.expectKey = false
			return eng.Token{Kind: eng.KindKey, String: v, Offset: off}, nil
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: off}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: off}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: off}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}, nil
	case nil:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	default:
		return eng.Token{}, io.ErrUnexpectedEOF
	}
}

func (s *source) push(f frame) { s.stack = append(s.stack, f) }

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *source) top() *frame {
	if n := len(s.stack); n > 0 {
		return &s.stack[n-1]
	}
	return nil
}

// valueDone flips the enclosing object frame back to expecting a key once a
// value token completes.
func (s *source) valueDone() {
	if top := s.top(); top != nil && top.kind == inObject && !top.expectKey {
		top.expectKey = true
	}
}
