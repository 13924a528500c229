package engine

import (
	"encoding/json"
	"io"
	"reflect"
	"testing"
)

// sliceSource replays a fixed token list, advancing a fake offset per token.
type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func objTokens(pairs ...Token) []Token {
	out := []Token{{Kind: KindBeginObject}}
	out = append(out, pairs...)
	return append(out, Token{Kind: KindEndObject})
}

func TestBuild_Object(t *testing.T) {
	src := &sliceSource{toks: objTokens(
		Token{Kind: KindKey, String: "a"},
		Token{Kind: KindNumber, Number: "1"},
		Token{Kind: KindKey, String: "b"},
		Token{Kind: KindString, String: "x"},
	)}
	res, err := Build(src, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := map[string]any{"a": json.Number("1"), "b": "x"}
	if !reflect.DeepEqual(res.Value, want) {
		t.Fatalf("got %#v, want %#v", res.Value, want)
	}
}

func TestBuild_DuplicateKeyModes(t *testing.T) {
	dup := func() *sliceSource {
		return &sliceSource{toks: objTokens(
			Token{Kind: KindKey, String: "a"},
			Token{Kind: KindNumber, Number: "1"},
			Token{Kind: KindKey, String: "a"},
			Token{Kind: KindNumber, Number: "2"},
		)}
	}

	res, err := Build(dup(), Options{OnDuplicate: DupIgnore})
	if err != nil {
		t.Fatalf("ignore: %v", err)
	}
	if res.Value.(map[string]any)["a"] != json.Number("2") {
		t.Fatalf("last write should win: %#v", res.Value)
	}

	res, err = Build(dup(), Options{OnDuplicate: DupWarn})
	if err != nil {
		t.Fatalf("warn: %v", err)
	}
	if len(res.Findings) != 1 || res.Findings[0].Code != "duplicate_key" || res.Findings[0].Path != "/a" {
		t.Fatalf("findings = %v", res.Findings)
	}

	_, err = Build(dup(), Options{OnDuplicate: DupError})
	fe, ok := err.(FindingError)
	if !ok || fe.Code != "duplicate_key" {
		t.Fatalf("err = %v", err)
	}
}

func TestBuild_MaxDepth(t *testing.T) {
	src := &sliceSource{toks: []Token{
		{Kind: KindBeginArray},
		{Kind: KindBeginArray},
		{Kind: KindBeginArray},
		{Kind: KindEndArray},
		{Kind: KindEndArray},
		{Kind: KindEndArray},
	}}
	_, err := Build(src, Options{MaxDepth: 2})
	fe, ok := err.(FindingError)
	if !ok || fe.Code != "parse_error" {
		t.Fatalf("err = %v", err)
	}
}

func TestBuild_MaxBytes(t *testing.T) {
	src := &sliceSource{toks: []Token{
		{Kind: KindBeginArray},
		{Kind: KindString, String: "a"},
		{Kind: KindString, String: "b"},
		{Kind: KindString, String: "c"},
		{Kind: KindEndArray},
	}}
	_, err := Build(src, Options{MaxBytes: 2})
	fe, ok := err.(FindingError)
	if !ok || fe.Code != "truncated" {
		t.Fatalf("err = %v", err)
	}
}

func TestBuild_KeyOrderCapture(t *testing.T) {
	src := &sliceSource{toks: objTokens(
		Token{Kind: KindKey, String: "z"},
		Token{Kind: KindNumber, Number: "1"},
		Token{Kind: KindKey, String: "a"},
		Token{Kind: KindNumber, Number: "2"},
	)}
	res, err := Build(src, Options{CaptureKeyOrder: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	order := res.KeyOrder["/"]
	if len(order) != 2 || order[0] != "z" || order[1] != "a" {
		t.Fatalf("order = %v", order)
	}
}

func TestBuild_NestedPathsInFindings(t *testing.T) {
	src := &sliceSource{toks: []Token{
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "outer"},
		{Kind: KindBeginObject},
		{Kind: KindKey, String: "k"},
		{Kind: KindNumber, Number: "1"},
		{Kind: KindKey, String: "k"},
		{Kind: KindNumber, Number: "2"},
		{Kind: KindEndObject},
		{Kind: KindEndObject},
	}}
	res, err := Build(src, Options{OnDuplicate: DupWarn})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Findings) != 1 || res.Findings[0].Path != "/outer/k" {
		t.Fatalf("findings = %v", res.Findings)
	}
}
