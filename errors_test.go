package goshape_test

import (
	"fmt"
	"strings"
	"testing"

	goshape "github.com/reoring/goshape"
)

func TestIssues_ErrorSummaryCapsAtThree(t *testing.T) {
	iss := goshape.Issues{
		{Path: "/a", Code: goshape.CodeInvalidType},
		{Path: "/b", Code: goshape.CodeUnknownKey},
		{Path: "/c", Code: goshape.CodeTooShort},
		{Path: "/d", Code: goshape.CodeTooLong},
	}
	s := iss.Error()
	if !strings.Contains(s, "invalid_type at /a") {
		t.Fatalf("summary missing first issue: %q", s)
	}
	if strings.Contains(s, "/d") {
		t.Fatalf("summary should elide beyond three: %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("summary missing total: %q", s)
	}
}

func TestAsIssues_WrappedError(t *testing.T) {
	inner := goshape.Issues{{Path: "/", Code: goshape.CodeRequired}}
	wrapped := fmt.Errorf("while loading config: %w", inner)
	iss, ok := goshape.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Code != goshape.CodeRequired {
		t.Fatalf("AsIssues = %v %v", iss, ok)
	}
	if _, ok := goshape.AsIssues(nil); ok {
		t.Fatalf("AsIssues(nil) should be false")
	}
}

func TestFlatten_DepthFirstWithChildren(t *testing.T) {
	iss := goshape.Issues{
		{Path: "/", Code: goshape.CodeUnionExhausted, Message: "no member matched", Children: goshape.Issues{
			{Path: "/", Code: goshape.CodeInvalidType, Message: "expected int"},
			{Path: "/", Code: goshape.CodeInvalidType, Message: "expected bool"},
		}},
	}
	flat := goshape.Flatten(iss)
	if len(flat) != 3 {
		t.Fatalf("flat = %v", flat)
	}
	if flat[0].Message != "no member matched" || flat[2].Message != "expected bool" {
		t.Fatalf("flat = %v", flat)
	}
}

func TestFormatTree_IndentsChildren(t *testing.T) {
	iss := goshape.Issues{
		{Path: "/v", Code: goshape.CodeUnionExhausted, Message: "no member matched", Children: goshape.Issues{
			{Path: "/v", Code: goshape.CodeInvalidType, Message: "expected int"},
		}},
	}
	out := goshape.FormatTree(iss)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("out = %q", out)
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Fatalf("child not indented: %q", out)
	}
}

func TestPathRef_BuildsPointers(t *testing.T) {
	p := goshape.Root().Field("items").Index(2).Field("a/b")
	if got := p.Pointer(); got != "/items/2/a~1b" {
		t.Fatalf("pointer = %q", got)
	}
	is := goshape.At("/meta").Field("tag").Issue(goshape.CodeForbidden, "bad tag")
	if is.Path != "/meta/tag" || is.Code != goshape.CodeForbidden {
		t.Fatalf("issue = %+v", is)
	}
}
