package goshape

import (
	"fmt"
	"strings"
)

// FlatIssue is the form-style projection of one issue.
type FlatIssue struct {
	Path    string
	Message string
}

// Flatten walks the issue tree depth-first, pre-order, and returns one
// {path, message} pair per issue. It performs no recomputation.
func Flatten(iss Issues) []FlatIssue {
	out := make([]FlatIssue, 0, len(iss))
	var walk func(Issues)
	walk = func(list Issues) {
		for _, it := range list {
			out = append(out, FlatIssue{Path: it.Path, Message: it.Message})
			walk(it.Children)
		}
	}
	walk(iss)
	return out
}

// FormatTree renders the issue tree as an indented listing for log-style
// consumption.
func FormatTree(iss Issues) string {
	b := &strings.Builder{}
	var walk func(Issues, int)
	walk = func(list Issues, depth int) {
		for _, it := range list {
			b.WriteString(strings.Repeat("  ", depth))
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
			if it.Message != "" {
				fmt.Fprintf(b, ": %s", it.Message)
			}
			b.WriteByte('\n')
			walk(it.Children, depth+1)
		}
	}
	walk(iss, 0)
	return b.String()
}
