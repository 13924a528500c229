package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeInvalidEnum          = "invalid_enum"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeForbidden            = "forbidden"
	CodeTransform            = "transform"
	CodeComposite            = "composite"
	CodeUnionExhausted       = "union_exhausted"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeDuplicateKey         = "duplicate_key"
	CodeParseError           = "parse_error"
	CodeTruncated            = "truncated"
	CodeCancelled            = "cancelled"
	// Stock refinement rules
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
)

// Issue represents a single validation entry. A union-exhausted issue carries
// the per-member breakdown in Children, forming a tree.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Actual is the offending input value, when cheap to retain.
	Actual any
	// Params carries structured parameters (e.g., {"min":1, "got":42})
	// for i18n and observability.
	Params map[string]any
	// Children holds nested issues, one per attempted union member or per
	// failing element of a compound check.
	Children Issues
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with
// CodeParseError at the given path.
func issuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if i2, ok := AsIssues(err); ok {
		return i2
	}
	return Issues{{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err}}
}
