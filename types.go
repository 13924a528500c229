package goshape

// ErrorMode controls issue accumulation during decode/encode/validate.
type ErrorMode int

const (
	ErrorsFirst ErrorMode = iota // Stop at the first failing path.
	ErrorsAll                    // Continue past failures and accumulate siblings.
)

// ExcessKeys controls how struct decoding treats input keys that match no
// property signature.
type ExcessKeys int

const (
	ExcessIgnore   ExcessKeys = iota // Drop excess keys from the result.
	ExcessError                      // Reject excess keys with an unknown_key issue.
	ExcessPreserve                   // Retain excess keys in the result unchanged.
)

// Severity expresses the severity level for source-layer findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles the per-call options recognized by Decode, Encode and
// the validators. There is no ambient default; every call passes its own.
type DecodeOpt struct {
	Errors           ErrorMode
	OnExcessProperty ExcessKeys
	// PreserveKeyOrder asks source-backed entry points to record original
	// object key order into the decode Meta. Plain map inputs carry no
	// order, so the flag has no effect there.
	PreserveKeyOrder bool
}

// SourceOpt configures wire-level enforcement applied while a Source builds
// the input value, before the schema engine runs.
type SourceOpt struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON/YAML keys).
	MaxDepth       int      // Maximum container nesting; 0 disables the check.
	MaxBytes       int64    // Maximum consumed input bytes; 0 disables the check.
}

func lastOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}
