// Package goshape is a bidirectional data-shape engine: one declarative
// schema definition describes the structure of a value, and the same
// definition drives decoding of untrusted input (Encoded -> Type),
// encoding back out (Type -> Encoded), and pure validation.
//
// Schemas are immutable node trees built by the dsl package over the closed
// variant set in the ast package. The engines in this package interpret a
// tree without ever mutating it, so a schema built once may be shared by any
// number of concurrent calls.
//
// Failures are never raised as control flow inside the engines: every entry
// point returns an Issues error value describing each failing path. Only the
// Must* convenience wrappers convert that into a panic.
//
//	node := dsl.MustStruct(
//		dsl.Required("name", dsl.MinLen(dsl.String(), 1)),
//		dsl.Required("age", dsl.IntRange(dsl.Int(), 0, 150)),
//	)
//	v, err := goshape.Decode(ctx, node, input, goshape.DecodeOpt{Errors: goshape.ErrorsAll})
package goshape
