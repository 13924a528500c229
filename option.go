package goshape

// Option is the container state produced by the OptionalNull and
// OptionalContainer field policies: a decoded null or missing key becomes
// the empty state, a present value the full state.
type Option struct {
	value   any
	present bool
}

// Some wraps a present value.
func Some(v any) Option { return Option{value: v, present: true} }

// None is the absent state.
func None() Option { return Option{} }

// IsSome reports whether the container holds a value.
func (o Option) IsSome() bool { return o.present }

// IsNone reports whether the container is empty.
func (o Option) IsNone() bool { return !o.present }

// Value returns the contained value and whether it is present.
func (o Option) Value() (any, bool) { return o.value, o.present }

// OrElse returns the contained value, or def when empty.
func (o Option) OrElse(def any) any {
	if o.present {
		return o.value
	}
	return def
}
