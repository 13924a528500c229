package goshape

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Key appeared in the input.
	PresenceWasNull                             // Key value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// Meta carries decode-time metadata keyed by JSON Pointer.
type Meta struct {
	// Presence records how each struct field materialized.
	Presence map[string]Presence
	// KeyOrder records the original object key order per object path when
	// the input Source can observe it and PreserveKeyOrder is set.
	KeyOrder map[string][]string
	// Warnings holds non-fatal wire-level findings (for example duplicate
	// keys under Warn severity).
	Warnings Issues
}

// Decoded carries the decoded value along with its metadata.
type Decoded struct {
	Value any
	Meta  *Meta
}

func newMeta() *Meta {
	return &Meta{Presence: map[string]Presence{}}
}

func (m *Meta) mark(path string, p Presence) {
	if m == nil {
		return
	}
	m.Presence[path] |= p
}

// MergeKeyOrder overlays source-observed key order onto the meta.
func (m *Meta) MergeKeyOrder(order map[string][]string) {
	if m == nil || len(order) == 0 {
		return
	}
	if m.KeyOrder == nil {
		m.KeyOrder = make(map[string][]string, len(order))
	}
	for k, v := range order {
		m.KeyOrder[k] = v
	}
}

// defaultOnly reports whether the field at path materialized purely from its
// default thunk.
func (m *Meta) defaultOnly(path string) bool {
	if m == nil {
		return false
	}
	p := m.Presence[path]
	return p&PresenceDefaultApplied != 0 && p&PresenceSeen == 0 && p&PresenceWasNull == 0
}
