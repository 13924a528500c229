package ast

import "fmt"

// NewStruct builds a Struct node, rejecting duplicate field names and
// duplicate wire keys at construction time.
func NewStruct(fields ...Field) (*Struct, error) {
	names := make(map[string]struct{}, len(fields))
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Node == nil {
			return nil, fmt.Errorf("ast: field %q has nil node", f.Name)
		}
		if _, dup := names[f.Name]; dup {
			return nil, fmt.Errorf("ast: duplicate field %q", f.Name)
		}
		names[f.Name] = struct{}{}
		if _, dup := keys[f.Key()]; dup {
			return nil, fmt.Errorf("ast: duplicate encoded key %q", f.Key())
		}
		keys[f.Key()] = struct{}{}
		if f.Mode == OptionalDefault && f.DecodeDefault == nil {
			return nil, fmt.Errorf("ast: field %q declared with default but no thunk", f.Name)
		}
	}
	return &Struct{Fields: fields}, nil
}

// NewUnion builds a Union node and precomputes the discriminator table when
// every member is a Struct sharing one required single-valued literal key
// with pairwise-distinct values.
func NewUnion(members ...Node) *Union {
	u := &Union{Members: members}
	if key, byTag, ok := detectDiscriminator(members); ok {
		u.Discriminator = key
		u.ByTag = byTag
	}
	return u
}

func detectDiscriminator(members []Node) (string, map[any]int, bool) {
	if len(members) < 2 {
		return "", nil, false
	}
	structs := make([]*Struct, len(members))
	for i, m := range members {
		s, ok := m.(*Struct)
		if !ok {
			return "", nil, false
		}
		structs[i] = s
	}
	// candidate keys follow the first member's field order
	for _, cand := range structs[0].Fields {
		if key, byTag, ok := tryDiscriminatorKey(structs, cand.Name); ok {
			return key, byTag, true
		}
	}
	return "", nil, false
}

func tryDiscriminatorKey(structs []*Struct, key string) (string, map[any]int, bool) {
	byTag := make(map[any]int, len(structs))
	for i, s := range structs {
		f, ok := s.FieldByName(key)
		if !ok || f.Mode != Required {
			return "", nil, false
		}
		lit, ok := f.Node.(*Literal)
		if !ok || len(lit.Values) != 1 {
			return "", nil, false
		}
		tag := lit.Values[0]
		if !comparableScalar(tag) {
			return "", nil, false
		}
		if _, dup := byTag[tag]; dup {
			return "", nil, false
		}
		byTag[tag] = i
	}
	return key, byTag, true
}

func comparableScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, float64, nil:
		return true
	default:
		return false
	}
}
