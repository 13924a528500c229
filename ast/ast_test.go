package ast

import "testing"

func TestAnnotations_WithDoesNotMutate(t *testing.T) {
	a := Annotations{AnnTitle: "original"}
	b := a.With(AnnTitle, "changed")
	if a[AnnTitle] != "original" {
		t.Fatalf("With mutated the receiver: %v", a[AnnTitle])
	}
	if b[AnnTitle] != "changed" {
		t.Fatalf("With did not apply: %v", b[AnnTitle])
	}
}

func TestAnnotate_CopiesNode(t *testing.T) {
	n := &Primitive{Prim: PrimString}
	m := n.Annotate(Annotations{AnnTitle: "name"})
	if n.Ann != nil {
		t.Fatalf("Annotate mutated the original node")
	}
	if v, ok := m.Annotations().Get(AnnTitle); !ok || v != "name" {
		t.Fatalf("annotation not attached: %v %v", v, ok)
	}
	if m == Node(n) {
		t.Fatalf("Annotate returned the receiver")
	}
}

func TestNewStruct_RejectsDuplicateNames(t *testing.T) {
	_, err := NewStruct(
		Field{Name: "id", Node: &Primitive{Prim: PrimString}},
		Field{Name: "id", Node: &Primitive{Prim: PrimInt}},
	)
	if err == nil {
		t.Fatalf("expected duplicate field error")
	}
}

func TestNewStruct_RejectsDuplicateWireKeys(t *testing.T) {
	_, err := NewStruct(
		Field{Name: "a", EncodedName: "k", Node: &Primitive{Prim: PrimString}},
		Field{Name: "b", EncodedName: "k", Node: &Primitive{Prim: PrimString}},
	)
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestNewStruct_DefaultNeedsThunk(t *testing.T) {
	_, err := NewStruct(
		Field{Name: "n", Node: &Primitive{Prim: PrimInt}, Mode: OptionalDefault},
	)
	if err == nil {
		t.Fatalf("expected error for OptionalDefault without thunk")
	}
}

func variant(tag string) *Struct {
	s, err := NewStruct(
		Field{Name: "kind", Node: &Literal{Values: []any{tag}}},
		Field{Name: "value", Node: &Primitive{Prim: PrimString}},
	)
	if err != nil {
		panic(err)
	}
	return s
}

func TestNewUnion_DetectsDiscriminator(t *testing.T) {
	u := NewUnion(variant("a"), variant("b"))
	if u.Discriminator != "kind" {
		t.Fatalf("discriminator = %q, want kind", u.Discriminator)
	}
	if i, ok := u.ByTag["b"]; !ok || i != 1 {
		t.Fatalf("ByTag[b] = %d %v", i, ok)
	}
}

func TestNewUnion_AmbiguousTagsFallBack(t *testing.T) {
	u := NewUnion(variant("a"), variant("a"))
	if u.Discriminator != "" {
		t.Fatalf("expected ordered-trial union for colliding tags, got %q", u.Discriminator)
	}
}

func TestNewUnion_NonStructMemberFallsBack(t *testing.T) {
	u := NewUnion(variant("a"), &Primitive{Prim: PrimString})
	if u.Discriminator != "" {
		t.Fatalf("expected no discriminator with a non-struct member")
	}
}

func TestWalk_VisitsDepthFirst(t *testing.T) {
	s, err := NewStruct(
		Field{Name: "items", Node: &Array{Elem: &Primitive{Prim: PrimInt}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	var kinds []Kind
	Walk(s, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	want := []Kind{KindStruct, KindArray, KindPrimitive}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

func TestWalk_DoesNotResolveSuspend(t *testing.T) {
	resolved := false
	var node Node
	node = &Struct{Fields: []Field{{Name: "next", Mode: Optional, Node: &Suspend{Thunk: func() Node {
		resolved = true
		return node
	}}}}}
	count := 0
	Walk(node, func(Node) bool { count++; return true })
	if resolved {
		t.Fatalf("Walk resolved a suspend thunk")
	}
	if count != 2 {
		t.Fatalf("visited %d nodes, want 2", count)
	}
}
