package grammar

import (
	"testing"
)

func TestSymbolTable_Lookup_FallsBackToRules(t *testing.T) {
	st := newSymbolTable(map[string]*Value{
		"animal": NewString("albatross"),
	})

	v, ok := st.Lookup("animal")
	if !ok {
		t.Fatal("expected fallback lookup to succeed")
	}

	if v.Str != "albatross" {
		t.Errorf("expected %q, got %q", "albatross", v.Str)
	}

	if _, ok := st.Lookup("missing"); ok {
		t.Error("expected lookup of undefined key to fail")
	}
}

func TestSymbolTable_Push_ShadowsFallback(t *testing.T) {
	st := newSymbolTable(map[string]*Value{
		"animal": NewString("albatross"),
	})

	st.Push("animal", NewString("badger"))

	v, ok := st.Lookup("animal")
	if !ok || v.Str != "badger" {
		t.Fatalf("expected shadowing binding %q, got %v %v", "badger", v, ok)
	}

	if !st.Bound("animal") {
		t.Error("expected Bound to report runtime binding")
	}
}

func TestSymbolTable_Push_ShadowsBinding(t *testing.T) {
	st := newSymbolTable(nil)

	st.Push("key", NewString("first"))
	st.Push("key", NewString("second"))

	v, _ := st.Lookup("key")
	if v.Str != "second" {
		t.Errorf("expected top of stack %q, got %q", "second", v.Str)
	}

	st.Pop("key")

	v, ok := st.Lookup("key")
	if !ok || v.Str != "first" {
		t.Errorf("expected shadowed binding %q restored, got %v %v", "first", v, ok)
	}
}

func TestSymbolTable_Pop_RestoresFallback(t *testing.T) {
	st := newSymbolTable(map[string]*Value{
		"key": NewString("fallback"),
	})

	st.Push("key", NewString("shadow"))
	st.Pop("key")

	if st.Bound("key") {
		t.Error("expected key removed after final pop")
	}

	v, ok := st.Lookup("key")
	if !ok || v.Str != "fallback" {
		t.Errorf("expected fallback %q after pop, got %v %v", "fallback", v, ok)
	}
}

func TestSymbolTable_Pop_UnboundIsNoOp(t *testing.T) {
	st := newSymbolTable(nil)

	st.Pop("missing")

	if st.Bound("missing") {
		t.Error("expected key to remain unbound")
	}
}
