package tracing

import (
	"testing"
	"time"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Span("missing"); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
	if _, ok := reg.Span(""); ok {
		t.Fatal("lookup of zero id succeeded")
	}

	md := &Metadata{Level: LevelWarn, Name: "outer"}
	started := time.Now()
	reg.insert(&spanData{id: "s1", metadata: md, started: started})

	ref, ok := reg.Span("s1")
	if !ok {
		t.Fatal("inserted span not found")
	}
	if ref.ID() != "s1" {
		t.Errorf("ID = %s", ref.ID())
	}
	if ref.Metadata() != md {
		t.Error("metadata not the inserted one")
	}
	if !ref.StartTime().Equal(started) {
		t.Errorf("start time = %v, want %v", ref.StartTime(), started)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestRegistry_ExtensionDiesWithSpan(t *testing.T) {
	reg := NewRegistry()
	reg.insert(&spanData{id: "s1", metadata: &Metadata{Name: "a"}})

	ref, _ := reg.Span("s1")
	ref.Extension().Insert("state")

	reg.remove("s1")

	if _, ok := reg.Span("s1"); ok {
		t.Fatal("span resolvable after remove")
	}

	// A fresh span under a different id starts with an empty slot.
	reg.insert(&spanData{id: "s2", metadata: &Metadata{Name: "b"}})
	ref2, _ := reg.Span("s2")
	if _, ok := ref2.Extension().Get(); ok {
		t.Fatal("new span inherited state")
	}
}

func TestRegistry_RemoveUnknown(t *testing.T) {
	reg := NewRegistry()
	reg.remove("never-existed") // must not panic
	if reg.Len() != 0 {
		t.Fatalf("Len = %d", reg.Len())
	}
}
