package tracing

import (
	"sync"
	"testing"
)

func TestExtension_Basic(t *testing.T) {
	var ext Extension

	if v, ok := ext.Get(); ok || v != nil {
		t.Fatalf("empty slot Get = (%v, %v), want (nil, false)", v, ok)
	}

	ext.Insert("state")
	v, ok := ext.Get()
	if !ok || v != "state" {
		t.Fatalf("Get = (%v, %v), want (state, true)", v, ok)
	}

	// Get borrows: the value stays in the slot.
	if v, ok := ext.Get(); !ok || v != "state" {
		t.Fatalf("second Get = (%v, %v), want (state, true)", v, ok)
	}

	v, ok = ext.Remove()
	if !ok || v != "state" {
		t.Fatalf("Remove = (%v, %v), want (state, true)", v, ok)
	}

	if _, ok := ext.Remove(); ok {
		t.Fatal("Remove on empty slot returned ok")
	}
	if _, ok := ext.Get(); ok {
		t.Fatal("Get after Remove returned ok")
	}
}

func TestExtension_InsertReplaces(t *testing.T) {
	var ext Extension
	ext.Insert(1)
	ext.Insert(2)

	v, ok := ext.Remove()
	if !ok || v != 2 {
		t.Fatalf("Remove = (%v, %v), want (2, true)", v, ok)
	}
}

func TestExtension_RemoveIsExclusive(t *testing.T) {
	var ext Extension
	ext.Insert("only")

	const goroutines = 32
	var wg sync.WaitGroup
	var taken sync.Map
	wins := make(chan any, goroutines)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(n int) {
			defer wg.Done()
			if v, ok := ext.Remove(); ok {
				taken.Store(n, v)
				wins <- v
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Fatalf("%d goroutines observed the value, want exactly 1", count)
	}
}
