package diag

import (
	"sync"
	"testing"

	"simpleparser/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}

	unlimited := NewBag(0)
	for iter := 0; iter < 500; iter++ {
		unlimited.Add(NewError(LexUnknownChar, source.Span{}, "?"))
	}
	if unlimited.Len() != 500 {
		t.Fatalf("unlimited bag dropped items: %d", unlimited.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, SynInfo, source.Span{}, "info"))
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("info must not count as warning or error")
	}
	b.Add(New(SevWarning, IOCacheError, source.Span{}, "warn"))
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatal("warning not detected")
	}
	b.Add(NewError(SynUnexpectedEOF, source.Span{}, "err"))
	if !b.HasErrors() {
		t.Fatal("error not detected")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, LexUnknownChar, source.Span{File: 0, Start: 9, End: 10}, "w"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 9, End: 10}, "e"))
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "dup"))

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[0].Primary.File != 0 {
		t.Fatalf("errors sort before warnings on the same span, got %+v", items[0])
	}
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", b.Len())
	}
}

func TestBagConcurrentAdd(t *testing.T) {
	b := NewBag(0)
	var wg sync.WaitGroup
	for iter := 0; iter < 8; iter++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < 100; iter++ {
				b.Add(NewError(SynUnexpectedToken, source.Span{}, "x"))
			}
		}()
	}
	wg.Wait()
	if b.Len() != 800 {
		t.Fatalf("Len = %d, want 800", b.Len())
	}
}

func TestMergeGrowsLimit(t *testing.T) {
	a, other := NewBag(1), NewBag(0)
	a.Add(NewError(SynUnexpectedToken, source.Span{}, "a"))
	other.Add(NewError(SynUnexpectedToken, source.Span{}, "b"))
	other.Add(NewError(SynUnexpectedToken, source.Span{}, "c"))
	a.Merge(other)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("Merge: len=%d cap=%d", a.Len(), a.Cap())
	}
}
