package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 10, End: 12}, Span{File: 1, Start: 2, End: 12}},
		{"reversed", Span{File: 1, Start: 10, End: 12}, Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 2, End: 12}},
		{"nested", Span{File: 1, Start: 0, End: 20}, Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 0, End: 20}},
		{"other file", Span{File: 1, Start: 0, End: 2}, Span{File: 2, Start: 0, End: 50}, Span{File: 1, Start: 0, End: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 3, End: 9}
	if !outer.Contains(Span{Start: 3, End: 9}) {
		t.Error("span should contain itself")
	}
	if !outer.Contains(Span{Start: 4, End: 4}) {
		t.Error("span should contain empty inner span")
	}
	if outer.Contains(Span{Start: 2, End: 5}) {
		t.Error("span must not contain overlapping span")
	}
	if outer.Contains(Span{File: 1, Start: 4, End: 5}) {
		t.Error("span must not contain span from another file")
	}
}

func TestSpanHelpers(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 10}
	if s.Len() != 6 || s.Empty() {
		t.Errorf("Len/Empty wrong for %v", s)
	}
	z := s.ZeroideToEnd()
	if !z.Empty() || z.Start != 10 || z.File != 3 {
		t.Errorf("ZeroideToEnd = %v", z)
	}
	if s.String() != "3:4-10" {
		t.Errorf("String = %q", s.String())
	}
}
