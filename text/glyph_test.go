package text

import "testing"

func TestRectOverlaps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{2, 2, 4, 4}, true},
		{"touching edge", Rect{10, 0, 20, 10}, false},
		{"touching corner", Rect{10, 10, 12, 12}, false},
		{"partial", Rect{9, 9, 12, 12}, true},
		{"empty inside", Rect{5, 5, 5, 5}, false},
		{"disjoint", Rect{20, 20, 30, 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGlyphTable(t *testing.T) {
	var tab GlyphTable
	if tab.Len() != 0 {
		t.Fatalf("empty table Len() = %d", tab.Len())
	}

	tab.set(GlyphMetrics{Code: 'B', Advance: 2})
	tab.set(GlyphMetrics{Code: 'A', Advance: 1})
	tab.set(GlyphMetrics{Code: 'A', Advance: 3}) // replace

	if tab.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tab.Len())
	}
	if g, ok := tab.Lookup('A'); !ok || g.Advance != 3 {
		t.Errorf("Lookup('A') = %+v, %v", g, ok)
	}
	if _, ok := tab.Lookup('C'); ok {
		t.Error("Lookup('C') found an unset glyph")
	}
	for _, code := range []byte{0, 31, 127, 200} {
		if _, ok := tab.Lookup(code); ok {
			t.Errorf("Lookup(%d) outside the printable range succeeded", code)
		}
	}

	var order []byte
	tab.Each(func(g GlyphMetrics) { order = append(order, g.Code) })
	if string(order) != "AB" {
		t.Errorf("Each order = %q, want %q", order, "AB")
	}
}
