package layout

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestPlaceScenario(t *testing.T) {
	res := Pack(items([2]int{1000, 500}, [2]int{1000, 500}, [2]int{1000, 500}), testGeometry)
	got := Place(res.Pages[0], testGeometry)

	want := []struct {
		id       string
		x, bx, y int
	}{
		{"item1", 250, 1350, 1250},
		{"item2", 1350, 250, 1250},
		{"item3", 800, 800, 1850},
	}
	if len(got) != len(want) {
		t.Fatalf("placements = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		p := got[i]
		if p.Item.ID != w.id || p.X != w.x || p.BackX != w.bx || p.Y != w.y {
			t.Errorf("placement %d = {%s x=%d back=%d y=%d}, want {%s x=%d back=%d y=%d}",
				i, p.Item.ID, p.X, p.BackX, p.Y, w.id, w.x, w.bx, w.y)
		}
	}
}

func TestPlaceCentersWithFloor(t *testing.T) {
	g := Geometry{PageWidth: 101, PageHeight: 101, Margin: 0, Spacing: 0}
	p := Pack(items([2]int{10, 10}), g).Pages[0]
	pl := Place(p, g)[0]
	// (101-10)/2 = 45.5
	if pl.X != 45 || pl.Y != 45 {
		t.Errorf("placement = (%d,%d), want (45,45)", pl.X, pl.Y)
	}
	if pl.BackX != 46 {
		t.Errorf("BackX = %d, want 46", pl.BackX)
	}
}

// Accepted oversized rows push the block above the page edge; centering must
// still round toward negative infinity.
func TestPlaceTallRowNegativeOffset(t *testing.T) {
	g := Geometry{PageWidth: 1000, PageHeight: 1200, Margin: 100, Spacing: 100}
	p := Pack(items([2]int{500, 5001}), g).Pages[0]
	pl := Place(p, g)[0]
	if pl.Y != -1901 {
		t.Errorf("Y = %d, want -1901", pl.Y)
	}
}

func TestPlaceMirrorConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := Geometry{PageWidth: 2480, PageHeight: 3507, Margin: 177, Spacing: 177}

	for run := 0; run < 100; run++ {
		in := make([]Item, 1+rng.Intn(30))
		for i := range in {
			in[i] = Item{ID: fmt.Sprint(i), Width: 1 + rng.Intn(g.ContentWidth()), Height: 1 + rng.Intn(1500)}
		}
		for _, p := range Pack(in, g).Pages {
			startY := floorDiv(g.PageHeight-p.Height, 2)
			pls := Place(p, g)
			if len(pls) != len(p.Items()) {
				t.Fatalf("placements = %d, want %d", len(pls), len(p.Items()))
			}
			if pls[0].Y != startY {
				t.Fatalf("first Y = %d, want %d", pls[0].Y, startY)
			}
			k := 0
			for _, r := range p.Rows {
				if pls[k].X != floorDiv(g.PageWidth-r.Width, 2) {
					t.Fatalf("row start = %d, want %d", pls[k].X, floorDiv(g.PageWidth-r.Width, 2))
				}
				k += len(r.Items)
			}
			for _, pl := range pls {
				if pl.BackX+pl.X+pl.Item.Width != g.PageWidth {
					t.Fatalf("mirror broken: back %d + front %d + w %d != %d", pl.BackX, pl.X, pl.Item.Width, g.PageWidth)
				}
				if pl.X < g.Margin || pl.X+pl.Item.Width > g.PageWidth-g.Margin {
					t.Fatalf("item %s outside content area: x=%d w=%d", pl.Item.ID, pl.X, pl.Item.Width)
				}
			}
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{6, 2, 3},
		{-7, 2, -4},
		{-6, 2, -3},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
