package atlas

import (
	"errors"
	"math/rand/v2"
	"testing"
)

type placed struct{ x, y, w, h int }

func (p placed) overlaps(q placed) bool {
	return p.x < q.x+q.w && q.x < p.x+p.w && p.y < q.y+q.h && q.y < p.y+p.h
}

func TestNewInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d): expected ErrInvalidSize, got %v", sz[0], sz[1], err)
		}
	}
}

func TestAddRectFirstAtOrigin(t *testing.T) {
	a, err := New(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	x, y, ok := a.AddRect(10, 12)
	if !ok || x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d) ok=%v", x, y, ok)
	}
	x, y, ok = a.AddRect(10, 5)
	if !ok || x != 10 || y != 0 {
		t.Errorf("expected (10,0), got (%d,%d) ok=%v", x, y, ok)
	}

	nodes := a.Nodes()
	want := []Node{{0, 12, 10}, {10, 5, 10}, {20, 0, 44}}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %v", len(want), nodes)
	}
	for i := range want {
		if nodes[i] != want[i] {
			t.Errorf("node %d: expected %v, got %v", i, want[i], nodes[i])
		}
	}
}

func TestAddRectPrefersLowestSkyline(t *testing.T) {
	a, _ := New(30, 100)
	a.AddRect(10, 20)
	a.AddRect(10, 5)
	a.AddRect(10, 10)
	// Lowest span is the middle one at y=5.
	x, y, ok := a.AddRect(10, 4)
	if !ok || x != 10 || y != 5 {
		t.Errorf("expected (10,5), got (%d,%d) ok=%v", x, y, ok)
	}
}

func TestAddRectMergesEqualHeights(t *testing.T) {
	a, _ := New(40, 40)
	a.AddRect(10, 8)
	a.AddRect(10, 8)
	if n := len(a.Nodes()); n != 2 {
		t.Errorf("expected merged skyline of 2 nodes, got %v", a.Nodes())
	}
}

func TestAddRectFull(t *testing.T) {
	a, _ := New(16, 16)
	if _, _, ok := a.AddRect(17, 1); ok {
		t.Error("rect wider than atlas must not fit")
	}
	if _, _, ok := a.AddRect(16, 16); !ok {
		t.Fatal("full-size rect should fit in an empty atlas")
	}
	if _, _, ok := a.AddRect(1, 1); ok {
		t.Error("full atlas must reject further rects")
	}
}

func TestResetAndExpand(t *testing.T) {
	a, _ := New(16, 16)
	a.AddRect(16, 16)

	a.Expand(32, 16)
	x, y, ok := a.AddRect(16, 16)
	if !ok || x != 16 || y != 0 {
		t.Errorf("after expand expected (16,0), got (%d,%d) ok=%v", x, y, ok)
	}

	a.Reset(8, 8)
	if a.Width() != 8 || a.Height() != 8 {
		t.Errorf("expected 8x8 after reset, got %dx%d", a.Width(), a.Height())
	}
	if n := a.Nodes(); len(n) != 1 || n[0] != (Node{0, 0, 8}) {
		t.Errorf("expected single empty span, got %v", n)
	}
}

func TestAddRectRandomNonOverlap(t *testing.T) {
	const w, h = 256, 256
	rng := rand.New(rand.NewPCG(1, 2))
	a, _ := New(w, h)

	var rects []placed
	for range 500 {
		rw, rh := 1+rng.IntN(24), 1+rng.IntN(24)
		x, y, ok := a.AddRect(rw, rh)
		if !ok {
			continue
		}
		r := placed{x, y, rw, rh}
		if x < 0 || y < 0 || x+rw > w || y+rh > h {
			t.Fatalf("rect %v outside atlas", r)
		}
		for _, q := range rects {
			if r.overlaps(q) {
				t.Fatalf("rect %v overlaps %v", r, q)
			}
		}
		rects = append(rects, r)
	}
	if len(rects) == 0 {
		t.Fatal("no rects placed")
	}
}
