package drgraph

import "testing"

func fixedSeed(b byte) Seed {
	var s Seed
	for i := range s {
		s[i] = b
	}
	return s
}

func TestNewValidation(t *testing.T) {
	seed := fixedSeed(1)
	cases := []struct {
		nodes, degree, exp int
	}{
		{1, 1, 0},
		{32, 0, 0},
		{32, 32, 0},
		{32, 5, -1},
	}
	for _, c := range cases {
		if _, err := New(c.nodes, c.degree, c.exp, seed); err == nil {
			t.Fatalf("invalid shape (%d,%d,%d) accepted", c.nodes, c.degree, c.exp)
		}
	}
	if _, err := New(32, 6, 0, seed); err != nil {
		t.Fatalf("valid shape rejected: %v", err)
	}
}

func TestParentsShape(t *testing.T) {
	g, err := New(64, 5, 0, fixedSeed(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sawNonZero := false
	for v := uint64(0); v < 64; v++ {
		parents := g.Parents(v)
		if len(parents) != 5 {
			t.Fatalf("node %d: %d parents, want 5", v, len(parents))
		}
		for i, p := range parents {
			if v == 0 {
				if p != 0 {
					t.Fatalf("node 0 parent %d = %d, want 0", i, p)
				}
				continue
			}
			if p >= v {
				t.Fatalf("node %d parent %d not a predecessor", v, p)
			}
			if i > 0 && parents[i-1] > p {
				t.Fatalf("node %d parents not sorted", v)
			}
			if p != 0 {
				sawNonZero = true
			}
		}
	}
	if !sawNonZero {
		t.Fatalf("all parents were zero")
	}
}

func TestParentsDeterministic(t *testing.T) {
	a, _ := New(64, 5, 3, fixedSeed(3))
	b, _ := New(64, 5, 3, fixedSeed(3))
	for v := uint64(0); v < 64; v++ {
		pa, pb := a.AllParents(v), b.AllParents(v)
		if len(pa) != len(pb) {
			t.Fatalf("node %d: parent width mismatch", v)
		}
		for i := range pa {
			if pa[i] != pb[i] {
				t.Fatalf("node %d: same seed, different parents", v)
			}
		}
	}
}

func TestSeedChangesParents(t *testing.T) {
	a, _ := New(256, 5, 0, fixedSeed(4))
	b, _ := New(256, 5, 0, fixedSeed(5))
	same := true
	for v := uint64(1); v < 256 && same; v++ {
		pa, pb := a.Parents(v), b.Parents(v)
		for i := range pa {
			if pa[i] != pb[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatalf("different seeds produced identical graphs")
	}
}

func TestExpandedParents(t *testing.T) {
	g, _ := New(64, 5, 3, fixedSeed(6))
	if got := g.ExpandedParents(10); len(got) != 3 {
		t.Fatalf("expansion width %d, want 3", len(got))
	}
	for _, p := range g.ExpandedParents(10) {
		if p >= 10 {
			t.Fatalf("expander parent %d not a predecessor of 10", p)
		}
	}
	plain, _ := New(64, 5, 0, fixedSeed(6))
	if got := plain.ExpandedParents(10); got != nil {
		t.Fatalf("zero expansion degree returned parents")
	}
	if got := g.AllParents(10); len(got) != 8 {
		t.Fatalf("AllParents width %d, want 8", len(got))
	}
}

func TestNewSeedUnpredictable(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if a == b {
		t.Fatalf("two fresh seeds collided")
	}
}
