package genome

import (
	"math/rand/v2"
	"testing"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestRandom_LengthAndLegalMoves(t *testing.T) {
	g := Random(50, newRNG(1))
	if g.Len() != 50 {
		t.Fatalf("expected 50 moves, got %d", g.Len())
	}
	for i := 0; i < g.Len(); i++ {
		m := g.StepAt(i)
		if m.DX < -1 || m.DX > 1 || m.DY < -1 || m.DY > 1 {
			t.Errorf("illegal move %+v at %d", m, i)
		}
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a := Random(30, newRNG(7))
	b := Random(30, newRNG(7))
	if !a.Equal(b) {
		t.Error("same seed must produce the same genome")
	}
}

func TestGenome_Immutable(t *testing.T) {
	src := []Move{{1, 0}, {0, 1}}
	g := FromMoves(src...)
	src[0] = Move{-1, -1}
	if g.StepAt(0) != (Move{1, 0}) {
		t.Error("FromMoves must copy its input")
	}

	out := g.Moves()
	out[1] = Move{}
	if g.StepAt(1) != (Move{0, 1}) {
		t.Error("Moves must return a copy")
	}

	mutated := g.Mutate(1, newRNG(3))
	if g.StepAt(0) != (Move{1, 0}) || mutated.Len() != 2 {
		t.Error("Mutate must not touch the receiver")
	}
}

func TestMutate_RateBounds(t *testing.T) {
	g := Random(100, newRNG(2))
	if same := g.Mutate(0, newRNG(4)); !same.Equal(g) {
		t.Error("rate 0 must keep every move")
	}

	changed := 0
	mutated := g.Mutate(1, newRNG(4))
	for i := 0; i < g.Len(); i++ {
		if mutated.StepAt(i) != g.StepAt(i) {
			changed++
		}
	}
	// Resampling draws the same move 1 time in 9
	if changed < 70 {
		t.Errorf("rate 1 changed only %d of 100 moves", changed)
	}
}

func TestCrossover_KeepsLengthAndParents(t *testing.T) {
	left := FromMoves(Move{1, 0}, Move{1, 0}, Move{1, 0}, Move{1, 0})
	right := FromMoves(Move{0, 1}, Move{0, 1}, Move{0, 1}, Move{0, 1})
	child := left.Crossover(right, newRNG(8))

	if child.Len() != 4 {
		t.Fatalf("expected 4 moves, got %d", child.Len())
	}
	if child.StepAt(0) != (Move{1, 0}) || child.StepAt(3) != (Move{0, 1}) {
		t.Errorf("expected prefix from first parent and suffix from second, got %v", child.Moves())
	}
}

func TestExtend(t *testing.T) {
	g := FromMoves(Move{1, 1})
	ext := g.Extend(4, newRNG(1))
	if ext.Len() != 5 || g.Len() != 1 {
		t.Errorf("expected 5 and 1, got %d and %d", ext.Len(), g.Len())
	}
	if ext.StepAt(0) != (Move{1, 1}) {
		t.Error("extension must keep the existing prefix")
	}
}

func TestNewBreeder_Policies(t *testing.T) {
	tests := []struct {
		policy  string
		parents int
		wantErr bool
	}{
		{"", 2, false},
		{CrossoverSinglePoint, 2, false},
		{CrossoverUniform, 2, false},
		{CrossoverClone, 1, false},
		{"three-point", 0, true},
	}
	for _, tt := range tests {
		b, err := NewBreeder(tt.policy)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.policy)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.policy, err)
		}
		if b.Parents() != tt.parents {
			t.Errorf("%q: expected %d parents, got %d", tt.policy, tt.parents, b.Parents())
		}
	}
}

func TestBreeder_PadsToBudget(t *testing.T) {
	b, err := NewBreeder(CrossoverSinglePoint)
	if err != nil {
		t.Fatal(err)
	}
	p := Random(10, newRNG(1))
	q := Random(10, newRNG(2))

	child := b.Child([]Genome{p, q}, 15, 0, newRNG(3))
	if child.Len() != 15 {
		t.Fatalf("expected 15 moves, got %d", child.Len())
	}
}

func TestBreeder_CloneWithoutMutation(t *testing.T) {
	b, err := NewBreeder(CrossoverClone)
	if err != nil {
		t.Fatal(err)
	}
	p := Random(12, newRNG(5))
	child := b.Child([]Genome{p}, 12, 0, newRNG(6))
	if !child.Equal(p) {
		t.Error("clone at rate 0 must reproduce the parent")
	}
}
