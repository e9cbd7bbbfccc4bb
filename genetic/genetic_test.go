package genetic

import (
	"math/rand/v2"
	"testing"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func candidates(scores ...float64) []Candidate[[]int, float64] {
	out := make([]Candidate[[]int, float64], len(scores))
	for i, s := range scores {
		out[i] = Candidate[[]int, float64]{Data: []int{i}, Score: s}
	}
	return out
}

func TestMatingPool_FavoursFittest(t *testing.T) {
	mp := NewMatingPool(candidates(1, 1, 1, 1000), 2)
	rng := newRNG(1)

	counts := make([]int, 4)
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[mp.Draw(rng)]++
	}

	for i := 0; i < 3; i++ {
		if counts[3] <= counts[i]*10 {
			t.Errorf("fittest drawn %d times, member %d drawn %d times", counts[3], i, counts[i])
		}
	}
	if counts[3] < draws*9/10 {
		t.Errorf("expected fittest to dominate, got %d/%d", counts[3], draws)
	}
}

func TestMatingPool_ExponentSharpensBias(t *testing.T) {
	flat := NewMatingPool(candidates(1, 2), 1)
	sharp := NewMatingPool(candidates(1, 2), 2)

	if w := flat.Weight(1); w < 0.666 || w > 0.667 {
		t.Errorf("expected 2/3 share, got %v", w)
	}
	if w := sharp.Weight(1); w != 0.8 {
		t.Errorf("expected 0.8 share, got %v", w)
	}
}

func TestMatingPool_ZeroWeightFallsBackToUniform(t *testing.T) {
	mp := NewMatingPool(candidates(0, 0, 0), 2)
	rng := newRNG(3)
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		idx := mp.Draw(rng)
		if idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected every member drawn, saw %v", seen)
	}
}

func TestMatingPool_Deterministic(t *testing.T) {
	mp := NewMatingPool(candidates(3, 1, 4, 1, 5), 2)
	a, b := newRNG(42), newRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := mp.Draw(a), mp.Draw(b); x != y {
			t.Fatalf("draw %d diverged: %d vs %d", i, x, y)
		}
	}
}

func TestRank_StableDescending(t *testing.T) {
	order := Rank(candidates(2, 5, 2, 9))
	want := []int{3, 1, 0, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestSinglePointCombiner(t *testing.T) {
	first := []int{1, 1, 1, 1, 1, 1}
	second := []int{2, 2, 2, 2, 2, 2}
	var c SinglePointCombiner[[]int, int]
	rng := newRNG(9)

	for trial := 0; trial < 50; trial++ {
		child := c.Combine([][]int{first, second}, rng)
		if len(child) != len(first) {
			t.Fatalf("expected length %d, got %d", len(first), len(child))
		}
		if child[0] != 1 || child[len(child)-1] != 2 {
			t.Fatalf("cut must leave both parents represented: %v", child)
		}
		switched := false
		for i := 1; i < len(child); i++ {
			if child[i] != child[i-1] {
				if switched {
					t.Fatalf("more than one cut: %v", child)
				}
				switched = true
			}
		}
	}

	if first[0] != 1 || second[0] != 2 {
		t.Error("parents must not be modified")
	}
}

func TestSinglePointCombiner_ShortParents(t *testing.T) {
	var c SinglePointCombiner[[]int, int]
	rng, ref := newRNG(1), newRNG(1)
	child := c.Combine([][]int{{7}, {8}}, rng)
	if len(child) != 1 || child[0] != 7 {
		t.Errorf("expected copy of first parent, got %v", child)
	}
	if rng.Uint64() != ref.Uint64() {
		t.Error("short parents must not consume randomness")
	}
}

func TestUniformCombiner(t *testing.T) {
	rng := newRNG(5)
	all := UniformCombiner[[]int, int]{MixProbability: 1}
	child := all.Combine([][]int{{1, 1, 1}, {2, 2, 2}}, rng)
	for _, v := range child {
		if v != 1 {
			t.Fatalf("expected all genes from first parent, got %v", child)
		}
	}

	none := UniformCombiner[[]int, int]{MixProbability: 0}
	child = none.Combine([][]int{{1, 1, 1}, {2, 2, 2}}, rng)
	for _, v := range child {
		if v != 2 {
			t.Fatalf("expected all genes from second parent, got %v", child)
		}
	}
}

func TestCloneCombiner(t *testing.T) {
	var c CloneCombiner[[]int, int]
	parent := []int{4, 5, 6}
	child := c.Combine([][]int{parent}, nil)
	child[0] = 0
	if parent[0] != 4 {
		t.Error("clone must not alias parent")
	}
	if c.Parents() != 1 {
		t.Errorf("expected 1 parent, got %d", c.Parents())
	}
}

func TestResamplePerturbator(t *testing.T) {
	p := ResamplePerturbator[[]int, int]{Sample: func(*rand.Rand) int { return 9 }}
	rng := newRNG(2)

	genes := []int{1, 2, 3, 4}
	p.Perturb(&genes, 0, rng)
	for i, v := range genes {
		if v != i+1 {
			t.Fatalf("rate 0 must keep genes, got %v", genes)
		}
	}

	p.Perturb(&genes, 1, rng)
	for _, v := range genes {
		if v != 9 {
			t.Fatalf("rate 1 must resample every gene, got %v", genes)
		}
	}
}
