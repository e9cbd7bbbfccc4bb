// Package genetic provides the generic operators of a generational genetic algorithm:
// fitness-weighted selection, recombination and mutation over slice encodings.
// All randomness flows through the caller's *rand.Rand, so a fixed seed and a fixed
// call order reproduce the same offspring.
package genetic

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"
)

// --- Selection ---

// MatingPool implements fitness-proportionate selection with a power bias:
// each member is drawn with probability score^Exponent / sum(score^Exponent).
// Draws are with replacement.
type MatingPool struct {
	cumulative []float64
	total      float64
}

// NewMatingPool builds the cumulative weight wheel once per generation
func NewMatingPool[S Solution, F Numeric](members []Candidate[S, F], exponent float64) *MatingPool {
	mp := &MatingPool{cumulative: make([]float64, len(members))}
	for i, c := range members {
		w := math.Pow(float64(c.Score), exponent)
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			w = 0
		}
		mp.total += w
		mp.cumulative[i] = mp.total
	}
	return mp
}

// Len returns the number of members on the wheel
func (mp *MatingPool) Len() int { return len(mp.cumulative) }

// Weight returns the share of the wheel owned by member i (0-1)
func (mp *MatingPool) Weight(i int) float64 {
	if mp.total <= 0 || i < 0 || i >= len(mp.cumulative) {
		return 0
	}
	prev := 0.0
	if i > 0 {
		prev = mp.cumulative[i-1]
	}
	return (mp.cumulative[i] - prev) / mp.total
}

// Draw spins the wheel once and returns a member index.
// A wheel with no weight falls back to a uniform draw. Consumes exactly one rng value.
func (mp *MatingPool) Draw(rng *rand.Rand) int {
	n := len(mp.cumulative)
	if n == 0 {
		return -1
	}
	if mp.total <= 0 || math.IsInf(mp.total, 0) {
		return rng.IntN(n)
	}
	spin := rng.Float64() * mp.total
	idx := sort.Search(n, func(i int) bool { return mp.cumulative[i] > spin })
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Rank returns member indices ordered by descending score; ties keep input order
func Rank[S Solution, F Numeric](members []Candidate[S, F]) []int {
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case members[a].Score > members[b].Score:
			return -1
		case members[a].Score < members[b].Score:
			return 1
		default:
			return 0
		}
	})
	return order
}

// --- Recombination ---

// SinglePointCombiner splits both parents at one random cut:
// child = first[:cut] + second[cut:], cut in [1, len-1]
type SinglePointCombiner[S ~[]T, T any] struct{}

func (SinglePointCombiner[S, T]) Parents() int { return 2 }

// Combine draws one cut point; parents shorter than 2 are copied without drawing
func (SinglePointCombiner[S, T]) Combine(parents []S, rng *rand.Rand) S {
	first, second := parents[0], parents[1]
	length := min(len(first), len(second))
	child := make(S, length)
	if length < 2 {
		copy(child, first)
		return child
	}
	cut := rng.IntN(length-1) + 1
	copy(child[:cut], first[:cut])
	copy(child[cut:], second[cut:length])
	return child
}

// UniformCombiner picks every element independently from either parent
type UniformCombiner[S ~[]T, T any] struct {
	// MixProbability is the chance of taking from the first parent
	MixProbability float64
}

func (uc UniformCombiner[S, T]) Parents() int { return 2 }

// Combine consumes one rng value per element
func (uc UniformCombiner[S, T]) Combine(parents []S, rng *rand.Rand) S {
	first, second := parents[0], parents[1]
	length := min(len(first), len(second))
	child := make(S, length)
	for i := 0; i < length; i++ {
		if rng.Float64() < uc.MixProbability {
			child[i] = first[i]
		} else {
			child[i] = second[i]
		}
	}
	return child
}

// CloneCombiner copies a single parent (asexual reproduction)
type CloneCombiner[S ~[]T, T any] struct{}

func (CloneCombiner[S, T]) Parents() int { return 1 }

func (CloneCombiner[S, T]) Combine(parents []S, _ *rand.Rand) S {
	return slices.Clone(parents[0])
}

// --- Mutation ---

// ResamplePerturbator replaces each element, with probability rate,
// by a fresh sample. Consumes one rng value per element plus the samples.
type ResamplePerturbator[S ~[]T, T any] struct {
	Sample func(rng *rand.Rand) T
}

func (rp ResamplePerturbator[S, T]) Perturb(solution *S, rate float64, rng *rand.Rand) {
	if solution == nil {
		return
	}
	s := *solution
	for i := range s {
		if rng.Float64() < rate {
			s[i] = rp.Sample(rng)
		}
	}
}
