package genome

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/maze-runner/genetic"
	"github.com/lixenwraith/maze-runner/parameter"
)

// Move is one committed step: each component in {-1, 0, 1}
type Move struct {
	DX, DY int8
}

// Moves lists the nine legal move vectors, (0,0) being a wait
var Moves = [9]Move{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// RandomMove samples a move uniformly. Consumes one rng value.
func RandomMove(rng *rand.Rand) Move {
	return Moves[rng.IntN(len(Moves))]
}

// Genome is an immutable, ordered sequence of moves
type Genome struct {
	moves []Move
}

// Random creates a genome of n uniformly sampled moves
func Random(n int, rng *rand.Rand) Genome {
	moves := make([]Move, n)
	for i := range moves {
		moves[i] = RandomMove(rng)
	}
	return Genome{moves: moves}
}

// FromMoves copies moves into a new genome
func FromMoves(moves ...Move) Genome {
	return Genome{moves: slices.Clone(moves)}
}

func (g Genome) Len() int { return len(g.moves) }

// StepAt returns the move at index; index must be within [0, Len())
func (g Genome) StepAt(index int) Move { return g.moves[index] }

// Moves returns a copy of the move sequence
func (g Genome) Moves() []Move { return slices.Clone(g.moves) }

// Equal reports whether both genomes hold the same moves
func (g Genome) Equal(other Genome) bool { return slices.Equal(g.moves, other.moves) }

// Mutate returns a copy where each move is resampled with probability rate
func (g Genome) Mutate(rate float64, rng *rand.Rand) Genome {
	moves := slices.Clone(g.moves)
	resample.Perturb(&moves, rate, rng)
	return Genome{moves: moves}
}

// Crossover returns a single-point child of g and other
func (g Genome) Crossover(other Genome, rng *rand.Rand) Genome {
	var c genetic.SinglePointCombiner[[]Move, Move]
	return Genome{moves: c.Combine([][]Move{g.moves, other.moves}, rng)}
}

// Extend returns a copy padded with n fresh random moves
func (g Genome) Extend(n int, rng *rand.Rand) Genome {
	moves := slices.Grow(slices.Clone(g.moves), max(n, 0))
	for i := 0; i < n; i++ {
		moves = append(moves, RandomMove(rng))
	}
	return Genome{moves: moves}
}

func (g Genome) String() string {
	return fmt.Sprintf("genome(%d moves)", len(g.moves))
}

var resample = genetic.ResamplePerturbator[[]Move, Move]{Sample: RandomMove}

// Crossover policies
const (
	CrossoverSinglePoint = "single-point"
	CrossoverUniform     = "uniform"
	CrossoverClone       = "clone"
)

// Breeder turns sampled parents into one child genome
type Breeder struct {
	combiner genetic.Combiner[[]Move]
}

// NewBreeder selects the recombination operator by policy name
func NewBreeder(policy string) (*Breeder, error) {
	var c genetic.Combiner[[]Move]
	switch policy {
	case "", CrossoverSinglePoint:
		c = genetic.SinglePointCombiner[[]Move, Move]{}
	case CrossoverUniform:
		c = genetic.UniformCombiner[[]Move, Move]{MixProbability: parameter.GACrossoverMixProbability}
	case CrossoverClone:
		c = genetic.CloneCombiner[[]Move, Move]{}
	default:
		return nil, fmt.Errorf("genome: unknown crossover policy %q", policy)
	}
	return &Breeder{combiner: c}, nil
}

// Parents is the number of parents Child expects
func (b *Breeder) Parents() int { return b.combiner.Parents() }

// Child recombines parents, pads the result to budget with random moves,
// then mutates it. Randomness is drawn in that order.
func (b *Breeder) Child(parents []Genome, budget int, rate float64, rng *rand.Rand) Genome {
	encoded := make([][]Move, len(parents))
	for i, p := range parents {
		encoded[i] = p.moves
	}
	moves := b.combiner.Combine(encoded, rng)
	if len(moves) > budget {
		moves = moves[:budget]
	}
	for len(moves) < budget {
		moves = append(moves, RandomMove(rng))
	}
	resample.Perturb(&moves, rate, rng)
	return Genome{moves: moves}
}
