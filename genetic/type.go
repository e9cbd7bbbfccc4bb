package genetic

import (
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
}

// --- Core Operators as Interfaces ---

// Combiner defines the recombination operator producing one child from parents.
// Parents are consumed in order; implementations must not retain or mutate them.
type Combiner[S Solution] interface {
	Combine(parents []S, rng *rand.Rand) S
	// Parents is the number of parents Combine expects
	Parents() int
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in-place; rate is the per-element probability (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
