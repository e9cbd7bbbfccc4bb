package tracking

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is the raw outcome of one finished generation
type Sample struct {
	Generation int
	MoveBudget int
	Scores     []float64
	Reached    int
	Solved     bool
	MinStep    int
}

// Stats summarizes one generation's fitness distribution
type Stats struct {
	Generation int
	MoveBudget int
	Best       float64
	Mean       float64
	StdDev     float64
	Reached    int
	Solved     bool
	MinStep    int
}

// History accumulates per-generation statistics in order
type History struct {
	entries []Stats
	best    float64
}

func NewHistory() *History {
	return &History{}
}

// Record computes the statistics of s and appends them
func (h *History) Record(s Sample) Stats {
	st := Stats{
		Generation: s.Generation,
		MoveBudget: s.MoveBudget,
		Reached:    s.Reached,
		Solved:     s.Solved,
		MinStep:    s.MinStep,
	}
	if len(s.Scores) > 0 {
		st.Best = floats.Max(s.Scores)
		st.Mean, st.StdDev = stat.MeanStdDev(s.Scores, nil)
		// Single sample has no spread
		if math.IsNaN(st.StdDev) {
			st.StdDev = 0
		}
	}
	if len(h.entries) == 0 || st.Best > h.best {
		h.best = st.Best
	}
	h.entries = append(h.entries, st)
	return st
}

func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the recorded statistics
func (h *History) Entries() []Stats {
	return append([]Stats(nil), h.entries...)
}

// Last returns the most recent statistics
func (h *History) Last() (Stats, bool) {
	if len(h.entries) == 0 {
		return Stats{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// BestEver returns the highest generation-best fitness recorded
func (h *History) BestEver() float64 { return h.best }
