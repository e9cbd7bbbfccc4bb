package population

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/genetic"
	"github.com/lixenwraith/maze-runner/genome"
	"github.com/lixenwraith/maze-runner/maze"
)

var (
	ErrGenerationActive = errors.New("population: evolve called while agents are alive")
	ErrArchiveIndex     = errors.New("population: archive index out of range")
	ErrInvalidConfig    = errors.New("population: invalid configuration")
)

// Config holds the reproduction parameters
type Config struct {
	Size              int
	MutationRate      float64
	InitialMoves      int
	SelectionExponent float64
	Crossover         string
	EliteCount        int
}

func (c Config) validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v", ErrInvalidConfig, c.MutationRate)
	case c.InitialMoves <= 0:
		return fmt.Errorf("%w: initial moves %d", ErrInvalidConfig, c.InitialMoves)
	case c.SelectionExponent <= 0:
		return fmt.Errorf("%w: selection exponent %v", ErrInvalidConfig, c.SelectionExponent)
	case c.EliteCount < 0 || c.EliteCount > c.Size:
		return fmt.Errorf("%w: elite count %d", ErrInvalidConfig, c.EliteCount)
	}
	return nil
}

// Summary describes one completed generation
type Summary struct {
	Generation    int // generation that just completed
	MoveBudget    int // budget its genomes were built with
	Scores        []float64
	BestFitness   float64
	Reached       int
	SolutionFound bool
	MinStep       int
	NewRecord     bool // MinStep improved (or was set) by this generation
}

// Population owns one generation of agents and breeds the next.
// All randomness is drawn from the rng passed to New: initial genomes in agent
// order, then per child: parent draws, recombination, padding, mutation.
type Population struct {
	cfg     Config
	pending *Config
	rng     *rand.Rand
	breeder *genome.Breeder
	start   maze.Point

	generation int
	budget     int
	agents     []*agent.Agent

	best        genome.Genome
	bestFitness float64
	hasBest     bool

	solutionFound bool
	minStep       int

	archive Archive
}

// New creates generation 0 with uniformly random genomes
func New(cfg Config, start maze.Point, rng *rand.Rand) (*Population, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	breeder, err := genome.NewBreeder(cfg.Crossover)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	p := &Population{
		cfg:     cfg,
		rng:     rng,
		breeder: breeder,
		start:   start,
		budget:  cfg.InitialMoves,
	}
	p.agents = make([]*agent.Agent, cfg.Size)
	for i := range p.agents {
		p.agents[i] = agent.New(genome.Random(p.budget, rng), start)
	}
	return p, nil
}

// Configure stages new parameters; they apply at the next Evolve.
// InitialMoves is ignored once the population exists.
func (p *Population) Configure(cfg Config) error {
	cfg.InitialMoves = p.cfg.InitialMoves
	if err := cfg.validate(); err != nil {
		return err
	}
	if _, err := genome.NewBreeder(cfg.Crossover); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	p.pending = &cfg
	return nil
}

// Tick advances every live agent one step against env
func (p *Population) Tick(env agent.Environment, tick int) {
	for _, a := range p.agents {
		a.Update(env, tick)
	}
}

// AllTerminal reports whether every agent is Dead or ReachedGoal
func (p *Population) AllTerminal() bool {
	for _, a := range p.agents {
		if !a.Terminal() {
			return false
		}
	}
	return true
}

// Evolve scores the finished generation, records its best genome and
// replaces the agents with a freshly bred generation
func (p *Population) Evolve() (Summary, error) {
	if !p.AllTerminal() {
		return Summary{}, ErrGenerationActive
	}
	if p.pending != nil {
		p.cfg = *p.pending
		p.breeder, _ = genome.NewBreeder(p.cfg.Crossover)
		p.pending = nil
	}

	members := make([]genetic.Candidate[genome.Genome, float64], len(p.agents))
	summary := Summary{
		Generation: p.generation,
		MoveBudget: p.budget,
		Scores:     make([]float64, len(p.agents)),
	}
	for i, a := range p.agents {
		score := a.Fitness()
		members[i] = genetic.Candidate[genome.Genome, float64]{Data: a.Genome(), Score: score}
		summary.Scores[i] = score
		if steps, ok := a.StepsToGoal(); ok {
			summary.Reached++
			if !p.solutionFound || steps < p.minStep {
				p.solutionFound = true
				p.minStep = steps
				summary.NewRecord = true
			}
		}
	}

	ranked := genetic.Rank(members)
	top := p.agents[ranked[0]]
	summary.BestFitness = members[ranked[0]].Score
	summary.SolutionFound = p.solutionFound
	summary.MinStep = p.minStep

	entry := Entry{
		Generation: p.generation,
		Genome:     top.Genome(),
		Fitness:    summary.BestFitness,
		Steps:      top.Steps(),
	}
	if steps, ok := top.StepsToGoal(); ok {
		entry.Reached = true
		entry.Steps = steps
	}
	p.archive.append(entry)

	if !p.hasBest || summary.BestFitness > p.bestFitness {
		p.best = top.Genome()
		p.bestFitness = summary.BestFitness
		p.hasBest = true
	}

	p.agents = p.breed(members, ranked)
	p.generation++

	return summary, nil
}

func (p *Population) breed(members []genetic.Candidate[genome.Genome, float64], ranked []int) []*agent.Agent {
	next := make([]*agent.Agent, p.cfg.Size)
	elite := min(p.cfg.EliteCount, len(ranked), len(next))
	for i := 0; i < elite; i++ {
		g := members[ranked[i]].Data
		if short := p.budget - g.Len(); short > 0 {
			g = g.Extend(short, p.rng)
		}
		next[i] = agent.New(g, p.start)
	}

	pool := genetic.NewMatingPool(members, p.cfg.SelectionExponent)
	parents := make([]genome.Genome, p.breeder.Parents())
	for i := elite; i < len(next); i++ {
		for j := range parents {
			parents[j] = members[pool.Draw(p.rng)].Data
		}
		child := p.breeder.Child(parents, p.budget, p.cfg.MutationRate, p.rng)
		next[i] = agent.New(child, p.start)
	}
	return next
}

// GrowMoveBudget lengthens genomes bred from now on; live agents keep theirs
func (p *Population) GrowMoveBudget(by int) {
	if by > 0 {
		p.budget += by
	}
}

func (p *Population) Generation() int   { return p.generation }
func (p *Population) MoveBudget() int   { return p.budget }
func (p *Population) Size() int         { return len(p.agents) }
func (p *Population) Config() Config    { return p.cfg }
func (p *Population) Archive() *Archive { return &p.archive }

// SolutionFound reports whether any agent has ever reached the goal
func (p *Population) SolutionFound() bool { return p.solutionFound }

// MinStep returns the fewest steps any agent needed, false before the first solution
func (p *Population) MinStep() (int, bool) { return p.minStep, p.solutionFound }

// Best returns the highest-fitness genome observed so far
func (p *Population) Best() (genome.Genome, float64, bool) {
	return p.best, p.bestFitness, p.hasBest
}

// CurrentMoves returns the genome length of the live generation
func (p *Population) CurrentMoves() int {
	if len(p.agents) == 0 {
		return 0
	}
	return p.agents[0].Genome().Len()
}

// Snapshots copies the live agents' render state in agent order
func (p *Population) Snapshots() []agent.Snapshot {
	out := make([]agent.Snapshot, len(p.agents))
	for i, a := range p.agents {
		out[i] = a.Snapshot()
	}
	return out
}

// Counts returns how many agents are alive, dead and finished
func (p *Population) Counts() (alive, dead, reached int) {
	for _, a := range p.agents {
		switch a.Status() {
		case agent.Alive:
			alive++
		case agent.Dead:
			dead++
		case agent.ReachedGoal:
			reached++
		}
	}
	return alive, dead, reached
}
