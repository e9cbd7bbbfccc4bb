package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/maze-runner/config"
	"github.com/lixenwraith/maze-runner/genetic/tracking"
	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
	"github.com/lixenwraith/maze-runner/population"
)

var ErrNoReplay = errors.New("engine: replay not active")

// Report is delivered to generation hooks after every evolve
type Report struct {
	Summary population.Summary
	Stats   tracking.Stats
}

// Simulation is the complete state of one run. It is owned by a single driver
// goroutine; nothing in it is safe for concurrent use.
type Simulation struct {
	cfg    config.Config // effective settings
	staged config.Config // settings shown in the HUD, applied at the next evolve

	world   *maze.World
	arena   *maze.Arena
	pop     *population.Population
	rng     *rand.Rand
	history *tracking.History

	tick int

	replay *population.Replay
	linger int

	hooks []func(Report)
}

// New builds the level and generation 0 from a validated configuration
func New(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world, err := maze.BuildLevel(cfg.LevelSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to build level: %w", err)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	pop, err := population.New(cfg.PopulationSettings(), world.Start(), rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create population: %w", err)
	}

	return &Simulation{
		cfg:     cfg,
		staged:  cfg,
		world:   world,
		arena:   maze.NewArena(world, cfg.Metric()),
		pop:     pop,
		rng:     rng,
		history: tracking.NewHistory(),
	}, nil
}

// OnGeneration registers fn to run after every evolve, in registration order
func (s *Simulation) OnGeneration(fn func(Report)) {
	s.hooks = append(s.hooks, fn)
}

// Step performs one unit of live work: a tick while any agent is alive,
// otherwise the evolve that starts the next generation.
// Returns true when a generation was completed.
func (s *Simulation) Step() (bool, error) {
	if s.pop.AllTerminal() {
		return true, s.evolve()
	}
	s.tick++
	s.arena.Advance()
	s.pop.Tick(s.arena, s.tick)
	return false, nil
}

// Frame runs one rendered frame: up to speed ticks of the live run, or of the
// replay when one is active. A generation finished mid-frame is evolved at the
// end of the frame so its final positions are never skipped.
func (s *Simulation) Frame() error {
	if s.replay != nil {
		s.replayFrame()
		return nil
	}
	for i := 0; i < s.cfg.Simulation.Speed && !s.pop.AllTerminal(); i++ {
		s.tick++
		s.arena.Advance()
		s.pop.Tick(s.arena, s.tick)
	}
	if s.pop.AllTerminal() {
		return s.evolve()
	}
	return nil
}

// RunGenerations steps the live run until n more generations have evolved.
// Cancellation is checked between steps.
func (s *Simulation) RunGenerations(ctx context.Context, n int) error {
	for done := 0; done < n; {
		if err := ctx.Err(); err != nil {
			return err
		}
		evolved, err := s.Step()
		if err != nil {
			return err
		}
		if evolved {
			done++
		}
	}
	return nil
}

func (s *Simulation) evolve() error {
	s.applyStaged()

	summary, err := s.pop.Evolve()
	if err != nil {
		return err
	}
	stats := s.history.Record(tracking.Sample{
		Generation: summary.Generation,
		MoveBudget: summary.MoveBudget,
		Scores:     summary.Scores,
		Reached:    summary.Reached,
		Solved:     summary.SolutionFound,
		MinStep:    summary.MinStep,
	})

	if s.pop.Generation()%s.cfg.Population.GrowEvery == 0 {
		s.pop.GrowMoveBudget(s.cfg.Population.GrowBy)
	}
	s.arena.Reset()
	s.tick = 0

	log.Printf("gen %d: moves=%d best=%.4f mean=%.4f sd=%.4f reached=%d solved=%v min_step=%d",
		stats.Generation, stats.MoveBudget, stats.Best, stats.Mean, stats.StdDev,
		stats.Reached, stats.Solved, stats.MinStep)

	report := Report{Summary: summary, Stats: stats}
	for _, fn := range s.hooks {
		fn(report)
	}
	return nil
}

// applyStaged promotes tuned settings; the population applies its own share
// inside Evolve
func (s *Simulation) applyStaged() {
	if s.staged.Population == s.cfg.Population {
		return
	}
	s.cfg.Population = s.staged.Population
	log.Printf("tuning applied: size=%d mutation=%g grow_by=%d grow_every=%d",
		s.cfg.Population.Size, s.cfg.Population.MutationRate,
		s.cfg.Population.GrowBy, s.cfg.Population.GrowEvery)
}

// Tune stages a new configuration. Population settings and the budget cadence
// take effect at the next evolve; speed only changes ticks per frame and
// applies immediately. Level, seed and metric cannot change mid-run.
func (s *Simulation) Tune(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Seed != s.cfg.Seed || cfg.Level != s.cfg.Level || cfg.Simulation.DistanceMetric != s.cfg.Simulation.DistanceMetric {
		return fmt.Errorf("%w: seed, level and distance metric are fixed for a run", config.ErrInvalid)
	}
	if cfg.Population.InitialMoves != s.cfg.Population.InitialMoves {
		return fmt.Errorf("%w: initial moves are fixed for a run", config.ErrInvalid)
	}
	if err := s.pop.Configure(cfg.PopulationSettings()); err != nil {
		return err
	}
	s.staged = cfg
	s.cfg.Simulation.Speed = cfg.Simulation.Speed
	s.cfg.Simulation.FrameMs = cfg.Simulation.FrameMs
	return nil
}

// Knob identifies one tunable setting
type Knob int

const (
	KnobPopulation Knob = iota
	KnobMutation
	KnobSpeed
	KnobGrowBy
	KnobGrowEvery
)

// Adjust steps one knob within its bounds and stages the result
func (s *Simulation) Adjust(k Knob, dir int) error {
	cfg := s.staged
	switch k {
	case KnobPopulation:
		cfg.Population.Size = config.StepPopulation(cfg.Population.Size, dir)
		cfg.Population.EliteCount = min(cfg.Population.EliteCount, cfg.Population.Size)
	case KnobMutation:
		cfg.Population.MutationRate = config.StepMutation(cfg.Population.MutationRate, dir)
	case KnobSpeed:
		cfg.Simulation.Speed = config.StepSpeed(cfg.Simulation.Speed, dir)
	case KnobGrowBy:
		cfg.Population.GrowBy = config.StepGrowBy(cfg.Population.GrowBy, dir)
	case KnobGrowEvery:
		cfg.Population.GrowEvery = config.StepGrowEvery(cfg.Population.GrowEvery, dir)
	default:
		return fmt.Errorf("engine: unknown knob %d", k)
	}
	return s.Tune(cfg)
}

// StartReplay begins replaying archived generations from index from.
// The live run is frozen until StopReplay or the replay finishes.
func (s *Simulation) StartReplay(from int) error {
	r, err := population.NewReplay(s.pop.Archive(), s.arena, s.world.Start(), from)
	if err != nil {
		return err
	}
	s.replay = r
	s.linger = 0
	log.Printf("replay started at generation %d", from)
	return nil
}

// StopReplay returns to the live run
func (s *Simulation) StopReplay() error {
	if s.replay == nil {
		return ErrNoReplay
	}
	s.replay = nil
	log.Printf("replay stopped")
	return nil
}

func (s *Simulation) Replaying() bool { return s.replay != nil }

func (s *Simulation) replayFrame() {
	for i := 0; i < s.cfg.Simulation.Speed && s.replay != nil; i++ {
		if s.replay.Agent().Terminal() {
			// Hold the finished agent on screen before loading the next one
			if s.linger++; s.linger < parameter.SimReplayLingerFrames {
				return
			}
			s.linger = 0
		}
		if !s.replay.Step() {
			s.replay = nil
			log.Printf("replay finished")
		}
	}
}

func (s *Simulation) World() *maze.World                 { return s.world }
func (s *Simulation) Arena() *maze.Arena                 { return s.arena }
func (s *Simulation) Population() *population.Population { return s.pop }
func (s *Simulation) History() *tracking.History         { return s.history }
func (s *Simulation) Config() config.Config              { return s.cfg }
func (s *Simulation) Staged() config.Config              { return s.staged }
func (s *Simulation) Tick() int                          { return s.tick }
