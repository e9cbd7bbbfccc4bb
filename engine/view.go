package engine

import (
	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/maze"
)

// View is a read-only snapshot of everything a renderer draws
type View struct {
	World   *maze.World
	Patrols []PatrolView
	Agents  []agent.Snapshot

	Generation int
	Moves      int // genome length of the live generation
	Tick       int
	Solved     bool
	MinStep    int

	Alive, Dead, Reached int

	// Staged tuning values
	PopulationSize int
	MutationRate   float64
	Speed          int
	GrowBy         int
	GrowEvery      int

	BestFitness float64
	MeanFitness float64
	HasStats    bool

	Replay *ReplayView
}

// PatrolView is a patrol position in cell units
type PatrolView struct {
	X, Y float64
	Dir  int
}

// ReplayView describes the archived run being shown
type ReplayView struct {
	Generation int
	Index      int
	Count      int
	Moves      int
	Tick       int
	Reached    bool
	Steps      int
}

// View captures the current frame. In replay mode patrols and agents come
// from the replay arena and only the replayed agent is listed.
func (s *Simulation) View() View {
	steps, solved := s.pop.MinStep()
	alive, dead, reached := s.pop.Counts()
	v := View{
		World:          s.world,
		Generation:     s.pop.Generation(),
		Moves:          s.pop.CurrentMoves(),
		Tick:           s.tick,
		Solved:         solved,
		MinStep:        steps,
		Alive:          alive,
		Dead:           dead,
		Reached:        reached,
		PopulationSize: s.staged.Population.Size,
		MutationRate:   s.staged.Population.MutationRate,
		Speed:          s.staged.Simulation.Speed,
		GrowBy:         s.staged.Population.GrowBy,
		GrowEvery:      s.staged.Population.GrowEvery,
	}
	if last, ok := s.history.Last(); ok {
		v.BestFitness = last.Best
		v.MeanFitness = last.Mean
		v.HasStats = true
	}

	arena := s.arena
	if s.replay != nil {
		arena = s.replay.Arena()
		entry := s.replay.Entry()
		a := s.replay.Agent()
		v.Agents = []agent.Snapshot{a.Snapshot()}
		v.Replay = &ReplayView{
			Generation: entry.Generation,
			Index:      s.replay.Index(),
			Count:      s.pop.Archive().Count(),
			Moves:      entry.Genome.Len(),
			Tick:       s.replay.Tick(),
			Reached:    entry.Reached,
			Steps:      entry.Steps,
		}
	} else {
		v.Agents = s.pop.Snapshots()
	}

	patrols := arena.Patrols()
	v.Patrols = make([]PatrolView, len(patrols))
	for i := range patrols {
		x, y := patrols[i].Position()
		v.Patrols[i] = PatrolView{X: x, Y: y, Dir: patrols[i].Dir()}
	}
	return v
}
