package population

import (
	"fmt"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/maze"
)

// Replay re-runs archived genomes in order, each on freshly reset obstacles.
// It works on its own arena clone and never writes to the archive.
type Replay struct {
	archive *Archive
	arena   *maze.Arena
	start   maze.Point

	index int
	tick  int
	agent *agent.Agent
	done  bool
}

// NewReplay starts at archive index from; the arena is cloned, not shared
func NewReplay(archive *Archive, arena *maze.Arena, start maze.Point, from int) (*Replay, error) {
	r := &Replay{archive: archive, arena: arena.Clone(), start: start}
	if err := r.load(from); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return r, nil
}

func (r *Replay) load(index int) error {
	g, err := r.archive.GenomeAt(index)
	if err != nil {
		return err
	}
	r.index = index
	r.tick = 0
	r.agent = agent.New(g, r.start)
	r.arena.Reset()
	return nil
}

// Step advances the current agent one tick. Once it is terminal, the next
// Step loads the following generation; past the last one the replay is done.
// Returns false when done.
func (r *Replay) Step() bool {
	if r.done {
		return false
	}
	if r.agent.Terminal() {
		if r.index+1 >= r.archive.Count() {
			r.done = true
			return false
		}
		// Bounds were checked above
		_ = r.load(r.index + 1)
		return true
	}
	r.tick++
	r.arena.Advance()
	r.agent.Update(r.arena, r.tick)
	return true
}

// RunCurrent steps the current agent until it is terminal
func (r *Replay) RunCurrent() *agent.Agent {
	for !r.done && !r.agent.Terminal() {
		r.Step()
	}
	return r.agent
}

func (r *Replay) Index() int          { return r.index }
func (r *Replay) Tick() int           { return r.tick }
func (r *Replay) Done() bool          { return r.done }
func (r *Replay) Agent() *agent.Agent { return r.agent }
func (r *Replay) Arena() *maze.Arena  { return r.arena }

// Entry returns the archive record being replayed
func (r *Replay) Entry() Entry {
	e, _ := r.archive.EntryAt(r.index)
	return e
}
