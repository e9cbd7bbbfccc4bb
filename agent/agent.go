package agent

import (
	"github.com/lixenwraith/maze-runner/genetic/fitness"
	"github.com/lixenwraith/maze-runner/genome"
	"github.com/lixenwraith/maze-runner/maze"
)

// Status is the lifecycle state; Dead and ReachedGoal are terminal
type Status uint8

const (
	Alive Status = iota
	Dead
	ReachedGoal
)

func (s Status) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	case ReachedGoal:
		return "reached-goal"
	default:
		return "unknown"
	}
}

// Cause records why an agent died
type Cause uint8

const (
	CauseNone Cause = iota
	CauseWall
	CauseObstacle
	CauseExhausted
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseObstacle:
		return "obstacle"
	case CauseExhausted:
		return "exhausted"
	default:
		return "none"
	}
}

// Environment is the read-only view of the maze an agent queries each tick
type Environment interface {
	IsBlocked(p maze.Point) bool
	IsGoal(p maze.Point) bool
	ObstaclesAt(p maze.Point) bool
	DistanceToGoal(p maze.Point) float64
}

// NoTick marks an agent that has not reached a terminal state
const NoTick = -1

// Agent executes a genome against the maze, one move per tick
type Agent struct {
	genome      genome.Genome
	pos         maze.Point
	vel         genome.Move
	step        int
	status      Status
	cause       Cause
	stepsToGoal int
	distance    float64
	since       int
}

// New places an agent carrying g at start
func New(g genome.Genome, start maze.Point) *Agent {
	return &Agent{genome: g, pos: start, since: NoTick}
}

// Update advances one tick. Terminal agents are left untouched.
//
// A genome of N moves is exhausted on tick N+1: the agent dies in place.
// Otherwise the next move is applied; entering a wall or a patrol kills the
// agent with the distance measured before the move, entering a goal tile
// finishes it with stepsToGoal = moves taken.
func (a *Agent) Update(env Environment, tick int) {
	if a.status != Alive {
		return
	}

	if a.step >= a.genome.Len() {
		a.die(CauseExhausted, env.DistanceToGoal(a.pos), tick)
		return
	}

	mv := a.genome.StepAt(a.step)
	prev := a.pos
	a.vel = mv
	a.pos = prev.Add(int(mv.DX), int(mv.DY))
	a.step++

	switch {
	case env.IsBlocked(a.pos):
		a.die(CauseWall, env.DistanceToGoal(prev), tick)
	case env.ObstaclesAt(a.pos):
		a.die(CauseObstacle, env.DistanceToGoal(prev), tick)
	case env.IsGoal(a.pos):
		a.status = ReachedGoal
		a.stepsToGoal = a.step
		a.distance = 0
		a.since = tick
	}
}

func (a *Agent) die(cause Cause, distance float64, tick int) {
	a.status = Dead
	a.cause = cause
	a.distance = distance
	a.since = tick
}

func (a *Agent) Genome() genome.Genome { return a.genome }
func (a *Agent) Position() maze.Point  { return a.pos }
func (a *Agent) Velocity() genome.Move { return a.vel }
func (a *Agent) Status() Status        { return a.status }
func (a *Agent) Cause() Cause          { return a.cause }
func (a *Agent) Steps() int            { return a.step }

// Terminal reports whether the agent is Dead or ReachedGoal
func (a *Agent) Terminal() bool { return a.status != Alive }

// StepsToGoal returns the moves taken to reach the goal, false if it never did
func (a *Agent) StepsToGoal() (int, bool) {
	return a.stepsToGoal, a.status == ReachedGoal
}

// Distance returns the recorded distance to goal, false while alive
func (a *Agent) Distance() (float64, bool) {
	return a.distance, a.status != Alive
}

// TerminalSince returns the tick the agent became terminal, NoTick while alive.
// Presentation layers derive fade timing from it.
func (a *Agent) TerminalSince() int { return a.since }

// Outcome summarises the run for fitness scoring
func (a *Agent) Outcome() fitness.Outcome {
	return fitness.Outcome{
		Reached:  a.status == ReachedGoal,
		Steps:    a.stepsToGoal,
		Distance: a.distance,
	}
}

// Fitness scores the run; only meaningful once terminal
func (a *Agent) Fitness() float64 {
	return fitness.Score(a.Outcome())
}

// Snapshot is a read-only copy of the agent for renderers
type Snapshot struct {
	Position maze.Point
	Status   Status
	Since    int
	Steps    int
}

func (a *Agent) Snapshot() Snapshot {
	return Snapshot{Position: a.pos, Status: a.status, Since: a.since, Steps: a.step}
}
