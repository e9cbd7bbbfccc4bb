package agent

import (
	"testing"

	"github.com/lixenwraith/maze-runner/genome"
	"github.com/lixenwraith/maze-runner/maze"
)

// corridor builds a 7x3 world:
//
//	#######
//	#S...G#
//	#######
func corridor(t *testing.T) *maze.World {
	t.Helper()
	l := maze.NewLayout(7, 3, true)
	l.MarkSafe(1, 1, 1, 1)
	l.ClearArea(2, 1, 4, 1)
	l.MarkGoal(5, 1, 5, 1)
	l.Start = maze.Point{X: 1, Y: 1}
	w, err := l.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return w
}

var (
	right = genome.Move{DX: 1}
	up    = genome.Move{DY: -1}
	wait  = genome.Move{}
)

func TestUpdate_ImmediateCollision(t *testing.T) {
	w := corridor(t)
	env := maze.NewArena(w, maze.MetricEuclidean)
	a := New(genome.FromMoves(up, right), w.Start())
	before := env.DistanceToGoal(w.Start())

	a.Update(env, 0)

	if a.Status() != Dead || a.Cause() != CauseWall {
		t.Fatalf("expected dead by wall, got %v/%v", a.Status(), a.Cause())
	}
	if _, ok := a.StepsToGoal(); ok {
		t.Error("stepsToGoal must be undefined")
	}
	if d, _ := a.Distance(); d != before {
		t.Errorf("expected pre-move distance %v, got %v", before, d)
	}
	if a.TerminalSince() != 0 {
		t.Errorf("expected terminal since tick 0, got %d", a.TerminalSince())
	}
}

func TestUpdate_TrivialSuccess(t *testing.T) {
	w := corridor(t)
	env := maze.NewArena(w, maze.MetricEuclidean)
	a := New(genome.FromMoves(right, right), maze.Point{X: 4, Y: 1})

	a.Update(env, 0)

	if a.Status() != ReachedGoal {
		t.Fatalf("expected reached goal, got %v", a.Status())
	}
	if steps, ok := a.StepsToGoal(); !ok || steps != 1 {
		t.Errorf("expected stepsToGoal 1, got %d (ok=%v)", steps, ok)
	}
}

func TestUpdate_BudgetExhaustion(t *testing.T) {
	w := corridor(t)
	env := maze.NewArena(w, maze.MetricEuclidean)
	const n = 3
	a := New(genome.FromMoves(wait, wait, wait), w.Start())

	for tick := 1; tick <= n; tick++ {
		a.Update(env, tick)
		if a.Status() != Alive {
			t.Fatalf("tick %d: expected alive, got %v", tick, a.Status())
		}
	}
	a.Update(env, n+1)
	if a.Status() != Dead || a.Cause() != CauseExhausted {
		t.Fatalf("expected exhaustion at tick %d, got %v/%v", n+1, a.Status(), a.Cause())
	}
	if a.TerminalSince() != n+1 {
		t.Errorf("expected terminal since %d, got %d", n+1, a.TerminalSince())
	}
	if d, _ := a.Distance(); d != env.DistanceToGoal(w.Start()) {
		t.Errorf("expected distance at final position, got %v", d)
	}
}

func TestUpdate_TerminalStability(t *testing.T) {
	w := corridor(t)
	env := maze.NewArena(w, maze.MetricEuclidean)
	a := New(genome.FromMoves(up, right, right), w.Start())

	a.Update(env, 0)
	pos, status, steps := a.Position(), a.Status(), a.Steps()
	for tick := 1; tick < 10; tick++ {
		a.Update(env, tick)
	}
	if a.Position() != pos || a.Status() != status || a.Steps() != steps {
		t.Error("terminal agent changed after further updates")
	}
	if a.TerminalSince() != 0 {
		t.Errorf("terminal tick moved to %d", a.TerminalSince())
	}
}

func TestUpdate_ObstacleCollision(t *testing.T) {
	l := maze.NewLayout(7, 3, true)
	l.MarkSafe(1, 1, 1, 1)
	l.ClearArea(2, 1, 4, 1)
	l.MarkGoal(5, 1, 5, 1)
	l.Start = maze.Point{X: 1, Y: 1}
	l.AddPatrol(maze.PatrolSpec{From: maze.Point{X: 3, Y: 0}, To: maze.Point{X: 3, Y: 2}, Dir: 1, Speed: 1})
	w, err := l.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	env := maze.NewArena(w, maze.MetricEuclidean)
	a := New(genome.FromMoves(right, right, right, right), w.Start())

	// Tick 1: patrol moves to (3,1); agent steps to (2,1)
	env.Advance()
	a.Update(env, 1)
	if a.Status() != Alive {
		t.Fatalf("expected alive after first tick, got %v", a.Status())
	}
	// Tick 2: patrol moves to (3,2); agent steps to (3,1), clear of the dot
	env.Advance()
	a.Update(env, 2)
	if a.Status() != Alive {
		t.Fatalf("expected alive after second tick, got %v", a.Status())
	}
	// Tick 3: patrol bounces back to (3,1) as the agent leaves for (4,1)
	env.Advance()
	a.Update(env, 3)
	if a.Status() != Alive {
		t.Fatalf("expected alive after third tick, got %v", a.Status())
	}

	b := New(genome.FromMoves(right, right), w.Start())
	env.Reset()
	env.Advance() // patrol at (3,1)
	b.Update(env, 1)
	env.Advance() // patrol at (3,2)
	env.Advance() // patrol back at (3,1)
	b.Update(env, 2)
	if b.Status() != Dead || b.Cause() != CauseObstacle {
		t.Fatalf("expected dead by obstacle, got %v/%v", b.Status(), b.Cause())
	}
	if d, _ := b.Distance(); d != env.DistanceToGoal(maze.Point{X: 2, Y: 1}) {
		t.Errorf("expected pre-move distance, got %v", d)
	}
}

func TestOutcome(t *testing.T) {
	w := corridor(t)
	env := maze.NewArena(w, maze.MetricEuclidean)

	winner := New(genome.FromMoves(right, right, right, right), w.Start())
	loser := New(genome.FromMoves(up), w.Start())
	for tick := 0; tick < 5; tick++ {
		winner.Update(env, tick)
		loser.Update(env, tick)
	}

	if o := winner.Outcome(); !o.Reached || o.Steps != 4 {
		t.Errorf("unexpected winner outcome %+v", o)
	}
	if winner.Fitness() <= loser.Fitness() {
		t.Errorf("winner %v must outscore loser %v", winner.Fitness(), loser.Fitness())
	}
	if loser.Fitness() <= 0 {
		t.Error("fitness must be positive")
	}
}

func TestSnapshot(t *testing.T) {
	w := corridor(t)
	a := New(genome.FromMoves(right), w.Start())
	s := a.Snapshot()
	if s.Position != w.Start() || s.Status != Alive || s.Since != NoTick {
		t.Errorf("unexpected snapshot %+v", s)
	}
}
