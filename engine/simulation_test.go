package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/lixenwraith/maze-runner/config"
	"github.com/lixenwraith/maze-runner/population"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 17
	cfg.Population.Size = 60
	cfg.Population.InitialMoves = 4
	cfg.Population.GrowBy = 3
	cfg.Population.GrowEvery = 2
	return cfg
}

func newSim(t *testing.T, cfg config.Config) *Simulation {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return s
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Population.Size = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
}

func TestRunGenerations_Deterministic(t *testing.T) {
	run := func() *Simulation {
		s := newSim(t, testConfig())
		if err := s.RunGenerations(context.Background(), 6); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return s
	}
	a, b := run(), run()

	ea, eb := a.History().Entries(), b.History().Entries()
	if len(ea) != 6 || len(eb) != 6 {
		t.Fatalf("expected 6 entries, got %d and %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("generation %d diverged: %+v vs %+v", i, ea[i], eb[i])
		}
	}
	for i := 0; i < a.Population().Archive().Count(); i++ {
		ga, _ := a.Population().Archive().GenomeAt(i)
		gb, _ := b.Population().Archive().GenomeAt(i)
		if !ga.Equal(gb) {
			t.Fatalf("archive entry %d diverged", i)
		}
	}
}

func TestRunGenerations_BudgetCadence(t *testing.T) {
	s := newSim(t, testConfig())
	if err := s.RunGenerations(context.Background(), 5); err != nil {
		t.Fatal(err)
	}

	// Growth after generations 2 and 4 complete
	want := []int{4, 4, 7, 7, 10}
	for i, e := range s.History().Entries() {
		if e.MoveBudget != want[i] {
			t.Errorf("generation %d: expected budget %d, got %d", i, want[i], e.MoveBudget)
		}
		g, _ := s.Population().Archive().GenomeAt(i)
		if g.Len() != want[i] {
			t.Errorf("generation %d: expected archived genome of %d moves, got %d", i, want[i], g.Len())
		}
	}
	if s.Population().CurrentMoves() != 10 {
		t.Errorf("expected 10 moves in generation 5, got %d", s.Population().CurrentMoves())
	}
}

func TestRunGenerations_Cancelled(t *testing.T) {
	s := newSim(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.RunGenerations(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOnGeneration_Hooks(t *testing.T) {
	s := newSim(t, testConfig())
	var got []int
	s.OnGeneration(func(r Report) { got = append(got, r.Summary.Generation) })
	if err := s.RunGenerations(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("expected hooks for generations 0..2, got %v", got)
	}
}

func TestFrame_SpeedAndEvolve(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.Speed = 2
	s := newSim(t, cfg)

	// 4 moves exhaust on tick 5, so three frames always finish generation 0
	for i := 0; i < 3; i++ {
		if err := s.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if s.Population().Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", s.Population().Generation())
	}
	if s.Tick() != 0 {
		t.Errorf("expected tick reset after evolve, got %d", s.Tick())
	}
}

func TestAdjust_StagedUntilEvolve(t *testing.T) {
	s := newSim(t, testConfig())

	if err := s.Adjust(KnobPopulation, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Adjust(KnobMutation, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Adjust(KnobSpeed, 1); err != nil {
		t.Fatal(err)
	}

	v := s.View()
	if v.PopulationSize != 160 || v.MutationRate != 0.02 || v.Speed != 2 {
		t.Errorf("view must show staged values, got size=%d rate=%v speed=%d", v.PopulationSize, v.MutationRate, v.Speed)
	}
	if s.Population().Size() != 60 || s.Config().Population.MutationRate != 0.01 {
		t.Error("population settings must wait for the next evolve")
	}
	if s.Config().Simulation.Speed != 2 {
		t.Error("speed applies immediately")
	}

	if err := s.RunGenerations(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if s.Population().Size() != 160 || s.Config().Population.MutationRate != 0.02 {
		t.Errorf("expected size 160 rate 0.02, got %d %v", s.Population().Size(), s.Config().Population.MutationRate)
	}
}

func TestTune_RejectsFixedSettings(t *testing.T) {
	s := newSim(t, testConfig())

	cfg := s.Staged()
	cfg.Seed++
	if err := s.Tune(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid for seed change, got %v", err)
	}

	cfg = s.Staged()
	cfg.Population.MutationRate = 0.9
	if err := s.Tune(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid for mutation rate, got %v", err)
	}
}

func TestReplay_LeavesLiveRunUntouched(t *testing.T) {
	s := newSim(t, testConfig())

	if err := s.StartReplay(0); !errors.Is(err, population.ErrArchiveIndex) {
		t.Errorf("expected ErrArchiveIndex on empty archive, got %v", err)
	}
	if err := s.StopReplay(); !errors.Is(err, ErrNoReplay) {
		t.Errorf("expected ErrNoReplay, got %v", err)
	}

	if err := s.RunGenerations(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	// Advance the live run into generation 3
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}

	before := s.View()
	if err := s.StartReplay(1); err != nil {
		t.Fatalf("start replay: %v", err)
	}
	v := s.View()
	if v.Replay == nil || v.Replay.Generation != 1 || len(v.Agents) != 1 {
		t.Fatalf("unexpected replay view %+v", v.Replay)
	}

	for frames := 0; s.Replaying(); frames++ {
		if frames > 10000 {
			t.Fatal("replay did not finish")
		}
		if err := s.Frame(); err != nil {
			t.Fatal(err)
		}
	}

	after := s.View()
	if after.Generation != before.Generation || after.Tick != before.Tick {
		t.Errorf("live run moved during replay: gen %d->%d tick %d->%d",
			before.Generation, after.Generation, before.Tick, after.Tick)
	}
	for i := range before.Patrols {
		if before.Patrols[i] != after.Patrols[i] {
			t.Errorf("patrol %d moved during replay", i)
		}
	}
	for i := range before.Agents {
		if before.Agents[i] != after.Agents[i] {
			t.Fatalf("agent %d changed during replay", i)
		}
	}
	if s.Population().Archive().Count() != 3 {
		t.Errorf("expected archive of 3, got %d", s.Population().Archive().Count())
	}
}
