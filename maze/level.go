package maze

import (
	"fmt"

	"github.com/lixenwraith/maze-runner/parameter"
)

// LevelConfig tunes the built-in level
type LevelConfig struct {
	Seed        int64
	Start       Point
	PatrolSpeed float64
}

// DefaultLevelConfig returns the stock level settings
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		Seed:        parameter.LevelSeed,
		Start:       Point{parameter.LevelStartX, parameter.LevelStartY},
		PatrolSpeed: parameter.PatrolSpeed,
	}
}

// BuildLevel carves the built-in 22x10 level: a back-tracker maze with a safe
// area on the left, a goal area on the right, and a patrolled corridor between.
func BuildLevel(cfg LevelConfig) (*World, error) {
	l := NewLayout(parameter.LevelWidth, parameter.LevelHeight, true)

	// Odd-sized inner maze; the extra column and row stay walled
	res := Generate(Config{
		Width:  parameter.LevelWidth - 1,
		Height: parameter.LevelHeight - 1,
		Seed:   cfg.Seed,
	})
	for y, row := range res.Grid {
		for x, wall := range row {
			l.SetBlocked(Point{x, y}, wall)
		}
	}

	l.MarkSafe(parameter.LevelSafeMinX, parameter.LevelSafeMinY, parameter.LevelSafeMaxX, parameter.LevelSafeMaxY)
	l.MarkGoal(parameter.LevelGoalMinX, parameter.LevelGoalMinY, parameter.LevelGoalMaxX, parameter.LevelGoalMaxY)
	l.ClearArea(parameter.LevelCorridorMinX, parameter.LevelCorridorMinY, parameter.LevelCorridorMaxX, parameter.LevelCorridorMaxY)

	// Alternating sweeps through the corridor
	lo, hi := parameter.LevelCorridorMinX, parameter.LevelCorridorMaxX
	for y := parameter.LevelCorridorMinY; y <= parameter.LevelCorridorMaxY; y++ {
		spec := PatrolSpec{From: Point{lo, y}, To: Point{hi, y}, Dir: 1, Speed: cfg.PatrolSpeed}
		if (y-parameter.LevelCorridorMinY)%2 == 1 {
			spec = PatrolSpec{From: Point{hi, y}, To: Point{lo, y}, Dir: -1, Speed: cfg.PatrolSpeed}
		}
		l.AddPatrol(spec)
	}

	l.Start = cfg.Start
	w, err := l.Build()
	if err != nil {
		return nil, fmt.Errorf("build level: %w", err)
	}
	return w, nil
}
