package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/maze-runner/genome"
	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
	"github.com/lixenwraith/maze-runner/population"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the full run configuration, loadable from TOML
type Config struct {
	Seed       uint64           `toml:"seed"`
	Population PopulationConfig `toml:"population"`
	Simulation SimulationConfig `toml:"simulation"`
	Level      LevelConfig      `toml:"level"`
}

type PopulationConfig struct {
	Size              int     `toml:"size"`
	MutationRate      float64 `toml:"mutation_rate"`
	InitialMoves      int     `toml:"initial_moves"`
	GrowBy            int     `toml:"grow_by"`
	GrowEvery         int     `toml:"grow_every"`
	SelectionExponent float64 `toml:"selection_exponent"`
	Crossover         string  `toml:"crossover"`
	EliteCount        int     `toml:"elite_count"`
}

type SimulationConfig struct {
	Speed          int    `toml:"speed"`
	DistanceMetric string `toml:"distance_metric"`
	FrameMs        int    `toml:"frame_ms"`
}

type LevelConfig struct {
	Seed        int64   `toml:"seed"`
	StartX      int     `toml:"start_x"`
	StartY      int     `toml:"start_y"`
	PatrolSpeed float64 `toml:"patrol_speed"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Seed: 1,
		Population: PopulationConfig{
			Size:              parameter.GAPopulationSize,
			MutationRate:      parameter.GAMutationRate,
			InitialMoves:      parameter.GAInitialMoves,
			GrowBy:            parameter.GAGrowMovesBy,
			GrowEvery:         parameter.GAGrowEvery,
			SelectionExponent: parameter.GASelectionExponent,
			Crossover:         genome.CrossoverSinglePoint,
			EliteCount:        parameter.GAEliteCount,
		},
		Simulation: SimulationConfig{
			Speed:          parameter.SimSpeedDefault,
			DistanceMetric: maze.MetricEuclidean.String(),
			FrameMs:        parameter.SimFrameMs,
		},
		Level: LevelConfig{
			Seed:        parameter.LevelSeed,
			StartX:      parameter.LevelStartX,
			StartY:      parameter.LevelStartY,
			PatrolSpeed: parameter.PatrolSpeed,
		},
	}
}

// Load overlays the TOML file at path on the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its bounds
func (c Config) Validate() error {
	p := c.Population
	switch {
	case p.Size <= 0 || p.Size > parameter.GAPopulationMax:
		return fmt.Errorf("%w: population size %d not in [1, %d]", ErrInvalid, p.Size, parameter.GAPopulationMax)
	case p.MutationRate < parameter.GAMutationRateMin || p.MutationRate > parameter.GAMutationRateMax:
		return fmt.Errorf("%w: mutation rate %v not in [%v, %v]", ErrInvalid, p.MutationRate,
			parameter.GAMutationRateMin, parameter.GAMutationRateMax)
	case p.InitialMoves <= 0:
		return fmt.Errorf("%w: initial moves %d", ErrInvalid, p.InitialMoves)
	case p.GrowBy < parameter.GAGrowMovesByMin || p.GrowBy > parameter.GAGrowMovesByMax:
		return fmt.Errorf("%w: grow_by %d", ErrInvalid, p.GrowBy)
	case p.GrowEvery < parameter.GAGrowEveryMin || p.GrowEvery > parameter.GAGrowEveryMax:
		return fmt.Errorf("%w: grow_every %d", ErrInvalid, p.GrowEvery)
	case p.SelectionExponent <= 0:
		return fmt.Errorf("%w: selection exponent %v", ErrInvalid, p.SelectionExponent)
	case p.EliteCount < 0 || p.EliteCount > min(p.Size, parameter.GAEliteCountMax):
		return fmt.Errorf("%w: elite count %d", ErrInvalid, p.EliteCount)
	}
	if _, err := genome.NewBreeder(p.Crossover); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	s := c.Simulation
	if s.Speed < parameter.SimSpeedMin || s.Speed > parameter.SimSpeedMax {
		return fmt.Errorf("%w: speed %d not in [%d, %d]", ErrInvalid, s.Speed, parameter.SimSpeedMin, parameter.SimSpeedMax)
	}
	if s.FrameMs <= 0 {
		return fmt.Errorf("%w: frame_ms %d", ErrInvalid, s.FrameMs)
	}
	if _, err := maze.ParseMetric(s.DistanceMetric); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if c.Level.PatrolSpeed <= 0 {
		return fmt.Errorf("%w: patrol speed %v", ErrInvalid, c.Level.PatrolSpeed)
	}
	return nil
}

// PopulationSettings converts the population section for population.New
func (c Config) PopulationSettings() population.Config {
	return population.Config{
		Size:              c.Population.Size,
		MutationRate:      c.Population.MutationRate,
		InitialMoves:      c.Population.InitialMoves,
		SelectionExponent: c.Population.SelectionExponent,
		Crossover:         c.Population.Crossover,
		EliteCount:        c.Population.EliteCount,
	}
}

// LevelSettings converts the level section for maze.BuildLevel
func (c Config) LevelSettings() maze.LevelConfig {
	return maze.LevelConfig{
		Seed:        c.Level.Seed,
		Start:       maze.Point{X: c.Level.StartX, Y: c.Level.StartY},
		PatrolSpeed: c.Level.PatrolSpeed,
	}
}

// Metric returns the parsed distance metric; call after Validate
func (c Config) Metric() maze.Metric {
	m, _ := maze.ParseMetric(c.Simulation.DistanceMetric)
	return m
}
