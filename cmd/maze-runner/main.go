package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/maze-runner/audio"
	"github.com/lixenwraith/maze-runner/config"
	"github.com/lixenwraith/maze-runner/engine"
	"github.com/lixenwraith/maze-runner/render"
)

type options struct {
	configPath  string
	seed        uint64
	speed       int
	metric      string
	headless    bool
	generations int
	plotPath    string
	sound       bool
	logPath     string
}

func parseFlags(fs *flag.FlagSet, args []string) (options, map[string]bool, error) {
	var o options
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (overrides config)")
	fs.IntVar(&o.speed, "speed", 0, "ticks per frame, 1-5 (overrides config)")
	fs.StringVar(&o.metric, "metric", "", "distance metric: euclidean, path (overrides config)")
	fs.BoolVar(&o.headless, "headless", false, "run without a terminal UI")
	fs.IntVar(&o.generations, "generations", 100, "generations to run in headless mode")
	fs.StringVar(&o.plotPath, "plot", "", "write a fitness chart to this file on exit")
	fs.BoolVar(&o.sound, "sound", false, "play cues on new step records")
	fs.StringVar(&o.logPath, "log", "maze-runner.log", "log file for interactive mode, empty disables")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// loadConfig layers defaults, the optional file and explicitly set flags
func loadConfig(o options, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if set["seed"] {
		cfg.Seed = o.seed
	}
	if set["speed"] {
		cfg.Simulation.Speed = o.speed
	}
	if set["metric"] {
		cfg.Simulation.DistanceMetric = o.metric
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	o, set, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(o, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.NewString()[:8]
	if o.headless {
		log.SetOutput(os.Stderr)
		log.SetPrefix("[" + runID + "] ")
	} else {
		logFile, err := setupLogging(o.logPath, runID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
			os.Exit(1)
		}
		if logFile != nil {
			defer logFile.Close()
		}
	}
	log.Printf("run %s: seed=%d population=%d mutation=%g moves=%d metric=%s",
		runID, cfg.Seed, cfg.Population.Size, cfg.Population.MutationRate,
		cfg.Population.InitialMoves, cfg.Simulation.DistanceMetric)

	sim, err := engine.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start simulation: %v\n", err)
		os.Exit(1)
	}

	if o.sound {
		cues := audio.NewCuePlayer()
		if err := cues.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer cues.Cleanup()
			sim.OnGeneration(cueHook(cues))
		}
	}

	if o.headless {
		err = runHeadless(sim, o.generations)
	} else {
		err = runInteractive(sim, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
	}

	if o.plotPath != "" && sim.History().Len() > 0 {
		if err := sim.History().Plot(o.plotPath, "maze-runner "+runID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write chart: %v\n", err)
		} else {
			log.Printf("chart written to %s", o.plotPath)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// cueHook plays the solved arpeggio once, then a chirp on every improvement
func cueHook(cues *audio.CuePlayer) func(engine.Report) {
	solved := false
	return func(r engine.Report) {
		if !r.Summary.NewRecord {
			return
		}
		if !solved {
			solved = true
			cues.PlaySolved()
			return
		}
		cues.PlayRecord()
	}
}

func runHeadless(sim *engine.Simulation, generations int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	err := sim.RunGenerations(ctx, generations)
	elapsed := time.Since(start)

	pop := sim.Population()
	fmt.Printf("generations: %d in %v\n", pop.Generation(), elapsed.Round(time.Millisecond))
	if steps, ok := pop.MinStep(); ok {
		fmt.Printf("solved: wins in %d moves\n", steps)
	} else {
		fmt.Println("solved: no")
	}
	if _, best, ok := pop.Best(); ok {
		fmt.Printf("best fitness: %.4f\n", best)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runInteractive(sim *engine.Simulation, cfg config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	// Panic Recovery: restore the terminal before reporting the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMAZE-RUNNER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	renderer := render.New(screen)

	ticker := time.NewTicker(time.Duration(cfg.Simulation.FrameMs) * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				running, err := render.Apply(sim, render.HandleKey(ev))
				if err != nil {
					log.Printf("key %q: %v", ev.Rune(), err)
				}
				if !running {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			if err := sim.Frame(); err != nil {
				return err
			}
			renderer.Draw(sim.View())
		}
	}
}
