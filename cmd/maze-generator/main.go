package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
)

func main() {
	seed := flag.Int64("seed", parameter.LevelSeed, "back-tracker seed")
	raw := flag.Bool("raw", false, "print the bare back-tracker maze instead of the level")
	width := flag.Int("width", 21, "raw maze width (odd)")
	height := flag.Int("height", 9, "raw maze height (odd)")
	flag.Parse()

	if *raw {
		startT := time.Now()
		res := maze.Generate(maze.Config{Width: *width, Height: *height, Seed: *seed})
		fmt.Printf("Generated %dx%d in %v\n", len(res.Grid[0]), len(res.Grid), time.Since(startT))
		if res.SolutionPath != nil {
			fmt.Printf("Solution Path Length: %d steps\n", len(res.SolutionPath))
		} else {
			fmt.Println("Status: Unsolvable (Isolated Start/End)")
		}
		drawRaw(os.Stdout, res)
		return
	}

	cfg := maze.DefaultLevelConfig()
	cfg.Seed = *seed
	world, err := maze.BuildLevel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build level: %v\n", err)
		os.Exit(1)
	}
	field := maze.NewDistanceField(world)
	if d, ok := field.At(world.Start()); ok {
		fmt.Printf("Level %dx%d, start %v, path distance to goal %.1f\n", world.Width(), world.Height(), world.Start(), d)
	} else {
		fmt.Printf("Level %dx%d, start %v, goal unreachable\n", world.Width(), world.Height(), world.Start())
	}
	drawLevel(os.Stdout, world, field)
}

func drawRaw(w io.Writer, res maze.Result) {
	pathMap := make(map[maze.Point]bool)
	for _, p := range res.SolutionPath {
		pathMap[p] = true
	}

	for y, row := range res.Grid {
		for x, isWall := range row {
			p := maze.Point{X: x, Y: y}
			switch {
			case p == res.Start:
				fmt.Fprint(w, "S")
			case p == res.End:
				fmt.Fprint(w, "E")
			case isWall:
				fmt.Fprint(w, "█")
			case pathMap[p]:
				fmt.Fprint(w, "•")
			default:
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}

// drawLevel marks the shortest route from the start by descending the distance field
func drawLevel(w io.Writer, world *maze.World, field *maze.DistanceField) {
	route := make(map[maze.Point]bool)
	for p := world.Start(); !world.IsGoal(p); {
		d, ok := field.At(p)
		if !ok {
			break
		}
		next, best := p, d
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				q := p.Add(dx, dy)
				if dq, ok := field.At(q); ok && dq < best-1e-9 {
					next, best = q, dq
				}
			}
		}
		if next == p {
			break
		}
		route[next] = true
		p = next
	}

	patrolRows := make(map[int]bool)
	for _, spec := range world.PatrolSpecs() {
		patrolRows[spec.From.Y] = true
	}

	for y := 0; y < world.Height(); y++ {
		for x := 0; x < world.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			switch {
			case p == world.Start():
				fmt.Fprint(w, "S")
			case world.IsBlocked(p):
				fmt.Fprint(w, "█")
			case world.IsGoal(p):
				fmt.Fprint(w, "G")
			case route[p]:
				fmt.Fprint(w, "•")
			case patrolRows[y] && !world.IsSafeStart(p):
				fmt.Fprint(w, "-")
			default:
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
