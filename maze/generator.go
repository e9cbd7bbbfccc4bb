package maze

import (
	"math/rand"
	"time"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

type Config struct {
	Width, Height int

	StartPos *Point // Optional (nil = Automatic)
	EndPos   *Point // Optional (nil = Automatic)
	Seed     int64  // Optional (0 = Random)
}

type Result struct {
	Grid         [][]bool
	Start, End   Point
	SolutionPath []Point
}

// Generate carves a perfect maze with a recursive back-tracker.
// Passages sit on odd coordinates; the outer ring stays walled.
func Generate(cfg Config) Result {
	// Round DOWN to the nearest odd number to stay within requested bounds
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
		for j := range grid[i] {
			grid[i][j] = Wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := resolvePoint(rows, cols, cfg.StartPos, 1, 1)
	end := resolvePoint(rows, cols, cfg.EndPos, cols-2, rows-2)

	recursiveBacktracker(grid, start, rng)

	grid[start.Y][start.X] = Passage
	grid[end.Y][end.X] = Passage

	return Result{
		Grid:         grid,
		Start:        start,
		End:          end,
		SolutionPath: solveBFS(grid, start, end),
	}
}

func recursiveBacktracker(grid [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	if start.X < 0 || start.X >= cols || start.Y < 0 || start.Y >= rows {
		start = Point{1, 1}
	}

	stack := []Point{start}
	grid[start.Y][start.X] = Passage

	dirs := []Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Leave 1 cell border for walls
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		grid[curr.Y+d.Y/2][curr.X+d.X/2] = Passage
		next := Point{curr.X + d.X, curr.Y + d.Y}
		grid[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

// --- Helpers ---

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func resolvePoint(h, w int, p *Point, defX, defY int) Point {
	if p == nil {
		return Point{defX, defY}
	}
	return Point{min(max(p.X, 0), w-1), min(max(p.Y, 0), h-1)}
}

func solveBFS(grid [][]bool, start, end Point) []Point {
	rows, cols := len(grid), len(grid[0])
	inside := func(p Point) bool { return p.X >= 0 && p.X < cols && p.Y >= 0 && p.Y < rows }
	if !inside(start) || !inside(end) {
		return nil
	}
	if grid[start.Y][start.X] == Wall || grid[end.Y][end.X] == Wall {
		return nil
	}

	queue := []Point{start}
	cameFrom := map[Point]Point{}
	visited := map[Point]bool{start: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			path := []Point{}
			for curr != start {
				path = append([]Point{curr}, path...)
				curr = cameFrom[curr]
			}
			return append([]Point{start}, path...)
		}

		for _, d := range cardinals {
			next := curr.Add(d.X, d.Y)
			if inside(next) && grid[next.Y][next.X] == Passage && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

var cardinals = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
