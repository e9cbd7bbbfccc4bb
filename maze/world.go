package maze

import (
	"errors"
	"fmt"
	"math"
)

// Edge flags mark the open neighbours of a wall tile, used for outlines
type Edge uint8

const (
	EdgeNorth Edge = 1 << iota
	EdgeEast
	EdgeSouth
	EdgeWest
)

// Tile is one grid cell of the world
type Tile struct {
	X, Y      int
	Blocked   bool
	Goal      bool
	SafeStart bool
	Outline   Edge
}

var (
	ErrNoGoal       = errors.New("maze: world has no goal tile")
	ErrInvalidStart = errors.New("maze: start must be an open safe tile")
)

// World is the immutable maze: tiles, goal and safe regions, patrol routes.
// Out-of-bounds cells behave as blocked.
type World struct {
	width, height int
	tiles         []Tile
	start         Point
	goals         []Point
	centroidX     float64
	centroidY     float64
	patrols       []PatrolSpec
}

func (w *World) Width() int   { return w.width }
func (w *World) Height() int  { return w.height }
func (w *World) Start() Point { return w.start }

// InBounds reports whether p lies on the grid
func (w *World) InBounds(p Point) bool {
	return p.X >= 0 && p.X < w.width && p.Y >= 0 && p.Y < w.height
}

// Tile returns a copy of the tile at p
func (w *World) Tile(p Point) (Tile, bool) {
	if !w.InBounds(p) {
		return Tile{}, false
	}
	return w.tiles[p.Y*w.width+p.X], true
}

func (w *World) IsBlocked(p Point) bool {
	if !w.InBounds(p) {
		return true
	}
	return w.tiles[p.Y*w.width+p.X].Blocked
}

func (w *World) IsGoal(p Point) bool {
	return w.InBounds(p) && w.tiles[p.Y*w.width+p.X].Goal
}

func (w *World) IsSafeStart(p Point) bool {
	return w.InBounds(p) && w.tiles[p.Y*w.width+p.X].SafeStart
}

// GoalCells returns the goal tiles in row-major order
func (w *World) GoalCells() []Point {
	return append([]Point(nil), w.goals...)
}

// GoalCentroid returns the mean position of all goal tiles
func (w *World) GoalCentroid() (float64, float64) {
	return w.centroidX, w.centroidY
}

// EuclideanToGoal returns the straight-line distance from p to the goal centroid
func (w *World) EuclideanToGoal(p Point) float64 {
	return math.Hypot(float64(p.X)-w.centroidX, float64(p.Y)-w.centroidY)
}

// PatrolSpecs returns the initial patrol definitions
func (w *World) PatrolSpecs() []PatrolSpec {
	return append([]PatrolSpec(nil), w.patrols...)
}

// Layout is the mutable builder for a World
type Layout struct {
	Width, Height int
	Start         Point

	tiles   []Tile
	patrols []PatrolSpec
}

// NewLayout creates a width x height layout, every tile walled when filled is true
func NewLayout(width, height int, filled bool) *Layout {
	l := &Layout{Width: width, Height: height, tiles: make([]Tile, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l.tiles[y*width+x] = Tile{X: x, Y: y, Blocked: filled}
		}
	}
	return l
}

func (l *Layout) at(p Point) *Tile {
	if p.X < 0 || p.X >= l.Width || p.Y < 0 || p.Y >= l.Height {
		return nil
	}
	return &l.tiles[p.Y*l.Width+p.X]
}

// SetBlocked marks p as wall or passage
func (l *Layout) SetBlocked(p Point, blocked bool) {
	if t := l.at(p); t != nil {
		t.Blocked = blocked
	}
}

// ClearArea opens every tile in the inclusive rectangle
func (l *Layout) ClearArea(minX, minY, maxX, maxY int) {
	l.eachIn(minX, minY, maxX, maxY, func(t *Tile) { t.Blocked = false })
}

// MarkGoal opens the rectangle and flags it as goal
func (l *Layout) MarkGoal(minX, minY, maxX, maxY int) {
	l.eachIn(minX, minY, maxX, maxY, func(t *Tile) {
		t.Blocked = false
		t.Goal = true
	})
}

// MarkSafe opens the rectangle and flags it as safe start area
func (l *Layout) MarkSafe(minX, minY, maxX, maxY int) {
	l.eachIn(minX, minY, maxX, maxY, func(t *Tile) {
		t.Blocked = false
		t.SafeStart = true
	})
}

// AddPatrol registers a patrol route
func (l *Layout) AddPatrol(spec PatrolSpec) {
	l.patrols = append(l.patrols, spec)
}

func (l *Layout) eachIn(minX, minY, maxX, maxY int, fn func(*Tile)) {
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if t := l.at(Point{x, y}); t != nil {
				fn(t)
			}
		}
	}
}

// Build validates the layout and freezes it into a World
func (l *Layout) Build() (*World, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("maze: invalid dimensions %dx%d", l.Width, l.Height)
	}
	start := l.at(l.Start)
	if start == nil || start.Blocked || !start.SafeStart {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidStart, l.Start.X, l.Start.Y)
	}
	for i, p := range l.patrols {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("maze: patrol %d: %w", i, err)
		}
	}

	w := &World{
		width:   l.Width,
		height:  l.Height,
		tiles:   append([]Tile(nil), l.tiles...),
		start:   l.Start,
		patrols: append([]PatrolSpec(nil), l.patrols...),
	}

	var sumX, sumY float64
	for i := range w.tiles {
		t := &w.tiles[i]
		if t.Goal {
			w.goals = append(w.goals, Point{t.X, t.Y})
			sumX += float64(t.X)
			sumY += float64(t.Y)
		}
		if t.Blocked {
			t.Outline = w.outline(Point{t.X, t.Y})
		}
	}
	if len(w.goals) == 0 {
		return nil, ErrNoGoal
	}
	w.centroidX = sumX / float64(len(w.goals))
	w.centroidY = sumY / float64(len(w.goals))

	return w, nil
}

// outline flags in-bounds open neighbours; the grid edge never gets one
func (w *World) outline(p Point) Edge {
	var e Edge
	open := func(q Point) bool { return w.InBounds(q) && !w.tiles[q.Y*w.width+q.X].Blocked }
	if open(p.Add(0, -1)) {
		e |= EdgeNorth
	}
	if open(p.Add(1, 0)) {
		e |= EdgeEast
	}
	if open(p.Add(0, 1)) {
		e |= EdgeSouth
	}
	if open(p.Add(-1, 0)) {
		e |= EdgeWest
	}
	return e
}
