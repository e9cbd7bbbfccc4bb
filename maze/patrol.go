package maze

import (
	"errors"

	"github.com/lixenwraith/maze-runner/parameter"
	"github.com/lixenwraith/maze-runner/vmath"
)

// PatrolSpec defines a dot sweeping back and forth between two cells on one axis.
// The dot starts at From moving by Dir (+1 toward the larger coordinate, -1 toward the smaller).
type PatrolSpec struct {
	From, To Point
	Dir      int
	Speed    float64 // cells per tick
}

func (s PatrolSpec) validate() error {
	if (s.From.X == s.To.X) == (s.From.Y == s.To.Y) {
		return errors.New("endpoints must differ on exactly one axis")
	}
	if s.Dir != 1 && s.Dir != -1 {
		return errors.New("direction must be +1 or -1")
	}
	if s.Speed <= 0 {
		return errors.New("speed must be positive")
	}
	return nil
}

// Patrol is the live state of one moving obstacle, positions in Q32.32
type Patrol struct {
	spec       PatrolSpec
	horizontal bool
	x, y       int64
	lo, hi     int64
	speed      int64
	dir        int
}

// NewPatrol places a patrol at its initial state
func NewPatrol(spec PatrolSpec) Patrol {
	p := Patrol{
		spec:       spec,
		horizontal: spec.From.Y == spec.To.Y,
		speed:      vmath.FromFloat(spec.Speed),
	}
	if p.horizontal {
		p.lo, p.hi = vmath.FromInt(min(spec.From.X, spec.To.X)), vmath.FromInt(max(spec.From.X, spec.To.X))
	} else {
		p.lo, p.hi = vmath.FromInt(min(spec.From.Y, spec.To.Y)), vmath.FromInt(max(spec.From.Y, spec.To.Y))
	}
	p.Reset()
	return p
}

// Reset returns the patrol to its starting cell and direction
func (p *Patrol) Reset() {
	p.x = vmath.FromInt(p.spec.From.X)
	p.y = vmath.FromInt(p.spec.From.Y)
	p.dir = p.spec.Dir
}

// Advance moves one tick along the axis, reversing at either endpoint
func (p *Patrol) Advance() {
	axis := &p.y
	if p.horizontal {
		axis = &p.x
	}
	next := *axis + int64(p.dir)*p.speed
	switch {
	case next >= p.hi:
		next = p.hi
		p.dir = -1
	case next <= p.lo:
		next = p.lo
		p.dir = 1
	}
	*axis = next
}

// Overlaps reports whether the dot touches cell c
func (p *Patrol) Overlaps(c Point) bool {
	reach := vmath.FromFloat(parameter.PatrolReach)
	return vmath.Within(p.x, vmath.FromInt(c.X), reach) && vmath.Within(p.y, vmath.FromInt(c.Y), reach)
}

// Position returns the dot centre in cell units
func (p *Patrol) Position() (float64, float64) {
	return vmath.ToFloat(p.x), vmath.ToFloat(p.y)
}

// Cell returns the cell nearest to the dot centre
func (p *Patrol) Cell() Point {
	return Point{vmath.Round(p.x), vmath.Round(p.y)}
}

// Dir returns the current travel direction
func (p *Patrol) Dir() int { return p.dir }
