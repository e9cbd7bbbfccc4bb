package maze

import "fmt"

// Metric selects how distance-to-goal is measured for fitness
type Metric int

const (
	MetricEuclidean Metric = iota // straight line to the goal centroid
	MetricPath                    // weighted 8-connected path to the nearest goal tile
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricPath:
		return "path"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric maps a config name to a Metric
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "euclidean":
		return MetricEuclidean, nil
	case "path":
		return MetricPath, nil
	default:
		return 0, fmt.Errorf("maze: unknown distance metric %q", s)
	}
}

// Arena pairs the static world with the live patrol obstacles.
// Patrols advance once per tick through Advance, never through agent queries,
// so every agent in a tick sees the same snapshot.
type Arena struct {
	world   *World
	metric  Metric
	field   *DistanceField
	patrols []Patrol
}

// NewArena instantiates the world's patrols at their initial state
func NewArena(w *World, metric Metric) *Arena {
	a := &Arena{world: w, metric: metric}
	if metric == MetricPath {
		a.field = NewDistanceField(w)
	}
	for _, spec := range w.patrols {
		a.patrols = append(a.patrols, NewPatrol(spec))
	}
	return a
}

func (a *Arena) World() *World     { return a.world }
func (a *Arena) Metric() Metric    { return a.metric }
func (a *Arena) Patrols() []Patrol { return a.patrols }

// Advance moves every patrol one tick
func (a *Arena) Advance() {
	for i := range a.patrols {
		a.patrols[i].Advance()
	}
}

// Reset returns every patrol to its initial state
func (a *Arena) Reset() {
	for i := range a.patrols {
		a.patrols[i].Reset()
	}
}

// Clone returns an independent arena sharing the immutable world and distance field
func (a *Arena) Clone() *Arena {
	return &Arena{
		world:   a.world,
		metric:  a.metric,
		field:   a.field,
		patrols: append([]Patrol(nil), a.patrols...),
	}
}

func (a *Arena) IsBlocked(p Point) bool   { return a.world.IsBlocked(p) }
func (a *Arena) IsGoal(p Point) bool      { return a.world.IsGoal(p) }
func (a *Arena) IsSafeStart(p Point) bool { return a.world.IsSafeStart(p) }

// ObstaclesAt reports whether any patrol currently overlaps p
func (a *Arena) ObstaclesAt(p Point) bool {
	for i := range a.patrols {
		if a.patrols[i].Overlaps(p) {
			return true
		}
	}
	return false
}

// DistanceToGoal measures p against the goal region with the arena metric.
// Unreachable cells under the path metric rank behind every reachable one.
func (a *Arena) DistanceToGoal(p Point) float64 {
	if a.metric == MetricPath {
		if d, ok := a.field.At(p); ok {
			return d
		}
		return a.world.EuclideanToGoal(p) + float64(a.world.width*a.world.height)
	}
	return a.world.EuclideanToGoal(p)
}
