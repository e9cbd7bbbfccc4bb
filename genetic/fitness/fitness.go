package fitness

import (
	"math"

	"github.com/lixenwraith/maze-runner/parameter"
)

// Outcome is the terminal result of one agent run
type Outcome struct {
	Reached  bool
	Steps    int     // steps to goal, meaningful when Reached
	Distance float64 // distance to goal at death, meaningful when !Reached
}

// Score maps an outcome onto two tiers:
//
//	reached: 1 + GAGoalReward / steps^2  (> 1, fewer steps strictly better)
//	dead:    (1 / (1 + distance))^2      (in (0, 1], closer strictly better)
//
// Every reached outcome outranks every dead one.
func Score(o Outcome) float64 {
	if o.Reached {
		steps := float64(max(o.Steps, 1))
		return 1 + parameter.GAGoalReward/(steps*steps)
	}
	closeness := NormalizeInverse(1)(math.Max(o.Distance, 0))
	return closeness * closeness
}

// Better reports whether a strictly outranks b under the ordering contract,
// without going through the numeric score
func Better(a, b Outcome) bool {
	switch {
	case a.Reached && !b.Reached:
		return true
	case !a.Reached && b.Reached:
		return false
	case a.Reached:
		return a.Steps < b.Steps
	default:
		return a.Distance < b.Distance
	}
}

// NormalizeFunc converts a raw metric to a 0-1 score
type NormalizeFunc func(raw float64) float64

// NormalizeInverse creates an inverse normalizer: 1 / (1 + raw/scale)
func NormalizeInverse(scale float64) NormalizeFunc {
	if scale <= 0 {
		scale = 1
	}
	return func(raw float64) float64 {
		return 1.0 / (1.0 + raw/scale)
	}
}
