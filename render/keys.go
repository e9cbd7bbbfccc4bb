package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-runner/engine"
)

// ActionKind is what a key press asks the driver to do
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionTune
	ActionToggleReplay
	ActionQuit
)

// Action is a decoded key press
type Action struct {
	Kind ActionKind
	Knob engine.Knob
	Dir  int
}

// Lowercase lowers a setting, uppercase raises it
var tuneKeys = map[rune]Action{
	'p': {Kind: ActionTune, Knob: engine.KnobPopulation, Dir: -1},
	'P': {Kind: ActionTune, Knob: engine.KnobPopulation, Dir: 1},
	'm': {Kind: ActionTune, Knob: engine.KnobMutation, Dir: -1},
	'M': {Kind: ActionTune, Knob: engine.KnobMutation, Dir: 1},
	's': {Kind: ActionTune, Knob: engine.KnobSpeed, Dir: -1},
	'S': {Kind: ActionTune, Knob: engine.KnobSpeed, Dir: 1},
	'g': {Kind: ActionTune, Knob: engine.KnobGrowBy, Dir: -1},
	'G': {Kind: ActionTune, Knob: engine.KnobGrowBy, Dir: 1},
	'e': {Kind: ActionTune, Knob: engine.KnobGrowEvery, Dir: -1},
	'E': {Kind: ActionTune, Knob: engine.KnobGrowEvery, Dir: 1},
}

// HandleKey decodes a key event
func HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Kind: ActionQuit}
	case tcell.KeyRune:
	default:
		return Action{}
	}

	switch ch := ev.Rune(); ch {
	case 'q':
		return Action{Kind: ActionQuit}
	case 'r':
		return Action{Kind: ActionToggleReplay}
	default:
		return tuneKeys[ch]
	}
}

// Apply performs a decoded action on the simulation.
// Returns false when the driver should stop.
func Apply(sim *engine.Simulation, a Action) (bool, error) {
	switch a.Kind {
	case ActionQuit:
		return false, nil
	case ActionTune:
		return true, sim.Adjust(a.Knob, a.Dir)
	case ActionToggleReplay:
		if sim.Replaying() {
			return true, sim.StopReplay()
		}
		return true, sim.StartReplay(0)
	}
	return true, nil
}
