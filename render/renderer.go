package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/engine"
	"github.com/lixenwraith/maze-runner/maze"
)

const (
	// CellWidth is screen columns per maze tile; terminal cells are roughly 1:2
	CellWidth = 2

	mazeTop = 1
)

// Renderer draws engine views onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	base   tcell.Style
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		base:   tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHudText),
	}
}

// Draw renders one complete frame and shows it
func (r *Renderer) Draw(v engine.View) {
	r.screen.SetStyle(r.base)
	r.screen.Clear()

	r.drawStatus(v)
	r.drawWorld(v.World)
	r.drawPatrols(v)
	r.drawAgents(v)
	r.drawHud(v, mazeTop+v.World.Height()+1)

	r.screen.Show()
}

func (r *Renderer) drawStatus(v engine.View) {
	style := tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusBg)
	var text string
	if v.Replay != nil {
		style = style.Background(RgbReplayBg).Foreground(tcell.ColorWhite)
		outcome := "died"
		if v.Replay.Reached {
			outcome = fmt.Sprintf("wins in %d", v.Replay.Steps)
		}
		text = fmt.Sprintf(" REPLAY  Generation %d (%d/%d)  Move %d/%d  %s ",
			v.Replay.Generation, v.Replay.Index+1, v.Replay.Count, v.Replay.Tick, v.Replay.Moves, outcome)
	} else if v.Solved {
		text = fmt.Sprintf(" Generation %d  Wins in %d moves  (genome %d) ", v.Generation, v.MinStep, v.Moves)
	} else {
		text = fmt.Sprintf(" Generation %d  Number of moves %d ", v.Generation, v.Moves)
	}
	r.drawText(0, 0, text, style)
}

func (r *Renderer) drawWorld(w *maze.World) {
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			t, _ := w.Tile(maze.Point{X: x, Y: y})
			ch, style := ' ', r.base
			switch {
			case t.Blocked && t.Outline != 0:
				ch, style = '█', r.base.Foreground(RgbWallEdge)
			case t.Blocked:
				ch, style = '█', r.base.Foreground(RgbWall)
			case t.Goal:
				style = r.base.Background(RgbGoalBg)
			case t.SafeStart:
				style = r.base.Background(RgbSafeBg)
			}
			r.setCell(x, y, ch, style)
		}
	}
}

// Patrols move continuously; half-cell columns show sub-tile progress
func (r *Renderer) drawPatrols(v engine.View) {
	for _, p := range v.Patrols {
		col := int(math.Round(p.X * CellWidth))
		row := mazeTop + int(math.Round(p.Y))
		r.screen.SetContent(col, row, '●', nil, r.tileStyle(v.World, p.X, p.Y).Foreground(RgbPatrol))
	}
}

// Agents draw dead first so living ones stay visible on shared cells
func (r *Renderer) drawAgents(v engine.View) {
	glyph := func(s agent.Snapshot) (rune, tcell.Color) {
		switch {
		case v.Replay != nil:
			return '◆', RgbReplayAgent
		case s.Status == agent.Dead:
			return '·', RgbAgentDead
		case s.Status == agent.ReachedGoal:
			return '◆', RgbAgentReached
		default:
			return '●', RgbAgentAlive
		}
	}
	for _, pass := range []agent.Status{agent.Dead, agent.ReachedGoal, agent.Alive} {
		for _, s := range v.Agents {
			if s.Status != pass {
				continue
			}
			if !v.World.InBounds(s.Position) {
				continue
			}
			ch, color := glyph(s)
			style := r.tileStyle(v.World, float64(s.Position.X), float64(s.Position.Y)).Foreground(color)
			r.screen.SetContent(s.Position.X*CellWidth+1, mazeTop+s.Position.Y, ch, nil, style)
		}
	}
}

func (r *Renderer) drawHud(v engine.View, top int) {
	key := r.base.Foreground(RgbHudKey)
	lines := []struct{ keys, text string }{
		{"p/P", fmt.Sprintf("population %d", v.PopulationSize)},
		{"m/M", fmt.Sprintf("mutation %.4f", v.MutationRate)},
		{"s/S", fmt.Sprintf("speed %d", v.Speed)},
		{"g/G", fmt.Sprintf("grow by %d", v.GrowBy)},
		{"e/E", fmt.Sprintf("grow every %d", v.GrowEvery)},
	}
	x := 0
	for _, l := range lines {
		x = r.drawText(x, top, l.keys, key)
		x = r.drawText(x+1, top, l.text, r.base) + 2
	}

	stats := fmt.Sprintf("alive %d  dead %d  goal %d", v.Alive, v.Dead, v.Reached)
	if v.HasStats {
		stats += fmt.Sprintf("  last best %.4f  mean %.4f", v.BestFitness, v.MeanFitness)
	}
	r.drawText(0, top+1, stats, r.base)

	x = r.drawText(0, top+2, "r", key)
	x = r.drawText(x+1, top+2, "replay", r.base)
	x = r.drawText(x+2, top+2, "q", key)
	r.drawText(x+1, top+2, "quit", r.base)
}

func (r *Renderer) tileStyle(w *maze.World, fx, fy float64) tcell.Style {
	t, ok := w.Tile(maze.Point{X: int(math.Round(fx)), Y: int(math.Round(fy))})
	switch {
	case !ok:
		return r.base
	case t.Goal:
		return r.base.Background(RgbGoalBg)
	case t.SafeStart:
		return r.base.Background(RgbSafeBg)
	}
	return r.base
}

func (r *Renderer) setCell(x, y int, ch rune, style tcell.Style) {
	for i := 0; i < CellWidth; i++ {
		r.screen.SetContent(x*CellWidth+i, mazeTop+y, ch, nil, style)
	}
}

// drawText writes s at (x, y) and returns the column after it
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
