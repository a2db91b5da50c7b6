package ui

import (
	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/nav"
)

// Runes used to draw a level.
const (
	WallRune   = '#'
	FloorRune  = '.'
	PathRune   = '*'
	AgentRune  = '@'
	TargetRune = 'X'
)

// Frame is everything the renderer needs to draw one screen.
type Frame struct {
	Grid        *grid.Grid
	Path        nav.Result
	Agent       grid.Vec2
	AgentSymbol rune // Zero draws AgentRune
	Target      grid.Vec2
	HasTarget   bool
	CursorX     int // Tile column, or -1 to hide the cursor
	CursorY     int
	Status      string
	HideWalls   bool // Draw walls like floor tiles
	HidePath    bool
}

// Renderer handles drawing levels and routes to the screen.
// Tile (x, y) of the grid is drawn at screen cell (x, y).
type Renderer struct {
	screen *Screen
	theme  Theme
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the grid, the route, the agent and the status line.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	g := f.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y).Wall && !f.HideWalls {
				r.screen.SetContent(x, y, WallRune, r.theme.Wall)
			} else {
				r.screen.SetContent(x, y, FloorRune, r.theme.Floor)
			}
		}
	}

	if !f.HidePath {
		for _, t := range f.Path.Tiles {
			r.screen.SetContent(t.X, t.Y, PathRune, r.theme.Path)
		}
	}

	if f.HasTarget {
		t := g.TileAt(f.Target)
		r.screen.SetContent(t.X, t.Y, TargetRune, r.theme.Target)
	}

	symbol := f.AgentSymbol
	if symbol == 0 {
		symbol = AgentRune
	}
	agent := g.TileAt(f.Agent)
	r.screen.SetContent(agent.X, agent.Y, symbol, r.theme.Agent)

	r.RenderMessage(f.Status, g.Height+1)

	if f.CursorX >= 0 {
		r.screen.ShowCursor(f.CursorX, f.CursorY)
	} else {
		r.screen.ShowCursor(-1, -1)
	}

	r.screen.Show()
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, r.theme.Status)
	}
}

// TileFor maps a screen cell onto the grid. Cells outside the grid
// resolve to the nearest edge tile.
func TileFor(g *grid.Grid, sx, sy int) *grid.Tile {
	origin := g.Bounds().Min
	return g.TileAt(grid.Vec2{X: origin.X + float64(sx) + 0.5, Y: origin.Y + float64(sy) + 0.5})
}

