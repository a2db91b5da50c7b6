package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilenav/internal/config"
	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/level"
	"github.com/samdwyer/tilenav/internal/nav"
	"github.com/samdwyer/tilenav/internal/telemetry"
	"github.com/samdwyer/tilenav/internal/ui"
)

// App holds the viewer state.
type App struct {
	cfg      config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	levels   *level.Registry

	def     *level.Def
	grid    *grid.Grid
	planner *nav.Planner
	agent   *Agent
	route   nav.Result

	cursorX, cursorY int
	target           grid.Vec2
	hasTarget        bool
	state            State
	message          string
	running          bool
	showWalls        bool
	showPath         bool
}

// levelChangedEvent is posted to the event loop when a watched level file changes.
type levelChangedEvent struct {
	tcell.EventTime
	path string
}

// New creates a viewer drawing to screen.
func New(cfg config.Config, screen *ui.Screen) (*App, error) {
	theme, err := ui.NewTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	levels, err := level.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}

	return &App{
		cfg:       cfg,
		screen:    screen,
		renderer:  ui.NewRenderer(screen, theme),
		levels:    levels,
		state:     StateIdle,
		running:   true,
		showWalls: cfg.ShowWalls,
		showPath:  cfg.ShowPath,
	}, nil
}

// Run loads the level and executes the event loop until the user quits.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	tracer := telemetry.Tracer("app")
	initCtx, initSpan := tracer.Start(ctx, "app.init")
	if err := a.load(initCtx); err != nil {
		telemetry.RecordError(initSpan, err)
		initSpan.End()
		return err
	}
	initSpan.SetAttributes(
		attribute.String("level.id", a.def.ID),
		attribute.String("nav.mode", a.planner.Mode().String()),
	)
	initSpan.End()

	if a.cfg.Watch {
		w, err := level.NewWatcher(a.cfg.LevelFile)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", a.cfg.LevelFile, err)
		}
		defer w.Close()
		go a.forwardLevelChanges(w)
	}

	for a.running {
		a.render()
		a.handleEvent(ctx, a.screen.PollEvent())
	}
	return nil
}

// load resolves the configured level and builds a fresh grid and planner.
func (a *App) load(ctx context.Context) error {
	def, err := ResolveLevel(ctx, a.cfg, a.levels)
	if err != nil {
		return err
	}
	g, _, err := def.BuildGrid(ctx)
	if err != nil {
		return err
	}

	a.def = def
	a.grid = g
	a.planner = nav.NewPlanner(g, a.cfg.NavMode())
	a.agent = NewAgent(def.SpawnPos())
	start := g.TileAt(a.agent.Pos)
	a.cursorX, a.cursorY = start.X, start.Y
	a.route = nav.Result{}
	a.hasTarget = false
	a.state = StateIdle
	a.message = ""

	slog.Info("level loaded", "id", def.ID, "width", g.Width, "height", g.Height,
		"walls", len(g.Walls()), "mode", a.planner.Mode())
	return nil
}

// reload reads the level again. A level with the same bounds only has its
// walkability rebuilt, so the agent and destination are kept.
func (a *App) reload(ctx context.Context) {
	def, err := ResolveLevel(ctx, a.cfg, a.levels)
	if err == nil {
		err = def.Validate()
	}
	if err != nil {
		slog.Warn("level reload failed", "error", err)
		a.message = "reload failed: " + err.Error()
		return
	}

	if def.Bounds() != a.grid.Bounds() {
		g, _, err := def.BuildGrid(ctx)
		if err != nil {
			slog.Warn("level reload failed", "error", err)
			a.message = "reload failed: " + err.Error()
			return
		}
		a.grid = g
		a.planner.SetGrid(g)
		a.agent = NewAgent(def.SpawnPos())
		a.hasTarget = false
	} else {
		space := level.NewSpace(def.ObstacleRects(), def.ProbeRadius())
		walls := a.grid.Rebuild(space.IsWalkable)
		slog.Debug("grid rebuilt", "id", def.ID, "walls", walls)
	}
	a.def = def
	a.message = "reloaded " + def.ID

	if !a.hasTarget {
		a.route = nav.Result{}
		a.state = StateIdle
		return
	}
	res, err := a.planner.Replan(ctx)
	a.applyRoute(res, err)
}

// setDestination plans a route from the agent to the given world position.
func (a *App) setDestination(ctx context.Context, to grid.Vec2) {
	a.target = a.grid.TileAt(to).Center()
	a.hasTarget = true
	res, err := a.planner.SetDestination(ctx, a.agent.Pos, a.target)
	a.applyRoute(res, err)
}

func (a *App) applyRoute(res nav.Result, err error) {
	if err != nil {
		slog.Error("route planning failed", "error", err)
		a.message = "planning failed: " + err.Error()
		return
	}
	a.route = res
	a.agent.Follow(res)
	if res.Found {
		a.state = StateRouted
	} else {
		a.state = StateUnreachable
	}
	a.message = ""
}

// toggleMode switches between 4-way and 8-way movement and replans.
func (a *App) toggleMode(ctx context.Context) {
	a.planner.SetMode(a.planner.Mode().Toggle())
	if a.hasTarget {
		a.setDestination(ctx, a.target)
	}
}

// step walks the agent one waypoint along its route.
func (a *App) step(ctx context.Context) {
	if a.agent.Step() && a.hasTarget {
		a.setDestination(ctx, a.target)
	}
}

// blink moves the agent to the end of its route.
func (a *App) blink(ctx context.Context) {
	if a.agent.Blink() && a.hasTarget {
		a.setDestination(ctx, a.target)
	}
}

// toggleWalls switches wall markers on or off.
func (a *App) toggleWalls() {
	a.showWalls = !a.showWalls
}

func (a *App) togglePath() {
	a.showPath = !a.showPath
}

func (a *App) moveCursor(dx, dy int) {
	t := a.grid.At(a.cursorX+dx, a.cursorY+dy)
	if t != nil {
		a.cursorX, a.cursorY = t.X, t.Y
	}
}

// pick sets the destination to the tile under a screen cell.
func (a *App) pick(ctx context.Context, sx, sy int) {
	t := ui.TileFor(a.grid, sx, sy)
	a.cursorX, a.cursorY = t.X, t.Y
	a.setDestination(ctx, t.Center())
}

func (a *App) render() {
	a.renderer.Render(ui.Frame{
		Grid:        a.grid,
		Path:        a.route,
		Agent:       a.agent.Pos,
		AgentSymbol: a.agent.Symbol,
		Target:      a.target,
		HasTarget:   a.hasTarget,
		CursorX:     a.cursorX,
		CursorY:     a.cursorY,
		Status:      a.status(),
		HideWalls:   !a.showWalls,
		HidePath:    !a.showPath,
	})
}

func (a *App) status() string {
	s := fmt.Sprintf("%s | %s | %s", a.def.Name, a.planner.Mode(), a.state)
	if a.state != StateIdle {
		s += fmt.Sprintf(" | cost %d | expanded %d", a.route.Cost, a.route.Expanded)
	}
	if a.message != "" {
		s += " | " + a.message
	}
	return s + " | m:mode n:step g:go w:walls p:path r:reload q:quit"
}

// handleEvent processes a single event.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		a.running = false
	case *tcell.EventKey:
		a.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			a.pick(ctx, x, y)
		}
	case *levelChangedEvent:
		slog.Info("level file changed", "path", ev.path)
		a.reload(ctx)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (a *App) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false

	case tcell.KeyUp:
		a.moveCursor(0, -1)
	case tcell.KeyDown:
		a.moveCursor(0, 1)
	case tcell.KeyLeft:
		a.moveCursor(-1, 0)
	case tcell.KeyRight:
		a.moveCursor(1, 0)
	case tcell.KeyEnter:
		a.setDestination(ctx, a.grid.At(a.cursorX, a.cursorY).Center())

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.running = false
		case 'm':
			a.toggleMode(ctx)
		case 'n', ' ':
			a.step(ctx)
		case 'g':
			a.blink(ctx)
		case 'r':
			a.reload(ctx)
		case 'w':
			a.toggleWalls()
		case 'p':
			a.togglePath()
		}
	}
}

func (a *App) forwardLevelChanges(w *level.Watcher) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			ev := &levelChangedEvent{path: path}
			ev.SetEventNow()
			if err := a.screen.PostEvent(ev); err != nil {
				slog.Warn("dropped level change", "path", path, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("level watcher error", "error", err)
		}
	}
}
