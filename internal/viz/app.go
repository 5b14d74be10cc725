package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/logger"
	"github.com/san-kum/galaxy/internal/panel"
	"github.com/san-kum/galaxy/internal/storage"
)

const (
	panelWidth = 40
	damping    = 0.12
	orbitStep  = 0.04
)

type tickMsg time.Time

type generatedMsg struct {
	buf     *galaxy.Buffers
	err     error
	elapsed time.Duration
	reason  string
	// seed is set when the generation ran on a fresh seed.
	seed *int64
}

type Options struct {
	// Params seeds the panel. Nil means the default galaxy.
	Params *galaxy.Parameters
	Seed   int64
	// MaxPoints caps each generation; 0 means no cap.
	MaxPoints int
	Render    config.RenderConfig
	Store     *storage.Store
	Logger    *slog.Logger
	Theme     string
}

// App wires the parameter panel to the generator and draws the attached
// galaxy every tick.
type App struct {
	gen     *galaxy.Generator
	surface *Surface
	panel   *panel.Panel
	canvas  *Canvas
	store   *storage.Store
	logger  *slog.Logger
	styles  styles
	theme   int
	render  config.RenderConfig
	initial *galaxy.Parameters
	seed    int64
	presets []string
	preset  int

	autoRotate  bool
	generating  bool
	pending     *panel.Commit
	nextSeed    *int64
	lastElapsed time.Duration
	drawn       int
	status      string
	err         error
}

func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Render.FPS <= 0 {
		opts.Render.FPS = config.DefaultFPS
	}
	if opts.Render.Width <= 0 {
		opts.Render.Width = config.DefaultWidth
	}
	if opts.Render.Height <= 0 {
		opts.Render.Height = config.DefaultHeight
	}

	surface := NewSurface()
	surface.Camera.RotX = opts.Render.Tilt
	if opts.Render.Zoom > 0 {
		surface.Camera.Zoom = opts.Render.Zoom
	}

	start := galaxy.DefaultParameters()
	if opts.Params != nil {
		start = *opts.Params
	}

	theme := 0
	for i, t := range Themes {
		if t.Name == opts.Theme {
			theme = i
		}
	}

	return &App{
		gen: galaxy.NewGenerator(surface,
			galaxy.WithSource(galaxy.NewSource(opts.Seed)),
			galaxy.WithLogger(opts.Logger),
			galaxy.WithMaxPoints(opts.MaxPoints),
		),
		surface:    surface,
		panel:      panel.New(start),
		canvas:     NewCanvas(opts.Render.Width, opts.Render.Height),
		store:      opts.Store,
		logger:     opts.Logger.With("component", "viz"),
		styles:     newStyles(Themes[theme]),
		theme:      theme,
		render:     opts.Render,
		initial:    opts.Params,
		seed:       opts.Seed,
		presets:    config.ListPresets(),
		preset:     -1,
		autoRotate: opts.Render.AutoRotate != 0,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.initialCmd(), a.tick())
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.render.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) initialCmd() tea.Cmd {
	if a.initial != nil {
		return a.generateCmd(*a.initial, "initial")
	}
	a.generating = true
	return func() tea.Msg {
		start := time.Now()
		buf, err := a.gen.RunInitial()
		return generatedMsg{buf: buf, err: err, elapsed: time.Since(start), reason: "initial"}
	}
}

// generateCmd runs off the update loop, and so does a pending reseed:
// Reseed blocks while a generation holds the generator.
func (a *App) generateCmd(p galaxy.Parameters, reason string) tea.Cmd {
	a.generating = true
	seed := a.nextSeed
	a.nextSeed = nil
	return func() tea.Msg {
		start := time.Now()
		if seed != nil {
			a.gen.Reseed(*seed)
		}
		buf, err := a.gen.Generate(p)
		return generatedMsg{buf: buf, err: err, elapsed: time.Since(start), reason: reason, seed: seed}
	}
}

// request regenerates for a commit, or queues it if a generation is in
// flight. Only the latest queued commit is kept.
func (a *App) request(c *panel.Commit) tea.Cmd {
	if c == nil {
		return nil
	}
	if a.generating {
		a.pending = c
		return nil
	}
	return a.generateCmd(c.Params, c.Field)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.canvas.Resize(max(msg.Width-panelWidth-4, 10), max(msg.Height-1, 5))
		return a, nil
	case tickMsg:
		spin := 0.0
		if a.autoRotate {
			spin = a.render.AutoRotate
		}
		a.surface.Camera.Update(spin, damping)
		a.drawn = a.surface.Draw(a.canvas)
		return a, a.tick()
	case generatedMsg:
		return a, a.onGenerated(msg)
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) onGenerated(msg generatedMsg) tea.Cmd {
	a.generating = false
	if msg.seed != nil {
		a.seed = *msg.seed
	}
	if msg.err != nil {
		a.err = msg.err
		a.logger.Warn("generation failed", "reason", msg.reason, "error", msg.err)
	} else {
		a.err = nil
		a.lastElapsed = msg.elapsed
		a.surface.Camera.Extent = msg.buf.Params.Radius * 1.15
		a.status = fmt.Sprintf("gen #%d (%s)", msg.buf.Generation, msg.reason)
		a.logger.Info("regenerated", "reason", msg.reason, "generation", msg.buf.Generation, "elapsed", msg.elapsed)
	}
	if a.pending != nil {
		c := a.pending
		a.pending = nil
		return a.request(c)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.panel.Editing() {
		return a.editKey(msg)
	}

	cam := a.surface.Camera
	switch msg.String() {
	case "q", "ctrl+c":
		a.Close()
		return tea.Quit
	case "up", "k":
		return a.request(a.panel.Move(-1))
	case "down", "j":
		return a.request(a.panel.Move(1))
	case "left", "h":
		a.panel.Adjust(-1)
	case "right", "l":
		a.panel.Adjust(1)
	case "H":
		a.panel.Adjust(-10)
	case "L":
		a.panel.Adjust(10)
	case "enter":
		a.panel.BeginEdit()
	case "c":
		c, err := a.panel.Finish()
		if err != nil {
			a.err = err
			return nil
		}
		return a.request(c)
	case "A":
		cam.Nudge(0, -orbitStep)
	case "D":
		cam.Nudge(0, orbitStep)
	case "W":
		cam.Nudge(-orbitStep, 0)
	case "S":
		cam.Nudge(orbitStep, 0)
	case "+", "=":
		cam.ZoomIn()
	case "-", "_":
		cam.ZoomOut()
	case " ":
		a.autoRotate = !a.autoRotate
		if a.autoRotate && a.render.AutoRotate == 0 {
			a.render.AutoRotate = config.DefaultAutoRotate
		}
	case "r":
		seed := galaxy.TimeSeed()
		a.nextSeed = &seed
		return a.request(&panel.Commit{Field: "seed", Params: a.panel.Params()})
	case "p":
		return a.nextPreset()
	case "t":
		a.theme = (a.theme + 1) % len(Themes)
		a.styles = newStyles(Themes[a.theme])
	case "s":
		a.save()
	}
	return nil
}

func (a *App) editKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		c, err := a.panel.Finish()
		if err != nil {
			a.err = err
			return nil
		}
		return a.request(c)
	case "esc":
		a.panel.CancelEdit()
	case "backspace":
		a.panel.Backspace()
	case "ctrl+c":
		a.Close()
		return tea.Quit
	default:
		if msg.Type == tea.KeyRunes {
			a.panel.Type(string(msg.Runes))
		}
	}
	return nil
}

func (a *App) nextPreset() tea.Cmd {
	if len(a.presets) == 0 {
		return nil
	}
	a.preset = (a.preset + 1) % len(a.presets)
	name := a.presets[a.preset]
	params, err := config.GetPreset(name).Parameters()
	if err != nil {
		a.err = err
		return nil
	}
	c := a.panel.Load(params)
	c.Field = "preset " + name
	return a.request(c)
}

func (a *App) save() {
	if a.store == nil {
		a.err = fmt.Errorf("no data directory configured")
		return
	}
	if err := a.store.Init(); err != nil {
		a.err = err
		return
	}
	var (
		id  string
		err error
	)
	a.surface.View(func(b *galaxy.Buffers, _ galaxy.DrawMode) {
		id, err = a.store.Save(b, a.seed)
	})
	if err != nil {
		a.err = err
		return
	}
	if id != "" {
		a.status = "saved " + id
		a.logger.Info("galaxy saved", "id", id)
	}
}

// Close releases the attached galaxy.
func (a *App) Close() {
	a.surface.Detach()
}

func (a *App) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.canvas.Render(), a.styles.panel.Render(a.viewPanel()))
}

func (a *App) viewPanel() string {
	s := a.styles
	var b strings.Builder

	b.WriteString(s.title.Render("GALAXY") + "\n")
	b.WriteString(s.subtle.Render("spiral point cloud generator") + "\n")
	b.WriteString(s.separator(panelWidth-4) + "\n\n")

	for i, f := range a.panel.Fields() {
		val := a.panel.Value(f.Name)
		if a.panel.Editing() && i == a.panel.Cursor() {
			val = a.panel.Buffer() + "_"
		}
		if f.Color {
			val = swatch(a.panel.Value(f.Name)) + " " + val
		}
		if i == a.panel.Cursor() {
			marker := s.key.Render("▸ ")
			if a.panel.Dirty() {
				marker = s.active.Render("● ")
			}
			b.WriteString(marker + s.selected.Render(f.Name) + s.active.Render(val) + "\n")
		} else {
			b.WriteString("  " + s.label.Render(f.Name) + s.value.Render(val) + "\n")
		}
	}

	b.WriteString("\n" + s.separator(panelWidth-4) + "\n")

	state := "idle"
	if a.generating {
		state = "generating..."
	}
	b.WriteString(s.subtle.Render(fmt.Sprintf("%s  %s", state, a.status)) + "\n")
	b.WriteString(s.subtle.Render(fmt.Sprintf("drawn %d  took %v  seed %d", a.drawn, a.lastElapsed.Round(time.Millisecond), a.seed)) + "\n")
	if a.err != nil {
		b.WriteString(s.err.Render(a.err.Error()) + "\n")
	}

	b.WriteString("\n" + s.keyHelp("j/k", "field", "h/l", "adjust", "enter", "type") + "\n")
	b.WriteString(s.keyHelp("c", "commit", "p", "preset", "r", "reseed") + "\n")
	b.WriteString(s.keyHelp("WASD", "orbit", "+/-", "zoom", "space", "spin") + "\n")
	b.WriteString(s.keyHelp("s", "save", "t", "theme", "q", "quit"))
	return b.String()
}

// RunInteractive starts the full-screen app and blocks until it exits.
func RunInteractive(opts Options) error {
	app := NewApp(opts)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	app.Close()
	return err
}
