package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"polyfill/internal/export"
	"polyfill/internal/logx"
	"polyfill/internal/raster"
	"polyfill/internal/scene"
)

// Mode selects how buffer pixels become terminal cells.
type Mode int

const (
	// ModeAuto picks ModeBraille on terminals without color support and
	// ModeColor otherwise.
	ModeAuto Mode = iota
	// ModeColor draws two pixels per cell with an upper half block.
	ModeColor
	// ModeBraille draws 2x4 dots per cell, one dot per non-background pixel.
	ModeBraille
)

func (md Mode) String() string {
	switch md {
	case ModeColor:
		return "color"
	case ModeBraille:
		return "braille"
	}
	return "auto"
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
	maxZoom      = 32
)

// Options configures the viewer.
type Options struct {
	Scene  *scene.Scene
	Filler raster.Filler
	Mode   Mode
	// Watch re-renders the scene when its source file changes.
	Watch bool
	// Dir is listed in the sidebar; defaults to the working directory.
	Dir string
	// OutPath is where "s" saves the current buffer.
	OutPath string
}

// Result is what the viewer showed when it closed.
type Result struct {
	Scene  *scene.Scene
	Buffer *raster.Buffer
}

type Model struct {
	ctx context.Context

	width  int
	height int

	showSidebar bool
	helpVisible bool

	mode    Mode
	zoom    int
	offsetX int // buffer pixel at the left edge of the view
	offsetY int

	status string

	// sidebar
	cwd string
	l   list.Model

	// data
	scene  *scene.Scene
	filler raster.Filler
	buf    *raster.Buffer
	img    *image.RGBA
	canvas string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// fills table
	showFills bool
	tbl       table.Model

	// hover state
	hovering bool
	hoverX   int
	hoverY   int

	watch   *watcher
	outPath string
}

// New renders opts.Scene and returns a viewer showing it.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Scene == nil {
		return Model{}, errors.New("tui: no scene")
	}
	m := Model{
		ctx:         ctx,
		helpVisible: true,
		mode:        opts.Mode,
		zoom:        1,
		filler:      opts.Filler,
		cwd:         opts.Dir,
		outPath:     opts.OutPath,
	}
	if m.mode == ModeAuto {
		m.mode = ModeColor
		if termenv.ColorProfile() == termenv.Ascii {
			m.mode = ModeBraille
		}
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Scenes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT POLYGON / MULTIPOLYGON in pixel coordinates. Enter adds it; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	if opts.Watch {
		w, err := newWatcher()
		if err != nil {
			return Model{}, fmt.Errorf("tui: %w", err)
		}
		m.watch = w
	}
	if err := m.setScene(opts.Scene); err != nil {
		if m.watch != nil {
			_ = m.watch.Close()
		}
		return Model{}, err
	}
	m.refreshDir()
	m.status = fmt.Sprintf("%s ready", m.scene.Name)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.scene.WindowTitle())}
	if m.watch != nil {
		cmds = append(cmds, m.watch.wait())
	}
	return tea.Batch(cmds...)
}

// Result returns the scene and buffer currently shown.
func (m Model) Result() Result { return Result{Scene: m.scene, Buffer: m.buf} }

// setScene renders s into a fresh buffer and resets the view to show all of
// it. On error the previous scene stays on screen.
func (m *Model) setScene(s *scene.Scene) error {
	buf, st, err := scene.Render(m.ctx, s, m.filler)
	if err != nil {
		return err
	}
	if m.watch != nil && s.Source != "" {
		if err := m.watch.follow(s.Source); err != nil {
			logx.L().Warn("watch failed", "path", s.Source, "err", err)
		}
	}
	if m.scene == nil || m.scene.Width != s.Width || m.scene.Height != s.Height {
		m.zoom = 1
		m.offsetX, m.offsetY = 0, 0
	}
	m.scene = s
	m.buf = buf
	m.img = export.ToRGBA(buf)
	m.status = fmt.Sprintf("rendered %s  fills=%d spans=%d px=%d", s.Name, st.Fills, st.Spans, st.Written)
	m.refreshFills()
	m.refreshCanvas()
	return nil
}

// Run shows the scene until the user closes the viewer or ctx is done.
func Run(ctx context.Context, opts Options) (Result, error) {
	m, err := New(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	if m.watch != nil {
		defer m.watch.Close()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Result{}, fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Result(), nil
	}
	return m.Result(), nil
}
