package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polyfill/internal/export"
	"polyfill/internal/geom"
	"polyfill/internal/logx"
	"polyfill/internal/scene"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		m.refreshCanvas()
		return m, nil
	case fileChangedMsg:
		m.reload()
		return m, m.watch.wait()
	case watchErrMsg:
		logx.L().Warn("watch error", "err", msg.err)
		m.status = "watch error: " + msg.err.Error()
		return m, m.watch.wait()
	case tea.MouseMsg:
		m.hover(msg)
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.setZoom(m.zoom + 1)
		case tea.MouseButtonWheelDown:
			m.setZoom(m.zoom - 1)
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, the list owns the keyboard.
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "paste cancelled"
			return m, nil
		case "enter":
			m.paste(strings.TrimSpace(m.ta.Value()))
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}

	switch key := msg.String(); key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "+", "=":
		m.setZoom(m.zoom + 1)
	case "-", "_":
		m.setZoom(m.zoom - 1)
	case "0":
		m.setZoom(1)
	case "m":
		if m.mode == ModeBraille {
			m.mode = ModeColor
		} else {
			m.mode = ModeBraille
		}
		m.status = "mode: " + m.mode.String()
		m.refreshCanvas()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.refreshCanvas()
	case "p":
		m.pasteMode = true
		m.showFills = false
		m.ta.SetValue("")
		m.status = "paste mode"
		return m, m.ta.Focus()
	case "a":
		m.showFills = !m.showFills
	case "h":
		m.helpVisible = !m.helpVisible
	case "s":
		m.save()
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(sceneItem); ok {
				m.open(it)
			}
		}
	case "up", "down", "pgup", "pgdown", "/":
		if m.showFills {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if key == "up" || key == "down" {
			m.pan(key)
		}
	case "left", "right":
		m.pan(key)
	}
	return m, nil
}

func (m *Model) pan(dir string) {
	vw, vh := m.viewSize()
	switch dir {
	case "up":
		m.offsetY -= max(1, vh/10)
	case "down":
		m.offsetY += max(1, vh/10)
	case "left":
		m.offsetX -= max(1, vw/10)
	case "right":
		m.offsetX += max(1, vw/10)
	}
	m.clampPan()
	m.refreshCanvas()
}

// setZoom changes the magnification around the centre of the view.
func (m *Model) setZoom(z int) {
	z = clamp(z, 1, maxZoom)
	if z == m.zoom {
		return
	}
	vw, vh := m.viewSize()
	cx, cy := m.offsetX+vw/2, m.offsetY+vh/2
	m.zoom = z
	vw, vh = m.viewSize()
	m.offsetX, m.offsetY = cx-vw/2, cy-vh/2
	m.clampPan()
	m.status = fmt.Sprintf("zoom: %dx", m.zoom)
	m.refreshCanvas()
}

func (m *Model) clampPan() {
	vw, vh := m.viewSize()
	m.offsetX = clamp(m.offsetX, 0, m.buf.Width()-vw)
	m.offsetY = clamp(m.offsetY, 0, m.buf.Height()-vh)
}

func (m *Model) hover(msg tea.MouseMsg) {
	lo := m.layout()
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	m.hovering = false
	if m.showFills || m.pasteMode || cx < 0 || cy < 0 || cx >= lo.mapW || cy >= lo.mapH {
		return
	}
	vp := m.viewport(lo.mapW, lo.mapH)
	if x, y, ok := vp.toBuffer(cx*vp.cellW, cy*vp.cellH); ok {
		m.hovering = true
		m.hoverX, m.hoverY = x, y
	}
}

// paste adds every polygon of a WKT text as new fills on a copy of the scene.
func (m *Model) paste(text string) {
	if text == "" {
		m.status = "paste: empty"
		return
	}
	d, err := geom.ParseWKT(text)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	s := m.scene.Clone()
	s.Source = ""
	for _, sh := range d.Shapes {
		s.Fills = append(s.Fills, scene.Fill{
			Color:   s.NextColor(),
			Polygon: sh.Outer.Polygon(),
			Hole:    sh.Hole.Polygon(),
		})
	}
	if err := m.setScene(s); err != nil {
		m.status = "render error: " + err.Error()
		return
	}
	m.pasteMode = false
	m.ta.Blur()
	m.status = fmt.Sprintf("added %d fill(s) from WKT", len(d.Shapes))
}

// reload re-reads the scene source after the watcher reported a change.
func (m *Model) reload() {
	if m.scene.Source == "" {
		return
	}
	s, err := scene.LoadFile(m.scene.Source)
	if err == nil {
		err = m.setScene(s)
	}
	if err != nil {
		logx.L().Warn("reload failed", "path", m.scene.Source, "err", err)
		m.status = "reload error: " + err.Error()
		return
	}
	m.status = "reloaded " + s.Name
}

func (m *Model) save() {
	path := m.outPath
	if path == "" {
		path = m.scene.Name + ".png"
	}
	if err := export.Save(path, m.buf); err != nil {
		m.status = "save error: " + err.Error()
		return
	}
	m.status = "saved " + path
}
