package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polyfill/internal/geom"
	"polyfill/internal/scene"
)

type sceneItem struct {
	title, desc string
	// path is empty for built-in scenes.
	path string
}

func (s sceneItem) Title() string       { return s.title }
func (s sceneItem) Description() string { return s.desc }
func (s sceneItem) FilterValue() string { return s.title }

// refreshDir lists the built-in scenes followed by the loadable files in cwd.
func (m *Model) refreshDir() {
	var items []list.Item
	for _, name := range scene.Names() {
		items = append(items, sceneItem{title: name, desc: "built-in"})
	}
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
	}
	var files []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".toml" || geom.Supported(name) {
			files = append(files, sceneItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].(sceneItem).title < files[j].(sceneItem).title })
	m.l.SetItems(append(items, files...))
}

// open loads a sidebar entry and renders it.
func (m *Model) open(it sceneItem) {
	var (
		s   *scene.Scene
		err error
	)
	if it.path == "" {
		s, err = scene.Builtin(it.title)
	} else {
		s, err = scene.LoadFile(it.path)
	}
	if err == nil {
		err = m.setScene(s)
	}
	if err != nil {
		m.status = "load error: " + err.Error()
	}
}
