package tui

import (
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileChangedMsg struct{ path string }

type watchErrMsg struct{ err error }

// watcher follows one file. The directory is watched rather than the file so
// editors that replace the file on save keep triggering events.
type watcher struct {
	fw *fsnotify.Watcher

	mu     sync.Mutex
	dir    string
	target string
}

func newWatcher() (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &watcher{fw: fw}, nil
}

// follow switches the watched file to path.
func (w *watcher) follow(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir != w.dir {
		if w.dir != "" {
			_ = w.fw.Remove(w.dir)
		}
		if err := w.fw.Add(dir); err != nil {
			w.dir, w.target = "", ""
			return err
		}
		w.dir = dir
	}
	w.target = abs
	return nil
}

func (w *watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return abs == w.target
}

// wait blocks until the followed file is written or recreated. The returned
// message is nil once the watcher is closed.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fw.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 && w.matches(ev.Name) {
					return fileChangedMsg{path: ev.Name}
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (w *watcher) Close() error { return w.fw.Close() }
