package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceQuiet is how long the file must stay quiet after the last event
// before a reload. Editors commonly truncate then write on save; loading on
// the first event of the burst would read the half-written file.
const debounceQuiet = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk, for live-view
// hot reload. Reloads fire after a save burst settles, never mid-burst.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string

	Configs chan *Config
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

// Watch begins watching the directory containing path and emits a freshly
// loaded Config once the file settles after a change.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    filepath.Clean(path),
		Configs: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	quiet := time.NewTimer(debounceQuiet)
	if !quiet.Stop() {
		<-quiet.C
	}
	defer quiet.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Restart the quiet window; the load happens only once events
			// stop arriving, so the last write of a burst wins.
			if !quiet.Stop() {
				select {
				case <-quiet.C:
				default:
				}
			}
			quiet.Reset(debounceQuiet)

		case <-quiet.C:
			cfg, err := Load(w.path)
			if err != nil {
				select {
				case w.Errors <- err:
				default:
				}
				continue
			}
			select {
			case w.Configs <- cfg:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}
