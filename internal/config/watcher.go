package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a config file whenever it is written and delivers the
// result on Changes. It never touches renderer or window state itself.
type Watcher struct {
	path    string
	base    Config
	log     *zap.Logger
	watcher *fsnotify.Watcher
	changes chan Config
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors
// that save by rename are still seen.
func Watch(path string, base Config, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatch.Close()
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		base:    base,
		log:     log,
		watcher: fsWatch,
		changes: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go w.start()
	return w, nil
}

// Changes delivers every successfully reloaded config. Only the latest one
// is kept if the reader falls behind.
func (w *Watcher) Changes() <-chan Config {
	return w.changes
}

func (w *Watcher) Close() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}

func (w *Watcher) start() {
	defer w.watcher.Close()
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			config, err := Load(w.path, w.base)
			if err != nil {
				w.log.Warn("Config reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Info("Config reloaded", zap.String("path", w.path))
			w.publish(config)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("Config watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) publish(config Config) {
	select {
	case w.changes <- config:
		return
	default:
	}
	// Drop the stale value and retry once.
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- config:
	default:
	}
}
