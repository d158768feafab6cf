package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(Config)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher watches p. onChange, if set, runs after each successful reload.
func NewWatcher(p string, onChange func(Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: 300 * time.Millisecond,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the file's directory, since editors often replace the file instead of writing it.
func (cw *Watcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.running {
		return nil
	}
	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(cw.path), err)
	}
	cw.running = true
	go cw.run(ctx)
	zap.L().Info("watching config file", zap.String("path", cw.path))
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (cw *Watcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		cw.watcher.Close()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh
	if err := cw.watcher.Close(); err != nil {
		zap.L().Warn("error closing config watcher", zap.Error(err))
	}
}

func (cw *Watcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(cw.debounce)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			zap.L().Warn("config watcher error", zap.Error(err))
		case <-timer.C:
			cw.reload()
		}
	}
}

func (cw *Watcher) reload() {
	c, err := readFile(cw.path)
	if err != nil {
		zap.L().Warn("config reload failed, keeping previous config", zap.Error(err))
		return
	}
	set(c)
	zap.L().Info("config reloaded", zap.String("path", cw.path))
	if cw.onChange != nil {
		cw.onChange(c)
	}
}

// Watch creates and starts a Watcher for p.
func Watch(ctx context.Context, p string, onChange func(Config)) (*Watcher, error) {
	cw, err := NewWatcher(p, onChange)
	if err != nil {
		return nil, err
	}
	if err := cw.Start(ctx); err != nil {
		cw.Stop()
		return nil, err
	}
	return cw, nil
}
