// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// Update is delivered by a Watcher after the config file changed.
// Err is set when the new file failed to load; Config is nil then.
type Update struct {
	Config *Config
	Err    error
}

// Watcher reloads a config file when it changes on disk. The parent
// directory is watched so editors that replace the file on save are seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger
	updates  chan Update

	mu      sync.Mutex
	pending time.Time // zero when no change is waiting

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     absPath,
		watcher:  fsw,
		debounce: debounce,
		log:      log,
		updates:  make(chan Update, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Updates returns the channel on which reloaded configs are delivered.
// Only the latest unread update is kept.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Watch starts watching for changes.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()

	w.log.Debug().Str("path", w.path).Msg("watching config file")
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// processEvents records changes to the watched file.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

// processPending reloads the file once changes have settled for the debounce period.
func (w *Watcher) processPending() {
	defer w.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if due {
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed")
	} else {
		w.log.Info().Str("path", w.path).Msg("config reloaded")
	}
	w.publish(Update{Config: cfg, Err: err})
}

// publish replaces any unread update with u.
func (w *Watcher) publish(u Update) {
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- u:
	case <-w.ctx.Done():
	}
}
