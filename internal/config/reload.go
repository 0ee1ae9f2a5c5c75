// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	xglog "github.com/ManuGH/tailcfg/internal/log"
	"github.com/ManuGH/tailcfg/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period after the last file event before a reload.
const DefaultDebounce = 500 * time.Millisecond

// Holder holds the current record and swaps it atomically on reload.
// Readers always get a private copy.
type Holder struct {
	mu          sync.RWMutex
	current     Config
	fingerprint string

	loader     *Loader
	configPath string
	logger     zerolog.Logger
	debounce   time.Duration

	// serializes Reload; the loader is not safe for concurrent use
	loadMu sync.Mutex

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	reloadMu        sync.RWMutex
	reloadListeners []chan<- Config
}

// NewHolder creates a holder for an already loaded record.
func NewHolder(initial Config, loader *Loader) *Holder {
	fp, _ := Fingerprint(initial)
	path := ""
	if loader != nil {
		path = loader.Path()
	}
	return &Holder{
		current:     Clone(initial),
		fingerprint: fp,
		loader:      loader,
		configPath:  path,
		logger:      xglog.WithComponent("config"),
		debounce:    DefaultDebounce,
	}
}

// SetDebounce overrides the reload debounce. It must be called before StartWatcher.
func (h *Holder) SetDebounce(d time.Duration) {
	h.debounce = d
}

// Get returns a copy of the current record.
func (h *Holder) Get() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Clone(h.current)
}

// Fingerprint returns the fingerprint of the current record.
func (h *Holder) Fingerprint() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fingerprint
}

// Snapshot returns a copy of the current record together with its
// fingerprint, both read under one lock.
func (h *Holder) Snapshot() (Config, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Clone(h.current), h.fingerprint
}

// Reload loads and validates the record again. On failure the current
// record is kept and the error returned.
func (h *Holder) Reload(ctx context.Context) error {
	ctx = xglog.ContextWithCorrelationID(ctx, uuid.NewString())
	logger := xglog.WithContext(ctx, h.logger)

	logger.Info().Str(xglog.FieldEvent, "config.reload_start").Msg("reloading configuration")

	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	if h.loader == nil {
		metrics.RecordConfigReload(metrics.OutcomeFailure)
		return fmt.Errorf("reload: no loader configured")
	}

	next, err := h.loader.Load()
	if err != nil {
		metrics.RecordConfigReload(metrics.OutcomeFailure)
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "config.reload_failed").
			Msg("failed to load new configuration, keeping current")
		return fmt.Errorf("load config: %w", err)
	}

	fp, err := Fingerprint(next)
	if err != nil {
		metrics.RecordConfigReload(metrics.OutcomeFailure)
		return fmt.Errorf("fingerprint config: %w", err)
	}

	h.mu.Lock()
	old := h.current
	if fp == h.fingerprint {
		h.mu.Unlock()
		metrics.RecordConfigReload(metrics.OutcomeNoop)
		logger.Debug().Str(xglog.FieldEvent, "config.reload_noop").Msg("configuration unchanged")
		return nil
	}
	h.current = next
	h.fingerprint = fp
	h.mu.Unlock()

	summary := Diff(old, next)
	metrics.RecordConfigReload(metrics.OutcomeSuccess)
	h.notifyListeners(next)

	logger.Info().
		Str(xglog.FieldEvent, "config.reload_success").
		Strs(xglog.FieldChanged, summary.ChangedFields).
		Str(xglog.FieldFingerprint, fp).
		Msg("configuration reloaded successfully")
	return nil
}

// StartWatcher watches the config file for changes and reloads after a
// debounce. The containing directory is watched so that rename-based saves
// are seen. If no file is configured this is a no-op.
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.configPath == "" {
		h.logger.Info().
			Str(xglog.FieldEvent, "config.watcher_disabled").
			Msg("config file watcher disabled (using defaults and ENV only)")
		return nil
	}

	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	target, err := filepath.Abs(h.configPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	h.watcher = watcher
	h.cancel = cancel

	h.logger.Info().
		Str(xglog.FieldEvent, "config.watcher_started").
		Str(xglog.FieldConfigPath, target).
		Msg("watching config file for changes")

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.releaseWatcher(watcher)
		h.watchLoop(loopCtx, watcher, target)
	}()
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) {
	defer func() { _ = watcher.Close() }()

	// a nil channel blocks until the first event arms the timer
	var debounceTimer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xglog.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			h.logger.Debug().
				Str(xglog.FieldEvent, "config.file_changed").
				Str("op", event.Op.String()).
				Msg("config file changed")

			if debounceTimer == nil {
				debounceTimer = time.NewTimer(h.debounce)
			} else {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(h.debounce)
			}
			fire = debounceTimer.C

		case <-fire:
			fire = nil
			if err := h.Reload(ctx); err != nil {
				h.logger.Error().
					Err(err).
					Str(xglog.FieldEvent, "config.auto_reload_failed").
					Msg("automatic config reload failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "config.watcher_error").
				Msg("config watcher error")
		}
	}
}

// releaseWatcher forgets watcher once its loop has exited, so a holder
// whose context ended can be watched again.
func (h *Holder) releaseWatcher(watcher *fsnotify.Watcher) {
	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.watcher != watcher {
		return
	}
	if h.cancel != nil {
		h.cancel()
	}
	h.watcher = nil
	h.cancel = nil
}

// Stop stops the watcher (if running) and waits for its goroutine to exit.
func (h *Holder) Stop() {
	h.watchMu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.watcher = nil
	h.watchMu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

// RegisterListener registers a channel to receive the new record after each
// successful reload that changed it. Sends never block; a full channel misses
// the update. The caller is responsible for closing the channel.
func (h *Holder) RegisterListener(ch chan<- Config) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	h.reloadListeners = append(h.reloadListeners, ch)
}

func (h *Holder) notifyListeners(next Config) {
	h.reloadMu.RLock()
	defer h.reloadMu.RUnlock()

	for _, ch := range h.reloadListeners {
		select {
		case ch <- Clone(next):
		default:
			h.logger.Warn().
				Str(xglog.FieldEvent, "config.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}
