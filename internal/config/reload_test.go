// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestHolder(t *testing.T, body string) (*Holder, string) {
	t.Helper()
	unsetEnv(t)
	path := writeConfig(t, "tailcfg.yaml", body)
	loader := NewLoader(path)
	cfg, err := loader.Load()
	require.NoError(t, err)
	return NewHolder(cfg, loader), path
}

func TestHolderGetReturnsCopy(t *testing.T) {
	h, _ := newTestHolder(t, "content: ['*.html']\n")

	cfg := h.Get()
	cfg.Content[0] = "mutated"
	cfg.Theme.FontFamily["sans"] = nil

	again := h.Get()
	assert.Equal(t, []string{"*.html"}, again.Content)
	assert.Equal(t, []string{"Fredoka"}, again.Theme.FontFamily["sans"])
}

func TestHolderReloadSuccessNotifiesListeners(t *testing.T) {
	h, path := newTestHolder(t, "content: ['*.html']\n")
	before := h.Fingerprint()

	ch := make(chan Config, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("content: ['*.html', 'src/**/*.rs']\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))

	assert.NotEqual(t, before, h.Fingerprint())
	assert.Equal(t, []string{"*.html", "src/**/*.rs"}, h.Get().Content)

	select {
	case got := <-ch:
		assert.Equal(t, []string{"*.html", "src/**/*.rs"}, got.Content)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestHolderReloadUnchangedIsNoop(t *testing.T) {
	h, _ := newTestHolder(t, "content: ['*.html']\n")
	ch := make(chan Config, 1)
	h.RegisterListener(ch)

	require.NoError(t, h.Reload(context.Background()))
	select {
	case <-ch:
		t.Fatal("unchanged reload must not notify")
	default:
	}
}

func TestHolderReloadFailureKeepsCurrent(t *testing.T) {
	h, path := newTestHolder(t, "content: ['*.html']\n")
	before := h.Get()

	require.NoError(t, os.WriteFile(path, []byte("content: ['*.html']\nunknown: true\n"), 0o600))
	err := h.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConfigField)
	assert.Equal(t, before, h.Get())

	require.NoError(t, os.WriteFile(path, []byte("content: []\n"), 0o600))
	require.ErrorIs(t, h.Reload(context.Background()), ErrInvalidConfig)
	assert.Equal(t, before, h.Get())
}

func TestHolderListenerFullDoesNotBlock(t *testing.T) {
	h, path := newTestHolder(t, "content: ['*.html']\n")
	ch := make(chan Config) // unbuffered, nobody reading
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("content: ['*.rs']\n"), 0o600))
	done := make(chan error, 1)
	go func() { done <- h.Reload(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Reload blocked on a full listener")
	}
}

func TestHolderSnapshotPairsRecordAndFingerprint(t *testing.T) {
	h, path := newTestHolder(t, "content: ['*.html']\n")

	require.NoError(t, os.WriteFile(path, []byte("content: ['*.html', 'src/**/*.rs']\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))

	cfg, fp := h.Snapshot()
	want, err := Fingerprint(cfg)
	require.NoError(t, err)
	assert.Equal(t, want, fp)
	assert.Equal(t, []string{"*.html", "src/**/*.rs"}, cfg.Content)

	cfg.Content[0] = "mutated"
	again, _ := h.Snapshot()
	assert.Equal(t, "*.html", again.Content[0])
}

func TestHolderWatcherDisabledWithoutPath(t *testing.T) {
	h := NewHolder(Default(), NewLoader(""))
	require.NoError(t, h.StartWatcher(context.Background()))
	h.Stop()
}

func TestHolderWatcherReloadsOnSave(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, path := newTestHolder(t, "content: ['*.html']\n")
	h.SetDebounce(20 * time.Millisecond)

	ch := make(chan Config, 4)
	h.RegisterListener(ch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.StartWatcher(ctx))
	require.Error(t, h.StartWatcher(ctx), "second start must fail")

	next := Default()
	next.Content = []string{"templates/**/*.html"}
	require.NoError(t, NewManager(path).Save(next))

	select {
	case got := <-ch:
		assert.Equal(t, []string{"templates/**/*.html"}, got.Content)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the saved config")
	}

	h.Stop()
	assert.Equal(t, []string{"templates/**/*.html"}, h.Get().Content)
}

func TestHolderWatcherStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, _ := newTestHolder(t, "content: ['*.html']\n")
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.StartWatcher(ctx))

	cancel()
	h.Stop()
}

func TestHolderWatcherRestartsAfterContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, _ := newTestHolder(t, "content: ['*.html']\n")
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.StartWatcher(ctx))

	cancel()
	h.wg.Wait()

	require.NoError(t, h.StartWatcher(context.Background()), "cancelled watcher must not block a new one")
	h.Stop()
}
