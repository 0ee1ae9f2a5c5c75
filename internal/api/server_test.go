// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ManuGH/tailcfg/internal/config"
	"github.com/ManuGH/tailcfg/internal/theme"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	cfg config.Config
}

func (s staticSource) Snapshot() (config.Config, string) {
	return config.Clone(s.cfg), s.Fingerprint()
}

func (s staticSource) Fingerprint() string {
	fp, _ := config.Fingerprint(s.cfg)
	return fp
}

// swappingSource hands out a different record on every call, like a holder
// reloading between requests.
type swappingSource struct {
	mu    sync.Mutex
	calls int
	cfgs  []config.Config
}

func (s *swappingSource) Snapshot() (config.Config, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfgs[s.calls%len(s.cfgs)]
	s.calls++
	fp, _ := config.Fingerprint(cfg)
	return config.Clone(cfg), fp
}

func newTestServer(t *testing.T) (*httptest.Server, staticSource) {
	t.Helper()
	src := staticSource{cfg: config.Default()}
	s, err := New(Config{ListenAddr: ":0", Source: src, Logger: zerolog.New(io.Discard)})
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv, src
}

func TestNewRequiresFields(t *testing.T) {
	_, err := New(Config{Source: staticSource{}})
	require.Error(t, err)
	_, err = New(Config{ListenAddr: ":0"})
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConfigEndpointServesCanonicalJSON(t *testing.T) {
	srv, src := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/config")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, src.Fingerprint(), resp.Header.Get(HeaderFingerprint))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	got, err := config.Parse(body, config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), got)
}

func TestThemeEndpointResolves(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/theme")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got theme.Theme
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"Fredoka"}, got.FontFamily["sans"])
	assert.Contains(t, got.Tokens, theme.SectionScreens)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConfigHeaderMatchesBodyAcrossReloads(t *testing.T) {
	other := config.Default()
	other.Content = []string{"templates/**/*.html"}
	src := &swappingSource{cfgs: []config.Config{config.Default(), other}}

	s, err := New(Config{ListenAddr: ":0", Source: src, Logger: zerolog.New(io.Discard)})
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	for i := 0; i < 4; i++ {
		resp, err := srv.Client().Get(srv.URL + "/config")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)

		got, err := config.Parse(body, config.FormatJSON)
		require.NoError(t, err)
		want, err := config.Fingerprint(got)
		require.NoError(t, err)
		assert.Equal(t, want, resp.Header.Get(HeaderFingerprint), "request %d", i)
	}
}
