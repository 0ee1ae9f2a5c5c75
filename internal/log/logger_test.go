// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetAttachesServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Reset(Config{Level: "debug", Output: &buf, Service: "svc-test", Version: "v0.0.1"})
	t.Cleanup(func() { Reset(Config{Output: os.Stderr}) })

	l := WithComponent("config")
	l.Debug().Str(FieldEvent, "config.test").Msg("debug line")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "svc-test", entry[FieldService])
	assert.Equal(t, "v0.0.1", entry[FieldVersion])
	assert.Equal(t, "config", entry[FieldComponent])
	assert.Equal(t, "config.test", entry[FieldEvent])
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestResetInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "")
	Reset(Config{Level: "nope", Output: &buf})
	t.Cleanup(func() { Reset(Config{Output: os.Stderr}) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	l := Base()
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestDeriveBuildsFields(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_SERVICE", "")
	Reset(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Reset(Config{Output: os.Stderr}) })

	l := Derive(func(c *zerolog.Context) {
		*c = c.Str(FieldRoot, "/src")
	})
	l.Info().Msg("derived")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/src", entry[FieldRoot])
	assert.Equal(t, "tailcfg", entry[FieldService])
}
