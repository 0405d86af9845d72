// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mondoo.com/sshcrypto/cli/theme/colors"
)

func TestSet(t *testing.T) {
	defer Set("info")

	Set("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.True(t, Debug)

	Set(" WARN ")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.False(t, Debug)

	Set("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestGetEnvLogLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	t.Setenv("TRACE", "")
	_, ok := GetEnvLogLevel()
	assert.False(t, ok)

	t.Setenv("DEBUG", "1")
	level, ok := GetEnvLogLevel()
	assert.True(t, ok)
	assert.Equal(t, "debug", level)

	t.Setenv("TRACE", "true")
	level, ok = GetEnvLogLevel()
	assert.True(t, ok)
	assert.Equal(t, "trace", level)
}

func TestRunScopedContext(t *testing.T) {
	orig := log.Logger
	defer func() { log.Logger = orig }()

	var buf bytes.Buffer
	UseJSONLogging(&buf)

	ctx := RunScopedContext(context.Background(), "run-1234")
	FromContext(ctx).Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-1234", entry[RunIDFieldKey])
	assert.Equal(t, "hello", entry["message"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	assert.Equal(t, &log.Logger, FromContext(context.Background()))
}

func TestCompactLevelMarkers(t *testing.T) {
	f := consoleFormatLevel(colors.NewTheme(termenv.Ascii))
	assert.Contains(t, f("warn"), "!")
	assert.Contains(t, f("error"), "x")
	assert.Contains(t, f("debug"), "DBG")
	assert.Contains(t, f(nil), "???")
	assert.Contains(t, f("verbose"), "???")
}

func TestDebugJSON(t *testing.T) {
	defer Set("info")

	var buf bytes.Buffer
	Set("info")
	DebugJSONTo(&buf, map[string]string{"family": "ubuntu"})
	assert.Empty(t, buf.String())

	Set("debug")
	DebugJSONTo(&buf, map[string]string{"family": "ubuntu"})
	assert.Contains(t, buf.String(), "family")
	assert.Contains(t, buf.String(), "ubuntu")
}
