// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

//go:build !windows

package local

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mondoo.com/sshcrypto/connection"
)

func TestRunCommand(t *testing.T) {
	conn := New()

	t.Run("stdout and stderr", func(t *testing.T) {
		cmd, err := conn.RunCommand(context.Background(), "echo out; echo err 1>&2")
		require.NoError(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)

		stdout, _ := io.ReadAll(cmd.Stdout)
		stderr, _ := io.ReadAll(cmd.Stderr)
		assert.Equal(t, "out\n", string(stdout))
		assert.Equal(t, "err\n", string(stderr))
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		cmd, err := conn.RunCommand(context.Background(), "exit 3")
		require.NoError(t, err)
		assert.Equal(t, 3, cmd.ExitStatus)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := conn.RunCommand(ctx, "true")
		assert.Error(t, err)
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, []byte("ID=alpine\n"), 0o644))

	data, err := connection.ReadFile(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "ID=alpine\n", string(data))
}
