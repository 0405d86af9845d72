// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package local

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"go.mondoo.com/sshcrypto/connection"
)

var _ connection.Connection = (*Connection)(nil)

func New() *Connection {
	// expect unix shell by default
	shell := []string{"sh", "-c"}

	if runtime.GOOS == "windows" {
		shell = []string{"powershell", "-c"}
	}

	return &Connection{
		shell: shell,
		fs:    afero.NewOsFs(),
	}
}

type Connection struct {
	shell []string
	fs    afero.Fs
}

// RunCommand runs the command through the local shell. A non-zero exit
// status is not an error, it is reported through Command.ExitStatus.
func (c *Connection) RunCommand(ctx context.Context, command string) (*connection.Command, error) {
	log.Debug().Msgf("local> run command %s", command)

	res := &connection.Command{
		Command: command,
		Stats:   connection.PerfStats{Start: time.Now()},
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}

	args := append(append([]string{}, c.shell[1:]...), command)
	cmd := exec.CommandContext(ctx, c.shell[0], args...)
	cmd.Stdout = res.Stdout
	cmd.Stderr = res.Stderr

	err := cmd.Run()
	res.Stats.Duration = time.Since(res.Stats.Start)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitStatus = exitErr.ExitCode()
			return res, nil
		}
		return nil, errors.Wrap(err, "could not run command "+command)
	}

	return res, nil
}

func (c *Connection) FS() afero.Fs {
	return c.fs
}
