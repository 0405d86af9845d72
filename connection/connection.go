// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package connection

import (
	"context"
	"io"
	"time"

	"github.com/spf13/afero"
)

// Connection gives probes access to the system they inspect
type Connection interface {
	// RunCommand executes a command on the target system
	RunCommand(ctx context.Context, command string) (*Command, error)
	// FS provides access to the file system of the target system
	FS() afero.Fs
}

type PerfStats struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
}

type Command struct {
	Command    string
	Stats      PerfStats
	Stdout     io.ReadWriter
	Stderr     io.ReadWriter
	ExitStatus int
}

// ReadFile reads a whole file from the connection's file system
func ReadFile(c Connection, path string) ([]byte, error) {
	return afero.ReadFile(c.FS(), path)
}
