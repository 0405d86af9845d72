// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package mock

import (
	"bytes"
	"context"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"go.mondoo.com/sshcrypto/connection"
)

var _ connection.Connection = (*Connection)(nil)

// Fixture is the content of a mock recording
//
//	[commands."ssh -V"]
//	stderr = "OpenSSH_8.9p1 Ubuntu-3ubuntu0.1, OpenSSL 3.0.2 15 Mar 2022"
//
//	[files."/etc/os-release"]
//	content = "ID=ubuntu"
type Fixture struct {
	Commands map[string]CommandFixture `toml:"commands"`
	Files    map[string]FileFixture    `toml:"files"`
}

type CommandFixture struct {
	Stdout     string `toml:"stdout"`
	Stderr     string `toml:"stderr"`
	ExitStatus int    `toml:"exit_status"`
}

type FileFixture struct {
	Content string `toml:"content"`
}

// New creates an empty mock connection
func New() *Connection {
	return &Connection{
		commands: map[string]CommandFixture{},
		fs:       afero.NewMemMapFs(),
	}
}

// NewFromToml loads a mock connection from a toml recording
func NewFromToml(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read mock file")
	}

	var fixture Fixture
	if _, err := toml.Decode(string(data), &fixture); err != nil {
		return nil, errors.Wrap(err, "could not decode mock file "+path)
	}

	c := New()
	for cmd, res := range fixture.Commands {
		c.AddCommand(cmd, res)
	}
	for path, f := range fixture.Files {
		if err := c.AddFile(path, f.Content); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type Connection struct {
	commands map[string]CommandFixture
	fs       afero.Fs
}

func (c *Connection) AddCommand(command string, res CommandFixture) {
	c.commands[command] = res
}

func (c *Connection) AddFile(path string, content string) error {
	return afero.WriteFile(c.fs, path, []byte(content), 0o644)
}

// RunCommand returns the recorded result. Unknown commands behave like a
// missing binary in sh and exit with 127.
func (c *Connection) RunCommand(ctx context.Context, command string) (*connection.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, ok := c.commands[command]
	if !ok {
		log.Debug().Str("command", command).Msg("mock> command not recorded")
		return &connection.Command{
			Command:    command,
			Stdout:     &bytes.Buffer{},
			Stderr:     bytes.NewBufferString("sh: 1: " + command + ": not found"),
			ExitStatus: 127,
		}, nil
	}

	return &connection.Command{
		Command:    command,
		Stdout:     bytes.NewBufferString(res.Stdout),
		Stderr:     bytes.NewBufferString(res.Stderr),
		ExitStatus: res.ExitStatus,
	}, nil
}

func (c *Connection) FS() afero.Fs {
	return c.fs
}
