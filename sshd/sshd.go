// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package sshd

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mondoo.com/sshcrypto/connection"
	"go.mondoo.com/sshcrypto/logger"
	"go.mondoo.com/sshcrypto/policy"
)

// VersionCommand prints the OpenSSH banner. The client and the server are
// shipped from the same release, so the client banner stands in for sshd.
const VersionCommand = "ssh -V"

var ErrNoBanner = errors.New("ssh did not print a version banner")

type Probe struct {
	conn connection.Connection
}

func NewProbe(conn connection.Connection) *Probe {
	return &Probe{conn: conn}
}

// Banner returns the first line that ssh -V prints. OpenSSH writes it to
// stderr; stdout is read when stderr is empty.
func (p *Probe) Banner(ctx context.Context) (string, error) {
	cmd, err := p.conn.RunCommand(ctx, VersionCommand)
	if err != nil {
		return "", errors.Wrap(err, "could not run "+VersionCommand)
	}

	if cmd.ExitStatus != 0 {
		msg := readAll(cmd.Stderr)
		return "", errors.Newf("%s exited with %d: %s", VersionCommand, cmd.ExitStatus, msg)
	}

	banner := firstLine(readAll(cmd.Stderr))
	if banner == "" {
		banner = firstLine(readAll(cmd.Stdout))
	}
	if banner == "" {
		return "", ErrNoBanner
	}
	return banner, nil
}

// Version parses the banner. It fails only if no banner could be read.
func (p *Probe) Version(ctx context.Context) (*policy.Version, error) {
	banner, err := p.Banner(ctx)
	if err != nil {
		return nil, err
	}
	return policy.ParseVersion(banner), nil
}

// DetectVersion returns the installed OpenSSH version. A missing binary or an
// unreadable banner yields the unknown version, never an error; only a done
// ctx is reported.
func DetectVersion(ctx context.Context, conn connection.Connection) (*policy.Version, error) {
	v, err := NewProbe(conn).Version(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.FromContext(ctx).Debug().Err(err).Msg("sshd> could not detect ssh version")
		return policy.ParseVersion(""), nil
	}
	logger.FromContext(ctx).Debug().Str("raw", v.Raw()).Str("version", v.String()).Msg("sshd> detected ssh version")
	return v, nil
}

func readAll(r io.Reader) string {
	if r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
