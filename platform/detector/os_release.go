// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package detector

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mondoo.com/sshcrypto/connection"
	"go.mondoo.com/sshcrypto/logger"
)

func NewOSReleaseDetector(ctx context.Context, conn connection.Connection) *OSReleaseDetector {
	return &OSReleaseDetector{
		ctx:  ctx,
		conn: conn,
	}
}

// OSReleaseDetector collects the raw facts the platform resolvers work on
type OSReleaseDetector struct {
	ctx  context.Context
	conn connection.Connection
}

func (d *OSReleaseDetector) command(command string) (string, error) {
	cmd, err := d.conn.RunCommand(d.ctx, command)
	if err != nil {
		logger.FromContext(d.ctx).Debug().Err(err).Str("command", command).Msg("platform> could not run command")
		return "", err
	}

	if cmd.ExitStatus != 0 {
		return "", errors.Newf("command %q exited with %d", command, cmd.ExitStatus)
	}

	content, err := io.ReadAll(cmd.Stdout)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}

func (d *OSReleaseDetector) file(path string) (string, error) {
	content, err := connection.ReadFile(d.conn, path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// operating system name
func (d *OSReleaseDetector) unames() (string, error) {
	return d.command("uname -s")
}

// machine hardware name
func (d *OSReleaseDetector) unamem() (string, error) {
	return d.command("uname -m")
}

func (d *OSReleaseDetector) osrelease() (map[string]string, error) {
	content, err := d.file("/etc/os-release")
	if err != nil {
		return nil, err
	}
	return ParseOsRelease(content)
}

// lsb release is not the default on newer systems, but can still be used
// as a fallback mechanism
func (d *OSReleaseDetector) lsbconfig() (map[string]string, error) {
	content, err := d.file("/etc/lsb-release")
	if err != nil {
		return nil, err
	}
	return ParseLsbRelease(content)
}

const darwinSystemVersionPlist = "/System/Library/CoreServices/SystemVersion.plist"

// darwinSwVersion reads sw_vers and falls back to SystemVersion.plist
func (d *OSReleaseDetector) darwinSwVersion() (map[string]string, error) {
	content, err := d.command("/usr/bin/sw_vers")
	if err == nil {
		return ParseDarwinRelease(content)
	}

	data, ferr := connection.ReadFile(d.conn, darwinSystemVersionPlist)
	if ferr != nil {
		return nil, errors.CombineErrors(err, ferr)
	}
	return ParseDarwinSystemVersion(data)
}
