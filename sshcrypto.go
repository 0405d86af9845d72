// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package sshcrypto

import (
	"fmt"
	"runtime"
)

// Version is set via ldflags
var Version string

// Build version is set via ldflags
var Build string

// Date is the build date, set via ldflags
var Date string

// GetVersion returns the version of the build
// it falls back to a development version when nothing was set via ldflags
func GetVersion() string {
	if Version == "" {
		return "0.0.0-dev"
	}
	return Version
}

// GetBuild returns the git sha of the build
func GetBuild() string {
	b := Build
	if len(b) == 0 {
		b = "development"
	}
	return b
}

// GetDate returns the date of this build
func GetDate() string {
	if Date == "" {
		return "unknown"
	}
	return Date
}

// Info returns the human readable version line
func Info() string {
	return fmt.Sprintf("sshcrypto %s (%s, %s) %s/%s", GetVersion(), GetBuild(), GetDate(), runtime.GOOS, runtime.GOARCH)
}
