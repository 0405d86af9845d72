// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package sshcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionDefaults(t *testing.T) {
	assert.Equal(t, "0.0.0-dev", GetVersion())
	assert.Equal(t, "development", GetBuild())
	assert.Contains(t, Info(), "sshcrypto 0.0.0-dev (development, unknown)")
}

func TestVersionFromLdflags(t *testing.T) {
	defer func() { Version, Build = "", "" }()
	Version, Build = "1.2.3", "abcdef"
	assert.Equal(t, "1.2.3", GetVersion())
	assert.Contains(t, Info(), "sshcrypto 1.2.3 (abcdef, unknown)")
}
