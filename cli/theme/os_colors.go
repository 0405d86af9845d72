// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

//go:build !windows

package theme

import "go.mondoo.com/sshcrypto/cli/theme/colors"

// OperatingSystemTheme for unix shell
var OperatingSystemTheme = &Theme{
	Colors:  colors.DefaultColorTheme,
	Landing: landing(colors.DefaultColorTheme),
	Pass:    "✓",
	Fail:    "✕",
	Skip:    "»",
}
