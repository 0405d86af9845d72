// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package theme

import "go.mondoo.com/sshcrypto/cli/theme/colors"

// OperatingSystemTheme for windows shell
// NOTE: legacy consoles cannot render the unicode check marks
var OperatingSystemTheme = &Theme{
	Colors:  colors.DefaultColorTheme,
	Landing: landing(colors.DefaultColorTheme),
	Pass:    "+",
	Fail:    "x",
	Skip:    ".",
}
