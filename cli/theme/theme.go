// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package theme

import (
	"github.com/muesli/termenv"
	"go.mondoo.com/sshcrypto/cli/theme/colors"
)

// Theme bundles colors and symbols that depend on the terminal
type Theme struct {
	Colors  colors.Theme
	Landing string

	// check results
	Pass string
	Fail string
	Skip string
}

var DefaultTheme = OperatingSystemTheme

// logo for the cli help
const logo = `         _                           _
 ___ ___| |__   ___ _ __ _   _ _ __ | |_ ___
/ __/ __| '_ \ / __| '__| | | | '_ \| __/ _ \
\__ \__ \ | | | (__| |  | |_| | |_) | || (_) |
|___/___/_| |_|\___|_|   \__, | .__/ \__\___/
  mondoo™                |___/|_|`

func landing(c colors.Theme) string {
	return termenv.String(logo).Foreground(c.Primary).String()
}
