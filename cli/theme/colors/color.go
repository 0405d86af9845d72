// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package colors

// NOTE: this package is used by various packages and should really have NO external dependency

import (
	"github.com/muesli/termenv"
)

// Color Theme
type Theme struct {
	// messages
	Primary   termenv.Color
	Secondary termenv.Color
	Disabled  termenv.Color
	Error     termenv.Color
	Success   termenv.Color

	// check results
	Good    termenv.Color
	Medium  termenv.Color
	Failed  termenv.Color
	Unknown termenv.Color
}

var DefaultColorTheme = NewTheme(termenv.ColorProfile())

// NewTheme maps the theme onto the capabilities of the given terminal profile
func NewTheme(profile termenv.Profile) Theme {
	return Theme{
		Primary:   profile.Color("#a385f7"),
		Secondary: profile.Color("#5f87ff"),
		Disabled:  profile.Color("#808080"),
		Error:     profile.Color("#ff5f5f"),
		Success:   profile.Color("#00d787"),

		Good:    profile.Color("#00d787"),
		Medium:  profile.Color("#ffd75f"),
		Failed:  profile.Color("#ff0087"),
		Unknown: profile.Color("#bcbcbc"),
	}
}

func ProfileName(profile termenv.Profile) string {
	switch profile {
	case termenv.Ascii:
		return "Ascii"
	case termenv.ANSI:
		return "ANSI"
	case termenv.ANSI256:
		return "ANSI256"
	case termenv.TrueColor:
		return "TrueColor"
	default:
		return "unknown"
	}
}
