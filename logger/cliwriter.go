// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mondoo.com/sshcrypto/cli/theme/colors"
)

type levelMarker struct {
	text  string
	color termenv.Color
}

func levelMarkers(theme colors.Theme) map[string]levelMarker {
	return map[string]levelMarker{
		"trace": {"TRC", theme.Secondary},
		"debug": {"DBG", theme.Primary},
		"info":  {"→", theme.Good},
		"warn":  {"!", theme.Medium},
		"error": {"x", theme.Error},
		"fatal": {"FTL", theme.Error},
		"panic": {"PNC", theme.Error},
	}
}

// NewConsoleWriter returns a human readable logger. The compact variant drops
// timestamps and prints single character level markers.
func NewConsoleWriter(out io.Writer, compact bool) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: out}

	if compact {
		w.FormatLevel = consoleFormatLevel(colors.DefaultColorTheme)
		w.FormatTimestamp = func(i interface{}) string { return "" }
	}

	return log.Output(w)
}

func consoleFormatLevel(theme colors.Theme) zerolog.Formatter {
	markers := levelMarkers(theme)

	return func(i interface{}) string {
		var m levelMarker
		switch v := i.(type) {
		case nil:
			m.text = "???"
		case string:
			var ok bool
			if m, ok = markers[v]; !ok {
				m.text = "???"
			}
		default:
			m.text = strings.ToUpper(fmt.Sprintf("%s", v))
			if len(m.text) > 3 {
				m.text = m.text[0:3]
			}
		}

		return termenv.String(m.text).Foreground(m.color).String()
	}
}
