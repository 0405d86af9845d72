// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Debug is set to true if the application is running in a debug mode
var Debug bool

// LogOutputWriter is the writer all cli logs go to
var LogOutputWriter io.Writer = os.Stderr

func init() {
	Set("info")
	// uses cli logger by default
	CliCompactLogger(LogOutputWriter)
}

func UseJSONLogging(out io.Writer) {
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// CliCompactLogger uses the console writer without timestamps and with
// single character level markers
func CliCompactLogger(out io.Writer) {
	log.Logger = NewConsoleWriter(out, true)
}

// Set will set up the logger
func Set(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	Debug = zerolog.GlobalLevel() <= zerolog.DebugLevel
}

// GetEnvLogLevel reads the log level from the DEBUG and TRACE environment
// variables. They take precedence over any flag.
func GetEnvLogLevel() (string, bool) {
	if isTrue(os.Getenv("TRACE")) {
		return "trace", true
	}
	if isTrue(os.Getenv("DEBUG")) {
		return "debug", true
	}
	return "", false
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
