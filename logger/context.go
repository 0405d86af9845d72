// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package logger

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const RunIDFieldKey = "run-id"

// RunScopedContext returns a context that contains a logger which logs the
// run ID. An empty runID generates a new one.
//
//	ctx := RunScopedContext(context.Background(), "")
//	log := FromContext(ctx)
//	log.Debug().Msg("hello")
func RunScopedContext(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = uuid.New().String()
	}
	l := log.With().Str(RunIDFieldKey, runID).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger in the context if present, otherwise it
// returns the global logger
func FromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		// If a context logger was not set, we'll return our global
		// logger instead of the default noop logger
		return &log.Logger
	}
	return l
}
