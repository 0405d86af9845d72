// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

// ExitCode1WithoutError ends the command with exit code 1 without printing
// anything, e.g. when a check found deviations that were already reported
var ExitCode1WithoutError = NewCommandError(nil, 1)

type CommandError struct {
	exitCode int
	err      error
}

func NewCommandError(err error, exitCode int) *CommandError {
	return &CommandError{
		exitCode: exitCode,
		err:      err,
	}
}

func (e *CommandError) ExitCode() int {
	return e.exitCode
}

func (e *CommandError) HasError() bool {
	return e.err != nil
}

func (e *CommandError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.err
}
