// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"github.com/spf13/cobra"
	"go.mondoo.com/sshcrypto/cli/reporter"
	"go.mondoo.com/sshcrypto/connection/local"
	"go.mondoo.com/sshcrypto/logger"
	"go.mondoo.com/sshcrypto/policy"
)

func init() {
	addTargetFlags(resolveCmd.Flags())
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Recommend SSH crypto settings for a platform",
	Long: `Recommend ciphers, key exchange algorithms, MACs, host key algorithms and the
privilege separation mode for an OpenSSH server.

Values that are not passed via flags or the config file are detected on the
local system.`,
	Example: `  sshcrypto resolve --os ubuntu --release 22.04 --ssh-version 8.9
  sshcrypto resolve -o json`,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindTargetFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.RunScopedContext(cmd.Context(), "")

		r, err := newReporter(cmd)
		if err != nil {
			return err
		}

		t, err := resolveTarget(ctx, local.New())
		if err != nil {
			return err
		}

		bundle, err := policy.ResolveConcurrent(ctx, t.os, t.version)
		if err != nil {
			return err
		}
		logger.DebugJSON(bundle)

		return r.PrintResolution(reporter.NewResolution(t.os, t.version, bundle))
	},
}
