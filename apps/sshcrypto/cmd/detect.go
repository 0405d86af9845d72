// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"github.com/spf13/cobra"
	"go.mondoo.com/sshcrypto/cli/reporter"
	"go.mondoo.com/sshcrypto/connection/local"
	"go.mondoo.com/sshcrypto/logger"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the platform and OpenSSH version of the local system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.RunScopedContext(cmd.Context(), "")

		r, err := newReporter(cmd)
		if err != nil {
			return err
		}

		pf, version, err := detectLocal(ctx, local.New(), true, true)
		if err != nil {
			return err
		}

		return r.PrintDetection(reporter.NewDetection(pf, version))
	},
}
