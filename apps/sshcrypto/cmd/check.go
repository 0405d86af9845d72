// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"github.com/spf13/cobra"
	"go.mondoo.com/sshcrypto/audit"
	cli_errors "go.mondoo.com/sshcrypto/cli/errors"
	"go.mondoo.com/sshcrypto/cli/reporter"
	"go.mondoo.com/sshcrypto/connection/local"
	"go.mondoo.com/sshcrypto/logger"
	"go.mondoo.com/sshcrypto/policy"
)

func init() {
	addTargetFlags(checkCmd.Flags())
	checkCmd.Flags().StringSlice("ciphers", nil, "configured Ciphers")
	checkCmd.Flags().StringSlice("kexs", nil, "configured KexAlgorithms")
	checkCmd.Flags().StringSlice("macs", nil, "configured MACs")
	checkCmd.Flags().StringSlice("hostkeys", nil, "configured host key types or HostKeyAlgorithms")
	checkCmd.Flags().String("privilege-separation", "", "configured UsePrivilegeSeparation")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare configured SSH crypto settings with the recommendation",
	Long: `Compare configured SSH crypto settings with the recommendation for the
platform. Categories that are not passed are skipped. The command exits with 1
if any category deviates from the recommendation.`,
	Example: `  sshcrypto check --os centos --release 7.9 --ssh-version 7.4 \
    --ciphers aes256-ctr,aes128-cbc --privilege-separation sandbox`,
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

		configured := audit.Configured{}
		configured.Ciphers, _ = cmd.Flags().GetStringSlice("ciphers")
		configured.KeyExchanges, _ = cmd.Flags().GetStringSlice("kexs")
		configured.MACs, _ = cmd.Flags().GetStringSlice("macs")
		configured.HostKeys, _ = cmd.Flags().GetStringSlice("hostkeys")
		configured.PrivilegeSeparation, _ = cmd.Flags().GetString("privilege-separation")

		baseline := policy.Resolve(t.os, t.version)
		report := audit.Check(baseline, configured)

		err = r.PrintAudit(reporter.NewAuditResult(reporter.NewResolution(t.os, t.version, baseline), report))
		if err != nil {
			return err
		}

		if !report.Passed() {
			return cli_errors.ExitCode1WithoutError
		}
		return nil
	},
}
