// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mondoo.com/sshcrypto/cli/config"
	cli_errors "go.mondoo.com/sshcrypto/cli/errors"
	"go.mondoo.com/sshcrypto/cli/reporter"
	"go.mondoo.com/sshcrypto/cli/theme"
	"go.mondoo.com/sshcrypto/cli/theme/colors"
	"go.mondoo.com/sshcrypto/logger"
)

const rootCmdDesc = `sshcrypto recommends ciphers, key exchange algorithms, MACs, host key
algorithms and privilege separation settings for OpenSSH servers, based on
the operating system and the installed OpenSSH version.
`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sshcrypto",
	Short: "sshcrypto CLI",
	Long:  theme.DefaultTheme.Landing + "\n\n" + rootCmdDesc,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(cmd)
		config.DisplayUsedConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *cli_errors.CommandError
		if errors.As(err, &cmdErr) {
			if cmdErr.HasError() {
				log.Error().Err(cmdErr).Msg("command failed")
			}
			os.Exit(cmdErr.ExitCode())
		}
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	// NOTE: we need to call this super early, otherwise the CLI color output on Windows is broken for the first lines
	// since the log instance is already initialized, replace default zerolog color output with our own
	// use color logger by default
	logger.CliCompactLogger(logger.LogOutputWriter)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "set log-level: error, warn, info, debug, trace")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "set output format: "+reporter.AllFormats())
	bindRootFlags()

	config.Init(rootCmd)
}

func bindRootFlags() {
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initLogger(cmd *cobra.Command) {
	// environment variables always over-write custom flags
	envLevel, ok := logger.GetEnvLogLevel()
	if ok {
		logger.Set(envLevel)
		return
	}

	// retrieve log-level from flags
	level := viper.GetString("log-level")
	if v := viper.GetBool("verbose"); v {
		level = "debug"
	}
	logger.Set(level)
}

// newReporter writes to stdout, without colors if stdout is not a terminal
func newReporter(cmd *cobra.Command) (*reporter.Reporter, error) {
	r, err := reporter.New(viper.GetString("output"), cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		r.Colors = colors.NewTheme(termenv.Ascii)
	}
	return r, nil
}
