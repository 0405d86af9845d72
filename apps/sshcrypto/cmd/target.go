// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.mondoo.com/sshcrypto/cli/config"
	"go.mondoo.com/sshcrypto/connection"
	"go.mondoo.com/sshcrypto/logger"
	"go.mondoo.com/sshcrypto/platform"
	"go.mondoo.com/sshcrypto/platform/detector"
	"go.mondoo.com/sshcrypto/policy"
	"go.mondoo.com/sshcrypto/sshd"
	"golang.org/x/sync/errgroup"
)

func addTargetFlags(flags *pflag.FlagSet) {
	flags.String("os", "", "platform name, e.g. ubuntu, debian, centos, amazon, mac_os_x (detected if not set)")
	flags.String("release", "", "platform release, e.g. 22.04 (detected if not set)")
	flags.String("ssh-version", "", "OpenSSH version or ssh -V banner, e.g. 8.9 (detected if not set)")
}

func bindTargetFlags(flags *pflag.FlagSet) {
	viper.BindPFlag("platform.name", flags.Lookup("os"))
	viper.BindPFlag("platform.release", flags.Lookup("release"))
	viper.BindPFlag("ssh.version", flags.Lookup("ssh-version"))
}

type target struct {
	os      policy.OSDescriptor
	version *policy.Version
}

// detectLocal runs the platform and ssh detection concurrently. Either one
// is skipped if it is not needed. An unknown platform is not an error.
func detectLocal(ctx context.Context, conn connection.Connection, needPlatform bool, needSSH bool) (*platform.Platform, *policy.Version, error) {
	var pf *platform.Platform
	var version *policy.Version

	g, gctx := errgroup.WithContext(ctx)
	if needPlatform {
		g.Go(func() error {
			p, err := detector.New(conn).Platform(gctx)
			if errors.Is(err, detector.ErrUnknownPlatform) {
				logger.FromContext(gctx).Warn().Msg("could not detect the operating system, no key exchange recommendation is available")
				err = nil
			}
			if err != nil {
				return errors.Wrap(err, "could not detect platform")
			}
			if p == nil {
				p = &platform.Platform{Name: "unknown-os"}
			}
			pf = p
			return nil
		})
	}
	if needSSH {
		g.Go(func() error {
			v, err := sshd.DetectVersion(gctx, conn)
			if err != nil {
				return errors.Wrap(err, "could not detect ssh version")
			}
			if v.IsUnknown() {
				logger.FromContext(gctx).Warn().Msg("could not detect the OpenSSH version, falling back to the most conservative recommendation")
			}
			version = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pf, version, nil
}

// resolveTarget combines configured values with local detection for the
// values that are missing
func resolveTarget(ctx context.Context, conn connection.Connection) (*target, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}

	name := cfg.Platform.Name
	release := cfg.Platform.Release
	rawVersion := cfg.SSH.Version

	needPlatform := name == "" || release == ""
	needSSH := rawVersion == ""

	pf, version, err := detectLocal(ctx, conn, needPlatform, needSSH)
	if err != nil {
		return nil, err
	}

	var desc policy.OSDescriptor
	if name == "" && release == "" {
		desc = pf.Descriptor()
	} else {
		if name == "" {
			name = pf.Name
		}
		if release == "" {
			release = pf.Release
		}
		desc = policy.NewOSDescriptor(name, release)
	}
	if !needSSH {
		version = policy.ParseVersion(rawVersion)
	}

	res := &target{
		os:      desc,
		version: version,
	}
	logger.FromContext(ctx).Debug().
		Str("platform", res.os.Name).
		Str("family", res.os.Family.String()).
		Str("release", res.os.Release).
		Str("ssh-version", res.version.String()).
		Msg("resolve target")
	return res, nil
}
