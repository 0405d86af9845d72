// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	home          = getHomeDir()
	homeConfigDir = filepath.Join(home, ".config", "mondoo")
	homeConfig    = filepath.Join(homeConfigDir, DefaultConfigFile)

	systemConfigDir = filepath.Join("/etc", "opt", "mondoo")
	systemConfig    = filepath.Join(systemConfigDir, DefaultConfigFile)

	configBody = []byte("output: json\n")
)

func getHomeDir() string {
	home, _ := homedir.Dir()
	return home
}

func resetAppFsToMemFs() {
	AppFs = afero.NewMemMapFs()
	AppFs.MkdirAll(homeConfigDir, 0o755)
	AppFs.MkdirAll(systemConfigDir, 0o755)
}

func Test_autodetectConfig(t *testing.T) {
	defer func() {
		AppFs = afero.NewOsFs()
	}()

	t.Run("test homeConfig returned if exists", func(t *testing.T) {
		resetAppFsToMemFs()
		afero.WriteFile(AppFs, homeConfig, configBody, 0o644)

		config := autodetectConfig()
		assert.Equal(t, homeConfig, config)
	})

	t.Run("test homeConfig returned even if systemConfig exists", func(t *testing.T) {
		resetAppFsToMemFs()
		afero.WriteFile(AppFs, homeConfig, configBody, 0o644)
		afero.WriteFile(AppFs, systemConfig, configBody, 0o644)

		config := autodetectConfig()
		assert.Equal(t, homeConfig, config)
	})

	t.Run("test systemConfig returned", func(t *testing.T) {
		resetAppFsToMemFs()
		afero.WriteFile(AppFs, systemConfig, configBody, 0o644)

		config := autodetectConfig()
		assert.Equal(t, systemConfig, config)
	})

	t.Run("test homeConfig is the default", func(t *testing.T) {
		resetAppFsToMemFs()

		config := autodetectConfig()
		assert.Equal(t, homeConfig, config)
	})
}

func Test_probeConfigMemFs(t *testing.T) {
	defer func() {
		AppFs = afero.NewOsFs()
	}()

	resetAppFsToMemFs()
	afero.WriteFile(AppFs, homeConfig, configBody, 0o644)

	assert.False(t, ProbeFile(homeConfigDir))
	assert.True(t, ProbeFile(homeConfig))
	assert.False(t, ProbeFile(homeConfig+".nothere"))
}

func TestInitViperConfig(t *testing.T) {
	defer func() {
		AppFs = afero.NewOsFs()
		UserProvidedPath = ""
		viper.Reset()
	}()

	resetAppFsToMemFs()
	custom := "/tmp/custom.yml"
	afero.WriteFile(AppFs, custom, []byte("platform:\n  name: rocky\n  release: \"9.2\"\n"), 0o644)

	t.Setenv(envConfigPath, "")
	UserProvidedPath = custom
	InitViperConfig()

	assert.True(t, LoadedConfig)
	assert.Equal(t, "--config", Source)
	assert.Equal(t, custom, Path)

	t.Setenv("SSHCRYPTO_SSH_VERSION", "7.4")
	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "rocky", cfg.Platform.Name)
	assert.Equal(t, "9.2", cfg.Platform.Release)
	assert.Equal(t, "7.4", viper.GetString("ssh.version"))
}

func TestConfigPathFromEnv(t *testing.T) {
	defer func() {
		AppFs = afero.NewOsFs()
		viper.Reset()
	}()

	resetAppFsToMemFs()
	t.Setenv(envConfigPath, "/nothere.yml")
	UserProvidedPath = ""
	InitViperConfig()

	assert.False(t, LoadedConfig)
	assert.Equal(t, "$"+envConfigPath, Source)
	assert.Equal(t, "/nothere.yml", Path)
}

func TestConfigParsing(t *testing.T) {
	defer viper.Reset()

	data := `
log-level: debug
verbose: true
output: yaml
log:
  format: json
platform:
  name: ubuntu
  release: "22.04"
ssh:
  version: OpenSSH_8.9p1
`

	viper.SetConfigType("yaml")
	err := viper.ReadConfig(strings.NewReader(data))
	require.NoError(t, err)

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "ubuntu", cfg.Platform.Name)
	assert.Equal(t, "22.04", cfg.Platform.Release)
	assert.Equal(t, "OpenSSH_8.9p1", cfg.SSH.Version)
}
