// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mondoo.com/sshcrypto/logger"
)

/*
	Configuration is loaded in this order:
	ENV -> --config / $SSHCRYPTO_CONFIG_PATH -> ~/.config/mondoo/sshcrypto.yml -> /etc/opt/mondoo/sshcrypto.yml -> defaults
*/

const (
	EnvPrefix     = "sshcrypto"
	envConfigPath = "SSHCRYPTO_CONFIG_PATH"
)

var (
	// AppFs is the file system used to look up config files
	AppFs = afero.NewOsFs()

	DefaultConfigFile = "sshcrypto.yml"

	// UserProvidedPath is the value of the --config flag
	UserProvidedPath string
	// Path is the currently loaded config location or the default location
	// if no config exists
	Path string
	// Source describes where Path came from
	Source string
	// LoadedConfig is true if a config file was read
	LoadedConfig bool
)

// Init registers the config flag and loads the config before any command runs
func Init(rootCmd *cobra.Command) {
	cobra.OnInitialize(InitViperConfig)
	// persistent flags are global for the application
	rootCmd.PersistentFlags().StringVar(&UserProvidedPath, "config", "", "Set config file path (default $HOME/.config/mondoo/"+DefaultConfigFile+")")
}

func InitViperConfig() {
	viper.SetConfigType("yaml")

	Path = strings.TrimSpace(UserProvidedPath)
	if len(Path) == 0 && len(os.Getenv(envConfigPath)) > 0 {
		// fallback to env variable if provided, but only if --config is not used
		Source = "$" + envConfigPath
		Path = os.Getenv(envConfigPath)
	} else if len(Path) != 0 {
		Source = "--config"
	} else {
		Source = "default"
	}

	// check if the default config file is available
	if Path == "" {
		Path = autodetectConfig()
	}

	LoadedConfig = false
	if Path != "" {
		viper.SetConfigFile(Path)

		// if the file exists, load it
		if ProbeFile(Path) {
			log.Debug().Str("configfile", viper.ConfigFileUsed()).Msg("try to load local config file")
			data, err := afero.ReadFile(AppFs, Path)
			if err == nil {
				err = viper.ReadConfig(strings.NewReader(string(data)))
			}
			if err == nil {
				LoadedConfig = true
			} else {
				log.Error().Err(err).Str("path", Path).Msg("could not read config file")
			}
		}
	}

	// override values with env variables
	viper.SetEnvPrefix(EnvPrefix)
	// to parse env variables properly we need to replace some chars
	// all hyphens need to be underscores
	// all dots need to be underscores
	replacer := strings.NewReplacer("-", "_", ".", "_")
	viper.SetEnvKeyReplacer(replacer)

	// read in environment variables that match
	viper.AutomaticEnv()

	// by default it uses console output, for production we may want to set it to json output
	if viper.GetString("log.format") == "json" {
		logger.UseJSONLogging(logger.LogOutputWriter)
	}
}

// autodetectConfig returns the first config file that exists, or the home
// config path if none does
func autodetectConfig() string {
	var candidates []string

	home, err := homedir.Dir()
	if err != nil {
		log.Debug().Err(err).Msg("could not determine home directory")
	} else {
		candidates = append(candidates, filepath.Join(home, ".config", "mondoo", DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join("/etc", "opt", "mondoo", DefaultConfigFile))

	for _, path := range candidates {
		if ProbeFile(path) {
			log.Debug().Str("path", path).Msg("found config file")
			return path
		}
	}

	if len(candidates) > 1 {
		return candidates[0]
	}
	return ""
}

// ProbeFile is true if path is a readable regular file
func ProbeFile(path string) bool {
	stat, err := AppFs.Stat(path)
	if err != nil || stat.IsDir() {
		return false
	}
	f, err := AppFs.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func DisplayUsedConfig() {
	if !LoadedConfig && len(UserProvidedPath) > 0 {
		log.Warn().Msg("could not load configuration file " + UserProvidedPath)
	} else if LoadedConfig {
		log.Debug().Msg("loaded configuration from " + Path + " using source " + Source)
	} else {
		log.Debug().Msg("no configuration file provided, using defaults")
	}
}

func Read() (*Config, error) {
	// load viper config into a struct
	var opts Config
	err := viper.Unmarshal(&opts)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode into config struct")
	}

	return &opts, nil
}

type Config struct {
	LogLevel string    `json:"log-level,omitempty" mapstructure:"log-level"`
	Verbose  bool      `json:"verbose,omitempty" mapstructure:"verbose"`
	Log      LogConfig `json:"log,omitempty" mapstructure:"log"`
	// Output is the report format
	Output string `json:"output,omitempty" mapstructure:"output"`

	// Platform and SSH override local detection
	Platform PlatformConfig `json:"platform,omitempty" mapstructure:"platform"`
	SSH      SSHConfig      `json:"ssh,omitempty" mapstructure:"ssh"`
}

type LogConfig struct {
	Format string `json:"format,omitempty" mapstructure:"format"`
}

type PlatformConfig struct {
	Name    string `json:"name,omitempty" mapstructure:"name"`
	Release string `json:"release,omitempty" mapstructure:"release"`
}

type SSHConfig struct {
	Version string `json:"version,omitempty" mapstructure:"version"`
}
