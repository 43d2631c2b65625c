package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/discovery"
	"github.com/muurk/textwatch/internal/protocol"
)

const configFile = "config.yaml"

// cliConfig holds the face options. Flags win over TEXTWATCH_* environment
// variables, which win over the config file.
type cliConfig struct {
	Companion       string        `mapstructure:"companion"`
	DiscoverTimeout time.Duration `mapstructure:"discover-timeout"`
	Debug           bool          `mapstructure:"debug"`
	LogLevel        string        `mapstructure:"log-level"`
	LogFile         string        `mapstructure:"log-file"`
	Settings        string        `mapstructure:"settings"`
	Clock24h        bool          `mapstructure:"24h"`
	Inbox           int           `mapstructure:"inbox"`
	Outbox          int           `mapstructure:"outbox"`
}

func loadCLIConfig(configPath string, flags *pflag.FlagSet) (cliConfig, error) {
	var cfg cliConfig

	v := viper.New()
	v.SetEnvPrefix("TEXTWATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("discover-timeout", discovery.DefaultScanTimeout)
	v.SetDefault("inbox", protocol.MinInboxSize)
	v.SetDefault("outbox", protocol.MinOutboxSize)

	dir, err := config.GetConfigDir()
	if err != nil {
		return cfg, err
	}
	v.SetDefault("settings", filepath.Join(dir, "settings.yaml"))
	v.SetDefault("log-file", filepath.Join(dir, "textwatch.log"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(dir, configFile))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
