package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/projectcompass/spyglass/internal/model"
)

// simConfig holds the simulator's configuration.
type simConfig struct {
	ListenAddr   string `mapstructure:"listen-addr"`
	FixturesPath string `mapstructure:"fixtures"`

	ConfigPath string `mapstructure:"-"`
}

func loadSimConfig(configPath string) (simConfig, error) {
	var cfg simConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("COMPASS_SIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("listen-addr", model.DefaultListenAddr)
	v.SetDefault("fixtures", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "spyglass", "sim.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	} else {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.ListenAddr == "" {
		return cfg, fmt.Errorf("listen-addr must not be empty")
	}

	// Expand ~ in fixtures path
	if strings.HasPrefix(cfg.FixturesPath, "~/") {
		cfg.FixturesPath = filepath.Join(home, cfg.FixturesPath[2:])
	}

	return cfg, nil
}
