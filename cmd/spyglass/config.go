package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/projectcompass/spyglass/internal/model"
)

// cliConfig holds only dashboard-relevant configuration.
type cliConfig struct {
	APIURL         string        `mapstructure:"api-url"`
	RefreshEvery   time.Duration `mapstructure:"refresh-interval"`
	RecentLimit    int           `mapstructure:"inquiries-limit"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SPYGLASS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-url", model.DefaultAPIURL)
	v.SetDefault("refresh-interval", model.DefaultRefreshEvery)
	v.SetDefault("inquiries-limit", model.DefaultRecentLimit)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "spyglass", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.APIURL == "" {
		return cfg, fmt.Errorf("api-url must not be empty")
	}
	if cfg.RefreshEvery <= 0 {
		return cfg, fmt.Errorf("invalid refresh-interval: %s", cfg.RefreshEvery)
	}
	if cfg.RecentLimit <= 0 {
		return cfg, fmt.Errorf("invalid inquiries-limit: %d", cfg.RecentLimit)
	}

	return cfg, nil
}
