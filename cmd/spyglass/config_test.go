package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/projectcompass/spyglass/internal/model"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadCLIConfigDefaults(t *testing.T) {
	// A missing config file is tolerated; everything falls back to the
	// built-in defaults.
	cfg, err := loadCLIConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.APIURL != model.DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, model.DefaultAPIURL)
	}
	if cfg.RefreshEvery != model.DefaultRefreshEvery {
		t.Errorf("RefreshEvery = %v, want %v", cfg.RefreshEvery, model.DefaultRefreshEvery)
	}
	if cfg.RecentLimit != model.DefaultRecentLimit {
		t.Errorf("RecentLimit = %d, want %d", cfg.RecentLimit, model.DefaultRecentLimit)
	}
	if cfg.RequestTimeout != model.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, model.DefaultRequestTimeout)
	}
}

func TestLoadCLIConfigFile(t *testing.T) {
	path := writeConfigFile(t, "api-url: http://10.0.0.5:9000\nrefresh-interval: 2s\ninquiries-limit: 25\n")

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:9000" {
		t.Errorf("APIURL = %q, want the config file value", cfg.APIURL)
	}
	if cfg.RefreshEvery != 2*time.Second {
		t.Errorf("RefreshEvery = %v, want 2s", cfg.RefreshEvery)
	}
	if cfg.RecentLimit != 25 {
		t.Errorf("RecentLimit = %d, want 25", cfg.RecentLimit)
	}
	if cfg.RequestTimeout != model.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want the default", cfg.RequestTimeout)
	}
}

func TestLoadCLIConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "api-url: http://file.example:8000\n")
	t.Setenv("SPYGLASS_API_URL", "http://env.example:8000")
	t.Setenv("SPYGLASS_REFRESH_INTERVAL", "30s")

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.APIURL != "http://env.example:8000" {
		t.Errorf("APIURL = %q, want the environment value", cfg.APIURL)
	}
	if cfg.RefreshEvery != 30*time.Second {
		t.Errorf("RefreshEvery = %v, want 30s", cfg.RefreshEvery)
	}
}

func TestLoadCLIConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty api url", "api-url: \"\"\n"},
		{"zero refresh interval", "refresh-interval: 0s\n"},
		{"negative inquiries limit", "inquiries-limit: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.content)
			if _, err := loadCLIConfig(path); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
