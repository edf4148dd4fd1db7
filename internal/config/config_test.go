package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YUYINGBAO_ENV", "")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Env != EnvDevelop {
		t.Errorf("Env = %q, want develop", cfg.Env)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if !cfg.Debug {
		t.Error("Debug should be on outside release")
	}
}

func TestLoadReleaseEnv(t *testing.T) {
	t.Setenv("YUYINGBAO_ENV", EnvRelease)
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBaseURL != "https://yuyingbao.yideng.ltd/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Debug {
		t.Error("Debug should be off in release")
	}
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"null string", "null"},
		{"no scheme", "yuyingbao.yideng.ltd/api"},
		{"wrong scheme", "ftp://example.com/api"},
		{"missing host", "https:///api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("YUYINGBAO_ENV", "")
			t.Setenv("API_BASE_URL", tt.url)

			if _, err := Load(); !errors.Is(err, ErrInvalidBaseURL) {
				t.Errorf("Load() error = %v, want ErrInvalidBaseURL", err)
			}
		})
	}
}

func TestLoadTimeoutOverride(t *testing.T) {
	t.Setenv("YUYINGBAO_ENV", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTPTimeout.Seconds() != 30 {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
}
