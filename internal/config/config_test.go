package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("expected development env, got %q", cfg.Server.Env)
	}
	if cfg.Session.CookieName != "camp_session" {
		t.Errorf("expected default cookie name, got %q", cfg.Session.CookieName)
	}
	if cfg.Session.MaxAge != 7*24*time.Hour {
		t.Errorf("expected a week of session life, got %v", cfg.Session.MaxAge)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_NAMESPACE", "staging")
	t.Setenv("SESSION_MAX_AGE", "1h")
	t.Setenv("SESSION_SECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.Namespace != "staging" {
		t.Errorf("expected namespace staging, got %q", cfg.Database.Namespace)
	}
	if cfg.Session.MaxAge != time.Hour {
		t.Errorf("expected 1h max age, got %v", cfg.Session.MaxAge)
	}
	if !cfg.Session.Secure {
		t.Error("expected secure cookie")
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "soon")
	t.Setenv("SESSION_SECURE", "yep")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Session.MaxAge != 7*24*time.Hour {
		t.Errorf("expected fallback max age, got %v", cfg.Session.MaxAge)
	}
	if cfg.Session.Secure {
		t.Error("expected fallback insecure cookie")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }, true},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, true},
		{"empty cookie name", func(c *Config) { c.Session.CookieName = "" }, true},
		{"non-positive max age", func(c *Config) { c.Session.MaxAge = 0 }, true},
		{"production requires secure cookie", func(c *Config) { c.Server.Env = "production" }, true},
		{"production with secure cookie", func(c *Config) {
			c.Server.Env = "production"
			c.Session.Secure = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
