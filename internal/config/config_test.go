// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every GERRIT_* variable this package reads, so tests
// see only what they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GERRIT_URL", "GERRIT_USERNAME", "GERRIT_API_TOKEN",
		"GERRIT_AUTH_TYPE", "GERRIT_TIMEOUT", "GERRIT_MCP_LOG_LEVEL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AuthType != AuthBasic || cfg.Timeout != 30*time.Second || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "gerritmcp.yaml")
	data := `
url: https://gerrit.example.com
username: reviewbot
timeout: 10s
log_level: debug
`
	if err := os.WriteFile(file, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.URL != "https://gerrit.example.com" || cfg.Username != "reviewbot" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 10*time.Second || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v, want file to override defaults", cfg)
	}
	if cfg.AuthType != AuthBasic {
		t.Errorf("auth type = %q, want default kept for fields the file omits", cfg.AuthType)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "gerritmcp.yaml")
	if err := os.WriteFile(file, []byte("url: https://file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GERRIT_URL", "https://env.example.com")
	t.Setenv("GERRIT_API_TOKEN", "tok")
	t.Setenv("GERRIT_TIMEOUT", "5s")

	cfg, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.URL != "https://env.example.com" {
		t.Errorf("url = %q, want environment to override the file", cfg.URL)
	}
	if cfg.APIToken != "tok" || cfg.Timeout != 5*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadTokenNotReadFromYAML(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "gerritmcp.yaml")
	if err := os.WriteFile(file, []byte("url: https://gerrit.example.com\napi_token: leaked\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIToken != "" {
		t.Errorf("api token = %q, want YAML token ignored", cfg.APIToken)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		URL:      "https://gerrit.example.com",
		Username: "bot",
		APIToken: "tok",
		AuthType: AuthBasic,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	for _, tc := range []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing url", func(c *Config) { c.URL = "" }, "required"},
		{"bad scheme", func(c *Config) { c.URL = "gerrit.example.com" }, "http"},
		{"username without token", func(c *Config) { c.APIToken = "" }, "together"},
		{"token without username", func(c *Config) { c.Username = "" }, "together"},
		{"bearer without token", func(c *Config) { c.AuthType = AuthBearer; c.APIToken = "" }, "GERRIT_API_TOKEN"},
		{"unknown auth type", func(c *Config) { c.AuthType = "kerberos" }, "auth type"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}

	// Netrc fallback: basic auth with neither username nor token is fine.
	cfg := valid
	cfg.Username, cfg.APIToken = "", ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("netrc fallback config rejected: %v", err)
	}
}
