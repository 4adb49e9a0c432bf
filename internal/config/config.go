// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the server configuration. Values come from an
// optional YAML file, then the environment, then command-line flags,
// in increasing order of precedence. Configuration is read once at
// process start; a missing required value is a startup failure, never
// a per-call one.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Auth types for talking to Gerrit.
const (
	AuthBasic  = "basic"  // HTTP basic auth with username + API token
	AuthBearer = "bearer" // OAuth bearer token (e.g. googlesource.com hosts)
)

// A Config holds the startup configuration for the server.
// The API token is deliberately excluded from YAML: secrets come from
// the environment, a flag, or the netrc file.
type Config struct {
	// URL is the base URL of the Gerrit instance,
	// such as https://gerrit.example.com.
	URL string `yaml:"url" env:"GERRIT_URL"`

	// Username is the Gerrit account name for basic auth.
	Username string `yaml:"username" env:"GERRIT_USERNAME"`

	// APIToken is the HTTP password or OAuth token for the account.
	// Never logged.
	APIToken string `yaml:"-" env:"GERRIT_API_TOKEN"`

	// AuthType selects how credentials are attached: AuthBasic or
	// AuthBearer.
	AuthType string `yaml:"auth_type" env:"GERRIT_AUTH_TYPE"`

	// Timeout bounds each Gerrit request.
	Timeout time.Duration `yaml:"timeout" env:"GERRIT_TIMEOUT"`

	// LogLevel is the initial slog level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"GERRIT_MCP_LOG_LEVEL"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		AuthType: AuthBasic,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// Load returns the configuration assembled from defaults, the YAML
// file at path (if path is non-empty), and the environment.
// Flag overrides are applied by the caller on top of the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %v", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %v", err)
	}
	return &cfg, nil
}

// Validate reports whether the configuration is complete enough to
// start. Username and token may both be absent for basic auth, in
// which case the caller falls back to the netrc file.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("Gerrit base URL is required (GERRIT_URL or -url)")
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("Gerrit base URL %q must start with http:// or https://", c.URL)
	}
	switch c.AuthType {
	case AuthBasic:
		if (c.Username == "") != (c.APIToken == "") {
			return fmt.Errorf("GERRIT_USERNAME and GERRIT_API_TOKEN must be set together")
		}
	case AuthBearer:
		if c.APIToken == "" {
			return fmt.Errorf("auth type %s requires GERRIT_API_TOKEN", AuthBearer)
		}
	default:
		return fmt.Errorf("auth type must be %s or %s, got %q", AuthBasic, AuthBearer, c.AuthType)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
