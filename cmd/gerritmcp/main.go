// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gerritmcp is an MCP server that lets an AI coding assistant drive a
// Gerrit code review: fetch commit metadata, list changed files, read
// diffs, stage draft comments, and submit a blocking review.
//
// It speaks the Model Context Protocol over stdin/stdout and talks to
// a single Gerrit instance configured at startup:
//
//	GERRIT_URL=https://gerrit.example.com \
//	GERRIT_USERNAME=reviewbot \
//	GERRIT_API_TOKEN=... \
//	gerritmcp
//
// Each environment variable can be overridden by the equivalent flag.
// When no username/token pair is given, credentials for the Gerrit
// host are looked up in $HOME/.netrc.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"

	"github.com/gerritmcp/gerritmcp/internal/config"
	"github.com/gerritmcp/gerritmcp/internal/gerrit"
	"github.com/gerritmcp/gerritmcp/internal/mcpserve"
	"github.com/gerritmcp/gerritmcp/internal/secret"
)

const version = "0.2.0"

type mcpFlags struct {
	configFile string
	gerritURL  string
	username   string
	apiToken   string
	authType   string
	level      string
}

var flags mcpFlags

func init() {
	flag.StringVar(&flags.configFile, "config", "", "path to optional YAML config file")
	flag.StringVar(&flags.gerritURL, "url", "", "base URL of the Gerrit instance")
	flag.StringVar(&flags.username, "username", "", "Gerrit account username")
	flag.StringVar(&flags.apiToken, "token", "", "Gerrit HTTP password or API token")
	flag.StringVar(&flags.authType, "auth", "", "auth type: basic or bearer")
	flag.StringVar(&flags.level, "level", "", "initial log level")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(flags.configFile)
	if err != nil {
		log.Fatal(err)
	}
	// Flags take precedence over environment and file.
	if flags.gerritURL != "" {
		cfg.URL = flags.gerritURL
	}
	if flags.username != "" {
		cfg.Username = flags.username
	}
	if flags.apiToken != "" {
		cfg.APIToken = flags.apiToken
	}
	if flags.authType != "" {
		cfg.AuthType = flags.authType
	}
	if flags.level != "" {
		cfg.LogLevel = flags.level
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	level := new(slog.LevelVar)
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatal(err)
	}
	// MCP owns stdout; logs go to stderr.
	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u, err := url.Parse(cfg.URL)
	if err != nil {
		log.Fatal(err)
	}

	// The one shared HTTP client. Constructed here, used by every
	// tool call, and released on the way out; no handler makes its
	// own.
	hc := &http.Client{Timeout: cfg.Timeout}
	sdb := secret.Empty()
	switch cfg.AuthType {
	case config.AuthBearer:
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken})
		hc = oauth2.NewClient(ctx, src)
		hc.Timeout = cfg.Timeout
	default:
		if cfg.Username != "" {
			sdb = secret.Map{u.Host: cfg.Username + ":" + cfg.APIToken}
		} else {
			sdb = secret.Netrc()
			if _, ok := sdb.Get(u.Host); !ok {
				log.Fatalf("no credentials for %s: set GERRIT_USERNAME and GERRIT_API_TOKEN or add a netrc entry", u.Host)
			}
		}
	}
	defer hc.CloseIdleConnections()

	gc, err := gerrit.New(cfg.URL, lg, sdb, hc)
	if err != nil {
		log.Fatal(err)
	}

	if account, err := gc.ValidateAuth(ctx); err != nil {
		// Not fatal: the instance may be briefly unreachable, and
		// every tool call reports its own error anyway.
		lg.Warn("gerrit auth check failed", "host", u.Host, "err", err)
	} else {
		lg.Info("gerrit auth ok", "host", u.Host, "account", account.UserName)
	}

	srv, err := mcpserve.New(lg, gc, otel.Meter("gerritmcp"), version)
	if err != nil {
		log.Fatal(err)
	}

	lg.Info("gerritmcp serving stdio", "gerrit", cfg.URL, "version", version)
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
