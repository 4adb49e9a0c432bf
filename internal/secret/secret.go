// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secret defines a simple interface for looking up the
// credentials for a host. Secrets are held in memory or read from
// the user's netrc file; they are never logged.
package secret

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// A DB is a secret database, returning a secret value for a name.
// For Gerrit hosts the value has the form user:token.
type DB interface {
	// Get returns the named secret and reports whether it was found.
	Get(name string) (secret string, ok bool)
}

// Map is a DB backed by an in-memory map.
type Map map[string]string

// Get returns the named secret.
func (m Map) Get(name string) (string, bool) {
	s, ok := m[name]
	return s, ok
}

// Empty returns a DB containing no secrets.
func Empty() DB { return Map(nil) }

// Or returns a DB that consults each db in order and returns the
// first secret found.
func Or(dbs ...DB) DB { return orDB(dbs) }

type orDB []DB

func (o orDB) Get(name string) (string, bool) {
	for _, db := range o {
		if s, ok := db.Get(name); ok {
			return s, true
		}
	}
	return "", false
}

// Netrc returns a DB that looks up hosts in the file named by the
// NETRC environment variable, or $HOME/.netrc if NETRC is unset.
// The secret for a machine entry is login:password.
// The file is read once, on first use.
func Netrc() DB { return &netrcDB{} }

type netrcDB struct {
	once sync.Once
	m    Map
}

func (db *netrcDB) Get(name string) (string, bool) {
	db.once.Do(func() { db.m = readNetrc() })
	return db.m.Get(name)
}

func readNetrc() Map {
	file := os.Getenv("NETRC")
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		file = filepath.Join(home, ".netrc")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	return parseNetrc(string(data))
}

// parseNetrc parses the token stream of a netrc file into a Map from
// machine name to login:password. Incomplete entries are dropped.
// The "default" machine and macro definitions are ignored.
func parseNetrc(data string) Map {
	m := make(Map)
	var machine, login, password string
	flush := func() {
		if machine != "" && login != "" && password != "" {
			m[machine] = login + ":" + password
		}
		machine, login, password = "", "", ""
	}
	fields := strings.Fields(data)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "machine":
			flush()
			if i+1 < len(fields) {
				i++
				machine = fields[i]
			}
		case "login":
			if i+1 < len(fields) {
				i++
				login = fields[i]
			}
		case "password":
			if i+1 < len(fields) {
				i++
				password = fields[i]
			}
		case "default":
			flush()
		case "macdef":
			// A macro runs to the next blank line; fields has
			// collapsed those, so stop parsing to be safe.
			flush()
			return m
		}
	}
	flush()
	return m
}
