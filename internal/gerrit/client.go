// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gerrit implements an authenticated client for the Gerrit
// Code Review REST API.
//
// The client performs exactly one outbound HTTP call per operation:
// no caching, no retries, no batching. Failures are classified into
// the error kinds in [Kind] so that callers can surface each kind as
// a distinct, stable error.
package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gerritmcp/gerritmcp/internal/secret"
)

// maxErrBody bounds how much of a Gerrit error response body is
// carried in an [Error] for diagnostics.
const maxErrBody = 1024

// A Client is a connection to a Gerrit instance. It holds the single
// shared HTTP client used for every request; handlers must not
// construct their own.
//
// A Client is safe for concurrent use. It is never mutated after
// construction.
type Client struct {
	baseURL string // "https://gerrit.example.com", no trailing slash
	host    string // host name, used to look up credentials
	slog    *slog.Logger
	secret  secret.DB
	http    *http.Client
}

// New returns a new client for the Gerrit instance at baseURL,
// such as "https://go-review.googlesource.com".
// The client uses the given logger, secret database, and HTTP client.
//
// The secret database is consulted under the instance host name and
// must hold a value of the form user:token for HTTP basic auth.
// If no secret is found requests are sent without basic credentials,
// which supports transports that carry their own authentication
// (for instance an OAuth bearer transport).
func New(baseURL string, lg *slog.Logger, sdb secret.DB, hc *http.Client) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gerrit.New: bad base URL %q: %v", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("gerrit.New: base URL %q must be http(s) with a host", baseURL)
	}
	return &Client{
		baseURL: baseURL,
		host:    u.Host,
		slog:    lg,
		secret:  sdb,
		http:    hc,
	}, nil
}

// escapeID percent-encodes a change identifier or file path for use
// as a single URL path segment. Identifiers like project~branch~Iabc
// keep their ~ separators ('~' is unreserved); a '/' inside a project
// name or file path is encoded so Gerrit sees the intended segmentation.
func escapeID(id string) string {
	return url.PathEscape(id)
}

// do performs one call against the Gerrit REST API and decodes the
// response into obj (unless obj is nil). path is relative to the base
// URL and must begin with "/". If auth is true, the request goes
// through Gerrit's authenticated /a namespace and carries basic
// credentials when available. A non-nil body is sent as JSON.
//
// Every failure is returned as an [*Error]: 404 as KindNotFound,
// other non-2xx statuses as KindAPI, transport failures as
// KindNetwork, and undecodable 2xx bodies as KindMalformed.
func (c *Client) do(ctx context.Context, method, path string, auth bool, body, obj any) error {
	addr := c.baseURL + path
	if auth {
		addr = c.baseURL + "/a" + path
	}

	var payload io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return validationErr("encoding request body: %v", err)
		}
		payload = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr, payload)
	if err != nil {
		return validationErr("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	req.Header.Set("Accept", "application/json")
	if cred, ok := c.secret.Get(c.host); ok {
		user, pass, _ := strings.Cut(cred, ":")
		req.SetBasicAuth(user, pass)
	}

	c.slog.Info("gerrit request", "method", method, "url", addr)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Detail: fmt.Sprintf("%s %s", method, path), Err: err}
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return &Error{Kind: KindNetwork, Detail: "reading response body", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: resp.StatusCode, Detail: fmt.Sprintf("%s %s", method, path)}
	case resp.StatusCode/100 != 2:
		return &Error{Kind: KindAPI, Status: resp.StatusCode, Detail: truncate(data, maxErrBody)}
	}

	if obj == nil {
		return nil
	}
	return unmarshalBody(data, obj)
}

// get fetches path and decodes the body as JSON into obj.
func (c *Client) get(ctx context.Context, path string, obj any) error {
	return c.do(ctx, "GET", path, true, nil, obj)
}

// put sends body as JSON to path with PUT and decodes the response into obj.
func (c *Client) put(ctx context.Context, path string, body, obj any) error {
	return c.do(ctx, "PUT", path, true, body, obj)
}

// post sends body as JSON to path with POST and decodes the response into obj.
func (c *Client) post(ctx context.Context, path string, body, obj any) error {
	return c.do(ctx, "POST", path, true, body, obj)
}

// truncate returns data as a string, cut to at most n bytes.
func truncate(data []byte, n int) string {
	if len(data) > n {
		data = data[:n]
	}
	return string(bytes.TrimSpace(data))
}

// ValidateAuth checks that the configured credentials are accepted by
// the Gerrit instance, by fetching the calling user's own account.
func (c *Client) ValidateAuth(ctx context.Context) (*AccountInfo, error) {
	var account AccountInfo
	if err := c.get(ctx, "/accounts/self", &account); err != nil {
		return nil, err
	}
	return &account, nil
}
