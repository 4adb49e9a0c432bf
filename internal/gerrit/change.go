// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// Change operations. Each operation performs a single request against
// the current revision of the identified change.

// CommitInfo returns the commit of the current revision of a change.
func (c *Client) CommitInfo(ctx context.Context, changeID string) (*CommitInfo, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	var ci CommitInfo
	if err := c.get(ctx, "/changes/"+escapeID(changeID)+"/revisions/current/commit", &ci); err != nil {
		return nil, err
	}
	return &ci, nil
}

// ChangeDetail returns the full state of a change: labels, messages,
// reviewers, and detailed accounts.
func (c *Client) ChangeDetail(ctx context.Context, changeID string) (*ChangeInfo, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	var ci ChangeInfo
	if err := c.get(ctx, "/changes/"+escapeID(changeID)+"/detail", &ci); err != nil {
		return nil, err
	}
	return &ci, nil
}

// A CommitMessage is the subject and full message of a commit.
type CommitMessage struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CommitMessage returns the commit message of the current revision
// of a change.
func (c *Client) CommitMessage(ctx context.Context, changeID string) (*CommitMessage, error) {
	ci, err := c.CommitInfo(ctx, changeID)
	if err != nil {
		return nil, err
	}
	return &CommitMessage{Subject: ci.Subject, Message: ci.Message}, nil
}

// RelatedChanges returns the changes related to the current revision
// of a change: ancestors and descendants in the same commit chain.
func (c *Client) RelatedChanges(ctx context.Context, changeID string) (*RelatedChangesInfo, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	var rci RelatedChangesInfo
	if err := c.get(ctx, "/changes/"+escapeID(changeID)+"/revisions/current/related", &rci); err != nil {
		return nil, err
	}
	return &rci, nil
}

// changeURLRE matches the change number in a Gerrit web URL such as
// https://gerrit.example.com/c/project/+/12345 or .../+/12345/2.
var changeURLRE = regexp.MustCompile(`/\+/(\d+)(?:/\d+)?$`)

// ExtractChangeID extracts a change number from a Gerrit web URL.
// It reports false if the URL does not identify a change.
func ExtractChangeID(changeURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(changeURL))
	if err != nil {
		return "", false
	}
	if m := changeURLRE.FindStringSubmatch(u.Path); m != nil {
		return m[1], true
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	return "", false
}
