// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"context"
)

// Comment sides.
const (
	SideRevision = "REVISION"
	SideParent   = "PARENT"
)

// codeReviewLabel is the label this client votes on. The client is
// scoped to flagging issues: only the blocking values -1 and -2 are
// ever sent.
const codeReviewLabel = "Code-Review"

// CreateDraftComment creates a draft comment on the current revision
// of a change. The draft stays invisible to other reviewers until a
// review is submitted with [Client.SetReview].
//
// Gerrit treats a second call for an equivalent target as an upsert,
// not a duplicate; the client does no deduplication of its own.
func (c *Client) CreateDraftComment(ctx context.Context, changeID string, in CommentInput) (*CommentInfo, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	if in.Path == "" {
		return nil, validationErr("comment path is required")
	}
	if in.Message == "" {
		return nil, validationErr("comment message is required")
	}
	switch {
	case in.Line != 0 && in.Range != nil:
		return nil, validationErr("line and range are mutually exclusive")
	case in.Line == 0 && in.Range == nil:
		return nil, validationErr("exactly one of line or range is required")
	case in.Line < 0:
		return nil, validationErr("line must be a positive line number, got %d", in.Line)
	}
	switch in.Side {
	case "":
		in.Side = SideRevision
	case SideRevision, SideParent:
	default:
		return nil, validationErr("side must be %s or %s, got %q", SideRevision, SideParent, in.Side)
	}

	var ci CommentInfo
	if err := c.put(ctx, "/changes/"+escapeID(changeID)+"/revisions/current/drafts", in, &ci); err != nil {
		return nil, err
	}
	return &ci, nil
}

// SetReview votes the given Code-Review value on the current revision
// of a change, with an optional cover message, and publishes every
// draft comment currently pending on the change. That includes drafts
// created outside this process; Gerrit does not scope drafts to a
// session and neither do we.
//
// label must be -1 or -2. This client never approves.
func (c *Client) SetReview(ctx context.Context, changeID string, label int, message string) (*ReviewResult, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	if label != -1 && label != -2 {
		return nil, validationErr("Code-Review label must be -1 or -2, got %d", label)
	}

	in := ReviewInput{
		Message: message,
		Labels:  map[string]int{codeReviewLabel: label},
		Drafts:  "PUBLISH",
	}
	var res ReviewResult
	if err := c.post(ctx, "/changes/"+escapeID(changeID)+"/revisions/current/review", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
