// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mcpserve exposes Gerrit review operations as Model Context
// Protocol tools over stdio.
//
// Every tool is a thin translation: validate arguments, make one call
// through the shared [gerrit.Client], reshape the result. Tools never
// retry and never hide pipeline errors; each failure is surfaced as a
// structured error object with a stable kind, so the calling client
// can decide whether to retry, fix its input, or give up.
package mcpserve

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
	ometric "go.opentelemetry.io/otel/metric"

	"github.com/gerritmcp/gerritmcp/internal/gerrit"
)

// A Server is the MCP tool server. It borrows the process-wide Gerrit
// client; it never constructs or closes HTTP clients of its own.
type Server struct {
	slog   *slog.Logger
	gerrit *gerrit.Client
	mcp    *server.MCPServer

	toolCalls  ometric.Int64Counter
	toolErrors ometric.Int64Counter
}

// New returns a server with all Gerrit tools registered.
// The meter is used to count tool invocations and failures.
func New(lg *slog.Logger, gc *gerrit.Client, meter ometric.Meter, version string) (*Server, error) {
	toolCalls, err := meter.Int64Counter("gerritmcp.tool.calls",
		ometric.WithDescription("Number of MCP tool invocations."))
	if err != nil {
		return nil, err
	}
	toolErrors, err := meter.Int64Counter("gerritmcp.tool.errors",
		ometric.WithDescription("Number of MCP tool invocations that returned an error."))
	if err != nil {
		return nil, err
	}

	s := &Server{
		slog:   lg,
		gerrit: gc,
		mcp: server.NewMCPServer(
			"gerrit-review",
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		toolCalls:  toolCalls,
		toolErrors: toolErrors,
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the client disconnects or the
// process is signaled.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcp)
}

// tool name attribute for the counters.
func toolAttr(name string) ometric.AddOption {
	return ometric.WithAttributes(attribute.String("tool", name))
}

// registerTools declares the wire contract: the tool names and
// parameter schemas an MCP client depends on.
func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("gerrit_get_commit_info",
			mcp.WithDescription("Fetch commit information for the current revision of a Gerrit change."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.getCommitInfo,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_get_change_detail",
			mcp.WithDescription("Fetch the full state of a Gerrit change: status, labels, reviewers, messages."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.getChangeDetail,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_get_commit_message",
			mcp.WithDescription("Fetch the commit message (subject and body) of the current revision of a Gerrit change."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.getCommitMessage,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_get_related_changes",
			mcp.WithDescription("Fetch the changes related to the current revision of a Gerrit change."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.getRelatedChanges,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_get_file_list",
			mcp.WithDescription("List the files changed in the current revision of a Gerrit change. The commit message pseudo-file is excluded."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.getFileList,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_get_file_diff",
			mcp.WithDescription("Fetch the diff of one file in the current revision of a Gerrit change, as an ordered line sequence with old/new line numbers."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithString("file_path", mcp.Required(),
				mcp.Description("Path of the file within the change.")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.getFileDiff,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_create_draft_comment",
			mcp.WithDescription("Create a draft comment on a file in the current revision of a Gerrit change. The draft stays invisible until gerrit_set_review publishes it. Calling again for the same target replaces the draft."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithString("file_path", mcp.Required(),
				mcp.Description("Path of the file to comment on.")),
			mcp.WithString("message", mcp.Required(),
				mcp.Description("The comment text.")),
			mcp.WithNumber("line",
				mcp.Description("1-based line number in the current revision. Exactly one of line or range_input must be given.")),
			mcp.WithObject("range_input",
				mcp.Description("Character range of the comment. Exactly one of line or range_input must be given."),
				mcp.Properties(map[string]any{
					"start_line":      map[string]any{"type": "number", "description": "Start line (1-based, inclusive)."},
					"start_character": map[string]any{"type": "number", "description": "Start character (0-based)."},
					"end_line":        map[string]any{"type": "number", "description": "End line (1-based, exclusive position)."},
					"end_character":   map[string]any{"type": "number", "description": "End character (0-based)."},
				})),
			mcp.WithString("side",
				mcp.Description("Side to attach the comment to: REVISION (default) or PARENT.")),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.createDraftComment,
	)

	s.mcp.AddTool(
		mcp.NewTool("gerrit_set_review",
			mcp.WithDescription("Vote Code-Review -1 or -2 on the current revision of a Gerrit change and publish ALL pending draft comments on the change, including drafts created outside this session."),
			mcp.WithString("change_id", mcp.Required(),
				mcp.Description("Change identifier: a change number, a project~branch~Change-Id triplet, or a Gerrit web URL.")),
			mcp.WithNumber("code_review_label", mcp.Required(),
				mcp.Description("Code-Review vote: -1 or -2. Positive votes are not supported.")),
			mcp.WithString("message",
				mcp.Description("Optional cover message for the review.")),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(true),
		),
		s.setReview,
	)
}
