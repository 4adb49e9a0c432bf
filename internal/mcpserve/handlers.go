// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcpserve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gerritmcp/gerritmcp/internal/gerrit"
)

// A toolError is the structured error object a tool returns instead
// of raising across the MCP boundary. Error holds one of the stable
// kinds from [gerrit.Kind]; Detail is human-readable.
type toolError struct {
	Error    string `json:"error"`
	Detail   string `json:"detail"`
	Tool     string `json:"tool"`
	ChangeID string `json:"change_id,omitempty"`
}

// ok marshals v as the successful result of tool.
func (s *Server) ok(ctx context.Context, tool string, v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		// fail counts the call; counting here too would double it.
		return s.fail(ctx, tool, "", &gerrit.Error{Kind: gerrit.KindMalformed, Detail: "encoding result", Err: err})
	}
	s.toolCalls.Add(ctx, 1, toolAttr(tool))
	return mcp.NewToolResultText(string(data)), nil
}

// fail turns err into the tool's structured error result. The error
// kind passes through unchanged; only the tool name and change id are
// attached for diagnostics.
func (s *Server) fail(ctx context.Context, tool, changeID string, err error) (*mcp.CallToolResult, error) {
	s.toolCalls.Add(ctx, 1, toolAttr(tool))
	s.toolErrors.Add(ctx, 1, toolAttr(tool))

	kind := gerrit.ErrorKind(err)
	if kind == "" {
		kind = "internal_error"
	}
	s.slog.Warn("tool failed", "tool", tool, "change", changeID, "kind", string(kind), "err", err)

	te := toolError{
		Error:    string(kind),
		Detail:   err.Error(),
		Tool:     tool,
		ChangeID: changeID,
	}
	data, merr := json.Marshal(te)
	if merr != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}

// badArg reports a tool argument failure as a validation error.
func badArg(err error) error {
	return &gerrit.Error{Kind: gerrit.KindValidation, Detail: err.Error()}
}

// changeIDArg returns the change_id argument. A Gerrit web URL is
// resolved to its change number, so clients can paste the URL a
// reviewer would share.
func changeIDArg(req mcp.CallToolRequest) (string, error) {
	id, err := req.RequireString("change_id")
	if err != nil {
		return "", badArg(err)
	}
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		num, ok := gerrit.ExtractChangeID(id)
		if !ok {
			return "", &gerrit.Error{Kind: gerrit.KindValidation,
				Detail: fmt.Sprintf("cannot extract a change number from URL %q", id)}
		}
		return num, nil
	}
	return id, nil
}

func (s *Server) getCommitInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_get_commit_info"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	ci, err := s.gerrit.CommitInfo(ctx, changeID)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, ci)
}

func (s *Server) getChangeDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_get_change_detail"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	ci, err := s.gerrit.ChangeDetail(ctx, changeID)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, ci)
}

func (s *Server) getCommitMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_get_commit_message"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	cm, err := s.gerrit.CommitMessage(ctx, changeID)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, cm)
}

func (s *Server) getRelatedChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_get_related_changes"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	rci, err := s.gerrit.RelatedChanges(ctx, changeID)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, rci)
}

func (s *Server) getFileList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_get_file_list"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	files, err := s.gerrit.Files(ctx, changeID)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, map[string]any{"files": files})
}

func (s *Server) getFileDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_get_file_diff"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	path, err := req.RequireString("file_path")
	if err != nil {
		return s.fail(ctx, tool, changeID, badArg(err))
	}
	fd, err := s.gerrit.FileDiff(ctx, changeID, path)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, fd)
}

func (s *Server) createDraftComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_create_draft_comment"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	path, err := req.RequireString("file_path")
	if err != nil {
		return s.fail(ctx, tool, changeID, badArg(err))
	}
	message, err := req.RequireString("message")
	if err != nil {
		return s.fail(ctx, tool, changeID, badArg(err))
	}

	in := gerrit.CommentInput{
		Path:       path,
		Message:    message,
		Side:       req.GetString("side", ""),
		Unresolved: true,
	}

	args := req.GetArguments()
	lineArg, hasLine := args["line"]
	rangeArg, hasRange := args["range_input"]
	if hasLine == hasRange {
		return s.fail(ctx, tool, changeID,
			&gerrit.Error{Kind: gerrit.KindValidation, Detail: "exactly one of line or range_input must be given"})
	}
	if hasLine {
		f, ok := lineArg.(float64)
		if !ok || f != float64(int(f)) {
			return s.fail(ctx, tool, changeID,
				&gerrit.Error{Kind: gerrit.KindValidation, Detail: "line must be an integer"})
		}
		in.Line = int(f)
	}
	if hasRange {
		data, err := json.Marshal(rangeArg)
		if err != nil {
			return s.fail(ctx, tool, changeID, badArg(err))
		}
		var r gerrit.CommentRange
		if err := json.Unmarshal(data, &r); err != nil {
			return s.fail(ctx, tool, changeID,
				&gerrit.Error{Kind: gerrit.KindValidation, Detail: "range_input is not a valid comment range", Err: err})
		}
		if r.StartLine < 1 || r.EndLine < 1 {
			return s.fail(ctx, tool, changeID,
				&gerrit.Error{Kind: gerrit.KindValidation, Detail: "range_input start_line and end_line must be 1-based line numbers"})
		}
		in.Range = &r
	}

	ci, err := s.gerrit.CreateDraftComment(ctx, changeID, in)
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, ci)
}

func (s *Server) setReview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "gerrit_set_review"
	changeID, err := changeIDArg(req)
	if err != nil {
		return s.fail(ctx, tool, "", err)
	}
	labelF, err := req.RequireFloat("code_review_label")
	if err != nil {
		return s.fail(ctx, tool, changeID, badArg(err))
	}
	if labelF != float64(int(labelF)) {
		return s.fail(ctx, tool, changeID,
			&gerrit.Error{Kind: gerrit.KindValidation, Detail: "code_review_label must be an integer"})
	}

	res, err := s.gerrit.SetReview(ctx, changeID, int(labelF), req.GetString("message", ""))
	if err != nil {
		return s.fail(ctx, tool, changeID, err)
	}
	return s.ok(ctx, tool, res)
}
