// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"context"
)

// commitMessagePath is the pseudo-file Gerrit uses to represent the
// commit message in a file list. It is not a reviewable file and is
// filtered out of listings so that line-targeted comments cannot be
// aimed at it.
const commitMessagePath = "/COMMIT_MSG"

// Files returns the files touched by the current revision of a
// change, as a map from file path to [FileInfo]. The commit message
// pseudo-file is never included.
func (c *Client) Files(ctx context.Context, changeID string) (map[string]*FileInfo, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	var files map[string]*FileInfo
	if err := c.get(ctx, "/changes/"+escapeID(changeID)+"/revisions/current/files", &files); err != nil {
		return nil, err
	}
	delete(files, commitMessagePath)
	return files, nil
}

// A DiffLine is one line of a flattened file diff. Added lines carry
// only a new line number, removed lines only an old line number, and
// unchanged lines both.
type DiffLine struct {
	// The kind of line: "added", "removed", or "unchanged".
	Type string `json:"type"`
	// The 1-based line number on the parent side, or null.
	OldLine *int `json:"old_line"`
	// The 1-based line number on the revision side, or null.
	NewLine *int `json:"new_line"`
	// The text of the line.
	Content string `json:"content"`
}

// A FileDiff is the diff of a single file within a revision,
// flattened from Gerrit's block representation into one ordered
// line sequence.
type FileDiff struct {
	FilePath    string     `json:"file_path"`
	ChangeType  string     `json:"change_type,omitempty"`
	Binary      bool       `json:"is_binary"`
	ContentType string     `json:"content_type,omitempty"`
	Lines       []DiffLine `json:"lines"`
}

// FileDiff returns the diff of one file in the current revision of a
// change. Binary files report Binary with no lines.
func (c *Client) FileDiff(ctx context.Context, changeID, path string) (*FileDiff, error) {
	if changeID == "" {
		return nil, validationErr("change_id is required")
	}
	if path == "" {
		return nil, validationErr("file_path is required")
	}
	var di DiffInfo
	addr := "/changes/" + escapeID(changeID) + "/revisions/current/files/" + escapeID(path) + "/diff"
	if err := c.get(ctx, addr, &di); err != nil {
		return nil, err
	}

	fd := &FileDiff{
		FilePath:   path,
		ChangeType: di.ChangeType,
		Binary:     di.Binary,
		Lines:      []DiffLine{},
	}
	if di.Binary {
		if di.MetaB != nil {
			fd.ContentType = di.MetaB.ContentType
		} else if di.MetaA != nil {
			fd.ContentType = di.MetaA.ContentType
		}
		return fd, nil
	}
	fd.Lines = flattenDiff(di.Content)
	return fd, nil
}

// flattenDiff converts Gerrit's diff content blocks into one ordered
// sequence of lines, keeping running line counters for both sides so
// every line carries accurate old/new numbers.
func flattenDiff(content []DiffContent) []DiffLine {
	lines := []DiffLine{}
	oldLine, newLine := 1, 1
	num := func(n *int) *int { v := *n; return &v }

	for _, block := range content {
		for _, text := range block.AB {
			lines = append(lines, DiffLine{
				Type:    "unchanged",
				OldLine: num(&oldLine),
				NewLine: num(&newLine),
				Content: text,
			})
			oldLine++
			newLine++
		}
		for _, text := range block.A {
			lines = append(lines, DiffLine{
				Type:    "removed",
				OldLine: num(&oldLine),
				Content: text,
			})
			oldLine++
		}
		for _, text := range block.B {
			lines = append(lines, DiffLine{
				Type:    "added",
				NewLine: num(&newLine),
				Content: text,
			})
			newLine++
		}
	}
	return lines
}
