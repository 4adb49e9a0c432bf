// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gerritmcp/gerritmcp/internal/testutil"
)

func TestFiles(t *testing.T) {
	ctx := context.Background()
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]*FileInfo{
			"/COMMIT_MSG":       {Status: "A", LinesInserted: 9},
			"internal/diff.go":  {LinesInserted: 12, LinesDeleted: 3, SizeDelta: 241},
			"internal/old.go":   {Status: "D", LinesDeleted: 40},
			"docs/README.md":    {Status: "R", OldPath: "README.md"},
			"assets/logo.png":   {Status: "A", Binary: true, SizeDelta: 8713},
		})
	})

	files, err := c.Files(ctx, "12345")
	testutil.Check(t, err)

	if _, ok := files[commitMessagePath]; ok {
		t.Errorf("file list includes %s, want it filtered out", commitMessagePath)
	}
	if len(files) != 4 {
		t.Errorf("got %d files, want 4", len(files))
	}
	if f := files["docs/README.md"]; f == nil || f.OldPath != "README.md" {
		t.Errorf("renamed file = %+v, want old_path README.md", files["docs/README.md"])
	}
	if f := files["assets/logo.png"]; f == nil || !f.Binary {
		t.Errorf("binary file = %+v, want binary true", files["assets/logo.png"])
	}
}

func TestFilesValidation(t *testing.T) {
	hits := 0
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) { hits++ })
	_, err := c.Files(context.Background(), "")
	if got := ErrorKind(err); got != KindValidation {
		t.Errorf("kind = %q, want %q", got, KindValidation)
	}
	if hits != 0 {
		t.Errorf("empty change id reached the server %d times, want 0", hits)
	}
}

func intp(n int) *int { return &n }

func TestFlattenDiff(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content []DiffContent
		want    []DiffLine
	}{
		{
			name: "append one line",
			content: []DiffContent{
				{AB: []string{"package main", "", "func main() {"}},
				{B: []string{"\tlog.Println(\"hi\")"}},
			},
			want: []DiffLine{
				{Type: "unchanged", OldLine: intp(1), NewLine: intp(1), Content: "package main"},
				{Type: "unchanged", OldLine: intp(2), NewLine: intp(2), Content: ""},
				{Type: "unchanged", OldLine: intp(3), NewLine: intp(3), Content: "func main() {"},
				{Type: "added", NewLine: intp(4), Content: "\tlog.Println(\"hi\")"},
			},
		},
		{
			name: "replace a line",
			content: []DiffContent{
				{AB: []string{"a"}},
				{A: []string{"old"}, B: []string{"new", "newer"}},
				{AB: []string{"z"}},
			},
			want: []DiffLine{
				{Type: "unchanged", OldLine: intp(1), NewLine: intp(1), Content: "a"},
				{Type: "removed", OldLine: intp(2), Content: "old"},
				{Type: "added", NewLine: intp(2), Content: "new"},
				{Type: "added", NewLine: intp(3), Content: "newer"},
				{Type: "unchanged", OldLine: intp(3), NewLine: intp(4), Content: "z"},
			},
		},
		{
			name: "pure deletion",
			content: []DiffContent{
				{A: []string{"gone", "also gone"}},
			},
			want: []DiffLine{
				{Type: "removed", OldLine: intp(1), Content: "gone"},
				{Type: "removed", OldLine: intp(2), Content: "also gone"},
			},
		},
		{
			name:    "empty",
			content: nil,
			want:    []DiffLine{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := flattenDiff(tc.content)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("flattenDiff mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileDiff(t *testing.T) {
	ctx := context.Background()
	var gotPath string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(t, w, &DiffInfo{
			ChangeType: "MODIFIED",
			Content: []DiffContent{
				{AB: []string{"line one"}},
				{B: []string{"line two"}},
			},
		})
	})

	fd, err := c.FileDiff(ctx, "12345", "internal/gerrit/client.go")
	testutil.Check(t, err)

	want := "/a/changes/12345/revisions/current/files/internal%2Fgerrit%2Fclient.go/diff"
	if gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
	if fd.FilePath != "internal/gerrit/client.go" || fd.ChangeType != "MODIFIED" || fd.Binary {
		t.Errorf("FileDiff header = %+v", fd)
	}
	wantLines := []DiffLine{
		{Type: "unchanged", OldLine: intp(1), NewLine: intp(1), Content: "line one"},
		{Type: "added", NewLine: intp(2), Content: "line two"},
	}
	if diff := cmp.Diff(wantLines, fd.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestFileDiffBinary(t *testing.T) {
	ctx := context.Background()
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &DiffInfo{
			ChangeType: "ADDED",
			Binary:     true,
			MetaB:      &DiffFileMetaInfo{Name: "assets/logo.png", ContentType: "image/png"},
		})
	})

	fd, err := c.FileDiff(ctx, "12345", "assets/logo.png")
	testutil.Check(t, err)
	if !fd.Binary || fd.ContentType != "image/png" {
		t.Errorf("binary diff = %+v, want binary with content type image/png", fd)
	}
	if len(fd.Lines) != 0 {
		t.Errorf("binary diff carries %d lines, want none", len(fd.Lines))
	}
}
