// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

// The types exchanged with Gerrit.

// A ChangeInfo is the information Gerrit records for a change.
// This describes Gerrit JSON data.
type ChangeInfo struct {
	// ID of the change, currently <project>~<number>.
	ID string `json:"id,omitempty"`

	// The name of the project.
	Project string `json:"project,omitempty"`

	// The name of the target branch.
	// The refs/heads/ prefix is omitted.
	Branch string `json:"branch,omitempty"`

	// The topic to which this change belongs.
	Topic string `json:"topic,omitempty"`

	// The Change-Id of the change.
	ChangeID string `json:"change_id"`

	// The subject of the change (header line of the commit message).
	Subject string `json:"subject"`

	// The status of the change (NEW, MERGED, ABANDONED).
	Status string `json:"status"`

	// The timestamp of when the change was created.
	Created TimeStamp `json:"created"`

	// The timestamp of when the change was last updated.
	Updated TimeStamp `json:"updated"`

	// Number of inserted lines.
	Insertions int `json:"insertions"`

	// Number of deleted lines.
	Deletions int `json:"deletions"`

	// Total number of inline comments across all patch sets.
	TotalCommentCount int `json:"total_comment_count"`

	// Number of unresolved inline comment threads across all patch sets.
	UnresolvedCommentCount int `json:"unresolved_comment_count,omitempty"`

	// The change number.
	Number int `json:"_number"`

	// The owner of the change.
	Owner *AccountInfo `json:"owner"`

	// The labels of the change as a map that maps the label names
	// to LabelInfo entries.
	Labels map[string]LabelInfo `json:"labels,omitempty"`

	// The reviewers as a map that maps a reviewer state to a list
	// of AccountInfo entities. Possible reviewer states are:
	// REVIEWER: Users with at least one non-zero vote on the change.
	// CC: Users that were added to the change, but have not voted.
	Reviewers map[string][]*AccountInfo `json:"reviewers,omitempty"`

	// Messages associated with the change.
	Messages []ChangeMessageInfo `json:"messages,omitempty"`

	// The commit ID of the current patch set of this change.
	CurrentRevision string `json:"current_revision,omitempty"`

	// When present, change is marked as Work In Progress.
	WorkInProgress bool `json:"work_in_progress,omitempty"`
}

// AccountInfo contains information about an account.
// This describes Gerrit JSON data.
type AccountInfo struct {
	// The numeric ID of the account.
	AccountID int `json:"_account_id"`
	// The full name of the user.
	Name string `json:"name,omitempty"`
	// The display name of the user.
	DisplayName string `json:"display_name,omitempty"`
	// The email address the user prefers to be contacted through.
	Email string `json:"email,omitempty"`
	// The username of the user.
	UserName string `json:"username,omitempty"`
}

// LabelInfo holds information about a label on a change, always
// corresponding to the current patch set.
// This describes Gerrit JSON data.
type LabelInfo struct {
	// Whether the label is optional. Optional means the label may
	// be set, but it’s neither necessary for submission nor does
	// it block submission if set.
	Optional bool `json:"optional,omitempty"`
	// One user who approved this label on the change (voted the
	// maximum value).
	Approved *AccountInfo `json:"approved,omitempty"`
	// One user who rejected this label on the change (voted the
	// minimum value).
	Rejected *AccountInfo `json:"rejected,omitempty"`
	// If true, the label blocks submit operation.
	Blocking bool `json:"blocking,omitempty"`
	// The default voting value for the label.
	DefaultValue int `json:"default_value,omitempty"`
	// List of all approvals for this label.
	All []*ApprovalInfo `json:"all,omitempty"`
	// A map of all values that are allowed for this label. The
	// map maps the values (“-2”, “-1”, " `0`", “+1”, “+2”) to the
	// value descriptions.
	Values map[string]string `json:"values,omitempty"`
}

// ApprovalInfo holds information about an approval from a user for a
// label on a change.
// This describes Gerrit JSON data.
type ApprovalInfo struct {
	// The account that approved.
	AccountInfo
	// The vote that the user has given for the label.
	Value int `json:"value,omitempty"`
	// The time and date describing when the approval was made.
	Date TimeStamp `json:"date,omitempty"`
}

// ChangeMessageInfo holds information about a message attached to a change.
// This describes Gerrit JSON data.
type ChangeMessageInfo struct {
	// The ID of the message.
	ID string `json:"id"`
	// Author of the message as an AccountInfo entity.
	// Unset if written by the Gerrit system.
	Author *AccountInfo `json:"author,omitempty"`
	// The timestamp this message was posted.
	Date TimeStamp `json:"date"`
	// The text left by the user or Gerrit system.
	Message string `json:"message"`
	// Which patchset (if any) generated this message.
	RevisionNumber int `json:"_revision_number,omitempty"`
}

// CommitInfo holds information about a commit.
// This describes Gerrit JSON data.
type CommitInfo struct {
	// The commit ID. Not set if included in a RevisionInfo entity
	// that is contained in a map which has the commit ID as key.
	Commit string `json:"commit,omitempty"`
	// The parent commits of this commit as a list of CommitInfo
	// entities. In each parent only the commit and subject fields
	// are populated.
	Parents []CommitInfo `json:"parents,omitempty"`
	// The author of the commit as a GitPersonInfo entity.
	Author *GitPersonInfo `json:"author,omitempty"`
	// The committer of the commit as a GitPersonInfo entity.
	Committer *GitPersonInfo `json:"committer,omitempty"`
	// The subject of the commit (header line of the commit message).
	Subject string `json:"subject"`
	// The commit message.
	Message string `json:"message,omitempty"`
}

// GitPersonInfo holds information about the author/committer of a commit.
// This describes Gerrit JSON data.
type GitPersonInfo struct {
	// The name of the author/committer.
	Name string `json:"name"`
	// The email address of the author/committer.
	Email string `json:"email"`
	// The timestamp of when this identity was constructed.
	Date TimeStamp `json:"date"`
	// The timezone offset from UTC of when this identity was constructed.
	TZ int `json:"tz"`
}

// FileInfo holds information about a file in a patch set.
// This describes Gerrit JSON data.
type FileInfo struct {
	// The status of the file (A=Added, D=Deleted, R=Renamed,
	// C=Copied, W=Rewritten). Not set if the file was Modified.
	Status string `json:"status,omitempty"`
	// Whether the file is binary.
	Binary bool `json:"binary,omitempty"`
	// The old file path; only set if renamed or copied.
	OldPath string `json:"old_path,omitempty"`
	// Number of inserted lines. Not set for binary files or if no
	// lines were inserted.
	LinesInserted int `json:"lines_inserted,omitempty"`
	// Number of deleted lines. Not set for binary files or if no
	// lines were deleted.
	LinesDeleted int `json:"lines_deleted,omitempty"`
	// Number of bytes by which the file size increased/decreased.
	SizeDelta int `json:"size_delta"`
	// File size in bytes.
	Size int `json:"size"`
}

// DiffContent is a block of lines within a file diff, holding lines
// common to both sides (AB), lines only on the parent side (A), or
// lines only on the revision side (B).
// This describes Gerrit JSON data.
type DiffContent struct {
	// Content only in the file on side A (deleted in B).
	A []string `json:"a,omitempty"`
	// Content only in the file on side B (added in B).
	B []string `json:"b,omitempty"`
	// Content in the file on both sides (unchanged).
	AB []string `json:"ab,omitempty"`
}

// DiffInfo holds a diff of a single file as reported by Gerrit.
// This describes Gerrit JSON data.
type DiffInfo struct {
	// Comparison metadata for side A of the diff.
	MetaA *DiffFileMetaInfo `json:"meta_a,omitempty"`
	// Comparison metadata for side B of the diff.
	MetaB *DiffFileMetaInfo `json:"meta_b,omitempty"`
	// The type of change (ADDED, MODIFIED, DELETED, RENAMED,
	// COPIED, REWRITE).
	ChangeType string `json:"change_type"`
	// The content differences in the file as a list of DiffContent
	// entities, in file order.
	Content []DiffContent `json:"content"`
	// Whether the file is binary.
	Binary bool `json:"binary,omitempty"`
}

// DiffFileMetaInfo holds metadata about one side of a file diff.
// This describes Gerrit JSON data.
type DiffFileMetaInfo struct {
	// The name of the file.
	Name string `json:"name"`
	// The content type of the file.
	ContentType string `json:"content_type"`
	// The total number of lines in the file.
	Lines int `json:"lines"`
}

// RelatedChangesInfo holds a list of related changes.
// This describes Gerrit JSON data.
type RelatedChangesInfo struct {
	// A list of RelatedChangeAndCommitInfo entities describing the
	// related changes, sorted by git commit order (newest to oldest).
	Changes []RelatedChangeAndCommitInfo `json:"changes"`
}

// RelatedChangeAndCommitInfo holds information about a related change
// and commit.
// This describes Gerrit JSON data.
type RelatedChangeAndCommitInfo struct {
	// The name of the project.
	Project string `json:"project"`
	// The Change-Id of the change.
	ChangeID string `json:"change_id,omitempty"`
	// The commit as a CommitInfo entity.
	Commit *CommitInfo `json:"commit,omitempty"`
	// The change number.
	Number int `json:"_change_number,omitempty"`
	// The revision (patch set) number.
	RevisionNumber int `json:"_revision_number,omitempty"`
	// The current revision (patch set) number.
	CurrentRevisionNumber int `json:"_current_revision_number,omitempty"`
	// The status of the change (NEW, MERGED, ABANDONED).
	Status string `json:"status,omitempty"`
}

// CommentRange describes the range of an inline comment. The range
// runs from the start position, specified by start_line and
// start_character, to the end position, specified by end_line and
// end_character. The start position is inclusive and the end position
// is exclusive.
// This describes Gerrit JSON data.
type CommentRange struct {
	// The start line number of the range. (1-based)
	StartLine int `json:"start_line"`
	// The character position in the start line. (0-based)
	StartCharacter int `json:"start_character"`
	// The end line number of the range. (1-based)
	EndLine int `json:"end_line"`
	// The character position in the end line. (0-based)
	EndCharacter int `json:"end_character"`
}

// CommentInput is the payload for creating a draft comment.
// Exactly one of Line or Range must be set; the client rejects
// anything else before touching the network.
// This describes Gerrit JSON data.
type CommentInput struct {
	// The file path the comment applies to.
	Path string `json:"path"`
	// The comment text.
	Message string `json:"message"`
	// The side on which the comment is added.
	// Allowed values are REVISION and PARENT.
	// If not set, the default is REVISION.
	Side string `json:"side,omitempty"`
	// The number of the line the comment applies to.
	Line int `json:"line,omitempty"`
	// The range of the comment as a CommentRange entity.
	Range *CommentRange `json:"range,omitempty"`
	// Whether the comment must be addressed by the user.
	Unresolved bool `json:"unresolved,omitempty"`
}

// CommentInfo holds information about an inline comment, as returned
// by Gerrit when a draft is created.
// This describes Gerrit JSON data.
type CommentInfo struct {
	// The URL encoded UUID of the comment.
	ID string `json:"id"`
	// The file path for which the inline comment was done.
	// Not set if returned in a map where the key is the file path.
	Path string `json:"path,omitempty"`
	// The side on which the comment was added.
	// Allowed values are REVISION and PARENT.
	Side string `json:"side,omitempty"`
	// The number of the line for which the comment was done.
	// If range is set, this equals the end line of the range.
	Line int `json:"line,omitempty"`
	// The range of the comment as a CommentRange entity.
	Range *CommentRange `json:"range,omitempty"`
	// The comment message.
	Message string `json:"message,omitempty"`
	// The timestamp of when this comment was written.
	Updated TimeStamp `json:"updated"`
	// Whether the comment must be addressed by the user.
	Unresolved bool `json:"unresolved,omitempty"`
}

// ReviewInput is the payload for setting a review on a revision.
// This describes Gerrit JSON data.
type ReviewInput struct {
	// The message to be added as a review comment.
	Message string `json:"message,omitempty"`
	// The votes that should be added to the revision as a map of
	// label names to voting values.
	Labels map[string]int `json:"labels,omitempty"`
	// How to handle draft comments already in the database but not
	// part of this review. PUBLISH publishes all pending drafts on
	// the change, no matter where they came from.
	Drafts string `json:"drafts,omitempty"`
}

// ReviewResult holds the result of setting a review.
// This describes Gerrit JSON data.
type ReviewResult struct {
	// The labels of the review as a map of label names to voting
	// values, as they were applied.
	Labels map[string]int `json:"labels,omitempty"`
	// Whether the change was moved out of WIP by this review.
	ReadyForReview bool `json:"ready,omitempty"`
}
