package models

import (
	"strings"
)

// PostDelimiter opens and closes the front-matter block of a post.
const PostDelimiter = "----"

// RenderedPost is the canonical post derived from a note.
type RenderedPost struct {
	UUID     string   `json:"uuid"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	Content  string   `json:"-"`
	FilePath string   `json:"file_path"`
}

// Text returns the exact text written to FilePath. Status comparison is
// byte-for-byte against this value, so field order and whitespace are
// part of the format.
func (p *RenderedPost) Text() string {
	lines := make([]string, 0, len(p.Tags)+6)
	lines = append(lines,
		PostDelimiter,
		"title: "+p.Title,
		"date: "+p.Date,
		"tags:",
	)
	for _, tag := range p.Tags {
		lines = append(lines, "- "+tag)
	}
	lines = append(lines, PostDelimiter, p.Content)

	return strings.Join(lines, "\n")
}

// Status is the sync classification of a post.
type Status string

const (
	StatusNew    Status = "new"
	StatusUpdate Status = "update"
	StatusStable Status = "stable"
	StatusSkip   Status = "skip"
)

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusNew, StatusUpdate, StatusStable, StatusSkip:
		return st, true
	default:
		return "", false
	}
}

// NeedsWrite reports whether a post with this status differs from disk.
func (s Status) NeedsWrite() bool {
	return s == StatusNew || s == StatusUpdate
}

// SyncStatus pairs a status with the post it judges.
type SyncStatus struct {
	Status Status        `json:"status"`
	Post   *RenderedPost `json:"post"`
}

// WriteResult describes a completed post write.
type WriteResult struct {
	Path     string `json:"path"`
	AssetDir string `json:"asset_dir,omitempty"`
	Assets   int    `json:"assets"`
}
