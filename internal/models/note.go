package models

import (
	"fmt"
	"strings"
	"time"
)

// Notebook identifies a notebook in the note library.
type Notebook struct {
	UUID string `json:"uuid" mapstructure:"uuid"`
	Name string `json:"name" mapstructure:"name"`
}

// Validate validates the notebook reference.
func (n *Notebook) Validate() error {
	if strings.TrimSpace(n.UUID) == "" {
		return fmt.Errorf("notebook uuid is required")
	}
	return nil
}

// Note is a single note read from the library.
type Note struct {
	UUID      string    `json:"uuid"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAnyTag reports whether the note carries at least one of tags.
func (n *Note) HasAnyTag(tags []string) bool {
	if len(tags) == 0 || len(n.Tags) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	for _, t := range n.Tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// Validate validates the note structure.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.UUID) == "" {
		return fmt.Errorf("note uuid is required")
	}

	if n.CreatedAt.IsZero() {
		return fmt.Errorf("created_at timestamp is required")
	}

	return nil
}
