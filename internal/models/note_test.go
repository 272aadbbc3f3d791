package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TheMichaelB/quihex/internal/models"
)

func TestNoteHasAnyTag(t *testing.T) {
	tests := []struct {
		name     string
		noteTags []string
		tags     []string
		want     bool
	}{
		{"single match", []string{"hide"}, []string{"hide", "wip", "secret"}, true},
		{"match among many", []string{"go", "wip"}, []string{"hide", "wip"}, true},
		{"no match", []string{"go", "blog"}, []string{"hide", "wip", "secret"}, false},
		{"no note tags", nil, []string{"hide"}, false},
		{"no filter tags", []string{"hide"}, nil, false},
		{"case sensitive", []string{"Hide"}, []string{"hide"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &models.Note{Tags: tt.noteTags}
			assert.Equal(t, tt.want, note.HasAnyTag(tt.tags))
		})
	}
}

func TestNoteValidate(t *testing.T) {
	valid := func() *models.Note {
		return &models.Note{
			UUID:      "5C8A1F3E-0000-4000-8000-000000000001",
			Title:     "Hello",
			CreatedAt: time.Date(2016, 5, 1, 10, 0, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name    string
		modify  func(*models.Note)
		wantErr string
	}{
		{"valid note", func(n *models.Note) {}, ""},
		{"missing uuid", func(n *models.Note) { n.UUID = " " }, "note uuid is required"},
		{"missing created_at", func(n *models.Note) { n.CreatedAt = time.Time{} }, "created_at timestamp is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := valid()
			tt.modify(note)

			err := note.Validate()
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotebookValidate(t *testing.T) {
	assert.NoError(t, (&models.Notebook{UUID: "nb-1", Name: "Blog"}).Validate())
	assert.Error(t, (&models.Notebook{Name: "Blog"}).Validate())
}
