package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/TheMichaelB/quihex/internal/models"
)

// MockNoteLibrary mocks the note library used by the sync service.
type MockNoteLibrary struct {
	mock.Mock
}

func NewMockNoteLibrary() *MockNoteLibrary {
	return &MockNoteLibrary{}
}

func (m *MockNoteLibrary) CheckNotebook(notebookUUID string) error {
	args := m.Called(notebookUUID)
	return args.Error(0)
}

func (m *MockNoteLibrary) NotebookPath(notebookUUID string) string {
	args := m.Called(notebookUUID)
	return args.String(0)
}

func (m *MockNoteLibrary) NotePaths(notebookUUID string) ([]string, error) {
	args := m.Called(notebookUUID)

	if paths := args.Get(0); paths != nil {
		return paths.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteLibrary) LoadNote(path string) (*models.Note, error) {
	args := m.Called(path)

	if note := args.Get(0); note != nil {
		return note.(*models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteLibrary) ResourceDir(notebookUUID, noteUUID string) string {
	args := m.Called(notebookUUID, noteUUID)
	return args.String(0)
}
