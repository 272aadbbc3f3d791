package models_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheMichaelB/quihex/internal/models"
)

func TestSyncError(t *testing.T) {
	tests := []struct {
		name string
		err  *models.SyncError
		want string
	}{
		{
			name: "with path",
			err: &models.SyncError{
				Code:     models.ErrCodeStorage,
				Phase:    "read",
				Notebook: "nb-123",
				Path:     "/blog/source/_posts/hello.md",
				Err:      errors.New("permission denied"),
			},
			want: "sync read [STORAGE_ERROR]: notebook nb-123: /blog/source/_posts/hello.md: permission denied",
		},
		{
			name: "without path",
			err: &models.SyncError{
				Code:     models.ErrCodeLibrary,
				Phase:    "list",
				Notebook: "nb-456",
				Err:      errors.New("no such directory"),
			},
			want: "sync list [LIBRARY_ERROR]: notebook nb-456: no such directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *models.ConfigError
		want string
	}{
		{
			name: "with field",
			err: &models.ConfigError{
				Path:  "/blog/_config.yml",
				Field: "new_post_name",
				Err:   models.ErrInvalidConfig,
			},
			want: "config /blog/_config.yml: field new_post_name: invalid configuration",
		},
		{
			name: "without field",
			err: &models.ConfigError{
				Path: "/home/me/.quihexrc",
				Err:  models.ErrConfigNotFound,
			},
			want: "config /home/me/.quihexrc: config file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("SyncError unwrap", func(t *testing.T) {
		syncErr := &models.SyncError{
			Code:  models.ErrCodeNote,
			Phase: "load",
			Err:   baseErr,
		}

		assert.Equal(t, baseErr, errors.Unwrap(syncErr))
	})

	t.Run("ConfigError unwrap", func(t *testing.T) {
		cfgErr := &models.ConfigError{Path: "x", Err: models.ErrInvalidConfig}

		assert.ErrorIs(t, cfgErr, models.ErrInvalidConfig)
	})
}

func TestIsConfigError(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", &models.ConfigError{Path: "x", Err: errors.New("boom")})

	assert.True(t, models.IsConfigError(wrapped))
	assert.True(t, models.IsConfigError(fmt.Errorf("load: %w", models.ErrInvalidConfig)))
	assert.False(t, models.IsConfigError(errors.New("disk full")))
	assert.False(t, models.IsConfigError(&models.SyncError{Err: errors.New("read")}))
}
