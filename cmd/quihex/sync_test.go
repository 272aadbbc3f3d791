package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/quihex/internal/models"
)

func TestParseStatuses(t *testing.T) {
	got, err := parseStatuses([]string{"new", " Update ", "stable"})
	require.NoError(t, err)
	assert.Equal(t, []models.Status{models.StatusNew, models.StatusUpdate, models.StatusStable}, got)

	got, err = parseStatuses(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseStatuses([]string{"skip"})
	assert.Error(t, err)

	_, err = parseStatuses([]string{"deleted"})
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	assert.Equal(t, "new   ", statusLabel(models.StatusNew))
	assert.Equal(t, "update", statusLabel(models.StatusUpdate))
}
