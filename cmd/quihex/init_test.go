package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoiceValidator(t *testing.T) {
	picked := -1
	validate := choiceValidator(3, &picked)

	assert.NoError(t, validate("2"))
	assert.Equal(t, 1, picked)

	for _, bad := range []string{"0", "4", "-1", "two", "1.5"} {
		assert.Error(t, validate(bad), bad)
		assert.Equal(t, 1, picked, "rejected input %q must not change the choice", bad)
	}

	assert.NoError(t, validate("3"))
	assert.Equal(t, 2, picked)
}
