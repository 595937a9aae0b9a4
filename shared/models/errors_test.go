package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesInvalidInput(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("username is required"))

	assert.True(t, errors.Is(err, ErrInvalidInput))

	var vErr *ValidationError
	if assert.True(t, errors.As(err, &vErr)) {
		assert.Equal(t, "username is required", vErr.Message)
	}
}
