package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "Missing required fields", Wrap(ErrCodeValidation, "Missing required fields", nil).Error())

	wrapped := Storage("failed to save inquiry", errors.New("connection refused"))
	assert.Equal(t, "failed to save inquiry: connection refused", wrapped.Error())
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("create inquiry: %w", Storage("failed to save inquiry", cause))

	assert.Equal(t, ErrCodeStorage, CodeOf(err))
	assert.True(t, IsStorage(err))
	assert.False(t, IsValidation(err))
	assert.ErrorIs(t, err, cause)
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrCodeInternalError, CodeOf(errors.New("boom")))
	assert.False(t, IsValidation(nil))
	assert.False(t, IsStartup(nil))
}

func TestPublicMessage(t *testing.T) {
	validation := Validation("Missing required fields", errors.New("email: cannot be blank."))
	assert.Equal(t, "Missing required fields", PublicMessage(validation))

	storage := Storage("failed to save inquiry", errors.New("relation \"inquiries\" does not exist"))
	assert.Equal(t, "failed to save inquiry: relation \"inquiries\" does not exist", PublicMessage(storage))

	assert.Equal(t, "unexpected EOF", PublicMessage(errors.New("unexpected EOF")))
}

func TestStartup(t *testing.T) {
	err := Startup("failed to create inquiries table", errors.New("permission denied"))
	assert.True(t, IsStartup(err))
	assert.Contains(t, err.Error(), "permission denied")
}
