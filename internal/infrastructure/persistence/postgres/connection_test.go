package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func TestRollbackFailureKeepsOperationErrorMatchable(t *testing.T) {
	rbErr := errors.New("connection reset")

	err := rollbackFailure(shared.ErrDuplicateReview, rbErr)

	// A failed rollback must not strip the typed error the caller
	// branches on.
	assert.ErrorIs(t, err, shared.ErrDuplicateReview)
	assert.True(t, shared.IsValidation(err))
	assert.ErrorIs(t, err, rbErr)
	assert.Contains(t, err.Error(), "rollback")
}

func TestRollbackFailurePreservesNotFound(t *testing.T) {
	err := rollbackFailure(shared.ErrApplicationNotFound, errors.New("tx closed"))

	assert.True(t, shared.IsNotFound(err))
	assert.False(t, shared.IsValidation(err))
}
