package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("loading: %w", NotFound("collection", "summer"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "not_found: collection summer not found", NotFound("collection", "summer").Error())
}

func TestKindOfUnknownError(t *testing.T) {
	assert.Equal(t, KindDependency, KindOf(errors.New("connection refused")))
}

func TestDependencyUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Dependency("list products", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrDependency))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFieldInvalid(t *testing.T) {
	err := FieldInvalid("parent_id", "parent collection does not exist")

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, map[string]string{"parent_id": "parent collection does not exist"}, err.Fields)
}
