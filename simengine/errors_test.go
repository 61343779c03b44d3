package simengine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCollectsEveryField(t *testing.T) {
	ve := &ValidationError{}
	ve.add("hands", "must be >= 100")
	ve.add("rules.decks", "must be between 1 and 8")

	assert.Nil(t, (&ValidationError{}).nilIfEmpty())
	err := ve.nilIfEmpty()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hands: must be >= 100")
	assert.Contains(t, err.Error(), "rules.decks: must be between 1 and 8")
}

func TestValidationErrorSupportsErrorsAs(t *testing.T) {
	ve := &ValidationError{}
	ve.add("unit_size", "must be > 0")

	var target *ValidationError
	assert.True(t, errors.As(error(ve), &target))
}
