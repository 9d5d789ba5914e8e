package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsValidation(t *testing.T) {
	err := NewValidation(map[string]string{"email": "invalid email address"})
	wrapped := fmt.Errorf("create guest: %w", err)

	v, ok := AsValidation(wrapped)
	require.True(t, ok)
	assert.Equal(t, "invalid email address", v.Fields["email"])

	_, ok = AsValidation(errors.New("plain"))
	assert.False(t, ok)
}

func TestPersistenceUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistence("create booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create booking")
}

func TestAsPartial(t *testing.T) {
	cause := errors.New("redis down")
	partial := &PartialOperation{
		Op:     "checkout",
		Done:   "store writes committed",
		Failed: "room cache invalidation",
		Err:    cause,
	}
	wrapped := fmt.Errorf("checkout: %w", partial)

	p, ok := AsPartial(wrapped)
	require.True(t, ok)
	assert.Equal(t, "checkout", p.Op)
	assert.ErrorIs(t, p, cause)

	_, ok = AsPartial(cause)
	assert.False(t, ok)
}
