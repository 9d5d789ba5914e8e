package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingRefFormat(t *testing.T) {
	at := time.Date(2025, 8, 31, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		ref, err := GenerateBookingRef(at)
		require.NoError(t, err)

		assert.True(t, IsValidBookingRef(ref), ref)
		assert.True(t, strings.HasPrefix(ref, "VPH-250831-"), ref)
	}
}

func TestIsValidBookingRef(t *testing.T) {
	assert.True(t, IsValidBookingRef("VPH-250831-0042"))
	assert.True(t, IsValidBookingRef("VPH-000101-9999"))

	assert.False(t, IsValidBookingRef("VPH-250831-42"))
	assert.False(t, IsValidBookingRef("VPH-2508311-0042"))
	assert.False(t, IsValidBookingRef("vph-250831-0042"))
	assert.False(t, IsValidBookingRef("VPH-250831-00420"))
	assert.False(t, IsValidBookingRef(""))
}
