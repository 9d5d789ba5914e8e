package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// Booking references look like VPH-250831-0042: a date-derived prefix and
// a random 4-digit suffix. The suffix space is small, so callers must
// retry on a unique-constraint collision from the store.

var bookingRefPattern = regexp.MustCompile(`^VPH-\d{6}-\d{4}$`)

// GenerateBookingRef builds a reference for a booking created at t.
// The suffix uses crypto/rand to avoid modulo bias.
func GenerateBookingRef(t time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate booking ref suffix: %w", err)
	}
	return fmt.Sprintf("VPH-%s-%04d", t.Format("060102"), n.Int64()), nil
}

// IsValidBookingRef reports whether s matches the VPH-YYMMDD-NNNN format.
func IsValidBookingRef(s string) bool {
	return bookingRefPattern.MatchString(s)
}
