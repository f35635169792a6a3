package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var trackingIDPattern = regexp.MustCompile(`^APP-[0-9A-F]{8}$`)

// NewTrackingID produces the externally displayed identifier for a
// submission: "APP-" plus 8 uppercase hex characters from 4 random bytes.
// Collisions are not retried here; the unique index on tracking_id surfaces
// them as a write failure.
func NewTrackingID() (string, error) {
	var raw [4]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("failed to generate tracking id: %w", err)
	}
	return "APP-" + strings.ToUpper(hex.EncodeToString(raw[:])), nil
}

// IsValidTrackingID reports whether s has the APP-XXXXXXXX shape.
func IsValidTrackingID(s string) bool {
	return trackingIDPattern.MatchString(s)
}
