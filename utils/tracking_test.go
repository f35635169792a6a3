package utils

import (
	"regexp"
	"testing"
)

func TestNewTrackingIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^APP-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewTrackingID()
		if err != nil {
			t.Fatalf("NewTrackingID() error: %v", err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("NewTrackingID() = %q, want match for %s", id, pattern)
		}
		seen[id] = true
	}

	if len(seen) < 90 {
		t.Errorf("expected mostly distinct ids, got %d distinct out of 100", len(seen))
	}
}

func TestIsValidTrackingID(t *testing.T) {
	valid := []string{"APP-DEADBEEF", "APP-00000000", "APP-1A2B3C4D"}
	for _, id := range valid {
		if !IsValidTrackingID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}

	invalid := []string{"", "APP-", "APP-deadbeef", "APP-DEADBEE", "APP-DEADBEEF1", "APX-DEADBEEF", "DEADBEEF"}
	for _, id := range invalid {
		if IsValidTrackingID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}
