package services

import (
	"errors"
	"testing"
	"time"

	"scholarship-portal-api/models"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"under review", "Under Review", true},
		{"UNDER REVIEW", "Under Review", true},
		{"Submitted", "Submitted", true},
		{"funds transferred", "Funds Transferred", true},
		{"  eligible  ", "Eligible", true},
		{"rejected", "Rejected", true},
		{"bogus", "Bogus", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeStatus(tc.input)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("NormalizeStatus(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func storedApp(trackingID string) *models.Application {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &models.Application{
		ApplicationID: 7,
		TrackingID:    trackingID,
		Status:        models.StatusSubmitted,
		CreateAt:      &now,
	}
}

func TestUpdateStatusInvalidValueLeavesRecordUntouched(t *testing.T) {
	repo := &fakeRepo{apps: []*models.Application{storedApp("APP-AAAA1111")}}
	svc := NewStatusService(repo)

	err := svc.UpdateStatus("APP-AAAA1111", StatusUpdateRequest{Status: "bogus"})
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if len(repo.updates) != 0 {
		t.Errorf("record must stay untouched on invalid status, saw updates %+v", repo.updates)
	}
	if repo.apps[0].Status != models.StatusSubmitted {
		t.Errorf("status changed to %q", repo.apps[0].Status)
	}
}

func TestUpdateStatusUnknownTrackingID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewStatusService(repo)

	err := svc.UpdateStatus("APP-DEADBEEF", StatusUpdateRequest{Status: "eligible"})
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestUpdateStatusNormalizesAndApplies(t *testing.T) {
	repo := &fakeRepo{apps: []*models.Application{storedApp("APP-AAAA1111")}}
	svc := NewStatusService(repo)

	reviewer := "trustee-01"
	req := StatusUpdateRequest{
		Status:      "under review",
		BankDetails: models.JSONMap{"account": "12345"},
		ReviewedBy:  &reviewer,
	}
	if err := svc.UpdateStatus("APP-AAAA1111", req); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}

	if len(repo.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(repo.updates))
	}
	fields := repo.updates[0]
	if fields["status"] != "Under Review" {
		t.Errorf("status = %v, want Under Review", fields["status"])
	}
	if fields["reviewed_by"] != reviewer {
		t.Errorf("reviewed_by = %v, want %q", fields["reviewed_by"], reviewer)
	}
	if _, ok := fields["bank_details"]; !ok {
		t.Error("bank_details must be applied when supplied")
	}

	if len(repo.history) != 1 {
		t.Fatalf("expected a status history entry, got %d", len(repo.history))
	}
	entry := repo.history[0]
	if entry.NewStatus != "Under Review" || entry.OldStatus == nil || *entry.OldStatus != models.StatusSubmitted {
		t.Errorf("unexpected history entry: %+v", entry)
	}
}

func TestUpdateStatusOmitsUnsuppliedFields(t *testing.T) {
	repo := &fakeRepo{apps: []*models.Application{storedApp("APP-AAAA1111")}}
	svc := NewStatusService(repo)

	if err := svc.UpdateStatus("APP-AAAA1111", StatusUpdateRequest{Status: "rejected"}); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}

	fields := repo.updates[0]
	if _, ok := fields["bank_details"]; ok {
		t.Error("bank_details must stay untouched when not supplied")
	}
	if _, ok := fields["reviewed_by"]; ok {
		t.Error("reviewed_by must stay untouched when not supplied")
	}
}

// Any valid status may follow any other; there is no transition graph.
func TestUpdateStatusAllowsAnyOrder(t *testing.T) {
	repo := &fakeRepo{apps: []*models.Application{storedApp("APP-AAAA1111")}}
	svc := NewStatusService(repo)

	if err := svc.UpdateStatus("APP-AAAA1111", StatusUpdateRequest{Status: "funds transferred"}); err != nil {
		t.Fatalf("direct Submitted -> Funds Transferred must be allowed, got %v", err)
	}
	if repo.apps[0].Status != models.StatusFundsTransferred {
		t.Errorf("status = %q", repo.apps[0].Status)
	}
}
