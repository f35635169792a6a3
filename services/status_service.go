package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"scholarship-portal-api/models"
)

// NormalizeStatus case-normalizes a requested status to title case and
// reports whether it is a member of the closed status enumeration.
// "under review" becomes "Under Review"; "bogus" is rejected.
func NormalizeStatus(raw string) (string, bool) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(words) == 0 {
		return "", false
	}

	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	normalized := strings.Join(words, " ")

	for _, allowed := range models.AllowedStatuses {
		if normalized == allowed {
			return normalized, true
		}
	}
	return normalized, false
}

// StatusUpdateRequest carries a requested status change. BankDetails and
// ReviewedBy are applied only when supplied; absent fields stay untouched.
type StatusUpdateRequest struct {
	Status      string         `json:"status"`
	BankDetails models.JSONMap `json:"bankDetails,omitempty"`
	ReviewedBy  *string        `json:"reviewedBy,omitempty"`
}

// StatusService validates and applies status transitions to stored
// applications. No transition graph is enforced between statuses; any valid
// status may follow any other.
type StatusService struct {
	repo ApplicationRepository
}

// NewStatusService builds a status updater; a nil repo uses the GORM-backed one.
func NewStatusService(repo ApplicationRepository) *StatusService {
	if repo == nil {
		repo = NewApplicationRepository(nil)
	}
	return &StatusService{repo: repo}
}

// UpdateStatus normalizes and validates req.Status, locates the record by
// tracking ID and applies the change. The record is untouched when
// validation fails or the ID is unknown.
func (s *StatusService) UpdateStatus(trackingID string, req StatusUpdateRequest) error {
	normalized, ok := NormalizeStatus(req.Status)
	if !ok {
		return NewValidationError("Invalid or missing status")
	}

	app, err := s.repo.FindByTrackingID(trackingID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"status": normalized,
	}
	if req.BankDetails != nil {
		fields["bank_details"] = req.BankDetails
	}
	if req.ReviewedBy != nil {
		fields["reviewed_by"] = *req.ReviewedBy
	}

	if err := s.repo.UpdateFields(trackingID, fields); err != nil {
		return fmt.Errorf("failed to update application %s: %w", trackingID, err)
	}

	oldStatus := app.Status
	history := &models.ApplicationStatusHistory{
		ApplicationID: app.ApplicationID,
		TrackingID:    trackingID,
		OldStatus:     &oldStatus,
		NewStatus:     normalized,
		ChangedBy:     req.ReviewedBy,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.AppendStatusHistory(history); err != nil {
		// History is an audit trail, not part of the update contract.
		log.Printf("failed to record status history for %s: %v", trackingID, err)
	}

	log.Printf("Status for %s updated to %s", trackingID, normalized)
	return nil
}
