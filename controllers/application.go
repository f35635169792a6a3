package controllers

import (
	"errors"
	"log"
	"net/http"

	"scholarship-portal-api/models"
	"scholarship-portal-api/services"
	"scholarship-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// Collaborators are package-level so tests can substitute fakes.
var (
	submissionService                                = services.NewSubmissionService(nil, nil, nil, nil)
	statusService                                    = services.NewStatusService(nil)
	applicationRepo   services.ApplicationRepository = services.NewApplicationRepository(nil)
)

// SubmitApplication accepts one multipart scholarship submission.
func SubmitApplication(c *gin.Context) {
	mr, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Expected a multipart form submission"})
		return
	}

	result, err := submissionService.Submit(mr)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Printf("Submission error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Submission failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"trackingId": result.TrackingID,
		"message":    "Application submitted successfully",
	})
}

// GetDashboard returns the overview rows for the reviewer dashboard,
// newest submissions first.
func GetDashboard(c *gin.Context) {
	applications, err := applicationRepo.ListAll()
	if err != nil {
		log.Printf("Dashboard error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch applications"})
		return
	}

	overview := make([]gin.H, 0, len(applications))
	for _, app := range applications {
		details := app.ApplicantDetails
		overview = append(overview, gin.H{
			"trackingId":    app.TrackingID,
			"applicantName": detailOr(details, "applicant_name", "Unknown"),
			"status":        app.Status,
			"submittedDate": utils.FormatDatePtr(app.CreateAt),
			"photo":         app.PhotoPath,
			"keyDetails": gin.H{
				"applicantType":   detailOr(details, "applicant_type", "N/A"),
				"contactNumber":   detailOr(details, "contact_number", "N/A"),
				"requestCategory": detailOr(details, "request_category", "N/A"),
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "overview": overview})
}

// GetApplicationDetails returns the full record for one tracking ID, with
// applicant detail keys humanized for display.
func GetApplicationDetails(c *gin.Context) {
	app, ok := findByTrackingParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"details": gin.H{
			"trackingId":       app.TrackingID,
			"applicantDetails": humanizeDetails(app.ApplicantDetails),
			"documents":        presentDocuments(app.Documents),
			"photo":            app.PhotoPath,
			"status":           app.Status,
			"submittedDate":    utils.FormatDatePtr(app.CreateAt),
		},
	})
}

// TrackApplication is the public, non-authenticated status lookup.
func TrackApplication(c *gin.Context) {
	app, ok := findByTrackingParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"trackingId": app.TrackingID,
		"status":     app.Status,
		"details":    humanizeDetails(app.ApplicantDetails),
		"documents":  presentDocuments(app.Documents),
	})
}

// UpdateStatus validates and applies a status change to a stored application.
func UpdateStatus(c *gin.Context) {
	trackingID := c.Param("trackingId")
	if !utils.IsValidTrackingID(trackingID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid tracking ID"})
		return
	}

	var req services.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if err := statusService.UpdateStatus(trackingID, req); err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, services.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		default:
			log.Printf("Update status error for %s: %v", trackingID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated successfully"})
}

// GetAdminApplications returns the raw records for admin/trustee tooling.
func GetAdminApplications(c *gin.Context) {
	applications, err := applicationRepo.ListAll()
	if err != nil {
		log.Printf("Admin list error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "applications": applications, "total": len(applications)})
}

func findByTrackingParam(c *gin.Context) (*models.Application, bool) {
	trackingID := c.Param("trackingId")
	if !utils.IsValidTrackingID(trackingID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid tracking ID"})
		return nil, false
	}

	app, err := applicationRepo.FindByTrackingID(trackingID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		} else {
			log.Printf("Lookup error for %s: %v", trackingID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch details"})
		}
		return nil, false
	}
	return app, true
}

// humanizeDetails projects stored details for display: keys become labels,
// empty values render as N/A. Stored data is never mutated.
func humanizeDetails(details models.FieldList) models.FieldList {
	projected := make(models.FieldList, 0, len(details))
	for _, field := range details {
		value := field.Value
		if value == "" {
			value = "N/A"
		}
		projected = append(projected, models.Field{
			Key:   utils.HumanizeFieldName(field.Key),
			Value: value,
		})
	}
	return projected
}

func presentDocuments(documents models.DocumentList) models.DocumentList {
	kept := make(models.DocumentList, 0, len(documents))
	for _, doc := range documents {
		if doc.Name == "" || doc.Path == "" {
			continue
		}
		kept = append(kept, doc)
	}
	return kept
}

func detailOr(details models.FieldList, key, fallback string) string {
	if value, ok := details.Get(key); ok && value != "" {
		return value
	}
	return fallback
}
