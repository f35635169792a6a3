package services

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"mime/multipart"
	"time"

	"scholarship-portal-api/config"
	"scholarship-portal-api/models"
	"scholarship-portal-api/utils"
)

const (
	// captchaField is the reserved CAPTCHA answer key, dropped before storage.
	captchaField = "captcha-answer"
	// portraitField is the upload field whose file becomes the embedded portrait.
	portraitField = "passport_photo"

	maxFieldSize = 1 << 20 // 1MB per text field
)

// SubmissionResult is the caller-visible outcome of a successful submission.
type SubmissionResult struct {
	TrackingID  string
	SubmittedAt time.Time
}

// SubmissionService owns the end-to-end submission sequence:
// sanitize -> persist -> render -> notify. The durable write is the only
// step that can fail the request; rendering and notification run as
// post-commit hooks, each inside its own failure boundary.
type SubmissionService struct {
	repo       ApplicationRepository
	uploads    UploadStore
	docs       *DocumentService
	dispatcher *MailDispatcher
	recipients []string

	now           func() time.Time
	newTrackingID func() (string, error)
}

// NewSubmissionService wires the orchestrator. Nil collaborators fall back
// to the production implementations (GORM repository, local disk store,
// SMTP dispatcher with NOTIFY_EMAILS recipients). The mail settings for a
// nil dispatcher are not read here: construction happens at package init,
// before main has loaded .env, so they resolve per dispatch instead.
func NewSubmissionService(repo ApplicationRepository, uploads UploadStore, dispatcher *MailDispatcher, recipients []string) *SubmissionService {
	if repo == nil {
		repo = NewApplicationRepository(nil)
	}
	if uploads == nil {
		uploads = NewLocalUploadStore()
	}

	return &SubmissionService{
		repo:          repo,
		uploads:       uploads,
		docs:          NewDocumentService(uploads),
		dispatcher:    dispatcher,
		recipients:    recipients,
		now:           time.Now,
		newTrackingID: utils.NewTrackingID,
	}
}

// mailer returns the injected dispatcher, or builds one from the current
// environment so SMTP_* values loaded after package init are honored.
func (s *SubmissionService) mailer() *MailDispatcher {
	if s.dispatcher != nil {
		return s.dispatcher
	}
	return NewMailDispatcher(config.LoadMailConfig())
}

// notifyList returns the injected recipients, or reads NOTIFY_EMAILS from
// the current environment.
func (s *SubmissionService) notifyList() []string {
	if s.recipients != nil {
		return s.recipients
	}
	return config.NotifyRecipients()
}

// Submit processes one multipart submission. On return with a nil error the
// application is durably stored; render and notification outcomes never
// change that.
func (s *SubmissionService) Submit(mr *multipart.Reader) (*SubmissionResult, error) {
	details, documents, photoPath, err := s.collect(mr)
	if err != nil {
		return nil, err
	}

	trackingID, err := s.newTrackingID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.Application{
		TrackingID:       trackingID,
		ApplicantDetails: details,
		Documents:        documents,
		PhotoPath:        photoPath,
		Status:           models.StatusSubmitted,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	// Durability boundary: a failure here (including a tracking_id
	// collision on the unique index) aborts the request with no record.
	if err := s.repo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	var artifact []byte
	s.runPostCommit(trackingID, "render document", func() error {
		data, err := s.docs.BuildSubmissionDocument(app)
		if err != nil {
			return err
		}
		artifact = data
		return nil
	})
	s.runPostCommit(trackingID, "notify applicant", func() error {
		return s.notifyApplicant(app, now, artifact)
	})
	s.runPostCommit(trackingID, "notify reviewers", func() error {
		s.notifyReviewers(app, now, artifact)
		return nil
	})

	return &SubmissionResult{TrackingID: trackingID, SubmittedAt: now}, nil
}

// collect walks the multipart stream in wire order: text fields are
// sanitized (the CAPTCHA answer is dropped, dob date-normalized) and files
// go to the upload store. The first passport_photo upload doubles as the
// portrait; it stays in the document list as well.
func (s *SubmissionService) collect(mr *multipart.Reader) (models.FieldList, models.DocumentList, *string, error) {
	var (
		details   models.FieldList
		documents models.DocumentList
		photoPath *string
	)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, NewValidationError("Malformed form payload")
		}

		name := part.FormName()
		if name == "" {
			part.Close()
			continue
		}

		if part.FileName() == "" {
			data, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
			part.Close()
			if err != nil {
				return nil, nil, nil, NewValidationError("Malformed form payload")
			}
			if len(data) > maxFieldSize {
				return nil, nil, nil, NewValidationError(fmt.Sprintf("Field %s is too large", name))
			}
			if name == captchaField {
				continue
			}

			value := utils.SanitizeText(string(data))
			if name == "dob" {
				value = utils.FormatDateValue(value)
			}
			if _, exists := details.Get(name); !exists {
				details = append(details, models.Field{Key: name, Value: value})
			}
			continue
		}

		path, err := s.uploads.Save(name, part.FileName(), part)
		part.Close()
		if err != nil {
			return nil, nil, nil, err
		}

		documents = append(documents, models.DocumentRef{
			Name: utils.HumanizeFieldName(name),
			Path: path,
		})
		if name == portraitField && photoPath == nil {
			stored := path
			photoPath = &stored
		}
	}

	return details, documents, photoPath, nil
}

// runPostCommit executes one best-effort step after the durable write.
// Failures (and panics) are logged and swallowed; they never unwind the
// stored record or the success response.
func (s *SubmissionService) runPostCommit(trackingID, step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("post-commit step %q panicked for %s: %v", step, trackingID, r)
		}
	}()

	if err := fn(); err != nil {
		log.Printf("post-commit step %q failed for %s: %v", step, trackingID, err)
	}
}

func (s *SubmissionService) notifyApplicant(app *models.Application, submittedAt time.Time, artifact []byte) error {
	email, ok := app.ApplicantDetails.Get("email_id")
	if !ok || !utils.ValidateEmail(email) {
		log.Printf("no valid applicant email for %s, skipping applicant notification", app.TrackingID)
		return nil
	}

	subject := fmt.Sprintf("Scholarship Application - ID: %s", app.TrackingID)
	html := applicantEmailHTML(app.TrackingID, submittedAt)
	return s.mailer().Dispatch(email, subject, html, attachmentsFor(app.TrackingID, artifact))
}

// notifyReviewers sends to every operational recipient; each send is
// isolated so one failed delivery never blocks the rest.
func (s *SubmissionService) notifyReviewers(app *models.Application, submittedAt time.Time, artifact []byte) {
	subject := "New Scholarship Application Received"
	html := reviewerEmailHTML(app.TrackingID, submittedAt)
	attachments := attachmentsFor(app.TrackingID, artifact)
	dispatcher := s.mailer()

	for _, recipient := range s.notifyList() {
		if err := dispatcher.Dispatch(recipient, subject, html, attachments); err != nil {
			log.Printf("failed to notify %s about %s: %v", recipient, app.TrackingID, err)
		}
	}
}

func attachmentsFor(trackingID string, artifact []byte) []config.Attachment {
	if artifact == nil {
		return nil
	}
	return []config.Attachment{{
		Filename: fmt.Sprintf("application_%s.docx", trackingID),
		Content:  artifact,
	}}
}

func applicantEmailHTML(trackingID string, submittedAt time.Time) string {
	return fmt.Sprintf(`<h2>Thank you for applying! Tracking ID: %s</h2>
<p>Submitted on: %s</p>
<p>Keep this tracking ID to follow the progress of your application.</p>`,
		template.HTMLEscapeString(trackingID),
		submittedAt.Format("02-01-2006 15:04"))
}

func reviewerEmailHTML(trackingID string, submittedAt time.Time) string {
	return fmt.Sprintf(`<h2>New Scholarship Application ID: %s</h2>
<p>Submitted on: %s</p>`,
		template.HTMLEscapeString(trackingID),
		submittedAt.Format("02-01-2006 15:04"))
}
