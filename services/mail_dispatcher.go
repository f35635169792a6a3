package services

import (
	"log"

	"scholarship-portal-api/config"
)

// sendMailFunc is swapped out by tests.
type sendMailFunc func(cfg config.MailConfig, to []string, subject, html string, attachments []config.Attachment) error

// MailDispatcher sends transactional notifications. One attempt per
// recipient, no retry, no queue; delivery failures are returned to the
// caller, which owns the per-recipient failure boundary.
type MailDispatcher struct {
	cfg  config.MailConfig
	send sendMailFunc
}

// NewMailDispatcher builds a dispatcher around an explicit mail configuration.
func NewMailDispatcher(cfg config.MailConfig) *MailDispatcher {
	return &MailDispatcher{cfg: cfg, send: config.SendMail}
}

// Dispatch sends one message to one recipient. When SMTP is not configured
// the send is skipped with a log line instead of failing the caller.
func (d *MailDispatcher) Dispatch(to, subject, html string, attachments []config.Attachment) error {
	if !d.cfg.Configured() {
		log.Printf("smtp not configured, skipping email to %s (subject=%q)", to, subject)
		return nil
	}

	if err := d.send(d.cfg, []string{to}, subject, html, attachments); err != nil {
		return err
	}

	log.Printf("Email sent to %s (subject=%q)", to, subject)
	return nil
}
