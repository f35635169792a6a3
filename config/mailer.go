package config

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	mail "github.com/go-mail/mail/v2"
)

// Attachment is an in-memory file attached to an outbound message.
type Attachment struct {
	Filename string
	Content  []byte
}

// MailConfig carries the SMTP settings for outbound mail. It is loaded once
// at startup and handed to the dispatcher explicitly; nothing reads the
// environment at send time.
type MailConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string // e.g. "Scholarship Portal <no-reply@your.org>"
	SkipTLSVerify bool
}

// LoadMailConfig reads SMTP settings from the environment.
func LoadMailConfig() MailConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	return MailConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          port,
		User:          os.Getenv("SMTP_USER"),
		Pass:          os.Getenv("SMTP_PASS"),
		From:          os.Getenv("SMTP_FROM"),
		SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

// Configured reports whether outbound mail can be sent at all.
func (c MailConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// NotifyRecipients returns the fixed operational addresses that receive a
// copy of every submission (comma-separated NOTIFY_EMAILS).
func NotifyRecipients() []string {
	raw := os.Getenv("NOTIFY_EMAILS")
	if raw == "" {
		return nil
	}

	var recipients []string
	for _, addr := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

// SendMail delivers one HTML message with optional attachments over SMTP.
func SendMail(cfg MailConfig, to []string, subject, html string, attachments []Attachment) error {
	if len(to) == 0 {
		return nil
	}
	if !cfg.Configured() {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	for _, att := range attachments {
		content := att.Content
		m.Attach(att.Filename, mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)

	// Force STARTTLS on port 587 (Gmail/Office365 style relays)
	d.StartTLSPolicy = mail.MandatoryStartTLS

	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.SkipTLSVerify,
	}

	return d.DialAndSend(m)
}
