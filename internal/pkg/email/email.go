package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService delivers account mail. Sends are skipped when SMTP is not configured.
type EmailService interface {
	Enabled() bool
	SendCredentials(ctx context.Context, to string, data CredentialsEmailData) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	backoff   time.Duration
	send      sendFunc
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		backoff:   time.Second,
		send:      smtp.SendMail,
	}, nil
}

func (s *emailServiceImpl) Enabled() bool {
	return s.cfg.Enabled()
}

// CredentialsEmailData fills credentials.html.
type CredentialsEmailData struct {
	EmployeeName      string
	CompanyName       string
	LoginID           string
	Email             string
	TemporaryPassword string
	LoginURL          string
}

// SendCredentials mails a new employee their login id and temporary password.
func (s *emailServiceImpl) SendCredentials(ctx context.Context, to string, data CredentialsEmailData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "credentials.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return s.deliver(ctx, to, fmt.Sprintf("Your %s account", data.CompanyName), body.Bytes())
}

func (s *emailServiceImpl) message(to, subject string, html []byte) []byte {
	from := mail.Address{Name: s.cfg.FromName, Address: s.cfg.From}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(html)
	return msg.Bytes()
}

func (s *emailServiceImpl) deliver(ctx context.Context, to, subject string, html []byte) error {
	if !s.cfg.Enabled() {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	msg := s.message(to, subject, html)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = s.send(addr, auth, s.cfg.From, []string{to}, msg)
		if lastErr == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}
		slog.Warn("Failed to send email", "to", to, "attempt", attempt, "max_retries", maxRetries, "error", lastErr)

		if attempt == maxRetries {
			break
		}
		// 1x, 2x, 4x
		select {
		case <-ctx.Done():
			return fmt.Errorf("email to %s abandoned: %w", to, ctx.Err())
		case <-time.After(s.backoff << (attempt - 1)):
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
