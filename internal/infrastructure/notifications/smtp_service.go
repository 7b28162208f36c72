package notifications

import (
	"fmt"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/skbr1234/user-authentication-service/domain"
)

// SMTPServiceImpl implements domain.MailerService. The client carries no
// connection state; net/smtp dials per message, so the orchestrator can call
// it from any goroutine.
type SMTPServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
	baseURL  string
}

// NewSMTPService creates a new SMTP notification service
func NewSMTPService(host string, port int, username, password, from, baseURL string) domain.MailerService {
	return &SMTPServiceImpl{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// SendVerificationLink implements domain.MailerService
func (s *SMTPServiceImpl) SendVerificationLink(email, tokenValue string) error {
	link := fmt.Sprintf("%s/auth/verify-email?token=%s", s.baseURL, url.QueryEscape(tokenValue))
	body := fmt.Sprintf("Welcome! Confirm your email address by opening the link below.\r\n\r\n%s\r\n\r\nThe link expires in 24 hours.", link)
	return s.send(email, "Verify your email address", body)
}

// SendPasswordResetLink implements domain.MailerService
func (s *SMTPServiceImpl) SendPasswordResetLink(email, tokenValue string) error {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", s.baseURL, url.QueryEscape(tokenValue))
	body := fmt.Sprintf("A password reset was requested for your account. Open the link below to choose a new password.\r\n\r\n%s\r\n\r\nThe link expires in 1 hour. If you did not request this, ignore this message.", link)
	return s.send(email, "Reset your password", body)
}

func (s *SMTPServiceImpl) send(to, subject, body string) error {
	// If SMTP is not configured, log instead of sending
	if s.host == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s\n", to, subject, body)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
