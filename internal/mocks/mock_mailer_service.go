package mocks

import (
	"sync"

	"github.com/skbr1234/user-authentication-service/domain"
)

// SentMail records a single delivery attempt
type SentMail struct {
	Email string
	Token string
	Reset bool
}

// MockMailerService implements domain.MailerService interface for testing.
// Deliveries happen on orchestrator goroutines, so the record is guarded.
type MockMailerService struct {
	SendVerificationLinkFunc  func(email, tokenValue string) error
	SendPasswordResetLinkFunc func(email, tokenValue string) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailerService creates a new MockMailerService with default behaviors
func NewMockMailerService() *MockMailerService {
	return &MockMailerService{}
}

// SendVerificationLink records and optionally delegates a verification mail
func (m *MockMailerService) SendVerificationLink(email, tokenValue string) error {
	m.record(SentMail{Email: email, Token: tokenValue})
	if m.SendVerificationLinkFunc != nil {
		return m.SendVerificationLinkFunc(email, tokenValue)
	}
	// Default behavior: success
	return nil
}

// SendPasswordResetLink records and optionally delegates a reset mail
func (m *MockMailerService) SendPasswordResetLink(email, tokenValue string) error {
	m.record(SentMail{Email: email, Token: tokenValue, Reset: true})
	if m.SendPasswordResetLinkFunc != nil {
		return m.SendPasswordResetLinkFunc(email, tokenValue)
	}
	// Default behavior: success
	return nil
}

func (m *MockMailerService) record(mail SentMail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
}

// Sent returns a copy of all recorded deliveries
func (m *MockMailerService) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.MailerService = (*MockMailerService)(nil)
