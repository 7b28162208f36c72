package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Account lifecycle events
	UserRegisteredEvent  AuditEventType = "USER_REGISTERED"
	EmailVerifiedEvent   AuditEventType = "EMAIL_VERIFIED"
	UserLoginEvent       AuditEventType = "USER_LOGIN"
	UserLoginFailedEvent AuditEventType = "USER_LOGIN_FAILED"

	// Credential recovery events
	PasswordResetRequestedEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetCompletedEvent AuditEventType = "PASSWORD_RESET_COMPLETED"
	VerificationResentEvent     AuditEventType = "VERIFICATION_RESENT"

	// Delivery events
	NotifyFailedEvent AuditEventType = "NOTIFY_FAILED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}
