package mocks

import "github.com/skbr1234/user-authentication-service/domain"

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc         func(password string) (string, error)
	VerifyFunc       func(hashedPassword, password string) bool
	DummyCompareFunc func()

	// DummyCompares counts calls so timing-equalization paths can be asserted
	DummyCompares int
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: deterministic fake hash
	return "hashed_" + password, nil
}

// Verify compares a password with its hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: matches the fake Hash output
	return hashedPassword == "hashed_"+password
}

// DummyCompare burns a comparison without a stored credential
func (m *MockPasswordService) DummyCompare() {
	m.DummyCompares++
	if m.DummyCompareFunc != nil {
		m.DummyCompareFunc()
	}
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
