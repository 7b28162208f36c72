package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/skbr1234/user-authentication-service/domain"
)

// hashCost is the fixed bcrypt work factor. Raising it invalidates nothing
// (bcrypt embeds the cost in each hash) but slows new registrations.
const hashCost = 12

// dummyHash is a bcrypt hash of a throwaway value, compared against when no
// stored credential exists so the miss path costs the same as a mismatch.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{
		cost: hashCost,
	}
}

// Hash implements domain.PasswordService. Each invocation salts from the
// system CSPRNG, so hashing the same password twice yields distinct values.
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// DummyCompare implements domain.PasswordService
func (p *PasswordServiceImpl) DummyCompare() {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte("dummy password"))
}
