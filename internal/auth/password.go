package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront-service/internal/config"
)

// ErrCredentialMismatch is returned when a supplied password does not match.
var ErrCredentialMismatch = errors.New("credential mismatch")

// CredentialPolicy prepares credentials for storage and checks them at login.
type CredentialPolicy interface {
	Prepare(password string) (string, error)
	Compare(stored, supplied string) error
}

// NewCredentialPolicy selects the policy for the configured mode.
func NewCredentialPolicy(cfg config.AuthConfig) CredentialPolicy {
	if cfg.PasswordMode == config.PasswordModeBcrypt {
		return bcryptPolicy{cost: cfg.BcryptCost}
	}
	return plainPolicy{}
}

// plainPolicy stores the credential verbatim and compares trimmed values.
// Passwords are not hashed in this mode.
type plainPolicy struct{}

func (plainPolicy) Prepare(password string) (string, error) {
	return password, nil
}

func (plainPolicy) Compare(stored, supplied string) error {
	if strings.TrimSpace(stored) != strings.TrimSpace(supplied) {
		return ErrCredentialMismatch
	}
	return nil
}

type bcryptPolicy struct {
	cost int
}

// Prepare hashes a plaintext password with configured cost.
func (p bcryptPolicy) Prepare(password string) (string, error) {
	cost := p.cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies a password against its hashed value.
func (bcryptPolicy) Compare(stored, supplied string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(strings.TrimSpace(supplied))); err != nil {
		return ErrCredentialMismatch
	}
	return nil
}
