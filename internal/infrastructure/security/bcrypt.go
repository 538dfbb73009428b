package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// DefaultCost mirrors the work factor the original deployment used.
const DefaultCost = 10

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A mismatch or a malformed
// hash yields (false, nil); errors are reserved for internal failures.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if isMalformedHash(err) {
		return false, nil
	}
	return false, domain.ErrHashFailed(err)
}

func isMalformedHash(err error) bool {
	if errors.Is(err, bcrypt.ErrHashTooShort) {
		return true
	}
	var (
		prefixErr  bcrypt.InvalidHashPrefixError
		versionErr bcrypt.HashVersionTooNewError
		costErr    bcrypt.InvalidCostError
	)
	return errors.As(err, &prefixErr) || errors.As(err, &versionErr) || errors.As(err, &costErr)
}
