package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// emailPattern is intentionally simple: local@domain.tld.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail applies the canonical form used everywhere an email is
// stored or compared: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email (already normalized) looks like
// local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks the record-level constraints a store must enforce before
// persisting. It returns the first violation as a validation error.
func (u User) Validate() error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return ErrMissingField("name")
	}
	// length in runes, matching the transport-layer validator
	if n := utf8.RuneCountInString(name); n < 2 {
		return ErrInvalidField("name", "must be at least 2 characters")
	} else if n > 50 {
		return ErrInvalidField("name", "must be at most 50 characters")
	}

	email := NormalizeEmail(u.Email)
	if email == "" {
		return ErrMissingField("email")
	}
	if !ValidEmail(email) {
		return ErrInvalidField("email", "invalid format")
	}

	if u.PasswordHash == "" {
		return ErrMissingField("password_hash")
	}
	if u.Role != "" && !IsValidRole(u.Role) {
		return ErrInvalidField("role", "must be user or admin")
	}
	return nil
}
