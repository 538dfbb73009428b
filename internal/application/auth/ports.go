package auth

import (
	"context"
	"time"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// UserRepo is the persistence port for users (the credential store).
// Email matching is case-insensitive and trimmed. The password hash is
// excluded from reads unless includeHash is set; GetByID never returns it.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string, includeHash bool) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)

	// Create assigns ID and timestamps, enforces email uniqueness, and
	// reports a duplicate as a distinguishable conflict error.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

// PasswordHasher abstracts the one-way credential transform (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash yields
	// (false, nil); only a genuine internal failure returns an error.
	Verify(password, hash string) (bool, error)
}

// TokenClaims are the facts asserted by a verified bearer token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer creates a signed, time-bounded token over identity claims.
type TokenIssuer interface {
	Issue(userID, email, role string, ttl time.Duration) (string, error)
}

// TokenVerifier checks signature integrity first, then expiry, and extracts
// the claim set.
type TokenVerifier interface {
	Verify(token string) (TokenClaims, error)
}

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// EventPublisher pushes account events to the message broker. Publishing is
// best-effort from the service's point of view.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}
