package auth

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// DefaultTokenTTL matches the original deployment default of seven days.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Service orchestrates the credential lifecycle: registration, login and
// token-based session lookup. It holds no mutable state across calls beyond
// the injected store, so a single instance is safe for concurrent use.
type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	issuer   TokenIssuer
	verifier TokenVerifier
	pub      EventPublisher

	tokenTTL time.Duration
	log      zerolog.Logger
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	issuer TokenIssuer,
	verifier TokenVerifier,
	pub EventPublisher,
	cfg Config,
	log zerolog.Logger,
) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		issuer:   issuer,
		verifier: verifier,
		pub:      pub,
		tokenTTL: ttl,
		log:      log,
	}
}

// Result pairs a user projection with a freshly issued token. The projection
// never carries the password hash.
type Result struct {
	User  domain.User
	Token string
}

func (s *Service) issueToken(u domain.User) (string, error) {
	tok, err := s.issuer.Issue(u.ID, u.Email, u.Role, s.tokenTTL)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return tok, nil
}

// withoutHash strips the password hash from an outgoing projection.
func withoutHash(u domain.User) domain.User {
	u.PasswordHash = ""
	return u
}
