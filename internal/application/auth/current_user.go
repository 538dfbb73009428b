package auth

import (
	"context"
	"strings"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// CurrentUser resolves an Authorization header to the authenticated user.
// The header must be of the form "Bearer <token>"; anything else counts as a
// missing token. Signature and expiry failures from the verifier pass through
// unchanged. The returned user never includes the password hash.
func (s *Service) CurrentUser(ctx context.Context, authorization string) (domain.User, error) {
	raw, err := bearerToken(authorization)
	if err != nil {
		return domain.User{}, err
	}

	claims, err := s.verifier.Verify(raw)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return domain.User{}, err
	}

	return withoutHash(u), nil
}

func bearerToken(authorization string) (string, error) {
	if authorization == "" {
		return "", domain.ErrTokenMissing()
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrTokenMissing()
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", domain.ErrTokenMissing()
	}
	return raw, nil
}
