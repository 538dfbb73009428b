package auth

import (
	"context"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// UpdatePassword rotates a user's credential. The caller proves possession of
// the account twice: with a valid bearer token and with the current password.
// Hashing happens here, not in the store, so a record is never persisted with
// a plaintext in it.
func (s *Service) UpdatePassword(ctx context.Context, authorization, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return domain.ErrMissingField("currentPassword")
	}
	if newPassword == "" {
		return domain.ErrMissingField("newPassword")
	}

	raw, err := bearerToken(authorization)
	if err != nil {
		return err
	}
	claims, err := s.verifier.Verify(raw)
	if err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, claims.Email, true)
	if err != nil {
		return err
	}
	if !u.Active {
		return domain.ErrAccountDisabled()
	}

	ok, err := s.hasher.Verify(currentPassword, u.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}

	s.log.Info().Str("user_id", u.ID).Msg("password updated")
	return nil
}
