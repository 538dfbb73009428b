package auth

import (
	"context"
	"strings"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// Register creates a new account and issues its first token.
//
// The uniqueness pre-check is advisory: two concurrent registrations with the
// same email race past it, and the store's constraint settles the winner. A
// duplicate reported at persistence time therefore surfaces exactly like one
// caught by the pre-check.
func (s *Service) Register(ctx context.Context, name, email, password string) (Result, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)

	if name == "" {
		return Result{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return Result{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return Result{}, domain.ErrMissingField("password")
	}

	if _, err := s.users.GetByEmail(ctx, email, false); err == nil {
		return Result{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return Result{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Result{}, err
	}

	created, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
		Active:       true,
	})
	if err != nil {
		return Result{}, err
	}

	tok, err := s.issueToken(created)
	if err != nil {
		return Result{}, err
	}

	if s.pub != nil {
		if perr := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: created.ID,
			Email:  created.Email,
			Role:   created.Role,
		}); perr != nil {
			s.log.Warn().Err(perr).Str("user_id", created.ID).Msg("user_registered event not published")
		}
	}

	return Result{User: withoutHash(created), Token: tok}, nil
}
