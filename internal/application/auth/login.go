package auth

import (
	"context"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// Login authenticates a user against the stored credential and issues a token.
//
// Unknown email and wrong password produce the same invalid-credentials error
// so the response cannot be used to enumerate accounts. The checks run in a
// fixed order: existence, then active flag, then password. A disabled account
// is reported before the password is compared.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = domain.NormalizeEmail(email)

	if email == "" {
		return Result{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return Result{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByEmail(ctx, email, true)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return Result{}, domain.ErrInvalidCredentials()
		}
		return Result{}, err
	}

	if !u.Active {
		return Result{}, domain.ErrAccountDisabled()
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, domain.ErrInvalidCredentials()
	}

	tok, err := s.issueToken(u)
	if err != nil {
		return Result{}, err
	}

	return Result{User: withoutHash(u), Token: tok}, nil
}
