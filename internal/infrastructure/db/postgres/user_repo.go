package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// UserRepo is the PostgreSQL credential store. It expects the users table to
// carry a unique index on lower(email); the index is what settles concurrent
// registrations with the same address.
//
//	CREATE TABLE users (
//	    id            UUID PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    email         TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    role          TEXT NOT NULL DEFAULT 'user',
//	    active        BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE UNIQUE INDEX users_email_lower_idx ON users (lower(email));
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, role, active, created_at, updated_at`

func scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Role,
		&ur.Active,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string, includeHash bool) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	u := ur.toDomain()
	if !includeHash {
		u.PasswordHash = ""
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	// password_hash is excluded from default reads.
	const q = `
SELECT id, name, email, role, active, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1;
`
	var ur userRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.Role,
		&ur.Active,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = domain.NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}

	const q = `
INSERT INTO users (id, name, email, password_hash, role, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		uuid.NewString(), u.Name, u.Email, u.PasswordHash, u.Role, u.Active,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, newHash)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

// isUniqueViolation recognizes a duplicate-key violation (SQLSTATE 23505).
// The string fallback covers drivers that do not surface *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}
