package postgres

import (
	"database/sql"
	"time"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

type userRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash sql.NullString
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ur userRow) toDomain() domain.User {
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash.String,
		Role:         ur.Role,
		Active:       ur.Active,
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
}
