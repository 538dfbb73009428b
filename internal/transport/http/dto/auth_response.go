package dto

import (
	"time"

	"github.com/nakama-dev/auth-backend/internal/domain"
)

// UserView is the standard user payload. The password hash is deliberately
// absent: the model the view is built from never carries it out of the store.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// AuthData is returned by register and login.
type AuthData struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// MeData is returned by the profile lookup.
type MeData struct {
	User UserView `json:"user"`
}
