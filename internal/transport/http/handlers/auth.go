package http_handlers

import (
	"net/http"

	"github.com/nakama-dev/auth-backend/internal/application/auth"
	"github.com/nakama-dev/auth-backend/internal/logger"
	"github.com/nakama-dev/auth-backend/internal/transport/http/dto"
	"github.com/nakama-dev/auth-backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
	// debug controls whether error causes are echoed in 5xx bodies; it must
	// be false in production.
	debug bool
}

func NewAuthHandler(svc *auth.Service, debug bool) *AuthHandler {
	return &AuthHandler{svc: svc, debug: debug}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.Created(w, "user registered successfully", dto.AuthData{
		User:  dto.NewUserView(res.User),
		Token: res.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, "login successful", dto.AuthData{
		User:  dto.NewUserView(res.User),
		Token: res.Token,
	})
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	err := h.svc.UpdatePassword(r.Context(), r.Header.Get("Authorization"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	logger.WithCtx(r.Context()).Info().Msg("password_updated")

	response.OK(w, "password updated successfully", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.CurrentUser(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		response.WriteError(w, r, err, h.debug)
		return
	}

	response.OK(w, "", dto.MeData{User: dto.NewUserView(u)})
}
