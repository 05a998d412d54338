package handler

import (
	"log/slog"
	"net/http"
	"time"

	"assistor/internal/auth"
	"assistor/internal/form"
	"assistor/internal/service"
)

// AuthHandler exposes registration, login, logout, and the current-user
// endpoint. Sessions are JWTs in an HttpOnly cookie; the handler owns
// the cookie, the service owns the credentials.
type AuthHandler struct {
	auth     *service.AuthService
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, tokenTTL: tokenTTL, logger: logger}
}

// HandleRegister creates an account and logs it in.
//
// HTTP: POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var f form.Registration
	if !decodeJSON(w, r, &f) {
		return
	}

	user, token, err := h.auth.Register(r.Context(), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, token, int(h.tokenTTL.Seconds()))
	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and starts a session.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var f form.Login
	if !decodeJSON(w, r, &f) {
		return
	}

	user, token, err := h.auth.Login(r.Context(), &f)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, token, int(h.tokenTTL.Seconds()))
	writeJSON(w, http.StatusOK, user)
}

// HandleLogout ends the session by expiring the cookie. The JWT itself
// stays valid until its expiry — stateless tokens can't be revoked —
// but without the cookie the browser no longer presents it.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated user.
//
// HTTP: GET /api/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.CurrentUser(r.Context())

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
