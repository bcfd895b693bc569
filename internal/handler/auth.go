package handler

import (
	"net/http"

	"github.com/campusnotes/campusnotes-api/internal/access"
	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/service"
)

// AuthHandler handles registration, login and the caller's own profile.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "auth.register", err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "auth.login", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /api/auth/me.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())
	if caller == nil {
		writeError(w, r, "auth.me", common.ErrUnauthenticated)
		return
	}

	resp, err := h.service.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, "auth.me", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
