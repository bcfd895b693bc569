package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/service"
)

// UserHandler serves /api/users/{id}.
type UserHandler struct {
	service *service.AuthService
}

func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "users.get", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, "users.update", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeError(w, r, "users.change_password", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *UserHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "users.deactivate", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User deactivated successfully",
		"user":    user,
	})
}
