package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusnotes/campusnotes-api/internal/access"
	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/query"
	"github.com/campusnotes/campusnotes-api/internal/service"
)

// ResourceHandler serves the list/read/create/update/delete endpoints of one
// resource type. I is the request body type.
type ResourceHandler[T any, I service.Input] struct {
	name    string
	label   string
	service *service.ResourceService[T]
}

// NewResourceHandler names the resource for logs (name) and messages (label).
func NewResourceHandler[T any, I service.Input](name, label string, svc *service.ResourceService[T]) *ResourceHandler[T, I] {
	return &ResourceHandler[T, I]{name: name, label: label, service: svc}
}

func (h *ResourceHandler[T, I]) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := query.Parse(r.URL.Query(), h.service.QuerySpec())
	if err != nil {
		writeError(w, r, h.name+".list", err)
		return
	}

	page, err := h.service.List(r.Context(), p)
	if err != nil {
		writeError(w, r, h.name+".list", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ResourceHandler[T, I]) HandleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.name+".get", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ResourceHandler[T, I]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())
	if caller == nil {
		writeError(w, r, h.name+".create", common.ErrUnauthenticated)
		return
	}

	var in I
	if !decodeBody(w, r, &in) {
		return
	}

	item, err := h.service.Create(r.Context(), caller.UserID, in)
	if err != nil {
		writeError(w, r, h.name+".create", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ResourceHandler[T, I]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in I
	if !decodeBody(w, r, &in) {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.name+".update", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ResourceHandler[T, I]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.name+".delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": h.label + " deleted successfully",
		"id":      id,
	})
}
