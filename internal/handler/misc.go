package handler

import (
	"net/http"
	"time"

	"github.com/campusnotes/campusnotes-api/internal/model"
)

// HandleHealth is the liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleSubjects serves the static course catalog.
func HandleSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.CSITSubjects)
}
