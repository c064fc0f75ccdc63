package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/daybreak-app/daybreak-backend/internal/middleware"
	"github.com/daybreak-app/daybreak-backend/internal/services"
	"github.com/daybreak-app/daybreak-backend/internal/store"
)

// Handler bundles the HTTP endpoints over the resource store.
type Handler struct {
	store *store.Store
}

// New creates a Handler backed by the given store.
func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

// requireUser returns the authenticated owner id placed in the context by the
// auth middleware. Writes a 401 and returns false if it is missing.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// internalError logs err, reports it to the error tracker, and replies with a
// generic message so no persistence detail leaks to the caller.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Error in %s %s: %v", r.Method, r.URL.Path, err)
	services.CaptureError(err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// MethodNotAllowed replies to unsupported verbs on known routes.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
