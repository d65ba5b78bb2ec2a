package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/PauloCruz06/batepapo-uol-api/internal/sanitize"
	"github.com/PauloCruz06/batepapo-uol-api/internal/store"
)

// IdentityHeader carries the acting participant's name on authenticated
// actions. There are no sessions or tokens; the header value is trusted
// after sanitizing, and authorization is a per-request comparison
// against stored data.
const IdentityHeader = "User"

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store store.DataStore
}

// NewHandler creates a new Handler with the given store.
func NewHandler(s store.DataStore) *Handler {
	return &Handler{store: s}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// identity returns the sanitized acting-user name from the request header.
func identity(r *http.Request) string {
	return sanitize.Clean(r.Header.Get(IdentityHeader))
}
