package handlers

import (
	"net/http"
	"time"
)

// Heartbeat refreshes the acting participant's lastStatus. This is the
// only liveness signal the server accepts; a client that stops calling
// it gets evicted by the sweeper.
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	user := identity(r)

	participant, err := h.store.GetParticipantByName(r.Context(), user)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	if participant == nil {
		h.Error(w, http.StatusNotFound, "participant not found")
		return
	}

	if err := h.store.TouchParticipant(r.Context(), participant.Name, time.Now().UnixMilli()); err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	w.WriteHeader(http.StatusOK)
}
