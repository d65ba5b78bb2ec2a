package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/PauloCruz06/batepapo-uol-api/internal/metrics"
	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
	"github.com/PauloCruz06/batepapo-uol-api/internal/sanitize"
	"github.com/PauloCruz06/batepapo-uol-api/internal/validate"
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Name string `json:"name"`
}

// Register handles participant registration. The existence check and the
// insert are two independent store calls; concurrent registrations of
// the same name can both pass the check. That window is part of the
// documented behavior, not something this handler papers over.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}

	name := sanitize.Clean(req.Name)
	if err := validate.Participant(name); err != nil {
		h.Error(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	existing, err := h.store.GetParticipantByName(r.Context(), name)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	if existing != nil {
		h.Error(w, http.StatusConflict, "name already taken")
		return
	}

	now := time.Now()
	participant := &models.Participant{Name: name, LastStatus: now.UnixMilli()}
	if err := h.store.CreateParticipant(r.Context(), participant); err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to create participant")
		return
	}

	joined := &models.Message{
		From: name,
		To:   models.BroadcastRecipient,
		Text: models.JoinText,
		Type: models.TypeStatus,
		Time: now.Format(models.TimeLayout),
	}
	if err := h.store.InsertMessage(r.Context(), joined); err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to announce arrival")
		return
	}

	metrics.ParticipantsRegistered.Inc()
	w.WriteHeader(http.StatusCreated)
}

// ListParticipants handles listing the current roster.
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.store.ListParticipants(r.Context())
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	h.JSON(w, http.StatusOK, participants)
}
