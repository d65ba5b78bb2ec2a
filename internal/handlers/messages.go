package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/PauloCruz06/batepapo-uol-api/internal/metrics"
	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
	"github.com/PauloCruz06/batepapo-uol-api/internal/sanitize"
	"github.com/PauloCruz06/batepapo-uol-api/internal/validate"
)

// MessageRequest represents the post/edit message request body. The
// sender is never read from the body: it comes from the User header.
type MessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// checkMessage sanitizes and validates a message request against a fresh
// roster read. The same snapshot serves both the schema check and the
// sender membership check, so there is a single point of drift against
// the sweeper rather than two.
func (h *Handler) checkMessage(r *http.Request, req *MessageRequest, from string) (int, string) {
	req.Text = sanitize.Clean(req.Text)

	if err := validate.Message(req.To, req.Text, req.Type); err != nil {
		return http.StatusUnprocessableEntity, "to and text are required, type must be message or private_message"
	}

	roster, err := h.store.ListParticipants(r.Context())
	if err != nil {
		return http.StatusInternalServerError, "database error"
	}
	if !validate.SenderInRoster(from, roster) {
		return http.StatusUnprocessableEntity, "sender is not a registered participant"
	}
	return 0, ""
}

// PostMessage handles posting a public or private message.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	from := identity(r)

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}

	if status, msg := h.checkMessage(r, &req, from); status != 0 {
		h.Error(w, status, msg)
		return
	}

	message := &models.Message{
		From: from,
		To:   req.To,
		Text: req.Text,
		Type: req.Type,
		Time: time.Now().Format(models.TimeLayout),
	}
	if err := h.store.InsertMessage(r.Context(), message); err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to store message")
		return
	}

	metrics.MessagesPosted.WithLabelValues(req.Type).Inc()
	w.WriteHeader(http.StatusCreated)
}

// ListMessages handles listing the messages visible to the requesting
// identity, optionally limited to the last N.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := identity(r)

	messages, err := h.store.ListMessages(r.Context())
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	visible := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if m.VisibleTo(user) {
			visible = append(visible, m)
		}
	}

	// limit=N keeps the last N visible messages in original relative
	// order. Invalid or non-positive values are ignored.
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n < len(visible) {
			visible = visible[len(visible)-n:]
		}
	}

	h.JSON(w, http.StatusOK, visible)
}

// EditMessage handles author-only edits. The stored from field is never
// rewritten: the header identity authorizes the edit, it does not become
// the author.
func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	user := identity(r)

	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "message not found")
		return
	}

	message, err := h.store.GetMessageByID(r.Context(), id)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	if message == nil {
		h.Error(w, http.StatusNotFound, "message not found")
		return
	}
	if message.From != user {
		h.Error(w, http.StatusUnauthorized, "not the author of this message")
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}
	if status, msg := h.checkMessage(r, &req, user); status != 0 {
		h.Error(w, status, msg)
		return
	}

	updated := &models.Message{
		To:   req.To,
		Text: req.Text,
		Type: req.Type,
		Time: time.Now().Format(models.TimeLayout),
	}
	if err := h.store.UpdateMessage(r.Context(), id, updated); err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to update message")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteMessage handles author-only deletion.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	user := identity(r)

	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "message not found")
		return
	}

	message, err := h.store.GetMessageByID(r.Context(), id)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	if message == nil {
		h.Error(w, http.StatusNotFound, "message not found")
		return
	}
	if message.From != user {
		h.Error(w, http.StatusUnauthorized, "not the author of this message")
		return
	}

	if err := h.store.DeleteMessage(r.Context(), id); err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to delete message")
		return
	}

	w.WriteHeader(http.StatusOK)
}
