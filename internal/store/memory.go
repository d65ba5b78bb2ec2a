package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
)

// MemoryStore is an in-memory DataStore for development without MongoDB
// and for tests. It is safe for concurrent use; messages keep insertion
// order. State is not persistent and not shared across processes.
type MemoryStore struct {
	mu           sync.RWMutex
	participants []models.Participant
	messages     []models.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Close is a no-op.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ping is a no-op.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// CreateParticipant appends a participant record. Like the document
// store, it enforces no name uniqueness of its own.
func (s *MemoryStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = append(s.participants, *p)
	return nil
}

// GetParticipantByName retrieves a participant by exact name.
func (s *MemoryStore) GetParticipantByName(ctx context.Context, name string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if p.Name == name {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// ListParticipants returns a copy of the roster.
func (s *MemoryStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Participant, len(s.participants))
	copy(out, s.participants)
	return out, nil
}

// TouchParticipant updates a participant's lastStatus timestamp.
func (s *MemoryStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if s.participants[i].Name == name {
			s.participants[i].LastStatus = lastStatus
			return nil
		}
	}
	return nil
}

// DeleteParticipant removes a participant by name.
func (s *MemoryStore) DeleteParticipant(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if s.participants[i].Name == name {
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			return nil
		}
	}
	return nil
}

// InsertMessage appends a message and assigns its ObjectID.
func (s *MemoryStore) InsertMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

// ListMessages returns a copy of all messages in insertion order.
func (s *MemoryStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// GetMessageByID retrieves a message by its ObjectID.
func (s *MemoryStore) GetMessageByID(ctx context.Context, id bson.ObjectID) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

// UpdateMessage overwrites the mutable fields of a message, leaving
// from untouched.
func (s *MemoryStore) UpdateMessage(ctx context.Context, id bson.ObjectID, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].To = msg.To
			s.messages[i].Text = msg.Text
			s.messages[i].Type = msg.Type
			s.messages[i].Time = msg.Time
			return nil
		}
	}
	return nil
}

// DeleteMessage removes a message by its ObjectID.
func (s *MemoryStore) DeleteMessage(ctx context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return nil
}
