package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
)

// DataStore defines the interface for persistent storage of participants
// and messages. Both MongoStore and MemoryStore implement this interface.
//
// Each individual call is atomic; multi-step sequences built on top of it
// (check-then-insert, read-roster-then-write) are not. Lookups return
// (nil, nil) when the record does not exist.
type DataStore interface {
	// Connection management
	Close(ctx context.Context) error
	Ping(ctx context.Context) error

	// Participant operations
	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipantByName(ctx context.Context, name string) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	TouchParticipant(ctx context.Context, name string, lastStatus int64) error
	DeleteParticipant(ctx context.Context, name string) error

	// Message operations. InsertMessage assigns msg.ID; ListMessages
	// returns messages in insertion order, which callers rely on as the
	// only chronological signal.
	InsertMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context) ([]models.Message, error)
	GetMessageByID(ctx context.Context, id bson.ObjectID) (*models.Message, error)
	UpdateMessage(ctx context.Context, id bson.ObjectID, msg *models.Message) error
	DeleteMessage(ctx context.Context, id bson.ObjectID) error
}
