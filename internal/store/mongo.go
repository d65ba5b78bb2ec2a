package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
)

const (
	participantsCollection = "participants"
	messagesCollection     = "messages"
)

// MongoStore handles MongoDB operations for participants and messages.
//
// Uniqueness of participant names is enforced by a findOne-then-insert
// sequence in the registration handler, not by a unique index: two
// concurrent registrations of the same name can both land. This matches
// the reference behavior and is deliberate.
type MongoStore struct {
	client       *mongo.Client
	participants *mongo.Collection
	messages     *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store bound to the
// given database. It pings before returning so handlers never run
// against an unready handle.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database(dbName)
	return &MongoStore{
		client:       client,
		participants: db.Collection(participantsCollection),
		messages:     db.Collection(messagesCollection),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks the MongoDB connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// CreateParticipant inserts a new participant record.
func (s *MongoStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	_, err := s.participants.InsertOne(ctx, p)
	return err
}

// GetParticipantByName retrieves a participant by exact name.
func (s *MongoStore) GetParticipantByName(ctx context.Context, name string) (*models.Participant, error) {
	p := &models.Participant{}
	err := s.participants.FindOne(ctx, bson.M{"name": name}).Decode(p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListParticipants retrieves the full roster.
func (s *MongoStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	cursor, err := s.participants.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var participants []models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// TouchParticipant updates a participant's lastStatus timestamp.
func (s *MongoStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) error {
	_, err := s.participants.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastStatus": lastStatus}},
	)
	return err
}

// DeleteParticipant removes a participant by name.
func (s *MongoStore) DeleteParticipant(ctx context.Context, name string) error {
	_, err := s.participants.DeleteOne(ctx, bson.M{"name": name})
	return err
}

// InsertMessage stores a message and assigns its ObjectID.
func (s *MongoStore) InsertMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	_, err := s.messages.InsertOne(ctx, msg)
	return err
}

// ListMessages retrieves all messages in insertion order. No sort is
// applied: natural order on an append-only collection is insert order,
// which the limit semantics of GET /messages depend on.
func (s *MongoStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	cursor, err := s.messages.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessageByID retrieves a message by its ObjectID.
func (s *MongoStore) GetMessageByID(ctx context.Context, id bson.ObjectID) (*models.Message, error) {
	msg := &models.Message{}
	err := s.messages.FindOne(ctx, bson.M{"_id": id}).Decode(msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return msg, nil
}

// UpdateMessage overwrites the mutable fields of a message. The from
// field is intentionally absent from the update document: author
// identity is immutable after creation.
func (s *MongoStore) UpdateMessage(ctx context.Context, id bson.ObjectID, msg *models.Message) error {
	_, err := s.messages.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"to":   msg.To,
			"text": msg.Text,
			"type": msg.Type,
			"time": msg.Time,
		}},
	)
	return err
}

// DeleteMessage removes a message by its ObjectID.
func (s *MongoStore) DeleteMessage(ctx context.Context, id bson.ObjectID) error {
	_, err := s.messages.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
