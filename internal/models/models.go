package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Message types accepted from clients, plus the system-generated status type.
const (
	TypeMessage        = "message"
	TypePrivateMessage = "private_message"
	TypeStatus         = "status"
)

// BroadcastRecipient is the fixed destination meaning "every participant".
const BroadcastRecipient = "Todos"

// TimeLayout is the display format for Message.Time (HH:mm:ss).
// It is not sortable; insertion order is the chronological signal.
const TimeLayout = "15:04:05"

// Status message bodies emitted on registration and eviction.
const (
	JoinText  = "entra na sala..."
	LeaveText = "sai da sala..."
)

// Participant represents a registered chat participant.
type Participant struct {
	Name       string `bson:"name" json:"name"`
	LastStatus int64  `bson:"lastStatus" json:"lastStatus"` // unix ms of last heartbeat
}

// Message represents a chat message stored in MongoDB.
type Message struct {
	ID   bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	From string        `bson:"from" json:"from"`
	To   string        `bson:"to" json:"to"`
	Text string        `bson:"text" json:"text"`
	Type string        `bson:"type" json:"type"`
	Time string        `bson:"time" json:"time"` // display format, see TimeLayout
}

// VisibleTo reports whether the message may be shown to the given user:
// public messages, broadcasts, and private messages the user sent or received.
func (m Message) VisibleTo(user string) bool {
	return m.Type == TypeMessage ||
		m.To == user ||
		m.From == user ||
		m.To == BroadcastRecipient
}
