// Package validate holds the request schemas and the roster membership
// check. Schema failures and membership failures both map to 422 at the
// handler boundary, distinct from storage failures.
package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
)

var v = validator.New()

// ParticipantSchema is the shape of a registration request after sanitizing.
type ParticipantSchema struct {
	Name string `validate:"required"`
}

// MessageSchema is the shape of a posted or edited message after sanitizing.
// Status messages are system-generated and never pass through this schema.
type MessageSchema struct {
	To   string `validate:"required"`
	Text string `validate:"required"`
	Type string `validate:"required,oneof=message private_message"`
}

// Participant checks the registration schema.
func Participant(name string) error {
	return v.Struct(ParticipantSchema{Name: name})
}

// Message checks the message schema.
func Message(to, text, msgType string) error {
	return v.Struct(MessageSchema{To: to, Text: text, Type: msgType})
}

// SenderInRoster reports whether from names a current participant.
// The roster must be a fresh read of the participant store; participants
// register and leave between requests, so a cached roster would drift.
func SenderInRoster(from string, roster []models.Participant) bool {
	for _, p := range roster {
		if p.Name == from {
			return true
		}
	}
	return false
}
