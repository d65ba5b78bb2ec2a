package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
)

func TestParticipant(t *testing.T) {
	require.NoError(t, Participant("Ana"))
	require.Error(t, Participant(""))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name          string
		to, text, typ string
		wantErr       bool
	}{
		{"public message", "Todos", "oi", "message", false},
		{"private message", "Bob", "oi", "private_message", false},
		{"missing to", "", "oi", "message", true},
		{"missing text", "Todos", "", "message", true},
		{"missing type", "Todos", "oi", "", true},
		{"status type rejected from clients", "Todos", "oi", "status", true},
		{"unknown type", "Todos", "oi", "shout", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Message(tt.to, tt.text, tt.typ)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSenderInRoster(t *testing.T) {
	roster := []models.Participant{{Name: "Ana"}, {Name: "Bob"}}

	require.True(t, SenderInRoster("Ana", roster))
	require.False(t, SenderInRoster("ana", roster)) // exact, case-sensitive match
	require.False(t, SenderInRoster("Carol", roster))
	require.False(t, SenderInRoster("", nil))
}
