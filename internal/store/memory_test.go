package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
)

func TestMemoryStoreParticipants(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	missing, err := s.GetParticipantByName(ctx, "Ana")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, s.CreateParticipant(ctx, &models.Participant{Name: "Ana", LastStatus: 100}))

	p, err := s.GetParticipantByName(ctx, "Ana")
	require.NoError(t, err)
	require.Equal(t, int64(100), p.LastStatus)

	require.NoError(t, s.TouchParticipant(ctx, "Ana", 200))
	p, _ = s.GetParticipantByName(ctx, "Ana")
	require.Equal(t, int64(200), p.LastStatus)

	require.NoError(t, s.DeleteParticipant(ctx, "Ana"))
	p, err = s.GetParticipantByName(ctx, "Ana")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestMemoryStoreMessagesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, s.InsertMessage(ctx, &models.Message{
			From: "Ana", To: "Todos", Text: text, Type: models.TypeMessage,
		}))
	}

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "first", msgs[0].Text)
	require.Equal(t, "second", msgs[1].Text)
	require.Equal(t, "third", msgs[2].Text)

	// Every message got a distinct id
	require.NotEqual(t, msgs[0].ID, msgs[1].ID)
	require.NotEqual(t, msgs[1].ID, msgs[2].ID)
}

func TestMemoryStoreUpdateLeavesFromUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	msg := &models.Message{From: "Ana", To: "Todos", Text: "oi", Type: models.TypeMessage}
	require.NoError(t, s.InsertMessage(ctx, msg))

	require.NoError(t, s.UpdateMessage(ctx, msg.ID, &models.Message{
		From: "Bob", To: "Bob", Text: "edited", Type: models.TypePrivateMessage,
	}))

	got, err := s.GetMessageByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", got.From)
	require.Equal(t, "edited", got.Text)
}

// The store offers no uniqueness guarantee: check-then-insert is the
// caller's job and carries a race window. Two inserts of the same name
// both land, matching the document store's behavior without a unique
// index.
func TestRegisterRaceWindow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.CreateParticipant(ctx, &models.Participant{Name: "Ana"})
		}()
	}
	wg.Wait()

	roster, err := s.ListParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
}
