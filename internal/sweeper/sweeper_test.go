package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
	"github.com/PauloCruz06/batepapo-uol-api/internal/store"
)

func newTestSweeper(s store.DataStore) *Sweeper {
	return New(s, zerolog.Nop(), 15*time.Second, 10*time.Second, 4)
}

func addParticipant(t *testing.T, s store.DataStore, name string, lastStatus int64) {
	t.Helper()
	require.NoError(t, s.CreateParticipant(context.Background(), &models.Participant{
		Name:       name,
		LastStatus: lastStatus,
	}))
}

func TestSweepEvictsStaleParticipants(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	sw := newTestSweeper(s)

	now := time.Now()
	sw.now = func() time.Time { return now }

	addParticipant(t, s, "Stale", now.Add(-11*time.Second).UnixMilli())
	addParticipant(t, s, "Fresh", now.Add(-2*time.Second).UnixMilli())

	sw.Sweep(ctx)

	stale, err := s.GetParticipantByName(ctx, "Stale")
	require.NoError(t, err)
	require.Nil(t, stale)

	fresh, err := s.GetParticipantByName(ctx, "Fresh")
	require.NoError(t, err)
	require.NotNil(t, fresh)

	// Exactly one departure announcement, from the evicted participant
	// to everyone
	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "Stale", msgs[0].From)
	require.Equal(t, models.BroadcastRecipient, msgs[0].To)
	require.Equal(t, models.TypeStatus, msgs[0].Type)
	require.Equal(t, models.LeaveText, msgs[0].Text)
	require.Equal(t, now.Format(models.TimeLayout), msgs[0].Time)
}

func TestSweepExactThresholdIsNotStale(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	sw := newTestSweeper(s)

	now := time.Now()
	sw.now = func() time.Time { return now }

	// Staleness requires exceeding the threshold, not reaching it
	addParticipant(t, s, "Edge", now.Add(-10*time.Second).UnixMilli())

	sw.Sweep(ctx)

	edge, err := s.GetParticipantByName(ctx, "Edge")
	require.NoError(t, err)
	require.NotNil(t, edge)
}

func TestSweepEmptyRoster(t *testing.T) {
	s := store.NewMemoryStore()
	sw := newTestSweeper(s)

	sw.Sweep(context.Background())

	msgs, err := s.ListMessages(context.Background())
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestSweepEvictsManyConcurrently(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	sw := newTestSweeper(s)

	now := time.Now()
	sw.now = func() time.Time { return now }

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for _, name := range names {
		addParticipant(t, s, name, now.Add(-time.Minute).UnixMilli())
	}

	sw.Sweep(ctx)

	roster, err := s.ListParticipants(ctx)
	require.NoError(t, err)
	require.Empty(t, roster)

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, len(names))

	seen := make(map[string]int)
	for _, m := range msgs {
		require.Equal(t, models.TypeStatus, m.Type)
		require.Equal(t, models.LeaveText, m.Text)
		seen[m.From]++
	}
	for _, name := range names {
		require.Equal(t, 1, seen[name], "one departure notice for %s", name)
	}
}

// failingStore makes DeleteParticipant fail for one name, to prove a bad
// item does not abort the rest of the batch.
type failingStore struct {
	store.DataStore
	failName string
}

func (f *failingStore) DeleteParticipant(ctx context.Context, name string) error {
	if name == f.failName {
		return errors.New("boom")
	}
	return f.DataStore.DeleteParticipant(ctx, name)
}

func TestSweepIsolatesPerParticipantFailures(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	s := &failingStore{DataStore: mem, failName: "Cursed"}
	sw := newTestSweeper(s)

	now := time.Now()
	sw.now = func() time.Time { return now }

	addParticipant(t, s, "Cursed", now.Add(-time.Minute).UnixMilli())
	addParticipant(t, s, "Doomed", now.Add(-time.Minute).UnixMilli())

	sw.Sweep(ctx)

	// The failing participant survives, without a departure notice
	cursed, err := mem.GetParticipantByName(ctx, "Cursed")
	require.NoError(t, err)
	require.NotNil(t, cursed)

	// The other one is still evicted and announced
	doomed, err := mem.GetParticipantByName(ctx, "Doomed")
	require.NoError(t, err)
	require.Nil(t, doomed)

	msgs, err := mem.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "Doomed", msgs[0].From)

	// The next run can still evict the survivor once the store recovers
	s.failName = ""
	sw.Sweep(ctx)
	cursed, err = mem.GetParticipantByName(ctx, "Cursed")
	require.NoError(t, err)
	require.Nil(t, cursed)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := store.NewMemoryStore()
	sw := New(s, zerolog.Nop(), time.Millisecond, 10*time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
}
