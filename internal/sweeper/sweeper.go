// Package sweeper evicts participants whose last heartbeat is older
// than a fixed threshold, announcing each departure with a status
// message. It runs on its own interval, independent of any request.
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/PauloCruz06/batepapo-uol-api/internal/metrics"
	"github.com/PauloCruz06/batepapo-uol-api/internal/models"
	"github.com/PauloCruz06/batepapo-uol-api/internal/store"
)

// Sweeper periodically removes stale participants.
//
// The threshold is shorter than the interval, so a participant can sit
// stale for up to a full interval before removal, and a heartbeat sent
// just before a run may not save its sender. Eviction is approximate by
// design; the next run re-evaluates staleness from scratch.
type Sweeper struct {
	store     store.DataStore
	log       zerolog.Logger
	interval  time.Duration
	threshold time.Duration
	workers   int

	now func() time.Time
}

// New creates a Sweeper. workers bounds how many evictions run
// concurrently within one sweep.
func New(s store.DataStore, log zerolog.Logger, interval, threshold time.Duration, workers int) *Sweeper {
	if workers < 1 {
		workers = 1
	}
	return &Sweeper{
		store:     s,
		log:       log,
		interval:  interval,
		threshold: threshold,
		workers:   workers,
		now:       time.Now,
	}
}

// Run sweeps on a fixed interval until the context is canceled.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info().
		Dur("interval", s.interval).
		Dur("threshold", s.threshold).
		Msg("starting eviction sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("eviction sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single eviction pass: read the roster, select stale
// participants, evict each independently. One participant's failure
// never blocks the others.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := s.now()
	runID := uuid.NewString()
	metrics.SweepRuns.Inc()

	roster, err := s.store.ListParticipants(ctx)
	if err != nil {
		metrics.SweepFailures.WithLabelValues("list").Inc()
		s.log.Error().Err(err).Str("sweep_id", runID).Msg("failed to read roster")
		return
	}

	cutoff := start.UnixMilli() - s.threshold.Milliseconds()
	var stale []models.Participant
	for _, p := range roster {
		if p.LastStatus < cutoff {
			stale = append(stale, p)
		}
	}
	if len(stale) == 0 {
		return
	}

	// Evictions touch disjoint records, so they can run concurrently;
	// the semaphore just keeps the store connection pool honest.
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for _, p := range stale {
		wg.Add(1)
		sem <- struct{}{}
		go func(p models.Participant) {
			defer wg.Done()
			defer func() { <-sem }()
			s.evict(ctx, runID, p)
		}(p)
	}
	wg.Wait()

	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("sweep_id", runID).
		Int("evicted", len(stale)).
		Msg("sweep completed")
}

// evict removes one participant and announces the departure. The order
// is fixed: delete first, then announce. If the announce fails after a
// successful delete the departure notice is lost; the next sweep cannot
// repair that, so it is only logged.
func (s *Sweeper) evict(ctx context.Context, runID string, p models.Participant) {
	if err := s.store.DeleteParticipant(ctx, p.Name); err != nil {
		metrics.SweepFailures.WithLabelValues("delete").Inc()
		s.log.Error().Err(err).
			Str("sweep_id", runID).
			Str("participant", p.Name).
			Msg("failed to delete stale participant")
		return
	}

	left := &models.Message{
		From: p.Name,
		To:   models.BroadcastRecipient,
		Text: models.LeaveText,
		Type: models.TypeStatus,
		Time: s.now().Format(models.TimeLayout),
	}
	if err := s.store.InsertMessage(ctx, left); err != nil {
		metrics.SweepFailures.WithLabelValues("announce").Inc()
		s.log.Error().Err(err).
			Str("sweep_id", runID).
			Str("participant", p.Name).
			Msg("failed to announce departure")
		return
	}

	metrics.ParticipantsEvicted.Inc()
}
