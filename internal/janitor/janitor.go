// Package janitor prunes aged entries from the persistent classification cache.
package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/reportlink/internal/cachestore"
	"git.home.luguber.info/inful/reportlink/internal/logfields"
)

// Janitor wraps a gocron scheduler that periodically prunes the cache store.
type Janitor struct {
	scheduler gocron.Scheduler
	store     *cachestore.Store
	ttl       time.Duration
}

// New creates a janitor pruning entries older than ttl every interval.
func New(store *cachestore.Store, ttl, interval time.Duration) (*Janitor, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	j := &Janitor{scheduler: s, store: store, ttl: ttl}
	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(j.prune),
		gocron.WithName("cache-prune"),
	); err != nil {
		return nil, fmt.Errorf("create prune job: %w", err)
	}
	return j, nil
}

// Start begins the pruning schedule.
func (j *Janitor) Start(_ context.Context) {
	slog.Info("Starting cache janitor", slog.Duration("ttl", j.ttl))
	j.scheduler.Start()
}

// Stop gracefully shuts down the schedule.
func (j *Janitor) Stop() error {
	slog.Info("Stopping cache janitor")
	return j.scheduler.Shutdown()
}

func (j *Janitor) prune() {
	n, err := j.store.Prune(time.Now().Add(-j.ttl))
	if err != nil {
		slog.Warn("Cache prune failed", logfields.Error(err))
		return
	}
	if n > 0 {
		slog.Info("Pruned aged cache entries", slog.Int64("removed", n))
	}
}
