package aggregate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/repository"

	"go.uber.org/zap"
)

// Runner executes one aggregation pass over every user with telemetry in
// the trailing window. Users are processed independently: a failure is
// logged and skipped, and each successful user gets a single replace-write.
// There is no transaction across users; a mid-run crash leaves the already
// processed users fresh and the rest stale until the next run.
type Runner struct {
	log        *zap.Logger
	windowDays int
	batchCap   int
	workers    int

	// OnReplace is called after each successful profile write, e.g. to
	// invalidate a cached profile.
	OnReplace func(userID uint)
}

func NewRunner(log *zap.Logger, windowDays, batchCap, workers int) *Runner {
	if windowDays <= 0 {
		windowDays = 30
	}
	if batchCap <= 0 {
		batchCap = 100
	}
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		log:        log,
		windowDays: windowDays,
		batchCap:   batchCap,
		workers:    workers,
	}
}

// Run aggregates every active user and returns how many were processed
// successfully.
func (r *Runner) Run(ctx context.Context) (int, error) {
	since := time.Now().UTC().AddDate(0, 0, -r.windowDays)

	userIDs, err := repository.GetActiveUserIDs(ctx, since)
	if err != nil {
		return 0, err
	}
	r.log.Info("Starting weakness aggregation",
		zap.Int("users", len(userIDs)),
		zap.Time("windowStart", since),
	)

	jobs := make(chan uint)
	var processed int64
	var wg sync.WaitGroup

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range jobs {
				if err := r.aggregateUser(ctx, userID, since); err != nil {
					r.log.Error("Failed to aggregate user, skipping",
						zap.Uint("userID", userID),
						zap.Error(err),
					)
					continue
				}
				atomic.AddInt64(&processed, 1)
			}
		}()
	}

	for _, userID := range userIDs {
		jobs <- userID
	}
	close(jobs)
	wg.Wait()

	r.log.Info("Weakness aggregation finished", zap.Int64("processed", processed))
	return int(atomic.LoadInt64(&processed)), nil
}

func (r *Runner) aggregateUser(ctx context.Context, userID uint, since time.Time) error {
	batches, err := repository.GetRecentBatches(ctx, userID, since, r.batchCap)
	if err != nil {
		return err
	}

	var events []models.KeystrokeEvent
	for _, batch := range batches {
		events = append(events, batch.Events...)
	}

	profile := BuildProfile(userID, events, time.Now().UTC())
	if err := repository.ReplaceProfile(ctx, profile); err != nil {
		return err
	}
	if r.OnReplace != nil {
		r.OnReplace(userID)
	}
	return nil
}
