package services

import (
	"context"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/aggregate"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler runs the weakness aggregation on a daily schedule. The HTTP
// trigger endpoint stays available for external schedulers; both paths
// share the same runner.
type Scheduler struct {
	log       *zap.Logger
	scheduler *gocron.Scheduler
	runner    *aggregate.Runner
	dailyAt   string
}

func NewScheduler(log *zap.Logger, runner *aggregate.Runner, dailyAt string) *Scheduler {
	return &Scheduler{
		log:       log,
		scheduler: gocron.NewScheduler(time.UTC),
		runner:    runner,
		dailyAt:   dailyAt,
	}
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	_, err := s.scheduler.Every(1).Day().At(s.dailyAt).Do(s.runAggregation)
	if err != nil {
		s.log.Error("Failed to schedule aggregation job", zap.Error(err))
		return
	}
	s.scheduler.StartAsync()
	s.log.Info("Aggregation schedule started", zap.String("daily_at", s.dailyAt))
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runAggregation() {
	processed, err := s.runner.Run(context.Background())
	if err != nil {
		s.log.Error("Scheduled aggregation run failed", zap.Error(err))
		return
	}
	s.log.Info("Scheduled aggregation run complete", zap.Int("users", processed))
}
