package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher reloads the widget's data.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler manages the periodic refresh task.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Ctx       context.Context

	log     zerolog.Logger
	running sync.Mutex
}

// NewScheduler creates a new Scheduler. Cron expressions take a leading
// seconds field.
func NewScheduler(ctx context.Context, r Refresher, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterRefresh registers the refresh task. An empty expression registers
// nothing.
func (s *Scheduler) RegisterRefresh(expr string) error {
	if expr == "" {
		s.log.Info().Msg("refresh disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(expr, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	s.log.Info().Str("cron", expr).Msg("refresh registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	// Skip the tick if the previous refresh is still going.
	if !s.running.TryLock() {
		s.log.Warn().Msg("refresh still running, tick skipped")
		return
	}
	defer s.running.Unlock()

	s.log.Info().Msg("running refresh task")
	if err := s.Refresher.Refresh(s.Ctx); err != nil {
		s.log.Error().Err(err).Msg("refresh")
	}
}
