package scheduler

import (
	"context"
	"sync"
	"time"

	"footbuddy/internal/config"
	"footbuddy/internal/mailer"
	"footbuddy/internal/pipeline"
	"footbuddy/internal/store"
	"footbuddy/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the digest pipeline on a cron schedule. Each scheduled
// run processes yesterday's fixtures and mails the digest when the run
// produced one.
type Scheduler struct {
	cron      *cron.Cron
	config    *config.Config
	pipeline  *pipeline.Pipeline
	store     *store.Store
	mailer    *mailer.Mailer
	isRunning bool
	mu        sync.RWMutex
	entryID   cron.EntryID
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, p *pipeline.Pipeline, st *store.Store, m *mailer.Mailer) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		config:   cfg,
		pipeline: p,
		store:    st,
		mailer:   m,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Scheduler.Enabled {
		logger.Info("Scheduler is disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Scheduler.CronExpression, func() {
		logger.Info("Starting scheduled digest run")
		s.RunDigest(yesterday())
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	logger.Info("Scheduler started successfully",
		zap.String("schedule", s.config.Scheduler.CronExpression))

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		logger.Info("Scheduler stopped")
	}
}

// IsRunning returns whether a digest run is currently in progress
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the next scheduled run time
func (s *Scheduler) GetNextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entryID == 0 {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	nextRun := entry.Next
	return &nextRun
}

// RunDigest executes the pipeline for one date and mails the result.
// Concurrent invocations are skipped, not queued.
func (s *Scheduler) RunDigest(date string) {
	s.mu.Lock()
	if s.isRunning {
		logger.Warn("Digest run already in progress, skipping this execution")
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	logger.Info("Executing digest run", zap.String("date", date))

	job := s.store.CreateJob(date)

	result, err := s.pipeline.Run(context.Background(), date)
	job.FixturesSeen = result.FixturesSeen
	job.TriggersFound = result.TriggersFound
	if err != nil {
		s.store.FailJob(job, err)
		return
	}

	if result.EmailBody == "" {
		s.store.CompleteJob(job)
		return
	}

	if err := s.mailer.Send(s.config.SMTP.Subject, result.EmailBody, true); err != nil {
		s.store.FailJob(job, err)
		return
	}
	job.EmailSent = true

	s.store.CompleteJob(job)
	logger.Info("Digest run completed successfully", zap.String("date", date))
}

// yesterday is the date the daily schedule processes: matches finish
// overnight, so the morning run looks one day back.
func yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
}
