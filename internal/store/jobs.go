package store

import (
	"time"

	"footbuddy/internal/models"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
)

// CreateJob records the start of one digest run.
func (s *Store) CreateJob(date string) *models.DigestJob {
	job := &models.DigestJob{
		Date:      date,
		Status:    "running",
		StartedAt: time.Now(),
	}

	s.db.Create(job)

	logger.Info("Digest job created",
		zap.Int("job_id", job.ID),
		zap.String("date", date))

	return job
}

// CompleteJob marks a job as completed.
func (s *Store) CompleteJob(job *models.DigestJob) {
	now := time.Now()
	job.Status = "completed"
	job.CompletedAt = &now

	s.db.Save(job)

	logger.Info("Digest job completed",
		zap.Int("job_id", job.ID),
		zap.Int("fixtures_seen", job.FixturesSeen),
		zap.Int("triggers_found", job.TriggersFound))
}

// FailJob marks a job as failed with the causing error.
func (s *Store) FailJob(job *models.DigestJob, err error) {
	now := time.Now()
	job.Status = "failed"
	job.CompletedAt = &now
	job.ErrorMessage = err.Error()

	s.db.Save(job)

	logger.Error("Digest job failed",
		zap.Int("job_id", job.ID),
		zap.Error(err))
}
