package jobs

import (
	"context"
	"time"

	"hackmate-backend/internal/config"
	"hackmate-backend/internal/logger"
	"hackmate-backend/internal/repository"
)

// JobRunner coordinates all scheduled maintenance jobs.
type JobRunner struct {
	matchRequests repository.MatchRequestRepository
	teams         repository.TeamRepository
	config        *config.Config
}

func NewJobRunner(matchRequests repository.MatchRequestRepository, teams repository.TeamRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		matchRequests: matchRequests,
		teams:         teams,
		config:        cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// ExpireMatchRequests cancels pending match requests whose expiry has passed.
// Cancelled rows stay in the ledger for history and stats.
func (jr *JobRunner) ExpireMatchRequests() {
	jr.runWithRecovery("ExpireMatchRequests", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		count, err := jr.matchRequests.CancelExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to cancel expired match requests", "error", err)
			return
		}
		logger.Info("Cancelled expired match requests", "count", count)
	})
}

// CompleteEndedEventTeams moves teams of ended events to their terminal
// completed status.
func (jr *JobRunner) CompleteEndedEventTeams() {
	jr.runWithRecovery("CompleteEndedEventTeams", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		count, err := jr.teams.CompleteForEndedEvents(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to complete teams for ended events", "error", err)
			return
		}
		logger.Info("Completed teams for ended events", "count", count)
	})
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ExpireMatchRequests()
	jr.CompleteEndedEventTeams()
}
