package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/draw-odds/internal/metrics"
)

// reloadTimeout bounds one scheduled dataset reload.
const reloadTimeout = 2 * time.Minute

// Refresher reloads the dataset on a cron schedule. A failed reload leaves
// the previous dataset in place.
type Refresher struct {
	cron            *cron.Cron
	reload          func(context.Context) error
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobID           cron.EntryID
	gracefulTimeout time.Duration
}

// NewRefresher creates a refresher around the given reload function
func NewRefresher(reload func(context.Context) error, logger *logrus.Logger) *Refresher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Refresher{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		reload:          reload,
		logger:          logger,
		gracefulTimeout: 30 * time.Second,
	}
}

// Schedule registers the reload job with a cron expression
func (r *Refresher) Schedule(cronExpression string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("cannot schedule job while refresher is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()

		r.logger.Info("Starting scheduled dataset refresh")
		if err := r.reload(ctx); err != nil {
			metrics.RecordDatasetRefresh("failure")
			r.logger.WithError(err).Error("Scheduled dataset refresh failed, keeping previous dataset")
			return
		}
		metrics.RecordDatasetRefresh("success")
		r.logger.Info("Scheduled dataset refresh completed")
	}

	entryID, err := r.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	r.jobID = entryID
	r.logger.WithField("schedule", cronExpression).Info("Dataset refresh scheduled")

	return nil
}

// Start starts the refresher
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher is already running")
	}
	if r.jobID == 0 {
		return fmt.Errorf("no refresh job scheduled")
	}

	r.cron.Start()
	r.isRunning = true
	r.logger.Info("Dataset refresher started")

	return nil
}

// Stop gracefully stops the refresher, waiting for an in-flight reload
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(r.gracefulTimeout):
		r.logger.Warn("Timed out waiting for in-flight dataset refresh")
	}

	r.isRunning = false
	r.logger.Info("Dataset refresher stopped")
}

// IsRunning returns whether the refresher is currently running
func (r *Refresher) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRunning
}

// NextRun returns the time of the next scheduled reload
func (r *Refresher) NextRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.isRunning || r.jobID == 0 {
		return time.Time{}
	}

	entry := r.cron.Entry(r.jobID)
	if !entry.Valid() {
		return time.Time{}
	}
	return entry.Next
}
