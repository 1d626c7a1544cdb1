package draw

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
)

// Engine runs estimates against a loaded Dataset. Each call produces only
// local state, so one Engine may serve concurrent queries over the same
// Dataset.
type Engine struct {
	policy    Policy
	estimator *Estimator
	logger    *logrus.Logger
}

// NewEngine creates an estimation engine.
func NewEngine(policy Policy, baseLogger *logrus.Logger) *Engine {
	if baseLogger == nil {
		baseLogger = logrus.New()
	}
	return &Engine{
		policy:    policy,
		estimator: NewEstimator(logger.NewAnomalyLog(baseLogger)),
		logger:    baseLogger,
	}
}

// Estimate computes the target's adjusted position and probability of
// obtaining a scarce-type room.
func (e *Engine) Estimate(ds *Dataset, firstName, lastName string) (*models.EstimationResult, error) {
	start := time.Now()

	if ds == nil || ds.Primary == nil || ds.Primary.IsEmpty() {
		metrics.RecordEstimationRun(metrics.OutcomeNoDataset, time.Since(start).Seconds())
		return nil, models.ErrNoDataset
	}

	idx, target, err := e.estimator.FindTarget(ds.Primary, firstName, lastName)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, models.ErrTargetNotFound) {
			outcome = metrics.OutcomeTargetNotFound
		}
		metrics.RecordEstimationRun(outcome, time.Since(start).Seconds())
		return nil, err
	}

	filtered := e.estimator.FilterAhead(ds.Primary.Ahead(idx), ds.SubPoolClaimants, ds.CrossPoolClaimants)

	result := &models.EstimationResult{
		RunID:            uuid.New(),
		TargetFirstName:  target.FirstName,
		TargetLastName:   target.LastName,
		TargetID:         target.ID,
		DrawTime:         target.RawDrawTime,
		RawRank:          idx + 1,
		PoolSize:         ds.Primary.Len(),
		InitialAhead:     filtered.InitialAhead,
		RemovedSubPool:   filtered.RemovedSubPool,
		SubPoolCapacity:  ds.Capacity.UnitCapacity,
		RemovedCrossPool: filtered.RemovedCrossPool,
		CrossPoolTopN:    e.policy.CrossPoolTopN,
		TotalRemoved:     filtered.TotalRemoved,
		FilteredAhead:    filtered.FilteredAhead,
		AvailableSpots:   ds.Capacity.ScarceSpots,
		GeneratedAt:      time.Now().UTC(),
	}
	result.Probability = Probability(result.AvailableSpots, result.AdjustedRank())

	metrics.RecordEstimationRun(metrics.OutcomeSuccess, time.Since(start).Seconds())
	metrics.RecordProbability(result.Probability)

	e.logger.WithFields(logrus.Fields{
		"run_id":         result.RunID,
		"target":         result.TargetDisplayName(),
		"raw_rank":       result.RawRank,
		"initial_ahead":  result.InitialAhead,
		"filtered_ahead": result.FilteredAhead,
		"probability":    result.Probability,
	}).Info("Estimation complete")

	return result, nil
}
