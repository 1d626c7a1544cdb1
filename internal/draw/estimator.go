package draw

import (
	"fmt"

	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
)

// FilterResult carries the outcome of evaluating the ahead-prefix against
// the claimant sets. RemovedSubPool and RemovedCrossPool count unique
// identities; TotalRemoved counts physical records, so
// InitialAhead - TotalRemoved = FilteredAhead always holds.
type FilterResult struct {
	InitialAhead     int
	RemovedSubPool   int
	RemovedCrossPool int
	TotalRemoved     int
	FilteredAhead    int
}

// Estimator locates the target in the primary ranking and filters the
// competitors ahead of it.
type Estimator struct {
	anomalies *logger.AnomalyLog
}

// NewEstimator creates an estimator reporting through the anomaly log.
func NewEstimator(anomalies *logger.AnomalyLog) *Estimator {
	return &Estimator{anomalies: anomalies}
}

// FindTarget returns the index and record of the first entry matching the
// name, case-insensitively and whitespace-trimmed.
func (e *Estimator) FindTarget(ranking *models.Ranking, firstName, lastName string) (int, models.DrawRecord, error) {
	for i, record := range ranking.Records {
		if record.MatchesName(firstName, lastName) {
			return i, record, nil
		}
	}
	return 0, models.DrawRecord{}, fmt.Errorf("%s %s not in %s: %w",
		firstName, lastName, ranking.Source, models.ErrTargetNotFound)
}

// FilterAhead evaluates every record ahead of the target. Sub-pool
// membership is checked before cross-pool membership, so an identity in both
// sets is attributed to the sub-pool only. Every matching physical record is
// excluded, while each identity is counted in the tallies at most once.
// Records without an identity cannot match any set and are kept.
func (e *Estimator) FilterAhead(ahead []models.DrawRecord, subPool, crossPool models.ClaimantSet) FilterResult {
	result := FilterResult{InitialAhead: len(ahead)}
	counted := models.NewClaimantSet()

	for _, record := range ahead {
		if !record.HasID() {
			e.anomalies.KeptWithoutIdentity(record.DisplayName(), record.OriginIndex)
			metrics.RecordAnomaly(metrics.AnomalyKeptWithoutID)
			continue
		}

		switch {
		case subPool.Contains(record.ID):
			if !counted.Contains(record.ID) {
				result.RemovedSubPool++
				counted.Add(record.ID)
			}
			result.TotalRemoved++
		case crossPool.Contains(record.ID):
			if !counted.Contains(record.ID) {
				result.RemovedCrossPool++
				counted.Add(record.ID)
			}
			result.TotalRemoved++
		}
	}

	result.FilteredAhead = result.InitialAhead - result.TotalRemoved
	return result
}
