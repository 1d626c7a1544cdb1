package draw

import (
	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
)

// ClaimantBuilder derives claimant sets, the identities predicted to claim a
// spot somewhere before the primary competition is reached.
type ClaimantBuilder struct {
	policy    Policy
	anomalies *logger.AnomalyLog
}

// NewClaimantBuilder creates a builder for the given policy.
func NewClaimantBuilder(policy Policy, anomalies *logger.AnomalyLog) *ClaimantBuilder {
	return &ClaimantBuilder{policy: policy, anomalies: anomalies}
}

// SubPoolClaimants returns the identities of the first capacity usable
// records of the scarce unit's own ranking. A record without an identity is
// skipped and does not consume a slot; a duplicate identity does. A missing
// ranking was already reported as a degraded source, so only a real ranking
// with no capacity to absorb it raises the zero-capacity anomaly.
func (b *ClaimantBuilder) SubPoolClaimants(ranking *models.Ranking, capacity int) models.ClaimantSet {
	set := models.NewClaimantSet()

	if ranking == nil || ranking.IsEmpty() {
		return set
	}
	if capacity <= 0 {
		b.anomalies.ZeroCapacity(b.policy.ScarceUnit, capacity)
		metrics.RecordAnomaly(metrics.AnomalyZeroCapacity)
		return set
	}

	b.takeTop(set, ranking, capacity)
	return set
}

// CrossPoolClaimants returns the union of each pool's first top-N usable
// identities. Pools that failed to load never reach here; they simply
// contribute nothing.
func (b *ClaimantBuilder) CrossPoolClaimants(pools []*models.Ranking) models.ClaimantSet {
	set := models.NewClaimantSet()
	for _, pool := range pools {
		if pool == nil {
			continue
		}
		b.takeTop(set, pool, b.policy.CrossPoolTopN)
	}
	return set
}

func (b *ClaimantBuilder) takeTop(set models.ClaimantSet, ranking *models.Ranking, limit int) {
	taken := 0
	for _, record := range ranking.Records {
		if taken >= limit {
			break
		}
		if !record.HasID() {
			b.anomalies.ClaimantSkipped(ranking.Source, record.OriginIndex, record.DisplayName())
			metrics.RecordAnomaly(metrics.AnomalyClaimantSkipped)
			continue
		}
		set.Add(record.ID)
		taken++
	}
}
