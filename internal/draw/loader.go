package draw

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-odds/internal/config"
	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
	"github.com/yourusername/draw-odds/internal/rowsource"
)

// SourceStat is one source's load outcome.
type SourceStat struct {
	Source   string `json:"source"`
	Loaded   int    `json:"loaded"`
	Dropped  int    `json:"dropped"`
	Degraded bool   `json:"degraded"`
}

// Dataset is the immutable world one estimation run executes against. Safe
// to share read-only across concurrent queries.
type Dataset struct {
	Primary            *models.Ranking
	Capacity           CapacityReport
	SubPool            *models.Ranking
	SubPoolClaimants   models.ClaimantSet
	CrossPoolClaimants models.ClaimantSet
	// PoolNames are the auxiliary pools that contributed cross-pool
	// claimants, in load order.
	PoolNames []string
	Stats     []SourceStat
	LoadedAt  time.Time
}

// LoadRequest names the sources one dataset load consumes. AuxPools may
// include entries collected interactively; they feed the cross-pool builder
// in order.
type LoadRequest struct {
	Primary  string
	Rooms    string
	SubPool  string
	AuxPools []string
}

// RequestFromConfig builds the load request from the sources section.
func RequestFromConfig(cfg *config.Config) LoadRequest {
	return LoadRequest{
		Primary:  cfg.Sources.Primary,
		Rooms:    cfg.Sources.Rooms,
		SubPool:  cfg.Sources.SubPool,
		AuxPools: append([]string(nil), cfg.Sources.AuxPools...),
	}
}

// Loader assembles a Dataset from configured sources. Auxiliary sources
// degrade on failure; only an unusable primary ranking is fatal.
type Loader struct {
	factory    *rowsource.Factory
	policy     Policy
	normalizer *Normalizer
	resolver   *CapacityResolver
	claimants  *ClaimantBuilder
	anomalies  *logger.AnomalyLog
	logger     *logrus.Logger
}

// NewLoader creates a dataset loader.
func NewLoader(factory *rowsource.Factory, policy Policy, baseLogger *logrus.Logger) *Loader {
	if baseLogger == nil {
		baseLogger = logrus.New()
	}
	anomalies := logger.NewAnomalyLog(baseLogger)
	return &Loader{
		factory:    factory,
		policy:     policy,
		normalizer: NewNormalizer(anomalies),
		resolver:   NewCapacityResolver(policy, anomalies),
		claimants:  NewClaimantBuilder(policy, anomalies),
		anomalies:  anomalies,
		logger:     baseLogger,
	}
}

// Load loads every requested source and assembles the Dataset.
func (l *Loader) Load(ctx context.Context, req LoadRequest) (*Dataset, error) {
	ds := &Dataset{
		SubPoolClaimants:   models.NewClaimantSet(),
		CrossPoolClaimants: models.NewClaimantSet(),
	}

	primary, stat, err := l.loadRanking(ctx, req.Primary)
	if err != nil {
		metrics.RecordSourceFailure(stat.Source)
		return nil, fmt.Errorf("primary ranking %s unavailable (%v): %w",
			req.Primary, err, models.ErrPrimaryUnavailable)
	}
	if primary.IsEmpty() {
		metrics.RecordSourceFailure(stat.Source)
		return nil, fmt.Errorf("primary ranking %s has no usable rows: %w",
			stat.Source, models.ErrPrimaryUnavailable)
	}
	ds.Primary = primary
	ds.Stats = append(ds.Stats, stat)
	l.logger.WithFields(logrus.Fields{
		"source":  stat.Source,
		"loaded":  stat.Loaded,
		"dropped": stat.Dropped,
	}).Info("Primary ranking loaded")

	ds.Capacity = l.loadCapacity(ctx, req.Rooms, ds)
	ds.SubPool = l.loadSubPool(ctx, req.SubPool, ds)
	if req.SubPool != "" {
		ds.SubPoolClaimants = l.claimants.SubPoolClaimants(ds.SubPool, ds.Capacity.UnitCapacity)
	}

	var pools []*models.Ranking
	for _, reference := range req.AuxPools {
		if reference == req.SubPool {
			l.logger.WithField("source", reference).Info("Skipping auxiliary pool, matches the sub-pool source")
			continue
		}
		ranking, poolStat, err := l.loadRanking(ctx, reference)
		if err != nil {
			l.degrade(poolStat.Source, "pool contributes no early claimants", err)
			ds.Stats = append(ds.Stats, poolStat)
			continue
		}
		ds.Stats = append(ds.Stats, poolStat)
		ds.PoolNames = append(ds.PoolNames, ranking.Source)
		pools = append(pools, ranking)
	}
	ds.CrossPoolClaimants = l.claimants.CrossPoolClaimants(pools)

	ds.LoadedAt = time.Now()
	metrics.UpdateDatasetGauges(ds.Primary.Len(), ds.Capacity.ScarceSpots)
	metrics.UpdateLastRefresh(float64(ds.LoadedAt.Unix()))

	l.logger.WithFields(logrus.Fields{
		"pool_size":            ds.Primary.Len(),
		"unit_capacity":        ds.Capacity.UnitCapacity,
		"scarce_spots":         ds.Capacity.ScarceSpots,
		"sub_pool_claimants":   ds.SubPoolClaimants.Len(),
		"cross_pool_claimants": ds.CrossPoolClaimants.Len(),
		"aux_pools":            len(ds.PoolNames),
	}).Info("Dataset loaded")

	return ds, nil
}

// loadRanking loads, normalizes, and sorts one draw-time source.
func (l *Loader) loadRanking(ctx context.Context, reference string) (*models.Ranking, SourceStat, error) {
	source, err := l.factory.New(reference)
	if err != nil {
		return nil, SourceStat{Source: reference, Degraded: true}, err
	}

	table, err := source.Load(ctx)
	if err != nil {
		return nil, SourceStat{Source: source.Name(), Degraded: true}, err
	}
	if err := table.RequireColumns(source.Name(), DrawColumns...); err != nil {
		return nil, SourceStat{Source: source.Name(), Degraded: true}, err
	}

	records, dropped := l.normalizer.DrawRecords(source.Name(), table)
	metrics.RecordSourceLoad(source.Name(), len(records), dropped)

	stat := SourceStat{Source: source.Name(), Loaded: len(records), Dropped: dropped}
	return BuildRanking(source.Name(), records), stat, nil
}

// loadCapacity loads the rooms source and resolves it against the policy.
// Any failure yields an all-zero report.
func (l *Loader) loadCapacity(ctx context.Context, reference string, ds *Dataset) CapacityReport {
	if reference == "" {
		return CapacityReport{}
	}

	source, err := l.factory.New(reference)
	if err != nil {
		l.degrade(reference, "capacity-gated exclusion inactive", err)
		ds.Stats = append(ds.Stats, SourceStat{Source: reference, Degraded: true})
		return CapacityReport{}
	}

	table, err := source.Load(ctx)
	if err == nil {
		err = table.RequireColumns(source.Name(), RoomColumns...)
	}
	if err != nil {
		l.degrade(source.Name(), "capacity-gated exclusion inactive", err)
		ds.Stats = append(ds.Stats, SourceStat{Source: source.Name(), Degraded: true})
		return CapacityReport{}
	}

	records, dropped := l.normalizer.RoomRecords(source.Name(), table)
	metrics.RecordSourceLoad(source.Name(), len(records), dropped)
	ds.Stats = append(ds.Stats, SourceStat{Source: source.Name(), Loaded: len(records), Dropped: dropped})

	report := l.resolver.Resolve(records)
	l.logger.WithFields(logrus.Fields{
		"source":        source.Name(),
		"unit":          l.policy.ScarceUnit,
		"unit_rooms":    report.UnitRooms,
		"unit_capacity": report.UnitCapacity,
		"scarce_spots":  report.ScarceSpots,
	}).Info("Capacity resolved")
	return report
}

// loadSubPool loads the scarce unit's own draw list. Returns nil when the
// source is not configured or failed.
func (l *Loader) loadSubPool(ctx context.Context, reference string, ds *Dataset) *models.Ranking {
	if reference == "" {
		return nil
	}

	ranking, stat, err := l.loadRanking(ctx, reference)
	if err != nil {
		l.degrade(stat.Source, "sub-pool exclusion inactive", err)
		ds.Stats = append(ds.Stats, stat)
		return nil
	}
	ds.Stats = append(ds.Stats, stat)
	return ranking
}

func (l *Loader) degrade(source, impact string, err error) {
	l.anomalies.SourceDegraded(source, impact, err)
	metrics.RecordAnomaly(metrics.AnomalySourceDegraded)
	metrics.RecordSourceFailure(source)
}
