package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/draw-odds/internal/database"
	"github.com/yourusername/draw-odds/internal/models"
)

const errScanEstimate = "failed to scan estimation result: %w"

// defaultRecentLimit caps ListRecent when callers pass a non-positive limit.
const defaultRecentLimit = 20

// PostgresEstimateRepository implements EstimateRepository for PostgreSQL
type PostgresEstimateRepository struct {
	db *database.DB
}

// NewPostgresEstimateRepository creates a new estimate repository
func NewPostgresEstimateRepository(db *database.DB) EstimateRepository {
	return &PostgresEstimateRepository{db: db}
}

// Create inserts a new estimation result
func (r *PostgresEstimateRepository) Create(ctx context.Context, result *models.EstimationResult) error {
	query := `
		INSERT INTO estimation_results (
			run_id, target_first_name, target_last_name, target_id, draw_time,
			raw_rank, pool_size, initial_ahead, removed_sub_pool, sub_pool_capacity,
			removed_cross_pool, cross_pool_top_n, total_removed, filtered_ahead,
			available_spots, probability, generated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.RunID, result.TargetFirstName, result.TargetLastName, result.TargetID, result.DrawTime,
		result.RawRank, result.PoolSize, result.InitialAhead, result.RemovedSubPool, result.SubPoolCapacity,
		result.RemovedCrossPool, result.CrossPoolTopN, result.TotalRemoved, result.FilteredAhead,
		result.AvailableSpots, result.Probability, result.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create estimation result: %w", err)
	}

	return nil
}

// GetByID retrieves an estimation result by run ID
func (r *PostgresEstimateRepository) GetByID(ctx context.Context, runID uuid.UUID) (*models.EstimationResult, error) {
	query := `
		SELECT run_id, target_first_name, target_last_name, target_id, draw_time,
		       raw_rank, pool_size, initial_ahead, removed_sub_pool, sub_pool_capacity,
		       removed_cross_pool, cross_pool_top_n, total_removed, filtered_ahead,
		       available_spots, probability, generated_at
		FROM estimation_results WHERE run_id = $1
	`

	result := &models.EstimationResult{}
	err := r.db.GetPool().QueryRow(ctx, query, runID).Scan(
		&result.RunID, &result.TargetFirstName, &result.TargetLastName, &result.TargetID, &result.DrawTime,
		&result.RawRank, &result.PoolSize, &result.InitialAhead, &result.RemovedSubPool, &result.SubPoolCapacity,
		&result.RemovedCrossPool, &result.CrossPoolTopN, &result.TotalRemoved, &result.FilteredAhead,
		&result.AvailableSpots, &result.Probability, &result.GeneratedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get estimation result: %w", err)
	}

	return result, nil
}

// ListRecent retrieves the most recent estimation results
func (r *PostgresEstimateRepository) ListRecent(ctx context.Context, limit int) ([]*models.EstimationResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	query := `
		SELECT run_id, target_first_name, target_last_name, target_id, draw_time,
		       raw_rank, pool_size, initial_ahead, removed_sub_pool, sub_pool_capacity,
		       removed_cross_pool, cross_pool_top_n, total_removed, filtered_ahead,
		       available_spots, probability, generated_at
		FROM estimation_results ORDER BY generated_at DESC LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent estimation results: %w", err)
	}
	defer rows.Close()

	var results []*models.EstimationResult
	for rows.Next() {
		result := &models.EstimationResult{}
		if err := rows.Scan(
			&result.RunID, &result.TargetFirstName, &result.TargetLastName, &result.TargetID, &result.DrawTime,
			&result.RawRank, &result.PoolSize, &result.InitialAhead, &result.RemovedSubPool, &result.SubPoolCapacity,
			&result.RemovedCrossPool, &result.CrossPoolTopN, &result.TotalRemoved, &result.FilteredAhead,
			&result.AvailableSpots, &result.Probability, &result.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf(errScanEstimate, err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// LatestForTarget retrieves the newest estimation result for a target name.
// Matching is case-insensitive to line up with how targets are looked up in
// the draw sheet itself.
func (r *PostgresEstimateRepository) LatestForTarget(ctx context.Context, firstName, lastName string) (*models.EstimationResult, error) {
	query := `
		SELECT run_id, target_first_name, target_last_name, target_id, draw_time,
		       raw_rank, pool_size, initial_ahead, removed_sub_pool, sub_pool_capacity,
		       removed_cross_pool, cross_pool_top_n, total_removed, filtered_ahead,
		       available_spots, probability, generated_at
		FROM estimation_results
		WHERE LOWER(target_first_name) = LOWER($1) AND LOWER(target_last_name) = LOWER($2)
		ORDER BY generated_at DESC LIMIT 1
	`

	result := &models.EstimationResult{}
	err := r.db.GetPool().QueryRow(ctx, query, firstName, lastName).Scan(
		&result.RunID, &result.TargetFirstName, &result.TargetLastName, &result.TargetID, &result.DrawTime,
		&result.RawRank, &result.PoolSize, &result.InitialAhead, &result.RemovedSubPool, &result.SubPoolCapacity,
		&result.RemovedCrossPool, &result.CrossPoolTopN, &result.TotalRemoved, &result.FilteredAhead,
		&result.AvailableSpots, &result.Probability, &result.GeneratedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest estimation result for target: %w", err)
	}

	return result, nil
}
