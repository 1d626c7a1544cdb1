package database

import (
	"context"
	"fmt"

	"github.com/yourusername/draw-odds/internal/config"
)

// schemaStatements bootstraps the estimation history schema. Statements are
// idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS estimation_results (
		run_id UUID PRIMARY KEY,
		target_first_name TEXT NOT NULL,
		target_last_name TEXT NOT NULL,
		target_id TEXT NOT NULL DEFAULT '',
		draw_time TEXT NOT NULL DEFAULT '',
		raw_rank INTEGER NOT NULL,
		pool_size INTEGER NOT NULL,
		initial_ahead INTEGER NOT NULL,
		removed_sub_pool INTEGER NOT NULL,
		sub_pool_capacity INTEGER NOT NULL,
		removed_cross_pool INTEGER NOT NULL,
		cross_pool_top_n INTEGER NOT NULL,
		total_removed INTEGER NOT NULL,
		filtered_ahead INTEGER NOT NULL,
		available_spots INTEGER NOT NULL,
		probability INTEGER NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_estimation_results_generated_at
		ON estimation_results (generated_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_estimation_results_target
		ON estimation_results (LOWER(target_first_name), LOWER(target_last_name), generated_at DESC)`,
}

// Initialize creates a database connection pool and ensures the estimation
// history schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	// Create connection pool
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	// Bootstrap schema; all statements are IF NOT EXISTS
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure estimation schema: %w", err)
		}
	}

	return db, nil
}
