package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EstimationResult is the write-once outcome of a single estimation run.
// Sinks serialize it as-is, so new fields may be added but existing names
// must stay stable.
type EstimationResult struct {
	RunID           uuid.UUID `db:"run_id" json:"run_id"`
	TargetFirstName string    `db:"target_first_name" json:"target_first_name"`
	TargetLastName  string    `db:"target_last_name" json:"target_last_name"`
	TargetID        string    `db:"target_id" json:"target_id"`
	DrawTime        string    `db:"draw_time" json:"draw_time"`
	// RawRank is the target's 1-based position in the primary ranking
	// before any exclusions.
	RawRank      int `db:"raw_rank" json:"raw_rank"`
	PoolSize     int `db:"pool_size" json:"pool_size"`
	InitialAhead int `db:"initial_ahead" json:"initial_ahead"`
	// RemovedSubPool and RemovedCrossPool count unique identities per
	// category. TotalRemoved counts physical records, so it always equals
	// InitialAhead - FilteredAhead even when duplicates occur.
	RemovedSubPool   int       `db:"removed_sub_pool" json:"removed_sub_pool"`
	SubPoolCapacity  int       `db:"sub_pool_capacity" json:"sub_pool_capacity"`
	RemovedCrossPool int       `db:"removed_cross_pool" json:"removed_cross_pool"`
	CrossPoolTopN    int       `db:"cross_pool_top_n" json:"cross_pool_top_n"`
	TotalRemoved     int       `db:"total_removed" json:"total_removed"`
	FilteredAhead    int       `db:"filtered_ahead" json:"filtered_ahead"`
	AvailableSpots   int       `db:"available_spots" json:"available_spots"`
	Probability      int       `db:"probability" json:"probability"`
	GeneratedAt      time.Time `db:"generated_at" json:"generated_at"`
}

// TargetDisplayName returns the target's name as shown in reports.
func (e *EstimationResult) TargetDisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(e.TargetFirstName) + " " + strings.TrimSpace(e.TargetLastName))
}

// AdjustedRank is the target's rank among the competitors left after
// exclusion, the denominator the probability model uses.
func (e *EstimationResult) AdjustedRank() int {
	return e.FilteredAhead + 1
}

// HasFirstDraw reports whether nobody draws before the target.
func (e *EstimationResult) HasFirstDraw() bool {
	return e.InitialAhead == 0
}
