package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/draw-odds/internal/models"
)

// EstimateRepository defines the interface for estimation history access
type EstimateRepository interface {
	Create(ctx context.Context, result *models.EstimationResult) error
	GetByID(ctx context.Context, runID uuid.UUID) (*models.EstimationResult, error)
	ListRecent(ctx context.Context, limit int) ([]*models.EstimationResult, error)
	LatestForTarget(ctx context.Context, firstName, lastName string) (*models.EstimationResult, error)
}
