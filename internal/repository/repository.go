package repository

import (
	"fmt"

	"github.com/yourusername/draw-odds/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Estimate EstimateRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Estimate: NewPostgresEstimateRepository(db),
	}, nil
}
