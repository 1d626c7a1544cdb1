package draw

import (
	"sort"

	"github.com/yourusername/draw-odds/internal/models"
)

// BuildRanking sorts records into the total draw order: draw time ascending,
// origin index ascending. The tie-break makes the order deterministic
// regardless of sort-algorithm stability or input shuffling.
func BuildRanking(source string, records []models.DrawRecord) *models.Ranking {
	sorted := make([]models.DrawRecord, len(records))
	copy(sorted, records)

	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].DrawTime.Equal(sorted[j].DrawTime) {
			return sorted[i].DrawTime.Before(sorted[j].DrawTime)
		}
		return sorted[i].OriginIndex < sorted[j].OriginIndex
	})

	return &models.Ranking{Source: source, Records: sorted}
}
