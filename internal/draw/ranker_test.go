package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/draw-odds/internal/models"
)

func TestBuildRankingOrdersByDrawTime(t *testing.T) {
	records := []models.DrawRecord{
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 0),
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 1),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 2),
	}

	r := BuildRanking("primary.csv", records)

	require.Equal(t, 3, r.Len())
	assert.Equal(t, "A", r.Records[0].ID)
	assert.Equal(t, "B", r.Records[1].ID)
	assert.Equal(t, "C", r.Records[2].ID)
	assert.Equal(t, "primary.csv", r.Source)
}

func TestBuildRankingTieBreaksByOriginIndex(t *testing.T) {
	records := []models.DrawRecord{
		record("B", "Ben", "Bowen", "04/15/25 09:00 AM", 1),
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("C", "Cam", "Cole", "04/15/25 09:00 AM", 2),
	}

	r := BuildRanking("primary.csv", records)

	assert.Equal(t, []string{"A", "B", "C"},
		[]string{r.Records[0].ID, r.Records[1].ID, r.Records[2].ID})
}

// TestBuildRankingDeterministic shuffles the input and expects the identical
// order every time: the tie-break makes the relation total.
func TestBuildRankingDeterministic(t *testing.T) {
	base := []models.DrawRecord{
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:00 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:05 AM", 2),
		record("D", "Dana", "Diaz", "04/15/25 09:05 AM", 3),
	}
	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}

	for _, perm := range permutations {
		shuffled := make([]models.DrawRecord, 0, len(base))
		for _, i := range perm {
			shuffled = append(shuffled, base[i])
		}

		r := BuildRanking("primary.csv", shuffled)
		got := make([]string, 0, r.Len())
		for _, rec := range r.Records {
			got = append(got, rec.ID)
		}
		assert.Equal(t, []string{"A", "B", "C", "D"}, got, "permutation %v", perm)
	}
}

func TestBuildRankingDoesNotMutateInput(t *testing.T) {
	records := []models.DrawRecord{
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 0),
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 1),
	}

	BuildRanking("primary.csv", records)

	assert.Equal(t, "B", records[0].ID, "input slice should stay in source order")
}

func TestRankingAhead(t *testing.T) {
	r := ranking("primary.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	)

	assert.Len(t, r.Ahead(0), 0)
	assert.Len(t, r.Ahead(2), 2)
	assert.Len(t, r.Ahead(10), 3)
	assert.Equal(t, "A", r.Ahead(2)[0].ID)
}
