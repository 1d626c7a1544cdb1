package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/draw-odds/internal/models"
)

func TestFindTarget(t *testing.T) {
	r := ranking("primary.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
	)
	estimator := NewEstimator(quietAnomalies())

	tests := []struct {
		name       string
		firstName  string
		lastName   string
		expectedID string
	}{
		{
			name:       "exact match",
			firstName:  "Ben",
			lastName:   "Bowen",
			expectedID: "B",
		},
		{
			name:       "case-insensitive match",
			firstName:  "bEN",
			lastName:   "bowen",
			expectedID: "B",
		},
		{
			name:       "whitespace-trimmed match",
			firstName:  "  Ada ",
			lastName:   " Amari  ",
			expectedID: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, rec, err := estimator.FindTarget(r, tt.firstName, tt.lastName)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, rec.ID)
			assert.Equal(t, tt.expectedID, r.Records[idx].ID)
		})
	}
}

func TestFindTargetFirstMatchWins(t *testing.T) {
	r := ranking("primary.csv",
		record("A1", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("A2", "Ada", "Amari", "04/15/25 09:30 AM", 1),
	)
	estimator := NewEstimator(quietAnomalies())

	idx, rec, err := estimator.FindTarget(r, "Ada", "Amari")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "A1", rec.ID)
}

func TestFindTargetNotFound(t *testing.T) {
	r := ranking("primary.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
	)
	estimator := NewEstimator(quietAnomalies())

	_, _, err := estimator.FindTarget(r, "Zoe", "Zeman")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTargetNotFound)
	assert.Contains(t, err.Error(), "primary.csv")
}

func TestFilterAheadPrecedenceAndTallies(t *testing.T) {
	ahead := []models.DrawRecord{
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	}
	subPool := models.NewClaimantSet()
	subPool.Add("A")
	crossPool := models.NewClaimantSet()
	crossPool.Add("B")

	estimator := NewEstimator(quietAnomalies())
	result := estimator.FilterAhead(ahead, subPool, crossPool)

	assert.Equal(t, 3, result.InitialAhead)
	assert.Equal(t, 1, result.RemovedSubPool)
	assert.Equal(t, 1, result.RemovedCrossPool)
	assert.Equal(t, 2, result.TotalRemoved)
	assert.Equal(t, 1, result.FilteredAhead)
}

// TestFilterAheadBothSets puts one identity in both claimant sets: it must
// be attributed to the sub-pool only and removed exactly once.
func TestFilterAheadBothSets(t *testing.T) {
	ahead := []models.DrawRecord{
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
	}
	subPool := models.NewClaimantSet()
	subPool.Add("A")
	crossPool := models.NewClaimantSet()
	crossPool.Add("A")

	estimator := NewEstimator(quietAnomalies())
	result := estimator.FilterAhead(ahead, subPool, crossPool)

	assert.Equal(t, 1, result.RemovedSubPool)
	assert.Equal(t, 0, result.RemovedCrossPool)
	assert.Equal(t, 1, result.TotalRemoved)
	assert.Equal(t, 1, result.FilteredAhead)
}

// TestFilterAheadDuplicateIdentity checks the per-record removal rule: both
// physical records leave the filtered list while the tally counts the
// identity once, and the conservation law still holds.
func TestFilterAheadDuplicateIdentity(t *testing.T) {
	ahead := []models.DrawRecord{
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("A", "Ada", "Amari", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	}
	subPool := models.NewClaimantSet()
	subPool.Add("A")

	estimator := NewEstimator(quietAnomalies())
	result := estimator.FilterAhead(ahead, subPool, models.NewClaimantSet())

	assert.Equal(t, 3, result.InitialAhead)
	assert.Equal(t, 1, result.RemovedSubPool, "identity tallied once")
	assert.Equal(t, 2, result.TotalRemoved, "both records removed")
	assert.Equal(t, 1, result.FilteredAhead)
	assert.Equal(t, result.InitialAhead-result.TotalRemoved, result.FilteredAhead)
}

// TestFilterAheadBlankIdentityKept: a record without an identity cannot
// match any claimant set, so it stays in the filtered count.
func TestFilterAheadBlankIdentityKept(t *testing.T) {
	ahead := []models.DrawRecord{
		record("", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
	}
	subPool := models.NewClaimantSet()
	subPool.Add("B")
	// A blank key in a claimant set must never match a blank identity.
	subPool.Add("")

	estimator := NewEstimator(quietAnomalies())
	result := estimator.FilterAhead(ahead, subPool, models.NewClaimantSet())

	assert.Equal(t, 2, result.InitialAhead)
	assert.Equal(t, 1, result.TotalRemoved)
	assert.Equal(t, 1, result.FilteredAhead)
}

func TestFilterAheadEmptyPrefix(t *testing.T) {
	estimator := NewEstimator(quietAnomalies())
	result := estimator.FilterAhead(nil, models.NewClaimantSet(), models.NewClaimantSet())

	assert.Equal(t, 0, result.InitialAhead)
	assert.Equal(t, 0, result.TotalRemoved)
	assert.Equal(t, 0, result.FilteredAhead)
}
