package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/draw-odds/internal/models"
)

func TestSubPoolClaimantsTopK(t *testing.T) {
	r := ranking("spelman.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	)
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	set := builder.SubPoolClaimants(r, 2)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("A"))
	assert.True(t, set.Contains("B"))
	assert.False(t, set.Contains("C"))
}

func TestSubPoolClaimantsCapacityExceedsRanking(t *testing.T) {
	r := ranking("spelman.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
	)
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	set := builder.SubPoolClaimants(r, 50)

	assert.Equal(t, 2, set.Len())
}

func TestSubPoolClaimantsZeroCapacity(t *testing.T) {
	r := ranking("spelman.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
	)
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	assert.Equal(t, 0, builder.SubPoolClaimants(r, 0).Len())
	assert.Equal(t, 0, builder.SubPoolClaimants(r, -2).Len())
}

func TestSubPoolClaimantsMissingRanking(t *testing.T) {
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	assert.Equal(t, 0, builder.SubPoolClaimants(nil, 5).Len())
	assert.Equal(t, 0, builder.SubPoolClaimants(&models.Ranking{Source: "spelman.csv"}, 5).Len())
}

// TestSubPoolClaimantsBlankIdentitySkipped: a blank identity is skipped and
// does not consume a capacity slot, so the next drawer takes it instead.
func TestSubPoolClaimantsBlankIdentitySkipped(t *testing.T) {
	r := ranking("spelman.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	)
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	set := builder.SubPoolClaimants(r, 2)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("A"))
	assert.True(t, set.Contains("C"))
}

// TestSubPoolClaimantsDuplicateConsumesSlot: duplicate identities each take
// a slot, so the resulting set can be smaller than the capacity.
func TestSubPoolClaimantsDuplicateConsumesSlot(t *testing.T) {
	r := ranking("spelman.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("A", "Ada", "Amari", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	)
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	set := builder.SubPoolClaimants(r, 2)

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Contains("A"))
	assert.False(t, set.Contains("C"))
}

func TestCrossPoolClaimantsUnion(t *testing.T) {
	poolOne := ranking("forbes.csv",
		record("A", "Ada", "Amari", "04/15/25 09:00 AM", 0),
		record("B", "Ben", "Bowen", "04/15/25 09:05 AM", 1),
		record("C", "Cam", "Cole", "04/15/25 09:10 AM", 2),
	)
	poolTwo := ranking("whitman.csv",
		record("B", "Ben", "Bowen", "04/15/25 09:02 AM", 0),
		record("D", "Dana", "Diaz", "04/15/25 09:07 AM", 1),
		record("E", "Eli", "Eze", "04/15/25 09:12 AM", 2),
	)

	policy := testPolicy()
	policy.CrossPoolTopN = 2
	builder := NewClaimantBuilder(policy, quietAnomalies())

	set := builder.CrossPoolClaimants([]*models.Ranking{poolOne, poolTwo})

	assert.Equal(t, 3, set.Len(), "union deduplicates shared identities")
	assert.True(t, set.Contains("A"))
	assert.True(t, set.Contains("B"))
	assert.True(t, set.Contains("D"))
	assert.False(t, set.Contains("C"))
	assert.False(t, set.Contains("E"))
}

func TestCrossPoolClaimantsNoPools(t *testing.T) {
	builder := NewClaimantBuilder(testPolicy(), quietAnomalies())

	assert.Equal(t, 0, builder.CrossPoolClaimants(nil).Len())
	assert.Equal(t, 0, builder.CrossPoolClaimants([]*models.Ranking{nil}).Len())
}
