package draw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/draw-odds/internal/rowsource"
)

func drawRow(id, drawTime, first, last string) rowsource.Row {
	return rowsource.Row{
		ColumnID:        id,
		ColumnDrawTime:  drawTime,
		ColumnFirstName: first,
		ColumnLastName:  last,
	}
}

func TestDrawRecordsNormalization(t *testing.T) {
	table := &rowsource.Table{
		Columns: DrawColumns,
		Rows: []rowsource.Row{
			drawRow(" A ", "04/15/25 09:00 AM", " Ada ", " Amari "),
			drawRow("B", "4/15/25 9:05 AM", "Ben", "Bowen"),
		},
	}

	normalizer := NewNormalizer(quietAnomalies())
	records, dropped := normalizer.DrawRecords("primary.csv", table)

	require.Len(t, records, 2)
	assert.Equal(t, 0, dropped)

	assert.Equal(t, "A", records[0].ID, "identity is trimmed")
	assert.Equal(t, "Ada", records[0].FirstName)
	assert.Equal(t, "Amari", records[0].LastName)
	assert.Equal(t, "04/15/25 09:00 AM", records[0].RawDrawTime)
	assert.Equal(t, 0, records[0].OriginIndex)

	assert.Equal(t, 1, records[1].OriginIndex)
	assert.Equal(t, records[0].DrawTime.Add(5*time.Minute), records[1].DrawTime,
		"padded and unpadded timestamps parse to the same clock")
}

func TestDrawRecordsDropsUnparseableTime(t *testing.T) {
	table := &rowsource.Table{
		Columns: DrawColumns,
		Rows: []rowsource.Row{
			drawRow("A", "04/15/25 09:00 AM", "Ada", "Amari"),
			drawRow("B", "April 15th 9am", "Ben", "Bowen"),
			drawRow("C", "", "Cam", "Cole"),
		},
	}

	normalizer := NewNormalizer(quietAnomalies())
	records, dropped := normalizer.DrawRecords("primary.csv", table)

	require.Len(t, records, 1)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, "A", records[0].ID)
}

// TestDrawRecordsDropsAbsentFields: a short row lacks trailing cells
// entirely, which drops it; a present-but-empty identity survives.
func TestDrawRecordsDropsAbsentFields(t *testing.T) {
	shortRow := rowsource.Row{
		ColumnID:       "B",
		ColumnDrawTime: "04/15/25 09:05 AM",
	}
	blankIDRow := drawRow("", "04/15/25 09:10 AM", "Cam", "Cole")

	table := &rowsource.Table{
		Columns: DrawColumns,
		Rows: []rowsource.Row{
			drawRow("A", "04/15/25 09:00 AM", "Ada", "Amari"),
			shortRow,
			blankIDRow,
		},
	}

	normalizer := NewNormalizer(quietAnomalies())
	records, dropped := normalizer.DrawRecords("primary.csv", table)

	require.Len(t, records, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "", records[1].ID, "blank identity kept")
	assert.Equal(t, 2, records[1].OriginIndex, "origin index counts raw rows, dropped ones included")
}

func TestRoomRecordsNormalization(t *testing.T) {
	table := &rowsource.Table{
		Columns: RoomColumns,
		Rows: []rowsource.Row{
			{
				ColumnGroup:    "Upperclass",
				ColumnUnit:     "Spelman",
				ColumnRoomID:   " S-101 ",
				ColumnRoomType: "SINGLE",
			},
			{
				ColumnGroup: "Upperclass",
				ColumnUnit:  "Spelman",
			},
		},
	}

	normalizer := NewNormalizer(quietAnomalies())
	records, dropped := normalizer.RoomRecords("rooms.csv", table)

	require.Len(t, records, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "S-101", records[0].RoomID)
	assert.True(t, records[0].InUnit("upperclass", "spelman"))
}
