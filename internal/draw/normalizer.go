package draw

import (
	"strings"
	"time"

	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
	"github.com/yourusername/draw-odds/internal/rowsource"
)

// Column names the export tool emits for draw-time lists.
const (
	ColumnID        = "PUID"
	ColumnDrawTime  = "Draw Time"
	ColumnFirstName = "First Name"
	ColumnLastName  = "Last Name"
)

// Column names for the available-rooms list.
const (
	ColumnGroup    = "College"
	ColumnUnit     = "Dorm"
	ColumnRoomID   = "Room"
	ColumnRoomType = "Type"
)

// DrawColumns are the columns every draw-time source must carry.
var DrawColumns = []string{ColumnID, ColumnDrawTime, ColumnFirstName, ColumnLastName}

// RoomColumns are the columns the rooms source must carry.
var RoomColumns = []string{ColumnGroup, ColumnUnit, ColumnRoomID, ColumnRoomType}

// Normalizer turns raw tabular rows into typed records. Rows that cannot
// participate in ranking are dropped with a reported anomaly; an identity
// that is present but empty survives, since such records still occupy a draw
// position.
type Normalizer struct {
	anomalies *logger.AnomalyLog
}

// NewNormalizer creates a normalizer reporting through the anomaly log.
func NewNormalizer(anomalies *logger.AnomalyLog) *Normalizer {
	return &Normalizer{anomalies: anomalies}
}

// DrawRecords converts draw-time rows into DrawRecords, preserving input
// order in OriginIndex. Returns the records and the dropped-row count.
func (n *Normalizer) DrawRecords(source string, table *rowsource.Table) ([]models.DrawRecord, int) {
	records := make([]models.DrawRecord, 0, table.Len())
	dropped := 0

	for i, row := range table.Rows {
		if reason := missingDrawField(row); reason != "" {
			n.reportDrop(source, row, reason)
			dropped++
			continue
		}

		rawTime := strings.TrimSpace(row.Get(ColumnDrawTime))
		drawTime, err := time.Parse(models.DrawTimeLayout, rawTime)
		if err != nil {
			n.reportDrop(source, row, "unparseable draw time")
			dropped++
			continue
		}

		records = append(records, models.DrawRecord{
			ID:          strings.TrimSpace(row.Get(ColumnID)),
			FirstName:   strings.TrimSpace(row.Get(ColumnFirstName)),
			LastName:    strings.TrimSpace(row.Get(ColumnLastName)),
			DrawTime:    drawTime,
			RawDrawTime: rawTime,
			OriginIndex: i,
		})
	}

	return records, dropped
}

// RoomRecords converts rooms-list rows into RoomRecords. Rows missing any of
// the four cells are dropped with a reported anomaly.
func (n *Normalizer) RoomRecords(source string, table *rowsource.Table) ([]models.RoomRecord, int) {
	records := make([]models.RoomRecord, 0, table.Len())
	dropped := 0

	for _, row := range table.Rows {
		if reason := missingRoomField(row); reason != "" {
			n.reportDrop(source, row, reason)
			dropped++
			continue
		}

		records = append(records, models.RoomRecord{
			Group:    row.Get(ColumnGroup),
			Unit:     row.Get(ColumnUnit),
			RoomID:   strings.TrimSpace(row.Get(ColumnRoomID)),
			RoomType: row.Get(ColumnRoomType),
		})
	}

	return records, dropped
}

func (n *Normalizer) reportDrop(source string, row rowsource.Row, reason string) {
	n.anomalies.RowDropped(source, row, reason)
	metrics.RecordAnomaly(metrics.AnomalyRowDropped)
}

func missingDrawField(row rowsource.Row) string {
	for _, column := range DrawColumns {
		if !row.Has(column) {
			return "missing " + column + " field"
		}
	}
	return ""
}

func missingRoomField(row rowsource.Row) string {
	for _, column := range RoomColumns {
		if !row.Has(column) {
			return "missing " + column + " field"
		}
	}
	return ""
}
