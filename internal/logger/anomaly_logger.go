// Package logger provides anomaly reporting for data loading and estimation.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnomalyLog records every data irregularity the pipeline tolerates, with
// enough context to diagnose a run without re-executing it. Nothing here is
// fatal; fatal conditions surface as errors instead.
type AnomalyLog struct {
	*logrus.Entry
}

// NewAnomalyLog creates a new anomaly log on top of the base logger.
func NewAnomalyLog(baseLogger *logrus.Logger) *AnomalyLog {
	return &AnomalyLog{
		Entry: baseLogger.WithField("component", "anomaly"),
	}
}

// RowDropped records a row excluded during normalization.
func (al *AnomalyLog) RowDropped(source string, row map[string]string, reason string) {
	al.WithFields(logrus.Fields{
		"source": source,
		"row":    row,
		"reason": reason,
	}).Warn("Row dropped")
}

// SourceDegraded records a source that failed to load, and what the run
// loses without it.
func (al *AnomalyLog) SourceDegraded(source, impact string, err error) {
	al.WithFields(logrus.Fields{
		"source": source,
		"impact": impact,
		"error":  err,
	}).Warn("Source unavailable, continuing degraded")
}

// UnknownRoomType records a room whose type has no occupancy mapping and
// therefore contributes zero spots.
func (al *AnomalyLog) UnknownRoomType(roomID, roomType string) {
	al.WithFields(logrus.Fields{
		"room_id":   roomID,
		"room_type": roomType,
	}).Warn("Unknown room type, assuming zero capacity")
}

// ZeroCapacity records a sub-pool whose computed capacity excludes nobody.
func (al *AnomalyLog) ZeroCapacity(unit string, capacity int) {
	al.WithFields(logrus.Fields{
		"unit":     unit,
		"capacity": capacity,
	}).Warn("Computed capacity is zero or less, sub-pool exclusion inactive")
}

// ClaimantSkipped records a claimant-list row without an identity; it is not
// counted toward the pool's claimant quota.
func (al *AnomalyLog) ClaimantSkipped(source string, originIndex int, name string) {
	al.WithFields(logrus.Fields{
		"source":       source,
		"origin_index": originIndex,
		"name":         name,
	}).Warn("Claimant row missing identity, skipped")
}

// KeptWithoutIdentity records a competitor ahead of the target who cannot be
// matched against any claimant set and is therefore never removed.
func (al *AnomalyLog) KeptWithoutIdentity(name string, originIndex int) {
	al.WithFields(logrus.Fields{
		"name":         name,
		"origin_index": originIndex,
	}).Warn("Competitor ahead has no identity, kept")
}
