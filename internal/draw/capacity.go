package draw

import (
	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
)

// CapacityReport is the outcome of resolving room records against the
// policy's group, scarce unit, and occupancy map.
type CapacityReport struct {
	// UnitCapacity is the summed occupancy of rooms in the scarce unit.
	UnitCapacity int `json:"unit_capacity"`
	// UnitRooms counts rooms matched in the scarce unit, including rooms
	// whose type contributed zero spots.
	UnitRooms int `json:"unit_rooms"`
	// ScarceSpots counts rooms of the scarce type across the whole group,
	// regardless of unit.
	ScarceSpots int `json:"scarce_spots"`
}

// CapacityResolver computes spot counts from room records.
type CapacityResolver struct {
	policy    Policy
	anomalies *logger.AnomalyLog
}

// NewCapacityResolver creates a resolver for the given policy.
func NewCapacityResolver(policy Policy, anomalies *logger.AnomalyLog) *CapacityResolver {
	return &CapacityResolver{policy: policy, anomalies: anomalies}
}

// Resolve computes the capacity report. An empty or absent room list yields
// an all-zero report, which downstream stages treat as inactive exclusion
// rather than an error.
func (r *CapacityResolver) Resolve(rooms []models.RoomRecord) CapacityReport {
	var report CapacityReport

	for _, room := range rooms {
		if !room.InGroup(r.policy.Group) {
			continue
		}
		if room.NormalizedType() == r.policy.ScarceRoomType {
			report.ScarceSpots++
		}
		if !room.InUnit(r.policy.Group, r.policy.ScarceUnit) {
			continue
		}

		report.UnitRooms++
		spots, ok := r.policy.SpotsFor(room.RoomType)
		if !ok {
			if room.NormalizedType() != "" {
				r.anomalies.UnknownRoomType(room.RoomID, room.RoomType)
				metrics.RecordAnomaly(metrics.AnomalyUnknownRoomType)
			}
			continue
		}
		report.UnitCapacity += spots
	}

	return report
}
