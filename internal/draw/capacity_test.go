package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/draw-odds/internal/models"
)

func room(group, unit, id, roomType string) models.RoomRecord {
	return models.RoomRecord{Group: group, Unit: unit, RoomID: id, RoomType: roomType}
}

func TestResolveCapacity(t *testing.T) {
	rooms := []models.RoomRecord{
		room("Upperclass", "Spelman", "S-101", "SINGLE"),
		room("upperclass", "spelman", "S-102", "double"),
		room("upperclass", "SPELMAN", "S-103", " Triple "),
		room("upperclass", "forbes", "F-201", "SINGLE"),
		room("freshman", "spelman", "X-301", "SINGLE"),
	}

	resolver := NewCapacityResolver(testPolicy(), quietAnomalies())
	report := resolver.Resolve(rooms)

	assert.Equal(t, 3, report.UnitRooms, "group and unit match case-insensitively")
	assert.Equal(t, 6, report.UnitCapacity, "single + double + triple")
	assert.Equal(t, 2, report.ScarceSpots, "scarce type counted across the whole group, any unit")
}

func TestResolveCapacityUnknownType(t *testing.T) {
	rooms := []models.RoomRecord{
		room("upperclass", "spelman", "S-101", "SINGLE"),
		room("upperclass", "spelman", "S-102", "LOFT"),
		room("upperclass", "spelman", "S-103", ""),
	}

	resolver := NewCapacityResolver(testPolicy(), quietAnomalies())
	report := resolver.Resolve(rooms)

	assert.Equal(t, 3, report.UnitRooms, "unmapped types still count as rooms")
	assert.Equal(t, 1, report.UnitCapacity, "unmapped types contribute zero spots")
	assert.Equal(t, 1, report.ScarceSpots)
}

func TestResolveCapacityEmptyDataset(t *testing.T) {
	resolver := NewCapacityResolver(testPolicy(), quietAnomalies())

	report := resolver.Resolve(nil)

	assert.Equal(t, 0, report.UnitCapacity)
	assert.Equal(t, 0, report.UnitRooms)
	assert.Equal(t, 0, report.ScarceSpots)
}

func TestResolveCapacityOtherGroupIgnored(t *testing.T) {
	rooms := []models.RoomRecord{
		room("freshman", "spelman", "X-101", "SINGLE"),
		room("graduate", "spelman", "X-102", "DOUBLE"),
	}

	resolver := NewCapacityResolver(testPolicy(), quietAnomalies())
	report := resolver.Resolve(rooms)

	assert.Equal(t, 0, report.UnitCapacity)
	assert.Equal(t, 0, report.ScarceSpots)
}
