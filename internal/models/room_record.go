package models

import "strings"

// Room type categories used by the default occupancy map.
const (
	RoomTypeSingle = "SINGLE"
	RoomTypeDouble = "DOUBLE"
	RoomTypeTriple = "TRIPLE"
	RoomTypeQuad   = "QUAD"
	RoomTypeQuint  = "QUINT"
	RoomTypeSix    = "6PERSON"
)

// RoomRecord is one room entry from the available-rooms list.
type RoomRecord struct {
	Group    string `json:"group"`
	Unit     string `json:"unit"`
	RoomID   string `json:"room_id"`
	RoomType string `json:"room_type"`
}

// InGroup matches the housing group case-insensitively, ignoring
// surrounding whitespace.
func (r *RoomRecord) InGroup(group string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Group), strings.TrimSpace(group))
}

// InUnit matches group and unit together.
func (r *RoomRecord) InUnit(group, unit string) bool {
	return r.InGroup(group) &&
		strings.EqualFold(strings.TrimSpace(r.Unit), strings.TrimSpace(unit))
}

// NormalizedType returns the room type trimmed and upper-cased, the form the
// occupancy map is keyed by.
func (r *RoomRecord) NormalizedType() string {
	return strings.ToUpper(strings.TrimSpace(r.RoomType))
}
