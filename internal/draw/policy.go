// Package draw implements the housing draw position estimator: ranking,
// capacity resolution, claimant-set derivation, position filtering, and the
// probability heuristic.
package draw

import (
	"fmt"
	"strings"

	"github.com/yourusername/draw-odds/internal/config"
)

// Policy is the estimation configuration, passed explicitly into the loader
// and engine. Two runs with different policies can share a process.
type Policy struct {
	// Group is the housing group being modelled, e.g. "upperclass".
	Group string
	// ScarceUnit is the capacity-constrained sub-unit whose own draw list
	// absorbs its top drawers, e.g. "spelman".
	ScarceUnit string
	// ScarceRoomType is the room category whose allocation probability is
	// estimated, normalized upper-case.
	ScarceRoomType string
	// CrossPoolTopN is how many early drawers each other pool absorbs.
	CrossPoolTopN int
	// Occupancy maps normalized room types to spots per room.
	Occupancy map[string]int
}

// PolicyFromConfig converts the draw section of app config to a Policy.
// Occupancy keys are normalized to upper case here because the config loader
// lower-cases map keys.
func PolicyFromConfig(cfg *config.Config) (Policy, error) {
	if cfg == nil {
		return Policy{}, fmt.Errorf("config is required")
	}

	occupancy := make(map[string]int, len(cfg.Draw.Occupancy))
	for roomType, spots := range cfg.Draw.Occupancy {
		occupancy[strings.ToUpper(strings.TrimSpace(roomType))] = spots
	}

	p := Policy{
		Group:          strings.TrimSpace(cfg.Draw.Group),
		ScarceUnit:     strings.TrimSpace(cfg.Draw.ScarceUnit),
		ScarceRoomType: strings.ToUpper(strings.TrimSpace(cfg.Draw.ScarceRoomType)),
		CrossPoolTopN:  cfg.Draw.CrossPoolTopN,
		Occupancy:      occupancy,
	}

	return p, p.Validate()
}

// Validate validates policy parameters
func (p Policy) Validate() error {
	if p.Group == "" {
		return fmt.Errorf("housing group is required")
	}
	if p.ScarceUnit == "" {
		return fmt.Errorf("scarce unit is required")
	}
	if p.ScarceRoomType == "" {
		return fmt.Errorf("scarce room type is required")
	}
	if p.CrossPoolTopN <= 0 {
		return fmt.Errorf("cross-pool top-N must be positive")
	}
	if len(p.Occupancy) == 0 {
		return fmt.Errorf("occupancy map must not be empty")
	}
	for roomType, spots := range p.Occupancy {
		if spots < 0 {
			return fmt.Errorf("occupancy for %s cannot be negative", roomType)
		}
	}
	if _, ok := p.Occupancy[p.ScarceRoomType]; !ok {
		return fmt.Errorf("scarce room type %s has no occupancy mapping", p.ScarceRoomType)
	}
	return nil
}

// SpotsFor returns the spot count for a room type, normalizing the lookup
// the same way the occupancy keys were normalized.
func (p Policy) SpotsFor(roomType string) (int, bool) {
	spots, ok := p.Occupancy[strings.ToUpper(strings.TrimSpace(roomType))]
	return spots, ok
}
