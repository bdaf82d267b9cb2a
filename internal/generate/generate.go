// Package generate turns a room tree into a level layout: rooms placed on an
// occupancy grid breadth-first from the root, then hallways routed between
// every parent and child. The same seed and tree always produce the same
// layout.
package generate

import (
	"context"
	"time"

	"level-layout/internal/gamemap"
	"level-layout/internal/roomtree"
)

// Layout is the result of one generation.
type Layout struct {
	Seed     string        `json:"seed"`
	Rooms    []PlacedRoom  `json:"rooms"`
	Edges    []Edge        `json:"edges"`
	Hallways []Hallway     `json:"hallways"`
	Unrouted []Edge        `json:"unrouted,omitempty"`
	Bounds   *gamemap.Rect `json:"bounds,omitempty"`
}

// Room returns the room with the given id, or false when there is none.
func (l *Layout) Room(id int) (PlacedRoom, bool) {
	if id < 0 || id >= len(l.Rooms) {
		return PlacedRoom{}, false
	}
	return l.Rooms[id], true
}

// Generate validates root, places its rooms and routes hallways between
// them. A nil cfg uses DefaultConfig with an empty seed. The only errors are
// an invalid tree, a *PlacementError, or ctx's error.
func Generate(ctx context.Context, root roomtree.Room, cfg *Config) (*Layout, error) {
	cfg = cfg.normalized()
	if err := root.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	graph, grid, err := PlaceRooms(root, cfg)
	if err != nil {
		return nil, err
	}
	hallways, unrouted, err := RouteHallways(ctx, graph, grid, cfg)
	if err != nil {
		return nil, err
	}

	layout := &Layout{
		Seed:     cfg.Seed,
		Rooms:    graph.Rooms(),
		Edges:    graph.Edges(),
		Hallways: hallways,
		Unrouted: unrouted,
	}
	if bb, ok := grid.BoundingBox(); ok {
		layout.Bounds = &bb
	}

	cfg.Logger.Debug("layout generated",
		"seed", cfg.Seed,
		"rooms", len(layout.Rooms),
		"hallways", len(layout.Hallways),
		"unrouted", len(layout.Unrouted),
		"claimed", grid.Claimed(),
		"elapsed", time.Since(start))
	return layout, nil
}
