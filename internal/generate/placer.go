package generate

import (
	"errors"
	"fmt"

	"level-layout/internal/gamemap"
	"level-layout/internal/rng"
	"level-layout/internal/roomtree"
)

// ErrPlacement is wrapped by every fatal placement failure.
var ErrPlacement = errors.New("room could not be placed")

// PlacementError reports the room that exhausted all four directions.
type PlacementError struct {
	Tag      string
	ParentID int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("generate: %s: %q under room %d", ErrPlacement, e.Tag, e.ParentID)
}

func (e *PlacementError) Unwrap() error { return ErrPlacement }

// PlacedRoom is a room fixed on the grid. Coordinates are room-space and may
// be negative.
type PlacedRoom struct {
	ID         int    `json:"id"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Tag        string `json:"tag"`
	Background string `json:"background,omitempty"`
}

// Rect returns the room's footprint.
func (r PlacedRoom) Rect() gamemap.Rect {
	return gamemap.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

// Center returns the cell hallways start and end at.
func (r PlacedRoom) Center() gamemap.Point { return r.Rect().Center() }

// Node is one entry of a RoomGraph.
type Node struct {
	Room     PlacedRoom
	Children []int
}

// RoomGraph holds placed rooms indexed by id. Id 0 is the root, and every
// other id appears in exactly one parent's child list.
type RoomGraph struct {
	nodes []Node
}

// Len returns the number of rooms.
func (g *RoomGraph) Len() int { return len(g.nodes) }

// Room returns the room with the given id.
func (g *RoomGraph) Room(id int) PlacedRoom { return g.nodes[id].Room }

// Children returns the child ids of id in placement order.
func (g *RoomGraph) Children(id int) []int { return g.nodes[id].Children }

// Rooms returns every room in id order.
func (g *RoomGraph) Rooms() []PlacedRoom {
	rooms := make([]PlacedRoom, len(g.nodes))
	for i, n := range g.nodes {
		rooms[i] = n.Room
	}
	return rooms
}

// Edges returns every parent→child pair, parents ascending and children in
// placement order.
func (g *RoomGraph) Edges() []Edge {
	var edges []Edge
	for id, n := range g.nodes {
		for _, c := range n.Children {
			edges = append(edges, Edge{From: id, To: c})
		}
	}
	return edges
}

func (g *RoomGraph) add(room PlacedRoom, parent int) int {
	room.ID = len(g.nodes)
	g.nodes = append(g.nodes, Node{Room: room})
	if parent >= 0 {
		g.nodes[parent].Children = append(g.nodes[parent].Children, room.ID)
	}
	return room.ID
}

type pending struct {
	room   roomtree.Room
	parent int
}

// PlaceRooms lays out the tree breadth-first starting with root at the
// origin. Each child tries the four directions in shuffled order at a random
// distance from its parent and takes the first free spot. A child that fits
// nowhere aborts the whole call with a *PlacementError.
//
// The returned grid holds every room's footprint and is what hallways are
// routed over.
func PlaceRooms(root roomtree.Room, cfg *Config) (*RoomGraph, *gamemap.Grid, error) {
	cfg = cfg.normalized()
	r := rng.New(cfg.Seed)
	grid := gamemap.New(cfg.GridSize, cfg.Logger)
	graph := &RoomGraph{}

	rootRoom := PlacedRoom{Width: root.Width, Height: root.Height, Tag: root.Tag, Background: root.Background}
	graph.add(rootRoom, -1)
	grid.Place(rootRoom.Rect(), 0)

	queue := make([]pending, 0, len(root.Children))
	for _, c := range root.Children {
		queue = append(queue, pending{room: c, parent: 0})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		parent := graph.Room(cur.parent)

		placed := false
		for _, dir := range shuffleDirections(r) {
			offset := r.NextInRange(cfg.MinOffset, cfg.MaxOffset)
			pos := gamemap.Point{X: parent.X, Y: parent.Y}.Add(dir.Scale(offset))
			candidate := PlacedRoom{
				X:          pos.X,
				Y:          pos.Y,
				Width:      cur.room.Width,
				Height:     cur.room.Height,
				Tag:        cur.room.Tag,
				Background: cur.room.Background,
			}
			if !grid.CanPlace(candidate.Rect()) {
				continue
			}
			id := graph.add(candidate, cur.parent)
			grid.Place(candidate.Rect(), id)
			for _, c := range cur.room.Children {
				queue = append(queue, pending{room: c, parent: id})
			}
			placed = true
			break
		}
		if !placed {
			cfg.Logger.Debug("room placement exhausted",
				"tag", cur.room.Tag, "parent", cur.parent, "placed", graph.Len())
			return nil, nil, &PlacementError{Tag: cur.room.Tag, ParentID: cur.parent}
		}
	}
	return graph, grid, nil
}
