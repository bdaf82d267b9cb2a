// Package gamemap holds the spatial primitives shared by room placement and
// hallway routing: room-space points and rectangles, and the dense occupancy
// grid that records which room claimed each cell.
package gamemap

// Point is a cell coordinate in room space. Room space is centred on the
// root room, so coordinates may be negative.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Scale returns p with both components multiplied by k.
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Manhattan returns the 4-connected grid distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Rect is an axis-aligned rectangle anchored at its top-left cell.
// It covers X..X+W-1 horizontally and Y..Y+H-1 vertically.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

// Center returns the centre cell, rounding toward the top-left.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Max returns the bottom-right cell covered by r.
func (r Rect) Max() Point {
	return Point{X: r.X + r.W - 1, Y: r.Y + r.H - 1}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects reports whether r and other share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
