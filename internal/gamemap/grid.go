package gamemap

import "log/slog"

// DefaultSize is the side length of the occupancy grid used for a full
// generation. It comfortably bounds layouts of a few thousand rooms.
const DefaultSize = 4096

// Grid is a square occupancy grid. Each cell is either unclaimed or owned by
// exactly one room id; once claimed a cell is never cleared or reassigned.
// Room-space coordinates are translated to grid indices by adding Offset.
type Grid struct {
	size   int
	offset int
	cells  []int32 // room id + 1; zero means unclaimed
	logger *slog.Logger

	claimed                int
	minX, minY, maxX, maxY int // grid indices of claimed cells
}

// New creates an empty size×size grid. A non-positive size selects
// DefaultSize; a nil logger selects slog.Default().
func New(size int, logger *slog.Logger) *Grid {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Grid{
		size:   size,
		offset: size / 2,
		cells:  make([]int32, size*size),
		logger: logger,
	}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.size }

// Offset returns the translation applied to room-space coordinates.
func (g *Grid) Offset() int { return g.offset }

// Claimed returns the number of claimed cells.
func (g *Grid) Claimed() int { return g.claimed }

// InBounds reports whether p maps to a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	_, ok := g.index(p)
	return ok
}

func (g *Grid) index(p Point) (int, bool) {
	gx, gy := p.X+g.offset, p.Y+g.offset
	if gx < 0 || gx >= g.size || gy < 0 || gy >= g.size {
		return 0, false
	}
	return gy*g.size + gx, true
}

// Owner returns the room id that claimed p. ok is false when p is unclaimed
// or outside the grid.
func (g *Grid) Owner(p Point) (id int, ok bool) {
	idx, in := g.index(p)
	if !in || g.cells[idx] == 0 {
		return 0, false
	}
	return int(g.cells[idx]) - 1, true
}

// CanPlace reports whether every cell under r is unclaimed. Cells outside
// the grid hold no owner and so count as unclaimed; Place skips them. It
// never mutates the grid.
func (g *Grid) CanPlace(r Rect) bool {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if _, claimed := g.Owner(Point{X: x, Y: y}); claimed {
				return false
			}
		}
	}
	return true
}

// Place claims every in-bounds, unclaimed cell under r for room id and
// returns how many cells fell outside the grid. Out-of-bounds cells are a
// soft condition: they are logged and skipped, never an error.
func (g *Grid) Place(r Rect, id int) (skipped int) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			idx, ok := g.index(Point{X: x, Y: y})
			if !ok {
				skipped++
				continue
			}
			if g.cells[idx] != 0 {
				continue
			}
			g.cells[idx] = int32(id + 1)
			g.track(x+g.offset, y+g.offset)
		}
	}
	if skipped > 0 {
		g.logger.Warn("room extends past grid, cells skipped",
			"id", id, "x", r.X, "y", r.Y, "width", r.W, "height", r.H,
			"skipped", skipped, "size", g.size)
	}
	return skipped
}

func (g *Grid) track(gx, gy int) {
	if g.claimed == 0 {
		g.minX, g.maxX, g.minY, g.maxY = gx, gx, gy, gy
	} else {
		g.minX = min(g.minX, gx)
		g.maxX = max(g.maxX, gx)
		g.minY = min(g.minY, gy)
		g.maxY = max(g.maxY, gy)
	}
	g.claimed++
}

// BoundingBox returns the smallest room-space rectangle covering every
// claimed cell. ok is false when nothing has been claimed.
func (g *Grid) BoundingBox() (r Rect, ok bool) {
	if g.claimed == 0 {
		return Rect{}, false
	}
	return Rect{
		X: g.minX - g.offset,
		Y: g.minY - g.offset,
		W: g.maxX - g.minX + 1,
		H: g.maxY - g.minY + 1,
	}, true
}

// WalkableFor returns a read-only view of the grid in which unclaimed cells
// and cells owned by any of ids are walkable.
func (g *Grid) WalkableFor(ids ...int) Walkable {
	return Walkable{grid: g, ids: ids}
}

// Walkable is a routing view over a Grid. The zero value walks nothing.
type Walkable struct {
	grid *Grid
	ids  []int
}

// IsWalkable reports whether p is in bounds and either unclaimed or owned by
// one of the view's rooms.
func (w Walkable) IsWalkable(p Point) bool {
	if w.grid == nil {
		return false
	}
	idx, ok := w.grid.index(p)
	if !ok {
		return false
	}
	c := w.grid.cells[idx]
	if c == 0 {
		return true
	}
	for _, id := range w.ids {
		if int(c)-1 == id {
			return true
		}
	}
	return false
}
