// Package pathfind routes corridors over a 4-connected grid with A*.
//
// Every step costs 1. A node remembers how many consecutive steps led into it
// in the same direction; once that run is longer than MaxStraightLength each
// further step in the same direction costs an extra StraightLinePenalty, which
// bends long corridors instead of drawing them as single straight lines.
package pathfind

import (
	"cmp"
	"container/heap"
	"slices"

	"level-layout/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// Default tuning values.
const (
	DefaultMaxStraightLength   = 5
	DefaultStraightLinePenalty = 0.5

	// MinStraightLinePenalty replaces non-positive penalties.
	MinStraightLinePenalty = 0.1
)

// Grid is the walkability oracle the search runs over. Out-of-bounds points
// must report false.
type Grid interface {
	IsWalkable(p gamemap.Point) bool
}

// Options tunes the straight-line penalty.
type Options struct {
	MaxStraightLength   int
	StraightLinePenalty float64
}

// DefaultOptions returns the standard penalty settings.
func DefaultOptions() Options {
	return Options{
		MaxStraightLength:   DefaultMaxStraightLength,
		StraightLinePenalty: DefaultStraightLinePenalty,
	}
}

// Normalize clamps out-of-range values: MaxStraightLength below 1 becomes 1
// and a non-positive StraightLinePenalty becomes MinStraightLinePenalty.
// changed reports whether anything was corrected.
func (o Options) Normalize() (n Options, changed bool) {
	n = o
	if n.MaxStraightLength < 1 {
		n.MaxStraightLength = 1
		changed = true
	}
	if n.StraightLinePenalty <= 0 {
		n.StraightLinePenalty = MinStraightLinePenalty
		changed = true
	}
	return n, changed
}

// Path is a routed corridor.
type Path struct {
	Cells []gamemap.Point
	Cost  float64
}

// Steps returns the number of moves along the path.
func (p Path) Steps() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells) - 1
}

// moves lists the neighbour offsets in expansion order: up, down, left, right.
var moves = [4]gamemap.Point{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

type node struct {
	pos    gamemap.Point
	g, h   float64
	f      float64
	parent *node
	dir    gamemap.Point // zero for the start node
	run    int           // straight-line length ending here
	rank   int           // breaks fCost ties; see FindPath
	index  int           // heap position
}

// openSet is a min-heap on (f, rank).
type openSet []*node

func (s openSet) Len() int { return len(s) }
func (s openSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].rank < s[j].rank
}
func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}
func (s *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*s)
	*s = append(*s, n)
}
func (s *openSet) Pop() any {
	old := *s
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*s = old[:len(old)-1]
	n.index = -1
	return n
}

// FindPath searches for a path from start to end. ok is false when either
// endpoint is blocked or the open set runs dry; that is an ordinary outcome,
// not an error. Options are normalised before use.
//
// Among nodes of equal fCost the one popped first is the one a stable sort of
// an insertion-ordered open list would put first: nodes lowered during an
// expansion rank after every untouched node and before the nodes that same
// expansion discovers. rank encodes that order, so the heap pops nodes in
// exactly the sequence the sorted list would.
func FindPath(grid Grid, start, end gamemap.Point, opts Options) (path Path, ok bool) {
	opts, _ = opts.Normalize()
	if !grid.IsWalkable(start) || !grid.IsWalkable(end) {
		return Path{}, false
	}

	rank := 0
	startNode := &node{
		pos: start,
		h:   float64(start.Manhattan(end)),
	}
	startNode.f = startNode.h

	open := &openSet{}
	heap.Push(open, startNode)
	inOpen := map[gamemap.Point]*node{start: startNode}
	closed := mapset.New[gamemap.Point]()

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		delete(inOpen, current.pos)

		if current.pos == end {
			return Path{Cells: reconstruct(current), Cost: current.g}, true
		}
		closed.Put(current.pos)

		// Each expansion gets a block of ranks above every rank handed out so
		// far: lowered nodes first, then discoveries in move order.
		rank += 2 * len(moves)
		var lowered []lowering
		var discovered []*node

		for _, move := range moves {
			next := current.pos.Add(move)
			if !grid.IsWalkable(next) || closed.Has(next) {
				continue
			}

			run := 1
			if current.parent != nil && move == current.dir {
				run = current.run + 1
			}
			step := 1.0
			if run > opts.MaxStraightLength {
				step += opts.StraightLinePenalty
			}
			g := current.g + step

			if n, found := inOpen[next]; found {
				if g < n.g {
					lowered = append(lowered, lowering{n: n, f: n.f, rank: n.rank})
					n.g = g
					n.f = g + n.h
					n.parent = current
					n.dir = move
					n.run = run
				}
				continue
			}

			n := &node{
				pos:    next,
				g:      g,
				h:      float64(next.Manhattan(end)),
				parent: current,
				dir:    move,
				run:    run,
				rank:   rank + len(moves) + len(discovered),
			}
			n.f = n.g + n.h
			discovered = append(discovered, n)
		}

		slices.SortFunc(lowered, func(a, b lowering) int {
			if c := cmp.Compare(a.f, b.f); c != 0 {
				return c
			}
			return cmp.Compare(a.rank, b.rank)
		})
		for i, l := range lowered {
			l.n.rank = rank + i
			heap.Fix(open, l.n.index)
		}
		for _, n := range discovered {
			heap.Push(open, n)
			inOpen[n.pos] = n
		}
	}
	return Path{}, false
}

// lowering remembers a node's key from before its cost was lowered.
type lowering struct {
	n    *node
	f    float64
	rank int
}

func reconstruct(end *node) []gamemap.Point {
	var cells []gamemap.Point
	for n := end; n != nil; n = n.parent {
		cells = append(cells, n.pos)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
