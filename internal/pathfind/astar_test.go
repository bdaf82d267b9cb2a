package pathfind

import (
	"math"
	"testing"

	"level-layout/internal/gamemap"
)

// boxGrid is a w×h grid anchored at the origin with optional blocked cells.
type boxGrid struct {
	w, h    int
	blocked map[gamemap.Point]bool
}

func (g boxGrid) IsWalkable(p gamemap.Point) bool {
	if p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return false
	}
	return !g.blocked[p]
}

func pt(x, y int) gamemap.Point { return gamemap.Point{X: x, Y: y} }

// assertContiguous checks that consecutive cells are 4-neighbours and that no
// cell repeats.
func assertContiguous(t *testing.T, cells []gamemap.Point) {
	t.Helper()
	seen := map[gamemap.Point]bool{}
	for i, c := range cells {
		if seen[c] {
			t.Fatalf("cell %v visited twice", c)
		}
		seen[c] = true
		if i > 0 && cells[i-1].Manhattan(c) != 1 {
			t.Fatalf("cells %v and %v are not adjacent", cells[i-1], c)
		}
	}
}

func TestFindPathEmptyGridIsManhattanOptimal(t *testing.T) {
	grid := boxGrid{w: 5, h: 5}
	path, ok := FindPath(grid, pt(0, 0), pt(4, 4), DefaultOptions())
	if !ok {
		t.Fatal("expected a path on an empty grid")
	}
	if len(path.Cells) != 9 {
		t.Fatalf("path has %d cells; want 9", len(path.Cells))
	}
	if path.Steps() != 8 {
		t.Errorf("Steps() = %d; want 8", path.Steps())
	}
	if path.Cost != 8 {
		t.Errorf("cost = %v; want 8 (no straight-line penalty)", path.Cost)
	}
	if path.Cells[0] != pt(0, 0) || path.Cells[8] != pt(4, 4) {
		t.Errorf("path runs %v -> %v; want (0,0) -> (4,4)", path.Cells[0], path.Cells[8])
	}
	assertContiguous(t, path.Cells)
}

func TestFindPathStraightLinePenalty(t *testing.T) {
	corridor := boxGrid{w: 12, h: 1}

	penalised, ok := FindPath(corridor, pt(0, 0), pt(11, 0), DefaultOptions())
	if !ok {
		t.Fatal("expected a path through the corridor")
	}
	relaxed, ok := FindPath(corridor, pt(0, 0), pt(11, 0), Options{
		MaxStraightLength:   math.MaxInt32,
		StraightLinePenalty: DefaultStraightLinePenalty,
	})
	if !ok {
		t.Fatal("expected a path through the corridor")
	}

	if relaxed.Cost != 11 {
		t.Errorf("relaxed cost = %v; want 11", relaxed.Cost)
	}
	// Steps 6 through 11 each pay 0.5 on top of the base cost.
	if penalised.Cost != 14 {
		t.Errorf("penalised cost = %v; want 14", penalised.Cost)
	}
	if penalised.Cost <= relaxed.Cost {
		t.Errorf("penalised cost %v should exceed relaxed cost %v", penalised.Cost, relaxed.Cost)
	}
}

func TestFindPathBendsLongCorridors(t *testing.T) {
	grid := boxGrid{w: 12, h: 3}
	path, ok := FindPath(grid, pt(0, 1), pt(11, 1), DefaultOptions())
	if !ok {
		t.Fatal("expected a path")
	}
	want := []gamemap.Point{
		pt(0, 1), pt(1, 1), pt(2, 1), pt(3, 1), pt(4, 1), pt(5, 1),
		pt(5, 0), pt(6, 0), pt(7, 0), pt(8, 0), pt(9, 0), pt(10, 0),
		pt(10, 1), pt(11, 1),
	}
	if len(path.Cells) != len(want) {
		t.Fatalf("path = %v; want %v", path.Cells, want)
	}
	for i := range want {
		if path.Cells[i] != want[i] {
			t.Fatalf("path = %v; want %v", path.Cells, want)
		}
	}
	if path.Cost != 13 {
		t.Errorf("cost = %v; want 13", path.Cost)
	}

	straight, _ := FindPath(grid, pt(0, 1), pt(11, 1), Options{MaxStraightLength: 100, StraightLinePenalty: 0.5})
	if straight.Steps() != 11 {
		t.Errorf("without penalty the path should run straight, got %d steps", straight.Steps())
	}
}

func TestFindPathAroundWall(t *testing.T) {
	blocked := map[gamemap.Point]bool{}
	for y := 0; y < 4; y++ {
		blocked[pt(2, y)] = true
	}
	grid := boxGrid{w: 5, h: 5, blocked: blocked}

	path, ok := FindPath(grid, pt(0, 0), pt(4, 0), DefaultOptions())
	if !ok {
		t.Fatal("expected a path through the gap at (2,4)")
	}
	if path.Steps() != 12 {
		t.Errorf("Steps() = %d; want 12", path.Steps())
	}
	for _, c := range path.Cells {
		if blocked[c] {
			t.Fatalf("path crosses blocked cell %v", c)
		}
	}
	assertContiguous(t, path.Cells)
}

func TestFindPathNoPath(t *testing.T) {
	blocked := map[gamemap.Point]bool{}
	for y := 0; y < 5; y++ {
		blocked[pt(2, y)] = true
	}
	grid := boxGrid{w: 5, h: 5, blocked: blocked}

	if _, ok := FindPath(grid, pt(0, 0), pt(4, 4), DefaultOptions()); ok {
		t.Error("a full wall should leave no path")
	}
}

func TestFindPathBlockedEndpoints(t *testing.T) {
	grid := boxGrid{w: 5, h: 5, blocked: map[gamemap.Point]bool{pt(4, 4): true}}
	cases := []struct {
		name       string
		start, end gamemap.Point
	}{
		{"blocked end", pt(0, 0), pt(4, 4)},
		{"blocked start", pt(4, 4), pt(0, 0)},
		{"start out of bounds", pt(-1, 0), pt(2, 2)},
		{"end out of bounds", pt(0, 0), pt(5, 5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := FindPath(grid, tc.start, tc.end, DefaultOptions()); ok {
				t.Errorf("FindPath(%v, %v) should fail", tc.start, tc.end)
			}
		})
	}
}

func TestFindPathStartEqualsEnd(t *testing.T) {
	path, ok := FindPath(boxGrid{w: 3, h: 3}, pt(1, 1), pt(1, 1), DefaultOptions())
	if !ok {
		t.Fatal("expected trivial path")
	}
	if len(path.Cells) != 1 || path.Cost != 0 {
		t.Errorf("path = %+v; want single cell, zero cost", path)
	}
}

func TestOptionsNormalize(t *testing.T) {
	cases := []struct {
		name    string
		in      Options
		want    Options
		changed bool
	}{
		{"defaults untouched", DefaultOptions(), DefaultOptions(), false},
		{"zero run clamps to 1", Options{0, 0.5}, Options{1, 0.5}, true},
		{"negative run clamps to 1", Options{-3, 0.5}, Options{1, 0.5}, true},
		{"zero penalty floors", Options{5, 0}, Options{5, MinStraightLinePenalty}, true},
		{"negative penalty floors", Options{5, -2}, Options{5, MinStraightLinePenalty}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := tc.in.Normalize()
			if got != tc.want || changed != tc.changed {
				t.Errorf("Normalize(%+v) = %+v,%v; want %+v,%v", tc.in, got, changed, tc.want, tc.changed)
			}
		})
	}
}

func TestFindPathClampsInvalidOptions(t *testing.T) {
	// MaxStraightLength 0 behaves as 1: every step after the first pays the penalty.
	path, ok := FindPath(boxGrid{w: 5, h: 1}, pt(0, 0), pt(4, 0), Options{MaxStraightLength: 0, StraightLinePenalty: 0.5})
	if !ok {
		t.Fatal("expected a path")
	}
	if path.Cost != 5.5 {
		t.Errorf("cost = %v; want 5.5", path.Cost)
	}

	// A non-positive penalty still penalises, just lightly.
	path, ok = FindPath(boxGrid{w: 12, h: 1}, pt(0, 0), pt(11, 0), Options{MaxStraightLength: 5, StraightLinePenalty: -1})
	if !ok {
		t.Fatal("expected a path")
	}
	if math.Abs(path.Cost-11.6) > 1e-9 {
		t.Errorf("cost = %v; want 11.6", path.Cost)
	}
}

func TestFindPathTieOrder(t *testing.T) {
	// Several cheapest paths exist; the search must settle on the one that
	// leaves the start upward and bends at the fifth step.
	path, ok := FindPath(boxGrid{w: 12, h: 4}, pt(0, 2), pt(11, 1), DefaultOptions())
	if !ok {
		t.Fatal("expected a path")
	}
	want := []gamemap.Point{
		pt(0, 2), pt(0, 1), pt(1, 1), pt(2, 1), pt(3, 1), pt(4, 1), pt(5, 1),
		pt(5, 0), pt(6, 0), pt(7, 0), pt(8, 0), pt(9, 0), pt(10, 0),
		pt(10, 1), pt(11, 1),
	}
	if len(path.Cells) != len(want) {
		t.Fatalf("path = %v; want %v", path.Cells, want)
	}
	for i := range want {
		if path.Cells[i] != want[i] {
			t.Fatalf("path = %v; want %v", path.Cells, want)
		}
	}
	if path.Cost != 14 {
		t.Errorf("cost = %v; want 14", path.Cost)
	}
}

func TestFindPathEmptyGridTieOrder(t *testing.T) {
	path, _ := FindPath(boxGrid{w: 5, h: 5}, pt(0, 0), pt(4, 4), DefaultOptions())
	want := []gamemap.Point{pt(0, 0), pt(0, 1), pt(0, 2), pt(0, 3), pt(0, 4), pt(1, 4), pt(2, 4), pt(3, 4), pt(4, 4)}
	for i := range want {
		if i >= len(path.Cells) || path.Cells[i] != want[i] {
			t.Fatalf("path = %v; want %v", path.Cells, want)
		}
	}
}
