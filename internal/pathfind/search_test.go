package pathfind

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/pathsight/internal/grid"
)

// gridWorld is a Graph fixture over rune rows: '#' blocks, anything else is
// open with step cost 1 unless overridden.
type gridWorld struct {
	width, height int
	walls         map[grid.Point]bool
	costs         map[grid.Point]float64
	heuristic     func(a, b grid.Point) float64
}

func parseWorld(rows []string) *gridWorld {
	w := &gridWorld{
		width:  len(rows[0]),
		height: len(rows),
		walls:  make(map[grid.Point]bool),
		costs:  make(map[grid.Point]float64),
	}
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				w.walls[grid.Pt(x, y)] = true
			}
		}
	}
	return w
}

func (w *gridWorld) Neighbors(p grid.Point) []grid.Point {
	out := make([]grid.Point, 0, 4)
	for _, d := range grid.CardinalOffsets {
		n := p.Shift(d.X, d.Y)
		if n.X >= 0 && n.Y >= 0 && n.X < w.width && n.Y < w.height {
			out = append(out, n)
		}
	}
	return out
}

func (w *gridWorld) IsPassable(p grid.Point) bool {
	return !w.walls[p]
}

func (w *gridWorld) StepCost(p grid.Point) float64 {
	if c, ok := w.costs[p]; ok {
		return c
	}
	return 1
}

func (w *gridWorld) Heuristic(a, b grid.Point) float64 {
	if w.heuristic != nil {
		return w.heuristic(a, b)
	}
	return Manhattan(a, b)
}

// bfsDistance is the reference shortest-path length on a uniform-cost
// fixture, or -1 when the target is unreachable.
func bfsDistance(w *gridWorld, from, to grid.Point) int {
	if from == to {
		return 0
	}
	dist := map[grid.Point]int{from: 0}
	queue := []grid.Point{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range w.Neighbors(cur) {
			if w.walls[n] {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			if n == to {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return -1
}

// assertContiguous checks that each path step is orthogonally adjacent to
// the previous one, starting from the origin.
func assertContiguous(t *testing.T, origin grid.Point, path []grid.Point) {
	t.Helper()
	prev := origin
	for i, p := range path {
		if !prev.IsAdjacent(p) {
			t.Errorf("step %d: %v is not adjacent to %v", i, p, prev)
		}
		prev = p
	}
}

func TestFindStraightLine(t *testing.T) {
	w := parseWorld([]string{
		".....",
		".....",
		".....",
	})
	path := NewSearch(w).Find(grid.Pt(0, 1), grid.Pt(4, 1))

	if len(path) != 4 {
		t.Fatalf("path length = %d, want 4: %v", len(path), path)
	}
	if path[len(path)-1] != grid.Pt(4, 1) {
		t.Errorf("path ends at %v, want {4 1}", path[len(path)-1])
	}
	assertContiguous(t, grid.Pt(0, 1), path)
}

func TestFindExcludesOrigin(t *testing.T) {
	w := parseWorld([]string{"..."})
	path := NewSearch(w).Find(grid.Pt(0, 0), grid.Pt(2, 0))

	for _, p := range path {
		if p == grid.Pt(0, 0) {
			t.Errorf("path contains the origin: %v", path)
		}
	}
}

func TestFindDetoursAroundWallColumn(t *testing.T) {
	// The wall column blocks the straight line between (0, 2) and (4, 2);
	// the shortest route slips through the gap at (2, 3) for 6 steps.
	w := parseWorld([]string{
		"..#..",
		"..#..",
		"..#..",
		".....",
		".....",
	})
	path := NewSearch(w).Find(grid.Pt(0, 2), grid.Pt(4, 2))

	if len(path) != 6 {
		t.Fatalf("path length = %d, want 6: %v", len(path), path)
	}
	assertContiguous(t, grid.Pt(0, 2), path)
	for _, p := range path {
		if w.walls[p] {
			t.Errorf("path crosses the wall at %v", p)
		}
	}
}

func TestFindLongerDetourWhenGapIsFarther(t *testing.T) {
	// Same column extended one row: the only gap is the bottom row, which
	// costs two extra steps each way.
	w := parseWorld([]string{
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		".....",
	})
	path := NewSearch(w).Find(grid.Pt(0, 2), grid.Pt(4, 2))

	if len(path) != 8 {
		t.Fatalf("path length = %d, want 8: %v", len(path), path)
	}
	assertContiguous(t, grid.Pt(0, 2), path)
}

func TestFindSamePointReturnsEmpty(t *testing.T) {
	w := parseWorld([]string{"..."})
	s := NewSearch(w)
	path := s.Find(grid.Pt(1, 0), grid.Pt(1, 0))

	if path == nil {
		t.Fatal("self-path is nil, want empty slice")
	}
	if len(path) != 0 {
		t.Errorf("self-path has %d steps, want 0: %v", len(path), path)
	}
	if s.LastExpanded() != 0 {
		t.Errorf("self-path expanded %d cells, want 0", s.LastExpanded())
	}
}

func TestFindUnreachableReturnsNil(t *testing.T) {
	// The target sits in a sealed box.
	w := parseWorld([]string{
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	})
	s := NewSearch(w)
	path := s.Find(grid.Pt(0, 0), grid.Pt(2, 2))

	if path != nil {
		t.Fatalf("path to sealed cell = %v, want nil", path)
	}
	if s.LastExpanded() == 0 {
		t.Error("search gave up without expanding anything")
	}
}

func TestFindPrefersCheaperCells(t *testing.T) {
	// The straight route is shorter but steps on a heavy cell; the search
	// should take the longer route around it.
	w := parseWorld([]string{
		"...",
		"...",
	})
	w.costs[grid.Pt(1, 1)] = 10
	path := NewSearch(w).Find(grid.Pt(0, 1), grid.Pt(2, 1))

	if len(path) != 4 {
		t.Fatalf("path length = %d, want 4: %v", len(path), path)
	}
	for _, p := range path {
		if p == grid.Pt(1, 1) {
			t.Errorf("path steps on the heavy cell: %v", path)
		}
	}
}

func TestFindCrossesCostlyCellWhenOnlyRoute(t *testing.T) {
	// A corridor with a heavy cell in the middle: expensive, but still the
	// only way through.
	w := parseWorld([]string{
		"#####",
		".....",
		"#####",
	})
	w.costs[grid.Pt(2, 1)] = 25
	path := NewSearch(w).Find(grid.Pt(0, 1), grid.Pt(4, 1))

	if len(path) != 4 {
		t.Fatalf("path length = %d, want 4: %v", len(path), path)
	}
}

// Seeded random grids, checked against plain breadth-first search: with an
// admissible heuristic and uniform costs, A* must match the BFS distance
// exactly, and must return nil exactly when BFS finds no route.
func TestFindMatchesBreadthFirstSearch(t *testing.T) {
	const (
		width, height = 15, 11
		wallChance    = 0.3
		trials        = 60
	)
	rng := rand.New(rand.NewSource(7))

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			if rng.Float64() < wallChance {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		rows[y] = string(row)
	}
	w := parseWorld(rows)

	var open []grid.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !w.walls[grid.Pt(x, y)] {
				open = append(open, grid.Pt(x, y))
			}
		}
	}
	if len(open) < 2 {
		t.Fatal("degenerate fixture: fewer than two open cells")
	}

	s := NewSearch(w)
	for i := 0; i < trials; i++ {
		from := open[rng.Intn(len(open))]
		to := open[rng.Intn(len(open))]
		if from == to {
			continue
		}

		want := bfsDistance(w, from, to)
		path := s.Find(from, to)

		if want == -1 {
			if path != nil {
				t.Errorf("trial %d: %v->%v is unreachable but got path %v", i, from, to, path)
			}
			continue
		}
		if path == nil {
			t.Errorf("trial %d: %v->%v is reachable (distance %d) but got nil", i, from, to, want)
			continue
		}
		if len(path) != want {
			t.Errorf("trial %d: %v->%v path length = %d, want %d", i, from, to, len(path), want)
		}
		assertContiguous(t, from, path)
		for _, p := range path {
			if w.walls[p] {
				t.Errorf("trial %d: path crosses wall at %v", i, p)
			}
		}
	}
}

func TestTieBreakKeepsShortestPathOnOpenGrid(t *testing.T) {
	w := parseWorld([]string{
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	})
	w.heuristic = TieBreakManhattan
	path := NewSearch(w).Find(grid.Pt(0, 0), grid.Pt(8, 8))

	if len(path) != 16 {
		t.Errorf("path length = %d, want 16", len(path))
	}
}

func TestLastExpandedTracksEffort(t *testing.T) {
	w := parseWorld([]string{
		".....",
		".....",
		".....",
		".....",
		".....",
	})
	s := NewSearch(w)
	s.Find(grid.Pt(0, 0), grid.Pt(4, 4))

	if s.LastExpanded() == 0 {
		t.Error("LastExpanded = 0 after a real search")
	}
	if s.LastExpanded() > 25 {
		t.Errorf("LastExpanded = %d, more cells than the grid has", s.LastExpanded())
	}
}

func TestHeuristics(t *testing.T) {
	a, b := grid.Pt(0, 0), grid.Pt(3, 4)

	if got := Manhattan(a, b); got != 7 {
		t.Errorf("Manhattan = %v, want 7", got)
	}
	if got := InflatedManhattan(a, b, 2.0); got != 10 {
		t.Errorf("InflatedManhattan(weight 2) = %v, want 10", got)
	}
	if got := InflatedManhattan(b, a, 2.0); got != 10 {
		t.Errorf("InflatedManhattan is not symmetric: %v", got)
	}
	if got := TieBreakManhattan(a, b); math.Abs(got-7.03) > 1e-9 {
		t.Errorf("TieBreakManhattan = %v, want 7.03", got)
	}
}
