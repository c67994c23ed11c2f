package pathfind

import (
	"container/heap"

	"github.com/samdwyer/pathsight/internal/grid"
)

// node is an open-set entry ordered by estimated total cost.
type node struct {
	pos grid.Point
	f   float64 // g + h (priority)
}

// nodeHeap implements heap.Interface for the open set.
type nodeHeap []node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// Search runs A* over a Graph. It keeps its open heap and bookkeeping maps
// between calls to avoid reallocating them for every search, so a Search is
// not safe for concurrent use; give each goroutine its own.
type Search struct {
	graph Graph

	// Reusable search state (cleared between searches)
	open     nodeHeap
	gScore   map[grid.Point]float64
	cameFrom map[grid.Point]grid.Point
	closed   map[grid.Point]struct{}
	expanded int
}

// NewSearch creates a search bound to the given graph.
func NewSearch(g Graph) *Search {
	return &Search{
		graph:    g,
		gScore:   make(map[grid.Point]float64, 256),
		cameFrom: make(map[grid.Point]grid.Point, 256),
		closed:   make(map[grid.Point]struct{}, 256),
	}
}

// Find returns the cheapest path from origin to target in travel order. The
// path excludes origin and ends with target. Find returns an empty non-nil
// slice when origin equals target, and nil when the target cannot be
// reached at all; it never returns a partial path.
func (s *Search) Find(origin, target grid.Point) []grid.Point {
	s.reset()

	if origin == target {
		return []grid.Point{}
	}

	s.gScore[origin] = 0
	heap.Push(&s.open, node{pos: origin, f: s.graph.Heuristic(origin, target)})

	for s.open.Len() > 0 {
		current := heap.Pop(&s.open).(node).pos
		if _, done := s.closed[current]; done {
			// Stale heap entry: a cheaper route to this cell was
			// already expanded.
			continue
		}
		s.closed[current] = struct{}{}
		s.expanded++

		if current == target {
			return s.rebuild(origin, target)
		}

		for _, next := range s.graph.Neighbors(current) {
			if !s.graph.IsPassable(next) {
				continue
			}
			if _, done := s.closed[next]; done {
				continue
			}
			tentative := s.gScore[current] + s.graph.StepCost(next)
			if known, seen := s.gScore[next]; seen && tentative >= known {
				continue
			}
			s.gScore[next] = tentative
			s.cameFrom[next] = current
			heap.Push(&s.open, node{pos: next, f: tentative + s.graph.Heuristic(next, target)})
		}
	}

	// Open set exhausted without reaching the target.
	return nil
}

// LastExpanded returns how many cells the most recent Find expanded. It is
// a measure of search effort, not path length.
func (s *Search) LastExpanded() int {
	return s.expanded
}

func (s *Search) reset() {
	s.open = s.open[:0]
	clear(s.gScore)
	clear(s.cameFrom)
	clear(s.closed)
	s.expanded = 0
}

// rebuild walks predecessor links back from the target, then reverses the
// result into travel order. The origin itself stays off the path.
func (s *Search) rebuild(origin, target grid.Point) []grid.Point {
	path := make([]grid.Point, 0, 16)
	for at := target; at != origin; at = s.cameFrom[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
