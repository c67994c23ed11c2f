package pathfind

import "github.com/samdwyer/pathsight/internal/grid"

// DefaultTieBreakWeight is the x-axis inflation used by TieBreakManhattan.
const DefaultTieBreakWeight = 1.01

// Manhattan is the taxicab distance between a and b. On a 4-connected grid
// with unit step costs it never overestimates, so searches using it return
// shortest paths.
func Manhattan(a, b grid.Point) float64 {
	return float64(a.Manhattan(b))
}

// InflatedManhattan is the Manhattan distance with the x-axis term
// multiplied by weight. A weight slightly above 1 breaks ties between
// equal-cost routes, so the search commits to one corridor instead of
// flood-filling every tied alternative. Path cost can exceed the optimum by
// at most the weight factor.
func InflatedManhattan(a, b grid.Point, weight float64) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx)*weight + float64(dy)
}

// TieBreakManhattan is InflatedManhattan with the default weight.
func TieBreakManhattan(a, b grid.Point) float64 {
	return InflatedManhattan(a, b, DefaultTieBreakWeight)
}
