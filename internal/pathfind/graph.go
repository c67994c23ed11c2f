// Package pathfind implements best-first path search over grid coordinates.
// The search itself is world-agnostic: everything it needs to know about the
// map arrives through the Graph interface.
package pathfind

import "github.com/samdwyer/pathsight/internal/grid"

// Graph supplies the world knowledge a search needs: adjacency,
// traversability, entry costs, and a distance estimate.
type Graph interface {
	// Neighbors returns the cells reachable in one step from p, already
	// filtered to the grid bounds.
	Neighbors(p grid.Point) []grid.Point

	// IsPassable reports whether p can be entered at all.
	IsPassable(p grid.Point) bool

	// StepCost returns the cost of stepping onto p. Costs must be
	// positive; they need not be uniform.
	StepCost(p grid.Point) float64

	// Heuristic estimates the remaining travel cost between two cells.
	// Searches return cost-optimal paths when the estimate never exceeds
	// the true remaining cost.
	Heuristic(from, to grid.Point) float64
}
