// Package grid provides the coordinate primitives shared by the visibility
// and path search engines.
package grid

import "math"

// Point identifies a single cell on a 2D grid. It is a comparable value
// type: two points with equal X and Y are interchangeable everywhere,
// including as map keys.
type Point struct {
	X, Y int
}

// Pt is shorthand for constructing a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Shift returns a new point offset by (dx, dy) without modifying the receiver.
func (p Point) Shift(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the 4-directional taxicab distance to other.
func (p Point) Manhattan(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// DistanceTo returns the exact Euclidean distance to other.
func (p Point) DistanceTo(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquaredTo returns the squared Euclidean distance as an int, for
// comparisons that do not need the square root.
func (p Point) DistanceSquaredTo(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// IsAdjacent returns true if other is in one of the four orthogonally
// neighboring cells.
func (p Point) IsAdjacent(other Point) bool {
	return p.Manhattan(other) == 1
}

// CardinalOffsets lists the four orthogonal neighbor offsets in N, S, W, E
// order. Grid movement and adjacency queries are 4-directional throughout.
var CardinalOffsets = [4]Point{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
