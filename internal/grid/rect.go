package grid

// Rect is an axis-aligned rectangle of cells.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions in cells
}

// Bounds returns a rectangle anchored at the origin with the given
// dimensions, the usual representation of a whole grid.
func Bounds(width, height int) Rect {
	return Rect{Width: width, Height: height}
}

// Contains returns true if the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// ContainsPoint returns true if p lies inside the rectangle.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.X, p.Y)
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns the number of cells the rectangle covers.
func (r Rect) Area() int {
	return r.Width * r.Height
}
