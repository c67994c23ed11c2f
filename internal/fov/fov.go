// Package fov computes field of view on a tile grid by recursive shadow
// casting. The grid is split into eight 45° octants around the viewer; each
// octant is scanned row by row between a pair of slopes, and opaque cells
// narrow the slopes for the rows behind them, which is what casts shadows.
package fov

// OpacityFunc reports whether the cell at (x, y) blocks sight. The engine
// never calls it with out-of-bounds coordinates.
type OpacityFunc func(x, y int) bool

// RevealFunc marks the cell at (x, y) as visible. The engine calls it at
// most once per cell per refresh, never with out-of-bounds coordinates.
type RevealFunc func(x, y int)

// octantMultipliers maps per-octant (row, column) offsets into grid
// coordinate deltas, so a single scan routine covers all eight octants.
var octantMultipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// Engine computes which cells are visible from a viewpoint. It reads the
// world through its opacity callback and reports results through its reveal
// callback, so it carries no map data of its own. Results do not persist
// between refreshes; remembering them is the caller's concern.
type Engine struct {
	width, height int
	isOpaque      OpacityFunc
	reveal        RevealFunc

	// Cells touched during the current refresh, stamped with the refresh
	// generation so octant seams do not reveal a cell twice.
	marks []uint64
	gen   uint64
}

// New creates a visibility engine for a width×height grid. Both callbacks
// are required.
func New(width, height int, isOpaque OpacityFunc, reveal RevealFunc) *Engine {
	return &Engine{
		width:    width,
		height:   height,
		isOpaque: isOpaque,
		reveal:   reveal,
		marks:    make([]uint64, width*height),
	}
}

// Refresh computes visibility from (originX, originY) out to radius and
// reveals every visible cell. The origin is always revealed, whatever is
// standing there. Radius is a hard Euclidean cutoff: a cell at offset
// (dx, dy) can only be revealed when dx²+dy² ≤ radius². A radius of zero
// reveals the origin alone.
func (e *Engine) Refresh(originX, originY, radius int) {
	e.gen++

	e.revealOnce(originX, originY)

	if radius <= 0 {
		return
	}
	for oct := 0; oct < 8; oct++ {
		e.castLight(originX, originY, 1, 1.0, 0.0, radius,
			octantMultipliers[0][oct], octantMultipliers[1][oct],
			octantMultipliers[2][oct], octantMultipliers[3][oct])
	}
}

// castLight scans one octant from row outward, revealing cells between the
// start and end slopes. An opaque run splits the scan: rows behind the clear
// part are handled by a recursive call bounded by the run's left slope, and
// the current scan resumes past the run with a narrowed start slope.
func (e *Engine) castLight(cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false
		newStart := start

		for dx := -j; dx <= 0; dx++ {
			// Slopes bounding the near and far corners of this cell.
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Octant offsets to grid coordinates.
			x := cx + dx*xx + dy*xy
			y := cy + dx*yx + dy*yy

			if dx*dx+dy*dy <= radiusSq {
				e.revealOnce(x, y)
			}

			if blocked {
				if e.opaqueAt(x, y) {
					// Still inside the opaque run.
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if e.opaqueAt(x, y) && j < radius {
				// An opaque run begins: scan the rows behind the
				// clear span, then resume past the run.
				blocked = true
				e.castLight(cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}

		// A row that ends blocked shadows everything further out.
		if blocked {
			break
		}
	}
}

// revealOnce reveals an in-bounds cell unless this refresh already did.
func (e *Engine) revealOnce(x, y int) {
	if x < 0 || y < 0 || x >= e.width || y >= e.height {
		return
	}
	idx := y*e.width + x
	if e.marks[idx] == e.gen {
		return
	}
	e.marks[idx] = e.gen
	e.reveal(x, y)
}

// opaqueAt treats everything outside the grid as opaque, keeping the
// opacity callback free of out-of-bounds coordinates.
func (e *Engine) opaqueAt(x, y int) bool {
	if x < 0 || y < 0 || x >= e.width || y >= e.height {
		return true
	}
	return e.isOpaque(x, y)
}
