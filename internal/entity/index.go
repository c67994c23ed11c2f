package entity

// Index is a dense spatial registry: one bucket of actors per grid cell,
// stored flat at y*width+x. Lookups by cell are O(1); buckets stay small, so
// the linear scans inside them are cheap. An actor must appear in exactly
// one bucket, the one matching its coordinates; every mutation here keeps
// that alignment.
type Index struct {
	width, height int
	cells         [][]*Actor
	count         int
}

// NewIndex creates an empty index covering a width×height grid.
func NewIndex(width, height int) *Index {
	return &Index{
		width:  width,
		height: height,
		cells:  make([][]*Actor, width*height),
	}
}

// Add registers the actor in the bucket for its current coordinates. It
// returns false if the coordinates are out of bounds, leaving the index
// unchanged. Callers must not add an actor twice; relocate with MoveTo.
func (ix *Index) Add(a *Actor) bool {
	if !ix.inBounds(a.X, a.Y) {
		return false
	}
	idx := a.Y*ix.width + a.X
	ix.cells[idx] = append(ix.cells[idx], a)
	ix.count++
	return true
}

// Remove deletes the actor from the bucket at its current coordinates,
// preserving the order of the remaining occupants. Removing an actor that
// is not in the index is a no-op.
func (ix *Index) Remove(a *Actor) {
	if !ix.inBounds(a.X, a.Y) {
		return
	}
	idx := a.Y*ix.width + a.X
	bucket := ix.cells[idx]
	for i := range bucket {
		if bucket[i] == a {
			ix.cells[idx] = append(bucket[:i], bucket[i+1:]...)
			ix.count--
			return
		}
	}
}

// MoveTo relocates the actor to (x, y) in one step: it leaves its old
// bucket, gets its coordinates updated, and enters the new bucket before
// MoveTo returns, so no caller can observe the two out of sync. A move to
// an out-of-bounds cell returns false and changes nothing.
func (ix *Index) MoveTo(a *Actor, x, y int) bool {
	if !ix.inBounds(x, y) {
		return false
	}
	ix.Remove(a)
	a.X, a.Y = x, y
	ix.Add(a)
	return true
}

// At returns the actors standing on (x, y) in the order they arrived.
// The slice is the index's own bucket, valid until the next mutation;
// callers must not modify it. Empty and out-of-bounds cells return nil.
func (ix *Index) At(x, y int) []*Actor {
	if !ix.inBounds(x, y) {
		return nil
	}
	return ix.cells[y*ix.width+x]
}

// HasAny reports whether at least one actor stands on (x, y).
func (ix *Index) HasAny(x, y int) bool {
	if !ix.inBounds(x, y) {
		return false
	}
	return len(ix.cells[y*ix.width+x]) > 0
}

// IsUnoccupied reports whether nothing movement-blocking stands on (x, y).
// Out-of-bounds cells are never unoccupied.
func (ix *Index) IsUnoccupied(x, y int) bool {
	if !ix.inBounds(x, y) {
		return false
	}
	for _, a := range ix.cells[y*ix.width+x] {
		if a.Blocks {
			return false
		}
	}
	return true
}

// Count returns the number of actors currently registered.
func (ix *Index) Count() int {
	return ix.count
}

func (ix *Index) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < ix.width && y < ix.height
}
