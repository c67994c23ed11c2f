// Package entity provides the actors that stand on the map and the spatial
// index that tracks which cell each one occupies.
package entity

import "github.com/google/uuid"

// Actor is a creature or interactable object occupying a single cell.
type Actor struct {
	ID     uuid.UUID // Stable identity, assigned at creation
	Name   string
	X, Y   int  // Current cell; updated through Index.MoveTo once indexed
	Blocks bool // True if other movers cannot share or pass this cell freely
}

// NewActor creates an actor standing at (x, y).
func NewActor(name string, x, y int, blocks bool) *Actor {
	return &Actor{
		ID:     uuid.New(),
		Name:   name,
		X:      x,
		Y:      y,
		Blocks: blocks,
	}
}

// Position returns the actor's current cell.
func (a *Actor) Position() (int, int) {
	return a.X, a.Y
}
