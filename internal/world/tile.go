// Package world provides the tile maps the perception and path search
// engines operate on.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall blocks movement and sight.
	TileWall Tile = '#'
	// TileFloor is open ground: walkable and transparent.
	TileFloor Tile = '.'
	// TileDoor is a closed door: blocks movement and sight until the
	// surrounding game opens it by swapping the tile for floor.
	TileDoor Tile = '+'
	// TileWater is deep water: impassable on foot but transparent, so it
	// blocks routes without blocking sight lines.
	TileWater Tile = '~'
)

// ParseTile maps a map-file rune to a tile. Unknown runes parse as walls,
// so a typo in a map blocks a cell rather than opening one.
func ParseTile(r rune) Tile {
	switch Tile(r) {
	case TileFloor, TileWall, TileDoor, TileWater:
		return Tile(r)
	default:
		return TileWall
	}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// IsOpaque returns true if the tile stops sight lines.
func (t Tile) IsOpaque() bool {
	return t == TileWall || t == TileDoor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
