package world

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pathsight/internal/entity"
	"github.com/samdwyer/pathsight/internal/fov"
	"github.com/samdwyer/pathsight/internal/grid"
	"github.com/samdwyer/pathsight/internal/pathfind"
	"github.com/samdwyer/pathsight/internal/telemetry"
)

const (
	// Default level dimensions
	DefaultWidth  = 80
	DefaultHeight = 24

	// BaseStepCost is the cost of stepping onto an empty walkable cell.
	BaseStepCost = 1.0

	// DefaultOccupiedCostFactor multiplies the step cost of a cell an
	// actor already stands on. Searches route around occupants when a
	// free route exists, but can still squeeze past as a last resort.
	DefaultOccupiedCostFactor = 5.0
)

// Level is one floor of the game world: a tile grid, the actors standing on
// it, and the visibility produced by the perception engine. A level is
// driven by a single game loop and is not safe for concurrent use.
type Level struct {
	Width  int
	Height int
	Tiles  [][]Tile // Row-major: Tiles[y][x]
	Actors *entity.Index

	// Search cost tuning, applied on the next FindPath call.
	OccupiedCostFactor float64
	TieBreakWeight     float64

	bounds  grid.Rect
	visible map[grid.Point]struct{}
	seen    map[grid.Point]struct{}
	engine  *fov.Engine
	search  *pathfind.Search
}

// NewLevel creates a level of the given dimensions filled with walls.
func NewLevel(width, height int) *Level {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	l := &Level{
		Width:              width,
		Height:             height,
		Tiles:              tiles,
		Actors:             entity.NewIndex(width, height),
		OccupiedCostFactor: DefaultOccupiedCostFactor,
		TieBreakWeight:     pathfind.DefaultTieBreakWeight,
		bounds:             grid.Bounds(width, height),
		visible:            make(map[grid.Point]struct{}),
		seen:               make(map[grid.Point]struct{}),
	}
	l.engine = fov.New(width, height, l.IsOpaque, l.markVisible)
	l.search = pathfind.NewSearch(l)
	return l
}

// LevelFromRows builds a level from equal-length rows of tile runes, the
// format scenario maps are written in. Unknown runes become walls.
func LevelFromRows(rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, errors.New("world: level has no rows")
	}

	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, errors.New("world: level rows are empty")
	}

	l := NewLevel(width, len(rows))
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != width {
			return nil, fmt.Errorf("world: row %d has %d cells, want %d", y, len(cells), width)
		}
		for x, r := range cells {
			l.Tiles[y][x] = ParseTile(r)
		}
	}
	return l, nil
}

// InBounds returns true if (x, y) lies inside the level.
func (l *Level) InBounds(x, y int) bool {
	return l.bounds.Contains(x, y)
}

// TileAt returns the tile at the given position, or TileWall out of bounds.
func (l *Level) TileAt(x, y int) Tile {
	if !l.InBounds(x, y) {
		return TileWall
	}
	return l.Tiles[y][x]
}

// SetTile replaces the tile at the given position. Out-of-bounds writes are
// ignored. Visibility is not recomputed; call RefreshVisibility after
// changing tiles that block sight.
func (l *Level) SetTile(x, y int, t Tile) {
	if !l.InBounds(x, y) {
		return
	}
	l.Tiles[y][x] = t
}

// IsOpaque returns true if the tile at (x, y) stops sight lines.
func (l *Level) IsOpaque(x, y int) bool {
	return l.TileAt(x, y).IsOpaque()
}

// IsWalkable returns true if the tile at (x, y) can be walked on.
func (l *Level) IsWalkable(x, y int) bool {
	return l.InBounds(x, y) && l.Tiles[y][x].IsPassable()
}

// CanOccupy returns true if an actor could stand on (x, y) right now: the
// tile is walkable and nothing blocking stands there.
func (l *Level) CanOccupy(x, y int) bool {
	return l.IsWalkable(x, y) && l.Actors.IsUnoccupied(x, y)
}

// Neighbors returns the orthogonally adjacent cells inside the level.
// It implements pathfind.Graph.
func (l *Level) Neighbors(p grid.Point) []grid.Point {
	out := make([]grid.Point, 0, 4)
	for _, d := range grid.CardinalOffsets {
		n := p.Shift(d.X, d.Y)
		if l.bounds.ContainsPoint(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsPassable implements pathfind.Graph over the tile grid.
func (l *Level) IsPassable(p grid.Point) bool {
	return l.IsWalkable(p.X, p.Y)
}

// StepCost implements pathfind.Graph: stepping onto an occupied cell costs
// OccupiedCostFactor times the base cost.
func (l *Level) StepCost(p grid.Point) float64 {
	if l.Actors.HasAny(p.X, p.Y) {
		return BaseStepCost * l.OccupiedCostFactor
	}
	return BaseStepCost
}

// Heuristic implements pathfind.Graph with the tie-breaking Manhattan
// estimate.
func (l *Level) Heuristic(from, to grid.Point) float64 {
	return pathfind.InflatedManhattan(from, to, l.TieBreakWeight)
}

// RefreshVisibility recomputes the visible set from the given origin and
// radius, replacing the previous visible set entirely. Every revealed cell
// also enters the persistent seen set, opaque cells included, and nothing
// ever leaves it.
func (l *Level) RefreshVisibility(ctx context.Context, originX, originY, radius int) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.refresh_visibility")
	defer span.End()

	clear(l.visible)
	l.engine.Refresh(originX, originY, radius)

	span.SetAttributes(
		attribute.Int("fov.origin_x", originX),
		attribute.Int("fov.origin_y", originY),
		attribute.Int("fov.radius", radius),
		attribute.Int("fov.visible_cells", len(l.visible)),
		attribute.Int("fov.seen_cells", len(l.seen)),
	)
}

// markVisible is the reveal callback handed to the visibility engine.
func (l *Level) markVisible(x, y int) {
	p := grid.Point{X: x, Y: y}
	l.visible[p] = struct{}{}
	l.seen[p] = struct{}{}
}

// FindPath returns the cheapest route from origin to target in travel
// order: origin excluded, target last. It returns an empty slice when
// origin equals target and nil when no route exists.
func (l *Level) FindPath(ctx context.Context, origin, target grid.Point) []grid.Point {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.find_path")
	defer span.End()

	path := l.search.Find(origin, target)

	span.SetAttributes(
		attribute.Int("path.origin_x", origin.X),
		attribute.Int("path.origin_y", origin.Y),
		attribute.Int("path.target_x", target.X),
		attribute.Int("path.target_y", target.Y),
		attribute.Bool("path.found", path != nil),
		attribute.Int("path.length", len(path)),
		attribute.Int("path.expanded", l.search.LastExpanded()),
	)
	return path
}

// Visible returns true if (x, y) was revealed by the latest refresh.
func (l *Level) Visible(x, y int) bool {
	_, ok := l.visible[grid.Pt(x, y)]
	return ok
}

// Seen returns true if (x, y) has ever been revealed on this level.
func (l *Level) Seen(x, y int) bool {
	_, ok := l.seen[grid.Pt(x, y)]
	return ok
}

// VisibleCount returns the size of the current visible set.
func (l *Level) VisibleCount() int {
	return len(l.visible)
}

// SeenCount returns the size of the persistent seen set.
func (l *Level) SeenCount() int {
	return len(l.seen)
}

// Ensure Level satisfies the search's world interface
var _ pathfind.Graph = (*Level)(nil)
