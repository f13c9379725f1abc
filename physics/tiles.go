package physics

import (
	"errors"
	"fmt"

	"github.com/illdynamics/qommandah-qeen/subpixel"
)

var ErrGridSize = errors.New("physics: tile data does not match grid size")

// TileID indexes a Tileset. Zero is conventionally empty.
type TileID uint16

// TileProps are the collision properties of one tile kind.
type TileProps struct {
	Solid bool `yaml:"solid" json:"solid"`
	// SemiSolid tiles only stop bodies falling onto them from above.
	SemiSolid bool `yaml:"semi_solid" json:"semi_solid"`
	// Hazard is the damage dealt to the player while overlapping the tile.
	Hazard int `yaml:"hazard" json:"hazard"`
}

// blocksDown reports whether the tile stops a body whose bottom edge was at
// prevBottom before this tick and whose tile top edge is top.
func (p TileProps) blocksDown(prevBottom, top subpixel.Units) bool {
	if p.Solid {
		return true
	}
	return p.SemiSolid && prevBottom <= top
}

// Tileset maps tile ids to their properties. Unknown ids are empty.
type Tileset map[TileID]TileProps

// outside is what every query beyond the grid edge returns, so nothing can
// fall out of the level.
var outside = TileProps{Solid: true}

// Grid is an immutable tile map. It is shared read-only by every body during a
// tick; the level loader builds a new one per level.
type Grid struct {
	width, height int
	tileSize      subpixel.Units
	tiles         []TileID
	set           Tileset
}

// NewGrid copies tiles (row-major, width*height entries) into a new grid.
func NewGrid(width, height int, tileSize subpixel.Units, tiles []TileID, set Tileset) (*Grid, error) {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil, fmt.Errorf("physics: invalid grid %dx%d tile=%d", width, height, tileSize)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("%w: want %d got %d", ErrGridSize, width*height, len(tiles))
	}
	copied := make([]TileID, len(tiles))
	copy(copied, tiles)
	props := make(Tileset, len(set))
	for id, p := range set {
		props[id] = p
	}
	return &Grid{width: width, height: height, tileSize: tileSize, tiles: copied, set: props}, nil
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) TileSize() subpixel.Units { return g.tileSize }

// ID returns the raw tile id at a tile coordinate, or 0 outside the grid.
func (g *Grid) ID(tx, ty int) TileID {
	if tx < 0 || ty < 0 || tx >= g.width || ty >= g.height {
		return 0
	}
	return g.tiles[ty*g.width+tx]
}

// At returns the properties of the tile at a tile coordinate. Coordinates
// outside the grid are solid.
func (g *Grid) At(tx, ty int) TileProps {
	if tx < 0 || ty < 0 || tx >= g.width || ty >= g.height {
		return outside
	}
	return g.set[g.tiles[ty*g.width+tx]]
}

// TileOf maps a subpixel coordinate to the tile index containing it.
func (g *Grid) TileOf(u subpixel.Units) int {
	return int(subpixel.FloorDiv(int64(u), int64(g.tileSize)))
}

// Edge returns the subpixel coordinate of the low edge of tile index i.
func (g *Grid) Edge(i int) subpixel.Units {
	return subpixel.Units(i) * g.tileSize
}

// Overlapping calls fn for every tile touched by box, row by row.
func (g *Grid) Overlapping(box AABB, fn func(tx, ty int, p TileProps)) {
	if box.W <= 0 || box.H <= 0 {
		return
	}
	x0, x1 := g.TileOf(box.X), g.TileOf(box.X+box.W-1)
	y0, y1 := g.TileOf(box.Y), g.TileOf(box.Y+box.H-1)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			fn(tx, ty, g.At(tx, ty))
		}
	}
}

// SolidOverlap reports whether box overlaps any solid tile.
func (g *Grid) SolidOverlap(box AABB) bool {
	hit := false
	g.Overlapping(box, func(_, _ int, p TileProps) {
		if p.Solid {
			hit = true
		}
	})
	return hit
}
