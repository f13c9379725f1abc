package levels

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

var (
	ErrInvalidDimensions = errors.New("levels: invalid dimensions")
	ErrNoPlayerSpawn     = errors.New("levels: no player spawn")
)

// Entity types understood by Build.
const (
	EntityPlayer = "player"
	EntityEnemy  = "enemy"
	EntityPickup = "pickup"
)

type EnemySpawn struct {
	Archetype string
	Pos       physics.Vec
}

type PickupSpawn struct {
	Mode locomotion.Mode
	Pos  physics.Vec
}

// Stage is a level converted into simulation units. The grid is immutable;
// a new Stage is built for every level load.
type Stage struct {
	Name        string
	Grid        *physics.Grid
	PlayerSpawn physics.Vec
	Enemies     []EnemySpawn
	Pickups     []PickupSpawn
}

// Build validates the level and converts it to subpixel units.
func (l *Level) Build() (*Stage, error) {
	if l.Width <= 0 || l.Height <= 0 || l.TileSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d tile=%d", ErrInvalidDimensions, l.Width, l.Height, l.TileSize)
	}
	if len(l.Tiles) != l.Height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidDimensions, len(l.Tiles), l.Height)
	}

	set := make(physics.Tileset, len(l.Tileset))
	for key, props := range l.Tileset {
		id, err := strconv.ParseUint(key, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("levels: tileset key %q: %w", key, err)
		}
		set[physics.TileID(id)] = props
	}

	ids := make([]physics.TileID, 0, l.Width*l.Height)
	for y, row := range l.Tiles {
		if len(row) != l.Width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrInvalidDimensions, y, len(row), l.Width)
		}
		for x, v := range row {
			if v < 0 || v > 0xffff {
				return nil, fmt.Errorf("levels: tile (%d,%d) id %d out of range", x, y, v)
			}
			ids = append(ids, physics.TileID(v))
		}
	}

	grid, err := physics.NewGrid(l.Width, l.Height, subpixel.FromPixels(l.TileSize), ids, set)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
	}

	st := &Stage{Name: l.Name, Grid: grid}
	hasPlayer := false
	for i, ent := range l.Entities {
		pos := physics.Vec{X: subpixel.FromPixels(ent.X), Y: subpixel.FromPixels(ent.Y)}
		switch ent.Type {
		case EntityPlayer:
			st.PlayerSpawn = pos
			hasPlayer = true
		case EntityEnemy:
			arch := ent.Props["archetype"]
			if arch == "" {
				return nil, fmt.Errorf("levels: entity %d: enemy without archetype", i)
			}
			st.Enemies = append(st.Enemies, EnemySpawn{Archetype: arch, Pos: pos})
		case EntityPickup:
			mode, err := locomotion.ParseMode(ent.Props["mode"])
			if err != nil || mode == locomotion.Normal {
				return nil, fmt.Errorf("levels: entity %d: bad pickup mode %q", i, ent.Props["mode"])
			}
			st.Pickups = append(st.Pickups, PickupSpawn{Mode: mode, Pos: pos})
		default:
			return nil, fmt.Errorf("levels: entity %d: unknown type %q", i, ent.Type)
		}
	}
	if !hasPlayer {
		return nil, ErrNoPlayerSpawn
	}
	return st, nil
}

// LoadStage loads and builds a level in one step.
func LoadStage(name string) (*Stage, error) {
	lvl, err := Load(name)
	if err != nil {
		return nil, err
	}
	return lvl.Build()
}
