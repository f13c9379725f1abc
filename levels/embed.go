package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/illdynamics/qommandah-qeen/physics"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the on-disk JSON form. Tile rows are listed top to bottom; entity
// positions are in pixels, top-left of the spawned body.
type Level struct {
	Name     string                       `json:"name"`
	TileSize int                          `json:"tile_size"`
	Width    int                          `json:"width"`
	Height   int                          `json:"height"`
	Tileset  map[string]physics.TileProps `json:"tileset"`
	Tiles    [][]int                      `json:"tiles"`
	Entities []Entity                     `json:"entities,omitempty"`
}

type Entity struct {
	Type  string            `json:"type"`
	X     int               `json:"x"`
	Y     int               `json:"y"`
	Props map[string]string `json:"props,omitempty"`
}

// LoadLevelFromFS reads a level from the embedded set.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Load prefers a file under levels/ on disk so edited levels can be tried
// without a rebuild, and falls back to the embedded copy.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(filepath.Join("levels", filepath.Base(name))); err == nil {
		return Parse(data)
	}
	return LoadLevelFromFS(name)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	return &lvl, nil
}
