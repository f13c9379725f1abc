package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

func TestSandboxBuilds(t *testing.T) {
	lvl, err := LoadLevelFromFS("sandbox.json")
	require.NoError(t, err)

	st, err := lvl.Build()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", st.Name)
	assert.Equal(t, 40, st.Grid.Width())
	assert.Equal(t, 15, st.Grid.Height())
	assert.Equal(t, subpixel.FromPixels(16), st.Grid.TileSize())
	assert.Equal(t, physics.Vec{X: subpixel.FromPixels(32), Y: subpixel.FromPixels(208)}, st.PlayerSpawn)
	assert.True(t, st.Grid.At(5, 14).Solid)
	assert.True(t, st.Grid.At(10, 10).SemiSolid)
	assert.Equal(t, 1, st.Grid.At(31, 13).Hazard)
	require.Len(t, st.Pickups, 2)
	assert.Equal(t, locomotion.Pogo, st.Pickups[0].Mode)
	require.Len(t, st.Enemies, 2)
	assert.Equal(t, "walker", st.Enemies[0].Archetype)
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero size", `{"width":0,"height":1,"tile_size":16,"tiles":[[]]}`},
		{"row count", `{"width":1,"height":2,"tile_size":16,"tiles":[[0]],"entities":[{"type":"player"}]}`},
		{"row width", `{"width":2,"height":1,"tile_size":16,"tiles":[[0]],"entities":[{"type":"player"}]}`},
		{"no player", `{"width":1,"height":1,"tile_size":16,"tiles":[[0]]}`},
		{"bad tileset key", `{"width":1,"height":1,"tile_size":16,"tileset":{"x":{}},"tiles":[[0]]}`},
		{"bad pickup", `{"width":1,"height":1,"tile_size":16,"tiles":[[0]],"entities":[{"type":"player"},{"type":"pickup","props":{"mode":"normal"}}]}`},
		{"enemy without archetype", `{"width":1,"height":1,"tile_size":16,"tiles":[[0]],"entities":[{"type":"player"},{"type":"enemy"}]}`},
		{"unknown entity", `{"width":1,"height":1,"tile_size":16,"tiles":[[0]],"entities":[{"type":"door"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = lvl.Build()
			assert.Error(t, err)
		})
	}
}

func TestBuildSentinels(t *testing.T) {
	lvl, err := Parse([]byte(`{"width":1,"height":1,"tile_size":16,"tiles":[[0]]}`))
	require.NoError(t, err)
	_, err = lvl.Build()
	assert.ErrorIs(t, err, ErrNoPlayerSpawn)

	lvl, err = Parse([]byte(`{"width":-1,"height":1,"tile_size":16}`))
	require.NoError(t, err)
	_, err = lvl.Build()
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}
