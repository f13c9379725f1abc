package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illdynamics/qommandah-qeen/subpixel"
)

const (
	tileEmpty TileID = iota
	tileWall
	tileLedge
	tileSpikes
)

var testTiles = Tileset{
	tileWall:   {Solid: true},
	tileLedge:  {SemiSolid: true},
	tileSpikes: {Hazard: 2},
}

var tilePx = subpixel.FromPixels(16)

// gridFrom builds a grid from rows of '.', '#', '-' and '^'.
func gridFrom(t *testing.T, rows ...string) *Grid {
	t.Helper()
	ids := make([]TileID, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		require.Len(t, row, len(rows[0]))
		for _, c := range row {
			switch c {
			case '#':
				ids = append(ids, tileWall)
			case '-':
				ids = append(ids, tileLedge)
			case '^':
				ids = append(ids, tileSpikes)
			default:
				ids = append(ids, tileEmpty)
			}
		}
	}
	g, err := NewGrid(len(rows[0]), len(rows), tilePx, ids, testTiles)
	require.NoError(t, err)
	return g
}

func TestNewGridRejectsBadSize(t *testing.T) {
	_, err := NewGrid(2, 2, tilePx, []TileID{0, 0, 0}, testTiles)
	assert.ErrorIs(t, err, ErrGridSize)

	_, err = NewGrid(0, 2, tilePx, nil, testTiles)
	assert.Error(t, err)
}

func TestRestingBodyStaysOnFloor(t *testing.T) {
	g := gridFrom(t,
		"....",
		"....",
		"....",
		"####",
	)
	h := subpixel.FromPixels(16)
	b := NewBody(Vec{X: tilePx, Y: g.Edge(3) - h}, subpixel.FromPixels(12), h)
	b.OnGround = true

	out := Step(g, b, DefaultParams(), Drive{})

	assert.Equal(t, subpixel.Units(40), out.Integrated.Y)
	assert.Equal(t, g.Edge(3)-h, b.Pos.Y)
	assert.Equal(t, subpixel.Units(0), b.Vel.Y)
	assert.True(t, b.OnGround)
	assert.True(t, out.Contacts.Bottom)
	assert.False(t, out.Landed)
}

func TestWallStopsHorizontalOnly(t *testing.T) {
	g := gridFrom(t,
		"....#.",
		"....#.",
		"....#.",
		"....#.",
		"....#.",
		"######",
	)
	w := subpixel.FromPixels(12)
	b := NewBody(Vec{X: g.Edge(4) - w - 50, Y: g.Edge(1)}, w, subpixel.FromPixels(16))
	b.Vel = Vec{X: 100, Y: 30}

	res := Resolve(g, b, b.Pos.Add(b.Vel))

	assert.True(t, res.Contacts.Right)
	assert.False(t, res.Contacts.Left)
	assert.Equal(t, subpixel.Units(0), res.Vel.X)
	assert.Equal(t, g.Edge(4)-w, res.Pos.X)
	assert.Equal(t, subpixel.Units(30), res.Vel.Y)
	assert.Equal(t, b.Pos.Y+30, res.Pos.Y)
	assert.False(t, res.OnGround)
}

func TestDiagonalIntoTileCorner(t *testing.T) {
	rows := []string{
		"........",
		"........",
		"........",
		"........",
		"....#...",
		"........",
		"........",
		"########",
	}
	w, h := subpixel.FromPixels(12), subpixel.FromPixels(16)

	t.Run("corners touching", func(t *testing.T) {
		g := gridFrom(t, rows...)
		// Bottom-right corner of the body sits on the top-left corner of (4,4).
		b := NewBody(Vec{X: g.Edge(4) - w, Y: g.Edge(4) - h}, w, h)
		b.Vel = Vec{X: 100, Y: 100}

		res := Resolve(g, b, b.Pos.Add(b.Vel))

		assert.False(t, res.Contacts.Right, "no wall in the rows the body occupies")
		assert.Equal(t, b.Pos.X+100, res.Pos.X)
		assert.True(t, res.Contacts.Bottom)
		assert.True(t, res.OnGround)
		assert.Equal(t, g.Edge(4)-h, res.Pos.Y)
		assert.Equal(t, subpixel.Units(0), res.Vel.Y)
	})

	t.Run("corner overlapping the tile row", func(t *testing.T) {
		g := gridFrom(t, rows...)
		b := NewBody(Vec{X: g.Edge(4) - w, Y: g.Edge(4) - h + 1}, w, h)
		b.Vel = Vec{X: 100, Y: 100}

		res := Resolve(g, b, b.Pos.Add(b.Vel))

		assert.True(t, res.Contacts.Right)
		assert.Equal(t, g.Edge(4)-w, res.Pos.X)
		assert.Equal(t, subpixel.Units(0), res.Vel.X)
		assert.False(t, res.Contacts.Bottom)
		assert.Equal(t, b.Pos.Y+100, res.Pos.Y)
		assert.Equal(t, subpixel.Units(100), res.Vel.Y)
	})
}

func TestWallOnLeft(t *testing.T) {
	g := gridFrom(t,
		"#....",
		"#....",
		"#####",
	)
	b := NewBody(Vec{X: g.Edge(1) + 20, Y: g.Edge(1)}, subpixel.FromPixels(8), subpixel.FromPixels(16))
	b.Vel = Vec{X: -300}

	res := Resolve(g, b, b.Pos.Add(b.Vel))

	assert.True(t, res.Contacts.Left)
	assert.Equal(t, g.Edge(1), res.Pos.X)
	assert.Equal(t, subpixel.Units(0), res.Vel.X)
}

func TestCeilingStopsRise(t *testing.T) {
	g := gridFrom(t,
		"####",
		"....",
		"....",
		"####",
	)
	b := NewBody(Vec{X: tilePx, Y: g.Edge(1) + 10}, subpixel.FromPixels(12), subpixel.FromPixels(16))
	b.Vel = Vec{Y: -400}

	res := Resolve(g, b, b.Pos.Add(b.Vel))

	assert.True(t, res.Contacts.Top)
	assert.Equal(t, g.Edge(1), res.Pos.Y)
	assert.Equal(t, subpixel.Units(0), res.Vel.Y)
}

func TestResolveIsIdempotent(t *testing.T) {
	g := gridFrom(t,
		"......",
		"...#..",
		"......",
		"######",
	)
	b := NewBody(Vec{X: tilePx, Y: g.Edge(1)}, subpixel.FromPixels(12), subpixel.FromPixels(16))
	b.Vel = Vec{X: 900, Y: 700}

	first := Resolve(g, b, b.Pos.Add(b.Vel))
	settled := *b
	settled.Pos = first.Pos
	settled.Vel = first.Vel
	second := Resolve(g, &settled, first.Pos)

	assert.Equal(t, first.Pos, second.Pos)
	assert.False(t, g.SolidOverlap(AABB{X: first.Pos.X, Y: first.Pos.Y, W: b.W, H: b.H}))
}

func TestFreeFlightMovesByVelocity(t *testing.T) {
	g := gridFrom(t,
		"........",
		"........",
		"........",
		"........",
		"########",
	)
	b := NewBody(Vec{X: g.Edge(2), Y: g.Edge(0) + 64}, subpixel.FromPixels(12), subpixel.FromPixels(16))
	b.Vel = Vec{X: 200, Y: -100}
	before := b.Pos

	out := Step(g, b, DefaultParams(), Drive{MoveAxis: 1})

	assert.False(t, out.Contacts.Any())
	assert.Equal(t, b.Vel, b.Pos.Sub(before))
	assert.Equal(t, out.Integrated, b.Vel)
}

func TestSemiSolidBlocksOnlyFromAbove(t *testing.T) {
	g := gridFrom(t,
		"....",
		"....",
		"----",
		"....",
		"####",
	)
	h := subpixel.FromPixels(16)

	t.Run("lands from above", func(t *testing.T) {
		b := NewBody(Vec{X: tilePx, Y: g.Edge(2) - h - 10}, subpixel.FromPixels(12), h)
		b.Vel = Vec{Y: 200}
		res := Resolve(g, b, b.Pos.Add(b.Vel))
		assert.True(t, res.OnGround)
		assert.Equal(t, g.Edge(2)-h, res.Pos.Y)
	})

	t.Run("passes through from below", func(t *testing.T) {
		b := NewBody(Vec{X: tilePx, Y: g.Edge(3)}, subpixel.FromPixels(12), h)
		b.Vel = Vec{Y: -600}
		res := Resolve(g, b, b.Pos.Add(b.Vel))
		assert.False(t, res.Contacts.Top)
		assert.Equal(t, g.Edge(3)-600, res.Pos.Y)
	})

	t.Run("no side contact", func(t *testing.T) {
		b := NewBody(Vec{X: tilePx, Y: g.Edge(2)}, subpixel.FromPixels(12), h)
		b.Vel = Vec{X: 3000}
		res := Resolve(g, b, b.Pos.Add(b.Vel))
		assert.False(t, res.Contacts.Right)
	})

	t.Run("standing on it stays grounded", func(t *testing.T) {
		b := NewBody(Vec{X: tilePx, Y: g.Edge(2) - h}, subpixel.FromPixels(12), h)
		res := Resolve(g, b, b.Pos)
		assert.True(t, res.OnGround)
	})
}

func TestOutOfBoundsIsSolid(t *testing.T) {
	g := gridFrom(t,
		"...",
		"...",
	)
	h := subpixel.FromPixels(8)
	b := NewBody(Vec{X: 30, Y: g.Edge(2) - h - 5}, subpixel.FromPixels(8), h)
	b.Vel = Vec{X: -500, Y: 900}

	res := Resolve(g, b, b.Pos.Add(b.Vel))

	assert.True(t, res.Contacts.Left)
	assert.True(t, res.OnGround)
	assert.Equal(t, Vec{X: 0, Y: g.Edge(2) - h}, res.Pos)
	assert.Equal(t, Vec{}, res.Vel)
}

func TestHazardContact(t *testing.T) {
	g := gridFrom(t,
		"....",
		".^..",
		"####",
	)
	h := subpixel.FromPixels(16)
	b := NewBody(Vec{X: tilePx + 10, Y: g.Edge(1)}, subpixel.FromPixels(12), h)

	res := Resolve(g, b, b.Pos)

	assert.Equal(t, 2, res.Contacts.Hazard)
	assert.True(t, res.OnGround)
}

func TestStepReportsLanding(t *testing.T) {
	g := gridFrom(t,
		"....",
		"....",
		"####",
	)
	h := subpixel.FromPixels(16)
	b := NewBody(Vec{X: tilePx, Y: g.Edge(2) - h - 20}, subpixel.FromPixels(12), h)
	b.Vel = Vec{Y: 100}

	out := Step(g, b, DefaultParams(), Drive{})

	assert.True(t, out.Landed)
	assert.Equal(t, subpixel.Units(140), out.Integrated.Y)
	assert.Equal(t, subpixel.Units(0), b.Vel.Y)
}

func TestIntegrateLaunchSkipsGravity(t *testing.T) {
	b := NewBody(Vec{}, 1, 1)
	b.Vel = Vec{Y: 500}
	p := DefaultParams()

	Integrate(b, p, Drive{Launch: true, LaunchVY: -900})
	assert.Equal(t, subpixel.Units(-900), b.Vel.Y)

	Integrate(b, p, Drive{Launch: true, LaunchVY: -99999})
	assert.Equal(t, -p.TerminalUp, b.Vel.Y)
}

func TestIntegrateClampsFall(t *testing.T) {
	b := NewBody(Vec{}, 1, 1)
	b.Vel = Vec{Y: 1530}
	p := DefaultParams()

	Integrate(b, p, Drive{})

	assert.Equal(t, p.TerminalDown, b.Vel.Y)
}

func TestIntegrateHorizontal(t *testing.T) {
	p := DefaultParams()
	b := NewBody(Vec{}, 1, 1)

	Integrate(b, p, Drive{MoveAxis: 1})
	assert.Equal(t, p.Accel, b.Vel.X)

	b.Vel.X = 30
	Integrate(b, p, Drive{})
	assert.Equal(t, subpixel.Units(0), b.Vel.X)

	Integrate(b, p, Drive{Shove: true, ShoveVX: -333})
	assert.Equal(t, subpixel.Units(-333), b.Vel.X)

	b.Vel.X = p.MaxRunSpeed
	Integrate(b, p, Drive{MoveAxis: 5})
	assert.Equal(t, p.MaxRunSpeed, b.Vel.X)
}

func TestSteeringDrive(t *testing.T) {
	b := NewBody(Vec{}, 1, 1)
	s := SteerFunc(func(v View) Steering {
		return Steering{MoveAxis: -3, Jump: true}
	}).Steer(View{})

	d := s.Drive(b, 700)
	assert.Equal(t, -1, d.MoveAxis)
	assert.False(t, d.Launch)

	b.OnGround = true
	d = s.Drive(b, 700)
	assert.True(t, d.Launch)
	assert.Equal(t, subpixel.Units(-700), d.LaunchVY)
}
