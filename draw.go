package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/illdynamics/qommandah-qeen/common"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/render"
	"github.com/illdynamics/qommandah-qeen/sim"
)

var modeColors = map[string]color.Color{
	"normal":  colornames.White,
	"pogo":    colornames.Gold,
	"jetpack": colornames.Deepskyblue,
}

func (g *Game) drawTiles(screen *ebiten.Image, flip bool) {
	grid := g.sim.Stage().Grid
	size := render.Pixels(grid.TileSize())

	x0 := max(int(g.camera.Pos.X/size), 0)
	y0 := max(int(g.camera.Pos.Y/size), 0)
	x1 := min(int((g.camera.Pos.X+common.BaseWidth)/size)+1, grid.Width()-1)
	y1 := min(int((g.camera.Pos.Y+common.BaseHeight)/size)+1, grid.Height()-1)

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			p := grid.At(tx, ty)
			if !p.Solid && !p.SemiSolid && p.Hazard == 0 {
				continue
			}
			bb := cp.BB{L: float64(tx) * size, B: float64(ty) * size, R: float64(tx+1) * size, T: float64(ty+1) * size}
			switch {
			case p.Solid:
				g.fill(screen, bb, colornames.Slategray, flip)
			case p.SemiSolid:
				bb.T = bb.B + 3
				g.fill(screen, bb, colornames.Lightsteelblue, flip)
			default:
				bb.B = bb.T - size/2
				g.fill(screen, bb, colornames.Crimson, flip)
			}
		}
	}
}

func (g *Game) drawEntities(screen *ebiten.Image, snap sim.Snapshot, flip bool) {
	alpha := g.stepper.Alpha()

	for _, pk := range snap.Pickups {
		if !pk.Available {
			continue
		}
		g.fill(screen, pickupBox(pk), modeColors[pk.Mode], flip)
	}

	for _, e := range snap.Enemies {
		g.fill(screen, render.Interpolate(e.Prev.Snapshot(), e.Body.Snapshot(), alpha), colornames.Orangered, flip)
	}

	c := modeColors[snap.Player.Mode]
	if c == nil {
		c = colornames.White
	}
	// Blink while invulnerable.
	if snap.Player.Invulnerable > 0 && (snap.Player.Invulnerable/4)%2 == 0 {
		return
	}
	if snap.Player.Dead {
		c = colornames.Dimgray
	}
	g.fill(screen, render.Interpolate(snap.Player.Prev.Snapshot(), snap.Player.Body.Snapshot(), alpha), c, flip)
}

func (g *Game) fill(screen *ebiten.Image, world cp.BB, c color.Color, flip bool) {
	bb := g.camera.ToScreen(world)
	if flip {
		bb = render.Mirror(bb, common.BaseWidth)
	}
	vector.FillRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), c, false)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	p := snap.Player
	lines := []string{
		fmt.Sprintf("tick %d  %s/%s  hp %d/%d", snap.Tick, p.Mode, p.SubState, p.HP, p.MaxHP),
	}
	if p.HasFuel {
		lines = append(lines, fmt.Sprintf("fuel %3d%% %s", p.FuelPercent, fuelBar(p.FuelPercent)))
		if p.DashReady {
			lines = append(lines, "dash ready")
		}
	}
	if len(snap.Hooks) > 0 {
		lines = append(lines, "hooks "+strings.Join(snap.Hooks, ", "))
	}
	if p.Dead {
		lines = append(lines, "dead - F1 to respawn")
	}
	if g.opts.Debug {
		lines = append(lines,
			fmt.Sprintf("pos %d,%d vel %d,%d int %d,%d", p.Body.Pos.X, p.Body.Pos.Y, p.Body.Vel.X, p.Body.Vel.Y, p.Integrated.X, p.Integrated.Y),
			fmt.Sprintf("contacts %+v  checksum %016x  fps %.1f", p.Contacts, sim.Checksum(snap), ebiten.ActualFPS()),
		)
	}
	if s := g.statusLine(); s != "" {
		lines = append(lines, s)
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 6, 4)
}

func fuelBar(pct int) string {
	n := min(max(pct/10, 0), 10)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", 10-n) + "]"
}

func pickupBox(pk sim.PickupView) cp.BB {
	b := pk.Bounds
	return render.Box(physics.BodySnapshot{Pos: physics.Vec{X: b.X, Y: b.Y}, W: b.W, H: b.H})
}
