package desktop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/geologgia/digging/internal/game"
)

var (
	colorBackground = color.RGBA{R: 26, G: 18, B: 12, A: 255}
	colorTunnel     = color.RGBA{A: 255}
	colorDirtTop    = color.RGBA{R: 0x65, G: 0x43, B: 0x21, A: 255}
	colorDirtBottom = color.RGBA{R: 0x4a, G: 0x33, B: 0x19, A: 255}
	colorSpeck      = color.RGBA{A: 51}
	colorCellEdge   = color.RGBA{A: 26}
	colorText       = color.RGBA{R: 240, G: 230, B: 210, A: 255}
	colorAccent     = color.RGBA{R: 255, G: 204, B: 0, A: 255}
)

var mineralColors = map[game.MineralKind]color.RGBA{
	game.Copper:    {R: 0xb8, G: 0x73, B: 0x33, A: 255},
	game.Gold:      {R: 0xff, G: 0xd7, B: 0x00, A: 255},
	game.RareEarth: {R: 0x00, G: 0xff, B: 0xff, A: 255},
}

var enemyColors = map[game.EnemyKind]color.RGBA{
	game.RockMonster:  {R: 0x8b, G: 0x45, B: 0x13, A: 255},
	game.LavaCreature: {R: 0xff, G: 0x45, B: 0x00, A: 255},
}

// fontAscent places basicfont text by its top edge instead of the baseline.
const fontAscent = 11

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, int(x), int(y)+fontAscent, clr)
}

// textWidth is the advance of s in the HUD font.
func textWidth(s string) int {
	return text.BoundString(basicfont.Face7x13, s).Dx()
}

func drawTextCentered(dst *ebiten.Image, s string, cx, y float64, clr color.Color) {
	drawText(dst, s, cx-float64(textWidth(s))/2, y, clr)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// Components are premultiplied.
	f := float64(a) / 255
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: a}
}

// speck returns a stable pseudo-random offset in [0,n) for a cell, so the
// dirt texture does not shimmer between frames.
func speck(col, row, i, n int) float32 {
	h := uint32(col*73856093) ^ uint32(row*19349663) ^ uint32(i*83492791)
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float32(h % uint32(n))
}

func (a *App) drawField(screen *ebiten.Image, f game.Frame) {
	ox, oy := float32(a.lay.fieldX), float32(a.lay.fieldY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(a.lay.fieldW)+2, float32(a.lay.fieldH)+2, 2, color.RGBA{R: 110, G: 80, B: 50, A: 255}, false)

	buried := make(map[[2]int]game.Mineral, len(f.Minerals))
	for _, m := range f.Minerals {
		buried[[2]int{m.X, m.Y}] = m
	}

	const cs = float32(cellSize)
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			x, y := a.lay.cellOrigin(col, row)
			if f.IsDug(col, row) {
				vector.FillRect(screen, x, y, cs, cs, colorTunnel, false)
			} else {
				vector.FillRect(screen, x, y, cs, cs/2, colorDirtTop, false)
				vector.FillRect(screen, x, y+cs/2, cs, cs/2, colorDirtBottom, false)
				for i := 0; i < 3; i++ {
					vector.FillRect(screen, x+speck(col, row, i, cellSize-2), y+speck(row, col, i, cellSize-2), 2, 2, colorSpeck, false)
				}
			}
			vector.StrokeRect(screen, x, y, cs, cs, 1, colorCellEdge, false)
			if m, ok := buried[[2]int{col, row}]; ok {
				a.drawMineral(screen, m, x+cs/2, y+cs/2, f.IsDug(col, row))
			}
		}
	}
}

// drawMineral draws an uncollected ore: a faint glint through the dirt, or a
// full pulsing gem when exposed.
func (a *App) drawMineral(screen *ebiten.Image, m game.Mineral, cx, cy float32, exposed bool) {
	c := mineralColors[m.Kind]
	if !exposed {
		vector.FillCircle(screen, cx, cy, cellSize*0.35, withAlpha(c, 64), true)
		vector.FillCircle(screen, cx, cy, cellSize*0.12, c, true)
		return
	}
	pulse := float32(1 + 0.1*math.Sin(float64(a.frames)/8))
	vector.FillCircle(screen, cx, cy, cellSize*0.5*pulse, withAlpha(c, 90), true)
	vector.FillCircle(screen, cx, cy, cellSize*0.25, c, true)
	vector.StrokeCircle(screen, cx, cy, cellSize*0.25, 1, color.White, true)
}

func (a *App) drawPlayer(screen *ebiten.Image, p game.PlayerView) {
	x, y := a.lay.cellOrigin(p.X, p.Y)
	const k = float32(cellSize) / 32
	cx, cy := x+cellSize/2, y+cellSize/2
	rect := func(dx, dy, w, h float32, c color.Color) {
		vector.FillRect(screen, cx+dx*k, cy+dy*k, w*k, h*k, c, false)
	}

	legs := color.RGBA{R: 0x2c, G: 0x5a, B: 0xa0, A: 255}
	suit := color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 255}
	rect(-6, 4, 4, 8, legs)
	rect(2, 4, 4, 8, legs)
	rect(-8, -6, 16, 12, suit)
	switch p.Facing {
	case game.Left:
		rect(-12, -4, 6, 4, suit)
		rect(6, -2, 4, 4, suit)
	case game.Right:
		rect(-10, -2, 4, 4, suit)
		rect(6, -4, 6, 4, suit)
	default:
		rect(-10, -2, 4, 4, suit)
		rect(6, -2, 4, 4, suit)
	}

	vector.FillCircle(screen, cx, cy-12*k, 7*k, colorAccent, true)
	rect(-5, -14, 10, 4, color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 255})
	vector.FillCircle(screen, cx, cy-18*k, 2*k, color.White, true)

	if !p.Drilling && p.Facing == game.Down {
		return
	}
	// Drill body, then the glowing tip while drilling.
	var bx, by, bw, bh float32
	var tip [3][2]float32
	switch p.Facing {
	case game.Up:
		bx, by, bw, bh = -2, -22, 4, 8
		tip = [3][2]float32{{0, -24}, {-3, -22}, {3, -22}}
	case game.Down:
		bx, by, bw, bh = -2, 12, 4, 8
		tip = [3][2]float32{{0, 22}, {-3, 20}, {3, 20}}
	case game.Left:
		bx, by, bw, bh = -18, -2, 8, 4
		tip = [3][2]float32{{-20, 0}, {-18, -3}, {-18, 3}}
	case game.Right:
		bx, by, bw, bh = 10, -2, 8, 4
		tip = [3][2]float32{{20, 0}, {18, -3}, {18, 3}}
	}
	rect(bx, by, bw, bh, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255})
	vector.StrokeRect(screen, cx+bx*k, cy+by*k, bw*k, bh*k, 1, color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}, false)
	if !p.Drilling {
		return
	}
	var path vector.Path
	path.MoveTo(cx+tip[0][0]*k, cy+tip[0][1]*k)
	path.LineTo(cx+tip[1][0]*k, cy+tip[1][1]*k)
	path.LineTo(cx+tip[2][0]*k, cy+tip[2][1]*k)
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(color.RGBA{R: 0xff, G: 0x66, B: 0x00, A: 255})
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func (a *App) drawEnemy(screen *ebiten.Image, e game.EnemyView) {
	x, y := a.lay.cellOrigin(e.X, e.Y)
	cx, cy := x+cellSize/2, y+cellSize/2
	c := enemyColors[e.Kind]
	const k = float32(cellSize) / 32

	if e.Exploding {
		r := float32(e.ExplosionFrame) / 10 * cellSize
		vector.FillCircle(screen, cx, cy, r, withAlpha(c, 128), true)
		for i := 0; i < 8; i++ {
			angle := float64(i) / 8 * 2 * math.Pi
			dist := float64(e.ExplosionFrame) * 2 * float64(k)
			px := cx + float32(math.Cos(angle)*dist)
			py := cy + float32(math.Sin(angle)*dist)
			vector.FillRect(screen, px-2, py-2, 4, 4, c, false)
		}
		return
	}

	size := cellSize * 0.7 * (1 + float32(e.InflateLevel)*0.3)
	vector.FillCircle(screen, cx, cy, size/2, c, true)
	if e.InflateLevel > 0 {
		vector.StrokeCircle(screen, cx, cy, size/2, 2, color.White, true)
	}

	eye := (5 + float32(e.InflateLevel)*2) * k
	for _, ex := range []float32{cx - eye, cx + eye} {
		vector.FillCircle(screen, ex, cy-3*k, 3*k, color.White, true)
		vector.FillCircle(screen, ex, cy-3*k, 1.5*k, color.Black, true)
	}

	if e.InflateLevel > 0 {
		r := (4 + float32(e.InflateLevel)) * k
		var path vector.Path
		path.Arc(cx, cy+3*k, r, 0, math.Pi, vector.Clockwise)
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(color.Black)
		vector.StrokePath(screen, &path, &vector.StrokeOptions{Width: 2}, op)
	}
}

func (a *App) drawControls(screen *ebiten.Image) {
	fill := color.RGBA{R: 60, G: 44, B: 30, A: 220}
	edge := color.RGBA{R: 140, G: 100, B: 60, A: 255}
	held := a.heldDirs()
	for d, b := range a.lay.pad {
		c := fill
		if held[game.Direction(d)] {
			c = color.RGBA{R: 120, G: 88, B: 50, A: 240}
		}
		vector.FillRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), c, false)
		vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, edge, false)
		bx, by := b.center()
		drawTextCentered(screen, arrowLabels[d], float64(bx), float64(by)-6, colorText)
	}
	dx, dy := a.lay.drill.center()
	vector.FillCircle(screen, dx, dy, drillRadius, color.RGBA{R: 200, G: 90, B: 0, A: 230}, true)
	vector.StrokeCircle(screen, dx, dy, drillRadius, 3, colorAccent, true)
	drawTextCentered(screen, "DRILL", float64(dx), float64(dy)-6, colorText)
}

var arrowLabels = [4]string{"^", "v", "<", ">"}
