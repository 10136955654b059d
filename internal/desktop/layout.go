package desktop

import "github.com/geologgia/digging/internal/game"

// borderWidth is the pixel gap between the window edge and the playfield.
const borderWidth = 24

const (
	cellSize       = 40
	hudHeight      = 48
	controlsHeight = 200
	padButton      = 56
	drillRadius    = 52
)

// button is an axis-aligned touch target in screen pixels.
type button struct {
	x, y, w, h int
}

func (b button) contains(px, py int) bool {
	return px >= b.x && px < b.x+b.w && py >= b.y && py < b.y+b.h
}

func (b button) center() (float32, float32) {
	return float32(b.x) + float32(b.w)/2, float32(b.y) + float32(b.h)/2
}

// control is what a pointer landed on.
type control struct {
	drill bool
	dir   game.Direction
}

// layout is the window geometry for a given grid size.
type layout struct {
	fieldX, fieldY int
	fieldW, fieldH int
	width, height  int

	pad   [4]button // indexed by game.Direction
	drill button
}

func newLayout(cols, rows int) layout {
	l := layout{
		fieldX: borderWidth,
		fieldY: borderWidth + hudHeight,
		fieldW: cols * cellSize,
		fieldH: rows * cellSize,
	}
	l.width = borderWidth + l.fieldW + borderWidth + feedPanelWidth
	l.height = l.fieldY + l.fieldH + controlsHeight

	cy := l.fieldY + l.fieldH + controlsHeight/2
	cx := l.fieldX + l.fieldW/4
	half := padButton / 2
	l.pad[game.Up] = button{cx - half, cy - half - padButton, padButton, padButton}
	l.pad[game.Down] = button{cx - half, cy + half, padButton, padButton}
	l.pad[game.Left] = button{cx - half - padButton, cy - half, padButton, padButton}
	l.pad[game.Right] = button{cx + half, cy - half, padButton, padButton}

	dx := l.fieldX + 3*l.fieldW/4
	l.drill = button{dx - drillRadius, cy - drillRadius, 2 * drillRadius, 2 * drillRadius}
	return l
}

// cellOrigin is the top-left pixel of a grid cell.
func (l layout) cellOrigin(col, row int) (float32, float32) {
	return float32(l.fieldX + col*cellSize), float32(l.fieldY + row*cellSize)
}

// hit maps a pointer position to the touch control under it.
func (l layout) hit(px, py int) (control, bool) {
	if l.drill.contains(px, py) {
		return control{drill: true}, true
	}
	for d, b := range l.pad {
		if b.contains(px, py) {
			return control{dir: game.Direction(d)}, true
		}
	}
	return control{}, false
}

// feedX is where the event panel starts.
func (l layout) feedX() int {
	return l.fieldX + l.fieldW + borderWidth
}
