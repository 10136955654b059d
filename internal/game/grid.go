package game

import "math/rand"

// Cell represents one tile of the dig site.
type Cell struct {
	Dug bool
}

// Grid is the authoritative per-cell dig state plus the minerals buried in it.
type Grid struct {
	Cols  int
	Rows  int
	cells []Cell // row-major: index = row*Cols + col

	minerals []Mineral
	byCell   map[int]int // cell index → index into minerals

	audio AudioSink
}

// NewGrid creates a grid with row 0 pre-dug and minerals sampled from cfg.
func NewGrid(cfg Config, rng *rand.Rand, audio AudioSink) *Grid {
	g := newEmptyGrid(cfg.Cols, cfg.Rows, audio)
	g.generateMinerals(rng, cfg.Minerals, cfg.FirstMineralRow)
	return g
}

// newEmptyGrid creates a grid with the spawn row dug and no minerals.
func newEmptyGrid(cols, rows int, audio AudioSink) *Grid {
	if audio == nil {
		audio = NopAudio{}
	}
	g := &Grid{
		Cols:   cols,
		Rows:   rows,
		cells:  make([]Cell, cols*rows),
		byCell: make(map[int]int),
		audio:  audio,
	}
	for col := 0; col < cols; col++ {
		g.cells[col].Dug = true
	}
	return g
}

func (g *Grid) generateMinerals(rng *rand.Rand, table []MineralSpec, firstRow int) {
	for row := firstRow; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			spec, ok := sampleMineral(rng, table)
			if !ok {
				continue
			}
			g.placeMineral(col, row, spec)
		}
	}
}

// placeMineral buries a mineral at (col, row). It refuses out-of-bounds cells
// and cells that already hold one.
func (g *Grid) placeMineral(col, row int, spec MineralSpec) bool {
	if !g.InBounds(col, row) {
		return false
	}
	idx := row*g.Cols + col
	if _, taken := g.byCell[idx]; taken {
		return false
	}
	g.byCell[idx] = len(g.minerals)
	g.minerals = append(g.minerals, newMineral(col, row, spec))
	return true
}

// InBounds returns true if (col, row) lies on the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Tile returns the cell at (col, row), or false if out of bounds.
func (g *Grid) Tile(col, row int) (Cell, bool) {
	if !g.InBounds(col, row) {
		return Cell{}, false
	}
	return g.cells[row*g.Cols+col], true
}

// IsDug reports whether (col, row) is an in-bounds tunnel.
func (g *Grid) IsDug(col, row int) bool {
	c, ok := g.Tile(col, row)
	return ok && c.Dug
}

// DigTile clears (col, row). Out-of-bounds or already-dug cells are ignored.
// When an uncollected mineral was buried there it is marked collected and a
// copy is returned.
func (g *Grid) DigTile(col, row int) (Mineral, bool) {
	if !g.InBounds(col, row) {
		return Mineral{}, false
	}
	idx := row*g.Cols + col
	if g.cells[idx].Dug {
		return Mineral{}, false
	}
	g.cells[idx].Dug = true
	g.audio.OnDig()

	mi, ok := g.byCell[idx]
	if !ok || g.minerals[mi].Collected {
		return Mineral{}, false
	}
	g.minerals[mi].Collected = true
	return g.minerals[mi], true
}

// MineralAt returns the mineral buried at (col, row), collected or not.
func (g *Grid) MineralAt(col, row int) (Mineral, bool) {
	if !g.InBounds(col, row) {
		return Mineral{}, false
	}
	mi, ok := g.byCell[row*g.Cols+col]
	if !ok {
		return Mineral{}, false
	}
	return g.minerals[mi], true
}

// Minerals returns a copy of every mineral generated for this grid.
func (g *Grid) Minerals() []Mineral {
	out := make([]Mineral, len(g.minerals))
	copy(out, g.minerals)
	return out
}

// Remaining is the number of minerals not yet collected.
func (g *Grid) Remaining() int {
	n := 0
	for _, m := range g.minerals {
		if !m.Collected {
			n++
		}
	}
	return n
}

// AllCollected is the level-complete predicate. A grid without minerals is
// complete from the start.
func (g *Grid) AllCollected() bool {
	for _, m := range g.minerals {
		if !m.Collected {
			return false
		}
	}
	return true
}

// dugMask returns a copy of the dig state, row-major.
func (g *Grid) dugMask() []bool {
	out := make([]bool, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Dug
	}
	return out
}
