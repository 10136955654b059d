package game

import "fmt"

// Direction is a facing / intent direction.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "?"
	}
}

// Delta returns the unit cell offset for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// directionOf maps a unit offset back to a Direction.
func directionOf(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == -1:
		return Up, true
	case dx == 0 && dy == 1:
		return Down, true
	case dx == -1 && dy == 0:
		return Left, true
	case dx == 1 && dy == 0:
		return Right, true
	}
	return 0, false
}

// Player is the miner. Position is always cell-aligned.
type Player struct {
	X, Y     int
	Facing   Direction
	Drilling bool // presentation only

	drillFlash *Timer
	sim        *Sim
}

func newPlayer(s *Sim, x, y int) *Player {
	return &Player{X: x, Y: y, Facing: Down, sim: s}
}

// Move steps one cell, digging the destination first when it is still solid.
// Anything other than a single unit step, or a step off the grid, is refused
// without touching any state.
func (p *Player) Move(dx, dy int) bool {
	dir, ok := directionOf(dx, dy)
	if !ok {
		return false
	}
	nx, ny := p.X+dx, p.Y+dy
	g := p.sim.grid
	if !g.InBounds(nx, ny) {
		return false
	}
	if !g.IsDug(nx, ny) {
		p.dig(nx, ny)
	}
	p.X, p.Y = nx, ny
	p.Facing = dir
	p.sim.log.AddVerbose(p.sim.tick, "P", "move", dir.String(),
		fmt.Sprintf("(%d,%d)", nx, ny), 0)
	return true
}

// Drill digs the cell in front of the player and inflates every enemy in
// reach.
func (p *Player) Drill() {
	dx, dy := p.Facing.Delta()
	p.dig(p.X+dx, p.Y+dy)

	// Inflating can pop and remove enemies later, never during this loop.
	for _, e := range p.sim.enemies {
		if e.InInflateRange(p) {
			e.Inflate()
		}
	}

	p.Drilling = true
	p.drillFlash = p.sim.sched.Rearm(p.drillFlash, p.sim.cfg.DrillFlash, func() {
		p.Drilling = false
		p.drillFlash = nil
	})
}

func (p *Player) dig(x, y int) {
	if !p.sim.grid.InBounds(x, y) || p.sim.grid.IsDug(x, y) {
		return
	}
	m, found := p.sim.grid.DigTile(x, y)
	p.sim.log.Add(p.sim.tick, "P", "dig", "tile", fmt.Sprintf("(%d,%d)", x, y), 0)
	if found {
		p.CollectMineral(m)
	}
}

// CollectMineral books a mineral: score, inventory, sound and HUD.
func (p *Player) CollectMineral(m Mineral) {
	s := p.sim
	s.state.Score += m.Points
	s.state.Minerals.add(m.Kind)
	s.audio.OnCollect(m.Kind)
	s.hud.ShowMineral(MineralNotice{
		Kind:     m.Kind,
		Icon:     m.Icon,
		Name:     s.translate(m.Name),
		Points:   m.Points,
		Duration: s.cfg.NoticeDuration,
	})
	s.refreshHUD()
	s.log.Add(s.tick, "P", "collect", m.Kind.String(),
		fmt.Sprintf("(%d,%d) +%d", m.X, m.Y, m.Points), float64(m.Points))
}

func (p *Player) stopTimers() {
	p.drillFlash.Stop()
	p.drillFlash = nil
}
