package game

import (
	"fmt"
	"math"
)

// EnemyKind identifies an enemy species.
type EnemyKind uint8

const (
	RockMonster EnemyKind = iota
	LavaCreature
)

func (k EnemyKind) String() string {
	switch k {
	case RockMonster:
		return "ROCK_MONSTER"
	case LavaCreature:
		return "LAVA_CREATURE"
	default:
		return "unknown"
	}
}

// verticalShiftChance is the per-step probability of trying a row change.
const verticalShiftChance = 0.1

// Enemy is a tunnel dweller. It patrols horizontally through dug cells,
// occasionally changes row, and can be inflated by the drill until it pops.
//
// State machine: Normal (InflateLevel 0) → Inflating (1..3) → Exploding (4)
// → removed from the roster after the explosion delay.
type Enemy struct {
	ID   int
	Kind EnemyKind
	X, Y int
	Dir  int // -1 left, +1 right

	MoveCounter    int
	InflateLevel   int
	Exploding      bool
	ExplosionFrame int

	deflate *Timer
	removal *Timer
	sim     *Sim
}

func newEnemy(s *Sim, id int, kind EnemyKind, x, y, dir int) *Enemy {
	return &Enemy{ID: id, Kind: kind, X: x, Y: y, Dir: dir, sim: s}
}

// label is the short actor tag used in the sim log.
func (e *Enemy) label() string {
	return fmt.Sprintf("E%d", e.ID)
}

func (e *Enemy) spec() EnemySpec {
	return e.sim.cfg.Enemies[e.Kind]
}

// Inflate pumps the enemy one level. At the maximum level it explodes; below
// it, a deflate is (re)armed so that an untouched enemy slowly recovers.
func (e *Enemy) Inflate() {
	if e.InflateLevel >= maxInflate {
		return
	}
	e.InflateLevel++
	e.deflate.Stop()
	e.deflate = nil
	e.sim.log.Add(e.sim.tick, e.label(), "enemy", "inflate",
		fmt.Sprintf("level %d", e.InflateLevel), float64(e.InflateLevel))

	if e.InflateLevel >= maxInflate {
		e.explode()
		return
	}
	e.deflate = e.sim.sched.After(e.sim.cfg.DeflateDelay, e.deflateOnce)
}

func (e *Enemy) deflateOnce() {
	e.deflate = nil
	if e.Exploding || e.InflateLevel <= 0 {
		return
	}
	e.InflateLevel--
	e.sim.log.Add(e.sim.tick, e.label(), "enemy", "deflate",
		fmt.Sprintf("level %d", e.InflateLevel), float64(e.InflateLevel))
}

func (e *Enemy) explode() {
	e.Exploding = true
	points := e.spec().Points
	e.sim.state.Score += points
	e.sim.popped++
	e.sim.audio.OnExplosion()
	e.sim.refreshHUD()
	e.sim.log.Add(e.sim.tick, e.label(), "enemy", "explode",
		fmt.Sprintf("%s +%d", e.Kind, points), float64(points))
	e.removal = e.sim.sched.After(e.sim.cfg.ExplosionDelay, func() {
		e.removal = nil
		e.sim.removeEnemy(e)
	})
}

// stopTimers cancels everything the enemy still has pending.
func (e *Enemy) stopTimers() {
	e.deflate.Stop()
	e.removal.Stop()
	e.deflate, e.removal = nil, nil
}

// moveInterval is the number of ticks between steps.
func (e *Enemy) moveInterval() int {
	mult := 1.0
	if e.InflateLevel > 0 {
		mult = 0.5
	}
	n := int(math.Round(float64(e.sim.cfg.TicksPerBeat) / (e.spec().Speed * mult)))
	if n < 1 {
		n = 1
	}
	return n
}

// Update advances the enemy by one tick.
func (e *Enemy) Update() {
	if e.Exploding {
		e.ExplosionFrame++
		return
	}

	e.MoveCounter++
	if e.MoveCounter < e.moveInterval() {
		return
	}
	e.MoveCounter = 0

	g := e.sim.grid
	if nx := e.X + e.Dir; g.IsDug(nx, e.Y) {
		e.X = nx
	} else {
		e.Dir = -e.Dir
	}

	if e.sim.rng.Float64() < verticalShiftChance {
		dy := 1
		if e.sim.rng.Intn(2) == 0 {
			dy = -1
		}
		// Row 0 is the surface; enemies stay underground.
		if ny := e.Y + dy; ny > 0 && g.IsDug(e.X, ny) {
			e.Y = ny
		}
	}
	e.sim.log.AddVerbose(e.sim.tick, e.label(), "enemy", "pos",
		fmt.Sprintf("(%d,%d)", e.X, e.Y), 0)
}

// InInflateRange reports whether the enemy sits within drill reach in front
// of p: at most 1.5 cells away and inside a narrow cone along p's facing.
func (e *Enemy) InInflateRange(p *Player) bool {
	dx := float64(e.X - p.X)
	dy := float64(e.Y - p.Y)
	if math.Hypot(dx, dy) > 1.5 {
		return false
	}
	switch p.Facing {
	case Up:
		return dy < 0 && math.Abs(dx) < 0.5
	case Down:
		return dy > 0 && math.Abs(dx) < 0.5
	case Left:
		return dx < 0 && math.Abs(dy) < 0.5
	case Right:
		return dx > 0 && math.Abs(dy) < 0.5
	}
	return false
}

// CheckCollision reports whether the enemy overlaps p's cell.
func (e *Enemy) CheckCollision(p *Player) bool {
	return math.Abs(float64(e.X-p.X)) < 0.5 && math.Abs(float64(e.Y-p.Y)) < 0.5
}
