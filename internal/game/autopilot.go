package game

// Autopilot is a simple bot used by headless runs. Every few ticks it drills
// any enemy in reach, otherwise walks toward the nearest buried mineral.
type Autopilot struct {
	every int
	count int
}

// NewAutopilot creates a bot that acts once every `every` ticks.
func NewAutopilot(every int) *Autopilot {
	if every < 1 {
		every = 1
	}
	return &Autopilot{every: every}
}

// Step issues at most one intent to s. Call it once per tick before Update.
func (a *Autopilot) Step(s *Sim) {
	a.count++
	if a.count < a.every {
		return
	}
	a.count = 0
	if !s.inputAllowed() {
		return
	}
	p := s.player

	for _, e := range s.enemies {
		if !e.Exploding && e.InInflateRange(p) {
			s.Drill()
			return
		}
	}

	target, ok := nearestMineral(s.grid, p.X, p.Y)
	if !ok {
		return
	}
	dir := stepToward(p.X, p.Y, target.X, target.Y)
	dx, dy := dir.Delta()
	if s.enemyAt(p.X+dx, p.Y+dy) {
		// Something is in the way; turn and pump it once we face it.
		if p.Facing == dir {
			s.Drill()
		}
		return
	}
	s.Move(dir)
}

func nearestMineral(g *Grid, x, y int) (Mineral, bool) {
	best, bestD := Mineral{}, -1
	for _, m := range g.minerals {
		if m.Collected {
			continue
		}
		d := absInt(m.X-x) + absInt(m.Y-y)
		if bestD < 0 || d < bestD {
			best, bestD = m, d
		}
	}
	return best, bestD >= 0
}

// stepToward picks a unit step, closing the column gap first.
func stepToward(x, y, tx, ty int) Direction {
	switch {
	case tx < x:
		return Left
	case tx > x:
		return Right
	case ty < y:
		return Up
	default:
		return Down
	}
}

func (s *Sim) enemyAt(x, y int) bool {
	for _, e := range s.enemies {
		if !e.Exploding && e.X == x && e.Y == y {
			return true
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
