package game

// Frame is a read-only copy of everything a renderer needs for one frame.
type Frame struct {
	Tick    int
	Started bool
	Cols    int
	Rows    int
	Dug     []bool // row-major

	Minerals []Mineral // uncollected only
	Player   PlayerView
	Enemies  []EnemyView
	State    State
}

// PlayerView is the render copy of the player.
type PlayerView struct {
	X, Y     int
	Facing   Direction
	Drilling bool
}

// EnemyView is the render copy of one enemy.
type EnemyView struct {
	ID             int
	Kind           EnemyKind
	X, Y           int
	Dir            int
	InflateLevel   int
	Exploding      bool
	ExplosionFrame int
}

// IsDug reports the dig state of (col, row); out of bounds reads as solid.
func (f Frame) IsDug(col, row int) bool {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return false
	}
	return f.Dug[row*f.Cols+col]
}

// Snapshot copies the current world. Before Start it returns an empty frame.
func (s *Sim) Snapshot() Frame {
	f := Frame{Tick: s.tick, Started: s.started, State: s.state}
	if s.grid == nil {
		return f
	}
	f.Cols, f.Rows = s.grid.Cols, s.grid.Rows
	f.Dug = s.grid.dugMask()
	for _, m := range s.grid.minerals {
		if !m.Collected {
			f.Minerals = append(f.Minerals, m)
		}
	}
	f.Player = PlayerView{X: s.player.X, Y: s.player.Y, Facing: s.player.Facing, Drilling: s.player.Drilling}
	f.Enemies = make([]EnemyView, 0, len(s.enemies))
	for _, e := range s.enemies {
		f.Enemies = append(f.Enemies, EnemyView{
			ID:             e.ID,
			Kind:           e.Kind,
			X:              e.X,
			Y:              e.Y,
			Dir:            e.Dir,
			InflateLevel:   e.InflateLevel,
			Exploding:      e.Exploding,
			ExplosionFrame: e.ExplosionFrame,
		})
	}
	return f
}
