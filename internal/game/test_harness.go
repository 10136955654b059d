package game

import (
	"fmt"
	"time"
)

// harnessEpoch is the fixed start time of every harness clock.
var harnessEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TestSim is a headless harness around Sim. It drives a ManualClock so every
// timed effect is deterministic, records sink traffic, and lets tests lay out
// minerals, enemies and the player by hand.
type TestSim struct {
	Sim    *Sim
	Clock  *ManualClock
	SimLog *SimLog
	Audio  *AudioRecorder
	HUD    *HUDRecorder

	cfg     Config
	simOpts []Option
	seed    int64
	verbose bool
	err     error
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, verbose — applied before the Sim exists
	simOptClear                      // wipe generated content — applied after Start
	simOptPlace                      // hand-placed minerals, enemies, player
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithHarnessSeed sets the RNG seed for deterministic runs.
func WithHarnessSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithVerbose enables per-step verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// WithLives sets the starting lives.
func WithLives(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.InitialLives = n }}
}

// WithGridSize sets the grid dimensions.
func WithGridSize(cols, rows int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Cols, ts.cfg.Rows = cols, rows
	}}
}

// WithConfig edits the config before the Sim is built.
func WithConfig(edit func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { edit(&ts.cfg) }}
}

// Using passes extra Sim options through to New.
func Using(opts ...Option) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.simOpts = append(ts.simOpts, opts...) }}
}

// WithoutMinerals removes every generated mineral from level 1.
func WithoutMinerals() SimOption {
	return SimOption{simOptClear, func(ts *TestSim) {
		g := ts.Sim.grid
		g.minerals = nil
		g.byCell = make(map[int]int)
	}}
}

// WithoutEnemies empties the level 1 roster.
func WithoutEnemies() SimOption {
	return SimOption{simOptClear, func(ts *TestSim) {
		for _, e := range ts.Sim.enemies {
			e.stopTimers()
		}
		ts.Sim.enemies = nil
		ts.Sim.nextID = 0
	}}
}

// WithMineral buries a mineral of kind at (x, y) using the config's table.
func WithMineral(kind MineralKind, x, y int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		for _, spec := range ts.cfg.Minerals {
			if spec.Kind == kind {
				if !ts.Sim.grid.placeMineral(x, y, spec) {
					ts.err = fmt.Errorf("cannot place %s at (%d,%d)", kind, x, y)
				}
				return
			}
		}
		ts.err = fmt.Errorf("no %s in mineral table", kind)
	}}
}

// WithDug digs (x, y) without sound or collection, for laying out tunnels.
func WithDug(x, y int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		if ts.Sim.grid.InBounds(x, y) {
			ts.Sim.grid.cells[y*ts.cfg.Cols+x].Dug = true
		}
	}}
}

// WithEnemy adds an enemy of kind at (x, y) travelling in dir.
func WithEnemy(kind EnemyKind, x, y, dir int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		s := ts.Sim
		s.nextID++
		s.enemies = append(s.enemies, newEnemy(s, s.nextID, kind, x, y, dir))
	}}
}

// WithPlayer moves the player to (x, y) facing dir.
func WithPlayer(x, y int, dir Direction) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.Sim.player.X, ts.Sim.player.Y = x, y
		ts.Sim.player.Facing = dir
	}}
}

// NewTestSim builds and starts a Sim in ordered passes:
//  1. Infrastructure (config, seed, verbose, Sim options)
//  2. New + Start
//  3. Clearing generated content
//  4. Hand placement
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		cfg:   DefaultConfig(),
		seed:  1,
		Clock: NewManualClock(harnessEpoch),
		Audio: &AudioRecorder{},
		HUD:   &HUDRecorder{},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)

	base := []Option{
		WithSeed(ts.seed),
		WithClock(ts.Clock),
		WithAudio(ts.Audio),
		WithHUD(ts.HUD),
		WithSimLog(ts.SimLog),
	}
	sim, err := New(ts.cfg, append(base, ts.simOpts...)...)
	if err != nil {
		return nil, err
	}
	ts.Sim = sim
	sim.Start()

	for _, pass := range []simOptionKind{simOptClear, simOptPlace} {
		for _, o := range opts {
			if o.kind == pass {
				o.fn(ts)
			}
		}
	}
	if ts.err != nil {
		return nil, ts.err
	}
	return ts, nil
}

// RunTicks advances the simulation n ticks, one frame of clock time each.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// It returns the number of ticks run, or -1 if the predicate never held.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 1; i <= maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return i
		}
	}
	return -1
}

// Advance moves the clock by d and runs one update so due timers fire.
func (ts *TestSim) Advance(d time.Duration) {
	ts.Clock.Advance(d)
	ts.step()
}

func (ts *TestSim) runOneTick() {
	ts.Clock.Advance(ts.cfg.TickDuration())
	ts.step()
}

// step runs one Sim.Update and logs scoreboard changes it caused.
func (ts *TestSim) step() {
	prev := ts.Sim.State()
	ts.Sim.Update()
	now := ts.Sim.State()
	tick := ts.Sim.Tick()

	if now.Paused != prev.Paused {
		ts.SimLog.Add(tick, "--", "state", "paused", fmt.Sprintf("%v → %v", prev.Paused, now.Paused), 0)
	}
	ts.SimLog.AddVerbose(tick, "--", "state", "score", fmt.Sprintf("%d", now.Score), float64(now.Score))
}

// Frame is shorthand for Sim.Snapshot.
func (ts *TestSim) Frame() Frame {
	return ts.Sim.Snapshot()
}

// AudioRecorder counts audio cues.
type AudioRecorder struct {
	Dig, Hit, Explosion, LevelComplete, GameOver, MusicStart, MusicStop int
	Collected                                                           []MineralKind
}

func (a *AudioRecorder) OnDig()                     { a.Dig++ }
func (a *AudioRecorder) OnCollect(kind MineralKind) { a.Collected = append(a.Collected, kind) }
func (a *AudioRecorder) OnHit()                     { a.Hit++ }
func (a *AudioRecorder) OnExplosion()               { a.Explosion++ }
func (a *AudioRecorder) OnLevelComplete()           { a.LevelComplete++ }
func (a *AudioRecorder) OnGameOver()                { a.GameOver++ }
func (a *AudioRecorder) OnMusicStart()              { a.MusicStart++ }
func (a *AudioRecorder) OnMusicStop()               { a.MusicStop++ }

// HUDRecorder keeps every HUD update.
type HUDRecorder struct {
	Statuses  []Status
	Notices   []MineralNotice
	GameOvers []Summary
}

func (h *HUDRecorder) ShowStatus(st Status)        { h.Statuses = append(h.Statuses, st) }
func (h *HUDRecorder) ShowMineral(n MineralNotice) { h.Notices = append(h.Notices, n) }
func (h *HUDRecorder) ShowGameOver(sum Summary)    { h.GameOvers = append(h.GameOvers, sum) }

// LastStatus returns the most recent status, if any.
func (h *HUDRecorder) LastStatus() (Status, bool) {
	if len(h.Statuses) == 0 {
		return Status{}, false
	}
	return h.Statuses[len(h.Statuses)-1], true
}
