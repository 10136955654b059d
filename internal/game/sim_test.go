package game

import (
	"testing"
	"time"
)

// emptySim builds a level with no generated minerals or enemies.
func emptySim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	base := []SimOption{
		WithHarnessSeed(42),
		WithoutMinerals(),
		WithoutEnemies(),
	}
	ts, err := NewTestSim(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts
}

// quietSim is emptySim plus a gold nugget buried in the bottom-left corner,
// so the level does not complete on the first update.
func quietSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	return emptySim(t, append([]SimOption{WithMineral(Gold, 0, 15)}, opts...)...)
}

func TestSim_UpdateBeforeStartIsNoop(t *testing.T) {
	s, err := New(DefaultConfig(), WithSeed(1), WithClock(NewManualClock(harnessEpoch)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Update()
	if s.Tick() != 0 || s.Started() {
		t.Fatalf("expected idle sim, tick=%d started=%v", s.Tick(), s.Started())
	}
	if s.Move(Down) {
		t.Fatal("Move before Start should be refused")
	}
	if f := s.Snapshot(); f.Started || f.Dug != nil {
		t.Fatal("snapshot before Start should be empty")
	}
}

func TestSim_StartState(t *testing.T) {
	ts, err := NewTestSim(WithHarnessSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	st := ts.Sim.State()
	if st.Level != 1 || st.Lives != 3 || st.Score != 0 || st.Paused || st.GameOver {
		t.Fatalf("unexpected start state %+v", st)
	}
	if ts.Audio.MusicStart != 1 {
		t.Fatalf("expected music to start once, got %d", ts.Audio.MusicStart)
	}
	if got, ok := ts.HUD.LastStatus(); !ok || got != (Status{Level: 1, Score: 0, Lives: 3}) {
		t.Fatalf("expected initial HUD status, got %+v", got)
	}
	p := ts.Sim.Player()
	if p.X != 6 || p.Y != 0 || p.Facing != Down {
		t.Fatalf("player should spawn at (6,0) facing down, got (%d,%d) %s", p.X, p.Y, p.Facing)
	}
	if n := len(ts.Sim.Enemies()); n != 3 {
		t.Fatalf("level 1 should spawn 3 enemies, got %d", n)
	}
	for _, e := range ts.Sim.Enemies() {
		if e.Y < 3 || e.Y >= 14 || e.X < 0 || e.X >= 12 {
			t.Fatalf("enemy %d spawned outside the band at (%d,%d)", e.ID, e.X, e.Y)
		}
	}
	if ts.Sim.Session().String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("session id should be set")
	}
}

func TestSim_HitWithLivesLeftPausesAndRespawns(t *testing.T) {
	ts := quietSim(t,
		WithPlayer(3, 0, Right),
		WithEnemy(RockMonster, 3, 0, 1),
	)
	ts.RunTicks(1)

	st := ts.Sim.State()
	if st.Lives != 2 || !st.Paused || st.GameOver {
		t.Fatalf("expected lives=2 paused, got %+v", st)
	}
	p := ts.Sim.Player()
	if p.X != 6 || p.Y != 0 {
		t.Fatalf("player should be back at spawn, got (%d,%d)", p.X, p.Y)
	}
	if ts.Audio.Hit != 1 {
		t.Fatalf("expected one hit sound, got %d", ts.Audio.Hit)
	}

	tick := ts.Sim.Tick()
	ts.RunTicks(10)
	if ts.Sim.Tick() != tick {
		t.Fatal("ticks should not advance during the grace pause")
	}
	if ts.Sim.Move(Left) {
		t.Fatal("input should be ignored while paused")
	}

	ts.Advance(time.Second)
	if ts.Sim.State().Paused {
		t.Fatal("grace pause should end after one second")
	}
}

func TestSim_TimersFireWhilePaused(t *testing.T) {
	ts := quietSim(t,
		WithConfig(func(c *Config) { c.HitGrace = 5 * time.Second }),
		WithPlayer(3, 0, Right),
		WithEnemy(RockMonster, 3, 0, 1),
		WithEnemy(LavaCreature, 9, 9, 1),
	)
	far := ts.Sim.Enemies()[1]
	far.Inflate()
	ts.RunTicks(1)
	if !ts.Sim.State().Paused {
		t.Fatal("expected grace pause")
	}
	ts.Advance(2 * time.Second)
	if far.InflateLevel != 0 {
		t.Fatalf("deflate should fire during the pause, level=%d", far.InflateLevel)
	}
	if !ts.Sim.State().Paused {
		t.Fatal("still inside the grace period")
	}
	ts.Advance(3 * time.Second)
	if ts.Sim.State().Paused {
		t.Fatal("grace pause should be over")
	}
}

func TestSim_ExplodingEnemyStillCollides(t *testing.T) {
	ts := quietSim(t,
		WithPlayer(3, 0, Right),
		WithEnemy(RockMonster, 3, 0, 1),
	)
	e := ts.Sim.Enemies()[0]
	for i := 0; i < maxInflate; i++ {
		e.Inflate()
	}
	if !e.Exploding {
		t.Fatal("enemy should be exploding")
	}
	ts.RunTicks(1)
	if ts.Sim.State().Lives != 2 {
		t.Fatalf("overlapping an exploding enemy should still cost a life, lives=%d", ts.Sim.State().Lives)
	}
}

func TestSim_GameOverFreezes(t *testing.T) {
	ts := quietSim(t,
		WithLives(1),
		WithPlayer(3, 0, Right),
		WithEnemy(RockMonster, 3, 0, 1),
	)
	ts.RunTicks(1)
	if !ts.Sim.State().GameOver {
		t.Fatal("expected game over")
	}
	tick := ts.Sim.Tick()
	ts.RunTicks(30)
	if ts.Sim.Tick() != tick {
		t.Fatal("no ticks after game over")
	}
	if ts.Sim.Move(Down) {
		t.Fatal("no input after game over")
	}
	if len(ts.HUD.GameOvers) != 1 {
		t.Fatalf("expected one final summary, got %d", len(ts.HUD.GameOvers))
	}
	if ts.Audio.MusicStop != 1 {
		t.Fatalf("music should stop once, got %d", ts.Audio.MusicStop)
	}
}

func TestSim_LevelTransitionCancelsTimers(t *testing.T) {
	ts := emptySim(t,
		WithMineral(Copper, 6, 1),
		WithEnemy(RockMonster, 2, 8, 1),
	)
	ts.Sim.Enemies()[0].Inflate()
	ts.Sim.Drill()
	if ts.Sim.Scheduler().Pending() != 2 {
		t.Fatalf("expected deflate and drill timers, got %d", ts.Sim.Scheduler().Pending())
	}
	ts.RunTicks(1)
	if ts.Sim.State().Level != 2 {
		t.Fatalf("collecting the only mineral should complete the level, level=%d", ts.Sim.State().Level)
	}
	if n := ts.Sim.Scheduler().Pending(); n != 0 {
		t.Fatalf("timers of the discarded level should be cancelled, %d pending", n)
	}
	if ts.Sim.Player().Drilling {
		t.Fatal("the fresh player should not be drilling")
	}
}

func TestSim_LevelTransitionKeepsScoreboard(t *testing.T) {
	ts := emptySim(t, WithMineral(Gold, 6, 1))
	ts.Sim.Move(Down)
	ts.RunTicks(1)
	st := ts.Sim.State()
	if st.Level != 2 || st.Score != 500+2000 || st.Lives != 3 || st.Minerals.Gold != 1 {
		t.Fatalf("unexpected state after level 1: %+v", st)
	}
	p := ts.Sim.Player()
	if p.X != 6 || p.Y != 0 {
		t.Fatalf("player should respawn at (6,0), got (%d,%d)", p.X, p.Y)
	}
	if ts.Sim.Grid().IsDug(6, 1) {
		t.Fatal("the grid should be regenerated")
	}
	if ts.Audio.LevelComplete != 1 {
		t.Fatalf("expected one level-complete cue, got %d", ts.Audio.LevelComplete)
	}
}

func TestSim_Restart(t *testing.T) {
	ts := emptySim(t, WithMineral(Copper, 6, 1))
	ts.Sim.Move(Down)
	first := ts.Sim.Session()
	ts.Sim.Restart()
	st := ts.Sim.State()
	if st.Score != 0 || st.Level != 1 || st.Lives != 3 || st.Minerals.Total() != 0 {
		t.Fatalf("restart should reset the scoreboard, got %+v", st)
	}
	if ts.Sim.Session() == first {
		t.Fatal("restart should start a new session")
	}
	if ts.Audio.MusicStop != 1 || ts.Audio.MusicStart != 2 {
		t.Fatalf("restart should cycle the music, stop=%d start=%d", ts.Audio.MusicStop, ts.Audio.MusicStart)
	}
}

func TestSim_Snapshot(t *testing.T) {
	ts := quietSim(t,
		WithMineral(Copper, 6, 1),
		WithEnemy(LavaCreature, 4, 6, -1),
	)
	ts.Sim.Move(Down)
	f := ts.Frame()
	if !f.Started || f.Cols != 12 || f.Rows != 16 || len(f.Dug) != 12*16 {
		t.Fatalf("unexpected frame shape %dx%d len=%d", f.Cols, f.Rows, len(f.Dug))
	}
	if !f.IsDug(6, 1) || f.IsDug(6, 2) || f.IsDug(-1, 0) {
		t.Fatal("frame dig mask does not match the grid")
	}
	if len(f.Minerals) != 1 || f.Minerals[0].Kind != Gold {
		t.Fatalf("frame should list only the buried gold, got %+v", f.Minerals)
	}
	if f.Player.X != 6 || f.Player.Y != 1 || f.Player.Facing != Down {
		t.Fatalf("unexpected player view %+v", f.Player)
	}
	if len(f.Enemies) != 1 || f.Enemies[0].Kind != LavaCreature || f.Enemies[0].Dir != -1 {
		t.Fatalf("unexpected enemy views %+v", f.Enemies)
	}
	f.Dug[0] = false
	if !ts.Sim.Grid().IsDug(0, 0) {
		t.Fatal("frame must be a copy")
	}
}

func TestSim_SameSeedSameRun(t *testing.T) {
	run := func() Summary {
		ts, err := NewTestSim(WithHarnessSeed(77))
		if err != nil {
			t.Fatal(err)
		}
		ap := NewAutopilot(4)
		for i := 0; i < 1200; i++ {
			ap.Step(ts.Sim)
			ts.RunTicks(1)
		}
		return ts.Sim.Summary()
	}
	a, b := run(), run()
	if a.Score != b.Score || a.Level != b.Level || a.Minerals != b.Minerals || a.Ticks != b.Ticks {
		t.Fatalf("same seed should replay identically: %+v vs %+v", a, b)
	}
}
