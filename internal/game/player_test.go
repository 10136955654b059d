package game

import (
	"testing"
	"time"
)

func TestDirection_Delta(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		dx, dy := d.Delta()
		back, ok := directionOf(dx, dy)
		if !ok || back != d {
			t.Fatalf("%s: delta (%d,%d) maps back to %s", d, dx, dy, back)
		}
	}
}

func TestPlayer_MoveOffGridChangesNothing(t *testing.T) {
	ts := quietSim(t)
	p := ts.Sim.Player()
	before := ts.Sim.Grid().dugMask()

	if p.Move(0, -1) {
		t.Fatal("moving above the surface should fail")
	}
	if p.X != 6 || p.Y != 0 || p.Facing != Down {
		t.Fatalf("failed move must not change the player, got (%d,%d) %s", p.X, p.Y, p.Facing)
	}
	after := ts.Sim.Grid().dugMask()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("failed move changed cell %d", i)
		}
	}
	if ts.Audio.Dig != 0 {
		t.Fatal("failed move should not dig")
	}
}

func TestPlayer_MoveRejectsNonUnitSteps(t *testing.T) {
	ts := quietSim(t)
	p := ts.Sim.Player()
	for _, d := range [][2]int{{0, 0}, {1, 1}, {2, 0}, {0, -2}, {-1, 1}} {
		if p.Move(d[0], d[1]) {
			t.Fatalf("Move(%d,%d) should be refused", d[0], d[1])
		}
	}
	if p.X != 6 || p.Y != 0 {
		t.Fatalf("player moved on a refused step: (%d,%d)", p.X, p.Y)
	}
}

func TestPlayer_MoveDigsAndCollects(t *testing.T) {
	ts := quietSim(t, WithMineral(Copper, 6, 1))
	p := ts.Sim.Player()
	if !p.Move(0, 1) {
		t.Fatal("move down should succeed")
	}
	if p.X != 6 || p.Y != 1 || p.Facing != Down {
		t.Fatalf("expected (6,1) facing down, got (%d,%d) %s", p.X, p.Y, p.Facing)
	}
	st := ts.Sim.State()
	if st.Score != 100 || st.Minerals.Copper != 1 {
		t.Fatalf("expected copper collected, got %+v", st)
	}
	if ts.Audio.Dig != 1 || len(ts.Audio.Collected) != 1 || ts.Audio.Collected[0] != Copper {
		t.Fatalf("expected dig + copper cues, got dig=%d collected=%v", ts.Audio.Dig, ts.Audio.Collected)
	}
	if len(ts.HUD.Notices) != 1 {
		t.Fatalf("expected one mineral notice, got %d", len(ts.HUD.Notices))
	}
	n := ts.HUD.Notices[0]
	if n.Name != "Copper" || n.Points != 100 || n.Icon == "" || n.Duration != 2*time.Second {
		t.Fatalf("unexpected notice %+v", n)
	}
}

func TestPlayer_MoveThroughTunnelIsSilent(t *testing.T) {
	ts := quietSim(t)
	p := ts.Sim.Player()
	if !p.Move(-1, 0) || !p.Move(1, 0) {
		t.Fatal("moving along the surface should succeed")
	}
	if ts.Audio.Dig != 0 {
		t.Fatalf("walking through dug cells should not dig, got %d", ts.Audio.Dig)
	}
	if p.Facing != Right {
		t.Fatalf("facing should follow the last step, got %s", p.Facing)
	}
}

func TestPlayer_CollectMineralTranslatesName(t *testing.T) {
	ts := quietSim(t, Using(WithTranslator(func(id string) string {
		if id == "Gold" {
			return "Oro"
		}
		return id
	})))
	ts.Sim.Player().CollectMineral(Mineral{Kind: Gold, Name: "Gold", Points: 500})
	if got := ts.HUD.Notices[0].Name; got != "Oro" {
		t.Fatalf("expected translated name, got %q", got)
	}
	if ts.Sim.State().Minerals.Gold != 1 || ts.Sim.State().Score != 500 {
		t.Fatalf("unexpected state %+v", ts.Sim.State())
	}
}

func TestPlayer_DrillFlagClears(t *testing.T) {
	ts := quietSim(t)
	ts.Sim.Drill()
	p := ts.Sim.Player()
	if !p.Drilling {
		t.Fatal("drilling flag should be set")
	}
	ts.Advance(199 * time.Millisecond)
	if !p.Drilling {
		t.Fatal("drilling flag cleared early")
	}
	ts.Advance(time.Millisecond)
	if p.Drilling {
		t.Fatal("drilling flag should clear after 200ms")
	}
}

func TestPlayer_DrillFlagRearms(t *testing.T) {
	ts := quietSim(t)
	p := ts.Sim.Player()
	ts.Sim.Drill()
	ts.Advance(150 * time.Millisecond)
	ts.Sim.Drill()
	ts.Advance(100 * time.Millisecond)
	if !p.Drilling {
		t.Fatal("second drill should keep the flag up")
	}
	ts.Advance(100 * time.Millisecond)
	if p.Drilling {
		t.Fatal("flag should clear 200ms after the last drill")
	}
	if ts.Sim.Scheduler().Pending() != 0 {
		t.Fatalf("drill timers should not stack, %d pending", ts.Sim.Scheduler().Pending())
	}
}

func TestPlayer_DrillOnDugCellOnlyInflates(t *testing.T) {
	ts := quietSim(t,
		WithPlayer(3, 0, Right),
		WithEnemy(RockMonster, 4, 0, 1),
	)
	ts.Sim.Drill()
	if ts.Audio.Dig != 0 {
		t.Fatal("drilling a dug cell should not dig")
	}
	if e := ts.Sim.Enemies()[0]; e.InflateLevel != 1 {
		t.Fatalf("enemy in front should inflate, level=%d", e.InflateLevel)
	}
}

func TestPlayer_DrillOnlyReachesFacing(t *testing.T) {
	ts := quietSim(t,
		WithPlayer(5, 4, Down),
		WithEnemy(RockMonster, 5, 5, 1),
		WithEnemy(RockMonster, 5, 3, 1),
		WithEnemy(RockMonster, 6, 4, 1),
		WithEnemy(RockMonster, 5, 6, 1),
	)
	ts.Sim.Drill()
	want := []int{1, 0, 0, 0}
	for i, e := range ts.Sim.Enemies() {
		if e.InflateLevel != want[i] {
			t.Fatalf("enemy %d at (%d,%d): level=%d want %d", e.ID, e.X, e.Y, e.InflateLevel, want[i])
		}
	}
}
