package desktop

import (
	"strings"
	"testing"
	"time"

	"github.com/geologgia/digging/internal/game"
)

type fakeMuter struct{ on bool }

func (m *fakeMuter) Toggle() bool {
	m.on = !m.on
	return m.on
}

func newTestApp(t *testing.T) (*App, *game.ManualClock) {
	t.Helper()
	clock := game.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	a, err := New(Options{Config: game.DefaultConfig(), Seed: 7, Clock: clock, Mute: &fakeMuter{on: true}})
	if err != nil {
		t.Fatal(err)
	}
	a.start()
	return a, clock
}

func padPoint(a *App, d game.Direction) (int, int) {
	x, y := a.lay.pad[d].center()
	return int(x), int(y)
}

func TestApp_NewRejectsBadConfig(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Cols = 0
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Fatal("expected a config error")
	}
}

func TestApp_StartShowsPlayScreen(t *testing.T) {
	a, _ := newTestApp(t)
	if a.screen != screenPlay || !a.sim.Started() {
		t.Fatal("start should begin a run")
	}
	if a.hud.status.Level != 1 || a.hud.status.Lives != 3 {
		t.Fatalf("HUD should show the fresh scoreboard, got %+v", a.hud.status)
	}
}

func TestApp_KeyPressMovesOnce(t *testing.T) {
	a, _ := newTestApp(t)
	a.keyDown("ArrowRight")
	a.keyDown("ArrowRight")
	if p := a.sim.Player(); p.X != 7 {
		t.Fatalf("held key should move once, player at x=%d", p.X)
	}
	a.keys.Release("ArrowRight")
	a.keyDown("d")
	if p := a.sim.Player(); p.X != 8 || p.Facing != game.Right {
		t.Fatalf("expected (8,0) facing right, got (%d,%d) %s", p.X, p.Y, p.Facing)
	}
}

func TestApp_HeldPadRepeats(t *testing.T) {
	a, clock := newTestApp(t)
	x, y := padPoint(a, game.Right)
	a.pointerDown(1, x, y, clock.Now())
	if a.sim.Player().X != 7 {
		t.Fatal("pressing the pad should move immediately")
	}

	clock.Advance(100 * time.Millisecond)
	a.step(clock.Now())
	if a.sim.Player().X != 7 {
		t.Fatal("no repeat before the hold interval")
	}
	clock.Advance(50 * time.Millisecond)
	a.step(clock.Now())
	if a.sim.Player().X != 8 {
		t.Fatalf("expected a repeat at 150ms, player at x=%d", a.sim.Player().X)
	}

	a.pointerUp(1)
	clock.Advance(time.Second)
	a.step(clock.Now())
	if a.sim.Player().X != 8 {
		t.Fatal("releasing the pad should stop the repeat")
	}
}

func TestApp_TwoFingersOnOneArrow(t *testing.T) {
	a, clock := newTestApp(t)
	x, y := padPoint(a, game.Left)
	a.pointerDown(1, x, y, clock.Now())
	a.pointerDown(2, x, y, clock.Now())
	a.pointerUp(1)
	if !a.pad.Active() {
		t.Fatal("the second finger still holds the arrow")
	}
	if !a.heldDirs()[game.Left] {
		t.Fatal("left should render as held")
	}
	a.pointerUp(2)
	if a.pad.Active() {
		t.Fatal("no finger left on the pad")
	}
}

func TestApp_DrillButton(t *testing.T) {
	a, clock := newTestApp(t)
	cx, cy := a.lay.drill.center()
	a.pointerDown(mousePointer, int(cx), int(cy), clock.Now())
	if !a.sim.Player().Drilling {
		t.Fatal("drill button should drill")
	}
	a.pointerUp(mousePointer)
	if a.pad.Active() {
		t.Fatal("drill should not hold a direction")
	}
}

func TestApp_ExplosionRaisesBanner(t *testing.T) {
	a, _ := newTestApp(t)
	a.log.Add(a.sim.Tick(), "E1", "enemy", "explode", "ROCK_MONSTER +200", 200)
	a.syncFeed()
	if msg, ok := a.hud.activeBanner(); !ok || msg != "Enemy popped +200" {
		t.Fatalf("expected explosion banner, got %q", msg)
	}
}

func TestApp_ToggleSound(t *testing.T) {
	a, _ := newTestApp(t)
	a.toggleSound()
	if msg, _ := a.hud.activeBanner(); msg != "Sound off" {
		t.Fatalf("expected mute banner, got %q", msg)
	}
	a.toggleSound()
	if msg, _ := a.hud.activeBanner(); msg != "Sound on" {
		t.Fatalf("expected unmute banner, got %q", msg)
	}
}

func TestApp_SummaryText(t *testing.T) {
	a, _ := newTestApp(t)
	a.hud.ShowGameOver(game.Summary{Session: a.sim.Session(), Score: 5200, Level: 3})
	out := a.summaryText()
	for _, want := range []string{"GeologgIA Digger", "score    5200", "level    3", "grade    B", a.sim.Session().String()} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestApp_RestartResetsScoreboard(t *testing.T) {
	a, _ := newTestApp(t)
	a.keyDown("ArrowDown")
	first := a.sim.Session()
	a.screen = screenOver
	a.start()
	if a.sim.Session() == first {
		t.Fatal("restart should open a new session")
	}
	if p := a.sim.Player(); p.X != 6 || p.Y != 0 {
		t.Fatalf("player should respawn at (6,0), got (%d,%d)", p.X, p.Y)
	}
}
