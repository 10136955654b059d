// Package desktop is the ebiten frontend: it drives the simulation at the
// ebiten tick rate, renders snapshots, and maps keyboard, mouse and touch
// input onto simulation intents.
package desktop

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/geologgia/digging/internal/game"
	"github.com/geologgia/digging/internal/input"
	"github.com/geologgia/digging/internal/locale"
)

// overlayScale is the integer upscale applied to title text.
const overlayScale = 2

type screenKind uint8

const (
	screenStart screenKind = iota
	screenPlay
	screenOver
)

// mousePointer is the pointer id used for the left mouse button, so a mouse
// can drive the on-screen controls like a finger.
const mousePointer = -1

// Muter is the part of the sound manager the frontend controls.
type Muter interface {
	Toggle() bool
}

// Options configures an App.
type Options struct {
	Config  game.Config
	Seed    int64 // 0 picks a time-based seed
	Clock   game.Clock
	Audio   game.AudioSink
	Mute    Muter
	Catalog *locale.Catalog
}

// App implements ebiten.Game.
type App struct {
	sim   *game.Sim
	log   *game.SimLog
	hud   *hud
	feed  *Feed
	cat   *locale.Catalog
	clock game.Clock
	mute  Muter

	keys     *input.Keys
	pad      *input.Repeater
	pointers map[int]control
	touchIDs []ebiten.TouchID

	lay     layout
	screen  screenKind
	frames  int
	overlay *ebiten.Image
}

var trackedKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyArrowUp, "ArrowUp"},
	{ebiten.KeyArrowDown, "ArrowDown"},
	{ebiten.KeyArrowLeft, "ArrowLeft"},
	{ebiten.KeyArrowRight, "ArrowRight"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyD, "d"},
	{ebiten.KeySpace, " "},
	{ebiten.KeyEnter, "Enter"},
}

// New builds the frontend and an idle simulation behind it.
func New(opts Options) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = game.SystemClock{}
	}
	if opts.Catalog == nil {
		opts.Catalog = locale.English()
	}
	a := &App{
		log:      game.NewSimLog(false),
		feed:     NewFeed(),
		cat:      opts.Catalog,
		clock:    opts.Clock,
		mute:     opts.Mute,
		keys:     input.NewKeys(),
		pad:      input.NewRepeater(input.HoldInterval),
		pointers: make(map[int]control),
	}
	a.hud = newHUD(opts.Clock, opts.Catalog)

	simOpts := []game.Option{
		game.WithClock(opts.Clock),
		game.WithAudio(opts.Audio),
		game.WithHUD(a.hud),
		game.WithSimLog(a.log),
		game.WithTranslator(opts.Catalog.Func()),
	}
	if opts.Seed != 0 {
		simOpts = append(simOpts, game.WithSeed(opts.Seed))
	}
	sim, err := game.New(opts.Config, simOpts...)
	if err != nil {
		return nil, err
	}
	a.sim = sim
	a.lay = newLayout(opts.Config.Cols, opts.Config.Rows)
	return a, nil
}

// Size is the logical window size.
func (a *App) Size() (int, int) { return a.lay.width, a.lay.height }

// Sim exposes the simulation.
func (a *App) Sim() *game.Sim { return a.sim }

func (a *App) Layout(_, _ int) (int, int) {
	return a.lay.width, a.lay.height
}

func (a *App) Update() error {
	a.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.toggleSound()
	}

	switch a.screen {
	case screenStart:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) || a.tapped() {
			a.start()
		}
		return nil
	case screenOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			a.copySummary()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || a.tapped() {
			a.start()
		}
		return nil
	}

	now := a.clock.Now()
	a.handleKeys()
	a.handlePointers(now)
	a.step(now)
	return nil
}

// step polls held controls, advances the simulation one tick and catches up
// on side effects.
func (a *App) step(now time.Time) {
	if in, ok := a.pad.Poll(now); ok {
		input.Apply(a.sim, in)
	}
	a.sim.Update()
	a.syncFeed()
	if a.sim.State().GameOver {
		a.screen = screenOver
		a.releaseAll()
	}
}

// start begins a fresh run from either the title or the game-over screen.
func (a *App) start() {
	a.hud.reset()
	a.releaseAll()
	a.sim.Restart()
	a.syncFeed()
	a.screen = screenPlay
}

func (a *App) releaseAll() {
	a.keys.Reset()
	a.pad.ReleaseAll()
	clear(a.pointers)
}

func (a *App) tapped() bool {
	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	return len(a.touchIDs) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (a *App) handleKeys() {
	for _, k := range trackedKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			a.keyDown(k.name)
		}
		if inpututil.IsKeyJustReleased(k.key) {
			a.keys.Release(k.name)
		}
	}
}

func (a *App) keyDown(name string) {
	if in, ok := a.keys.Press(name); ok {
		input.Apply(a.sim, in)
	}
}

func (a *App) handlePointers(now time.Time) {
	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		x, y := ebiten.TouchPosition(id)
		a.pointerDown(int(id), x, y, now)
	}
	for id := range a.pointers {
		if id != mousePointer && inpututil.IsTouchJustReleased(ebiten.TouchID(id)) {
			a.pointerUp(id)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.pointerDown(mousePointer, x, y, now)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.pointerUp(mousePointer)
	}
}

func (a *App) pointerDown(id, x, y int, now time.Time) {
	c, ok := a.lay.hit(x, y)
	if !ok {
		return
	}
	a.pointers[id] = c
	if c.drill {
		a.sim.Drill()
		return
	}
	if in, ok := a.pad.Press(c.dir, now); ok {
		input.Apply(a.sim, in)
	}
}

func (a *App) pointerUp(id int) {
	c, ok := a.pointers[id]
	if !ok {
		return
	}
	delete(a.pointers, id)
	if c.drill {
		return
	}
	// Another finger may still be on the same arrow.
	for _, o := range a.pointers {
		if !o.drill && o.dir == c.dir {
			return
		}
	}
	a.pad.Release(c.dir)
}

func (a *App) heldDirs() map[game.Direction]bool {
	held := make(map[game.Direction]bool, len(a.pointers))
	for _, c := range a.pointers {
		if !c.drill {
			held[c.dir] = true
		}
	}
	return held
}

// syncFeed tails the event log into the side panel and raises banners for
// events that have no dedicated sink call.
func (a *App) syncFeed() {
	for _, e := range a.feed.Sync(a.log) {
		if e.Category == "enemy" && e.Key == "explode" {
			a.hud.flash(a.cat.T("Enemy popped +%d", int(e.NumVal)))
		}
	}
}

func (a *App) toggleSound() {
	if a.mute == nil {
		return
	}
	if a.mute.Toggle() {
		a.hud.flash(a.cat.T("Sound on"))
	} else {
		a.hud.flash(a.cat.T("Sound off"))
	}
}

// summaryText is the clipboard export of the final scoreboard.
func (a *App) summaryText() string {
	sum := a.hud.summary
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", a.cat.T("GeologgIA Digger"))
	sb.WriteString(game.FormatSummary(sum))
	fmt.Fprintf(&sb, "grade    %s\n", game.ScoreLetter(sum.Score))
	return sb.String()
}

func (a *App) copySummary() {
	if err := clipboard.WriteAll(a.summaryText()); err != nil {
		a.hud.flash(a.cat.T("Clipboard unavailable"))
		return
	}
	a.hud.flash(a.cat.T("Summary copied"))
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if a.overlay == nil {
		a.overlay = ebiten.NewImage(a.lay.width/overlayScale, a.lay.height/overlayScale)
	}

	if a.screen == screenStart {
		a.drawStart(screen)
		return
	}

	f := a.sim.Snapshot()
	a.drawField(screen, f)
	for _, e := range f.Enemies {
		a.drawEnemy(screen, e)
	}
	a.drawPlayer(screen, f.Player)
	a.drawStatus(screen)
	a.drawNotice(screen)
	a.drawControls(screen)
	a.feed.Draw(screen, a.lay.feedX(), a.lay.height, a.cat.T("GeologgIA Digger"))

	if a.screen == screenOver {
		a.drawGameOver(screen)
	}
	a.drawBanner(screen)
}

func (a *App) drawStatus(screen *ebiten.Image) {
	st := a.hud.status
	x := float32(a.lay.fieldX)
	y := float32(borderWidth)
	vector.FillRect(screen, x, y, float32(a.lay.fieldW), hudHeight-8, color.RGBA{R: 40, G: 28, B: 18, A: 255}, false)
	line := fmt.Sprintf("%s: %d   %s: %d   %s:", a.cat.T("Level"), st.Level, a.cat.T("Score"), st.Score, a.cat.T("Lives"))
	drawText(screen, line, float64(x)+10, float64(y)+14, colorText)
	lx := x + 10 + float32(textWidth(line)) + 10
	for i := 0; i < st.Lives; i++ {
		vector.FillCircle(screen, lx+float32(i)*16+6, y+20, 6, color.RGBA{R: 220, G: 50, B: 50, A: 255}, true)
	}
}

func (a *App) drawNotice(screen *ebiten.Image) {
	n, ok := a.hud.activeNotice()
	if !ok {
		return
	}
	label := fmt.Sprintf("%s +%d", n.Name, n.Points)
	w := float32(textWidth(label) + 44)
	cx := float32(a.lay.fieldX + a.lay.fieldW/2)
	y := float32(a.lay.fieldY + 8)
	vector.FillRect(screen, cx-w/2, y, w, 28, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	vector.StrokeRect(screen, cx-w/2, y, w, 28, 2, mineralColors[n.Kind], false)
	vector.FillCircle(screen, cx-w/2+16, y+14, 7, mineralColors[n.Kind], true)
	drawText(screen, label, float64(cx-w/2+32), float64(y)+8, colorText)
}

func (a *App) drawBanner(screen *ebiten.Image) {
	msg, ok := a.hud.activeBanner()
	if !ok {
		return
	}
	cx := float64(a.lay.fieldX + a.lay.fieldW/2)
	y := float32(a.lay.fieldY + a.lay.fieldH/2 - 14)
	w := float32(textWidth(msg) + 24)
	vector.FillRect(screen, float32(cx)-w/2, y, w, 28, color.RGBA{R: 0, G: 0, B: 0, A: 210}, false)
	drawTextCentered(screen, msg, cx, float64(y)+8, colorAccent)
}

// drawTitle renders lines at overlayScale centred on the field, starting at y
// in screen pixels.
func (a *App) drawTitle(screen *ebiten.Image, y int, lines ...string) {
	a.overlay.Clear()
	cx := float64(a.lay.fieldX+a.lay.fieldW/2) / overlayScale
	for i, l := range lines {
		drawTextCentered(a.overlay, l, cx, float64(y/overlayScale+i*16), colorAccent)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(overlayScale, overlayScale)
	screen.DrawImage(a.overlay, op)
}

func (a *App) drawStart(screen *ebiten.Image) {
	a.drawTitle(screen, a.lay.fieldY+a.lay.fieldH/3, a.cat.T("GeologgIA Digger"))
	cx := float64(a.lay.fieldX + a.lay.fieldW/2)
	y := float64(a.lay.fieldY + a.lay.fieldH/2)
	drawTextCentered(screen, a.cat.T("Press Enter to start"), cx, y, colorText)
	drawTextCentered(screen, a.cat.T("Tap to start"), cx, y+20, colorText)
	drawTextCentered(screen, a.cat.T("Arrows/WASD move, Space drills, M mutes, Q quits"), cx, y+60, colorText)
}

func (a *App) drawGameOver(screen *ebiten.Image) {
	vector.FillRect(screen, float32(a.lay.fieldX), float32(a.lay.fieldY), float32(a.lay.fieldW), float32(a.lay.fieldH), color.RGBA{A: 190}, false)
	a.drawTitle(screen, a.lay.fieldY+a.lay.fieldH/5, a.cat.T("Game Over"))

	sum := a.hud.summary
	lines := []string{
		a.cat.T("Final score: %d", sum.Score),
		a.cat.T("Level reached: %d", sum.Level),
		"",
		a.cat.T("Minerals collected"),
		fmt.Sprintf("%s: %d", a.cat.T("Copper"), sum.Minerals.Copper),
		fmt.Sprintf("%s: %d", a.cat.T("Gold"), sum.Minerals.Gold),
		fmt.Sprintf("%s: %d", a.cat.T("Rare Earth"), sum.Minerals.RareEarth),
		"",
		a.cat.T("Enemies popped: %d", sum.Enemies),
		"",
		a.cat.T("Press R to play again"),
		a.cat.T("Press C to copy the summary"),
	}
	cx := float64(a.lay.fieldX + a.lay.fieldW/2)
	y := float64(a.lay.fieldY + a.lay.fieldH/3)
	for i, l := range lines {
		drawTextCentered(screen, l, cx, y+float64(i)*18, colorText)
	}
}
