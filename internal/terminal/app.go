// Package terminal is the tcell frontend. Terminals report key presses but
// not releases, so every key event (including the terminal's own auto-repeat)
// is one intent.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/geologgia/digging/internal/game"
	"github.com/geologgia/digging/internal/input"
	"github.com/geologgia/digging/internal/locale"
)

type screenKind uint8

const (
	screenStart screenKind = iota
	screenPlay
	screenOver
)

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

// App runs the game inside a tcell screen.
type App struct {
	screen tcell.Screen
	sim    *game.Sim
	log    *game.SimLog
	hud    *hud
	cat    *locale.Catalog
	clock  game.Clock
	mute   Muter
	kind   screenKind
	seen   int // log entries already scanned for banners
}

// New wraps an initialised screen. The caller owns screen.Fini.
func New(screen tcell.Screen, opts Options) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = game.SystemClock{}
	}
	if opts.Catalog == nil {
		opts.Catalog = locale.English()
	}
	a := &App{
		screen: screen,
		log:    game.NewSimLog(false),
		cat:    opts.Catalog,
		clock:  opts.Clock,
		mute:   opts.Mute,
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
	return a, nil
}

// Sim exposes the simulation.
func (a *App) Sim() *game.Sim { return a.sim }

// Run drives the game until the player quits.
func (a *App) Run() error {
	ticker := time.NewTicker(a.sim.Config().TickDuration())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.tick()
			a.draw()
		}
	}
}

// tick advances the simulation once while a run is in progress.
func (a *App) tick() {
	if a.kind != screenPlay {
		return
	}
	a.sim.Update()
	a.scanLog()
	if a.sim.State().GameOver {
		a.kind = screenOver
	}
}

func (a *App) start() {
	a.hud.reset()
	a.sim.Restart()
	a.seen = a.log.Len()
	a.kind = screenPlay
}

// handleEvent reacts to one terminal event and reports whether to keep going.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	r := ev.Rune()
	if ev.Key() == tcell.KeyRune {
		switch r {
		case 'q', 'Q':
			return false
		case 'm', 'M':
			a.toggleSound()
			return true
		}
	}

	switch a.kind {
	case screenStart:
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && r == ' ') {
			a.start()
		}
	case screenOver:
		if ev.Key() == tcell.KeyRune {
			switch r {
			case 'r', 'R':
				a.start()
			case 'c', 'C':
				a.copySummary()
			}
		}
	case screenPlay:
		if in, ok := input.Lookup(keyName(ev)); ok {
			input.Apply(a.sim, in)
		}
	}
	return true
}

// keyName converts a tcell key to the names input.Lookup understands.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

// scanLog raises banners for events that have no dedicated sink call.
func (a *App) scanLog() {
	for _, e := range a.log.Since(a.seen) {
		if e.Category == "enemy" && e.Key == "explode" {
			a.hud.flash(a.cat.T("Enemy popped +%d", int(e.NumVal)))
		}
	}
	a.seen = a.log.Len()
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

func (a *App) copySummary() {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", a.cat.T("GeologgIA Digger"))
	sb.WriteString(game.FormatSummary(a.hud.summary))
	if err := clipboard.WriteAll(sb.String()); err != nil {
		a.hud.flash(a.cat.T("Clipboard unavailable"))
		return
	}
	a.hud.flash(a.cat.T("Summary copied"))
}
