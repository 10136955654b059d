// Package input normalises keyboard and touch events into discrete intents
// for the simulation.
package input

import (
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/geologgia/digging/internal/game"
)

// HoldInterval is how often a held direction re-issues a move.
const HoldInterval = 150 * time.Millisecond

// Kind distinguishes intents.
type Kind uint8

const (
	KindMove Kind = iota
	KindDrill
)

// Intent is one discrete request for the simulation.
type Intent struct {
	Kind Kind
	Dir  game.Direction // KindMove only
}

// Move builds a directional intent.
func Move(d game.Direction) Intent { return Intent{Kind: KindMove, Dir: d} }

// Drill builds the drill intent.
func Drill() Intent { return Intent{Kind: KindDrill} }

// Target receives intents. *game.Sim satisfies it.
type Target interface {
	Move(dir game.Direction) bool
	Drill()
}

// Apply forwards in to t.
func Apply(t Target, in Intent) {
	switch in.Kind {
	case KindMove:
		t.Move(in.Dir)
	case KindDrill:
		t.Drill()
	}
}

var keyMap = map[string]Intent{
	"ArrowUp":    Move(game.Up),
	"ArrowDown":  Move(game.Down),
	"ArrowLeft":  Move(game.Left),
	"ArrowRight": Move(game.Right),
	"w":          Move(game.Up),
	"s":          Move(game.Down),
	"a":          Move(game.Left),
	"d":          Move(game.Right),
	"W":          Move(game.Up),
	"S":          Move(game.Down),
	"A":          Move(game.Left),
	"D":          Move(game.Right),
	" ":          Drill(),
	"Enter":      Drill(),
}

// Lookup maps a key name (ArrowUp, w, Enter, " ", ...) to its intent.
func Lookup(key string) (Intent, bool) {
	in, ok := keyMap[key]
	return in, ok
}

// Keys suppresses keyboard auto-repeat: a key yields one intent per press.
type Keys struct {
	down mapset.Set[string]
}

// NewKeys creates an empty key tracker.
func NewKeys() *Keys {
	return &Keys{down: mapset.New[string]()}
}

// Press records key as down. It returns the key's intent only on the first
// press since the last release.
func (k *Keys) Press(key string) (Intent, bool) {
	if k.down.Has(key) {
		return Intent{}, false
	}
	k.down.Put(key)
	return Lookup(key)
}

// Release records key as up.
func (k *Keys) Release(key string) {
	k.down.Remove(key)
}

// Reset forgets every pressed key, e.g. on a screen change.
func (k *Keys) Reset() { k.down.Clear() }

// Repeater turns a held direction (touch D-pad) into a move on press and
// another every interval while it stays held. The most recently pressed
// direction wins when several are held.
type Repeater struct {
	interval time.Duration
	held     mapset.Set[game.Direction]
	order    []game.Direction
	next     time.Time
}

// NewRepeater creates a repeater firing every interval.
func NewRepeater(interval time.Duration) *Repeater {
	if interval <= 0 {
		interval = HoldInterval
	}
	return &Repeater{interval: interval, held: mapset.New[game.Direction]()}
}

// Press starts holding d and returns the immediate move.
func (r *Repeater) Press(d game.Direction, now time.Time) (Intent, bool) {
	if r.held.Has(d) {
		return Intent{}, false
	}
	r.held.Put(d)
	r.order = append(r.order, d)
	r.next = now.Add(r.interval)
	return Move(d), true
}

// Release stops holding d.
func (r *Repeater) Release(d game.Direction) {
	if !r.held.Has(d) {
		return
	}
	r.held.Remove(d)
	for i, o := range r.order {
		if o == d {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ReleaseAll stops every hold.
func (r *Repeater) ReleaseAll() {
	r.held.Clear()
	r.order = r.order[:0]
}

// Active reports whether any direction is held.
func (r *Repeater) Active() bool { return r.held.Size() > 0 }

// Poll returns a repeat move when the interval has elapsed.
func (r *Repeater) Poll(now time.Time) (Intent, bool) {
	if len(r.order) == 0 || now.Before(r.next) {
		return Intent{}, false
	}
	r.next = r.next.Add(r.interval)
	if r.next.Before(now) {
		// Skip missed beats after a stall instead of bursting.
		r.next = now.Add(r.interval)
	}
	return Move(r.order[len(r.order)-1]), true
}
