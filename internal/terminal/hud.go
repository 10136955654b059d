package terminal

import (
	"fmt"
	"time"

	"github.com/geologgia/digging/internal/game"
	"github.com/geologgia/digging/internal/locale"
)

const bannerDuration = 2 * time.Second

// hud is the terminal HUD sink: one status line, one message line.
type hud struct {
	clock game.Clock
	cat   *locale.Catalog

	status game.Status
	seen   bool

	message      string
	messageKind  game.MineralKind
	mineral      bool
	messageUntil time.Time

	summary game.Summary
	over    bool
}

var _ game.HUDSink = (*hud)(nil)

func newHUD(clock game.Clock, cat *locale.Catalog) *hud {
	return &hud{clock: clock, cat: cat}
}

func (h *hud) ShowStatus(st game.Status) {
	if h.seen {
		switch game.CompareStatus(h.status, st) {
		case game.StatusLevelUp:
			h.flash(h.cat.T("Level %d!", st.Level))
		case game.StatusLifeLost:
			h.flash(h.cat.T("Lost a life!"))
		}
	}
	h.status, h.seen = st, true
}

func (h *hud) ShowMineral(n game.MineralNotice) {
	h.message = fmt.Sprintf("%s +%d", n.Name, n.Points)
	h.messageKind = n.Kind
	h.mineral = true
	h.messageUntil = h.clock.Now().Add(n.Duration)
}

func (h *hud) ShowGameOver(sum game.Summary) {
	h.summary = sum
	h.over = true
}

func (h *hud) flash(msg string) {
	h.message = msg
	h.mineral = false
	h.messageUntil = h.clock.Now().Add(bannerDuration)
}

func (h *hud) reset() {
	*h = hud{clock: h.clock, cat: h.cat}
}

// line returns the message to show now, if any.
func (h *hud) line() (string, bool) {
	if h.message == "" || !h.clock.Now().Before(h.messageUntil) {
		return "", false
	}
	return h.message, true
}
