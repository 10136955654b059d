package desktop

import (
	"time"

	"github.com/geologgia/digging/internal/game"
	"github.com/geologgia/digging/internal/locale"
)

const bannerDuration = 2 * time.Second

// hud is the desktop HUD sink. It only stores what to show; Draw reads it.
type hud struct {
	clock game.Clock
	cat   *locale.Catalog

	status game.Status
	seen   bool

	notice      game.MineralNotice
	noticeUntil time.Time

	banner      string
	bannerUntil time.Time

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
	h.notice = n
	h.noticeUntil = h.clock.Now().Add(n.Duration)
}

func (h *hud) ShowGameOver(sum game.Summary) {
	h.summary = sum
	h.over = true
}

// flash shows a one-line message for bannerDuration.
func (h *hud) flash(msg string) {
	h.banner = msg
	h.bannerUntil = h.clock.Now().Add(bannerDuration)
}

// reset forgets the previous run.
func (h *hud) reset() {
	*h = hud{clock: h.clock, cat: h.cat}
}

func (h *hud) activeNotice() (game.MineralNotice, bool) {
	if h.noticeUntil.IsZero() || !h.clock.Now().Before(h.noticeUntil) {
		return game.MineralNotice{}, false
	}
	return h.notice, true
}

func (h *hud) activeBanner() (string, bool) {
	if h.banner == "" || !h.clock.Now().Before(h.bannerUntil) {
		return "", false
	}
	return h.banner, true
}
