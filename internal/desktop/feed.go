package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/geologgia/digging/internal/game"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 14
)

// Feed is a ring buffer of recent simulation events shown beside the
// playfield. It tails a SimLog rather than receiving events directly.
type Feed struct {
	entries []game.SimLogEntry
	head    int
	count   int
	cursor  int // SimLog entries already consumed
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]game.SimLogEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *Feed) Add(e game.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync pulls entries recorded since the last call and returns them.
func (f *Feed) Sync(log *game.SimLog) []game.SimLogEntry {
	if log.Len() < f.cursor {
		f.cursor = 0
	}
	fresh := log.Since(f.cursor)
	f.cursor = log.Len()
	for _, e := range fresh {
		if feedWorthy(e) {
			f.Add(e)
		}
	}
	return fresh
}

// feedWorthy drops the chatty per-step categories.
func feedWorthy(e game.SimLogEntry) bool {
	switch e.Category {
	case "move", "dig":
		return false
	case "enemy":
		return e.Key != "pos"
	}
	return true
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []game.SimLogEntry {
	out := make([]game.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		out[i] = f.entries[idx]
	}
	return out
}

func feedColor(e game.SimLogEntry) color.RGBA {
	switch e.Category {
	case "collect":
		return color.RGBA{R: 255, G: 215, B: 0, A: 255}
	case "enemy":
		return color.RGBA{R: 255, G: 69, B: 0, A: 255}
	case "hit":
		return color.RGBA{R: 220, G: 50, B: 50, A: 255}
	case "level", "state":
		return color.RGBA{R: 74, G: 144, B: 226, A: 255}
	default:
		return color.RGBA{R: 139, G: 110, B: 70, A: 255}
	}
}

// Draw renders the panel at panelX spanning panelH pixels.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int, title string) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), color.RGBA{R: 14, G: 10, B: 8, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1, color.RGBA{R: 90, G: 64, B: 40, A: 255}, false)
	vector.FillRect(screen, px, 0, feedPanelWidth, 18, color.RGBA{R: 40, G: 28, B: 18, A: 255}, false)
	drawText(screen, title, float64(panelX+8), 3, colorText)

	entries := f.Recent()
	maxVisible := (panelH - 26) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const highlight = 3

	y := 24
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 40, G: 30, B: 20, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, feedColor(e), false)
		line := fmt.Sprintf("%4d %-3s %s %s", e.Tick, e.Actor, e.Key, e.Value)
		drawText(screen, line, float64(panelX+12), float64(y), colorText)
		y += feedLineHeight
	}
}
