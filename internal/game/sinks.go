package game

import (
	"time"

	"github.com/google/uuid"
)

// AudioSink receives fire-and-forget sound cues. The simulation never waits
// on or branches on these calls.
type AudioSink interface {
	OnDig()
	OnCollect(kind MineralKind)
	OnHit()
	OnExplosion()
	OnLevelComplete()
	OnGameOver()
	OnMusicStart()
	OnMusicStop()
}

// Status is the HUD line: level, score and lives.
type Status struct {
	Level int
	Score int
	Lives int
}

// StatusChange is what a HUD should announce between two status updates.
type StatusChange int

const (
	StatusUnchanged StatusChange = iota
	StatusLevelUp
	StatusLifeLost
)

// CompareStatus classifies the step from prev to next. A level-up wins over
// a lost life, and losing the last life is left to the game-over screen.
func CompareStatus(prev, next Status) StatusChange {
	switch {
	case next.Level > prev.Level:
		return StatusLevelUp
	case next.Lives < prev.Lives && next.Lives > 0:
		return StatusLifeLost
	}
	return StatusUnchanged
}

// MineralNotice is the transient "mineral found" banner.
type MineralNotice struct {
	Kind     MineralKind
	Icon     string
	Name     string
	Points   int
	Duration time.Duration // how long the HUD should keep it on screen
}

// Summary is the final scoreboard surfaced at game over.
type Summary struct {
	Session  uuid.UUID
	Level    int
	Score    int
	Minerals Inventory
	Ticks    int
	Enemies  int // enemies popped over the whole run
}

// HUDSink receives status changes and notifications.
type HUDSink interface {
	ShowStatus(st Status)
	ShowMineral(n MineralNotice)
	ShowGameOver(sum Summary)
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) OnDig()                {}
func (NopAudio) OnCollect(MineralKind) {}
func (NopAudio) OnHit()                {}
func (NopAudio) OnExplosion()          {}
func (NopAudio) OnLevelComplete()      {}
func (NopAudio) OnGameOver()           {}
func (NopAudio) OnMusicStart()         {}
func (NopAudio) OnMusicStop()          {}

// NopHUD discards every update.
type NopHUD struct{}

func (NopHUD) ShowStatus(Status)         {}
func (NopHUD) ShowMineral(MineralNotice) {}
func (NopHUD) ShowGameOver(Summary)      {}

// MultiAudio fans each cue out to several sinks in order.
type MultiAudio []AudioSink

func (m MultiAudio) OnDig() {
	for _, a := range m {
		a.OnDig()
	}
}

func (m MultiAudio) OnCollect(kind MineralKind) {
	for _, a := range m {
		a.OnCollect(kind)
	}
}

func (m MultiAudio) OnHit() {
	for _, a := range m {
		a.OnHit()
	}
}

func (m MultiAudio) OnExplosion() {
	for _, a := range m {
		a.OnExplosion()
	}
}

func (m MultiAudio) OnLevelComplete() {
	for _, a := range m {
		a.OnLevelComplete()
	}
}

func (m MultiAudio) OnGameOver() {
	for _, a := range m {
		a.OnGameOver()
	}
}

func (m MultiAudio) OnMusicStart() {
	for _, a := range m {
		a.OnMusicStart()
	}
}

func (m MultiAudio) OnMusicStop() {
	for _, a := range m {
		a.OnMusicStop()
	}
}
