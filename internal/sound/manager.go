// Package sound is the procedural audio sink: every cue is synthesised on the
// fly and mixed into a single beep speaker stream.
package sound

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/geologgia/digging/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Default mix levels.
const (
	DefaultVolume      = 1.0
	DefaultMusicVolume = 0.15
	DefaultSFXVolume   = 0.4
)

// Manager implements game.AudioSink. Until Init succeeds every cue is
// dropped, so a machine without an audio device still plays silently.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
	enabled     bool

	volume      float64
	musicVolume float64
	sfxVolume   float64

	music     *beep.Ctrl
	musicGain *effects.Volume
	rng       *rand.Rand

	// play hands a finished streamer to the output and reports whether it
	// was accepted. Tests replace it.
	play func(beep.Streamer) bool
}

var _ game.AudioSink = (*Manager)(nil)

// NewManager creates a manager with the default mix.
func NewManager() *Manager {
	m := &Manager{
		mixer:       &beep.Mixer{},
		enabled:     true,
		volume:      DefaultVolume,
		musicVolume: DefaultMusicVolume,
		sfxVolume:   DefaultSFXVolume,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- audio noise
	}
	m.master = newVolume(m.mixer, m.volume)
	m.play = m.toSpeaker
	return m
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.master)
	m.initialized = true
	return nil
}

// Close silences everything and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
	m.music = nil
}

func (m *Manager) toSpeaker(s beep.Streamer) bool {
	if !m.initialized {
		return false
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return true
}

func (m *Manager) fx(build func(synth) beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	m.play(build(synth{rate: sampleRate, sfx: m.sfxVolume, rng: m.rng}))
}

func (m *Manager) OnDig() { m.fx(synth.dig) }

func (m *Manager) OnCollect(kind game.MineralKind) {
	m.fx(func(s synth) beep.Streamer { return s.collect(kind.String()) })
}

func (m *Manager) OnHit()           { m.fx(synth.hit) }
func (m *Manager) OnExplosion()     { m.fx(synth.explosion) }
func (m *Manager) OnLevelComplete() { m.fx(synth.levelComplete) }
func (m *Manager) OnGameOver()      { m.fx(synth.gameOver) }

// OnMusicStart starts the looping tune unless it is already running.
func (m *Manager) OnMusicStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled || m.music != nil {
		return
	}
	gain := newVolume(newMusicLoop(sampleRate), m.musicVolume)
	ctrl := &beep.Ctrl{Streamer: gain}
	if !m.play(ctrl) {
		return
	}
	m.music = ctrl
	m.musicGain = gain
}

// OnMusicStop ends the tune.
func (m *Manager) OnMusicStop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusic()
}

func (m *Manager) stopMusic() {
	if m.music == nil {
		return
	}
	m.withSpeaker(func() {
		// A Ctrl with no streamer reports drained, so the mixer drops it.
		m.music.Streamer = nil
	})
	m.music = nil
	m.musicGain = nil
}

func (m *Manager) withSpeaker(fn func()) {
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// MusicPlaying reports whether the tune is running.
func (m *Manager) MusicPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.music != nil
}

// Toggle flips sound on or off and returns the new state. Turning sound off
// also stops the music; turning it back on does not restart it.
func (m *Manager) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = !m.enabled
	if !m.enabled {
		m.stopMusic()
	}
	return m.enabled
}

// Enabled reports whether cues are audible.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// SetVolume sets the master level in [0,1].
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp01(v)
	m.withSpeaker(func() { setLinear(m.master, m.volume) })
}

// SetMusicVolume sets the music level in [0,1], applied to the running tune.
func (m *Manager) SetMusicVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicVolume = clamp01(v)
	if m.musicGain != nil {
		m.withSpeaker(func() { setLinear(m.musicGain, m.musicVolume) })
	}
}

// SetSFXVolume sets the effects level in [0,1] for cues played from now on.
func (m *Manager) SetSFXVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp01(v)
}

// Volumes returns the master, music and effects levels.
func (m *Manager) Volumes() (master, music, sfx float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume, m.musicVolume, m.sfxVolume
}
