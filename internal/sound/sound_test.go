package sound

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/geologgia/digging/internal/game"
)

// drain streams s to completion and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	return total, peak
}

func testSynth() synth {
	return synth{rate: sampleRate, sfx: DefaultSFXVolume, rng: rand.New(rand.NewSource(1))} // #nosec G404 -- test
}

func TestTone_LengthAndEnvelope(t *testing.T) {
	s := Tone(sampleRate, 440, 200*time.Millisecond, WaveSine, toneEnv(10*ms, 50*ms, 0.8, 100*ms), 0.5)
	n, peak := drain(t, s, 10*int(sampleRate))
	if n != sampleRate.N(200*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", sampleRate.N(200*time.Millisecond), n)
	}
	if peak > 0.5+1e-9 || peak < 0.3 {
		t.Fatalf("peak %.3f outside the envelope", peak)
	}
}

func TestADSR_Contour(t *testing.T) {
	e := toneEnv(10*ms, 50*ms, 0.5, 100*ms)
	d := 0.4
	cases := []struct{ at, want float64 }{
		{0, 0},
		{0.005, 0.5},
		{0.01, 1},
		{0.035, 0.75},
		{0.2, 0.5},
		{0.35, 0.25},
		{0.4, 0},
	}
	for _, c := range cases {
		if got := e.gainAt(c.at, d); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("gainAt(%.3f) = %.3f, want %.3f", c.at, got, c.want)
		}
	}
}

func TestEffects_AreFiniteAndBounded(t *testing.T) {
	s := testSynth()
	limit := 5 * int(sampleRate)
	cases := map[string]struct {
		stream beep.Streamer
		length time.Duration
	}{
		"dig":       {s.dig(), 150 * time.Millisecond},
		"copper":    {s.collect("COPPER"), 320 * time.Millisecond},
		"rare":      {s.collect("RARE_EARTH"), 440 * time.Millisecond},
		"hit":       {s.hit(), 400 * time.Millisecond},
		"explosion": {s.explosion(), 500 * time.Millisecond},
		"level":     {s.levelComplete(), 750 * time.Millisecond},
		"game over": {s.gameOver(), 1150 * time.Millisecond},
	}
	for name, c := range cases {
		n, peak := drain(t, c.stream, limit)
		if n >= limit {
			t.Fatalf("%s never ended", name)
		}
		want := sampleRate.N(c.length)
		if n < want-512 || n > want+512 {
			t.Fatalf("%s: expected about %d samples, got %d", name, want, n)
		}
		if peak == 0 || peak > 2 {
			t.Fatalf("%s: implausible peak %.3f", name, peak)
		}
	}
}

func TestMusicLoop_RunsForever(t *testing.T) {
	loop := newMusicLoop(sampleRate)
	limit := 3 * sampleRate.N(noteLength*time.Duration(len(melody)))
	n, peak := drain(t, loop, limit)
	if n < limit {
		t.Fatalf("music loop stopped after %d samples", n)
	}
	if peak > 0.3+1e-9 || peak == 0 {
		t.Fatalf("unexpected music peak %.3f", peak)
	}
}

func newTestManager() (*Manager, *[]beep.Streamer) {
	m := NewManager()
	played := &[]beep.Streamer{}
	m.play = func(s beep.Streamer) bool {
		*played = append(*played, s)
		return true
	}
	return m, played
}

func TestManager_CuesReachOutput(t *testing.T) {
	m, played := newTestManager()
	m.OnDig()
	m.OnCollect(game.Gold)
	m.OnHit()
	m.OnExplosion()
	m.OnLevelComplete()
	m.OnGameOver()
	if len(*played) != 6 {
		t.Fatalf("expected 6 streamers, got %d", len(*played))
	}
}

func TestManager_MusicStartsOnce(t *testing.T) {
	m, played := newTestManager()
	m.OnMusicStart()
	m.OnMusicStart()
	if len(*played) != 1 || !m.MusicPlaying() {
		t.Fatalf("music should start once, played=%d", len(*played))
	}
	ctrl := (*played)[0].(*beep.Ctrl)
	m.OnMusicStop()
	if m.MusicPlaying() || ctrl.Streamer != nil {
		t.Fatal("stopping should detach the tune")
	}
	m.OnMusicStart()
	if len(*played) != 2 {
		t.Fatal("music should restart after a stop")
	}
}

func TestManager_ToggleMutes(t *testing.T) {
	m, played := newTestManager()
	m.OnMusicStart()
	if m.Toggle() {
		t.Fatal("first toggle should disable")
	}
	if m.MusicPlaying() {
		t.Fatal("disabling should stop the music")
	}
	m.OnDig()
	m.OnMusicStart()
	if len(*played) != 1 {
		t.Fatalf("muted manager should not play, played=%d", len(*played))
	}
	if !m.Toggle() || !m.Enabled() {
		t.Fatal("second toggle should enable")
	}
}

func TestManager_VolumesClamp(t *testing.T) {
	m, _ := newTestManager()
	m.SetVolume(2)
	m.SetMusicVolume(-1)
	m.SetSFXVolume(0.25)
	master, music, sfx := m.Volumes()
	if master != 1 || music != 0 || sfx != 0.25 {
		t.Fatalf("unexpected volumes %.2f %.2f %.2f", master, music, sfx)
	}
	m.OnMusicStart()
	m.SetMusicVolume(0.5)
	if m.musicGain.Silent {
		t.Fatal("raising the music volume should unmute the tune")
	}
}

func TestManager_UninitialisedIsSilent(t *testing.T) {
	m := NewManager()
	m.OnDig()
	m.OnMusicStart()
	if m.MusicPlaying() {
		t.Fatal("music cannot be playing without an audio device")
	}
	m.OnMusicStop()
	m.Close()
}

func TestManager_RejectedMusicIsNotPlaying(t *testing.T) {
	m := NewManager()
	tries := 0
	m.play = func(beep.Streamer) bool {
		tries++
		return false
	}
	m.OnMusicStart()
	m.OnMusicStart()
	if m.MusicPlaying() {
		t.Fatal("a tune the output refused should not count as playing")
	}
	if tries != 2 {
		t.Fatalf("each start should retry the output, tries=%d", tries)
	}
}
