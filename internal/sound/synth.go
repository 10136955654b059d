package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

func sample(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// ADSR describes a linear attack/decay/sustain/release contour. Sustain is a
// fraction of peak.
type ADSR struct {
	Attack, Decay, Release time.Duration
	Sustain                float64
}

// gainAt evaluates the contour at t seconds into a note lasting d seconds.
func (e ADSR) gainAt(t, d float64) float64 {
	a, dc, r := e.Attack.Seconds(), e.Decay.Seconds(), e.Release.Seconds()
	switch {
	case t < 0 || t >= d:
		return 0
	case t < a:
		return t / a
	case t < a+dc:
		return 1 - (1-e.Sustain)*(t-a)/dc
	case t < d-r:
		return e.Sustain
	default:
		if r <= 0 {
			return e.Sustain
		}
		return e.Sustain * (d - t) / r
	}
}

// tone is a single enveloped oscillator note.
type tone struct {
	rate  beep.SampleRate
	freq  float64
	wave  Wave
	env   ADSR
	peak  float64
	total int
	pos   int
	phase float64
}

// Tone returns a finite note of freq Hz shaped by env at the given peak gain.
func Tone(rate beep.SampleRate, freq float64, d time.Duration, w Wave, env ADSR, peak float64) beep.Streamer {
	return &tone{rate: rate, freq: freq, wave: w, env: env, peak: peak, total: rate.N(d)}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if o.pos >= o.total {
		return 0, false
	}
	d := float64(o.total) / float64(o.rate)
	for i := range samples {
		if o.pos >= o.total {
			return i, true
		}
		t := float64(o.pos) / float64(o.rate)
		v := o.peak * o.env.gainAt(t, d) * sample(o.wave, o.phase)
		samples[i][0], samples[i][1] = v, v
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// noise is a burst of white noise with an optional swept low-pass.
type noise struct {
	rate   beep.SampleRate
	rng    *rand.Rand
	total  int
	pos    int
	gain   float64
	expEnv bool    // exponential fade to 1% instead of linear fade to 0
	cutLo  float64 // 0 disables the filter
	cutHi  float64
	y      float64
}

func (z *noise) Stream(samples [][2]float64) (n int, ok bool) {
	if z.pos >= z.total {
		return 0, false
	}
	for i := range samples {
		if z.pos >= z.total {
			return i, true
		}
		frac := float64(z.pos) / float64(z.total)
		x := z.rng.Float64()*2 - 1
		if z.cutHi > 0 {
			fc := z.cutHi * math.Pow(z.cutLo/z.cutHi, frac)
			a := 1 - math.Exp(-2*math.Pi*fc/float64(z.rate))
			z.y += a * (x - z.y)
			x = z.y
		}
		g := z.gain * (1 - frac)
		if z.expEnv {
			g = z.gain * math.Pow(0.01, frac)
		}
		v := x * g
		samples[i][0], samples[i][1] = v, v
		z.pos++
	}
	return len(samples), true
}

func (z *noise) Err() error { return nil }

// after delays s by d.
func after(rate beep.SampleRate, d time.Duration, s beep.Streamer) beep.Streamer {
	if d <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// setLinear updates an existing volume effect in place.
func setLinear(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(vol)
}

const ms = time.Millisecond

func toneEnv(a, d time.Duration, sustain float64, r time.Duration) ADSR {
	return ADSR{Attack: a, Decay: d, Sustain: sustain, Release: r}
}

// Collect arpeggios per mineral, stepped every 60ms.
var collectNotes = map[string][]float64{
	"COPPER":     {400, 500, 600},
	"GOLD":       {600, 800, 1000, 1200},
	"RARE_EARTH": {800, 1000, 1200, 1400, 1600},
}

// Background tune: C4 E4 G4 E4 D4 F4 G4 F4, 300ms per note.
var melody = []float64{262, 330, 392, 330, 294, 349, 392, 349}

const noteLength = 300 * time.Millisecond

// synth builds effect streamers at a fixed rate and sfx gain.
type synth struct {
	rate beep.SampleRate
	sfx  float64
	rng  *rand.Rand
}

func (s synth) tone(freq float64, d time.Duration, w Wave, env ADSR) beep.Streamer {
	return Tone(s.rate, freq, d, w, env, s.sfx)
}

func (s synth) noise(d time.Duration, gain float64, expEnv bool, cutHi, cutLo float64) beep.Streamer {
	return &noise{rate: s.rate, rng: s.rng, total: s.rate.N(d), gain: gain, expEnv: expEnv, cutHi: cutHi, cutLo: cutLo}
}

// dig: a 150ms low-passed crunch plus two short square thuds.
func (s synth) dig() beep.Streamer {
	return beep.Mix(
		s.noise(150*ms, 0.3*s.sfx*0.5, true, 800, 800),
		s.tone(120, 80*ms, WaveSquare, toneEnv(ms, 20*ms, 0.3, 50*ms)),
		after(s.rate, 40*ms, s.tone(80, 60*ms, WaveSquare, toneEnv(ms, 20*ms, 0.3, 40*ms))),
	)
}

func (s synth) collect(kind string) beep.Streamer {
	freqs, ok := collectNotes[kind]
	if !ok {
		freqs = []float64{500, 700}
	}
	parts := make([]beep.Streamer, 0, 2*len(freqs))
	for i, f := range freqs {
		at := time.Duration(i) * 60 * ms
		parts = append(parts,
			after(s.rate, at, s.tone(f, 200*ms, WaveSine, toneEnv(10*ms, 50*ms, 0.8, 100*ms))),
			after(s.rate, at, s.tone(f*2, 150*ms, WaveSine, toneEnv(10*ms, 50*ms, 0.4, 80*ms))),
		)
	}
	return beep.Mix(parts...)
}

func (s synth) hit() beep.Streamer {
	return beep.Mix(
		s.tone(80, 400*ms, WaveSaw, toneEnv(ms, 100*ms, 0.6, 200*ms)),
		after(s.rate, 50*ms, s.noise(100*ms, s.sfx*0.3, false, 0, 0)),
	)
}

func (s synth) explosion() beep.Streamer {
	return beep.Mix(
		s.tone(60, 500*ms, WaveSaw, toneEnv(ms, 150*ms, 0.4, 300*ms)),
		s.noise(300*ms, s.sfx*0.6*0.5, true, 2000, 100),
	)
}

func (s synth) levelComplete() beep.Streamer {
	notes := []float64{523, 659, 784, 1047}
	parts := make([]beep.Streamer, 0, 2*len(notes))
	for i, f := range notes {
		at := time.Duration(i) * 150 * ms
		parts = append(parts,
			after(s.rate, at, s.tone(f, 300*ms, WaveSine, toneEnv(10*ms, 100*ms, 0.7, 150*ms))),
			after(s.rate, at, s.tone(f*2, 250*ms, WaveSine, toneEnv(10*ms, 100*ms, 0.3, 100*ms))),
		)
	}
	return beep.Mix(parts...)
}

func (s synth) gameOver() beep.Streamer {
	notes := []float64{400, 350, 300, 250}
	parts := make([]beep.Streamer, 0, len(notes))
	for i, f := range notes {
		parts = append(parts, after(s.rate, time.Duration(i)*250*ms,
			s.tone(f, 400*ms, WaveTriangle, toneEnv(50*ms, 100*ms, 0.6, 200*ms))))
	}
	return beep.Mix(parts...)
}

// musicLoop plays the melody forever; stop it by pausing or dropping its Ctrl.
type musicLoop struct {
	rate    beep.SampleRate
	noteLen int
	pos     int
	phase   float64
}

func newMusicLoop(rate beep.SampleRate) *musicLoop {
	return &musicLoop{rate: rate, noteLen: rate.N(noteLength)}
}

func (m *musicLoop) Stream(samples [][2]float64) (n int, ok bool) {
	loop := m.noteLen * len(melody)
	attack := float64(m.rate.N(10 * ms))
	for i := range samples {
		at := m.pos % loop
		note := at / m.noteLen
		into := float64(at % m.noteLen)
		g := 1 - (into-attack)/(float64(m.noteLen)-attack)
		if into < attack {
			g = into / attack
		}
		if into == 0 {
			m.phase = 0
		}
		v := 0.3 * g * sample(WaveSquare, m.phase)
		samples[i][0], samples[i][1] = v, v
		m.phase += melody[note] / float64(m.rate)
		m.phase -= math.Floor(m.phase)
		m.pos++
	}
	return len(samples), true
}

func (m *musicLoop) Err() error { return nil }
