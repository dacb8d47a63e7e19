package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType is an oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a finite tone that can glide linearly between two
// frequencies over its length.
type oscillator struct {
	from, to float64
	phase    float64
	length   int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a fixed-frequency tone of the given length.
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, d, wave, rate)
}

// NewGlide returns a tone sweeping from one frequency to another.
func NewGlide(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		from:   from,
		to:     to,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(from*1000) + int64(d))), // #nosec G404 -- audio noise only
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.length {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.length {
			return i, true
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.length)
		freq := o.from + (o.to-o.from)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s over d with the given attack and release times.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales a stream linearly; 0 or below is silence.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped oscillator with a short click-free attack.
func tone(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewGlide(from, to, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Sound builds the streamer for a cue. Every sound is finite.
func Sound(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c.Kind {
	case CueLeap:
		return gain(tone(300, 700, 90*time.Millisecond, WaveSine, rate), 0.5)
	case CueCapture:
		return gain(tone(520, 520, 110*time.Millisecond, WaveSine, rate), 0.6)
	case CueCombo:
		// Each combo step raises the chime by a whole tone.
		base := 660 * math.Pow(2, float64(min(c.Level, 8))/6)
		return gain(beep.Seq(
			tone(base, base, 60*time.Millisecond, WaveSine, rate),
			tone(base*1.5, base*1.5, 90*time.Millisecond, WaveSine, rate),
		), 0.5)
	case CuePickup:
		return gain(beep.Mix(
			gain(tone(1320, 1320, 150*time.Millisecond, WaveSine, rate), 0.7),
			gain(tone(2640, 2640, 150*time.Millisecond, WaveSine, rate), 0.3),
		), 0.5)
	case CueSmash, CueBash:
		return gain(tone(0, 0, 140*time.Millisecond, WaveNoise, rate), 0.4)
	case CueConsume:
		return gain(tone(120, 60, 400*time.Millisecond, WaveSaw, rate), 0.35)
	case CueBoss:
		return gain(beep.Seq(
			tone(220, 220, 150*time.Millisecond, WaveSquare, rate),
			tone(330, 330, 150*time.Millisecond, WaveSquare, rate),
		), 0.25)
	case CueDeath:
		return gain(tone(300, 50, 600*time.Millisecond, WaveSaw, rate), 0.5)
	}
	return beep.Silence(0)
}
