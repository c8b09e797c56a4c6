// internal/term/audio.go
//
// The console's beeper. One persistent square-wave voice on the beep
// speaker; Play retunes and opens the gate, Stop closes it.

package term

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/robalobadob/simon-go/internal/device"
)

const (
	sampleRate = beep.SampleRate(48000)

	// amp keeps the square wave well under clipping.
	amp = 0.2
)

// Speaker implements device.Tone over the process-wide beep speaker.
type Speaker struct {
	osc *gatedSquare
}

var _ device.Tone = (*Speaker)(nil)

// NewSpeaker initializes the speaker and parks the voice on it for the
// life of the process.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("term: speaker init: %w", err)
	}
	osc := &gatedSquare{rate: sampleRate}
	speaker.Play(osc)
	return &Speaker{osc: osc}, nil
}

func (s *Speaker) Play(freqHz float64) {
	s.osc.setFreq(freqHz)
	s.osc.setGate(true)
}

func (s *Speaker) Stop() {
	s.osc.setGate(false)
}

// gatedSquare is an endless square-wave streamer. The game loop and
// the audio callback touch freq and gate from different goroutines,
// so both live in atomics; phase belongs to Stream alone.
type gatedSquare struct {
	rate     beep.SampleRate
	phase    float64
	freqBits atomic.Uint64
	gate     atomic.Bool
}

func (g *gatedSquare) setFreq(hz float64) {
	g.freqBits.Store(math.Float64bits(hz))
}

func (g *gatedSquare) setGate(open bool) {
	g.gate.Store(open)
}

func (g *gatedSquare) Stream(samples [][2]float64) (n int, ok bool) {
	freq := math.Float64frombits(g.freqBits.Load())
	open := g.gate.Load()
	for i := range samples {
		var val float64
		if open && freq > 0 {
			if g.phase < 0.5 {
				val = amp
			} else {
				val = -amp
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase) // Keep in [0, 1)
	}
	return len(samples), true
}

func (g *gatedSquare) Err() error { return nil }
