// internal/cue/player.go
//
// Cue playback: the lamp/tone pulses the game communicates with.
// Responsibilities:
//   - PlayStep: one 300 ms cue, lamp and tone per style and mute flag.
//   - PlaySequence: full challenge replay with level-based pacing.
//   - Gap: the pacing formula, tightening 10 ms per level with a
//     100 ms floor.
//
// Muted audio and dark styles degrade toward a silent wait of the same
// length, so timing is identical whatever the player can see or hear.

package cue

import (
	"time"

	"github.com/robalobadob/simon-go/internal/device"
)

// Style selects how a cue renders.
type Style int

const (
	// StyleLightTone drives the lamp and the tone together.
	StyleLightTone Style = iota

	// StyleToneOnly keeps the lamps dark (Stealth rounds).
	StyleToneOnly
)

// StepDuration is how long every cue holds, regardless of level.
const StepDuration = 300 * time.Millisecond

// toneHz holds the voice of each pad, the classic console's four notes
// from the blue G#3 up to the green G#4.
var toneHz = [device.ColorCount]float64{
	device.ColorGreen:  415,
	device.ColorRed:    310,
	device.ColorYellow: 252,
	device.ColorBlue:   209,
}

// ToneHz returns the pad's voice. Out-of-range pads are silent.
func ToneHz(c device.Color) float64 {
	if !c.Valid() {
		return 0
	}
	return toneHz[c]
}

// Gap is the pause between sequence steps at the given level.
func Gap(level int) time.Duration {
	g := 400 - 10*level
	if g < 100 {
		g = 100
	}
	return time.Duration(g) * time.Millisecond
}

// Player renders cues on the lamp bank and the tone generator.
type Player struct {
	lights device.Lights
	tone   device.Tone
	clock  device.Clock
}

func New(lights device.Lights, tone device.Tone, clock device.Clock) *Player {
	return &Player{lights: lights, tone: tone, clock: clock}
}

// PlayStep renders one cue for exactly StepDuration.
func (p *Player) PlayStep(c device.Color, style Style, muted bool) {
	lit := style == StyleLightTone
	if lit {
		p.lights.Set(c, true)
	}
	if !muted {
		p.tone.Play(ToneHz(c))
	}
	p.clock.Sleep(StepDuration)
	if !muted {
		p.tone.Stop()
	}
	if lit {
		p.lights.Set(c, false)
	}
}

// PlaySequence replays the challenge from the top, pausing Gap(level)
// between consecutive cues.
func (p *Player) PlaySequence(steps []device.Color, level int, style Style, muted bool) {
	gap := Gap(level)
	for i, c := range steps {
		if i > 0 {
			p.clock.Sleep(gap)
		}
		p.PlayStep(c, style, muted)
	}
}
