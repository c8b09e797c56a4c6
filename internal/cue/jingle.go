// internal/cue/jingle.go
//
// Flavor melodies: boot, game over and selection feedback. Lamps stay
// dark; muted playback degrades to silent waits so pacing never shifts.

package cue

import "time"

// Note is one melody step: hold Freq for Duration, then rest for Pause.
type Note struct {
	Freq     float64
	Duration time.Duration
	Pause    time.Duration
}

// JingleIntro is the boot melody, an ascending C major arpeggio.
var JingleIntro = []Note{
	{Freq: 262, Duration: 120 * time.Millisecond, Pause: 30 * time.Millisecond},
	{Freq: 330, Duration: 120 * time.Millisecond, Pause: 30 * time.Millisecond},
	{Freq: 392, Duration: 120 * time.Millisecond, Pause: 30 * time.Millisecond},
	{Freq: 523, Duration: 240 * time.Millisecond},
}

// JingleFailure is the game-over melody, a falling chromatic phrase.
var JingleFailure = []Note{
	{Freq: 311, Duration: 180 * time.Millisecond, Pause: 40 * time.Millisecond},
	{Freq: 294, Duration: 180 * time.Millisecond, Pause: 40 * time.Millisecond},
	{Freq: 277, Duration: 180 * time.Millisecond, Pause: 40 * time.Millisecond},
	{Freq: 262, Duration: 360 * time.Millisecond},
}

// JingleConfirm is the two-note selection blip.
var JingleConfirm = []Note{
	{Freq: 392, Duration: 80 * time.Millisecond, Pause: 20 * time.Millisecond},
	{Freq: 523, Duration: 120 * time.Millisecond},
}

// JingleVictory marks clearing the full sequence capacity, the arpeggio
// an octave above the boot melody.
var JingleVictory = []Note{
	{Freq: 523, Duration: 100 * time.Millisecond, Pause: 20 * time.Millisecond},
	{Freq: 659, Duration: 100 * time.Millisecond, Pause: 20 * time.Millisecond},
	{Freq: 784, Duration: 100 * time.Millisecond, Pause: 20 * time.Millisecond},
	{Freq: 1047, Duration: 300 * time.Millisecond},
}

// PlayJingle plays the melody back to back on the tone generator.
func (p *Player) PlayJingle(notes []Note, muted bool) {
	for _, n := range notes {
		if !muted {
			p.tone.Play(n.Freq)
		}
		p.clock.Sleep(n.Duration)
		if !muted {
			p.tone.Stop()
		}
		if n.Pause > 0 {
			p.clock.Sleep(n.Pause)
		}
	}
}
