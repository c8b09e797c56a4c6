// internal/game/sequence.go
//
// The append-only challenge sequence. Grows one uniform step per round
// up to a fixed capacity, never shrinks, and is discarded with the
// session. Once full it stays static and play continues against it.

package game

import "github.com/robalobadob/simon-go/internal/device"

// Sequence holds the color steps of the current challenge.
type Sequence struct {
	steps []device.Color
	max   int
}

// NewSequence makes an empty sequence capped at max steps. Non-positive
// max takes the default.
func NewSequence(max int) *Sequence {
	if max <= 0 {
		max = DefaultMaxSequence
	}
	return &Sequence{steps: make([]device.Color, 0, max), max: max}
}

// Extend appends one uniform step in the pad range. At capacity it is a
// no-op and reports false; the write index never passes max-1.
func (s *Sequence) Extend(rng Rand) bool {
	if len(s.steps) >= s.max {
		return false
	}
	s.steps = append(s.steps, device.Color(rng.Intn(device.ColorCount)))
	return true
}

// At returns step i. Callers stay within Len; the engine never reads
// past the current level.
func (s *Sequence) At(i int) device.Color { return s.steps[i] }

func (s *Sequence) Len() int { return len(s.steps) }

// Steps exposes the backing slice for cue playback. Callers must not
// mutate it.
func (s *Sequence) Steps() []device.Color { return s.steps }
