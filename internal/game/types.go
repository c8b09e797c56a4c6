// internal/game/types.go
//
// Core type definitions for the memory game engine.
// Defines:
//   - Mode: the four challenge variants (classic/speed/reverse/stealth).
//   - Status: round controller phases plus the legal transition map.
//   - RoundState: read-only snapshot of session progress.
//   - Rand: the dice the sequence grows with.

package game

import (
	"fmt"
	"time"
)

// Mode selects the challenge rules for a session.
type Mode int

const (
	// ModeClassic replays with lights and tones; replies are unhurried.
	ModeClassic Mode = iota

	// ModeSpeed bounds every reply step with StepDeadline.
	ModeSpeed

	// ModeReverse expects the sequence echoed newest step first.
	ModeReverse

	// ModeStealth replays with tones only, lamps dark.
	ModeStealth
)

var modeNames = map[Mode]string{
	ModeClassic: "classic",
	ModeSpeed:   "speed",
	ModeReverse: "reverse",
	ModeStealth: "stealth",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "unknown"
}

// ParseMode maps a config string back to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if n == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("game: unknown mode %q", s)
}

// Session defaults and fixed timing shared across modes.
const (
	DefaultMaxSequence = 100
	DefaultLives       = 3

	// StepDeadline bounds each reply step in Speed mode.
	StepDeadline = 3 * time.Second

	roundPause   = 500 * time.Millisecond
	failurePause = 1200 * time.Millisecond
)

// RoundState is a read-only snapshot of session progress.
type RoundState struct {
	Level int  // steps in the current challenge
	Lives int  // failed attempts left
	Mode  Mode // rules in effect
	Muted bool // audio suppressed
}

// Status is the round controller phase.
type Status int

const (
	// StatusSelecting covers everything before the first round: the
	// host is still picking a mode.
	StatusSelecting Status = iota

	// StatusPlaying covers replay and reply collection.
	StatusPlaying

	// StatusFailed is the intermission after a failed attempt with
	// lives left.
	StatusFailed

	// StatusOver is terminal. What restart means is the host's call.
	StatusOver
)

var statusNames = map[Status]string{
	StatusSelecting: "selecting",
	StatusPlaying:   "playing",
	StatusFailed:    "failed",
	StatusOver:      "over",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// validTransitions lists the phase changes the controller may make.
var validTransitions = map[Status][]Status{
	StatusSelecting: {StatusPlaying},
	StatusPlaying:   {StatusFailed, StatusOver},
	StatusFailed:    {StatusPlaying},
	StatusOver:      nil,
}

// CanTransition reports whether moving between the two phases is legal.
func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Rand is the session's single source of randomness. *math/rand.Rand
// satisfies it; tests script their own.
type Rand interface {
	Intn(n int) int
}
