// internal/game/policy.go
//
// The per-mode policy table. All mode-specific branching lives in this
// one place: the order steps are expected back, which input channel
// collects them, and how cues render. The engine itself stays
// mode-agnostic.

package game

import "github.com/robalobadob/simon-go/internal/cue"

type inputChannel int

const (
	// channelBlocking waits for each reply step with no time bound.
	channelBlocking inputChannel = iota

	// channelDeadline bounds each reply step with StepDeadline.
	channelDeadline
)

// policy is one row of the mode table.
type policy struct {
	expectedIndex func(level, i int) int
	channel       inputChannel
	style         cue.Style
}

var policies = map[Mode]policy{
	ModeClassic: {expectedIndex: forwardIndex, channel: channelBlocking, style: cue.StyleLightTone},
	ModeSpeed:   {expectedIndex: forwardIndex, channel: channelDeadline, style: cue.StyleLightTone},
	ModeReverse: {expectedIndex: reverseIndex, channel: channelBlocking, style: cue.StyleLightTone},
	ModeStealth: {expectedIndex: forwardIndex, channel: channelBlocking, style: cue.StyleToneOnly},
}

func forwardIndex(level, i int) int { return i }

// reverseIndex expects the newest step first: reply position i maps to
// sequence index level-1-i.
func reverseIndex(level, i int) int { return level - 1 - i }

func policyFor(m Mode) policy {
	if p, ok := policies[m]; ok {
		return p
	}
	return policies[ModeClassic]
}
