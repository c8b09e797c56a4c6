// internal/selector/selector.go
//
// Boot-time menu: mode selection and the dedicated score-reset action.
// Responsibilities:
//   - SelectMode: prompt, one debounced press, pad-to-mode mapping and
//     per-mode confirmation feedback.
//   - Stealth tutorial: an audio-only walk through the four pad voices,
//     so the pitch mapping is known before a round with dark lamps.
//   - HoldToReset: yellow held through the boot splash asks for a
//     high-score reset.

package selector

import (
	"context"
	"strings"
	"time"

	"github.com/robalobadob/simon-go/internal/cue"
	"github.com/robalobadob/simon-go/internal/device"
	"github.com/robalobadob/simon-go/internal/game"
)

// modeForPad maps the pads to modes in faceplate order.
var modeForPad = map[device.Color]game.Mode{
	device.ColorGreen:  game.ModeClassic,
	device.ColorRed:    game.ModeSpeed,
	device.ColorYellow: game.ModeReverse,
	device.ColorBlue:   game.ModeStealth,
}

// Reader is the slice of the input reader the menu needs.
type Reader interface {
	ReadBlocking(ctx context.Context) (device.Color, error)
}

// Player is the slice of the cue player the menu needs.
type Player interface {
	PlayStep(c device.Color, style cue.Style, muted bool)
	PlayJingle(notes []cue.Note, muted bool)
}

const (
	// holdToResetWindow is how long yellow must stay down at boot.
	holdToResetWindow = time.Second

	// tutorialGap separates the four tutorial voices.
	tutorialGap = 150 * time.Millisecond
)

// Selector runs the pre-game menu.
type Selector struct {
	reader Reader
	player Player
	disp   device.Display
	clock  device.Clock
	muted  bool
}

func New(reader Reader, player Player, disp device.Display, clock device.Clock, muted bool) *Selector {
	return &Selector{reader: reader, player: player, disp: disp, clock: clock, muted: muted}
}

// SelectMode blocks for one debounced press and returns the chosen
// mode. Every choice answers with feedback in its own pitch; Stealth
// answers with the tutorial instead of the blip.
func (s *Selector) SelectMode(ctx context.Context) (game.Mode, error) {
	s.disp.Clear()
	s.disp.WriteAt(0, 0, "SELECT MODE")
	s.disp.WriteAt(1, 0, "PRESS A COLOR")

	pad, err := s.reader.ReadBlocking(ctx)
	if err != nil {
		return 0, err
	}
	mode := modeForPad[pad]

	s.disp.Clear()
	s.disp.WriteAt(0, 0, "MODE")
	s.disp.WriteAt(1, 0, strings.ToUpper(mode.String()))
	s.confirm(mode, pad)
	return mode, nil
}

func (s *Selector) confirm(mode game.Mode, pad device.Color) {
	if mode == game.ModeStealth {
		s.tutorial()
		return
	}
	s.player.PlayStep(pad, cue.StyleLightTone, s.muted)
	s.player.PlayJingle(cue.JingleConfirm, s.muted)
}

// tutorial walks the four voices in pad order, lamps dark.
func (s *Selector) tutorial() {
	for c := device.Color(0); c < device.ColorCount; c++ {
		s.player.PlayStep(c, cue.StyleToneOnly, s.muted)
		s.clock.Sleep(tutorialGap)
	}
}

// HoldToReset reports whether the reset pad is down now and still down
// after the hold window. The host checks it once, right after the boot
// splash, and wipes the stored best on true.
func HoldToReset(pad device.Buttons, clock device.Clock) bool {
	if !pad.Pressed(device.ColorYellow) {
		return false
	}
	clock.Sleep(holdToResetWindow)
	return pad.Pressed(device.ColorYellow)
}
