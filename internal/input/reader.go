// internal/input/reader.go
//
// Debounced button input over device.Buttons.
// Responsibilities:
//   - Level-based polling of the four pads (1 ms cadence).
//   - 20 ms debounce: a contact must still be closed on re-check,
//     shorter bounces never register.
//   - Press-and-release semantics: one event per press, returned once
//     the contact opens again.
//   - Optional per-read deadline with a once-per-second countdown
//     rendered at the right edge of the display.
//
// All waiting goes through device.Clock, so a fake clock drives these
// loops deterministically in tests.

package input

import (
	"context"
	"fmt"
	"time"

	"github.com/robalobadob/simon-go/internal/device"
)

// DebounceWindow is how long a contact must stay closed to count as a
// press.
const DebounceWindow = 20 * time.Millisecond

// Timeout is the sentinel returned by ReadWithDeadline when the budget
// runs out. Timing out is a game event, not an error.
const Timeout device.Color = -1

const (
	pollInterval = time.Millisecond
	countdownRow = 1
	countdownCol = device.DisplayCols - 3
)

// Reader turns raw pad levels into debounced press events.
type Reader struct {
	pad   device.Buttons
	clock device.Clock
	disp  device.Display
}

func New(pad device.Buttons, clock device.Clock, disp device.Display) *Reader {
	return &Reader{pad: pad, clock: clock, disp: disp}
}

// ReadBlocking waits for one debounced press and returns its pad index
// once the contact opens again. It blocks indefinitely; cancelling the
// context is the only other way out.
func (r *Reader) ReadBlocking(ctx context.Context) (device.Color, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if c, ok := r.debouncedPress(); ok {
			if err := r.awaitRelease(ctx, c); err != nil {
				return 0, err
			}
			return c, nil
		}
		r.clock.Sleep(pollInterval)
	}
}

// ReadWithDeadline is ReadBlocking bounded by budget. The remaining
// whole seconds are rendered on the display, rewritten only when the
// value changes. Once the budget is spent it returns Timeout. A press
// that clears the debounce window before expiry still counts even when
// its release lands after.
func (r *Reader) ReadWithDeadline(ctx context.Context, budget time.Duration) (device.Color, error) {
	start := r.clock.Now()
	shown := -1
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		remaining := budget - r.clock.Now().Sub(start)
		if remaining <= 0 {
			return Timeout, nil
		}
		if secs := int((remaining + time.Second - 1) / time.Second); secs != shown {
			r.disp.WriteAt(countdownRow, countdownCol, fmt.Sprintf("%2ds", secs))
			shown = secs
		}
		if c, ok := r.debouncedPress(); ok {
			if err := r.awaitRelease(ctx, c); err != nil {
				return 0, err
			}
			return c, nil
		}
		r.clock.Sleep(pollInterval)
	}
}

// debouncedPress scans the pads once. A closed contact is re-checked
// after the debounce window; contacts that opened in between are
// bounces and are skipped.
func (r *Reader) debouncedPress() (device.Color, bool) {
	for c := device.Color(0); c < device.ColorCount; c++ {
		if !r.pad.Pressed(c) {
			continue
		}
		r.clock.Sleep(DebounceWindow)
		if r.pad.Pressed(c) {
			return c, true
		}
	}
	return 0, false
}

func (r *Reader) awaitRelease(ctx context.Context, c device.Color) error {
	for r.pad.Pressed(c) {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.clock.Sleep(pollInterval)
	}
	return nil
}
