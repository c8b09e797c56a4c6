// internal/device/device.go
//
// Peripheral capability boundary for the game core.
// Defines:
//   - Color: shared index for pads, lamps and sequence steps.
//   - Display, Lights, Tone, Buttons, ByteStore, Clock: one narrow
//     interface per capability the appliance exposes.
//
// The core is written against these interfaces only. Hosts decide what
// stands behind them: the terminal rig, real GPIO, or the in-package
// fakes used by tests.

package device

import "time"

// Color indexes the four pads, lamps and sequence steps.
type Color int

const (
	ColorGreen Color = iota
	ColorRed
	ColorYellow
	ColorBlue
)

// ColorCount is the number of pads on the faceplate.
const ColorCount = 4

// Display geometry shared by the reader, the engine and the rig.
const (
	DisplayRows = 2
	DisplayCols = 16
)

var colorNames = map[Color]string{
	ColorGreen:  "green",
	ColorRed:    "red",
	ColorYellow: "yellow",
	ColorBlue:   "blue",
}

func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether c names a real pad.
func (c Color) Valid() bool {
	return c >= 0 && c < ColorCount
}

// Display is a two-line, sixteen-column character display.
type Display interface {
	// Clear blanks both rows.
	Clear()

	// WriteAt draws text starting at the given row and column.
	// Implementations crop anything outside the window.
	WriteAt(row, col int, text string)
}

// Lights switches the four color lamps.
type Lights interface {
	Set(c Color, on bool)
}

// Tone is a single-voice tone generator. Play holds the tone until Stop
// is called; starting a new tone replaces the current one.
type Tone interface {
	Play(freqHz float64)
	Stop()
}

// Buttons reports the live state of the four pads. Pressed returns true
// while the contact is closed. Implementations over raw GPIO lines are
// expected to normalize active-low levels.
type Buttons interface {
	Pressed(c Color) bool
}

// ByteStore is an EEPROM-like array of persisted byte cells.
type ByteStore interface {
	ReadByte(addr uint16) (byte, error)
	WriteByte(addr uint16, v byte) error
}

// Clock is the core's only source of time. All blocking code sleeps
// through it, which lets tests drive a fake timeline.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}
