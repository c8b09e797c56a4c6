// internal/term/rig.go
//
// Terminal faceplate: the console's display, lamps and buttons drawn
// with tcell in an ordinary terminal.
// Responsibilities:
//   - device.Display: the two-line readout, boxed.
//   - device.Lights: four pads, bright when lit.
//   - device.Buttons: keys 1-4 press the pads. Terminals deliver no
//     key-up, so one keypress closes a pad for a fixed pulse.
//   - Quit keys (Esc, Ctrl-C, q) fire the host's shutdown callback.

package term

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/simon-go/internal/device"
)

const (
	// keyHold is how long one keypress keeps a pad closed.
	keyHold = 120 * time.Millisecond

	refreshInterval = 50 * time.Millisecond
)

var (
	padLit  = [device.ColorCount]tcell.Color{tcell.ColorGreen, tcell.ColorRed, tcell.ColorYellow, tcell.ColorBlue}
	padDark = [device.ColorCount]tcell.Color{tcell.ColorDarkGreen, tcell.ColorDarkRed, tcell.ColorOlive, tcell.ColorNavy}

	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleFrame  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLCD    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleLegend = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
)

// Rig owns the tcell screen and backs the device interfaces the game
// core plays against.
type Rig struct {
	screen tcell.Screen
	banner []string
	onQuit func()

	mu           sync.Mutex
	cells        [device.DisplayRows][device.DisplayCols]rune
	lit          [device.ColorCount]bool
	pressedUntil [device.ColorCount]time.Time

	keys      chan struct{}
	done      chan struct{}
	quitOnce  sync.Once
	closeOnce sync.Once
}

var (
	_ device.Display = (*Rig)(nil)
	_ device.Lights  = (*Rig)(nil)
	_ device.Buttons = (*Rig)(nil)
)

// New takes over the terminal. onQuit runs once, from the event
// goroutine, when a quit key is pressed.
func New(banner []string, onQuit func()) (*Rig, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: new screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	s.Clear()
	s.HideCursor()

	r := &Rig{
		screen: s,
		banner: banner,
		onQuit: onQuit,
		keys:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	r.blank()
	r.redraw()

	go r.eventLoop()
	go r.refreshLoop()
	return r, nil
}

// Close releases the terminal. Safe to call more than once.
func (r *Rig) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.mu.Lock()
		r.screen.Fini()
		r.mu.Unlock()
	})
}

func (r *Rig) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blankLocked()
	r.draw()
}

func (r *Rig) WriteAt(row, col int, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row < 0 || row >= device.DisplayRows {
		return
	}
	for i, ch := range []rune(text) {
		c := col + i
		if c < 0 || c >= device.DisplayCols {
			continue
		}
		r.cells[row][c] = ch
	}
	r.draw()
}

func (r *Rig) Set(c device.Color, on bool) {
	if !c.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lit[c] = on
	r.draw()
}

func (r *Rig) Pressed(c device.Color) bool {
	if !c.Valid() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Now().Before(r.pressedUntil[c])
}

// WaitKey blocks until any key is pressed or ctx is done. Presses that
// landed before the wait began are discarded first.
func (r *Rig) WaitKey(ctx context.Context) error {
	select {
	case <-r.keys:
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.keys:
		return nil
	}
}

func (r *Rig) blank() {
	r.mu.Lock()
	r.blankLocked()
	r.mu.Unlock()
}

func (r *Rig) blankLocked() {
	for row := range r.cells {
		for col := range r.cells[row] {
			r.cells[row][col] = ' '
		}
	}
}

func (r *Rig) press(pad device.Color) {
	r.mu.Lock()
	r.pressedUntil[pad] = time.Now().Add(keyHold)
	r.draw()
	r.mu.Unlock()
}

func (r *Rig) eventLoop() {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			r.screen.Sync()
			r.redraw()
		case *tcell.EventKey:
			r.handleKey(e)
		}
	}
}

func (r *Rig) handleKey(e *tcell.EventKey) {
	if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC || e.Rune() == 'q' || e.Rune() == 'Q' {
		r.quitOnce.Do(r.onQuit)
		return
	}
	if e.Key() == tcell.KeyRune {
		if pad, ok := padForRune(e.Rune()); ok {
			r.press(pad)
		}
	}
	select {
	case r.keys <- struct{}{}:
	default:
	}
}

func padForRune(ch rune) (device.Color, bool) {
	if ch < '1' || ch > '4' {
		return 0, false
	}
	return device.Color(ch - '1'), true
}

// refreshLoop repaints on a fixed cadence so expired key pulses go
// dark even while the core is asleep between cues.
func (r *Rig) refreshLoop() {
	tick := time.NewTicker(refreshInterval)
	defer tick.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-tick.C:
			r.redraw()
		}
	}
}

func (r *Rig) redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draw()
}

// draw paints the whole faceplate. Callers hold r.mu.
func (r *Rig) draw() {
	select {
	case <-r.done:
		return
	default:
	}

	s := r.screen
	s.Clear()

	y := 1
	for _, line := range r.banner {
		drawText(s, 2, y, line, styleBanner)
		y++
	}
	if len(r.banner) > 0 {
		y++
	}

	edge := "+" + strings.Repeat("-", device.DisplayCols) + "+"
	drawText(s, 2, y, edge, styleFrame)
	for row := 0; row < device.DisplayRows; row++ {
		drawText(s, 2, y+1+row, "|", styleFrame)
		drawText(s, 3, y+1+row, string(r.cells[row][:]), styleLCD)
		drawText(s, 3+device.DisplayCols, y+1+row, "|", styleFrame)
	}
	y += device.DisplayRows + 1
	drawText(s, 2, y, edge, styleFrame)
	y += 2

	now := time.Now()
	for c := device.Color(0); c < device.ColorCount; c++ {
		x := 2 + int(c)*7
		st := tcell.StyleDefault.Foreground(padDark[c])
		if r.lit[c] || now.Before(r.pressedUntil[c]) {
			st = tcell.StyleDefault.Foreground(padLit[c]).Bold(true)
		}
		drawText(s, x, y, "████", st)
		drawText(s, x, y+1, "████", st)
		drawText(s, x, y+2, fmt.Sprintf("[%d]", int(c)+1), styleLegend)
	}
	y += 4

	drawText(s, 2, y, "1-4 play   q quit", styleLegend)
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}
