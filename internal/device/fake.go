// internal/device/fake.go
//
// Test doubles for the peripheral interfaces. The core is single-threaded
// and sleeps only through Clock, so a fake clock plus press windows on its
// timeline make every blocking code path deterministic and instant.

package device

import (
	"sync"
	"time"
)

// FakeClock is a manual clock. Sleep advances the timeline instead of
// blocking, so timing-dependent code runs instantly under test.
type FakeClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFakeClock starts the timeline at the unix epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the timeline forward without a sleeper.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Elapsed reports how far the timeline has moved since construction.
func (c *FakeClock) Elapsed() time.Duration {
	return c.Now().Sub(time.Unix(0, 0))
}

// PressWindow holds one pad closed over [From, To) on the fake timeline,
// measured from the clock's start.
type PressWindow struct {
	Pad      Color
	From, To time.Duration
}

// ScriptButtons answers Pressed from a list of press windows keyed off a
// FakeClock, simulating a player (bounces included) without goroutines.
type ScriptButtons struct {
	clock  *FakeClock
	script []PressWindow
}

func NewScriptButtons(clock *FakeClock, script ...PressWindow) *ScriptButtons {
	return &ScriptButtons{clock: clock, script: script}
}

func (b *ScriptButtons) Pressed(c Color) bool {
	off := b.clock.Elapsed()
	for _, w := range b.script {
		if w.Pad == c && off >= w.From && off < w.To {
			return true
		}
	}
	return false
}

// DisplayWrite is one recorded WriteAt call.
type DisplayWrite struct {
	Row, Col int
	Text     string
}

// RecDisplay records display traffic for assertions.
type RecDisplay struct {
	Cleared int
	Writes  []DisplayWrite
}

func (d *RecDisplay) Clear() {
	d.Cleared++
}

func (d *RecDisplay) WriteAt(row, col int, text string) {
	d.Writes = append(d.Writes, DisplayWrite{Row: row, Col: col, Text: text})
}

// LightEvent is one recorded lamp transition.
type LightEvent struct {
	Color Color
	On    bool
	At    time.Time
}

// RecLights records lamp transitions, stamped by the clock when one is
// provided.
type RecLights struct {
	clock  Clock
	Events []LightEvent
}

func NewRecLights(clock Clock) *RecLights {
	return &RecLights{clock: clock}
}

func (l *RecLights) Set(c Color, on bool) {
	ev := LightEvent{Color: c, On: on}
	if l.clock != nil {
		ev.At = l.clock.Now()
	}
	l.Events = append(l.Events, ev)
}

// ToneEvent is one recorded tone transition. Freq is zero for Stop.
type ToneEvent struct {
	Freq float64
	At   time.Time
}

// RecTone records tone transitions, stamped by the clock when one is
// provided.
type RecTone struct {
	clock  Clock
	Events []ToneEvent
}

func NewRecTone(clock Clock) *RecTone {
	return &RecTone{clock: clock}
}

func (t *RecTone) Play(freqHz float64) {
	t.record(freqHz)
}

func (t *RecTone) Stop() {
	t.record(0)
}

func (t *RecTone) record(freq float64) {
	ev := ToneEvent{Freq: freq}
	if t.clock != nil {
		ev.At = t.clock.Now()
	}
	t.Events = append(t.Events, ev)
}
