package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/simon-go/internal/cue"
	"github.com/robalobadob/simon-go/internal/device"
	"github.com/robalobadob/simon-go/internal/input"
	"github.com/robalobadob/simon-go/internal/score"
	"github.com/robalobadob/simon-go/internal/storage"
)

// scriptRand deals sequence steps from a fixed list, wrapping around.
type scriptRand struct {
	vals []int
	i    int
}

func (r *scriptRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// scriptReader replays a fixed list of presses. input.Timeout entries
// time out, and an exhausted script times out forever, which ends any
// session once its lives run dry.
type scriptReader struct {
	presses       []device.Color
	i             int
	blockingCalls int
	deadlineCalls int
}

func (r *scriptReader) ReadBlocking(ctx context.Context) (device.Color, error) {
	r.blockingCalls++
	return r.next(), nil
}

func (r *scriptReader) ReadWithDeadline(ctx context.Context, budget time.Duration) (device.Color, error) {
	r.deadlineCalls++
	return r.next(), nil
}

func (r *scriptReader) next() device.Color {
	if r.i >= len(r.presses) {
		return input.Timeout
	}
	v := r.presses[r.i]
	r.i++
	return v
}

type testRig struct {
	clock  *device.FakeClock
	lights *device.RecLights
	tone   *device.RecTone
	disp   *device.RecDisplay
	scores *score.Store
	reader *scriptReader
}

func newTestEngine(t *testing.T, cfg Config, steps []int, presses []device.Color) (*Engine, *testRig) {
	t.Helper()
	clock := device.NewFakeClock()
	rig := &testRig{
		clock:  clock,
		lights: device.NewRecLights(clock),
		tone:   device.NewRecTone(clock),
		disp:   &device.RecDisplay{},
		scores: score.New(storage.NewMemory(1)),
		reader: &scriptReader{presses: presses},
	}
	player := cue.New(rig.lights, rig.tone, clock)
	e := New(cfg, &scriptRand{vals: steps}, rig.reader, player, rig.scores, rig.disp, clock)
	return e, rig
}

func hasWrite(d *device.RecDisplay, text string) bool {
	for _, w := range d.Writes {
		if w.Text == text {
			return true
		}
	}
	return false
}

func tonePlays(tone *device.RecTone) int {
	n := 0
	for _, ev := range tone.Events {
		if ev.Freq > 0 {
			n++
		}
	}
	return n
}

// A classic session: three rounds pass, then the script dries up and
// the three lives burn on timeouts. The level keeps growing on failed
// attempts, so the final score is level-1, not the completed count.
func TestClassicSessionProgression(t *testing.T) {
	e, rig := newTestEngine(t, Config{Mode: ModeClassic},
		[]int{1, 0, 2},
		[]device.Color{1, 1, 0, 1, 0, 2},
	)

	sum, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sum.Rounds != 3 || sum.Failures != 3 {
		t.Errorf("Rounds, Failures = %d, %d; want 3, 3", sum.Rounds, sum.Failures)
	}
	if sum.Level != 6 || sum.Score != 5 {
		t.Errorf("Level, Score = %d, %d; want 6, 5", sum.Level, sum.Score)
	}
	if sum.Best != 5 || !sum.NewBest {
		t.Errorf("Best, NewBest = %d, %v; want 5, true", sum.Best, sum.NewBest)
	}
	if sum.Duration != rig.clock.Elapsed() {
		t.Errorf("Duration = %v, want %v", sum.Duration, rig.clock.Elapsed())
	}
	if e.Status() != StatusOver {
		t.Errorf("Status = %v, want over", e.Status())
	}
	if st := e.RoundState(); st.Lives != 0 || st.Level != 6 {
		t.Errorf("RoundState = %+v, want lives 0 level 6", st)
	}

	// 1+2+3 scripted reads, then one aborting read per failed attempt.
	if rig.reader.blockingCalls != 9 {
		t.Errorf("blocking reads = %d, want 9 (attempts abort at the first miss)", rig.reader.blockingCalls)
	}
	if rig.reader.deadlineCalls != 0 {
		t.Errorf("deadline reads = %d, want 0 in classic", rig.reader.deadlineCalls)
	}
}

func TestReverseAcceptsMirroredReply(t *testing.T) {
	e, _ := newTestEngine(t, Config{Mode: ModeReverse, Lives: 1},
		[]int{3, 1},
		[]device.Color{3, 1, 3},
	)

	sum, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Rounds != 2 {
		t.Fatalf("Rounds = %d, want 2 (mirrored reply accepted)", sum.Rounds)
	}
	if sum.Level != 3 || sum.Score != 2 {
		t.Errorf("Level, Score = %d, %d; want 3, 2", sum.Level, sum.Score)
	}
}

// In reverse mode a forward reply must fail on the very first press.
func TestReverseRejectsForwardReply(t *testing.T) {
	e, rig := newTestEngine(t, Config{Mode: ModeReverse, Lives: 1},
		[]int{3, 1},
		[]device.Color{3, 3},
	)

	sum, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Rounds != 1 || sum.Failures != 1 {
		t.Errorf("Rounds, Failures = %d, %d; want 1, 1", sum.Rounds, sum.Failures)
	}
	if rig.reader.blockingCalls != 2 {
		t.Errorf("blocking reads = %d, want 2 (attempt aborts immediately)", rig.reader.blockingCalls)
	}
}

// Speed mode collects on the deadline channel and a timeout burns a
// life without touching the remaining steps.
func TestSpeedTimeoutBurnsOneLife(t *testing.T) {
	e, rig := newTestEngine(t, Config{Mode: ModeSpeed, Lives: 2},
		[]int{0, 1, 2},
		[]device.Color{0, input.Timeout, 0, 1, 2},
	)

	sum, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sum.Rounds != 2 || sum.Failures != 2 {
		t.Errorf("Rounds, Failures = %d, %d; want 2, 2", sum.Rounds, sum.Failures)
	}
	if sum.Level != 4 || sum.Score != 3 {
		t.Errorf("Level, Score = %d, %d; want 4, 3", sum.Level, sum.Score)
	}
	if rig.reader.deadlineCalls != 6 {
		t.Errorf("deadline reads = %d, want 6", rig.reader.deadlineCalls)
	}
	if rig.reader.blockingCalls != 0 {
		t.Errorf("blocking reads = %d, want 0 in speed", rig.reader.blockingCalls)
	}
}

func TestStealthKeepsLampsDark(t *testing.T) {
	e, rig := newTestEngine(t, Config{Mode: ModeStealth, Lives: 1},
		[]int{2},
		[]device.Color{2},
	)

	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rig.lights.Events) != 0 {
		t.Fatalf("stealth drove the lamps: %+v", rig.lights.Events)
	}
	if tonePlays(rig.tone) == 0 {
		t.Fatal("stealth played no tones")
	}
}

// At capacity the sequence stops growing and play continues against the
// static challenge; the level stays pinned.
func TestSequenceClampKeepsPlayAlive(t *testing.T) {
	e, _ := newTestEngine(t, Config{Mode: ModeClassic, MaxSequence: 2, Lives: 1},
		[]int{0, 1},
		[]device.Color{0, 0, 1, 0, 1},
	)

	sum, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Rounds != 3 {
		t.Errorf("Rounds = %d, want 3 (round 3 replays the static sequence)", sum.Rounds)
	}
	if sum.Level != 2 || sum.Score != 1 {
		t.Errorf("Level, Score = %d, %d; want 2, 1", sum.Level, sum.Score)
	}
}

// Clearing the full capacity celebrates once; later laps of the static
// sequence stay quiet.
func TestCapacityClearCelebratesOnce(t *testing.T) {
	e, rig := newTestEngine(t, Config{Mode: ModeClassic, MaxSequence: 2, Lives: 1},
		[]int{0, 1},
		[]device.Color{0, 0, 1, 0, 1},
	)

	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	banners := 0
	for _, w := range rig.disp.Writes {
		if w.Text == "YOU BEAT SIMON" {
			banners++
		}
	}
	if banners != 1 {
		t.Errorf("victory banner shown %d times, want once", banners)
	}

	// Replays 1+2+2+2 and echoes 1+2+2+0, plus the two jingles.
	want := 12 + len(cue.JingleVictory) + len(cue.JingleFailure)
	if got := tonePlays(rig.tone); got != want {
		t.Errorf("tone plays = %d, want %d", got, want)
	}
}

func TestThreeFailuresScoreLevelMinusOne(t *testing.T) {
	e, rig := newTestEngine(t, Config{}, []int{0}, nil)

	sum, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sum.Rounds != 0 || sum.Failures != 3 {
		t.Errorf("Rounds, Failures = %d, %d; want 0, 3", sum.Rounds, sum.Failures)
	}
	if sum.Level != 3 || sum.Score != 2 {
		t.Errorf("Level, Score = %d, %d; want 3, 2", sum.Level, sum.Score)
	}
	if sum.Best != 2 || !sum.NewBest {
		t.Errorf("Best, NewBest = %d, %v; want 2, true (fresh board)", sum.Best, sum.NewBest)
	}

	for _, want := range []string{"WRONG!", "LIVES 2", "LIVES 1", "SCORE 2", "BEST 2"} {
		if !hasWrite(rig.disp, want) {
			t.Errorf("display never showed %q: %+v", want, rig.disp.Writes)
		}
	}
}

func TestEchoCuePerAcceptedStep(t *testing.T) {
	e, rig := newTestEngine(t, Config{Lives: 1},
		[]int{2},
		[]device.Color{2},
	)

	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Round 1 replay + its echo, round 2 replay, then the jingle.
	want := 1 + 1 + 2 + len(cue.JingleFailure)
	if got := tonePlays(rig.tone); got != want {
		t.Fatalf("tone plays = %d, want %d", got, want)
	}
}

// With the real reader wired in, cancelling the host context surfaces
// as an error out of Run rather than a hung poll loop.
func TestRunHonorsContext(t *testing.T) {
	clock := device.NewFakeClock()
	pad := device.NewScriptButtons(clock)
	disp := &device.RecDisplay{}
	reader := input.New(pad, clock, disp)
	player := cue.New(device.NewRecLights(clock), device.NewRecTone(clock), clock)
	scores := score.New(storage.NewMemory(1))

	e := New(Config{}, &scriptRand{vals: []int{0}}, reader, player, scores, disp, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}

func TestConfigClampsToStoredByteRange(t *testing.T) {
	e, _ := newTestEngine(t, Config{MaxSequence: 1000}, []int{0}, nil)
	if e.seq.max != 255 {
		t.Fatalf("max sequence = %d, want clamp at 255", e.seq.max)
	}

	e, _ = newTestEngine(t, Config{}, []int{0}, nil)
	if e.seq.max != DefaultMaxSequence || e.lives != DefaultLives {
		t.Fatalf("defaults = (%d, %d), want (%d, %d)", e.seq.max, e.lives, DefaultMaxSequence, DefaultLives)
	}
	if e.Status() != StatusSelecting {
		t.Fatalf("fresh engine status = %v, want selecting", e.Status())
	}
}
