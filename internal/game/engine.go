// internal/game/engine.go
//
// Round controller for a single session.
// Responsibilities:
//   - Grow and replay the challenge sequence (startRound).
//   - Collect and verify the reply step by step, echoing accepted
//     steps as cues (collectAndVerify).
//   - Track lives, phase transitions and the terminal game-over.
//
// Notes:
//   - Timeouts and wrong pads are game events, not errors. Errors out
//     of Run mean host cancellation or a storage fault.
//   - Mode differences are confined to the policy table in policy.go.
//   - Game over is a return value, not a halt loop: the host owns what
//     restart means. A rerun is a fresh session with a fresh sequence.

package game

import (
	"context"
	"fmt"
	"time"

	"github.com/robalobadob/simon-go/internal/cue"
	"github.com/robalobadob/simon-go/internal/device"
	"github.com/robalobadob/simon-go/internal/input"
	"github.com/robalobadob/simon-go/internal/score"
)

// Reader collects debounced presses. input.Reader satisfies it; tests
// script their own.
type Reader interface {
	ReadBlocking(ctx context.Context) (device.Color, error)
	ReadWithDeadline(ctx context.Context, budget time.Duration) (device.Color, error)
}

// CuePlayer renders cues and jingles. cue.Player satisfies it.
type CuePlayer interface {
	PlayStep(c device.Color, style cue.Style, muted bool)
	PlaySequence(steps []device.Color, level int, style cue.Style, muted bool)
	PlayJingle(notes []cue.Note, muted bool)
}

// Config tunes one session. Zero values take the defaults.
type Config struct {
	Mode        Mode
	Muted       bool
	MaxSequence int
	Lives       int
}

// Summary is what a finished session reports back to the host.
type Summary struct {
	Mode     Mode
	Muted    bool
	Score    int  // level - 1 at game over
	Level    int  // challenge length reached
	Rounds   int  // challenges completed
	Failures int  // failed attempts
	Best     byte // stored high score after the update
	NewBest  bool
	Duration time.Duration
}

// Engine owns the session: the sequence, level, lives and phase. It is
// single-threaded; every wait goes through the injected clock.
type Engine struct {
	cfg    Config
	seq    *Sequence
	level  int
	lives  int
	status Status

	rng    Rand
	reader Reader
	player CuePlayer
	scores *score.Store
	disp   device.Display
	clock  device.Clock

	rounds   int
	failures int
	cleared  bool
}

// New builds a session engine. MaxSequence is clamped to 255 so a final
// score always fits the stored byte.
func New(cfg Config, rng Rand, reader Reader, player CuePlayer, scores *score.Store, disp device.Display, clock device.Clock) *Engine {
	if cfg.MaxSequence <= 0 {
		cfg.MaxSequence = DefaultMaxSequence
	}
	if cfg.MaxSequence > 255 {
		cfg.MaxSequence = 255
	}
	if cfg.Lives <= 0 {
		cfg.Lives = DefaultLives
	}
	return &Engine{
		cfg:    cfg,
		seq:    NewSequence(cfg.MaxSequence),
		lives:  cfg.Lives,
		status: StatusSelecting,
		rng:    rng,
		reader: reader,
		player: player,
		scores: scores,
		disp:   disp,
		clock:  clock,
	}
}

// RoundState snapshots session progress.
func (e *Engine) RoundState() RoundState {
	return RoundState{Level: e.level, Lives: e.lives, Mode: e.cfg.Mode, Muted: e.cfg.Muted}
}

func (e *Engine) Status() Status { return e.status }

// Run plays the session to its terminal state and reports it. The
// returned error is either the context's or a storage fault while
// recording the final best.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	start := e.clock.Now()
	e.setStatus(StatusPlaying)
	for {
		e.startRound()
		ok, err := e.collectAndVerify(ctx)
		if err != nil {
			return Summary{}, err
		}
		if ok {
			e.rounds++
			if e.level == e.cfg.MaxSequence && !e.cleared {
				e.cleared = true
				e.disp.Clear()
				e.disp.WriteAt(0, 0, "YOU BEAT SIMON")
				e.player.PlayJingle(cue.JingleVictory, e.cfg.Muted)
			}
			e.clock.Sleep(roundPause)
			continue
		}

		e.failures++
		e.lives--
		if e.lives > 0 {
			e.setStatus(StatusFailed)
			e.disp.Clear()
			e.disp.WriteAt(0, 0, "WRONG!")
			e.disp.WriteAt(1, 0, fmt.Sprintf("LIVES %d", e.lives))
			e.clock.Sleep(failurePause)
			e.setStatus(StatusPlaying)
			continue
		}

		return e.gameOver(start)
	}
}

// startRound grows the challenge by one step (a no-op at capacity, the
// level then stays pinned) and replays it from the top. A failed
// attempt never rolls the level back, so retries come one step longer
// until the cap.
func (e *Engine) startRound() {
	e.seq.Extend(e.rng)
	e.level = e.seq.Len()
	e.disp.Clear()
	e.disp.WriteAt(0, 0, fmt.Sprintf("LEVEL %d", e.level))
	pol := policyFor(e.cfg.Mode)
	e.player.PlaySequence(e.seq.Steps(), e.level, pol.style, e.cfg.Muted)
}

// collectAndVerify reads one reply per challenge step. The first wrong
// pad or timeout ends the attempt immediately; each accepted step is
// echoed back as a cue in the mode's style.
func (e *Engine) collectAndVerify(ctx context.Context) (bool, error) {
	pol := policyFor(e.cfg.Mode)
	for i := 0; i < e.level; i++ {
		var (
			got device.Color
			err error
		)
		if pol.channel == channelDeadline {
			got, err = e.reader.ReadWithDeadline(ctx, StepDeadline)
		} else {
			got, err = e.reader.ReadBlocking(ctx)
		}
		if err != nil {
			return false, err
		}
		if got == input.Timeout {
			return false, nil
		}
		if got != e.seq.At(pol.expectedIndex(e.level, i)) {
			return false, nil
		}
		e.player.PlayStep(got, pol.style, e.cfg.Muted)
	}
	return true, nil
}

// gameOver renders the final score, plays the failure jingle, updates
// the stored best and hands the terminal summary to the host.
func (e *Engine) gameOver(start time.Time) (Summary, error) {
	e.setStatus(StatusOver)
	final := e.level - 1
	e.disp.Clear()
	e.disp.WriteAt(0, 0, fmt.Sprintf("SCORE %d", final))
	e.player.PlayJingle(cue.JingleFailure, e.cfg.Muted)

	best, newBest, err := e.scores.Update(byte(final))
	if err != nil {
		return Summary{}, fmt.Errorf("game: record best: %w", err)
	}
	e.disp.WriteAt(1, 0, fmt.Sprintf("BEST %d", best))

	return Summary{
		Mode:     e.cfg.Mode,
		Muted:    e.cfg.Muted,
		Score:    final,
		Level:    e.level,
		Rounds:   e.rounds,
		Failures: e.failures,
		Best:     best,
		NewBest:  newBest,
		Duration: e.clock.Now().Sub(start),
	}, nil
}

func (e *Engine) setStatus(to Status) {
	if CanTransition(e.status, to) {
		e.status = to
	}
}
