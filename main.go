// main.go
//
// Host wiring for the simon console. The terminal is the faceplate, a
// SQLite file is the session log, one byte of an EEPROM image is the
// high score.
//
// Environment:
//   SIMON_MODE          classic|speed|reverse|stealth; empty = pick at boot
//   SIMON_MUTED         1 silences the beeper, timing unchanged
//   SIMON_MAX_SEQUENCE  sequence capacity (default 100, capped at 255)
//   SIMON_LIVES         lives per session (default 3)
//   SIMON_NO_AUDIO      1 skips speaker init entirely (headless terminals)
//   SIMON_DAILY         1 deals the shared daily sequence
//   SIMON_DAILY_SALT    salt for the daily deal (default "simon-go")
//   SIMON_EEPROM        high-score image path (default ./data/simon.eeprom)
//   SIMON_DB            history database path (default ./data/simon.db)
//   SIMON_LOG           log file path (default ./data/simon.log)
//   LOG_LEVEL           zerolog level (default "info")

package main

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/simon-go/assets"
	"github.com/robalobadob/simon-go/internal/cue"
	"github.com/robalobadob/simon-go/internal/daily"
	"github.com/robalobadob/simon-go/internal/device"
	"github.com/robalobadob/simon-go/internal/game"
	"github.com/robalobadob/simon-go/internal/history"
	"github.com/robalobadob/simon-go/internal/input"
	"github.com/robalobadob/simon-go/internal/score"
	"github.com/robalobadob/simon-go/internal/selector"
	"github.com/robalobadob/simon-go/internal/storage"
	"github.com/robalobadob/simon-go/internal/term"
)

// eepromSize is the whole image; the high score only uses score.Addr.
const eepromSize = 64

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// tcell owns the terminal, so logs go to a file.
	closeLog, err := setupLog(getEnv("SIMON_LOG", "./data/simon.log"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open log file")
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if err := run(ctx, cancel); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("console exited")
	}
	log.Info().Msg("console shut down")
}

func run(ctx context.Context, cancel context.CancelFunc) error {
	banner, err := assets.Banner()
	if err != nil {
		return fmt.Errorf("load banner: %w", err)
	}

	rig, err := term.New(banner, cancel)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer rig.Close()

	var tone device.Tone = device.NopTone{}
	if !getEnvBool("SIMON_NO_AUDIO", false) {
		spk, err := term.NewSpeaker()
		if err != nil {
			log.Warn().Err(err).Msg("no audio device, running silent")
		} else {
			tone = spk
		}
	}

	eeprom, err := storage.NewFile(getEnv("SIMON_EEPROM", "./data/simon.eeprom"), eepromSize)
	if err != nil {
		return fmt.Errorf("open eeprom image: %w", err)
	}
	scores := score.New(eeprom)

	db, err := openDB(getEnv("SIMON_DB", "./data/simon.db"))
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer db.Close()
	hist := history.New(db)
	if err := hist.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate history db: %w", err)
	}
	if bests, err := hist.BestByMode(ctx); err != nil {
		log.Warn().Err(err).Msg("best-by-mode query failed")
	} else {
		for mode, s := range bests {
			log.Info().Str("mode", mode).Int("score", s).Msg("stored best")
		}
	}

	clock := device.SystemClock{}
	muted := getEnvBool("SIMON_MUTED", false)
	reader := input.New(rig, clock, rig)
	player := cue.New(rig, tone, clock)

	best, haveBest, err := scores.Load()
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}
	splash(rig, player, best, haveBest, muted)

	if selector.HoldToReset(rig, clock) {
		if err := scores.Reset(); err != nil {
			return fmt.Errorf("reset high score: %w", err)
		}
		rig.Clear()
		rig.WriteAt(0, 0, "SCORE RESET")
		clock.Sleep(time.Second)
		log.Info().Msg("high score reset")
	}

	sel := selector.New(reader, player, rig, clock, muted)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		mode, err := pickMode(ctx, sel)
		if err != nil {
			return err
		}

		seed, dailyKey, err := sessionSeed(clock.Now())
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(seed))

		eng := game.New(game.Config{
			Mode:        mode,
			Muted:       muted,
			MaxSequence: getEnvInt("SIMON_MAX_SEQUENCE", 0),
			Lives:       getEnvInt("SIMON_LIVES", 0),
		}, rng, reader, player, scores, rig, clock)
		sum, err := eng.Run(ctx)
		if err != nil {
			return err
		}

		sess := &history.Session{
			Mode:       sum.Mode.String(),
			Muted:      sum.Muted,
			Score:      sum.Score,
			Level:      sum.Level,
			Rounds:     sum.Rounds,
			Failures:   sum.Failures,
			DurationMs: sum.Duration.Milliseconds(),
			Seed:       seed,
			DailyKey:   dailyKey,
		}
		if err := hist.Record(ctx, sess); err != nil {
			log.Error().Err(err).Msg("failed to record session")
		}
		log.Info().
			Str("mode", sess.Mode).
			Int("score", sum.Score).
			Int("level", sum.Level).
			Int("rounds", sum.Rounds).
			Int("failures", sum.Failures).
			Bool("new_best", sum.NewBest).
			Dur("duration", sum.Duration).
			Str("daily", dailyKey).
			Msg("session over")

		clock.Sleep(1800 * time.Millisecond)
		rig.Clear()
		rig.WriteAt(0, 0, "PLAY AGAIN?")
		rig.WriteAt(1, 0, "ANY KEY / Q END")
		if err := rig.WaitKey(ctx); err != nil {
			return err
		}
		// Let the replay keypress pulse fade before the menu reads pads.
		clock.Sleep(150 * time.Millisecond)
	}
}

// splash shows the name and the stored best over the boot jingle.
func splash(disp device.Display, player *cue.Player, best byte, haveBest, muted bool) {
	disp.Clear()
	disp.WriteAt(0, 0, "SIMON")
	if haveBest {
		disp.WriteAt(1, 0, fmt.Sprintf("BEST %d", best))
	} else {
		disp.WriteAt(1, 0, "NO BEST YET")
	}
	player.PlayJingle(cue.JingleIntro, muted)
}

// pickMode honors SIMON_MODE when set, else runs the boot menu.
func pickMode(ctx context.Context, sel *selector.Selector) (game.Mode, error) {
	if v := os.Getenv("SIMON_MODE"); v != "" {
		mode, err := game.ParseMode(v)
		if err != nil {
			return 0, fmt.Errorf("SIMON_MODE: %w", err)
		}
		return mode, nil
	}
	return sel.SelectMode(ctx)
}

// sessionSeed picks the sequence seed: the shared daily deal when
// SIMON_DAILY is set, otherwise fresh crypto noise.
func sessionSeed(now time.Time) (int64, string, error) {
	if getEnvBool("SIMON_DAILY", false) {
		key := daily.DateKey(now)
		return daily.Seed(key, getEnv("SIMON_DAILY_SALT", "simon-go")), key, nil
	}

	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return 0, "", fmt.Errorf("seed: %w", err)
	}
	n := binary.BigEndian.Uint64(b[:]) &^ (1 << 63)
	return int64(n), "", nil
}

func setupLog(path string) (func(), error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = log.Output(f)
	return func() { _ = f.Close() }, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "":
		return def
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
