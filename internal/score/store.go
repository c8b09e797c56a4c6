// internal/score/store.go
//
// Persisted high score: a single byte cell behind device.ByteStore.
// Defines:
//   - Sentinel: the "never written" reading (erased EEPROM bytes are 0xFF).
//   - Store: Load / Update / Reset with the monotonic update rule.

package score

import (
	"fmt"

	"github.com/robalobadob/simon-go/internal/device"
)

const (
	// Sentinel is what a cell reads before any score was ever written.
	Sentinel byte = 0xFF

	// Addr is the fixed cell the high score lives in.
	Addr uint16 = 0
)

// Store applies the high-score rules over one persisted byte cell.
type Store struct {
	mem device.ByteStore
}

func New(mem device.ByteStore) *Store {
	return &Store{mem: mem}
}

// Load returns the stored score and whether one has ever been written.
// A sentinel reading is not an error, it is a fresh board.
func (s *Store) Load() (byte, bool, error) {
	v, err := s.mem.ReadByte(Addr)
	if err != nil {
		return 0, false, fmt.Errorf("score: load: %w", err)
	}
	if v == Sentinel {
		return 0, false, nil
	}
	return v, true, nil
}

// Update writes score if it is strictly greater than the stored value,
// or if nothing was ever stored. It returns the resulting best and
// whether a write happened.
func (s *Store) Update(v byte) (byte, bool, error) {
	cur, set, err := s.Load()
	if err != nil {
		return 0, false, err
	}
	if set && v <= cur {
		return cur, false, nil
	}
	if err := s.mem.WriteByte(Addr, v); err != nil {
		return 0, false, fmt.Errorf("score: update: %w", err)
	}
	return v, true, nil
}

// Reset writes an explicit zero. Distinct from the sentinel: a reset
// board has a score of 0, a fresh board has none.
func (s *Store) Reset() error {
	if err := s.mem.WriteByte(Addr, 0); err != nil {
		return fmt.Errorf("score: reset: %w", err)
	}
	return nil
}
