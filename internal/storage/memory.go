// internal/storage/memory.go
//
// In-memory implementation of device.ByteStore.
// This is a lightweight stand-in for the EEPROM cells the appliance
// persists into, used wherever tests need score persistence without a
// file on disk.
//
// Characteristics:
//   - Fixed-size cell array, sized like the part it replaces.
//   - Fresh cells read 0xFF, the way an erased EEPROM does.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for out-of-range addresses.

package storage

import (
	"errors"
	"sync"

	"github.com/robalobadob/simon-go/internal/device"
)

// ErrOutOfRange is returned when an address falls outside the cell array.
var ErrOutOfRange = errors.New("storage: address out of range")

// Memory is a fixed-size in-RAM byte store.
type Memory struct {
	mu    sync.RWMutex
	cells []byte
}

var _ device.ByteStore = (*Memory)(nil)

// NewMemory creates a store of size cells, all reading 0xFF.
func NewMemory(size int) *Memory {
	return &Memory{cells: erased(size)}
}

func (m *Memory) ReadByte(addr uint16) (byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(addr) >= len(m.cells) {
		return 0, ErrOutOfRange
	}
	return m.cells[addr], nil
}

func (m *Memory) WriteByte(addr uint16, v byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(addr) >= len(m.cells) {
		return ErrOutOfRange
	}
	m.cells[addr] = v
	return nil
}

func erased(size int) []byte {
	cells := make([]byte, size)
	for i := range cells {
		cells[i] = 0xFF
	}
	return cells
}
