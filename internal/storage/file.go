// internal/storage/file.go
//
// File-backed implementation of device.ByteStore: a small EEPROM image
// loaded whole at open and rewritten on every changed cell. Missing
// images are created erased (all 0xFF), so a first boot reads the same
// way a factory-fresh part does.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/robalobadob/simon-go/internal/device"
)

// File is a byte store persisted as a fixed-size image file.
type File struct {
	mu    sync.Mutex
	path  string
	cells []byte
}

var _ device.ByteStore = (*File)(nil)

// NewFile opens or creates the image at path with exactly size cells.
// Shorter existing images are padded with 0xFF, longer ones truncated.
func NewFile(path string, size int) (*File, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("storage: create image dir: %w", err)
			}
		}
		data = erased(size)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("storage: create image: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("storage: open image: %w", err)
	case len(data) < size:
		data = append(data, erased(size-len(data))...)
	case len(data) > size:
		data = data[:size]
	}
	return &File{path: path, cells: data}, nil
}

func (f *File) ReadByte(addr uint16) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(addr) >= len(f.cells) {
		return 0, ErrOutOfRange
	}
	return f.cells[addr], nil
}

// WriteByte updates one cell and rewrites the image. Unchanged values
// are skipped, the same wear-avoidance rule EEPROM firmware follows.
func (f *File) WriteByte(addr uint16, v byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(addr) >= len(f.cells) {
		return ErrOutOfRange
	}
	if f.cells[addr] == v {
		return nil
	}
	f.cells[addr] = v
	if err := os.WriteFile(f.path, f.cells, 0o644); err != nil {
		return fmt.Errorf("storage: write image: %w", err)
	}
	return nil
}
