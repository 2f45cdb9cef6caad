package buffer

import (
	"fmt"
	"log/slog"
	"os"
)

// MapFile maps an existing file read-write and returns a Borrowed buffer over
// the mapping. Writes through the buffer reach the file. The mapping is
// removed and the file closed when the last reference is released.
func MapFile(path string) (*ConcreteBuffer, error) {
	//nolint:gosec // G304: mapping a caller-chosen file is the purpose of this function
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: cannot map empty file %s", ErrAllocation, path)
	}

	data, err := mmapFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrAllocation, path, err)
	}

	return Borrow(data, func() {
		if err := munmapFile(data); err != nil {
			slog.Warn("munmap failed", "path", path, "error", err)
		}
		_ = f.Close()
	}), nil
}
