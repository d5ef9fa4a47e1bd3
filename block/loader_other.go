//go:build !linux && !darwin

package block

import (
	"fmt"
	"io"
	"os"
)

// Open loads the blob into memory on platforms without the mmap loader.
// Mutations apply to the in-memory copy; Sync writes them back.
func Open(path string) (*Block, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("block: empty blob file: %s", path)
	}
	if sz > int64(^uint32(0)) {
		_ = f.Close()
		return nil, fmt.Errorf("block: blob file exceeds 4 GiB: %s", path)
	}

	buf := make([]byte, sz)
	if _, err := io.ReadFull(f, buf); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := Validate(buf); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Block{f: f, data: buf}, nil
}

// Close releases the file. Heap-backed blocks need no Close (calling it is
// a no-op) and are reclaimed by the garbage collector.
func (b *Block) Close() error {
	if b.f == nil {
		return nil
	}
	b.data = nil
	err := b.f.Close()
	b.f = nil
	return err
}
