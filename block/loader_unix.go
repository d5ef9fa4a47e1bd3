//go:build linux || darwin

package block

import (
	"fmt"
	"os"
	"syscall"
)

// Open mmaps a raw blob read-write so mutations land in the file directly.
// The header is validated against the file size before any reference is
// handed out.
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

	data, err := syscall.Mmap(
		int(f.Fd()),
		0,
		int(sz),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_SHARED,
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("block: mmap failed: %w", err)
	}

	if err := Validate(data); err != nil {
		_ = syscall.Munmap(data)
		_ = f.Close()
		return nil, err
	}

	return &Block{f: f, data: data, mapped: true}, nil
}

// Close releases the mapping and the file. Heap-backed blocks need no Close
// (calling it is a no-op) and are reclaimed by the garbage collector.
func (b *Block) Close() error {
	if b.f == nil {
		return nil
	}
	if b.mapped && b.data != nil {
		_ = syscall.Munmap(b.data)
	}
	b.data = nil
	b.mapped = false
	err := b.f.Close()
	b.f = nil
	return err
}
