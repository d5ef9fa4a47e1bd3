//go:build linux || darwin

package block

import "golang.org/x/sys/unix"

// Sync flushes a file-backed block to stable storage: msync for the mapped
// pages, then an fsync on the descriptor. Heap-backed blocks have nothing
// to flush and return nil.
func (b *Block) Sync() error {
	if b.f == nil {
		return nil
	}
	if b.mapped && b.data != nil {
		if err := unix.Msync(b.data, unix.MS_SYNC); err != nil {
			return err
		}
	}
	return b.f.Sync()
}
