package block

import (
	"math"

	"github.com/blockkit/blockkit/internal/format"
)

// The embedded bump allocator. It lives immediately after the record
// fields and manages the trailing free space with a single cursor:
//
//	offset 0  capacity u32  (bytes managed, including this header)
//	offset 4  used     u32  (bytes consumed, starts at 8)
//
// Allocation is O(1), returned bytes are zeroed, and there is no free:
// lifetime is tied to the enclosing block.

// Alloc carves size bytes out of the block's free space and returns their
// block position. The cursor is first rounded up to align (a power of two;
// 0 and 1 mean unaligned), so requests for typed storage stay legal on
// strict-alignment hardware. Fails with ErrNoSpace when the block has no
// allocator, when size is zero, or when the aligned request does not fit;
// a failed call leaves the used count untouched.
func (b *Block) Alloc(size, align uint32) (uint32, error) {
	a := b.allocBase()
	if a == 0 || size == 0 {
		return 0, ErrNoSpace
	}
	capacity := uint64(format.ReadU32(b.data, int(a)+format.AllocCapacityOffset))
	used := uint64(format.ReadU32(b.data, int(a)+format.AllocUsedOffset))

	start := format.AlignUp(used, uint64(align))
	end := start + uint64(size)
	if end > capacity {
		return 0, ErrNoSpace
	}

	p := uint64(a) + start
	clear(b.data[p : p+uint64(size)])
	format.PutU32(b.data, int(a)+format.AllocUsedOffset, uint32(end))
	return uint32(p), nil
}

// Create carves zeroed storage for count elements of t and returns the
// position of the first element. Containers and scalar runs share this
// path; the zero state of every container is its valid empty state, so no
// per-element initialization is needed.
func Create[T any](b *Block, t Type[T], count uint32) (uint32, error) {
	n := uint64(t.size) * uint64(count)
	if n > math.MaxUint32 {
		return 0, ErrNoSpace
	}
	return b.Alloc(uint32(n), t.align)
}
