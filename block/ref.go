package block

import (
	"math"

	"github.com/blockkit/blockkit/internal/format"
)

// Self-relative references. A reference slot at position P stores the
// signed 32-bit delta to its target; the target lies at P + delta. Zero is
// reserved for null, which is why a slot can never point at itself.
//
// Assignment always rebases: storing a target records target - P, never a
// raw delta copied from another slot, so references survive wholesale byte
// translation of the region they live in.

// refTarget resolves the slot at pos. Returns 0 for null or for a target
// that falls outside the region.
func (b *Block) refTarget(pos uint32) uint32 {
	if uint64(pos)+format.RefSize > uint64(len(b.data)) {
		return 0
	}
	raw := format.ReadI32(b.data, int(pos))
	if raw == 0 {
		return 0
	}
	t := int64(pos) + int64(raw)
	if t <= 0 || t >= int64(len(b.data)) {
		return 0
	}
	return uint32(t)
}

// putRef rebases target into the slot at pos. Internal callers only hand it
// allocator-produced targets, which are always in range and never equal to
// pos (the bump region lies above every previously written slot).
func (b *Block) putRef(pos, target uint32) {
	if target == 0 {
		format.PutI32(b.data, int(pos), 0)
		return
	}
	format.PutI32(b.data, int(pos), int32(int64(target)-int64(pos)))
}

// allocBase returns the position of the embedded allocator, or 0 when the
// block has no trailing free space.
func (b *Block) allocBase() uint32 {
	return b.refTarget(format.AllocatorRefOffset)
}

// Ref is a view over one reference slot.
type Ref struct {
	b   *Block
	off uint32
}

// RefAt binds a reference view to the slot at off.
func RefAt(b *Block, off uint32) Ref { return Ref{b: b, off: off} }

// IsNull reports whether the slot holds no target.
func (r Ref) IsNull() bool { return r.b.refTarget(r.off) == 0 }

// Target returns the block position the slot points at, or 0 for null.
func (r Ref) Target() uint32 { return r.b.refTarget(r.off) }

// Set rebases target into the slot. Target 0 stores null. A target equal to
// the slot's own position is rejected (zero denotes null), as is any target
// outside the block or beyond the signed 32-bit delta range.
func (r Ref) Set(target uint32) error {
	if target == 0 {
		r.b.putRef(r.off, 0)
		return nil
	}
	if target == r.off {
		return ErrSelfRef
	}
	if uint64(target) >= uint64(len(r.b.data)) {
		return ErrRefRange
	}
	delta := int64(target) - int64(r.off)
	if delta < math.MinInt32 || delta > math.MaxInt32 {
		return ErrRefRange
	}
	r.b.putRef(r.off, target)
	return nil
}

// Clear stores null into the slot. The previous target's bytes remain
// occupied; there is no reclamation.
func (r Ref) Clear() { r.b.putRef(r.off, 0) }
