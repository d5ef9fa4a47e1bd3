package block

import (
	"fmt"
	"os"

	"github.com/blockkit/blockkit/internal/format"
)

// Block is an opened relocatable region, backed by mmap (unix) or a byte
// slice. All interior references are self-relative, so the underlying bytes
// stay valid under wholesale byte translation.
type Block struct {
	f      *os.File
	data   []byte
	mapped bool
}

// New allocates a zeroed region of capacity bytes on the Go heap and
// constructs a block with the given record size in it. If capacity exceeds
// recordSize, the remainder becomes the embedded allocator's region.
func New(recordSize, capacity uint32) (*Block, error) {
	if capacity < recordSize {
		return nil, ErrCapacity
	}
	return InplaceNew(make([]byte, capacity), recordSize)
}

// InplaceNew constructs a block over a caller-supplied buffer. The record
// region and both headers are zeroed; trailing free space is zeroed lazily
// as the allocator carves it. The buffer's full length is the block's
// capacity.
func InplaceNew(buf []byte, recordSize uint32) (*Block, error) {
	capacity := uint64(len(buf))
	if recordSize < format.BlockHeaderSize {
		return nil, fmt.Errorf("block: record size %d below header size %d: %w",
			recordSize, format.BlockHeaderSize, ErrCapacity)
	}
	if capacity < uint64(recordSize) {
		return nil, ErrCapacity
	}
	free := capacity - uint64(recordSize)
	if free > 0 && free < format.AllocatorHeaderSize {
		// A gap too small to hold the allocator header can never be used.
		return nil, ErrCapacity
	}

	clear(buf[:recordSize])
	format.PutU32(buf, format.RecordSizeOffset, recordSize)

	b := &Block{data: buf}
	if free > 0 {
		b.putRef(format.AllocatorRefOffset, recordSize)
		format.PutU32(buf, int(recordSize)+format.AllocCapacityOffset, uint32(free))
		format.PutU32(buf, int(recordSize)+format.AllocUsedOffset, format.AllocatorHeaderSize)
	} else {
		format.PutI32(buf, format.AllocatorRefOffset, 0)
	}
	return b, nil
}

// NewCopy allocates a fresh block sized exactly to src's used space and
// copies src into it. The copy is immediately usable and full: its allocator
// capacity equals its used space, so no further growth is possible.
func NewCopy(src *Block) (*Block, error) {
	if src == nil {
		return nil, ErrNilBlock
	}
	dst, err := New(src.RecordSize(), src.UsedSpace())
	if err != nil {
		return nil, err
	}
	if err := dst.CopyFrom(src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Attach adopts an existing full-capacity byte region as a block. The
// region is validated but not modified; use Adopt for a trimmed used-prefix
// copy.
func Attach(data []byte) (*Block, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	return &Block{data: data}, nil
}

// Adopt adopts a byte copy of a block's used prefix. The allocator capacity
// recorded in the copied header still describes the source region, so Adopt
// rewrites it to match the new buffer before validating: a buffer of exactly
// used-space length yields a full block (the NewCopy post-condition), a
// larger buffer leaves the remainder as usable free space.
func Adopt(data []byte) (*Block, error) {
	if len(data) < format.BlockHeaderSize {
		return nil, format.ErrTruncated
	}
	recordSize := format.ReadU32(data, format.RecordSizeOffset)
	if raw := format.ReadI32(data, format.AllocatorRefOffset); raw != 0 {
		if uint64(recordSize)+format.AllocatorHeaderSize > uint64(len(data)) {
			return nil, format.ErrTruncated
		}
		format.PutU32(data, int(recordSize)+format.AllocCapacityOffset,
			uint32(uint64(len(data))-uint64(recordSize)))
	}
	return Attach(data)
}

// Validate checks a byte region against the block layout invariants and
// returns a descriptive error on the first violation.
func Validate(data []byte) error {
	if len(data) < format.BlockHeaderSize {
		return fmt.Errorf("block: region too small for header (%d): %w",
			len(data), format.ErrTruncated)
	}
	recordSize := format.ReadU32(data, format.RecordSizeOffset)
	if recordSize < format.BlockHeaderSize {
		return fmt.Errorf("block: record size %d below header size: %w",
			recordSize, format.ErrBadHeader)
	}
	if uint64(recordSize) > uint64(len(data)) {
		return fmt.Errorf("block: record size %d exceeds region size %d: %w",
			recordSize, len(data), format.ErrBadHeader)
	}
	raw := format.ReadI32(data, format.AllocatorRefOffset)
	if raw == 0 {
		return nil
	}
	target := int64(format.AllocatorRefOffset) + int64(raw)
	if target != int64(recordSize) {
		return fmt.Errorf("block: allocator at %d, expected %d: %w",
			target, recordSize, format.ErrBadHeader)
	}
	if uint64(recordSize)+format.AllocatorHeaderSize > uint64(len(data)) {
		return fmt.Errorf("block: region too small for allocator header: %w",
			format.ErrTruncated)
	}
	capacity := format.ReadU32(data, int(recordSize)+format.AllocCapacityOffset)
	used := format.ReadU32(data, int(recordSize)+format.AllocUsedOffset)
	if used < format.AllocatorHeaderSize {
		return fmt.Errorf("block: allocator used %d below header size: %w",
			used, format.ErrBadHeader)
	}
	if used > capacity {
		return fmt.Errorf("block: allocator used %d exceeds capacity %d: %w",
			used, capacity, format.ErrBadHeader)
	}
	if uint64(recordSize)+uint64(capacity) > uint64(len(data)) {
		return fmt.Errorf("block: allocator capacity %d exceeds region size %d: %w",
			capacity, len(data), format.ErrBadHeader)
	}
	return nil
}

// Bytes returns the raw region. The first UsedSpace bytes are the
// relocatable blob.
func (b *Block) Bytes() []byte { return b.data }

// RecordSize reports the bytes occupied by the record fields, including the
// 8-byte block header. It is captured at construction time and anchors
// schema-tolerant member checks.
func (b *Block) RecordSize() uint32 {
	return format.ReadU32(b.data, format.RecordSizeOffset)
}

// Capacity reports the total bytes owned by the block.
func (b *Block) Capacity() uint32 {
	if a := b.allocBase(); a != 0 {
		return b.RecordSize() + format.ReadU32(b.data, int(a)+format.AllocCapacityOffset)
	}
	return b.RecordSize()
}

// UsedSpace reports the minimum byte count sufficient to hold every live
// sub-object: the record fields plus everything the allocator has handed
// out.
func (b *Block) UsedSpace() uint32 {
	if a := b.allocBase(); a != 0 {
		return b.RecordSize() + format.ReadU32(b.data, int(a)+format.AllocUsedOffset)
	}
	return b.RecordSize()
}

// FreeSpace reports the bytes still available for allocation.
func (b *Block) FreeSpace() uint32 {
	return b.Capacity() - b.UsedSpace()
}

// CopyFrom byte-copies src's used prefix into b. It fails with ErrCapacity
// if b cannot hold src's used space; no partial copy occurs. On success b's
// original capacity is preserved, so the copy may leave usable free space.
func (b *Block) CopyFrom(src *Block) error {
	if src == nil {
		return ErrNilBlock
	}
	used := src.UsedSpace()
	origCap := b.Capacity()
	if origCap < used {
		return ErrCapacity
	}
	copy(b.data[:used], src.data[:used])
	if a := b.allocBase(); a != 0 {
		format.PutU32(b.data, int(a)+format.AllocCapacityOffset, origCap-b.RecordSize())
	}
	return nil
}

// Find returns the size bytes at off, or nil when the range falls outside
// the block's capacity.
func (b *Block) Find(off, size uint32) []byte {
	if uint64(off)+uint64(size) > uint64(b.Capacity()) {
		return nil
	}
	return b.data[off : off+size : off+size]
}

// Scalar field accessors. Offsets come from a Layout; no bounds checks
// beyond the region itself.

// U16 reads the uint16 field at off.
func (b *Block) U16(off uint32) uint16 { return format.ReadU16(b.data, int(off)) }

// PutU16 writes the uint16 field at off.
func (b *Block) PutU16(off uint32, v uint16) { format.PutU16(b.data, int(off), v) }

// U32 reads the uint32 field at off.
func (b *Block) U32(off uint32) uint32 { return format.ReadU32(b.data, int(off)) }

// PutU32 writes the uint32 field at off.
func (b *Block) PutU32(off uint32, v uint32) { format.PutU32(b.data, int(off), v) }

// I32 reads the int32 field at off.
func (b *Block) I32(off uint32) int32 { return format.ReadI32(b.data, int(off)) }

// PutI32 writes the int32 field at off.
func (b *Block) PutI32(off uint32, v int32) { format.PutI32(b.data, int(off), v) }

// U64 reads the uint64 field at off.
func (b *Block) U64(off uint32) uint64 { return format.ReadU64(b.data, int(off)) }

// PutU64 writes the uint64 field at off.
func (b *Block) PutU64(off uint32, v uint64) { format.PutU64(b.data, int(off), v) }
