package block

import (
	"math"

	"github.com/blockkit/blockkit/internal/format"
)

// Type describes how a value of Go type T maps onto block bytes: its
// storage size, its alignment, and position-aware read/write against a
// block. Containers are generic over Type so the same List or Vector code
// serves scalars and reference-holding elements alike.
//
// The size of every provided Type is a multiple of its alignment, so
// contiguous runs of elements stay naturally aligned.
type Type[T any] struct {
	size  uint32
	align uint32
	read  func(b *Block, off uint32) T
	write func(b *Block, off uint32, v T) error
}

// NewType builds a custom element descriptor. size must be a multiple of
// align for use in contiguous containers. write may allocate from the block
// (the string types do) and reports ErrNoSpace on exhaustion.
func NewType[T any](size, align uint32, read func(*Block, uint32) T, write func(*Block, uint32, T) error) Type[T] {
	return Type[T]{size: size, align: align, read: read, write: write}
}

// Size returns the element's storage size in bytes.
func (t Type[T]) Size() uint32 { return t.size }

// Align returns the element's alignment requirement.
func (t Type[T]) Align() uint32 { return t.align }

// Read decodes the element at off.
func (t Type[T]) Read(b *Block, off uint32) T { return t.read(b, off) }

// Write encodes v at off.
func (t Type[T]) Write(b *Block, off uint32, v T) error { return t.write(b, off, v) }

// Scalar descriptors.
var (
	Uint8 = Type[uint8]{
		size: 1, align: 1,
		read:  func(b *Block, off uint32) uint8 { return b.data[off] },
		write: func(b *Block, off uint32, v uint8) error { b.data[off] = v; return nil },
	}

	Uint16 = Type[uint16]{
		size: 2, align: 2,
		read:  func(b *Block, off uint32) uint16 { return format.ReadU16(b.data, int(off)) },
		write: func(b *Block, off uint32, v uint16) error { format.PutU16(b.data, int(off), v); return nil },
	}

	Int32 = Type[int32]{
		size: 4, align: 4,
		read:  func(b *Block, off uint32) int32 { return format.ReadI32(b.data, int(off)) },
		write: func(b *Block, off uint32, v int32) error { format.PutI32(b.data, int(off), v); return nil },
	}

	Uint32 = Type[uint32]{
		size: 4, align: 4,
		read:  func(b *Block, off uint32) uint32 { return format.ReadU32(b.data, int(off)) },
		write: func(b *Block, off uint32, v uint32) error { format.PutU32(b.data, int(off), v); return nil },
	}

	Int64 = Type[int64]{
		size: 8, align: 8,
		read:  func(b *Block, off uint32) int64 { return int64(format.ReadU64(b.data, int(off))) },
		write: func(b *Block, off uint32, v int64) error { format.PutU64(b.data, int(off), uint64(v)); return nil },
	}

	Uint64 = Type[uint64]{
		size: 8, align: 8,
		read:  func(b *Block, off uint32) uint64 { return format.ReadU64(b.data, int(off)) },
		write: func(b *Block, off uint32, v uint64) error { format.PutU64(b.data, int(off), v); return nil },
	}

	Float32 = Type[float32]{
		size: 4, align: 4,
		read: func(b *Block, off uint32) float32 {
			return math.Float32frombits(format.ReadU32(b.data, int(off)))
		},
		write: func(b *Block, off uint32, v float32) error {
			format.PutU32(b.data, int(off), math.Float32bits(v))
			return nil
		},
	}

	Float64 = Type[float64]{
		size: 8, align: 8,
		read: func(b *Block, off uint32) float64 {
			return math.Float64frombits(format.ReadU64(b.data, int(off)))
		},
		write: func(b *Block, off uint32, v float64) error {
			format.PutU64(b.data, int(off), math.Float64bits(v))
			return nil
		},
	}
)

// StringType stores text through a reference slot. Reading resolves the
// slot and decodes the NUL-terminated bytes; writing allocates fresh string
// storage from the block (the previous storage, if any, becomes dead
// space).
var StringType = Type[string]{
	size: format.RefSize, align: 4,
	read:  func(b *Block, off uint32) string { return StringAt(b, off).Get() },
	write: func(b *Block, off uint32, v string) error { return StringAt(b, off).Set(v) },
}

// WStringType is StringType for UTF-16LE storage.
var WStringType = Type[string]{
	size: format.RefSize, align: 4,
	read:  func(b *Block, off uint32) string { return WStringAt(b, off).Get() },
	write: func(b *Block, off uint32, v string) error { return WStringAt(b, off).Set(v) },
}
