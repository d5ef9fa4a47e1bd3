package block

import "github.com/blockkit/blockkit/internal/format"

// Layout declares a record's field offsets. Fields are appended in natural
// alignment order after the 8-byte block header; the final Size is the
// recordSize passed to New or InplaceNew.
//
// Appending fields only at the end keeps old blobs readable by new code:
// HasMember reports whether a given offset was present when a blob was
// built.
type Layout struct {
	size uint32
}

// NewLayout starts a record layout. The block header is always the first 8
// bytes.
func NewLayout() *Layout {
	return &Layout{size: format.BlockHeaderSize}
}

// Field appends a field of the given size and alignment and returns its
// offset.
func (l *Layout) Field(size, align uint32) uint32 {
	off := format.AlignUp32(l.size, align)
	l.size = off + size
	return off
}

// Byte appends a uint8 field.
func (l *Layout) Byte() uint32 { return l.Field(1, 1) }

// U16 appends a uint16 field.
func (l *Layout) U16() uint32 { return l.Field(2, 2) }

// U32 appends a uint32 field.
func (l *Layout) U32() uint32 { return l.Field(4, 4) }

// I32 appends an int32 field.
func (l *Layout) I32() uint32 { return l.Field(4, 4) }

// U64 appends a uint64 field.
func (l *Layout) U64() uint32 { return l.Field(8, 8) }

// I64 appends an int64 field.
func (l *Layout) I64() uint32 { return l.Field(8, 8) }

// F32 appends a float32 field.
func (l *Layout) F32() uint32 { return l.Field(4, 4) }

// F64 appends a float64 field.
func (l *Layout) F64() uint32 { return l.Field(8, 8) }

// Ref appends a reference slot.
func (l *Layout) Ref() uint32 { return l.Field(format.RefSize, 4) }

// String appends a string field (one reference slot).
func (l *Layout) String() uint32 { return l.Ref() }

// WString appends a wide-string field (one reference slot).
func (l *Layout) WString() uint32 { return l.Ref() }

// List appends a linked-list head node.
func (l *Layout) List() uint32 { return l.Field(format.ListNodeSize, 4) }

// Vector appends a dense-vector header.
func (l *Layout) Vector() uint32 { return l.Field(format.VectorHeaderSize, 4) }

// Map appends an associative-map header (a vector of pairs).
func (l *Layout) Map() uint32 { return l.Vector() }

// Size returns the record size declared so far, including the block header.
func (l *Layout) Size() uint32 { return l.size }

// ArrayField appends inline storage for n contiguous elements of t and
// returns the offset of the first element.
func ArrayField[T any](l *Layout, t Type[T], n uint32) uint32 {
	return l.Field(t.size*n, t.align)
}
