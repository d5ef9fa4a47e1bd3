// Package format houses the low-level layout of relocatable blocks. The goal
// is to keep the byte-level arithmetic focused, allocation-free where
// possible, and independent from the public API so higher-level packages can
// present the data in a more ergonomic form.
package format

const (
	// BlockHeaderSize is the size of the block header in bytes. Every
	// relocatable record starts with this header.
	BlockHeaderSize = 8

	// RecordSizeOffset locates the u32 record size field. The record size
	// counts the header itself plus all user-declared fields, and is the
	// anchor for schema-tolerant member checks.
	RecordSizeOffset = 0x00

	// AllocatorRefOffset locates the i32 self-relative reference to the
	// embedded allocator. Zero means the block has no trailing free space.
	AllocatorRefOffset = 0x04

	// AllocatorHeaderSize is the size of the allocator header in bytes.
	AllocatorHeaderSize = 8

	// AllocCapacityOffset and AllocUsedOffset locate the u32 capacity and
	// used-space fields, relative to the allocator base. Capacity and used
	// both count the allocator header itself, so used starts at
	// AllocatorHeaderSize.
	AllocCapacityOffset = 0x00
	AllocUsedOffset     = 0x04

	// RefSize is the size of a self-relative reference slot.
	RefSize = 4

	// ListNodeSize is the size of one linked-list node: remaining count
	// (u32), value reference (i32), next reference (i32).
	ListNodeSize = 12

	// ListCountOffset, ListValueOffset, and ListNextOffset locate the node
	// fields, relative to the node base.
	ListCountOffset = 0x00
	ListValueOffset = 0x04
	ListNextOffset  = 0x08

	// VectorHeaderSize is the size of a dense vector header: element count
	// (u32) followed by a reference to the contiguous element region.
	VectorHeaderSize = 8

	// VectorCountOffset and VectorDataOffset locate the vector fields,
	// relative to the vector base.
	VectorCountOffset = 0x00
	VectorDataOffset  = 0x04

	// MaxAlign is the strictest alignment the allocator ever has to honor.
	MaxAlign = 8

	// WCharSize is the size of one wide-string code unit (UTF-16LE).
	WCharSize = 2
)
