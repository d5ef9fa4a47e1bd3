// Package block implements relocatable, position-independent records that
// live entirely inside a single contiguous byte region.
//
// # Overview
//
// A block owns one []byte. The region starts with an 8-byte header (record
// size + a self-relative reference to the embedded allocator), followed by
// the user-declared record fields, followed by a bump allocator that hands
// out the trailing free space. Every cross-reference inside the region is a
// signed 32-bit self-relative offset, so the whole blob can be memcpy'd,
// written to disk, or mapped at a different base address and remain valid
// without a relocation pass or deserialization.
//
// # Key Types
//
//   - Block: the root structure owning the byte region
//   - Ref: a self-relative reference slot (zero means null)
//   - Layout: declares record field offsets without unsafe or reflection
//   - Type[T]: element descriptor used by the generic containers
//   - String / WString: NUL-terminated text stored through a reference slot
//   - Array[T], List[T], Vector[T], Map[K,V]: relocatable containers
//
// # Region Structure
//
//	offset 0              block header  (recordSize u32, allocatorRef i32)
//	offset 8..recordSize  user record fields
//	offset recordSize     allocator header (capacity u32, used u32)
//	...                   bump region, filled low-to-high
//
// Allocator capacity and used both count the allocator's own 8-byte header.
// There is no free operation: clearing a field or shrinking a list leaves
// its bytes occupied. NewCopy copies the whole used prefix, dead bytes
// included; it drops only the unused tail.
//
// # Building a Record
//
//	lay := block.NewLayout()
//	nameOff := lay.String()
//	ageOff := lay.U32()
//	b, err := block.New(lay.Size(), 256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := block.StringAt(b, nameOff).Set("Ada"); err != nil {
//	    log.Fatal(err)
//	}
//	b.PutU32(ageOff, 36)
//
// The resulting b.Bytes()[:b.UsedSpace()] is a self-contained blob: copy it
// anywhere, Adopt it, and every read returns the same values.
//
// # Concurrency
//
// A block is an owned resource. Only the owner may mutate it; concurrent
// read-only access is safe once mutation stops. No internal locking is
// performed.
package block
