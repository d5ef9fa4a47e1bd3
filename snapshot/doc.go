// Package snapshot stores relocatable blocks at rest.
//
// A snapshot file is a 64-byte header followed by the block's used prefix,
// optionally compressed. The header records the payload's BLAKE3-256
// digest; Read refuses to hand out a block whose bytes do not match, so a
// loaded snapshot carries exactly the stored payload or is an error.
//
// Loading has the same post-conditions as block.NewCopy: the returned
// block is sized exactly to its used space and cannot grow, its allocator
// capacity rewritten to that size. Only the used prefix is saved, so
// untouched free space never reaches the file; dead bytes inside the used
// prefix (cleared strings, shrunk lists) are saved with it.
package snapshot
