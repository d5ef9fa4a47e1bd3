package snapshot

import "errors"

// Snapshot file layout (little-endian):
//
//	0x00  signature 'M' 'B' 'K' '1'
//	0x04  format version (u32)
//	0x08  codec id (u8), 3 bytes reserved
//	0x0C  record size of the stored block (u32)
//	0x10  payload length, uncompressed (u64)
//	0x18  stored length, after compression (u64)
//	0x20  BLAKE3-256 digest of the uncompressed payload
//	0x40  payload
var Signature = []byte{'M', 'B', 'K', '1'}

const (
	// Version is the current snapshot format version.
	Version = 1

	// HeaderSize is the size of the snapshot header in bytes.
	HeaderSize = 64

	headerVersionOffset    = 0x04
	headerCodecOffset      = 0x08
	headerRecordSizeOffset = 0x0C
	headerPayloadLenOffset = 0x10
	headerStoredLenOffset  = 0x18
	headerDigestOffset     = 0x20

	// DigestSize is the size of the payload digest.
	DigestSize = 32
)

// Codec identifies the payload compression.
type Codec uint8

const (
	// CodecNone stores the payload verbatim.
	CodecNone Codec = 0
	// CodecLZ4 stores an LZ4 frame.
	CodecLZ4 Codec = 1
	// CodecZstd stores a zstd stream.
	CodecZstd Codec = 2
)

// String returns the codec's canonical name.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCodec maps a canonical name back to its Codec.
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "none", "":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return 0, ErrBadCodec
	}
}

var (
	// ErrBadSignature indicates the file does not start with the snapshot signature.
	ErrBadSignature = errors.New("snapshot: bad signature")
	// ErrBadVersion indicates an unsupported format version.
	ErrBadVersion = errors.New("snapshot: unsupported version")
	// ErrBadCodec indicates an unknown compression codec.
	ErrBadCodec = errors.New("snapshot: unknown codec")
	// ErrDigestMismatch indicates the payload does not match its recorded digest.
	ErrDigestMismatch = errors.New("snapshot: payload digest mismatch")
	// ErrTruncated indicates the file ended before the recorded payload length.
	ErrTruncated = errors.New("snapshot: truncated payload")
)
