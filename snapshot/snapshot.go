package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/blockkit/blockkit/block"
	"github.com/blockkit/blockkit/internal/format"
)

// Digest returns the BLAKE3-256 digest of a block's used prefix. The digest
// does not depend on the base address and bytes past the used prefix are
// not hashed, but the allocator header inside the prefix records the
// capacity: blocks with equal content and different capacities digest
// differently, while their exact-fit copies digest equally.
func Digest(b *block.Block) [DigestSize]byte {
	return blake3.Sum256(b.Bytes()[:b.UsedSpace()])
}

// Write serializes b's used prefix to w under the given codec.
func Write(w io.Writer, b *block.Block, codec Codec) error {
	if b == nil {
		return block.ErrNilBlock
	}
	payload := b.Bytes()[:b.UsedSpace()]
	digest := blake3.Sum256(payload)

	stored, err := compress(codec, payload)
	if err != nil {
		return err
	}

	header := make([]byte, HeaderSize)
	copy(header, Signature)
	format.PutU32(header, headerVersionOffset, Version)
	header[headerCodecOffset] = byte(codec)
	format.PutU32(header, headerRecordSizeOffset, b.RecordSize())
	format.PutU64(header, headerPayloadLenOffset, uint64(len(payload)))
	format.PutU64(header, headerStoredLenOffset, uint64(len(stored)))
	copy(header[headerDigestOffset:], digest[:])

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

// Read deserializes a snapshot and returns the block it stored. The
// payload digest is verified before any block is handed out; a mismatch or
// short payload returns an error and no block.
func Read(r io.Reader) (*block.Block, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("snapshot: reading header: %w", err)
	}
	if !bytes.Equal(header[:len(Signature)], Signature) {
		return nil, ErrBadSignature
	}
	if v := format.ReadU32(header, headerVersionOffset); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	codec := Codec(header[headerCodecOffset])
	if codec > CodecZstd {
		return nil, fmt.Errorf("%w: %d", ErrBadCodec, codec)
	}
	payloadLen := format.ReadU64(header, headerPayloadLenOffset)
	storedLen := format.ReadU64(header, headerStoredLenOffset)
	if payloadLen > uint64(^uint32(0)) {
		return nil, fmt.Errorf("snapshot: payload length %d exceeds 4 GiB", payloadLen)
	}

	stored := make([]byte, storedLen)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	payload, err := decompress(codec, stored, payloadLen)
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) != payloadLen {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, len(payload), payloadLen)
	}

	digest := blake3.Sum256(payload)
	if !bytes.Equal(digest[:], header[headerDigestOffset:headerDigestOffset+DigestSize]) {
		return nil, ErrDigestMismatch
	}

	return block.Adopt(payload)
}

// Save writes b to a snapshot file at path.
func Save(path string, b *block.Block, codec Codec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, b, codec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads the snapshot file at path.
func Load(path string) (*block.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func compress(codec Codec, payload []byte) ([]byte, error) {
	switch codec {
	case CodecNone:
		return payload, nil
	case CodecLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, fmt.Errorf("snapshot: lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("snapshot: lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	case CodecZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd compress: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil
	default:
		return nil, ErrBadCodec
	}
}

func decompress(codec Codec, stored []byte, payloadLen uint64) ([]byte, error) {
	switch codec {
	case CodecNone:
		return stored, nil
	case CodecLZ4:
		payload := make([]byte, payloadLen)
		zr := lz4.NewReader(bytes.NewReader(stored))
		if _, err := io.ReadFull(zr, payload); err != nil {
			return nil, fmt.Errorf("snapshot: lz4 decompress: %w", err)
		}
		return payload, nil
	case CodecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd decompress: %w", err)
		}
		defer dec.Close()
		return dec.DecodeAll(stored, make([]byte, 0, payloadLen))
	default:
		return nil, ErrBadCodec
	}
}
