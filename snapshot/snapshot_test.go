package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockkit/blockkit/block"
)

var (
	testLayout  = block.NewLayout()
	testNameOff = testLayout.String()
	testListOff = testLayout.List()
)

// buildTestBlock fills a block with enough structure to notice any
// corruption on the way through a snapshot.
func buildTestBlock(t testing.TB) *block.Block {
	t.Helper()
	b, err := block.New(testLayout.Size(), 4096)
	require.NoError(t, err)
	require.NoError(t, block.StringAt(b, testNameOff).Set("snapshot me"))
	l := block.ListAt(b, testListOff, block.Int32)
	for _, v := range []int32{100, 200, 300} {
		require.NoError(t, l.Append(v))
	}
	return b
}

func requireEqualContent(t *testing.T, b *block.Block) {
	t.Helper()
	require.Equal(t, "snapshot me", block.StringAt(b, testNameOff).Get())
	l := block.ListAt(b, testListOff, block.Int32)
	require.Equal(t, uint32(3), l.Len())
	for i, want := range []int32{100, 200, 300} {
		got, err := l.At(uint32(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRoundTripAllCodecs(t *testing.T) {
	src := buildTestBlock(t)

	for _, codec := range []Codec{CodecNone, CodecLZ4, CodecZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, src, codec))

			loaded, err := Read(&buf)
			require.NoError(t, err)
			requireEqualContent(t, loaded)

			// NewCopy post-conditions: exact fit, no growth possible, and
			// byte-identical to an exact-fit copy of the source.
			require.Equal(t, src.UsedSpace(), loaded.UsedSpace())
			require.Equal(t, loaded.UsedSpace(), loaded.Capacity())
			exact, err := block.NewCopy(src)
			require.NoError(t, err)
			require.Equal(t, Digest(exact), Digest(loaded))
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	src := buildTestBlock(t)
	path := filepath.Join(t.TempDir(), "test.snap")

	require.NoError(t, Save(path, src, CodecZstd))
	loaded, err := Load(path)
	require.NoError(t, err)
	requireEqualContent(t, loaded)
}

func TestReadRejectsBadSignature(t *testing.T) {
	_, err := Read(bytes.NewReader(bytes.Repeat([]byte{0xAB}, HeaderSize)))
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestReadRejectsCorruptPayload(t *testing.T) {
	src := buildTestBlock(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, src, CodecNone))

	data := buf.Bytes()
	data[HeaderSize+20] ^= 0xFF
	_, err := Read(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrDigestMismatch)
}

func TestReadRejectsTruncatedPayload(t *testing.T) {
	src := buildTestBlock(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, src, CodecNone))

	data := buf.Bytes()
	_, err := Read(bytes.NewReader(data[:len(data)-8]))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReadRejectsBadVersion(t *testing.T) {
	src := buildTestBlock(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, src, CodecNone))

	data := buf.Bytes()
	data[headerVersionOffset] = 0xEE
	_, err := Read(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrBadVersion)
}

func TestParseCodec(t *testing.T) {
	for _, c := range []Codec{CodecNone, CodecLZ4, CodecZstd} {
		got, err := ParseCodec(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
	_, err := ParseCodec("snappy")
	require.ErrorIs(t, err, ErrBadCodec)
}

func TestDigestIgnoresFreeSpace(t *testing.T) {
	b1, err := block.New(testLayout.Size(), 256)
	require.NoError(t, err)
	b2, err := block.New(testLayout.Size(), 4096)
	require.NoError(t, err)

	require.NoError(t, block.StringAt(b1, testNameOff).Set("same"))
	require.NoError(t, block.StringAt(b2, testNameOff).Set("same"))

	// Different capacities, identical content... but the allocator header
	// records capacity, which differs. Digest compares used bytes exactly.
	require.NotEqual(t, Digest(b1), Digest(b2))

	// After exact-fit copies the accounting converges and digests match.
	c1, err := block.NewCopy(b1)
	require.NoError(t, err)
	c2, err := block.NewCopy(b2)
	require.NoError(t, err)
	require.Equal(t, Digest(c1), Digest(c2))
}

func TestSaveToUnwritablePath(t *testing.T) {
	src := buildTestBlock(t)
	err := Save(filepath.Join(t.TempDir(), "no", "such", "dir", "x.snap"), src, CodecNone)
	require.Error(t, err)
}
