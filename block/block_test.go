package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockkit/blockkit/internal/format"
)

func TestNewHeaderState(t *testing.T) {
	b := newTestBlock(t, 256)

	require.Equal(t, testLayout.Size(), b.RecordSize())
	require.Equal(t, uint32(256), b.Capacity())
	// Fresh block: used space is the record plus the allocator header.
	require.Equal(t, testLayout.Size()+format.AllocatorHeaderSize, b.UsedSpace())
	require.Equal(t, b.Capacity()-b.UsedSpace(), b.FreeSpace())
}

func TestNewWithoutFreeSpace(t *testing.T) {
	b, err := New(testLayout.Size(), testLayout.Size())
	require.NoError(t, err)

	require.Equal(t, testLayout.Size(), b.Capacity())
	require.Equal(t, testLayout.Size(), b.UsedSpace())
	require.Equal(t, uint32(0), b.FreeSpace())

	// No allocator: every request fails.
	_, err = b.Alloc(1, 1)
	require.ErrorIs(t, err, ErrNoSpace)
}

func TestNewRejectsBadCapacities(t *testing.T) {
	// Capacity below the record.
	_, err := New(testLayout.Size(), testLayout.Size()-1)
	require.ErrorIs(t, err, ErrCapacity)

	// A gap too small for the allocator header.
	_, err = New(testLayout.Size(), testLayout.Size()+format.AllocatorHeaderSize-1)
	require.ErrorIs(t, err, ErrCapacity)

	// A record smaller than the block header.
	_, err = New(format.BlockHeaderSize-1, 64)
	require.ErrorIs(t, err, ErrCapacity)
}

func TestInplaceNewZeroesDirtyBuffer(t *testing.T) {
	buf := make([]byte, 128)
	for i := range buf {
		buf[i] = 0xAA
	}
	b, err := InplaceNew(buf, testLayout.Size())
	require.NoError(t, err)

	// Record fields read as zero values.
	require.Equal(t, uint32(0), b.U32(testCountOff))
	require.True(t, StringAt(b, testNameOff).IsNull())
	require.Equal(t, uint32(0), ListAt(b, testItemsOff, Int32).Len())

	// Allocations out of the dirty tail come back zeroed.
	p, err := b.Alloc(8, 1)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 8), b.Bytes()[p:p+8])
}

func TestUsedSpaceAccounting(t *testing.T) {
	b := newTestBlock(t, 256)
	before := b.UsedSpace()

	p, err := b.Alloc(10, 1)
	require.NoError(t, err)
	require.Equal(t, before, p) // bump region starts right at the used boundary
	require.Equal(t, before+10, b.UsedSpace())
	require.LessOrEqual(t, b.UsedSpace(), b.Capacity())
}

func TestFind(t *testing.T) {
	b := newTestBlock(t, 128)

	require.NotNil(t, b.Find(0, format.BlockHeaderSize))
	require.NotNil(t, b.Find(124, 4))
	require.Nil(t, b.Find(125, 4))
	require.Nil(t, b.Find(0, 129))
}

func TestScalarFields(t *testing.T) {
	b := newTestBlock(t, 128)

	b.PutU32(testCountOff, 7)
	require.Equal(t, uint32(7), b.U32(testCountOff))
}

func TestNewCopyRoundTrip(t *testing.T) {
	b := newTestBlock(t, 512)
	require.NoError(t, StringAt(b, testNameOff).Set("round trip"))
	b.PutU32(testCountOff, 3)
	items := ListAt(b, testItemsOff, Int32)
	for _, v := range []int32{1, 2, 3} {
		require.NoError(t, items.Append(v))
	}

	c, err := NewCopy(b)
	require.NoError(t, err)

	// Round-trip law: identical used space, equal reachable fields, and
	// the copy is full.
	require.Equal(t, b.UsedSpace(), c.UsedSpace())
	require.Equal(t, c.UsedSpace(), c.Capacity())
	require.Equal(t, uint32(0), c.FreeSpace())
	require.Equal(t, "round trip", StringAt(c, testNameOff).Get())
	require.Equal(t, uint32(3), c.U32(testCountOff))
	copied := ListAt(c, testItemsOff, Int32)
	for i, want := range []int32{1, 2, 3} {
		got, err := copied.At(uint32(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// The copy is independent of the source.
	require.NoError(t, StringAt(b, testNameOff).Set("changed"))
	require.Equal(t, "round trip", StringAt(c, testNameOff).Get())

	_, err = NewCopy(nil)
	require.ErrorIs(t, err, ErrNilBlock)
}

func TestCopyFromPreservesCapacity(t *testing.T) {
	src := newTestBlock(t, 128)
	require.NoError(t, StringAt(src, testNameOff).Set("src"))

	dst := newTestBlock(t, 1024)
	require.NoError(t, dst.CopyFrom(src))

	require.Equal(t, uint32(1024), dst.Capacity())
	require.Equal(t, src.UsedSpace(), dst.UsedSpace())
	require.Equal(t, "src", StringAt(dst, testNameOff).Get())

	// The preserved free space is still allocatable.
	_, err := dst.Alloc(64, 1)
	require.NoError(t, err)
}

func TestCopyFromRejectsSmallDestination(t *testing.T) {
	src := newTestBlock(t, 1024)
	_, err := src.Alloc(512, 1)
	require.NoError(t, err)

	dst := newTestBlock(t, 64)
	snapshot := make([]byte, 64)
	copy(snapshot, dst.Bytes())

	require.ErrorIs(t, dst.CopyFrom(src), ErrCapacity)
	// No partial copy occurred.
	require.Equal(t, snapshot, dst.Bytes())
}

func TestRelocationLaw(t *testing.T) {
	b := newTestBlock(t, 512)
	require.NoError(t, StringAt(b, testNameOff).Set("hello"))
	b.PutU32(testCountOff, 42)
	items := ListAt(b, testItemsOff, Int32)
	for _, v := range []int32{10, 20, 30} {
		require.NoError(t, items.Append(v))
	}
	attrs := MapAt(b, testAttrsOff, StringType, Int32)
	require.NoError(t, attrs.Create(2))
	require.NoError(t, attrs.SetAt(0, "x", 1))
	require.NoError(t, attrs.SetAt(1, "y", 2))

	moved := relocate(t, b)

	// Every read on the copy is bit-identical to the same read on the
	// original.
	require.Equal(t, "hello", StringAt(moved, testNameOff).Get())
	require.Equal(t, uint32(42), moved.U32(testCountOff))
	movedItems := ListAt(moved, testItemsOff, Int32)
	require.Equal(t, uint32(3), movedItems.Len())
	for i, want := range []int32{10, 20, 30} {
		got, err := movedItems.At(uint32(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	v, err := MapAt(moved, testAttrsOff, StringType, Int32).Get("y")
	require.NoError(t, err)
	require.Equal(t, int32(2), v)

	require.Equal(t, b.UsedSpace(), moved.UsedSpace())
	require.Equal(t, moved.UsedSpace(), moved.Capacity())
}

func TestAttachValidates(t *testing.T) {
	b := newTestBlock(t, 256)
	attached, err := Attach(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, b.Capacity(), attached.Capacity())

	// Truncated region.
	_, err = Attach(make([]byte, 4))
	require.Error(t, err)

	// Header with an impossible record size.
	bad := make([]byte, 64)
	format.PutU32(bad, format.RecordSizeOffset, 128)
	_, err = Attach(bad)
	require.Error(t, err)

	// Corrupt allocator accounting.
	corrupt := make([]byte, 256)
	copy(corrupt, b.Bytes())
	format.PutU32(corrupt, int(b.RecordSize())+format.AllocUsedOffset, 0xFFFF)
	_, err = Attach(corrupt)
	require.Error(t, err)
}

func TestAdoptLargerBuffer(t *testing.T) {
	b := newTestBlock(t, 256)
	require.NoError(t, StringAt(b, testNameOff).Set("grow me"))

	// Adopt the used prefix into a roomier buffer: the slack becomes
	// allocatable free space.
	blob := make([]byte, 1024)
	copy(blob, b.Bytes()[:b.UsedSpace()])
	big, err := Adopt(blob[:1024])
	require.NoError(t, err)
	require.Equal(t, uint32(1024), big.Capacity())
	require.Equal(t, b.UsedSpace(), big.UsedSpace())
	require.Equal(t, "grow me", StringAt(big, testNameOff).Get())

	_, err = big.Alloc(256, 1)
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	b := newTestBlock(t, 128)
	require.NoError(t, Validate(b.Bytes()))
	// A bare used-prefix slice still records the old capacity; Attach must
	// reject it (Adopt is the path that rewrites the accounting).
	require.Error(t, Validate(b.Bytes()[:b.UsedSpace()]))

	noAlloc, err := New(testLayout.Size(), testLayout.Size())
	require.NoError(t, err)
	require.NoError(t, Validate(noAlloc.Bytes()))
}
