package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The standard test record: one string, one u32, one list of int32, one
// map, one vector. Offsets are computed once; every test block built from
// it shares the schema.
var (
	testLayout    = NewLayout()
	testNameOff   = testLayout.String()
	testCountOff  = testLayout.U32()
	testItemsOff  = testLayout.List()
	testAttrsOff  = testLayout.Map()
	testScoresOff = testLayout.Vector()
)

// newTestBlock builds a block with the standard test record and the given
// capacity.
func newTestBlock(t testing.TB, capacity uint32) *Block {
	t.Helper()
	b, err := New(testLayout.Size(), capacity)
	require.NoError(t, err)
	return b
}

// relocate byte-copies b's used prefix into a fresh buffer and adopts it,
// simulating a move to a different base address.
func relocate(t testing.TB, b *Block) *Block {
	t.Helper()
	blob := make([]byte, b.UsedSpace())
	copy(blob, b.Bytes()[:b.UsedSpace()])
	moved, err := Adopt(blob)
	require.NoError(t, err)
	return moved
}
