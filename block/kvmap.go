package block

import (
	"math"

	"github.com/blockkit/blockkit/internal/format"
)

// Map is an associative container over a dense vector of key/value pairs.
// Lookup is a linear scan; duplicates are representable and the first
// match wins. Neither uniqueness nor ordering is enforced.
type Map[K comparable, V any] struct {
	b      *Block
	off    uint32
	key    Type[K]
	val    Type[V]
	valOff uint32
	stride uint32
}

// MapAt binds a map view to the vector header at off. The pair layout
// places the value after the key at its natural alignment; the stride is
// rounded up so contiguous pairs stay aligned.
func MapAt[K comparable, V any](b *Block, off uint32, k Type[K], v Type[V]) Map[K, V] {
	valOff := format.AlignUp32(k.size, v.align)
	align := k.align
	if v.align > align {
		align = v.align
	}
	return Map[K, V]{
		b:      b,
		off:    off,
		key:    k,
		val:    v,
		valOff: valOff,
		stride: format.AlignUp32(valOff+v.size, align),
	}
}

// Create allocates storage for n zeroed pairs and binds the header to it.
// On ErrNoSpace the header is unchanged.
func (m Map[K, V]) Create(n uint32) error {
	if n == 0 {
		m.Clear()
		return nil
	}
	total := uint64(n) * uint64(m.stride)
	if total > math.MaxUint32 {
		return ErrNoSpace
	}
	p, err := m.b.Alloc(uint32(total), m.pairAlign())
	if err != nil {
		return err
	}
	m.b.PutU32(m.off+format.VectorCountOffset, n)
	m.b.putRef(m.off+format.VectorDataOffset, p)
	return nil
}

// Len returns the pair count.
func (m Map[K, V]) Len() uint32 {
	return m.b.U32(m.off + format.VectorCountOffset)
}

// Empty reports whether the map holds no pairs.
func (m Map[K, V]) Empty() bool { return m.Len() == 0 }

// KeyAt returns the key of the pair at index.
func (m Map[K, V]) KeyAt(index uint32) (K, error) {
	var zero K
	base, err := m.pair(index)
	if err != nil {
		return zero, err
	}
	return m.key.read(m.b, base), nil
}

// ValueAt returns the value of the pair at index.
func (m Map[K, V]) ValueAt(index uint32) (V, error) {
	var zero V
	base, err := m.pair(index)
	if err != nil {
		return zero, err
	}
	return m.val.read(m.b, base+m.valOff), nil
}

// SetAt stores a pair at index. Reference-holding key or value types may
// allocate and report ErrNoSpace.
func (m Map[K, V]) SetAt(index uint32, k K, v V) error {
	base, err := m.pair(index)
	if err != nil {
		return err
	}
	if err := m.key.write(m.b, base, k); err != nil {
		return err
	}
	return m.val.write(m.b, base+m.valOff, v)
}

// Find scans for the first pair whose key equals k and returns its index.
func (m Map[K, V]) Find(k K) (uint32, bool) {
	n := m.Len()
	for i := uint32(0); i < n; i++ {
		base, err := m.pair(i)
		if err != nil {
			return 0, false
		}
		if m.key.read(m.b, base) == k {
			return i, true
		}
	}
	return 0, false
}

// Get returns the value for k, or ErrKeyNotFound when no pair matches.
func (m Map[K, V]) Get(k K) (V, error) {
	var zero V
	i, ok := m.Find(k)
	if !ok {
		return zero, ErrKeyNotFound
	}
	return m.ValueAt(i)
}

// Clear resets the header to the empty state without reclaiming storage.
func (m Map[K, V]) Clear() {
	m.b.PutU32(m.off+format.VectorCountOffset, 0)
	m.b.putRef(m.off+format.VectorDataOffset, 0)
}

func (m Map[K, V]) pair(index uint32) (uint32, error) {
	if index >= m.Len() {
		return 0, ErrOutOfRange
	}
	base := m.b.refTarget(m.off + format.VectorDataOffset)
	if base == 0 {
		return 0, ErrOutOfRange
	}
	return base + index*m.stride, nil
}

func (m Map[K, V]) pairAlign() uint32 {
	if m.val.align > m.key.align {
		return m.val.align
	}
	return m.key.align
}
