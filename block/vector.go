package block

import "github.com/blockkit/blockkit/internal/format"

// Vector is a dense sequence: an 8-byte header (count, data ref) pointing
// at count contiguous elements. Elements must themselves be
// relocation-safe, which every Type in this package is.
type Vector[T any] struct {
	b   *Block
	off uint32
	typ Type[T]
}

// VectorAt binds a vector view to the header at off.
func VectorAt[T any](b *Block, off uint32, t Type[T]) Vector[T] {
	return Vector[T]{b: b, off: off, typ: t}
}

// Create allocates storage for n zero-valued elements and binds the header
// to it. On ErrNoSpace the header is unchanged. Creating over a non-empty
// vector abandons the old storage.
func (v Vector[T]) Create(n uint32) error {
	if n == 0 {
		v.Clear()
		return nil
	}
	p, err := Create(v.b, v.typ, n)
	if err != nil {
		return err
	}
	v.b.PutU32(v.off+format.VectorCountOffset, n)
	v.b.putRef(v.off+format.VectorDataOffset, p)
	return nil
}

// Len returns the element count.
func (v Vector[T]) Len() uint32 {
	return v.b.U32(v.off + format.VectorCountOffset)
}

// Empty reports whether the vector holds no elements.
func (v Vector[T]) Empty() bool { return v.Len() == 0 }

// At returns the element at index.
func (v Vector[T]) At(index uint32) (T, error) {
	var zero T
	if index >= v.Len() {
		return zero, ErrOutOfRange
	}
	base := v.b.refTarget(v.off + format.VectorDataOffset)
	if base == 0 {
		return zero, ErrOutOfRange
	}
	return v.typ.read(v.b, base+index*v.typ.size), nil
}

// SetAt stores val at index. Reference-holding element types may allocate
// and report ErrNoSpace.
func (v Vector[T]) SetAt(index uint32, val T) error {
	if index >= v.Len() {
		return ErrOutOfRange
	}
	base := v.b.refTarget(v.off + format.VectorDataOffset)
	if base == 0 {
		return ErrOutOfRange
	}
	return v.typ.write(v.b, base+index*v.typ.size, val)
}

// Clear resets the header to the empty state without reclaiming storage.
func (v Vector[T]) Clear() {
	v.b.PutU32(v.off+format.VectorCountOffset, 0)
	v.b.putRef(v.off+format.VectorDataOffset, 0)
}
