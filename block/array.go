package block

// Array is a view over n contiguous elements stored inline, with no header
// of its own: the count is part of the declaration, not the blob. Access is
// bounds-checked against the declared count.
type Array[T any] struct {
	b   *Block
	off uint32
	n   uint32
	typ Type[T]
}

// ArrayAt binds an array view to existing storage at off (an inline record
// field from ArrayField, or a region produced by CreateArray).
func ArrayAt[T any](b *Block, off, n uint32, t Type[T]) Array[T] {
	return Array[T]{b: b, off: off, n: n, typ: t}
}

// CreateArray allocates zeroed storage for n elements in the block's free
// space and returns the bound view. Store the view's Offset in a reference
// slot to anchor it in the record.
func CreateArray[T any](b *Block, t Type[T], n uint32) (Array[T], error) {
	p, err := Create(b, t, n)
	if err != nil {
		return Array[T]{}, err
	}
	return ArrayAt(b, p, n, t), nil
}

// Offset returns the block position of the first element.
func (a Array[T]) Offset() uint32 { return a.off }

// Len returns the declared element count.
func (a Array[T]) Len() uint32 { return a.n }

// Empty reports whether the array has zero declared elements.
func (a Array[T]) Empty() bool { return a.n == 0 }

// At returns the element at index.
func (a Array[T]) At(index uint32) (T, error) {
	var zero T
	if index >= a.n {
		return zero, ErrOutOfRange
	}
	return a.typ.read(a.b, a.off+index*a.typ.size), nil
}

// SetAt stores val at index.
func (a Array[T]) SetAt(index uint32, val T) error {
	if index >= a.n {
		return ErrOutOfRange
	}
	return a.typ.write(a.b, a.off+index*a.typ.size, val)
}
