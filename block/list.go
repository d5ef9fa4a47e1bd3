package block

import "github.com/blockkit/blockkit/internal/format"

// List is a singly linked, offset-chained list. One 12-byte node carries
// (remaining count, value ref, next ref); the head node is the list itself
// and holds the first element, so an empty list occupies only its header
// and the first append allocates nothing but the element.
//
// Every node's count records the length of the chain rooted at that node:
// count == 0 implies both refs are null, otherwise
// count == 1 + next.count.
type List[T any] struct {
	b   *Block
	off uint32
	typ Type[T]
}

// ListAt binds a list view to the head node at off.
func ListAt[T any](b *Block, off uint32, t Type[T]) List[T] {
	return List[T]{b: b, off: off, typ: t}
}

// listContent describes a detached chain built in free space, not yet
// linked into a list. A count of zero marks an empty (or failed) build and
// appending it is a strict no-op.
type listContent struct {
	count uint32
	value uint32
	next  uint32
}

// Len returns the number of elements.
func (l List[T]) Len() uint32 {
	return l.b.U32(l.off + format.ListCountOffset)
}

// Empty reports whether the list holds no elements.
func (l List[T]) Empty() bool { return l.Len() == 0 }

// At walks index hops and returns the element there.
func (l List[T]) At(index uint32) (T, error) {
	var zero T
	if index >= l.Len() {
		return zero, ErrOutOfRange
	}
	node := l.off
	for ; index > 0; index-- {
		node = l.b.refTarget(node + format.ListNextOffset)
		if node == 0 {
			return zero, ErrOutOfRange
		}
	}
	v := l.b.refTarget(node + format.ListValueOffset)
	if v == 0 {
		return zero, ErrOutOfRange
	}
	return l.typ.read(l.b, v), nil
}

// Append allocates storage for v and links it at the tail. On ErrNoSpace
// the list is unchanged.
func (l List[T]) Append(v T) error {
	val, err := Create(l.b, l.typ, 1)
	if err != nil {
		return err
	}
	if err := l.typ.write(l.b, val, v); err != nil {
		return err
	}
	return l.appendChain(listContent{count: 1, value: val})
}

// Resize grows the list with zero-valued elements or truncates it to n.
// Growth that cannot be fully satisfied mutates nothing and reports
// ErrNoSpace. Shrinking reclaims no bytes.
func (l List[T]) Resize(n uint32) error {
	size := l.Len()
	switch {
	case n == size:
		return nil
	case n > size:
		c, err := l.createChain(n - size)
		if err != nil {
			return err
		}
		return l.appendChain(c)
	case n == 0:
		l.Clear()
		return nil
	case n == 1:
		l.b.putRef(l.off+format.ListNextOffset, 0)
		l.b.PutU32(l.off+format.ListCountOffset, 1)
		return nil
	default:
		node := l.off
		for i := uint32(1); i < n; i++ {
			next := l.b.refTarget(node + format.ListNextOffset)
			if next == 0 {
				return ErrOutOfRange
			}
			node = next
		}
		l.b.putRef(node+format.ListNextOffset, 0)
		node = l.off
		for i := uint32(0); i < n; i++ {
			l.b.PutU32(node+format.ListCountOffset, n-i)
			node = l.b.refTarget(node + format.ListNextOffset)
		}
		return nil
	}
}

// Clear resets the head to the empty state. The chain's bytes remain
// occupied in the allocator.
func (l List[T]) Clear() {
	l.b.PutU32(l.off+format.ListCountOffset, 0)
	l.b.putRef(l.off+format.ListValueOffset, 0)
	l.b.putRef(l.off+format.ListNextOffset, 0)
}

// appendChain links a detached chain at the tail and recomputes every
// count on the path bottom-up, so the count invariant holds at each node
// regardless of how the chain was produced.
func (l List[T]) appendChain(c listContent) error {
	if c.count == 0 {
		return nil
	}
	node := l.off
	if l.b.U32(node+format.ListCountOffset) == 0 {
		l.writeNode(node, c)
		return nil
	}
	var path []uint32
	for {
		path = append(path, node)
		next := l.b.refTarget(node + format.ListNextOffset)
		if next == 0 {
			break
		}
		node = next
	}
	nn, err := l.b.Alloc(format.ListNodeSize, 4)
	if err != nil {
		return err
	}
	l.writeNode(nn, c)
	l.b.putRef(node+format.ListNextOffset, nn)
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		next := l.b.refTarget(p + format.ListNextOffset)
		l.b.PutU32(p+format.ListCountOffset, l.b.U32(next+format.ListCountOffset)+1)
	}
	return nil
}

// createChain builds a detached chain of n zero-valued elements. On any
// sub-allocation failure the already-carved bytes stay reserved but
// unreferenced (inert) and an empty content is reported.
func (l List[T]) createChain(n uint32) (listContent, error) {
	var c listContent
	if n == 0 {
		return c, nil
	}
	v0, err := Create(l.b, l.typ, 1)
	if err != nil {
		return c, err
	}
	head := listContent{count: n, value: v0}
	prev := uint32(0)
	for i := uint32(1); i < n; i++ {
		node, err := l.b.Alloc(format.ListNodeSize, 4)
		if err != nil {
			return c, err
		}
		val, err := Create(l.b, l.typ, 1)
		if err != nil {
			return c, err
		}
		l.b.PutU32(node+format.ListCountOffset, n-i)
		l.b.putRef(node+format.ListValueOffset, val)
		l.b.putRef(node+format.ListNextOffset, 0)
		if prev == 0 {
			head.next = node
		} else {
			l.b.putRef(prev+format.ListNextOffset, node)
		}
		prev = node
	}
	return head, nil
}

func (l List[T]) writeNode(node uint32, c listContent) {
	l.b.PutU32(node+format.ListCountOffset, c.count)
	l.b.putRef(node+format.ListValueOffset, c.value)
	l.b.putRef(node+format.ListNextOffset, c.next)
}

// ListIter walks a list front to back.
type ListIter[T any] struct {
	l    List[T]
	node uint32
}

// Iter returns an iterator positioned at the first element.
func (l List[T]) Iter() *ListIter[T] {
	it := &ListIter[T]{l: l}
	if l.Len() > 0 {
		it.node = l.off
	}
	return it
}

// Next returns the current element and advances, or reports false past the
// end.
func (it *ListIter[T]) Next() (T, bool) {
	var zero T
	if it.node == 0 {
		return zero, false
	}
	v := it.l.b.refTarget(it.node + format.ListValueOffset)
	it.node = it.l.b.refTarget(it.node + format.ListNextOffset)
	if v == 0 {
		return zero, false
	}
	return it.l.typ.read(it.l.b, v), true
}
