package block

import "errors"

var (
	// ErrNoSpace indicates the embedded allocator could not satisfy a request.
	ErrNoSpace = errors.New("block: not enough free space")

	// ErrOutOfRange indicates an indexed access beyond a container's size.
	ErrOutOfRange = errors.New("block: index out of range")

	// ErrKeyNotFound indicates a map lookup for a key that is not present.
	ErrKeyNotFound = errors.New("block: key not found")

	// ErrCapacity indicates a destination region too small for the operation.
	ErrCapacity = errors.New("block: capacity too small")

	// ErrSelfRef indicates an attempt to point a reference slot at itself.
	// Offset zero is reserved for null, so self-reference is unrepresentable.
	ErrSelfRef = errors.New("block: reference cannot target its own slot")

	// ErrRefRange indicates a reference target outside the block or a delta
	// that does not fit the signed 32-bit offset type.
	ErrRefRange = errors.New("block: reference target out of range")

	// ErrNilBlock indicates a nil source block where one was required.
	ErrNilBlock = errors.New("block: nil block")
)
