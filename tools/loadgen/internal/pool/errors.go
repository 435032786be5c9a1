package pool

import "errors"

// Sentinel errors returned by pool operations. Callers match these with
// errors.Is rather than comparing messages.
var (
	// ErrPoolClosed is returned by every operation after Close.
	ErrPoolClosed = errors.New("parameter pool is closed")

	// ErrValueNotFound is returned when a lookup targets a value that is
	// not in the pool.
	ErrValueNotFound = errors.New("value not found in pool")

	// ErrInvalidSemanticType is returned when an operation is given a
	// semantic type the pool does not recognize.
	ErrInvalidSemanticType = errors.New("invalid semantic type")
)
