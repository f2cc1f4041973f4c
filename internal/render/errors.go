package render

import "errors"

// Errors reported by Render before any drawing side effect takes place.
var (
	// ErrDegenerateBounds is returned when an axis of the curve bounds has zero
	// (or non-finite) extent, which leaves the scale undefined.
	ErrDegenerateBounds = errors.New("render: degenerate bounds")

	// ErrEmptySequence is returned when no points were supplied.
	ErrEmptySequence = errors.New("render: empty point sequence")

	// ErrSurfaceUnavailable is returned when the target surface or one of its
	// layers is missing or has been disposed.
	ErrSurfaceUnavailable = errors.New("render: surface unavailable")
)
