package tensor

import "errors"

// Validation errors. Every one of them is reported before any output write.
var (
	ErrShapeMismatch     = errors.New("shape mismatch: element counts disagree")
	ErrRankOverflow      = errors.New("rank exceeds maximum")
	ErrUnsupportedLayout = errors.New("unsupported layout")
	ErrTypeMismatch      = errors.New("data type mismatch")
	ErrOutOfBounds       = errors.New("offset out of buffer bounds")
	ErrInvalidShape      = errors.New("invalid shape descriptor")
)
