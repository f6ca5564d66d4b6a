package stencil

import "errors"

var (
	// ErrInvalidSourceGeometry is returned when the source image has zero area.
	ErrInvalidSourceGeometry = errors.New("invalid source geometry")

	// ErrInvalidCanvas is returned for a canvas with zero area or a non-positive scale.
	ErrInvalidCanvas = errors.New("invalid canvas")

	// ErrUnknownMode is returned by Binarize and ParseMode for unrecognised modes.
	ErrUnknownMode = errors.New("unknown binarization mode")

	// ErrDimensionMismatch is returned when paired rasters differ in size.
	ErrDimensionMismatch = errors.New("raster dimensions do not match")
)
