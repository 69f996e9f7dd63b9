package pixmap

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is out of range.
	ErrInvalidDimensions = errors.New("pixmap: invalid dimensions")

	// ErrUnsupportedFormat is returned for Undefined or unknown pixel formats.
	ErrUnsupportedFormat = errors.New("pixmap: unsupported pixel format")

	// ErrUnsupportedFilterFormat is returned when no image filter set exists
	// for a pixel format (Gray8, RGB555, RGB565).
	ErrUnsupportedFilterFormat = errors.New("pixmap: no image filters for pixel format")

	// ErrFormatMismatch is returned when a buffer is used with a pixel format
	// other than the one it was created with.
	ErrFormatMismatch = errors.New("pixmap: pixel format mismatch")

	// ErrSurfaceDestroyed is returned (or used as panic value by rendering
	// buffers) once a Surface has been destroyed.
	ErrSurfaceDestroyed = errors.New("pixmap: surface destroyed")

	// ErrSameSurface is returned by Resample when the source and the
	// destination are the same surface.
	ErrSameSurface = errors.New("pixmap: source and destination are the same surface")

	// ErrInvalidScale is returned by Draw for non-positive scale factors.
	ErrInvalidScale = errors.New("pixmap: invalid scale")

	// ErrInvalidData is returned when packed pixmap data is malformed.
	ErrInvalidData = errors.New("pixmap: invalid data")

	// ErrEngineActive is returned by Begin when a paint engine is already painting.
	ErrEngineActive = errors.New("pixmap: paint engine is already active")

	// ErrEngineNotActive is returned by paint operations outside Begin/End.
	ErrEngineNotActive = errors.New("pixmap: paint engine is not active")
)
