package blocks

import "errors"

var (
	// ErrTruncatedStream is returned when a declared length (sub-block,
	// color table, image dimension) exceeds the remaining input.
	ErrTruncatedStream = errors.New("gif: truncated stream")

	// ErrUnknownBlockLabel is returned for a block discriminator that is
	// neither an extension introducer, an image separator nor the trailer.
	// Unrecognized extension sub-types are NOT an error, they are carried
	// through opaquely.
	ErrUnknownBlockLabel = errors.New("gif: unknown block label")

	// ErrInvalidColorTableSize is returned when a color table's entry count
	// is not a power of two between 2 and 256.
	ErrInvalidColorTableSize = errors.New("gif: invalid color table size")

	// ErrInvalidSignature is returned when the stream does not start with
	// the GIF signature.
	ErrInvalidSignature = errors.New("gif: invalid signature")

	// ErrInvalidVersion is returned for a version field other than 87a/89a.
	ErrInvalidVersion = errors.New("gif: invalid version")
)
