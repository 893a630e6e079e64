// Package gif decodes GIF streams into a format-neutral animation model
// and encodes that model back. The block grammar, the frame composition
// policy and the compositing rules live in pkg/blocks, pkg/assembler and
// pkg/compositor; this package is the public boundary.
package gif

import (
	"errors"
	"fmt"
	"io"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/jonsch318/go-gif/pkg/assembler"
	"github.com/jonsch318/go-gif/pkg/blocks"
)

// DecodeError is any fatal decode failure, located by byte offset and
// block index. The underlying cause is one of the blocks/assembler/lzw
// sentinel errors and available through errors.Is/As.
type DecodeError struct {
	Offset int64
	Block  int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gif: decode failed at byte %d (block %d): %v", e.Offset, e.Block, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads a whole GIF stream from r. Any fatal condition aborts the
// decode; no partial stream is ever returned. A stream with zero image
// blocks decodes to a valid, empty animation.
func Decode(r io.Reader) (*animation.Stream, error) {
	stream, _, err := DecodeWithWarnings(r)
	return stream, err
}

// DecodeWithWarnings is Decode plus the non-fatal diagnostics collected on
// the way (redundant or dangling control extensions, unknown application
// extensions). Callers are free to ignore them.
func DecodeWithWarnings(r io.Reader) (*animation.Stream, []assembler.Warning, error) {
	if r == nil {
		return nil, nil, errors.New("reader is nil")
	}

	d := blocks.NewReader(r)
	header, err := d.ReadHeader()
	if err != nil {
		return nil, nil, decodeError(d, err)
	}

	asm := assembler.New(header.Screen)
	for {
		block, err := d.Next()
		if err == io.EOF {
			// End of input at a block boundary; a missing trailer is
			// tolerated.
			break
		}
		if err != nil {
			return nil, nil, decodeError(d, err)
		}
		if err := asm.Push(block); err != nil {
			return nil, nil, decodeError(d, err)
		}
		if _, done := block.(blocks.Trailer); done {
			break
		}
	}

	stream, warnings := asm.Result()
	return stream, warnings, nil
}

func decodeError(d *blocks.Reader, err error) error {
	return &DecodeError{Offset: d.Offset(), Block: d.BlockIndex(), Err: err}
}
