// Package lzw is the compression collaborator of the decoder: pure
// functions between index streams and the variable-width, LSB-first code
// stream image blocks carry. Codes start at litWidth+1 bits and grow to 12;
// the table holds 4096 entries and is reset by the clear code. Any
// conforming implementation could be substituted, the contract is just
// bytes in, bytes out.
package lzw

import (
	"errors"
	"fmt"
)

const (
	maxWidth = 12
	maxCodes = 1 << maxWidth

	invalidCode = uint16(0xFFFF)
)

var (
	// ErrBadLitWidth is returned for a minimum code size outside 2..8.
	ErrBadLitWidth = errors.New("lzw: minimum code size out of range")

	// ErrBadCode is returned when a code exceeds the current table.
	ErrBadCode = errors.New("lzw: code out of range of the table")

	// ErrTruncated is returned when the code stream ends before the end of
	// information code.
	ErrTruncated = errors.New("lzw: code stream ended before the end of information code")
)

// Decompress expands a compressed code stream back into color table
// indices. litWidth is the image block's minimum code size.
func Decompress(data []byte, litWidth uint) ([]byte, error) {
	if litWidth < 2 || litWidth > 8 {
		return nil, fmt.Errorf("%w: %d", ErrBadLitWidth, litWidth)
	}
	clear := uint16(1) << litWidth
	eoi := clear + 1

	// prefix[c] ++ suffix[c] spells the string of code c, walked back to
	// front through buf.
	var (
		prefix [maxCodes]uint16
		suffix [maxCodes]uint8
		// A string can chain through the whole table, plus one byte for a
		// code that references itself.
		buf [maxCodes + 1]uint8
	)

	width := litWidth + 1
	next := clear + 2
	last := invalidCode
	var lastFirst uint8

	var (
		out   []byte
		acc   uint32
		nbits uint
		pos   int
	)

	for {
		for nbits < width {
			if pos >= len(data) {
				return nil, fmt.Errorf("%w (byte %d)", ErrTruncated, pos)
			}
			acc |= uint32(data[pos]) << nbits
			pos++
			nbits += 8
		}
		code := uint16(acc) & (1<<width - 1)
		acc >>= width
		nbits -= width

		switch {
		case code == clear:
			width = litWidth + 1
			next = clear + 2
			last = invalidCode
			continue
		case code == eoi:
			return out, nil
		case last == invalidCode && code >= clear:
			// The first code after a clear can only be a literal.
			return nil, fmt.Errorf("%w: code %d right after clear", ErrBadCode, code)
		case code > next || (code == next && last == invalidCode):
			return nil, fmt.Errorf("%w: code %d, table size %d", ErrBadCode, code, next)
		}

		// Expand the code into buf, back to front.
		n := len(buf)
		c := code
		if code == next {
			// The code being defined by this very read: the previous
			// string plus its own first byte.
			n--
			buf[n] = lastFirst
			c = last
		}
		for c >= clear {
			n--
			buf[n] = suffix[c]
			c = prefix[c]
		}
		n--
		buf[n] = uint8(c)
		first := uint8(c)
		out = append(out, buf[n:]...)

		if last != invalidCode && next < maxCodes {
			prefix[next] = last
			suffix[next] = first
			next++
			if next == 1<<width && width < maxWidth {
				width++
			}
		}
		last = code
		lastFirst = first
	}
}
