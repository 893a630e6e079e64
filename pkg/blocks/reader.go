package blocks

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jonsch318/go-gif/pkg/animation"
)

// Header is the fixed lead-in of a stream: signature/version plus the
// logical screen section (descriptor and optional global color table).
type Header struct {
	// Version is "87a" or "89a".
	Version string
	Screen  animation.LogicalScreen
}

// Reader produces one Block per call from a byte stream. It never buffers
// the whole input; each Next call reads exactly one block's worth of bytes.
// The only state carried across calls is the cursor position.
type Reader struct {
	r      io.Reader
	offset int64
	index  int
	header *Header
	done   bool
}

// NewReader wraps r. ReadHeader must be called before the first Next.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, index: -1}
}

// Offset returns the number of bytes consumed so far.
func (d *Reader) Offset() int64 {
	return d.offset
}

// BlockIndex returns the zero-based index of the most recently read block,
// -1 before the first one.
func (d *Reader) BlockIndex() int {
	return d.index
}

// ReadHeader consumes the signature, version, logical screen descriptor and
// the global color table when one is declared.
func (d *Reader) ReadHeader() (*Header, error) {
	var buf [headerSize + descriptorSize]byte
	if err := d.readFull(buf[:]); err != nil {
		return nil, err
	}
	if string(buf[:3]) != "GIF" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSignature, buf[:3])
	}
	version := string(buf[3:6])
	if version != "87a" && version != "89a" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	packed := buf[10]
	screen := animation.LogicalScreen{
		Width:           int(binary.LittleEndian.Uint16(buf[6:8])),
		Height:          int(binary.LittleEndian.Uint16(buf[8:10])),
		BackgroundIndex: buf[11],
		AspectRatio:     buf[12],
	}
	if packed&screenTableFlag != 0 {
		table, err := d.readColorTable(2<<(packed&screenTableSizeMask), packed&screenSortFlag != 0)
		if err != nil {
			return nil, err
		}
		screen.Palette = table
	}

	d.header = &Header{Version: version, Screen: screen}
	return d.header, nil
}

// Next reads and returns the next block. It returns io.EOF after the
// trailer has been consumed, or when the input ends cleanly at a block
// boundary (a missing trailer is tolerated). Unknown extension labels are
// skipped with their sub-block chain; an invalid block separator fails with
// ErrUnknownBlockLabel.
func (d *Reader) Next() (Block, error) {
	if d.header == nil {
		return nil, fmt.Errorf("gif: Next called before ReadHeader")
	}
	for {
		if d.done {
			return nil, io.EOF
		}
		sep, err := d.readByte()
		if err == io.EOF {
			d.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		d.index++

		switch sep {
		case sepTrailer:
			d.done = true
			return Trailer{}, nil
		case sepImage:
			return d.readImage()
		case sepExtension:
			block, err := d.readExtension()
			if err != nil {
				return nil, err
			}
			if block == nil {
				// Unknown extension label, skipped. Read on.
				continue
			}
			return block, nil
		default:
			return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownBlockLabel, sep)
		}
	}
}

func (d *Reader) readImage() (*Image, error) {
	var buf [9]byte
	if err := d.readFull(buf[:]); err != nil {
		return nil, err
	}
	packed := buf[8]
	img := &Image{
		Left:      int(binary.LittleEndian.Uint16(buf[0:2])),
		Top:       int(binary.LittleEndian.Uint16(buf[2:4])),
		Width:     int(binary.LittleEndian.Uint16(buf[4:6])),
		Height:    int(binary.LittleEndian.Uint16(buf[6:8])),
		Interlace: packed&imageInterlaceFlag != 0,
		Sorted:    packed&imageSortFlag != 0,
	}
	if packed&imageTableFlag != 0 {
		table, err := d.readColorTable(2<<(packed&imageTableSizeMask), img.Sorted)
		if err != nil {
			return nil, err
		}
		img.Palette = table
	}

	minCodeSize, err := d.readByteStrict()
	if err != nil {
		return nil, err
	}
	img.MinCodeSize = minCodeSize
	img.Data, err = d.readSubBlocks()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *Reader) readExtension() (Block, error) {
	label, err := d.readByteStrict()
	if err != nil {
		return nil, err
	}
	switch label {
	case labelGraphicControl:
		return d.readGraphicControl()
	case labelApplication:
		return d.readApplication()
	case labelComment:
		body, err := d.readSubBlocks()
		if err != nil {
			return nil, err
		}
		return &Comment{Text: string(body)}, nil
	case labelPlainText:
		body, err := d.readSubBlocks()
		if err != nil {
			return nil, err
		}
		return &PlainText{Data: body}, nil
	default:
		// Forward compatibility: consume the sub-block chain, drop the
		// block.
		if _, err := d.readSubBlocks(); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func (d *Reader) readGraphicControl() (*GraphicControl, error) {
	body, err := d.readSubBlocks()
	if err != nil {
		return nil, err
	}
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: graphic control body is %d bytes", ErrTruncatedStream, len(body))
	}
	packed := body[0]
	return &GraphicControl{
		Disposal:         disposalFromPacked(packed),
		UserInput:        packed&controlUserInputFlag != 0,
		DelayTime:        binary.LittleEndian.Uint16(body[1:3]),
		HasTransparency:  packed&controlTransparentFlag != 0,
		TransparentIndex: body[3],
	}, nil
}

func (d *Reader) readApplication() (*Application, error) {
	body, err := d.readSubBlocks()
	if err != nil {
		return nil, err
	}
	if len(body) < 11 {
		return nil, fmt.Errorf("%w: application extension body is %d bytes", ErrTruncatedStream, len(body))
	}
	return &Application{
		Identifier: string(body[:8]),
		AuthCode:   string(body[8:11]),
		Data:       body[11:],
	}, nil
}

// disposalFromPacked extracts the disposal method bits. Reserved values 4-7
// fall back to "none", the same treatment renderers give them.
func disposalFromPacked(packed byte) animation.DisposalMethod {
	v := (packed & controlDisposalMask) >> controlDisposalShift
	if v > uint8(animation.DisposalRestorePrevious) {
		return animation.DisposalNone
	}
	return animation.DisposalMethod(v)
}

// readSubBlocks consumes a length-prefixed sub-block chain up to and
// including its zero-length terminator, returning the concatenated payload.
func (d *Reader) readSubBlocks() ([]byte, error) {
	var out []byte
	var buf [maxBlockSize]byte
	for {
		n, err := d.readByteStrict()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return out, nil
		}
		if err := d.readFull(buf[:n]); err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
	}
}

func (d *Reader) readColorTable(entries int, sorted bool) (*animation.ColorTable, error) {
	if !animation.ValidSize(entries) {
		return nil, fmt.Errorf("%w: %d entries", ErrInvalidColorTableSize, entries)
	}
	buf := make([]byte, entries*3)
	if err := d.readFull(buf); err != nil {
		return nil, err
	}
	table := &animation.ColorTable{
		Colors: make([]animation.RGB, entries),
		Sorted: sorted,
	}
	for i := range table.Colors {
		table.Colors[i] = animation.RGB{R: buf[i*3], G: buf[i*3+1], B: buf[i*3+2]}
	}
	return table, nil
}

// readByte returns io.EOF untouched so Next can tell a clean end of input
// apart from a mid-block truncation.
func (d *Reader) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	d.offset++
	return buf[0], nil
}

// readByteStrict is readByte for positions inside a block, where running
// out of input is a truncation, not a clean end.
func (d *Reader) readByteStrict() (byte, error) {
	b, err := d.readByte()
	if err == io.EOF {
		return 0, fmt.Errorf("%w: input ended inside a block", ErrTruncatedStream)
	}
	return b, err
}

// readFull reads an exact run of bytes, mapping any short read to
// ErrTruncatedStream.
func (d *Reader) readFull(p []byte) error {
	n, err := io.ReadFull(d.r, p)
	d.offset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %d of %d bytes", ErrTruncatedStream, n, len(p))
	}
	return err
}
