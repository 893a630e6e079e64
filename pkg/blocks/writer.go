package blocks

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jonsch318/go-gif/pkg/animation"
)

// Writer is the marshalling counterpart of Reader: it emits the header and
// one block per WriteBlock call in wire order.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader emits the signature, version, logical screen descriptor and
// the global color table when the screen carries one. An empty version
// defaults to 89a.
func (e *Writer) WriteHeader(version string, screen animation.LogicalScreen) error {
	if version == "" {
		version = "89a"
	}
	var buf [headerSize + descriptorSize]byte
	copy(buf[:3], "GIF")
	copy(buf[3:6], version)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(screen.Width))
	binary.LittleEndian.PutUint16(buf[8:10], uint16(screen.Height))

	var packed byte
	if screen.Palette != nil {
		bits, err := tableSizeBits(len(screen.Palette.Colors))
		if err != nil {
			return err
		}
		packed = screenTableFlag | bits<<4 | bits
		if screen.Palette.Sorted {
			packed |= screenSortFlag
		}
	}
	buf[10] = packed
	buf[11] = screen.BackgroundIndex
	buf[12] = screen.AspectRatio

	if _, err := e.w.Write(buf[:]); err != nil {
		return err
	}
	if screen.Palette != nil {
		return e.writeColorTable(screen.Palette)
	}
	return nil
}

// WriteBlock emits one block. The concrete type decides the layout.
func (e *Writer) WriteBlock(b Block) error {
	switch block := b.(type) {
	case *Image:
		return e.writeImage(block)
	case *GraphicControl:
		return e.writeGraphicControl(block)
	case *Application:
		return e.writeApplication(block)
	case *Comment:
		if _, err := e.w.Write([]byte{sepExtension, labelComment}); err != nil {
			return err
		}
		return e.writeSubBlocks([]byte(block.Text))
	case *PlainText:
		return e.writePlainText(block)
	case Trailer:
		_, err := e.w.Write([]byte{sepTrailer})
		return err
	}
	return fmt.Errorf("gif: cannot write block type %T", b)
}

func (e *Writer) writeImage(img *Image) error {
	var buf [10]byte
	buf[0] = sepImage
	binary.LittleEndian.PutUint16(buf[1:3], uint16(img.Left))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(img.Top))
	binary.LittleEndian.PutUint16(buf[5:7], uint16(img.Width))
	binary.LittleEndian.PutUint16(buf[7:9], uint16(img.Height))

	var packed byte
	if img.Palette != nil {
		bits, err := tableSizeBits(len(img.Palette.Colors))
		if err != nil {
			return err
		}
		packed = imageTableFlag | bits
		if img.Sorted {
			packed |= imageSortFlag
		}
	}
	if img.Interlace {
		packed |= imageInterlaceFlag
	}
	buf[9] = packed

	if _, err := e.w.Write(buf[:]); err != nil {
		return err
	}
	if img.Palette != nil {
		if err := e.writeColorTable(img.Palette); err != nil {
			return err
		}
	}
	if _, err := e.w.Write([]byte{img.MinCodeSize}); err != nil {
		return err
	}
	return e.writeSubBlocks(img.Data)
}

func (e *Writer) writeGraphicControl(gc *GraphicControl) error {
	packed := byte(gc.Disposal) << controlDisposalShift
	if gc.UserInput {
		packed |= controlUserInputFlag
	}
	if gc.HasTransparency {
		packed |= controlTransparentFlag
	}
	buf := [8]byte{sepExtension, labelGraphicControl, 4, packed, 0, 0, gc.TransparentIndex, 0}
	binary.LittleEndian.PutUint16(buf[4:6], gc.DelayTime)
	_, err := e.w.Write(buf[:])
	return err
}

func (e *Writer) writeApplication(app *Application) error {
	if len(app.Identifier) != 8 || len(app.AuthCode) != 3 {
		return fmt.Errorf("gif: application extension needs an 8 byte identifier and a 3 byte auth code")
	}
	head := make([]byte, 0, 14)
	head = append(head, sepExtension, labelApplication, 11)
	head = append(head, app.Identifier...)
	head = append(head, app.AuthCode...)
	if _, err := e.w.Write(head); err != nil {
		return err
	}
	return e.writeSubBlocks(app.Data)
}

func (e *Writer) writePlainText(pt *PlainText) error {
	if _, err := e.w.Write([]byte{sepExtension, labelPlainText}); err != nil {
		return err
	}
	// The first sub-block of a plain text extension is its 12 byte header.
	if len(pt.Data) >= 12 {
		if _, err := e.w.Write(append([]byte{12}, pt.Data[:12]...)); err != nil {
			return err
		}
		return e.writeSubBlocks(pt.Data[12:])
	}
	return e.writeSubBlocks(pt.Data)
}

// writeSubBlocks chunks data into length-prefixed sub-blocks of at most 255
// bytes and appends the zero-length terminator.
func (e *Writer) writeSubBlocks(data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > maxBlockSize {
			n = maxBlockSize
		}
		if _, err := e.w.Write([]byte{byte(n)}); err != nil {
			return err
		}
		if _, err := e.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	_, err := e.w.Write([]byte{0})
	return err
}

func (e *Writer) writeColorTable(table *animation.ColorTable) error {
	buf := make([]byte, len(table.Colors)*3)
	for i, c := range table.Colors {
		buf[i*3] = c.R
		buf[i*3+1] = c.G
		buf[i*3+2] = c.B
	}
	_, err := e.w.Write(buf)
	return err
}

// tableSizeBits converts an entry count to the packed size field, the n of
// count = 2^(n+1).
func tableSizeBits(entries int) (byte, error) {
	if !animation.ValidSize(entries) {
		return 0, fmt.Errorf("%w: %d entries", ErrInvalidColorTableSize, entries)
	}
	var bits byte
	for n := entries; n > 2; n >>= 1 {
		bits++
	}
	return bits, nil
}
