package lzw

import "fmt"

// Compress encodes color table indices into a code stream Decompress (or
// any conforming decoder) accepts: a leading clear code, the data codes,
// the end of information code, zero padding to a byte boundary. When the
// table fills up no clear is emitted; the table is simply kept as-is.
func Compress(pix []byte, litWidth uint) ([]byte, error) {
	if litWidth < 2 || litWidth > 8 {
		return nil, fmt.Errorf("%w: %d", ErrBadLitWidth, litWidth)
	}
	clear := uint16(1) << litWidth
	eoi := clear + 1

	var w bitWriter
	width := litWidth + 1
	next := clear + 2
	// table maps prefix-code<<8|byte to the code of the extended string.
	table := make(map[uint32]uint16)

	w.write(clear, width)
	if len(pix) == 0 {
		w.write(eoi, width)
		return w.flush(), nil
	}
	if uint(pix[0]) >= uint(clear) {
		return nil, fmt.Errorf("lzw: pixel %d does not fit a minimum code size of %d", pix[0], litWidth)
	}

	current := uint16(pix[0])
	for _, b := range pix[1:] {
		if uint(b) >= uint(clear) {
			return nil, fmt.Errorf("lzw: pixel %d does not fit a minimum code size of %d", b, litWidth)
		}
		key := uint32(current)<<8 | uint32(b)
		if code, ok := table[key]; ok {
			current = code
			continue
		}
		w.write(current, width)
		if next < maxCodes {
			table[key] = next
			// The decoder defines this entry one code later than we do,
			// so the width grows one entry later than on the decode side.
			if next == 1<<width && width < maxWidth {
				width++
			}
			next++
		}
		current = uint16(b)
	}
	w.write(current, width)
	w.write(eoi, width)
	return w.flush(), nil
}

// bitWriter packs codes LSB-first.
type bitWriter struct {
	out   []byte
	acc   uint32
	nbits uint
}

func (w *bitWriter) write(code uint16, width uint) {
	w.acc |= uint32(code) << w.nbits
	w.nbits += width
	for w.nbits >= 8 {
		w.out = append(w.out, uint8(w.acc))
		w.acc >>= 8
		w.nbits -= 8
	}
}

func (w *bitWriter) flush() []byte {
	if w.nbits > 0 {
		w.out = append(w.out, uint8(w.acc))
		w.acc = 0
		w.nbits = 0
	}
	return w.out
}
