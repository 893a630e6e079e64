package assembler

// Interlaced images store their rows in four passes. deinterlace reorders
// the decompressed rows back into sequential top-to-bottom order.
var interlacePasses = [4]struct{ start, step int }{
	{0, 8},
	{4, 8},
	{2, 4},
	{1, 2},
}

func deinterlace(pix []uint8, width, height int) []uint8 {
	out := make([]uint8, len(pix))
	row := 0
	for _, pass := range interlacePasses {
		for y := pass.start; y < height; y += pass.step {
			copy(out[y*width:(y+1)*width], pix[row*width:(row+1)*width])
			row++
		}
	}
	return out
}
