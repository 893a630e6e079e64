// Package compositor turns the frame sequence, patches plus disposal
// instructions, into the visible canvas per displayed frame.
package compositor

import (
	"image"
	"time"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/jonsch318/go-gif/pkg/assert"
	"github.com/jonsch318/go-gif/pkg/stdlib"
)

// RenderedFrame is one fully resolved canvas: what is visibly on screen
// starting at the frame's display time, and how long it holds.
type RenderedFrame struct {
	Image *image.RGBA
	Delay time.Duration
}

// Render composites every frame onto a persistent working canvas and
// snapshots the canvas per frame. The canvas starts fully transparent;
// restore-to-background likewise clears to transparent rather than the
// background color, which is how contemporary renderers treat it.
// Restore-to-previous saves only the frame's dirty rectangle, never the
// whole canvas.
func Render(s *animation.Stream) []RenderedFrame {
	screen := s.LogicalScreen()
	canvas := image.NewRGBA(image.Rect(0, 0, screen.Width, screen.Height))
	out := make([]RenderedFrame, 0, s.Len())

	for _, f := range s.Frames() {
		assert.Assertf(len(f.Pixels) == f.Width*f.Height,
			"frame pixel buffer is %d, rectangle is %dx%d", len(f.Pixels), f.Width, f.Height)

		var previous []uint8
		if f.Disposal == animation.DisposalRestorePrevious {
			previous = snapshotRect(canvas, f)
		}

		drawPatch(canvas, f)
		out = append(out, RenderedFrame{Image: cloneCanvas(canvas), Delay: f.Delay()})

		// Disposal applies between this frame's display and the next draw.
		switch f.Disposal {
		case animation.DisposalRestoreBackground:
			clearRect(canvas, f)
		case animation.DisposalRestorePrevious:
			restoreRect(canvas, f, previous)
		}
	}
	return out
}

// drawPatch draws the frame's rectangle onto the canvas. Transparent-index
// pixels are not drawn, the canvas beneath shows through.
func drawPatch(canvas *image.RGBA, f *animation.Frame) {
	for y := 0; y < f.Height; y++ {
		row := canvas.Pix[canvas.PixOffset(f.Left, f.Top+y):]
		for x := 0; x < f.Width; x++ {
			index := f.Pixels[y*f.Width+x]
			if f.HasTransparency && index == f.TransparentIndex {
				continue
			}
			c := f.Palette.Lookup(index)
			o := x * 4
			row[o], row[o+1], row[o+2], row[o+3] = c.R, c.G, c.B, 0xFF
		}
	}
}

func snapshotRect(canvas *image.RGBA, f *animation.Frame) []uint8 {
	buf := make([]uint8, f.Width*f.Height*4)
	for y := 0; y < f.Height; y++ {
		o := canvas.PixOffset(f.Left, f.Top+y)
		stdlib.MemCpy(buf[y*f.Width*4:(y+1)*f.Width*4], canvas.Pix[o:o+f.Width*4])
	}
	return buf
}

func restoreRect(canvas *image.RGBA, f *animation.Frame, buf []uint8) {
	assert.Assert(len(buf) == f.Width*f.Height*4)
	for y := 0; y < f.Height; y++ {
		o := canvas.PixOffset(f.Left, f.Top+y)
		stdlib.MemCpy(canvas.Pix[o:o+f.Width*4], buf[y*f.Width*4:(y+1)*f.Width*4])
	}
}

func clearRect(canvas *image.RGBA, f *animation.Frame) {
	for y := 0; y < f.Height; y++ {
		o := canvas.PixOffset(f.Left, f.Top+y)
		stdlib.Memset(canvas.Pix[o:o+f.Width*4], 0)
	}
}

func cloneCanvas(canvas *image.RGBA) *image.RGBA {
	clone := image.NewRGBA(canvas.Rect)
	stdlib.MemCpy(clone.Pix, canvas.Pix)
	return clone
}
