package gif

import (
	"errors"
	"io"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/jonsch318/go-gif/pkg/blocks"
	"github.com/jonsch318/go-gif/pkg/lzw"
)

// Encode writes the animation back as a GIF89a stream. The layout is
// canonical rather than byte-identical to whatever was decoded: frames
// whose settings equal the synthetic default are written without a control
// extension, interlacing is never re-applied and metadata is written
// directly before the frame it belongs to, so decoding the result yields
// the same frame sequence again.
func Encode(w io.Writer, s *animation.Stream) error {
	if w == nil {
		return errors.New("writer is nil")
	}
	if s == nil {
		return errors.New("stream is nil")
	}

	e := blocks.NewWriter(w)
	screen := s.LogicalScreen()
	if err := e.WriteHeader("89a", screen); err != nil {
		return err
	}

	if s.HasLoop {
		loop := &blocks.Application{
			Identifier: "NETSCAPE",
			AuthCode:   "2.0",
			Data:       []byte{1, byte(s.LoopCount), byte(s.LoopCount >> 8)},
		}
		if err := e.WriteBlock(loop); err != nil {
			return err
		}
	}

	for _, f := range s.Frames() {
		if err := writeMetadata(e, f.Comments, f.Extensions); err != nil {
			return err
		}
		if err := writeFrame(e, f); err != nil {
			return err
		}
	}

	// Stream-level metadata had no frame after it; keep it that way.
	if err := writeMetadata(e, s.Comments, s.Extensions); err != nil {
		return err
	}
	return e.WriteBlock(blocks.Trailer{})
}

func writeFrame(e *blocks.Writer, f *animation.Frame) error {
	if control := controlFor(f); control != nil {
		if err := e.WriteBlock(control); err != nil {
			return err
		}
	}

	width := litWidthFor(f)
	data, err := lzw.Compress(f.Pixels, width)
	if err != nil {
		return err
	}
	img := &blocks.Image{
		Left:        f.Left,
		Top:         f.Top,
		Width:       f.Width,
		Height:      f.Height,
		MinCodeSize: byte(width),
		Data:        data,
	}
	if f.LocalPalette {
		img.Palette = f.Palette
		img.Sorted = f.Palette.Sorted
	}
	return e.WriteBlock(img)
}

// controlFor returns the frame's graphic control extension, or nil when
// every field equals the synthetic default a decoder would apply anyway.
func controlFor(f *animation.Frame) *blocks.GraphicControl {
	if f.Disposal == animation.DisposalNone && f.DelayTime == 0 &&
		!f.UserInput && !f.HasTransparency {
		return nil
	}
	return &blocks.GraphicControl{
		Disposal:         f.Disposal,
		UserInput:        f.UserInput,
		DelayTime:        f.DelayTime,
		HasTransparency:  f.HasTransparency,
		TransparentIndex: f.TransparentIndex,
	}
}

// litWidthFor picks the minimum code size: wide enough for the frame's
// palette and for every pixel value actually present.
func litWidthFor(f *animation.Frame) uint {
	width := uint(2)
	for f.Palette != nil && 1<<width < len(f.Palette.Colors) {
		width++
	}
	for _, p := range f.Pixels {
		for width < 8 && uint(p) >= 1<<width {
			width++
		}
	}
	return width
}

func writeMetadata(e *blocks.Writer, comments []string, extensions []animation.Extension) error {
	for _, text := range comments {
		if err := e.WriteBlock(&blocks.Comment{Text: text}); err != nil {
			return err
		}
	}
	for _, x := range extensions {
		block := blocks.FromExtension(x)
		if block == nil {
			continue
		}
		if err := e.WriteBlock(block); err != nil {
			return err
		}
	}
	return nil
}
