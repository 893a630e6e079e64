// Package assembler reconstructs animation frames from the flat block
// stream. The wire format has no explicit grouping; the rules here are the
// one deterministic reading of it: the control extension immediately
// preceding an image block governs that image, every image block becomes
// exactly one frame, and everything else is out-of-band metadata.
package assembler

import (
	"errors"
	"fmt"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/jonsch318/go-gif/pkg/blocks"
	"github.com/jonsch318/go-gif/pkg/lzw"
)

var (
	// ErrCompression wraps a failure of the LZW collaborator, or
	// decompressed data too short for the frame's rectangle.
	ErrCompression = errors.New("gif: compressed image data")

	// ErrFrameBounds is returned when an image block's rectangle does not
	// lie within the logical screen.
	ErrFrameBounds = errors.New("gif: frame rectangle outside the logical screen")
)

// defaultPalette stands in for streams that declare neither a global nor a
// local color table, which the format permits.
var defaultPalette = &animation.ColorTable{
	Colors: []animation.RGB{{}, {R: 0xFF, G: 0xFF, B: 0xFF}},
}

// Assembler folds blocks into frames. Its only state between blocks is the
// pending control extension slot and the not-yet-attached metadata, both
// scoped to one decode, so independent decodes never share anything.
type Assembler struct {
	screen animation.LogicalScreen
	stream *animation.Stream

	pending      *blocks.GraphicControl
	pendingIndex int

	comments   []string
	extensions []animation.Extension

	warnings []Warning
	index    int
}

// New creates an assembler for one stream with the given logical screen.
func New(screen animation.LogicalScreen) *Assembler {
	return &Assembler{
		screen: screen,
		stream: animation.NewStream(screen),
		index:  -1,
	}
}

// Push consumes the next block in file order.
func (a *Assembler) Push(b blocks.Block) error {
	a.index++
	switch block := b.(type) {
	case *blocks.GraphicControl:
		if a.pending != nil {
			// The extension adjacent to the image wins; the orphaned one
			// never takes effect on any image.
			a.warn(WarnRedundantControlExtension, a.pendingIndex,
				"control extension without a following image, superseded")
		}
		a.pending = block
		a.pendingIndex = a.index
		return nil
	case *blocks.Image:
		return a.addFrame(block)
	case *blocks.Comment:
		a.comments = append(a.comments, block.Text)
		return nil
	case *blocks.Application:
		a.application(block)
		return nil
	case *blocks.PlainText:
		a.extensions = append(a.extensions, animation.Extension{
			Label: block.Label(),
			Data:  block.Data,
		})
		return nil
	case blocks.Trailer:
		return nil
	}
	return fmt.Errorf("gif: assembler cannot handle block type %T", b)
}

// addFrame turns one image block into exactly one frame. A missing control
// extension means the synthetic default: disposal none, zero delay, no
// transparency. Image blocks never layer into a shared frame.
func (a *Assembler) addFrame(img *blocks.Image) error {
	control := a.pending
	a.pending = nil
	if control == nil {
		control = &blocks.GraphicControl{}
	}

	frame := &animation.Frame{
		Left:   img.Left,
		Top:    img.Top,
		Width:  img.Width,
		Height: img.Height,

		Disposal:         control.Disposal,
		DelayTime:        control.DelayTime,
		UserInput:        control.UserInput,
		HasTransparency:  control.HasTransparency,
		TransparentIndex: control.TransparentIndex,
	}
	if !frame.Bounds(a.screen) {
		return fmt.Errorf("%w: (%d,%d)+%dx%d on %dx%d", ErrFrameBounds,
			img.Left, img.Top, img.Width, img.Height, a.screen.Width, a.screen.Height)
	}

	frame.Palette = img.Palette
	frame.LocalPalette = frame.Palette != nil
	if frame.Palette == nil {
		frame.Palette = a.screen.Palette
	}
	if frame.Palette == nil {
		frame.Palette = defaultPalette
	}

	pix, err := lzw.Decompress(img.Data, uint(img.MinCodeSize))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompression, err)
	}
	want := img.Width * img.Height
	if len(pix) < want {
		return fmt.Errorf("%w: decompressed %d of %d pixels", ErrCompression, len(pix), want)
	}
	// Trailing excess is tolerated, short data is not.
	pix = pix[:want]
	if img.Interlace {
		pix = deinterlace(pix, img.Width, img.Height)
	}
	frame.Pixels = pix

	frame.Comments = a.comments
	frame.Extensions = a.extensions
	a.comments, a.extensions = nil, nil

	a.stream.Append(frame)
	return nil
}

// application interprets looping extensions (NETSCAPE2.0 and its ANIMEXTS
// alias); anything else is preserved opaquely and flagged.
func (a *Assembler) application(app *blocks.Application) {
	looping := (app.Identifier == "NETSCAPE" && app.AuthCode == "2.0") ||
		(app.Identifier == "ANIMEXTS" && app.AuthCode == "1.0")
	if looping && len(app.Data) >= 3 && app.Data[0] == 1 {
		a.stream.HasLoop = true
		a.stream.LoopCount = uint16(app.Data[1]) | uint16(app.Data[2])<<8
		return
	}

	a.warn(WarnUnknownAppExtension, a.index,
		fmt.Sprintf("identifier %q %q kept opaquely", app.Identifier, app.AuthCode))
	a.extensions = append(a.extensions, animation.Extension{
		Label:      app.Label(),
		Identifier: app.Identifier,
		AuthCode:   app.AuthCode,
		Data:       app.Data,
	})
}

// Result finishes assembly: metadata with no subsequent frame is attached
// to the stream itself, a still-pending control extension is reported as
// dangling.
func (a *Assembler) Result() (*animation.Stream, []Warning) {
	if a.pending != nil {
		a.warn(WarnDanglingControlExtension, a.pendingIndex,
			"control extension pending at end of stream")
		a.pending = nil
	}
	a.stream.Comments = append(a.stream.Comments, a.comments...)
	a.stream.Extensions = append(a.stream.Extensions, a.extensions...)
	a.comments, a.extensions = nil, nil
	return a.stream, a.warnings
}

func (a *Assembler) warn(kind WarningKind, index int, msg string) {
	a.warnings = append(a.warnings, Warning{Kind: kind, BlockIndex: index, Message: msg})
}
