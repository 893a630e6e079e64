// Package animation is the format-neutral data model a decoder produces and
// an encoder consumes: a logical screen, an ordered frame sequence and the
// color tables the frames index into. It carries no decoding behaviour.
package animation

import "time"

// DisposalMethod tells the compositor what happens to a frame's canvas
// region once its display duration has elapsed.
type DisposalMethod uint8

const (
	// DisposalNone leaves the canvas as-is, the next frame draws on top.
	DisposalNone DisposalMethod = iota
	// DisposalDoNotDispose is equivalent to DisposalNone for compositing and
	// is kept distinct only so an encoder can round-trip it.
	DisposalDoNotDispose
	// DisposalRestoreBackground clears the frame's rectangle before the next
	// frame draws.
	DisposalRestoreBackground
	// DisposalRestorePrevious restores the frame's rectangle to whatever the
	// canvas held immediately before the frame was drawn.
	DisposalRestorePrevious
)

func (d DisposalMethod) String() string {
	switch d {
	case DisposalNone:
		return "none"
	case DisposalDoNotDispose:
		return "do not dispose"
	case DisposalRestoreBackground:
		return "restore to background"
	case DisposalRestorePrevious:
		return "restore to previous"
	}
	return "unknown"
}

// RGB is one color table entry.
type RGB struct {
	R, G, B uint8
}

// ColorTable is an ordered sequence of RGB triples. A valid table holds a
// power-of-two number of entries between 2 and 256.
type ColorTable struct {
	Colors []RGB
	Sorted bool
}

// ValidSize reports whether n is a legal color table entry count.
func ValidSize(n int) bool {
	return n >= 2 && n <= 256 && n&(n-1) == 0
}

// Lookup resolves a pixel index to its color. Out-of-range indices resolve
// to black, matching the fallback most renderers apply.
func (t *ColorTable) Lookup(index uint8) RGB {
	if t == nil || int(index) >= len(t.Colors) {
		return RGB{}
	}
	return t.Colors[index]
}

// Extension is an opaque extension block carried through decode as
// out-of-band metadata. Identifier and AuthCode are only set for
// application extensions.
type Extension struct {
	Label      byte
	Identifier string
	AuthCode   string
	Data       []byte
}

// LogicalScreen is the fixed virtual canvas every frame is a patch of.
// Created once from the stream header and immutable afterwards.
type LogicalScreen struct {
	Width, Height   int
	BackgroundIndex uint8
	AspectRatio     uint8
	// Palette is the global color table, nil when the stream declares none.
	Palette *ColorTable
}

// Frame is one reconstructed, independently timed unit of animation. Its
// rectangle need not cover the whole canvas; frames are patches.
type Frame struct {
	Left, Top     int
	Width, Height int

	// Pixels holds row-major color table indices, len = Width*Height.
	// Interlaced source rows have already been reordered sequentially.
	Pixels []uint8

	// Palette is the resolved table for this frame: the local table when the
	// image block carried one, otherwise the global table. LocalPalette
	// records which, so an encoder can reconstruct the block layout.
	Palette      *ColorTable
	LocalPalette bool

	Disposal DisposalMethod
	// DelayTime is in hundredths of a second. Zero is legal and means "no
	// explicit delay", still a discrete frame change.
	DelayTime uint16
	UserInput bool

	HasTransparency  bool
	TransparentIndex uint8

	Comments   []string
	Extensions []Extension
}

// Bounds reports whether the frame's rectangle lies entirely within the
// given logical screen.
func (f *Frame) Bounds(s LogicalScreen) bool {
	return f.Left >= 0 && f.Top >= 0 &&
		f.Left+f.Width <= s.Width && f.Top+f.Height <= s.Height
}

// Delay returns the frame's display duration.
func (f *Frame) Delay() time.Duration {
	return time.Duration(f.DelayTime) * 10 * time.Millisecond
}

// Stream is the root of the internal representation: the logical screen and
// the ordered frame sequence (insertion order is playback order). A stream
// with zero image blocks decodes to a valid, empty Stream.
type Stream struct {
	screen LogicalScreen
	frames []*Frame

	// HasLoop is set when the stream carried a looping application
	// extension. A LoopCount of zero means repeat forever.
	HasLoop   bool
	LoopCount uint16

	Comments   []string
	Extensions []Extension
}

// NewStream creates an empty stream over the given logical screen.
func NewStream(screen LogicalScreen) *Stream {
	return &Stream{screen: screen}
}

// LogicalScreen returns the stream's canvas description.
func (s *Stream) LogicalScreen() LogicalScreen {
	return s.screen
}

// Append adds a frame at the end of the playback order.
func (s *Stream) Append(f *Frame) {
	s.frames = append(s.frames, f)
}

// Len returns the number of frames.
func (s *Stream) Len() int {
	return len(s.frames)
}

// Frame returns the i-th frame in playback order.
func (s *Stream) Frame(i int) *Frame {
	return s.frames[i]
}

// Frames returns the playback-ordered frame slice. Callers must treat it as
// read-only.
func (s *Stream) Frames() []*Frame {
	return s.frames
}

// Duration is the nominal duration of one playback pass, the sum of all
// frame delays. Looping is not factored in.
func (s *Stream) Duration() time.Duration {
	var total time.Duration
	for _, f := range s.frames {
		total += f.Delay()
	}
	return total
}
