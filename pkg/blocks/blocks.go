package blocks

import "github.com/jonsch318/go-gif/pkg/animation"

// Block is one structural unit of the byte stream. The concrete types form
// a closed set; consumers switch exhaustively over them. Blocks are
// immutable once produced.
type Block interface {
	// Label returns the byte that discriminated the block in the stream.
	Label() byte
}

// Image is a table-based image: the descriptor, the optional local color
// table and the still-compressed pixel data.
type Image struct {
	Left, Top     int
	Width, Height int
	Interlace     bool
	Sorted        bool

	// Palette is the local color table, nil when the image uses the global
	// one.
	Palette *animation.ColorTable

	// MinCodeSize is the LZW minimum code size byte preceding the data.
	MinCodeSize byte
	// Data is the concatenated sub-block chain, still LZW-compressed.
	Data []byte
}

func (*Image) Label() byte { return sepImage }

// GraphicControl carries disposal, timing and transparency for the image
// block that follows it.
type GraphicControl struct {
	Disposal  animation.DisposalMethod
	UserInput bool
	// DelayTime is in hundredths of a second, zero meaning no explicit
	// delay.
	DelayTime uint16

	HasTransparency  bool
	TransparentIndex uint8
}

func (*GraphicControl) Label() byte { return labelGraphicControl }

// Application is an application extension. Unrecognized identifiers are
// preserved as-is; rejecting them would break forward compatibility.
type Application struct {
	Identifier string // 8 bytes
	AuthCode   string // 3 bytes
	Data       []byte // concatenated sub-block chain
}

func (*Application) Label() byte { return labelApplication }

// Comment is a comment extension.
type Comment struct {
	Text string
}

func (*Comment) Label() byte { return labelComment }

// PlainText is a plain text extension, kept opaque: the 12-byte header and
// the text sub-blocks concatenated.
type PlainText struct {
	Data []byte
}

func (*PlainText) Label() byte { return labelPlainText }

// Trailer terminates the stream.
type Trailer struct{}

func (Trailer) Label() byte { return sepTrailer }

// FromExtension rebuilds a block from the opaque metadata form the decoder
// hands out, for re-encoding. Returns nil for labels that have no block
// representation.
func FromExtension(x animation.Extension) Block {
	switch x.Label {
	case labelApplication:
		return &Application{Identifier: x.Identifier, AuthCode: x.AuthCode, Data: x.Data}
	case labelPlainText:
		return &PlainText{Data: x.Data}
	case labelComment:
		return &Comment{Text: string(x.Data)}
	}
	return nil
}
