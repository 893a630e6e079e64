package blocks

// Block separators, the first byte of every structural unit after the
// logical screen section.
const (
	sepExtension byte = 0x21
	sepImage     byte = 0x2C
	sepTrailer   byte = 0x3B
)

// Extension labels, the byte following an extension introducer.
const (
	labelPlainText      byte = 0x01
	labelGraphicControl byte = 0xF9
	labelComment        byte = 0xFE
	labelApplication    byte = 0xFF
)

/*
LogicalScreenDescriptor packed field:

	0-2:	GlobalColorTableSize
	  3:	SortFlag (89a only, always 0 under 87a)
	4-6:	ColorResolution
	  7:	GlobalColorTableFlag
*/
const (
	screenTableSizeMask  = 0x07
	screenSortFlag       = 0x08
	screenTableFlag      = 0x80
	screenResolutionMask = 0x70
)

/*
ImageDescriptor packed field:

	0-2:	LocalColorTableSize
	3-4:	Reserved
	  5:	SortFlag
	  6:	InterlaceFlag
	  7:	LocalColorTableFlag
*/
const (
	imageTableSizeMask = 0x07
	imageSortFlag      = 0x20
	imageInterlaceFlag = 0x40
	imageTableFlag     = 0x80
)

/*
GraphicControlExtension packed field:

	  0:	TransparentColorFlag
	  1:	UserInputFlag
	2-4:	DisposalMethod
	5-7:	Reserved
*/
const (
	controlTransparentFlag = 0x01
	controlUserInputFlag   = 0x02
	controlDisposalMask    = 0x1C
	controlDisposalShift   = 2
)

const (
	headerSize     = 6
	descriptorSize = 7
	maxBlockSize   = 255
)
