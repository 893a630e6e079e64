package assembler

import "fmt"

// WarningKind classifies the malformed-but-legal conditions the assembler
// tolerates. Warnings never abort a decode.
type WarningKind uint8

const (
	// WarnRedundantControlExtension: two graphic control extensions with no
	// image between them. The earlier one never takes effect.
	WarnRedundantControlExtension WarningKind = iota
	// WarnDanglingControlExtension: a graphic control extension was still
	// pending when the stream ended.
	WarnDanglingControlExtension
	// WarnUnknownAppExtension: an application extension with an identifier
	// the decoder does not interpret. The block is kept opaquely.
	WarnUnknownAppExtension
)

func (k WarningKind) String() string {
	switch k {
	case WarnRedundantControlExtension:
		return "redundant control extension"
	case WarnDanglingControlExtension:
		return "dangling control extension"
	case WarnUnknownAppExtension:
		return "unknown application extension"
	}
	return "unknown"
}

// Warning is one non-fatal diagnostic, tied to the block that caused it.
type Warning struct {
	Kind       WarningKind
	BlockIndex int
	Message    string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at block %d: %s", w.Kind, w.BlockIndex, w.Message)
}
