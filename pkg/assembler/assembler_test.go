package assembler_test

import (
	"testing"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/jonsch318/go-gif/pkg/assembler"
	"github.com/jonsch318/go-gif/pkg/blocks"
	"github.com/jonsch318/go-gif/pkg/lzw"
	"github.com/stretchr/testify/require"
)

var testPalette = &animation.ColorTable{
	Colors: []animation.RGB{
		{}, {R: 0xFF}, {G: 0xFF}, {B: 0xFF},
	},
}

func testScreen() animation.LogicalScreen {
	return animation.LogicalScreen{Width: 10, Height: 10, Palette: testPalette}
}

func imageBlock(t *testing.T, left, top, width, height int, pix []byte) *blocks.Image {
	t.Helper()
	require.Len(t, pix, width*height)
	data, err := lzw.Compress(pix, 2)
	require.NoError(t, err)
	return &blocks.Image{
		Left: left, Top: top, Width: width, Height: height,
		MinCodeSize: 2,
		Data:        data,
	}
}

func push(t *testing.T, a *assembler.Assembler, bs ...blocks.Block) {
	t.Helper()
	for _, b := range bs {
		require.NoError(t, a.Push(b))
	}
}

func TestImagesWithoutControl(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a,
		imageBlock(t, 0, 0, 2, 2, []byte{0, 1, 2, 3}),
		imageBlock(t, 2, 0, 2, 2, []byte{3, 2, 1, 0}),
		imageBlock(t, 4, 0, 2, 2, []byte{1, 1, 1, 1}),
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Empty(t, warnings)
	require.Equal(t, 3, stream.Len())
	for _, f := range stream.Frames() {
		require.Equal(t, animation.DisposalNone, f.Disposal)
		require.Equal(t, uint16(0), f.DelayTime)
		require.False(t, f.HasTransparency)
		require.False(t, f.UserInput)
	}
	require.Equal(t, []byte{3, 2, 1, 0}, stream.Frame(1).Pixels)
}

func TestControlGovernsAdjacentImage(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a,
		&blocks.GraphicControl{
			Disposal:         animation.DisposalRestoreBackground,
			DelayTime:        100,
			HasTransparency:  true,
			TransparentIndex: 3,
		},
		imageBlock(t, 0, 0, 2, 2, []byte{0, 1, 2, 3}),
		imageBlock(t, 0, 2, 2, 2, []byte{0, 1, 2, 3}),
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Empty(t, warnings)
	require.Equal(t, 2, stream.Len())

	first := stream.Frame(0)
	require.Equal(t, animation.DisposalRestoreBackground, first.Disposal)
	require.Equal(t, uint16(100), first.DelayTime)
	require.True(t, first.HasTransparency)
	require.Equal(t, uint8(3), first.TransparentIndex)

	// The control extension was consumed; the second image gets defaults.
	second := stream.Frame(1)
	require.Equal(t, animation.DisposalNone, second.Disposal)
	require.Equal(t, uint16(0), second.DelayTime)
}

func TestRedundantControlExtension(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a,
		&blocks.GraphicControl{DelayTime: 10},
		&blocks.GraphicControl{DelayTime: 20},
		imageBlock(t, 0, 0, 1, 1, []byte{1}),
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Len(t, warnings, 1)
	require.Equal(t, assembler.WarnRedundantControlExtension, warnings[0].Kind)
	require.Equal(t, 1, stream.Len())
	require.Equal(t, uint16(20), stream.Frame(0).DelayTime)
}

func TestDanglingControlExtension(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a,
		imageBlock(t, 0, 0, 1, 1, []byte{1}),
		&blocks.GraphicControl{DelayTime: 10},
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Len(t, warnings, 1)
	require.Equal(t, assembler.WarnDanglingControlExtension, warnings[0].Kind)
	require.Equal(t, 1, stream.Len())
}

func TestLoopingExtension(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a,
		&blocks.Application{Identifier: "NETSCAPE", AuthCode: "2.0", Data: []byte{1, 5, 0}},
		imageBlock(t, 0, 0, 1, 1, []byte{0}),
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Empty(t, warnings)
	require.True(t, stream.HasLoop)
	require.Equal(t, uint16(5), stream.LoopCount)
}

func TestUnknownApplicationKeptOpaquely(t *testing.T) {
	a := assembler.New(testScreen())
	unknown := &blocks.Application{Identifier: "XMP Data", AuthCode: "XMP", Data: []byte{1, 2, 3}}
	push(t, a,
		unknown,
		imageBlock(t, 0, 0, 1, 1, []byte{0}),
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Len(t, warnings, 1)
	require.Equal(t, assembler.WarnUnknownAppExtension, warnings[0].Kind)

	require.Len(t, stream.Frame(0).Extensions, 1)
	x := stream.Frame(0).Extensions[0]
	require.Equal(t, "XMP Data", x.Identifier)
	require.Equal(t, []byte{1, 2, 3}, x.Data)
}

func TestMetadataAttachment(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a,
		&blocks.Comment{Text: "for the first frame"},
		imageBlock(t, 0, 0, 1, 1, []byte{0}),
		&blocks.Comment{Text: "no frame follows"},
		blocks.Trailer{},
	)
	stream, warnings := a.Result()
	require.Empty(t, warnings)
	require.Equal(t, []string{"for the first frame"}, stream.Frame(0).Comments)
	require.Equal(t, []string{"no frame follows"}, stream.Comments)
}

func TestInterlacedRowsReordered(t *testing.T) {
	a := assembler.New(testScreen())
	// Interlaced storage order for height 4 is y=0, y=2, y=1, y=3.
	stored := []byte{
		0, 0, // y=0
		2, 2, // y=2
		1, 1, // y=1
		3, 3, // y=3
	}
	img := imageBlock(t, 0, 0, 2, 4, stored)
	img.Interlace = true
	push(t, a, img, blocks.Trailer{})
	stream, _ := a.Result()
	require.Equal(t, []byte{0, 0, 1, 1, 2, 2, 3, 3}, stream.Frame(0).Pixels)
}

func TestPaletteResolution(t *testing.T) {
	a := assembler.New(testScreen())
	local := &animation.ColorTable{Colors: []animation.RGB{{R: 1}, {R: 2}}}
	withLocal := imageBlock(t, 0, 0, 1, 1, []byte{1})
	withLocal.Palette = local
	push(t, a,
		withLocal,
		imageBlock(t, 0, 0, 1, 1, []byte{1}),
		blocks.Trailer{},
	)
	stream, _ := a.Result()

	require.True(t, stream.Frame(0).LocalPalette)
	require.Same(t, local, stream.Frame(0).Palette)
	require.False(t, stream.Frame(1).LocalPalette)
	require.Same(t, testPalette, stream.Frame(1).Palette)
}

func TestFrameOutsideScreen(t *testing.T) {
	a := assembler.New(testScreen())
	err := a.Push(imageBlock(t, 5, 5, 8, 8, make([]byte, 64)))
	require.ErrorIs(t, err, assembler.ErrFrameBounds)
}

func TestCompressionFailures(t *testing.T) {
	t.Run("bad code stream", func(t *testing.T) {
		a := assembler.New(testScreen())
		err := a.Push(&blocks.Image{Width: 1, Height: 1, MinCodeSize: 2, Data: []byte{0x34}})
		require.ErrorIs(t, err, assembler.ErrCompression)
	})

	t.Run("short pixel data", func(t *testing.T) {
		a := assembler.New(testScreen())
		short := imageBlock(t, 0, 0, 1, 1, []byte{1})
		short.Width, short.Height = 2, 2
		err := a.Push(short)
		require.ErrorIs(t, err, assembler.ErrCompression)
	})
}

func TestEmptyStream(t *testing.T) {
	a := assembler.New(testScreen())
	push(t, a, blocks.Trailer{})
	stream, warnings := a.Result()
	require.Empty(t, warnings)
	require.Equal(t, 0, stream.Len())
	require.Zero(t, stream.Duration())
}
