package animation_test

import (
	"testing"
	"time"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/stretchr/testify/require"
)

func TestValidSize(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16, 32, 64, 128, 256} {
		require.True(t, animation.ValidSize(n), "%d", n)
	}
	for _, n := range []int{0, 1, 3, 5, 100, 257, 512} {
		require.False(t, animation.ValidSize(n), "%d", n)
	}
}

func TestLookupFallsBackToBlack(t *testing.T) {
	table := &animation.ColorTable{Colors: []animation.RGB{{R: 1}, {R: 2}}}
	require.Equal(t, animation.RGB{R: 2}, table.Lookup(1))
	require.Equal(t, animation.RGB{}, table.Lookup(5))

	var nilTable *animation.ColorTable
	require.Equal(t, animation.RGB{}, nilTable.Lookup(0))
}

func TestFrameBounds(t *testing.T) {
	screen := animation.LogicalScreen{Width: 10, Height: 10}
	inside := &animation.Frame{Left: 2, Top: 2, Width: 8, Height: 8}
	require.True(t, inside.Bounds(screen))
	outside := &animation.Frame{Left: 3, Top: 3, Width: 8, Height: 8}
	require.False(t, outside.Bounds(screen))
}

func TestStreamAccessors(t *testing.T) {
	s := animation.NewStream(animation.LogicalScreen{Width: 4, Height: 4})
	require.Equal(t, 0, s.Len())
	require.Zero(t, s.Duration())

	s.Append(&animation.Frame{DelayTime: 100})
	s.Append(&animation.Frame{DelayTime: 50})
	s.Append(&animation.Frame{})

	require.Equal(t, 3, s.Len())
	require.Equal(t, uint16(50), s.Frame(1).DelayTime)
	require.Equal(t, 500*time.Millisecond, s.Frame(1).Delay())
	// A zero delay is still a discrete frame.
	require.Zero(t, s.Frame(2).Delay())
	require.Equal(t, 1500*time.Millisecond, s.Duration())
}

func TestDisposalMethodString(t *testing.T) {
	require.Equal(t, "restore to previous", animation.DisposalRestorePrevious.String())
	require.Equal(t, "unknown", animation.DisposalMethod(9).String())
}
