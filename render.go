package gif

import (
	"errors"

	"github.com/jonsch318/go-gif/pkg/animation"
	"github.com/jonsch318/go-gif/pkg/compositor"
)

// Render composites the decoded frame sequence into full-canvas images, one
// per displayed frame, with disposal and transparency resolved.
func Render(s *animation.Stream) ([]compositor.RenderedFrame, error) {
	if s == nil {
		return nil, errors.New("stream is nil")
	}
	return compositor.Render(s), nil
}
