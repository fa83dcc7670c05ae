// Package preview renders thumbnail previews for uploaded screenshots.
package preview

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

type Renderer interface {
	Render(src io.Reader, width int) (io.Reader, error)
}

type renderer struct{}

func NewRenderer() Renderer {
	return &renderer{}
}

// Render decodes the source image and scales it down to the given width,
// preserving the aspect ratio. The preview is always encoded as PNG so the
// serving handler has a single content type to deal with.
func (r *renderer) Render(src io.Reader, width int) (io.Reader, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, err
	}
	return &buf, nil
}
