package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Transform turns the raw bytes of an accepted upload into the bytes that get
// persisted. The direct strategy uses no Transform at all and streams the
// file straight to disk.
type Transform interface {
	Name() string
	Apply(r io.Reader) ([]byte, error)
}

// ResizeTransform fits every image into a fixed canvas, letterboxing with a
// white background when the aspect ratio differs. The output always has
// exactly Width×Height pixels.
type ResizeTransform struct {
	Width  int
	Height int
}

func (ResizeTransform) Name() string { return "resize" }

func (t ResizeTransform) Apply(r io.Reader) ([]byte, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	fitted := imaging.Fit(img, t.Width, t.Height, imaging.Lanczos)
	canvas := imaging.New(t.Width, t.Height, color.White)
	out := imaging.PasteCenter(canvas, fitted)

	encoding := imaging.JPEG
	if format == "png" {
		encoding = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, encoding); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
