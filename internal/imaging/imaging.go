package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"

	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension caps the width and height of stored photos.
	MaxDimension = 1024

	// Quality is the JPEG encoder quality for stored photos.
	Quality = 85
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo holds a processed photo ready for storage.
type Photo struct {
	Data        []byte
	ContentType string
}

// Process validates the payload by sniffing its content type, scales it
// down to MaxDimension when needed, and re-encodes it as JPEG. Client
// supplied content types are ignored.
func Process(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}

	detected := http.DetectContentType(data)
	if !allowed[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	img = scale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}

	return &Photo{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}, nil
}

// scale resizes img so neither dimension exceeds max, preserving the
// aspect ratio. Images already within bounds are returned unchanged.
func scale(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= max && h <= max {
		return img
	}

	nw, nh := max, max
	if w > h {
		nh = h * max / w
	} else {
		nw = w * max / h
	}

	if nw < 1 {
		nw = 1
	}

	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
