package misc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

// EncodePNG encodes img, scaled down to width pixels wide when width is positive
// and smaller than the image. The aspect ratio is kept.
func EncodePNG(img image.Image, width uint) ([]byte, error) {
	if width > 0 && int(width) < img.Bounds().Dx() {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNG writes img to fileName as a png, see EncodePNG for width.
func SavePNG(fileName string, img image.Image, width uint) error {
	data, err := EncodePNG(img, width)
	if err != nil {
		return err
	}
	_, err = WriteFile(fileName, data)
	return err
}
