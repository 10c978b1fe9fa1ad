package diagram2png

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// decodePNG reads and decodes a PNG capture from disk.
func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- path is a temp file this package created
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	return img, nil
}

// cropImage copies the crop rectangle out of src into a fresh image.
// The box is assumed valid for the source bounds (ComputeCropBox
// guarantees this); a fresh copy avoids carrying the full capture's
// backing pixels into the encoder.
func cropImage(src image.Image, box *CropBox) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, box.Width(), box.Height()))
	rect := image.Rect(box.X0, box.Y0, box.X1, box.Y1).Add(src.Bounds().Min)
	draw.Copy(dst, image.Point{}, src, rect, draw.Src, nil)
	return dst
}

// writePNG encodes img to path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) // #nosec G304 -- caller-supplied output path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWritePNG, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", ErrWritePNG, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePNG, err)
	}
	return nil
}

// cropToFile writes the crop rectangle of img to path. The box must
// lie within the image bounds.
func cropToFile(path string, img image.Image, box *CropBox) error {
	bounds := img.Bounds()
	if box.X1 > bounds.Dx() || box.Y1 > bounds.Dy() {
		return fmt.Errorf("%w: crop box %v exceeds image %dx%d",
			ErrCropImage, *box, bounds.Dx(), bounds.Dy())
	}

	return writePNG(path, cropImage(img, box))
}
