package diagram2png

import "math"

// BoundingBox is a content rectangle in CSS pixels, as measured against
// the page's visual viewport by the in-page detector.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CropBox is an integer rectangle in device pixels, always fully
// contained in the source image: 0 <= X0 < X1 <= image width and
// 0 <= Y0 < Y1 <= image height.
type CropBox struct {
	X0, Y0, X1, Y1 int
}

// ComputeCropBox maps a CSS-pixel bounding box into a clamped device-pixel
// rectangle inside an imgWidth x imgHeight capture. scale is the device
// scale factor, padding the expansion in CSS pixels on every side.
//
// Returns nil when box is nil or degenerate, or when the image has no
// area; the caller must then fall back to the uncropped capture. A
// non-nil result is always a valid, non-degenerate rectangle.
func ComputeCropBox(box *BoundingBox, imgWidth, imgHeight, scale, padding int) *CropBox {
	if box == nil || box.Width <= 0 || box.Height <= 0 {
		return nil
	}
	if imgWidth <= 0 || imgHeight <= 0 {
		return nil
	}
	if scale < 1 {
		scale = 1
	}
	if padding < 0 {
		padding = 0
	}

	s := float64(scale)
	pad := float64(padding) * s

	x := clampInt(round(box.X*s-pad), 0, imgWidth-1)
	y := clampInt(round(box.Y*s-pad), 0, imgHeight-1)
	w := clampInt(round(box.Width*s+2*pad), 1, imgWidth-x)
	h := clampInt(round(box.Height*s+2*pad), 1, imgHeight-y)

	return &CropBox{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// Width returns the crop width in device pixels.
func (c *CropBox) Width() int { return c.X1 - c.X0 }

// Height returns the crop height in device pixels.
func (c *CropBox) Height() int { return c.Y1 - c.Y0 }

func round(v float64) int {
	return int(math.Round(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
