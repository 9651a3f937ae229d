package models

import "image"

// Rect is a rectangle in the caller's coordinate system.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PixelBuffer is an immutable snapshot of one captured frame.
//
// The pixel data is copied out of the source image at construction time so
// the analysis owns its own snapshot; the buffer is never mutated after
// creation. Extent describes where the buffer sits in the caller's
// coordinate system, so detected band rectangles can be reported back in
// the caller's units.
type PixelBuffer struct {
	Width  int
	Height int
	// Pix holds 4 bytes per pixel in R, G, B, A order, row-major.
	Pix    []uint8
	Extent Rect
}

// NewPixelBufferFromImage copies an already-cropped, upright image into a
// PixelBuffer. The extent is the image's footprint in the caller's
// coordinate system; pass FullExtent(img) when image pixels are the
// coordinate system.
func NewPixelBufferFromImage(img image.Image, extent Rect) *PixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf := &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
		Extent: extent,
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			buf.Pix[i] = uint8(r >> 8)
			buf.Pix[i+1] = uint8(g >> 8)
			buf.Pix[i+2] = uint8(b >> 8)
			buf.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return buf
}

// FullExtent returns an extent matching the image's own pixel grid.
func FullExtent(img image.Image) Rect {
	b := img.Bounds()
	return Rect{X: 0, Y: 0, W: float64(b.Dx()), H: float64(b.Dy())}
}

// RGBAt returns the pixel at (x, y). Coordinates outside the buffer are
// clamped to the nearest edge, so samplers never need their own bounds
// checks. An empty buffer reads as black everywhere.
func (b *PixelBuffer) RGBAt(x, y int) RGB {
	if b.Width <= 0 || b.Height <= 0 {
		return RGB{}
	}
	if x < 0 {
		x = 0
	} else if x >= b.Width {
		x = b.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.Height {
		y = b.Height - 1
	}
	i := (y*b.Width + x) * 4
	return RGB{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// AverageRGB averages the pixels of the window [x0,x1)x[y0,y1), clamped to
// the buffer bounds. An empty window after clamping returns black.
func (b *PixelBuffer) AverageRGB(x0, y0, x1, y1 int) RGB {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > b.Width {
		x1 = b.Width
	}
	if y1 > b.Height {
		y1 = b.Height
	}
	if x0 >= x1 || y0 >= y1 {
		return RGB{}
	}

	var sumR, sumG, sumB, n int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := (y*b.Width + x) * 4
			sumR += int(b.Pix[i])
			sumG += int(b.Pix[i+1])
			sumB += int(b.Pix[i+2])
			n++
		}
	}
	return RGB{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
	}
}
