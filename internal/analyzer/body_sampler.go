package analyzer

import "go-resistor-inspector/pkg/models"

// defaultBodyColor is the fallback base color (a typical tan resistor
// body) used when every sample is rejected as noise.
var defaultBodyColor = models.RGB{R: 120, G: 70, B: 40}

// minPointChannel rejects near-black point samples: a sample survives only
// if its brightest channel exceeds this.
const minPointChannel = 20

// minAreaChannelNorm rejects margin rectangles whose averaged color has
// every normalized channel at or below this.
const minAreaChannelNorm = 0.05

// bodySampler estimates the resistor's base (non-band) color. Two
// independent estimates are combined so a failure of one sampling scheme
// never propagates; the sampler always returns a value.
type bodySampler struct{}

// NewBodySampler creates a new body color sampler
func NewBodySampler() BodySampler {
	return &bodySampler{}
}

// SampleBodyColor returns the element-wise average of a point estimate and
// an area estimate of the body color.
func (bs *bodySampler) SampleBodyColor(buf *models.PixelBuffer) models.RGB {
	point := bs.pointEstimate(buf)
	area := bs.areaEstimate(buf)

	return models.RGB{
		R: uint8((int(point.R) + int(area.R)) / 2),
		G: uint8((int(point.G) + int(area.G)) / 2),
		B: uint8((int(point.B) + int(area.B)) / 2),
	}
}

// pointEstimate samples four fixed coordinates in the left and right
// thirds of the image at mid-height plus/minus a small offset. Samples
// whose brightest channel reads as near-black noise are dropped.
func (bs *bodySampler) pointEstimate(buf *models.PixelBuffer) models.RGB {
	w, h := buf.Width, buf.Height
	offset := h / 12

	points := [4][2]int{
		{w / 3, h/2 - offset},
		{w / 3, h/2 + offset},
		{2 * w / 3, h/2 - offset},
		{2 * w / 3, h/2 + offset},
	}

	var sumR, sumG, sumB, n int
	for _, p := range points {
		c := buf.RGBAt(p[0], p[1])
		if c.MaxChannel() <= minPointChannel {
			continue
		}
		sumR += int(c.R)
		sumG += int(c.G)
		sumB += int(c.B)
		n++
	}
	if n == 0 {
		return defaultBodyColor
	}
	return models.RGB{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n)}
}

// areaEstimate averages four margin rectangles, thin strips along each
// edge that stay out of the central band zone. Rectangles that average to
// near-black are dropped.
func (bs *bodySampler) areaEstimate(buf *models.PixelBuffer) models.RGB {
	w, h := buf.Width, buf.Height
	stripW := max(1, w/50) // 2% of width
	stripH := max(1, h/20) // 5% of height

	rects := [4][4]int{
		{0, h / 4, stripW, 3 * h / 4},              // left edge
		{w - stripW, h / 4, w, 3 * h / 4},          // right edge
		{w / 10, 0, 9 * w / 10, stripH},            // top edge
		{w / 10, h - stripH, 9 * w / 10, h},        // bottom edge
	}

	var sumR, sumG, sumB, n int
	for _, r := range rects {
		avg := buf.AverageRGB(r[0], r[1], r[2], r[3])
		if float64(avg.R)/255.0 <= minAreaChannelNorm &&
			float64(avg.G)/255.0 <= minAreaChannelNorm &&
			float64(avg.B)/255.0 <= minAreaChannelNorm {
			continue
		}
		sumR += int(avg.R)
		sumG += int(avg.G)
		sumB += int(avg.B)
		n++
	}
	if n == 0 {
		return defaultBodyColor
	}
	return models.RGB{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n)}
}
