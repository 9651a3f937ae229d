package analyzer

import "go-resistor-inspector/pkg/models"

// glareWindowFraction is how much of the frame must read as specular
// highlight before the whole frame is flagged.
const glareWindowFraction = 0.15

// glareDetector implements the frame-level specular glare pre-check.
// Widespread glare does not stop the pipeline; it is surfaced on the
// result so callers can prompt for a retake.
type glareDetector struct{}

// NewGlareDetector creates a new glare detector
func NewGlareDetector() GlareDetector {
	return &glareDetector{}
}

// DetectGlare samples the frame on a coarse grid of 8x8 windows and
// reports true when the reflected fraction crosses the cutoff.
func (gd *glareDetector) DetectGlare(buf *models.PixelBuffer) bool {
	const window = 8

	total := 0
	reflected := 0
	for y := 0; y < buf.Height; y += window {
		for x := 0; x < buf.Width; x += window {
			avg := buf.AverageRGB(x, y, x+window, y+window)
			total++
			if isLikelyReflection(avg) {
				reflected++
			}
		}
	}
	if total == 0 {
		return false
	}
	return float64(reflected)/float64(total) > glareWindowFraction
}
