package analyzer

import "go-resistor-inspector/pkg/models"

// Reflection predicate thresholds. A specular highlight is bright, nearly
// unsaturated and has almost no channel spread.
const (
	reflectionBrightness = 180.0
	reflectionSaturation = 0.2
	reflectionRange      = 20
	reflectionScanRows   = 10
)

// nearBlackChannel marks a sample as unusable shadow/noise when every
// channel is below it.
const nearBlackChannel = 5

// colorExtractor samples the true color at each band position, arbitrating
// between window sizes and correcting for specular reflections.
type colorExtractor struct {
	rescanReflections bool
}

// NewColorExtractor creates a color extractor. When rescanReflections is
// false (fast mode) reflected samples are kept as-is.
func NewColorExtractor(rescanReflections bool) ColorExtractor {
	return &colorExtractor{rescanReflections: rescanReflections}
}

// ExtractColors returns one RGB sample per band position, in position
// order.
func (ce *colorExtractor) ExtractColors(buf *models.PixelBuffer, positions []int, bodyColor models.RGB) []models.RGB {
	bodyLAB := RGBToLAB(bodyColor)
	colors := make([]models.RGB, len(positions))
	for i, pos := range positions {
		colors[i] = ce.extractAt(buf, pos, bodyLAB)
	}
	return colors
}

// extractAt picks between an area sample (10x10) and a direct sample
// (5x5) at the band column, then runs the chosen sample through the
// reflection guard.
func (ce *colorExtractor) extractAt(buf *models.PixelBuffer, pos int, bodyLAB LABColor) models.RGB {
	midY := buf.Height / 2

	area := ce.windowAverage(buf, pos, midY, 10)
	direct := ce.windowAverage(buf, pos, midY, 5)

	var chosen models.RGB
	switch {
	case isNearBlack(area) && !isNearBlack(direct):
		chosen = direct
	case isNearBlack(direct) && !isNearBlack(area):
		chosen = area
	case isNearBlack(area) && isNearBlack(direct):
		// Both windows read as shadow; widen the net.
		chosen = ce.windowAverage(buf, pos, midY, 15)
	default:
		// More contrast against the body means less blending with it.
		if DeltaE(RGBToLAB(area), bodyLAB) >= DeltaE(RGBToLAB(direct), bodyLAB) {
			chosen = area
		} else {
			chosen = direct
		}
	}

	if ce.rescanReflections && isLikelyReflection(chosen) {
		if replacement, ok := ce.rescanColumn(buf, pos, midY); ok {
			chosen = replacement
		}
	}
	return chosen
}

// windowAverage averages a size x size window centered at (x, y), clamped
// to the buffer bounds.
func (ce *colorExtractor) windowAverage(buf *models.PixelBuffer, x, y, size int) models.RGB {
	x0 := x - size/2
	y0 := y - size/2
	return buf.AverageRGB(x0, y0, x0+size, y0+size)
}

// rescanColumn averages the non-reflection pixels of a vertical strip
// around the band center. The replacement is used only when it is not
// itself a reflection.
func (ce *colorExtractor) rescanColumn(buf *models.PixelBuffer, x, midY int) (models.RGB, bool) {
	var sumR, sumG, sumB, n int
	for y := midY - reflectionScanRows; y <= midY+reflectionScanRows; y++ {
		c := buf.RGBAt(x, y)
		if isLikelyReflection(c) {
			continue
		}
		sumR += int(c.R)
		sumG += int(c.G)
		sumB += int(c.B)
		n++
	}
	if n == 0 {
		return models.RGB{}, false
	}
	replacement := models.RGB{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
	}
	if isLikelyReflection(replacement) {
		return models.RGB{}, false
	}
	return replacement, true
}

func isNearBlack(c models.RGB) bool {
	return c.R < nearBlackChannel && c.G < nearBlackChannel && c.B < nearBlackChannel
}

// isLikelyReflection reports whether a sample looks like specular glare
// rather than genuine band color.
func isLikelyReflection(c models.RGB) bool {
	maxC := c.MaxChannel()
	minC := c.MinChannel()
	if maxC == 0 {
		return false
	}
	saturation := float64(maxC-minC) / float64(maxC)
	return c.Brightness() > reflectionBrightness &&
		saturation < reflectionSaturation &&
		int(maxC)-int(minC) < reflectionRange
}
