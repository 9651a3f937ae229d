package analyzer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"go-resistor-inspector/pkg/models"
)

// bandRegion is a contiguous run of profile columns above threshold.
// Regions never overlap; they exist only between segmentation and
// position extraction.
type bandRegion struct {
	start, end int
	avg        float64
}

// bandDetector locates band positions by building a 1-D contrast profile
// across the image and segmenting it with a dynamic threshold.
type bandDetector struct {
	cfg DetectorConfig
}

// NewBandDetector creates a band detector with the given tunables.
func NewBandDetector(cfg DetectorConfig) BandDetector {
	return &bandDetector{cfg: cfg}
}

// DetectBands returns 3-5 strictly increasing band positions (column
// indices). Detection never fails outright: when segmentation cannot
// produce at least three confident positions, four synthetic evenly
// spaced positions are returned and degraded=true is reported.
func (bd *bandDetector) DetectBands(buf *models.PixelBuffer, bodyColor models.RGB) (positions []int, degraded bool) {
	if buf.Width <= 0 || buf.Height <= 0 {
		return bd.syntheticPositions(buf.Width), true
	}

	bodyLAB := RGBToLAB(bodyColor)

	profile := bd.combineProfiles(
		bd.directProfile(buf, bodyLAB),
		bd.areaProfile(buf, bodyLAB),
	)
	smoothed := bd.adaptiveSmooth(profile)

	regions := bd.segment(smoothed, bd.primaryThreshold(smoothed))
	if len(regions) < 4 {
		// Not enough sustained runs; retry once with a lower bar before
		// giving up on the profile.
		retry := bd.cfg.RetryMaxFraction * maxValue(smoothed)
		regions = bd.segment(smoothed, retry)
	}

	positions = bd.positionsFromRegions(regions)
	if validated, ok := bd.validateSpacing(positions, buf.Width); ok {
		return validated, false
	}
	return bd.syntheticPositions(buf.Width), true
}

// directProfile is the per-column Delta E distance between the middle row
// and the body color.
func (bd *bandDetector) directProfile(buf *models.PixelBuffer, bodyLAB LABColor) []float64 {
	midY := buf.Height / 2
	profile := make([]float64, buf.Width)
	for x := 0; x < buf.Width; x++ {
		profile[x] = DeltaE(RGBToLAB(buf.RGBAt(x, midY)), bodyLAB)
	}
	return profile
}

// areaProfile samples columns at stride 2, averaging a small 2x4 window
// around the vertical center, then expands back to full width by nearest
// neighbor. Window averaging makes this signal robust to single-pixel
// noise where the direct profile is not.
func (bd *bandDetector) areaProfile(buf *models.PixelBuffer, bodyLAB LABColor) []float64 {
	midY := buf.Height / 2
	profile := make([]float64, buf.Width)
	for x := 0; x < buf.Width; x += 2 {
		avg := buf.AverageRGB(x, midY-2, x+2, midY+2)
		d := DeltaE(RGBToLAB(avg), bodyLAB)
		profile[x] = d
		if x+1 < buf.Width {
			profile[x+1] = d
		}
	}
	return profile
}

// combineProfiles blends the two signals per column, favoring whichever is
// non-degenerate: the direct profile gets the larger weight wherever it is
// positive, otherwise the weights swap.
func (bd *bandDetector) combineProfiles(direct, area []float64) []float64 {
	combined := make([]float64, len(direct))
	for i := range direct {
		if direct[i] > 0 {
			combined[i] = bd.cfg.DirectWeight*direct[i] + bd.cfg.AreaWeight*area[i]
		} else {
			combined[i] = bd.cfg.AreaWeight*direct[i] + bd.cfg.DirectWeight*area[i]
		}
	}
	return combined
}

// adaptiveSmooth applies a moving average whose window narrows in noisy
// neighborhoods (to preserve band edges) and widens in calm ones (to
// suppress ripple). Noise is judged by the variance of the +-5 column
// neighborhood.
func (bd *bandDetector) adaptiveSmooth(profile []float64) []float64 {
	n := len(profile)
	smoothed := make([]float64, n)
	window := make([]float64, 0, 11)

	for i := 0; i < n; i++ {
		window = window[:0]
		for j := i - 5; j <= i+5; j++ {
			if j >= 0 && j < n {
				window = append(window, profile[j])
			}
		}
		variance := stat.Variance(window, nil)

		half := bd.cfg.WideHalfWidth
		if variance > bd.cfg.NoiseVariance {
			half = bd.cfg.NarrowHalfWidth
		}

		var sum float64
		var count int
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < n {
				sum += profile[j]
				count++
			}
		}
		smoothed[i] = sum / float64(count)
	}
	return smoothed
}

// primaryThreshold derives the segmentation threshold from the profile's
// own distribution: median + IQRWeight*IQR, floored at MaxFraction of the
// maximum so flat-but-noisy profiles do not segment everywhere.
func (bd *bandDetector) primaryThreshold(profile []float64) float64 {
	if len(profile) == 0 {
		return 0
	}
	sorted := make([]float64, len(profile))
	copy(sorted, profile)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1

	threshold := median + bd.cfg.IQRWeight*iqr
	if floor := bd.cfg.MaxFraction * sorted[len(sorted)-1]; floor > threshold {
		threshold = floor
	}
	return threshold
}

// segment scans left to right collecting runs of consecutive columns
// above threshold; runs shorter than MinRunLength are noise, not bands.
func (bd *bandDetector) segment(profile []float64, threshold float64) []bandRegion {
	var regions []bandRegion

	runStart := -1
	var runSum float64
	for i := 0; i <= len(profile); i++ {
		above := i < len(profile) && profile[i] > threshold
		if above {
			if runStart < 0 {
				runStart = i
				runSum = 0
			}
			runSum += profile[i]
			continue
		}
		if runStart >= 0 {
			length := i - runStart
			if length >= bd.cfg.MinRunLength {
				regions = append(regions, bandRegion{
					start: runStart,
					end:   i - 1,
					avg:   runSum / float64(length),
				})
			}
			runStart = -1
		}
	}
	return regions
}

// positionsFromRegions keeps at most MaxBands regions, leftmost first (a
// resistor reads left to right, so position order beats strength order),
// and reduces each to its midpoint column.
func (bd *bandDetector) positionsFromRegions(regions []bandRegion) []int {
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].start < regions[j].start
	})
	if len(regions) > bd.cfg.MaxBands {
		regions = regions[:bd.cfg.MaxBands]
	}

	positions := make([]int, 0, len(regions))
	for _, r := range regions {
		positions = append(positions, (r.start+r.end)/2)
	}
	return positions
}

// validateSpacing greedily keeps positions that sit at least
// width/MinSpacingDivisor past the previously kept one. It accepts only
// when 3-5 positions were found and at least 3 survive the spacing rule.
func (bd *bandDetector) validateSpacing(positions []int, width int) ([]int, bool) {
	if len(positions) < 3 || len(positions) > bd.cfg.MaxBands {
		return nil, false
	}

	minSpacing := width / bd.cfg.MinSpacingDivisor
	kept := []int{positions[0]}
	for _, p := range positions[1:] {
		if p-kept[len(kept)-1] >= minSpacing {
			kept = append(kept, p)
		}
	}
	if len(kept) < 3 {
		return nil, false
	}
	return kept, true
}

// syntheticPositions is the last-resort fallback: four evenly spaced
// positions across the width.
func (bd *bandDetector) syntheticPositions(width int) []int {
	return []int{width / 5, 2 * width / 5, 3 * width / 5, 4 * width / 5}
}

func maxValue(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
