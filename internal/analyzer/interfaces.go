package analyzer

import "go-resistor-inspector/pkg/models"

// ResistorAnalyzer defines the main interface for resistor band analysis
type ResistorAnalyzer interface {
	// Analyze runs the full pipeline synchronously over one buffer and
	// stores the result in the shared last-result slot.
	Analyze(buf *models.PixelBuffer, options AnalysisOptions) models.AnalysisResult

	// AnalyzeAsync runs the pipeline off the calling goroutine and
	// invokes done exactly once with the result. It returns an error
	// when an analysis is already in flight.
	AnalyzeAsync(buf *models.PixelBuffer, options AnalysisOptions, done func(models.AnalysisResult)) error

	// AnalyzeDetailed additionally returns per-band sampling detail.
	AnalyzeDetailed(buf *models.PixelBuffer, options AnalysisOptions) (models.AnalysisResult, []models.BandDetail, models.RGB)

	// LastResult returns the most recent result, false when none is
	// cached.
	LastResult() (models.AnalysisResult, bool)

	// BandRects returns the detected band rectangles of the last run, in
	// the input buffer's extent coordinates.
	BandRects() []models.Rect

	// ResetResults clears the cached result slot.
	ResetResults()

	// Lifecycle management
	Close() error
}

// BodySampler estimates the resistor's base (non-band) color
type BodySampler interface {
	SampleBodyColor(buf *models.PixelBuffer) models.RGB
}

// BandDetector locates band positions along the image width
type BandDetector interface {
	DetectBands(buf *models.PixelBuffer, bodyColor models.RGB) (positions []int, degraded bool)
}

// ColorExtractor samples the true color at each band position
type ColorExtractor interface {
	ExtractColors(buf *models.PixelBuffer, positions []int, bodyColor models.RGB) []models.RGB
}

// ColorClassifier maps a sampled color and its position to a band color
type ColorClassifier interface {
	Classify(c models.RGB, bandIndex, totalBands int) models.BandColor
}

// GlareDetector handles the frame-level specular glare pre-check
type GlareDetector interface {
	DetectGlare(buf *models.PixelBuffer) bool
}
