package analyzer

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-resistor-inspector/internal/decoder"
	apperrors "go-resistor-inspector/internal/errors"
	"go-resistor-inspector/internal/logger"
	"go-resistor-inspector/pkg/models"
	"go-resistor-inspector/pkg/validation"
)

// ErrAnalysisInFlight is returned by AnalyzeAsync when an analysis is
// already running against the shared result slot.
var ErrAnalysisInFlight = apperrors.NewBusyError("an analysis is already in flight")

// bandRectWidthDivisor sets the reported band rectangle width as
// imageWidth/divisor (floored at 4px) before mapping into the caller's
// extent.
const bandRectWidthDivisor = 25

// coreAnalyzer implements ResistorAnalyzer and orchestrates the pipeline:
// body color -> band positions -> per-band colors -> classification ->
// sequence repair -> decode.
//
// The last-result slot is single-writer: a completed analysis overwrites
// it atomically, and at most one analysis may be in flight at a time.
type coreAnalyzer struct {
	executor    *analysisExecutor
	bodySampler BodySampler
	classifier  ColorClassifier
	glare       GlareDetector
	validator   *validation.SequenceValidator

	// runMu serializes synchronous runs against async ones.
	runMu sync.Mutex

	mu      sync.RWMutex
	last    models.AnalysisResult
	hasLast bool
}

// NewResistorAnalyzer creates a new analyzer with all pipeline components
func NewResistorAnalyzer() (ResistorAnalyzer, error) {
	executor := newAnalysisExecutor()
	executor.Start()

	return &coreAnalyzer{
		executor:    executor,
		bodySampler: NewBodySampler(),
		classifier:  NewColorClassifier(),
		glare:       NewGlareDetector(),
		validator:   validation.NewSequenceValidator(),
	}, nil
}

// Analyze runs the pipeline synchronously. Concurrent synchronous calls
// are queued on the run lock, preserving the single-writer slot contract.
func (ca *coreAnalyzer) Analyze(buf *models.PixelBuffer, options AnalysisOptions) models.AnalysisResult {
	ca.runMu.Lock()
	defer ca.runMu.Unlock()

	result, _, _ := ca.run(buf, options)
	ca.storeResult(result)
	return result
}

// AnalyzeAsync schedules the pipeline on the executor and delivers the
// result through done exactly once. A second request while one is in
// flight is rejected, never queued.
func (ca *coreAnalyzer) AnalyzeAsync(buf *models.PixelBuffer, options AnalysisOptions, done func(models.AnalysisResult)) error {
	submitted := ca.executor.TrySubmit(func() {
		ca.runMu.Lock()
		result, _, _ := ca.run(buf, options)
		ca.storeResult(result)
		ca.runMu.Unlock()
		done(result)
	})
	if !submitted {
		return ErrAnalysisInFlight
	}
	return nil
}

// AnalyzeDetailed runs the pipeline synchronously and also returns the
// per-band sampling detail and the body color reference.
func (ca *coreAnalyzer) AnalyzeDetailed(buf *models.PixelBuffer, options AnalysisOptions) (models.AnalysisResult, []models.BandDetail, models.RGB) {
	ca.runMu.Lock()
	defer ca.runMu.Unlock()

	options.DetailedMode = true
	result, details, body := ca.run(buf, options)
	ca.storeResult(result)
	return result, details, body
}

// run executes the full pipeline. No stage may abort it: every stage
// degrades to a documented default and the run always produces a result.
func (ca *coreAnalyzer) run(buf *models.PixelBuffer, options AnalysisOptions) (models.AnalysisResult, []models.BandDetail, models.RGB) {
	start := time.Now()

	result := models.AnalysisResult{
		ID:        fmt.Sprintf("%x", start.UnixNano()),
		Timestamp: start,
	}

	bodyColor := ca.bodySampler.SampleBodyColor(buf)
	if bodyColor == defaultBodyColor {
		// The sampler averages back to the exact default only when every
		// sample was rejected.
		result.Errors = append(result.Errors, apperrors.NewSamplingError(
			"body color sampling fell back to the default reference", nil).Error())
	}

	detector := NewBandDetector(options.Detector)
	positions, degraded := detector.DetectBands(buf, bodyColor)
	result.Quality.DegradedDetection = degraded
	if degraded {
		result.Errors = append(result.Errors, apperrors.NewDetectionError(
			"band detection fell back to synthetic positions", nil).Error())
	}

	extractor := NewColorExtractor(!options.SkipReflectionRescan)
	sampled := extractor.ExtractColors(buf, positions, bodyColor)

	classified := make(models.ColorSequence, len(sampled))
	for i, c := range sampled {
		classified[i] = ca.classifier.Classify(c, i, len(sampled))
	}

	for _, issue := range ca.validator.ValidateRaw(classified) {
		switch issue.Type {
		case "unknown_color":
			result.Errors = append(result.Errors, apperrors.NewClassificationError(
				fmt.Sprintf("band %d could not be classified", issue.Index), nil).Error())
		default:
			result.Errors = append(result.Errors, issue.Message)
		}
	}

	if classified.ContainsUnknown() || len(classified) != 4 {
		result.Quality.Repaired = true
	}
	result.ColorSequence = decoder.Repair(classified)
	if issues := ca.validator.ValidateRepaired(result.ColorSequence); validation.HasErrors(issues) {
		for _, issue := range issues {
			result.Errors = append(result.Errors, issue.Message)
		}
	}
	result.BandRects = ca.bandRects(buf, positions)

	if ohms, tol, err := decoder.Decode(result.ColorSequence); err == nil {
		result.ResistanceOhms = &ohms
		if tol > 0 {
			result.ToleranceFraction = &tol
		}
	} else {
		result.Errors = append(result.Errors, err.Error())
	}

	if !options.SkipGlareCheck {
		result.Quality.GlareDetected = ca.glare.DetectGlare(buf)
	}

	result.ProcessingTimeSec = time.Since(start).Seconds()

	logger.WithFields(logrus.Fields{
		"colors":   result.ColorSequence.Strings(),
		"bands":    len(positions),
		"degraded": degraded,
		"repaired": result.Quality.Repaired,
		"time_sec": result.ProcessingTimeSec,
	}).Debug("Analysis completed")

	var details []models.BandDetail
	if options.DetailedMode {
		details = ca.bandDetails(buf, positions, sampled, classified)
	}
	return result, details, bodyColor
}

// bandRects maps band column positions into the caller's extent
// coordinates as full-height strips centered on each band.
func (ca *coreAnalyzer) bandRects(buf *models.PixelBuffer, positions []int) []models.Rect {
	rectW := buf.Width / bandRectWidthDivisor
	if rectW < 4 {
		rectW = 4
	}
	scaleX := 0.0
	if buf.Width > 0 {
		scaleX = buf.Extent.W / float64(buf.Width)
	}

	rects := make([]models.Rect, len(positions))
	for i, pos := range positions {
		rects[i] = models.Rect{
			X: buf.Extent.X + (float64(pos)-float64(rectW)/2)*scaleX,
			Y: buf.Extent.Y,
			W: float64(rectW) * scaleX,
			H: buf.Extent.H,
		}
	}
	return rects
}

func (ca *coreAnalyzer) bandDetails(buf *models.PixelBuffer, positions []int, sampled []models.RGB, classified models.ColorSequence) []models.BandDetail {
	rects := ca.bandRects(buf, positions)
	details := make([]models.BandDetail, len(positions))
	for i := range positions {
		lab := RGBToLAB(sampled[i])
		details[i] = models.BandDetail{
			Index:      i,
			Role:       RoleFor(i, len(positions)).String(),
			Position:   positions[i],
			Rect:       rects[i],
			SampledRGB: sampled[i],
			LabL:       lab.L,
			LabA:       lab.A,
			LabB:       lab.B,
			Color:      string(classified[i]),
		}
	}
	return details
}

func (ca *coreAnalyzer) storeResult(result models.AnalysisResult) {
	ca.mu.Lock()
	ca.last = result
	ca.hasLast = true
	ca.mu.Unlock()
}

// LastResult returns the most recent analysis result.
func (ca *coreAnalyzer) LastResult() (models.AnalysisResult, bool) {
	ca.mu.RLock()
	defer ca.mu.RUnlock()
	return ca.last, ca.hasLast
}

// BandRects returns the band rectangles of the last run for overlay
// drawing collaborators.
func (ca *coreAnalyzer) BandRects() []models.Rect {
	ca.mu.RLock()
	defer ca.mu.RUnlock()
	rects := make([]models.Rect, len(ca.last.BandRects))
	copy(rects, ca.last.BandRects)
	return rects
}

// ResetResults clears the cached result slot.
func (ca *coreAnalyzer) ResetResults() {
	ca.mu.Lock()
	ca.last = models.AnalysisResult{}
	ca.hasLast = false
	ca.mu.Unlock()
}

// Close shuts down the analyzer's executor.
func (ca *coreAnalyzer) Close() error {
	ca.executor.Close()
	return nil
}
