package analyzer

// AnalysisOptions provides flexible configuration for resistor analysis
type AnalysisOptions struct {
	// Analysis modes
	FastMode     bool
	DetailedMode bool

	// Feature toggles
	SkipGlareCheck       bool
	SkipReflectionRescan bool

	// Detector tunables. Each threshold is named so tests can target it
	// independently.
	Detector DetectorConfig
}

// DetectorConfig holds the band-detection tunables.
type DetectorConfig struct {
	// DirectWeight/AreaWeight blend the two contrast profiles when the
	// direct (middle-row) signal is non-degenerate at a column; the
	// weights swap when it reads zero.
	DirectWeight float64
	AreaWeight   float64

	// NoiseVariance is the local-variance cutoff between the narrow and
	// wide smoothing windows.
	NoiseVariance float64
	// NarrowHalfWidth smooths noisy regions, WideHalfWidth calm ones.
	NarrowHalfWidth int
	WideHalfWidth   int

	// IQRWeight scales the interquartile range above the median for the
	// primary threshold; MaxFraction floors it at a fraction of the
	// profile maximum.
	IQRWeight   float64
	MaxFraction float64
	// RetryMaxFraction is the lowered threshold used when the primary
	// scan finds fewer than four regions.
	RetryMaxFraction float64

	// MinRunLength is the minimum number of consecutive above-threshold
	// columns that form a band region.
	MinRunLength int

	// MaxBands caps how many regions are kept, leftmost first.
	MaxBands int

	// MinSpacingDivisor sets the minimum distance between kept band
	// positions as imageWidth/MinSpacingDivisor.
	MinSpacingDivisor int
}

// DefaultDetectorConfig returns the production detection tunables.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		DirectWeight:      0.6,
		AreaWeight:        0.4,
		NoiseVariance:     100.0,
		NarrowHalfWidth:   3,
		WideHalfWidth:     5,
		IQRWeight:         0.3,
		MaxFraction:       0.20,
		RetryMaxFraction:  0.15,
		MinRunLength:      4,
		MaxBands:          5,
		MinSpacingDivisor: 20,
	}
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		FastMode:             false,
		DetailedMode:         false,
		SkipGlareCheck:       false,
		SkipReflectionRescan: false,
		Detector:             DefaultDetectorConfig(),
	}
}

// FastOptions returns options for quick analysis: the glare pre-check and
// per-band reflection rescans are skipped.
func FastOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.FastMode = true
	opts.SkipGlareCheck = true
	opts.SkipReflectionRescan = true
	return opts
}

// DetailedOptions returns options that additionally collect per-band
// sampling detail.
func DetailedOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.DetailedMode = true
	return opts
}

// WithFastMode enables fast analysis mode
func (opts AnalysisOptions) WithFastMode() AnalysisOptions {
	opts.FastMode = true
	opts.SkipGlareCheck = true
	opts.SkipReflectionRescan = true
	return opts
}

// WithoutGlareCheck disables the frame-level glare pre-check
func (opts AnalysisOptions) WithoutGlareCheck() AnalysisOptions {
	opts.SkipGlareCheck = true
	return opts
}

// WithDetector overrides the detection tunables
func (opts AnalysisOptions) WithDetector(cfg DetectorConfig) AnalysisOptions {
	opts.Detector = cfg
	return opts
}
