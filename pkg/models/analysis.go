package models

import "time"

// AnalysisResult represents the complete result of analyzing one frame.
//
// A result is created once per invocation and supersedes (never merges
// with) the previous one. Absent resistance/tolerance values mean the
// decoded sequence fell outside the lookup tables.
type AnalysisResult struct {
	ID                string    `json:"id"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	// ColorSequence is the repaired, exactly-four-entry band sequence.
	ColorSequence ColorSequence `json:"color_sequence"`

	// BandRects are the detected band rectangles in the input buffer's
	// extent coordinates, ordered left to right.
	BandRects []Rect `json:"band_rects"`

	// ResistanceOhms is nil when the sequence could not be decoded.
	ResistanceOhms *float64 `json:"resistance_ohms,omitempty"`

	// ToleranceFraction is the guaranteed accuracy as a fraction
	// (0.05 = ±5%); nil when undetermined.
	ToleranceFraction *float64 `json:"tolerance_fraction,omitempty"`

	Quality Quality `json:"quality"`

	// Errors lists non-fatal degradations encountered during the run.
	Errors []string `json:"errors,omitempty"`
}

// Quality describes how trustworthy the analysis is. Every flag is a
// degradation marker, never a failure: the pipeline always completes.
type Quality struct {
	// GlareDetected is set when the frame-level pre-check found
	// widespread specular glare.
	GlareDetected bool `json:"glare_detected"`

	// DegradedDetection is set when band detection fell back to
	// synthetic evenly-spaced positions.
	DegradedDetection bool `json:"degraded_detection"`

	// Repaired is set when one or more bands classified as Unknown and
	// were filled by positional defaults.
	Repaired bool `json:"repaired"`
}

// Empty reports whether the result carries no analysis output, as after a
// reset.
func (r AnalysisResult) Empty() bool {
	return len(r.ColorSequence) == 0 && len(r.BandRects) == 0 &&
		r.ResistanceOhms == nil && r.ToleranceFraction == nil
}
