package models

// AnalysisRequest asks for a full analysis of a remote image.
type AnalysisRequest struct {
	URL string `json:"url" binding:"required,url"`
	// Mode selects an analysis preset: "standard" (default), "fast" or
	// "detailed".
	Mode string `json:"mode,omitempty"`
}

// DecodeRequest asks for a decode of a hand-entered band sequence.
// Entries are color names ("brown", "grey", ...) or "#RRGGBB" hex samples,
// which are classified by their position in the sequence.
type DecodeRequest struct {
	Colors []string `json:"colors" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AnalysisResponse is the transport shape of one analysis run.
type AnalysisResponse struct {
	ImageURL          string        `json:"image_url"`
	Timestamp         string        `json:"timestamp"`
	ProcessingTimeSec float64       `json:"processing_time_sec"`
	Colors            []string      `json:"colors"`
	BandRects         []Rect        `json:"band_rects"`
	ResistanceOhms    *float64      `json:"resistance_ohms,omitempty"`
	ToleranceFraction *float64      `json:"tolerance_fraction,omitempty"`
	ResistanceText    string        `json:"resistance_text,omitempty"`
	Quality           Quality       `json:"quality"`
	Errors            []string      `json:"errors,omitempty"`
}

// BandDetail describes a single detected band for the detailed endpoint.
type BandDetail struct {
	Index      int     `json:"index"`
	Role       string  `json:"role"`
	Position   int     `json:"position"`
	Rect       Rect    `json:"rect"`
	SampledRGB RGB     `json:"sampled_rgb"`
	LabL       float64 `json:"lab_l"`
	LabA       float64 `json:"lab_a"`
	LabB       float64 `json:"lab_b"`
	Color      string  `json:"color"`
}

// DetailedAnalysisResponse extends AnalysisResponse with per-band detail
// and the body-color reference used for contrast scoring.
type DetailedAnalysisResponse struct {
	AnalysisResponse

	BodyColor RGB          `json:"body_color"`
	Bands     []BandDetail `json:"bands"`
}

// DecodeResponse is the result of decoding a hand-entered sequence.
type DecodeResponse struct {
	// Colors is the repaired four-entry sequence actually decoded.
	Colors            []string `json:"colors"`
	ResistanceOhms    *float64 `json:"resistance_ohms,omitempty"`
	ToleranceFraction *float64 `json:"tolerance_fraction,omitempty"`
	ResistanceText    string   `json:"resistance_text,omitempty"`
	// Matched maps each input entry to the palette color it resolved to,
	// "unknown" when nothing was close enough.
	Matched []string `json:"matched"`
}
