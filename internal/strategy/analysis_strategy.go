package strategy

import (
	"go-resistor-inspector/internal/analyzer"
	"go-resistor-inspector/pkg/models"
)

// AnalysisStrategy defines the interface for analysis presets.
type AnalysisStrategy interface {
	Analyze(a analyzer.ResistorAnalyzer, buf *models.PixelBuffer) models.AnalysisResult
	GetStrategyName() string
}

// StandardAnalysisStrategy runs the full pipeline with default tuning.
type StandardAnalysisStrategy struct{}

// NewStandardAnalysisStrategy creates a new standard analysis strategy
func NewStandardAnalysisStrategy() AnalysisStrategy {
	return &StandardAnalysisStrategy{}
}

// Analyze performs a full analysis
func (s *StandardAnalysisStrategy) Analyze(a analyzer.ResistorAnalyzer, buf *models.PixelBuffer) models.AnalysisResult {
	return a.Analyze(buf, analyzer.DefaultOptions())
}

// GetStrategyName returns the strategy name
func (s *StandardAnalysisStrategy) GetStrategyName() string {
	return "standard_analysis"
}

// FastAnalysisStrategy trades accuracy for speed: the glare scan and the
// reflection rescan are skipped.
type FastAnalysisStrategy struct{}

// NewFastAnalysisStrategy creates a new fast analysis strategy
func NewFastAnalysisStrategy() AnalysisStrategy {
	return &FastAnalysisStrategy{}
}

// Analyze performs a reduced analysis
func (s *FastAnalysisStrategy) Analyze(a analyzer.ResistorAnalyzer, buf *models.PixelBuffer) models.AnalysisResult {
	return a.Analyze(buf, analyzer.FastOptions())
}

// GetStrategyName returns the strategy name
func (s *FastAnalysisStrategy) GetStrategyName() string {
	return "fast_analysis"
}

// DetailedAnalysisStrategy runs the full pipeline with per-band sampling
// detail retained for the response.
type DetailedAnalysisStrategy struct{}

// NewDetailedAnalysisStrategy creates a new detailed analysis strategy
func NewDetailedAnalysisStrategy() AnalysisStrategy {
	return &DetailedAnalysisStrategy{}
}

// Analyze performs a full analysis with detail collection enabled
func (s *DetailedAnalysisStrategy) Analyze(a analyzer.ResistorAnalyzer, buf *models.PixelBuffer) models.AnalysisResult {
	result, _, _ := a.AnalyzeDetailed(buf, analyzer.DetailedOptions())
	return result
}

// GetStrategyName returns the strategy name
func (s *DetailedAnalysisStrategy) GetStrategyName() string {
	return "detailed_analysis"
}

// ForMode selects a strategy by its request mode name. Unknown modes
// fall back to the standard strategy.
func ForMode(mode string) AnalysisStrategy {
	switch mode {
	case "fast":
		return NewFastAnalysisStrategy()
	case "detailed":
		return NewDetailedAnalysisStrategy()
	default:
		return NewStandardAnalysisStrategy()
	}
}

// AnalysisContext manages the analysis strategy
type AnalysisContext struct {
	strategy AnalysisStrategy
}

// NewAnalysisContext creates a new analysis context
func NewAnalysisContext(strategy AnalysisStrategy) *AnalysisContext {
	return &AnalysisContext{
		strategy: strategy,
	}
}

// SetStrategy changes the analysis strategy
func (c *AnalysisContext) SetStrategy(strategy AnalysisStrategy) {
	c.strategy = strategy
}

// ExecuteAnalysis performs analysis using the current strategy
func (c *AnalysisContext) ExecuteAnalysis(a analyzer.ResistorAnalyzer, buf *models.PixelBuffer) models.AnalysisResult {
	return c.strategy.Analyze(a, buf)
}

// GetCurrentStrategy returns the current strategy name
func (c *AnalysisContext) GetCurrentStrategy() string {
	return c.strategy.GetStrategyName()
}
