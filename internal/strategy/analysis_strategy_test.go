package strategy

import "testing"

func TestForMode(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"fast", "fast_analysis"},
		{"detailed", "detailed_analysis"},
		{"standard", "standard_analysis"},
		{"", "standard_analysis"},
		{"bogus", "standard_analysis"},
	}

	for _, tt := range tests {
		if got := ForMode(tt.mode).GetStrategyName(); got != tt.want {
			t.Errorf("ForMode(%q) = %s, want %s", tt.mode, got, tt.want)
		}
	}
}

func TestAnalysisContext_SetStrategy(t *testing.T) {
	ctx := NewAnalysisContext(NewStandardAnalysisStrategy())
	if ctx.GetCurrentStrategy() != "standard_analysis" {
		t.Errorf("GetCurrentStrategy = %s", ctx.GetCurrentStrategy())
	}

	ctx.SetStrategy(NewFastAnalysisStrategy())
	if ctx.GetCurrentStrategy() != "fast_analysis" {
		t.Errorf("GetCurrentStrategy = %s after SetStrategy", ctx.GetCurrentStrategy())
	}
}
