package validation

import (
	"testing"

	"go-resistor-inspector/pkg/models"
)

func TestValidateRaw(t *testing.T) {
	v := NewSequenceValidator()

	tests := []struct {
		name       string
		seq        models.ColorSequence
		wantIssues int
		wantErrors bool
	}{
		{
			name:       "clean four bands",
			seq:        models.ColorSequence{models.Brown, models.Black, models.Red, models.Gold},
			wantIssues: 0,
		},
		{
			name:       "five bands accepted raw",
			seq:        models.ColorSequence{models.Brown, models.Black, models.Black, models.Red, models.Gold},
			wantIssues: 0,
		},
		{
			name:       "too short",
			seq:        models.ColorSequence{models.Brown, models.Black},
			wantIssues: 1,
			wantErrors: true,
		},
		{
			name:       "unknowns are warnings",
			seq:        models.ColorSequence{models.Unknown, models.Black, models.Red, models.Gold},
			wantIssues: 1,
			wantErrors: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.ValidateRaw(tt.seq)
			if len(issues) != tt.wantIssues {
				t.Fatalf("Expected %d issues, got %v", tt.wantIssues, issues)
			}
			if HasErrors(issues) != tt.wantErrors {
				t.Errorf("HasErrors = %v, want %v", HasErrors(issues), tt.wantErrors)
			}
		})
	}
}

func TestValidateRepaired(t *testing.T) {
	v := NewSequenceValidator()

	tests := []struct {
		name       string
		seq        models.ColorSequence
		wantErrors bool
	}{
		{
			name: "legal sequence",
			seq:  models.ColorSequence{models.Brown, models.Black, models.Red, models.Gold},
		},
		{
			name: "metallic multiplier legal",
			seq:  models.ColorSequence{models.Yellow, models.Violet, models.Gold, models.Gold},
		},
		{
			name:       "wrong length",
			seq:        models.ColorSequence{models.Brown, models.Black, models.Red},
			wantErrors: true,
		},
		{
			name:       "metallic digit illegal",
			seq:        models.ColorSequence{models.Gold, models.Black, models.Red, models.Gold},
			wantErrors: true,
		},
		{
			name:       "white tolerance illegal",
			seq:        models.ColorSequence{models.Brown, models.Black, models.Red, models.White},
			wantErrors: true,
		},
		{
			name:       "unknown multiplier illegal",
			seq:        models.ColorSequence{models.Brown, models.Black, models.Unknown, models.Gold},
			wantErrors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.ValidateRepaired(tt.seq)
			if HasErrors(issues) != tt.wantErrors {
				t.Errorf("HasErrors = %v, want %v (issues: %v)", HasErrors(issues), tt.wantErrors, issues)
			}
		})
	}
}

func TestValidateRepaired_ReportsIndex(t *testing.T) {
	v := NewSequenceValidator()

	issues := v.ValidateRepaired(models.ColorSequence{models.Brown, models.Gold, models.Red, models.Gold})
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %v", issues)
	}
	if issues[0].Index != 1 {
		t.Errorf("Expected issue at index 1, got %d", issues[0].Index)
	}
}
