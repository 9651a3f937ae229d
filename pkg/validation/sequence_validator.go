package validation

import (
	"fmt"

	"go-resistor-inspector/pkg/models"
)

// SequenceIssue describes one problem found in a color sequence.
type SequenceIssue struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning"
	Index    int    `json:"index,omitempty"`
}

// digitColors is the legal set for the two significant-digit positions.
var digitColors = map[models.BandColor]bool{
	models.Black: true, models.Brown: true, models.Red: true,
	models.Orange: true, models.Yellow: true, models.Green: true,
	models.Blue: true, models.Violet: true, models.Gray: true,
	models.White: true,
}

// toleranceColors is the legal set for the tolerance position.
var toleranceColors = map[models.BandColor]bool{
	models.Gold: true, models.Silver: true, models.Brown: true,
	models.Red: true, models.Green: true, models.Blue: true,
	models.Violet: true, models.Gray: true,
}

// SequenceValidator checks classified or hand-entered color sequences
// against the four-band layout rules.
type SequenceValidator struct{}

// NewSequenceValidator creates a new sequence validator
func NewSequenceValidator() *SequenceValidator {
	return &SequenceValidator{}
}

// ValidateRaw checks a raw (pre-repair) sequence. Raw sequences may carry
// Unknown entries; only structural problems are errors.
func (v *SequenceValidator) ValidateRaw(seq models.ColorSequence) []SequenceIssue {
	var issues []SequenceIssue

	if len(seq) < 3 || len(seq) > 5 {
		issues = append(issues, SequenceIssue{
			Type:     "length",
			Message:  fmt.Sprintf("expected 3-5 bands, got %d", len(seq)),
			Severity: "error",
		})
	}
	for i, c := range seq {
		if c == models.Unknown {
			issues = append(issues, SequenceIssue{
				Type:     "unknown_color",
				Message:  "band could not be classified and will be repaired",
				Severity: "warning",
				Index:    i,
			})
		}
	}
	return issues
}

// ValidateRepaired checks a post-repair sequence, which must be exactly
// four entries with every position inside its lookup table.
func (v *SequenceValidator) ValidateRepaired(seq models.ColorSequence) []SequenceIssue {
	var issues []SequenceIssue

	if len(seq) != 4 {
		issues = append(issues, SequenceIssue{
			Type:     "length",
			Message:  fmt.Sprintf("repaired sequence must have 4 bands, got %d", len(seq)),
			Severity: "error",
		})
		return issues
	}

	for i := 0; i < 2; i++ {
		if !digitColors[seq[i]] {
			issues = append(issues, SequenceIssue{
				Type:     "digit",
				Message:  fmt.Sprintf("%s is not a digit color", seq[i]),
				Severity: "error",
				Index:    i,
			})
		}
	}
	if _, legal := multiplierLegal(seq[2]); !legal {
		issues = append(issues, SequenceIssue{
			Type:     "multiplier",
			Message:  fmt.Sprintf("%s is not a multiplier color", seq[2]),
			Severity: "error",
			Index:    2,
		})
	}
	if !toleranceColors[seq[3]] {
		issues = append(issues, SequenceIssue{
			Type:     "tolerance",
			Message:  fmt.Sprintf("%s is not a tolerance color", seq[3]),
			Severity: "error",
			Index:    3,
		})
	}
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []SequenceIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}

// multiplierLegal reports membership in the 12-color multiplier set: the
// ten digit colors plus gold and silver.
func multiplierLegal(c models.BandColor) (models.BandColor, bool) {
	if digitColors[c] || c == models.Gold || c == models.Silver {
		return c, true
	}
	return c, false
}
