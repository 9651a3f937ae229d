package decoder

import (
	"testing"

	"go-resistor-inspector/pkg/models"
)

func TestDecode_KnownSequences(t *testing.T) {
	tests := []struct {
		name          string
		seq           models.ColorSequence
		wantOhms      float64
		wantTolerance float64
	}{
		{
			name:          "1k 5 percent",
			seq:           models.ColorSequence{models.Brown, models.Black, models.Red, models.Gold},
			wantOhms:      1000,
			wantTolerance: 0.05,
		},
		{
			name:          "47k 5 percent",
			seq:           models.ColorSequence{models.Yellow, models.Violet, models.Orange, models.Gold},
			wantOhms:      47000,
			wantTolerance: 0.05,
		},
		{
			name:          "220 ohm 10 percent",
			seq:           models.ColorSequence{models.Red, models.Red, models.Brown, models.Silver},
			wantOhms:      220,
			wantTolerance: 0.10,
		},
		{
			name:          "4.7 ohm fractional multiplier",
			seq:           models.ColorSequence{models.Yellow, models.Violet, models.Gold, models.Gold},
			wantOhms:      4.7,
			wantTolerance: 0.05,
		},
		{
			name:          "1 percent tolerance",
			seq:           models.ColorSequence{models.Brown, models.Black, models.Black, models.Brown},
			wantOhms:      10,
			wantTolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ohms, tol, err := Decode(tt.seq)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if ohms != tt.wantOhms {
				t.Errorf("Expected %g ohms, got %g", tt.wantOhms, ohms)
			}
			if tol != tt.wantTolerance {
				t.Errorf("Expected tolerance %g, got %g", tt.wantTolerance, tol)
			}
		})
	}
}

func TestDecode_WrongLength(t *testing.T) {
	_, _, err := Decode(models.ColorSequence{models.Brown, models.Black})
	if err == nil {
		t.Fatal("Expected error for short sequence")
	}
}

func TestDecode_UnknownDigit(t *testing.T) {
	_, _, err := Decode(models.ColorSequence{models.Unknown, models.Black, models.Red, models.Gold})
	if err == nil {
		t.Fatal("Expected error for unknown digit color")
	}
}

func TestDecode_IllegalToleranceIsBestEffort(t *testing.T) {
	ohms, tol, err := Decode(models.ColorSequence{models.Brown, models.Black, models.Red, models.Black})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if ohms != 1000 {
		t.Errorf("Expected 1000 ohms, got %g", ohms)
	}
	if tol != 0 {
		t.Errorf("Expected zero tolerance for illegal color, got %g", tol)
	}
}

func TestRepair_AllUnknownsFiveBands(t *testing.T) {
	seq := models.ColorSequence{
		models.Unknown, models.Unknown, models.Unknown, models.Unknown, models.Unknown,
	}
	repaired := Repair(seq)

	if len(repaired) != 4 {
		t.Fatalf("Expected 4 bands after repair, got %d", len(repaired))
	}
	if repaired.ContainsUnknown() {
		t.Errorf("Repaired sequence still contains unknown: %v", repaired)
	}
	if _, _, err := Decode(repaired); err != nil {
		t.Errorf("Repaired sequence must decode, got error: %v", err)
	}
}

func TestRepair_FiveBandsDropsSecondEntry(t *testing.T) {
	seq := models.ColorSequence{
		models.Red, models.Violet, models.Orange, models.Brown, models.Gold,
	}
	repaired := Repair(seq)

	want := models.ColorSequence{models.Red, models.Orange, models.Brown, models.Gold}
	for i := range want {
		if repaired[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, repaired)
		}
	}
}

func TestRepair_ShortSequencesPadFromDefaults(t *testing.T) {
	tests := []struct {
		name string
		seq  models.ColorSequence
	}{
		{"empty", models.ColorSequence{}},
		{"single", models.ColorSequence{models.Red}},
		{"two", models.ColorSequence{models.Red, models.Red}},
		{"three", models.ColorSequence{models.Red, models.Red, models.Red}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repaired := Repair(tt.seq)
			if len(repaired) != 4 {
				t.Fatalf("Expected 4 bands, got %d", len(repaired))
			}
			if _, _, err := Decode(repaired); err != nil {
				t.Errorf("Expected padded sequence to decode, got: %v", err)
			}
		})
	}
}

func TestRepair_EmptyUsesDefaults(t *testing.T) {
	repaired := Repair(models.ColorSequence{})
	want := models.ColorSequence{models.Brown, models.Black, models.Yellow, models.Gold}
	for i := range want {
		if repaired[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, repaired)
		}
	}
}

func TestRepair_IllegalPositionsForced(t *testing.T) {
	// White cannot encode tolerance and unknown cannot multiply; both get
	// forced to their position defaults.
	repaired := Repair(models.ColorSequence{models.Red, models.Red, models.Red, models.White})
	if repaired[3] != models.Gold {
		t.Errorf("Expected illegal tolerance forced to gold, got %s", repaired[3])
	}
}

func TestRepair_ValidSequenceUnchanged(t *testing.T) {
	seq := models.ColorSequence{models.Yellow, models.Violet, models.Orange, models.Gold}
	repaired := Repair(seq)
	for i := range seq {
		if repaired[i] != seq[i] {
			t.Fatalf("Expected %v unchanged, got %v", seq, repaired)
		}
	}
}

func TestRepair_DoesNotMutateInput(t *testing.T) {
	seq := models.ColorSequence{models.Unknown, models.Black, models.Red, models.Gold}
	Repair(seq)
	if seq[0] != models.Unknown {
		t.Error("Repair mutated its input")
	}
}

func TestFormatResistance(t *testing.T) {
	tests := []struct {
		ohms float64
		want string
	}{
		{4.7, "4.7 Ω"},
		{470, "470 Ω"},
		{1000, "1 kΩ"},
		{4700, "4.7 kΩ"},
		{47000, "47 kΩ"},
		{1e6, "1 MΩ"},
		{2.2e6, "2.2 MΩ"},
		{1e9, "1 GΩ"},
	}

	for _, tt := range tests {
		if got := FormatResistance(tt.ohms); got != tt.want {
			t.Errorf("FormatResistance(%g) = %q, want %q", tt.ohms, got, tt.want)
		}
	}
}
