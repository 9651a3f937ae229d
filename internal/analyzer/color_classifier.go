package analyzer

import "go-resistor-inspector/pkg/models"

// BandRole is the positional role a band plays in the color code.
type BandRole int

const (
	RoleDigit BandRole = iota
	RoleMultiplier
	RoleTolerance
)

// String returns the role name for logging and transport.
func (r BandRole) String() string {
	switch r {
	case RoleMultiplier:
		return "multiplier"
	case RoleTolerance:
		return "tolerance"
	default:
		return "digit"
	}
}

// RoleFor assigns the positional role: the last band encodes tolerance,
// the third the multiplier, everything else a significant digit.
func RoleFor(bandIndex, totalBands int) BandRole {
	switch {
	case bandIndex == totalBands-1:
		return RoleTolerance
	case bandIndex == 2:
		return RoleMultiplier
	default:
		return RoleDigit
	}
}

// Classification thresholds, one block per color rule. These values are
// the contract: tests target them individually, so changes here must be
// deliberate.
const (
	blackMax = 40  // all channels below
	whiteMin = 200 // all channels above

	yellowMinR          = 180
	yellowMinG          = 160
	yellowMaxB          = 100
	yellowMaxChannelGap = 50 // |R-G|
	yellowMaxRG         = 30 // R-G
	yellowMinBrightness = 140

	goldMinR          = 100
	goldMaxR          = 220
	goldMinG          = 50
	goldMaxG          = 180
	goldMaxB          = 90
	goldMinBrightness = 80
	goldMaxBrightness = 180
	goldMinGRRatio    = 0.35
	goldMaxGRRatio    = 0.7

	silverSpread = 30 // channels mutually within
	silverMin    = 120
	silverMax    = 180

	brownRejectG       = 20  // reject when G above this and ratio warm
	brownRejectGRRatio = 0.4 // ... G/R above this (likely yellow/gold)
	brownDarkMinR      = 60
	brownDarkMaxR      = 130
	brownDarkMaxG      = 20
	brownDarkMaxB      = 20
	brownMedMinR       = 80
	brownMedMaxR       = 140
	brownMedMinG       = 20
	brownMedMaxG       = 50
	brownMedMaxB       = 30
	brownMedMinRG      = 50
	brownMedMinGB      = 10
	brownLightMinR     = 120
	brownLightMaxR     = 180
	brownLightMinG     = 60
	brownLightMaxG     = 100
	brownLightMinB     = 20
	brownLightMaxB     = 60
	brownLightMinRG    = 40
	brownLightMinGB    = 20

	orangeMinR  = 160
	orangeMinG  = 80
	orangeMaxG  = 140
	orangeMaxB  = 70
	orangeMinRG = 40

	redMinR     = 140
	redMaxG     = 60
	redMaxB     = 60
	redMinRG    = 80
	redAltMinR  = 120
	redAltMaxG  = 50
	redAltMaxB  = 50
	redAltMinRG = 70
	redAltMinRB = 70

	greenMinG  = 100
	greenMaxR  = 80
	greenMaxB  = 80
	greenMinGR = 30
	greenMinGB = 30

	blueMinB  = 120
	blueMaxR  = 80
	blueMaxG  = 80
	blueMinBR = 50
	blueMinBG = 50

	violetMinB     = 80
	violetMinR     = 70
	violetMaxG     = 60
	violetMaxRBGap = 50 // |R-B|

	graySpread = 30
	grayMin    = 60
	grayMax    = 140
)

// Role-override thresholds.
const (
	// Lenient gold for the tolerance position (bands are often shadowed
	// at the resistor end).
	tolGoldMinR       = 80
	tolGoldMaxR       = 180
	tolGoldMinG       = 40
	tolGoldMaxG       = 120
	tolGoldMaxB       = 40
	tolGoldMinGRRatio = 0.35
	tolGoldMaxGRRatio = 0.7

	// Warm-color promotion to gold in the tolerance position.
	tolWarmMinR       = 80
	tolWarmMinG       = 40
	tolWarmMaxB       = 30
	tolWarmMinGRRatio = 0.4

	// Shadowed yellow accepted in multiplier/digit positions.
	shadowYellowMinR       = 70
	shadowYellowMinG       = 30
	shadowYellowMaxB       = 20
	shadowYellowMinGRRatio = 0.3
	shadowYellowMaxGRRatio = 0.8

	// Dark-yellow promotion for the multiplier position.
	darkYellowMinR  = 70
	darkYellowMinG  = 30
	darkYellowMaxB  = 20
	darkYellowMinRB = 50

	// A disallowed metallic in a digit position is remapped to yellow
	// when bright enough, otherwise to unknown.
	digitRemapMinR = 180
	digitRemapMinG = 150
	digitRemapMaxB = 100
)

// toleranceColors is the legal set for the tolerance position.
var toleranceColors = map[models.BandColor]bool{
	models.Gold:   true,
	models.Silver: true,
	models.Brown:  true,
	models.Red:    true,
	models.Green:  true,
	models.Blue:   true,
	models.Violet: true,
	models.Gray:   true,
}

// colorRule pairs a band color with its match predicate. Rules are
// evaluated in order; the first match wins.
type colorRule struct {
	color models.BandColor
	match func(s sample) bool
}

// sample carries the channels as ints so the rule arithmetic never
// wraps.
type sample struct {
	r, g, b int
}

func newSample(c models.RGB) sample {
	return sample{r: int(c.R), g: int(c.G), b: int(c.B)}
}

func (s sample) brightness() float64 {
	return float64(s.r+s.g+s.b) / 3.0
}

// grRatio is G/R, zero when R is zero.
func (s sample) grRatio() float64 {
	if s.r == 0 {
		return 0
	}
	return float64(s.g) / float64(s.r)
}

func (s sample) spreadWithin(limit int) bool {
	return absInt(s.r-s.g) <= limit && absInt(s.g-s.b) <= limit && absInt(s.r-s.b) <= limit
}

// generalRules is the shared, role-independent rule chain. Order matters:
// achromatic extremes first, then the metallics, then the hue families.
var generalRules = []colorRule{
	{models.Black, isBlack},
	{models.White, isWhite},
	{models.Yellow, isYellow},
	{models.Gold, isGold},
	{models.Silver, isSilver},
	{models.Brown, isBrown},
	{models.Orange, isOrange},
	{models.Red, isRed},
	{models.Green, isGreen},
	{models.Blue, isBlue},
	{models.Violet, isViolet},
	{models.Gray, isGray},
}

func isBlack(s sample) bool {
	return s.r < blackMax && s.g < blackMax && s.b < blackMax
}

func isWhite(s sample) bool {
	return s.r > whiteMin && s.g > whiteMin && s.b > whiteMin
}

func isYellow(s sample) bool {
	return s.r > yellowMinR && s.g > yellowMinG && s.b < yellowMaxB &&
		absInt(s.r-s.g) < yellowMaxChannelGap &&
		s.r-s.g < yellowMaxRG &&
		s.brightness() > yellowMinBrightness
}

func isGold(s sample) bool {
	br := s.brightness()
	ratio := s.grRatio()
	return s.r >= goldMinR && s.r <= goldMaxR &&
		s.g >= goldMinG && s.g <= goldMaxG &&
		s.b < goldMaxB && s.r > s.g &&
		br >= goldMinBrightness && br <= goldMaxBrightness &&
		ratio >= goldMinGRRatio && ratio <= goldMaxGRRatio
}

func isSilver(s sample) bool {
	return s.spreadWithin(silverSpread) &&
		s.r >= silverMin && s.r <= silverMax &&
		s.g >= silverMin && s.g <= silverMax &&
		s.b >= silverMin && s.b <= silverMax
}

// isBrown accepts three brown appearances (dark reddish, medium, light
// beige) after rejecting warm colors that are really yellow or gold.
func isBrown(s sample) bool {
	if s.g > brownRejectG && s.grRatio() > brownRejectGRRatio {
		return false
	}
	// Dark reddish-brown.
	if s.r > brownDarkMinR && s.r < brownDarkMaxR && s.g < brownDarkMaxG && s.b < brownDarkMaxB {
		return true
	}
	// Medium brown.
	if s.r > brownMedMinR && s.r < brownMedMaxR &&
		s.g > brownMedMinG && s.g < brownMedMaxG && s.b < brownMedMaxB &&
		s.r > s.g && s.r-s.g > brownMedMinRG && s.g-s.b > brownMedMinGB {
		return true
	}
	// Light, beige-leaning brown.
	if s.r > brownLightMinR && s.r < brownLightMaxR &&
		s.g > brownLightMinG && s.g < brownLightMaxG &&
		s.b > brownLightMinB && s.b < brownLightMaxB &&
		s.r > s.g && s.g > s.b &&
		s.r-s.g > brownLightMinRG && s.g-s.b > brownLightMinGB {
		return true
	}
	return false
}

func isOrange(s sample) bool {
	return s.r > orangeMinR && s.g > orangeMinG && s.g < orangeMaxG &&
		s.b < orangeMaxB && s.r-s.g > orangeMinRG
}

func isRed(s sample) bool {
	if s.r > redMinR && s.g < redMaxG && s.b < redMaxB && s.r-s.g > redMinRG {
		return true
	}
	return s.r > redAltMinR && s.g < redAltMaxG && s.b < redAltMaxB &&
		s.r-s.g > redAltMinRG && s.r-s.b > redAltMinRB
}

func isGreen(s sample) bool {
	return s.g > greenMinG && s.r < greenMaxR && s.b < greenMaxB &&
		s.g-s.r > greenMinGR && s.g-s.b > greenMinGB
}

func isBlue(s sample) bool {
	return s.b > blueMinB && s.r < blueMaxR && s.g < blueMaxG &&
		s.b-s.r > blueMinBR && s.b-s.g > blueMinBG
}

func isViolet(s sample) bool {
	return s.b > violetMinB && s.r > violetMinR && s.g < violetMaxG &&
		absInt(s.r-s.b) < violetMaxRBGap
}

func isGray(s sample) bool {
	return s.spreadWithin(graySpread) &&
		s.r >= grayMin && s.r <= grayMax &&
		s.g >= grayMin && s.g <= grayMax &&
		s.b >= grayMin && s.b <= grayMax
}

// isLenientGold widens the gold rule for the tolerance position.
func isLenientGold(s sample) bool {
	if isGold(s) {
		return true
	}
	ratio := s.grRatio()
	return s.r > tolGoldMinR && s.r < tolGoldMaxR &&
		s.g > tolGoldMinG && s.g < tolGoldMaxG && s.b < tolGoldMaxB &&
		s.r > s.g && s.g > s.b &&
		ratio >= tolGoldMinGRRatio && ratio <= tolGoldMaxGRRatio
}

// isLenientYellow accepts standard yellow plus the shadowed yellow common
// in multiplier and digit positions.
func isLenientYellow(s sample) bool {
	if isYellow(s) {
		return true
	}
	ratio := s.grRatio()
	return s.r > shadowYellowMinR && s.g > shadowYellowMinG && s.b < shadowYellowMaxB &&
		s.r > s.g && s.g > s.b &&
		ratio >= shadowYellowMinGRRatio && ratio <= shadowYellowMaxGRRatio
}

// colorClassifier maps a sampled color, given its positional role, to a
// named band color. Classification is deterministic and rule-based.
type colorClassifier struct{}

// NewColorClassifier creates a new classifier
func NewColorClassifier() ColorClassifier {
	return &colorClassifier{}
}

// Classify returns the band color for a sample at the given position. The
// result is pure: identical inputs always yield the same label, and digit
// positions never yield gold or silver.
func (cc *colorClassifier) Classify(c models.RGB, bandIndex, totalBands int) models.BandColor {
	s := newSample(c)
	switch RoleFor(bandIndex, totalBands) {
	case RoleTolerance:
		return cc.classifyTolerance(s)
	case RoleMultiplier:
		return cc.classifyMultiplier(s)
	default:
		return cc.classifyDigit(s)
	}
}

func (cc *colorClassifier) classifyGeneral(s sample) models.BandColor {
	for _, rule := range generalRules {
		if rule.match(s) {
			return rule.color
		}
	}
	return models.Unknown
}

func (cc *colorClassifier) classifyTolerance(s sample) models.BandColor {
	if isLenientGold(s) {
		return models.Gold
	}
	if isSilver(s) {
		return models.Silver
	}
	// Warm samples that reached here are almost always shadowed gold.
	if s.r > tolWarmMinR && s.g > tolWarmMinG && s.b < tolWarmMaxB &&
		s.grRatio() > tolWarmMinGRRatio {
		return models.Gold
	}
	if c := cc.classifyGeneral(s); toleranceColors[c] {
		return c
	}
	return models.Gold
}

func (cc *colorClassifier) classifyMultiplier(s sample) models.BandColor {
	if isLenientYellow(s) {
		return models.Yellow
	}
	if isGold(s) {
		return models.Gold
	}
	if isSilver(s) {
		return models.Silver
	}
	if s.r > darkYellowMinR && s.g > darkYellowMinG && s.b < darkYellowMaxB &&
		s.r > s.g && s.r-s.b > darkYellowMinRB {
		return models.Yellow
	}
	return cc.classifyGeneral(s)
}

func (cc *colorClassifier) classifyDigit(s sample) models.BandColor {
	if isLenientYellow(s) {
		return models.Yellow
	}
	if isBrown(s) {
		return models.Brown
	}
	c := cc.classifyGeneral(s)
	if c != models.Gold && c != models.Silver {
		return c
	}
	// Metallics never encode digits; a bright metallic reading is a
	// washed-out yellow, anything else is unclassifiable.
	if s.r > digitRemapMinR && s.g > digitRemapMinG && s.b < digitRemapMaxB {
		return models.Yellow
	}
	return models.Unknown
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
