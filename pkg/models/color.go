package models

import "strings"

// BandColor is one of the twelve resistor band colors, or Unknown when a
// sample could not be classified.
type BandColor string

const (
	Black   BandColor = "black"
	Brown   BandColor = "brown"
	Red     BandColor = "red"
	Orange  BandColor = "orange"
	Yellow  BandColor = "yellow"
	Green   BandColor = "green"
	Blue    BandColor = "blue"
	Violet  BandColor = "violet"
	Gray    BandColor = "gray"
	White   BandColor = "white"
	Gold    BandColor = "gold"
	Silver  BandColor = "silver"
	Unknown BandColor = "unknown"
)

// Palette lists the twelve valid band colors in digit-value order, followed
// by the two metallic colors. Unknown is not part of the palette.
var Palette = []BandColor{
	Black, Brown, Red, Orange, Yellow, Green, Blue, Violet, Gray, White,
	Gold, Silver,
}

// ColorSequence is an ordered run of band colors, leftmost band first.
// After repair a sequence always has exactly four entries.
type ColorSequence []BandColor

// Strings returns the sequence as plain color-name strings.
func (s ColorSequence) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}

// ContainsUnknown reports whether any entry is Unknown.
func (s ColorSequence) ContainsUnknown() bool {
	for _, c := range s {
		if c == Unknown {
			return true
		}
	}
	return false
}

// ParseBandColor maps a color name to its BandColor. Matching is
// case-insensitive and accepts the common "grey" spelling. Unrecognized
// names yield Unknown and ok=false.
func ParseBandColor(name string) (BandColor, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "grey" {
		return Gray, true
	}
	for _, c := range Palette {
		if n == string(c) {
			return c, true
		}
	}
	return Unknown, false
}

// RGB is an 8-bit-per-channel color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Brightness returns the mean channel value.
func (c RGB) Brightness() float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3.0
}

// MaxChannel returns the largest channel value.
func (c RGB) MaxChannel() uint8 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// MinChannel returns the smallest channel value.
func (c RGB) MinChannel() uint8 {
	m := c.R
	if c.G < m {
		m = c.G
	}
	if c.B < m {
		m = c.B
	}
	return m
}
