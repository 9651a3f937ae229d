package analyzer

import (
	"math"

	"go-resistor-inspector/pkg/models"
)

// LABColor is a color in CIE L*a*b* space (D65 reference white). It is
// derived from RGB on demand for distance computation and never persisted.
type LABColor struct {
	L float64
	A float64
	B float64
}

// D65 reference white point.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// RGBToLAB converts an 8-bit sRGB triple to CIE L*a*b*.
//
// Channels are normalized to [0,1], linearized with the sRGB inverse
// gamma, transformed to XYZ via the standard sRGB matrix, normalized by
// the D65 white point and run through the CIE f(t) nonlinearity. The
// transform is pure and total.
func RGBToLAB(c models.RGB) LABColor {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)

	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return LABColor{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// LABToRGB is the inverse transform, clamping out-of-gamut values to the
// 8-bit channel range. In-gamut colors round-trip within ±2 per channel.
func LABToRGB(lab LABColor) models.RGB {
	fy := (lab.L + 16.0) / 116.0
	fx := fy + lab.A/500.0
	fz := fy - lab.B/200.0

	x := whiteX * labFInv(fx)
	y := whiteY * labFInv(fy)
	z := whiteZ * labFInv(fz)

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	b := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return models.RGB{
		R: clampChannel(linearToSRGB(r) * 255.0),
		G: clampChannel(linearToSRGB(g) * 255.0),
		B: clampChannel(linearToSRGB(b) * 255.0),
	}
}

// DeltaE returns the CIE76 color difference: the Euclidean distance
// between two LAB colors. Symmetric, zero for identical colors.
func DeltaE(a, b LABColor) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// rgbDistance is DeltaE over two RGB triples.
func rgbDistance(a, b models.RGB) float64 {
	return DeltaE(RGBToLAB(a), RGBToLAB(b))
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

func labFInv(t float64) float64 {
	t3 := t * t * t
	if t3 > 0.008856 {
		return t3
	}
	return (t - 16.0/116.0) / 7.787
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
