package analyzer

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"go-resistor-inspector/pkg/models"
)

func TestRGBToLAB_KnownValues(t *testing.T) {
	tests := []struct {
		name    string
		rgb     models.RGB
		wantL   float64
		wantA   float64
		wantB   float64
		epsilon float64
	}{
		{"white", models.RGB{R: 255, G: 255, B: 255}, 100.0, 0.0, 0.0, 0.1},
		{"black", models.RGB{R: 0, G: 0, B: 0}, 0.0, 0.0, 0.0, 0.1},
		{"red", models.RGB{R: 255, G: 0, B: 0}, 53.24, 80.09, 67.20, 0.5},
		{"green", models.RGB{R: 0, G: 255, B: 0}, 87.73, -86.18, 83.18, 0.5},
		{"blue", models.RGB{R: 0, G: 0, B: 255}, 32.30, 79.19, -107.86, 0.5},
		{"mid gray", models.RGB{R: 128, G: 128, B: 128}, 53.59, 0.0, 0.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := RGBToLAB(tt.rgb)
			if math.Abs(lab.L-tt.wantL) > tt.epsilon {
				t.Errorf("L = %.3f, want %.3f", lab.L, tt.wantL)
			}
			if math.Abs(lab.A-tt.wantA) > tt.epsilon {
				t.Errorf("A = %.3f, want %.3f", lab.A, tt.wantA)
			}
			if math.Abs(lab.B-tt.wantB) > tt.epsilon {
				t.Errorf("B = %.3f, want %.3f", lab.B, tt.wantB)
			}
		})
	}
}

// TestRGBToLAB_AgainstColorful cross-checks the transform against
// go-colorful across a channel sweep. go-colorful reports L on a [0,1]
// scale, ours uses [0,100].
func TestRGBToLAB_AgainstColorful(t *testing.T) {
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				rgb := models.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := RGBToLAB(rgb)

				ref := colorful.Color{
					R: float64(r) / 255.0,
					G: float64(g) / 255.0,
					B: float64(b) / 255.0,
				}
				wantL, wantA, wantB := ref.Lab()

				if math.Abs(got.L-wantL*100) > 1.0 ||
					math.Abs(got.A-wantA*100) > 1.0 ||
					math.Abs(got.B-wantB*100) > 1.0 {
					t.Fatalf("RGB(%d,%d,%d): got LAB(%.2f,%.2f,%.2f), reference (%.2f,%.2f,%.2f)",
						r, g, b, got.L, got.A, got.B, wantL*100, wantA*100, wantB*100)
				}
			}
		}
	}
}

func TestLABToRGB_RoundTrip(t *testing.T) {
	colors := []models.RGB{
		{R: 110, G: 40, B: 20},
		{R: 170, G: 40, B: 35},
		{R: 150, G: 90, B: 40},
		{R: 205, G: 170, B: 125},
		{R: 20, G: 20, B: 20},
		{R: 60, G: 120, B: 200},
		{R: 240, G: 240, B: 240},
	}

	for _, c := range colors {
		back := LABToRGB(RGBToLAB(c))
		if absChannelDiff(c.R, back.R) > 2 ||
			absChannelDiff(c.G, back.G) > 2 ||
			absChannelDiff(c.B, back.B) > 2 {
			t.Errorf("Round trip of %v gave %v", c, back)
		}
	}
}

func TestLABToRGB_ClampsOutOfGamut(t *testing.T) {
	// An extreme a* pushes the red channel far past the gamut edge.
	c := LABToRGB(LABColor{L: 50, A: 300, B: 0})
	if c.R != 255 {
		t.Errorf("Expected red channel clamped to 255, got %d", c.R)
	}
}

func TestDeltaE_Properties(t *testing.T) {
	a := RGBToLAB(models.RGB{R: 110, G: 40, B: 20})
	b := RGBToLAB(models.RGB{R: 205, G: 170, B: 125})

	if d := DeltaE(a, a); d != 0 {
		t.Errorf("Expected zero distance to self, got %f", d)
	}
	if DeltaE(a, b) != DeltaE(b, a) {
		t.Error("Expected DeltaE to be symmetric")
	}
	if DeltaE(a, b) <= 0 {
		t.Error("Expected positive distance for distinct colors")
	}
}

func TestDeltaE_OrdersByPerceptualDifference(t *testing.T) {
	body := RGBToLAB(models.RGB{R: 205, G: 170, B: 125})
	nearBody := RGBToLAB(models.RGB{R: 200, G: 165, B: 120})
	black := RGBToLAB(models.RGB{R: 20, G: 20, B: 20})

	if DeltaE(body, nearBody) >= DeltaE(body, black) {
		t.Error("Expected a near-body color to be closer than black")
	}
}

func absChannelDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
