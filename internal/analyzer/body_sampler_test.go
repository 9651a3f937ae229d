package analyzer

import (
	"image/color"
	"testing"

	"go-resistor-inspector/pkg/models"
)

func TestSampleBodyColor_UniformBody(t *testing.T) {
	buf := makeUniformBuffer(200, 60, testBody)
	sampler := NewBodySampler()

	got := sampler.SampleBodyColor(buf)

	if absChannelDiff(got.R, 205) > 2 || absChannelDiff(got.G, 170) > 2 || absChannelDiff(got.B, 125) > 2 {
		t.Errorf("Expected body color near (205,170,125), got %v", got)
	}
}

func TestSampleBodyColor_BandedImageStaysNearBody(t *testing.T) {
	buf := makeResistorBuffer(200, 60, testBody, 6, fourBandStripes())
	sampler := NewBodySampler()

	got := sampler.SampleBodyColor(buf)

	// Bands leak into the margin strips, so the estimate drifts, but it
	// must stay much closer to the body than to any band color.
	if rgbDistance(got, models.RGB{R: 205, G: 170, B: 125}) > 15 {
		t.Errorf("Body estimate %v drifted too far from the body color", got)
	}
	if rgbDistance(got, models.RGB{R: 20, G: 20, B: 20}) < 40 {
		t.Errorf("Body estimate %v is implausibly close to a band color", got)
	}
}

func TestSampleBodyColor_BlackFrameFallsBack(t *testing.T) {
	buf := makeUniformBuffer(200, 60, color.RGBA{5, 5, 5, 255})
	sampler := NewBodySampler()

	got := sampler.SampleBodyColor(buf)

	if got != defaultBodyColor {
		t.Errorf("Expected default body color %v for a black frame, got %v", defaultBodyColor, got)
	}
}

func TestSampleBodyColor_AlwaysReturnsValue(t *testing.T) {
	// Tiny buffers must not panic or divide by zero.
	buf := makeUniformBuffer(4, 4, testBody)
	sampler := NewBodySampler()

	got := sampler.SampleBodyColor(buf)
	if got == (models.RGB{}) {
		t.Error("Expected a non-zero estimate for a lit frame")
	}
}
