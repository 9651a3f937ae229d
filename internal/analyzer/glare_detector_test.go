package analyzer

import (
	"image"
	"image/color"
	"testing"

	"go-resistor-inspector/pkg/models"
)

func TestDetectGlare_CleanFrame(t *testing.T) {
	buf := makeResistorBuffer(200, 60, testBody, 6, fourBandStripes())
	detector := NewGlareDetector()

	if detector.DetectGlare(buf) {
		t.Error("Expected no glare on a clean frame")
	}
}

func TestDetectGlare_BlownOutFrame(t *testing.T) {
	buf := makeUniformBuffer(200, 60, color.RGBA{235, 235, 235, 255})
	detector := NewGlareDetector()

	if !detector.DetectGlare(buf) {
		t.Error("Expected glare on a blown-out frame")
	}
}

func TestDetectGlare_SmallHighlightTolerated(t *testing.T) {
	// One bright patch well under the 15% window fraction.
	img := image.NewRGBA(image.Rect(0, 0, 200, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, testBody)
		}
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{240, 240, 240, 255})
		}
	}
	buf := models.NewPixelBufferFromImage(img, models.FullExtent(img))

	detector := NewGlareDetector()
	if detector.DetectGlare(buf) {
		t.Error("Expected a small highlight to pass the pre-check")
	}
}
