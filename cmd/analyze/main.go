package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"go-resistor-inspector/internal/analyzer"
	"go-resistor-inspector/internal/decoder"
	"go-resistor-inspector/pkg/models"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to the resistor photo")
		cropSpec = flag.String("crop", "", "crop rectangle as x,y,w,h before analysis")
		mode     = flag.String("mode", "standard", "analysis preset: standard, fast or detailed")
		asJSON   = flag.Bool("json", false, "emit the raw result as JSON")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := imaging.Open(*filePath, imaging.AutoOrientation(true))
	if err != nil {
		log.Fatalf("failed to load image: %v", err)
	}

	if *cropSpec != "" {
		rect, err := parseCrop(*cropSpec)
		if err != nil {
			log.Fatalf("invalid crop: %v", err)
		}
		img = imaging.Crop(img, rect)
	}

	a, err := analyzer.NewResistorAnalyzer()
	if err != nil {
		log.Fatalf("failed to create analyzer: %v", err)
	}
	defer a.Close()

	buf := models.NewPixelBufferFromImage(img, models.FullExtent(img))
	options := optionsForMode(*mode)
	result := a.Analyze(buf, options)

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	printResult(result)
}

func optionsForMode(mode string) analyzer.AnalysisOptions {
	switch mode {
	case "fast":
		return analyzer.FastOptions()
	case "detailed":
		return analyzer.DetailedOptions()
	default:
		return analyzer.DefaultOptions()
	}
}

func parseCrop(spec string) (image.Rectangle, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("expected x,y,w,h")
	}
	vals := make([]int, 4)
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &vals[i]); err != nil {
			return image.Rectangle{}, fmt.Errorf("bad value %q", p)
		}
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("width and height must be positive")
	}
	return image.Rect(vals[0], vals[1], vals[0]+vals[2], vals[1]+vals[3]), nil
}

func printResult(result models.AnalysisResult) {
	fmt.Printf("colors: %s\n", strings.Join(result.ColorSequence.Strings(), " "))
	if result.ResistanceOhms != nil {
		fmt.Printf("resistance: %s\n", decoder.FormatResistance(*result.ResistanceOhms))
	} else {
		fmt.Println("resistance: undetermined")
	}
	if result.ToleranceFraction != nil {
		fmt.Printf("tolerance: ±%g%%\n", *result.ToleranceFraction*100)
	}
	if result.Quality.GlareDetected {
		fmt.Println("warning: specular glare detected")
	}
	if result.Quality.DegradedDetection {
		fmt.Println("warning: band detection degraded, positions are synthetic")
	}
	if result.Quality.Repaired {
		fmt.Println("note: color sequence was repaired")
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %s\n", e)
	}
	fmt.Printf("elapsed: %.3fs\n", result.ProcessingTimeSec)
}
