package service

import (
	"context"
	"strings"
	"time"

	"github.com/arbovm/levenshtein"
	"github.com/lucasb-eyer/go-colorful"

	"go-resistor-inspector/internal/analyzer"
	"go-resistor-inspector/internal/decoder"
	apperrors "go-resistor-inspector/internal/errors"
	"go-resistor-inspector/internal/observer"
	"go-resistor-inspector/internal/repository"
	"go-resistor-inspector/internal/strategy"
	"go-resistor-inspector/pkg/models"
)

// maxNameDistance is the levenshtein budget for matching a hand-entered
// color name against the palette.
const maxNameDistance = 2

// ResistorAnalysisService defines the service surface for band analysis
// and decoding.
type ResistorAnalysisService interface {
	// AnalyzeImage fetches one resistor photo and runs the analysis
	// pipeline over it.
	AnalyzeImage(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResponse, error)

	// AnalyzeImageDetailed additionally returns per-band sampling detail.
	AnalyzeImageDetailed(ctx context.Context, request models.AnalysisRequest) (*models.DetailedAnalysisResponse, error)

	// DecodeSequence decodes a hand-entered color sequence without any
	// image involved.
	DecodeSequence(request models.DecodeRequest) (*models.DecodeResponse, error)

	// ValidateLocation validates an image location
	ValidateLocation(location string) error
}

// resistorAnalysisService implements ResistorAnalysisService with a
// single shared analyzer.
type resistorAnalysisService struct {
	imageRepo  repository.ImageRepository
	resultRepo repository.ResultRepository
	analyzer   analyzer.ResistorAnalyzer
	classifier analyzer.ColorClassifier
	publisher  observer.Subject
}

// NewResistorAnalysisService creates a new analysis service.
func NewResistorAnalysisService(
	imageRepo repository.ImageRepository,
	resultRepo repository.ResultRepository,
	resistorAnalyzer analyzer.ResistorAnalyzer,
	publisher observer.Subject,
) ResistorAnalysisService {
	return &resistorAnalysisService{
		imageRepo:  imageRepo,
		resultRepo: resultRepo,
		analyzer:   resistorAnalyzer,
		classifier: analyzer.NewColorClassifier(),
		publisher:  publisher,
	}
}

// AnalyzeImage fetches the photo and runs the preset selected by the
// request mode.
func (s *resistorAnalysisService) AnalyzeImage(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResponse, error) {
	buf, err := s.fetchBuffer(ctx, request.URL)
	if err != nil {
		return nil, err
	}

	result := strategy.ForMode(request.Mode).Analyze(s.analyzer, buf)
	s.finishRun(ctx, request.URL, result)

	return s.convertToResponse(request.URL, &result), nil
}

// AnalyzeImageDetailed runs the full pipeline and keeps per-band detail.
func (s *resistorAnalysisService) AnalyzeImageDetailed(ctx context.Context, request models.AnalysisRequest) (*models.DetailedAnalysisResponse, error) {
	buf, err := s.fetchBuffer(ctx, request.URL)
	if err != nil {
		return nil, err
	}

	result, details, bodyColor := s.analyzer.AnalyzeDetailed(buf, analyzer.DetailedOptions())
	s.finishRun(ctx, request.URL, result)

	return &models.DetailedAnalysisResponse{
		AnalysisResponse: *s.convertToResponse(request.URL, &result),
		BodyColor:        bodyColor,
		Bands:            details,
	}, nil
}

// DecodeSequence resolves each entry to a palette color, repairs the
// sequence and decodes it. Entries may be color names (fuzzy-matched) or
// "#RRGGBB" samples classified by their position.
func (s *resistorAnalysisService) DecodeSequence(request models.DecodeRequest) (*models.DecodeResponse, error) {
	if len(request.Colors) == 0 {
		return nil, apperrors.NewValidationError("colors cannot be empty", nil)
	}
	if len(request.Colors) > 5 {
		return nil, apperrors.NewValidationError("at most 5 colors are accepted", nil)
	}

	resolved := make(models.ColorSequence, len(request.Colors))
	matched := make([]string, len(request.Colors))
	for i, entry := range request.Colors {
		resolved[i] = s.resolveEntry(entry, i, len(request.Colors))
		matched[i] = string(resolved[i])
	}

	repaired := decoder.Repair(resolved)

	response := &models.DecodeResponse{
		Colors:  repaired.Strings(),
		Matched: matched,
	}
	if ohms, tol, err := decoder.Decode(repaired); err == nil {
		response.ResistanceOhms = &ohms
		response.ResistanceText = decoder.FormatResistance(ohms)
		if tol > 0 {
			response.ToleranceFraction = &tol
		}
	}
	return response, nil
}

// ValidateLocation validates an image location.
func (s *resistorAnalysisService) ValidateLocation(location string) error {
	return s.imageRepo.ValidateLocation(location)
}

// resolveEntry maps one request entry to a palette color. Resolution
// order: exact name, hex sample, fuzzy name.
func (s *resistorAnalysisService) resolveEntry(entry string, index, total int) models.BandColor {
	name := strings.ToLower(strings.TrimSpace(entry))

	if c, ok := models.ParseBandColor(name); ok {
		return c
	}

	if strings.HasPrefix(name, "#") {
		if sample, err := colorful.Hex(name); err == nil {
			r, g, b := sample.RGB255()
			return s.classifier.Classify(models.RGB{R: r, G: g, B: b}, index, total)
		}
		return models.Unknown
	}

	best := models.Unknown
	bestDistance := maxNameDistance + 1
	for _, c := range models.Palette {
		d := levenshtein.Distance(name, string(c))
		if d < bestDistance {
			best = c
			bestDistance = d
		}
	}
	return best
}

// fetchBuffer validates the location, fetches the photo and wraps it in
// a pixel buffer. Fetch events are published either way.
func (s *resistorAnalysisService) fetchBuffer(ctx context.Context, location string) (*models.PixelBuffer, error) {
	if err := s.ValidateLocation(location); err != nil {
		return nil, apperrors.NewValidationError("invalid image location", err)
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:     observer.AnalysisStarted,
		Timestamp:     time.Now(),
		ImageLocation: location,
	})

	img, err := s.imageRepo.FetchImage(ctx, location)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:     observer.ImageFetchFailed,
			Timestamp:     time.Now(),
			ImageLocation: location,
			ErrorMessage:  err.Error(),
		})
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:     observer.ImageFetched,
		Timestamp:     time.Now(),
		ImageLocation: location,
		Success:       true,
	})
	return models.NewPixelBufferFromImage(img, models.FullExtent(img)), nil
}

// finishRun stores the result and publishes completion events.
func (s *resistorAnalysisService) finishRun(ctx context.Context, location string, result models.AnalysisResult) {
	if s.resultRepo != nil {
		_ = s.resultRepo.SaveResult(ctx, result)
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		ImageLocation:  location,
		ProcessingTime: time.Duration(result.ProcessingTimeSec * float64(time.Second)),
		Success:        true,
		Metadata: map[string]interface{}{
			"colors":   result.ColorSequence.Strings(),
			"degraded": result.Quality.DegradedDetection,
		},
	})
	if result.Quality.Repaired {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:     observer.SequenceRepaired,
			Timestamp:     time.Now(),
			ImageLocation: location,
		})
	}
}

func (s *resistorAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

// convertToResponse converts an analyzer result to the transport shape.
func (s *resistorAnalysisService) convertToResponse(location string, result *models.AnalysisResult) *models.AnalysisResponse {
	response := &models.AnalysisResponse{
		ImageURL:          location,
		Timestamp:         result.Timestamp.Format(time.RFC3339),
		ProcessingTimeSec: result.ProcessingTimeSec,
		Colors:            result.ColorSequence.Strings(),
		BandRects:         result.BandRects,
		ResistanceOhms:    result.ResistanceOhms,
		ToleranceFraction: result.ToleranceFraction,
		Quality:           result.Quality,
		Errors:            result.Errors,
	}
	if result.ResistanceOhms != nil {
		response.ResistanceText = decoder.FormatResistance(*result.ResistanceOhms)
	}
	return response
}
