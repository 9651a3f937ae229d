package repository

import (
	"context"
	"image"

	"go-resistor-inspector/pkg/models"
)

// ImageRepository defines the interface for resistor photo access.
type ImageRepository interface {
	// FetchImage retrieves an image from a backend-specific location
	FetchImage(ctx context.Context, location string) (image.Image, error)

	// ValidateLocation validates a location before any fetch is attempted
	ValidateLocation(location string) error
}

// ResultRepository stores analysis results for later retrieval.
type ResultRepository interface {
	// SaveResult stores one analysis result
	SaveResult(ctx context.Context, result models.AnalysisResult) error

	// GetResult retrieves a stored result by ID
	GetResult(ctx context.Context, id string) (models.AnalysisResult, error)

	// ListResults returns recent results, newest first
	ListResults(ctx context.Context, limit int) []models.AnalysisResult
}
