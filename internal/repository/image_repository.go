package repository

import (
	"context"
	"image"

	"go-resistor-inspector/internal/config"
	"go-resistor-inspector/internal/storage"
	"go-resistor-inspector/pkg/validation"
)

// FetcherImageRepository implements ImageRepository over a storage
// fetcher. Location validation depends on the configured backend: URL
// checks for http, container/blob checks for azure, and none for local
// paths (the local fetcher rejects traversal itself).
type FetcherImageRepository struct {
	fetcher   storage.ImageFetcher
	backend   config.StorageBackend
	validator *validation.URLValidator
}

// NewFetcherImageRepository creates an image repository over the given
// fetcher.
func NewFetcherImageRepository(fetcher storage.ImageFetcher, backend config.StorageBackend) ImageRepository {
	return &FetcherImageRepository{
		fetcher:   fetcher,
		backend:   backend,
		validator: validation.NewURLValidator(),
	}
}

// FetchImage retrieves an image from a backend-specific location.
func (r *FetcherImageRepository) FetchImage(ctx context.Context, location string) (image.Image, error) {
	return r.fetcher.FetchImage(ctx, location)
}

// ValidateLocation validates a location before any fetch is attempted.
func (r *FetcherImageRepository) ValidateLocation(location string) error {
	if location == "" {
		return ErrInvalidLocation
	}
	switch r.backend {
	case config.StorageHTTP:
		return r.validator.ValidateImageURL(location)
	case config.StorageAzure:
		return r.validator.ValidateBlobURL(location)
	default:
		return nil
	}
}
