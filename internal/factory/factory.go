package factory

import (
	"fmt"

	"go-resistor-inspector/internal/analyzer"
	"go-resistor-inspector/internal/config"
	"go-resistor-inspector/internal/storage"
)

// AnalyzerFactory creates resistor analyzers
type AnalyzerFactory interface {
	CreateAnalyzer() (analyzer.ResistorAnalyzer, error)
}

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(cfg *config.Config) (storage.ImageFetcher, error)
}

// analyzerFactory implements AnalyzerFactory
type analyzerFactory struct{}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory() AnalyzerFactory {
	return &analyzerFactory{}
}

// CreateAnalyzer creates the pipeline analyzer
func (f *analyzerFactory) CreateAnalyzer() (analyzer.ResistorAnalyzer, error) {
	return analyzer.NewResistorAnalyzer()
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage creates the image fetcher selected by the configuration.
func (f *storageFactory) CreateStorage(cfg *config.Config) (storage.ImageFetcher, error) {
	switch cfg.Storage {
	case config.StorageHTTP:
		return storage.NewHTTPImageFetcher(), nil
	case config.StorageAzure:
		return storage.NewAzureImageFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
	case config.StorageLocal:
		return storage.NewLocalImageFetcher(cfg.LocalImageRoot)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	AnalyzerFactory AnalyzerFactory
	StorageFactory  StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		AnalyzerFactory: NewAnalyzerFactory(),
		StorageFactory:  NewStorageFactory(),
	}
}
