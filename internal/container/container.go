package container

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"go-resistor-inspector/internal/analyzer"
	"go-resistor-inspector/internal/config"
	"go-resistor-inspector/internal/factory"
	"go-resistor-inspector/internal/observer"
	"go-resistor-inspector/internal/repository"
	"go-resistor-inspector/internal/service"
	"go-resistor-inspector/internal/storage"
	"go-resistor-inspector/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config           *config.Config
	imageFetcher     storage.ImageFetcher
	resistorAnalyzer analyzer.ResistorAnalyzer
	imageRepository  repository.ImageRepository
	resultRepository repository.ResultRepository
	statsObserver    *observer.StatsObserver
	analysisService  service.ResistorAnalysisService
	handler          http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	factories := factory.NewComponentFactory()

	imageFetcher, err := factories.StorageFactory.CreateStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	resistorAnalyzer, err := factories.AnalyzerFactory.CreateAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	stats := observer.NewStatsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logrus.StandardLogger()))
	publisher.Subscribe(stats)

	imageRepository := repository.NewFetcherImageRepository(imageFetcher, cfg.Storage)
	resultRepository := repository.NewMemoryResultRepository()
	analysisService := service.NewResistorAnalysisService(
		imageRepository, resultRepository, resistorAnalyzer, publisher)
	handler := transport.NewHandler(analysisService, resultRepository, stats, cfg)

	return &Container{
		config:           cfg,
		imageFetcher:     imageFetcher,
		resistorAnalyzer: resistorAnalyzer,
		imageRepository:  imageRepository,
		resultRepository: resultRepository,
		statsObserver:    stats,
		analysisService:  analysisService,
		handler:          handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// AnalysisService returns the analysis service
func (c *Container) AnalysisService() service.ResistorAnalysisService {
	return c.analysisService
}

// Close releases analyzer resources.
func (c *Container) Close() error {
	return c.resistorAnalyzer.Close()
}
