package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-resistor-inspector/internal/config"
	apperrors "go-resistor-inspector/internal/errors"
	"go-resistor-inspector/internal/logger"
	"go-resistor-inspector/internal/observer"
	"go-resistor-inspector/internal/repository"
	"go-resistor-inspector/internal/service"
	"go-resistor-inspector/pkg/models"
)

// NewHandler builds the HTTP surface of the service.
func NewHandler(
	svc service.ResistorAnalysisService,
	resultRepo repository.ResultRepository,
	stats *observer.StatsObserver,
	cfg *config.Config,
) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/stats", showStats(stats))
	r.GET("/results", listResults(resultRepo))
	r.GET("/results/:id", getResult(resultRepo))
	r.POST("/analyze", analyzeImage(svc, cfg))
	r.POST("/analyze/detailed", analyzeImageDetailed(svc, cfg))
	r.POST("/decode", decodeSequence(svc))

	return r
}

func analyzeImage(svc service.ResistorAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// The context only guards the image fetch; the pipeline itself is
		// bounded and I/O-free.
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.ImageFetchTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing analysis request")

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		// Mode may also arrive as a query parameter, which takes
		// precedence over the JSON body.
		if mode := c.Query("mode"); mode != "" {
			req.Mode = mode
		}

		response, err := svc.AnalyzeImage(ctx, req)
		if err != nil {
			respondAppError(c, req.URL, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"mode":               req.Mode,
			"colors":             response.Colors,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Analysis completed successfully")

		c.JSON(http.StatusOK, response)
	}
}

func analyzeImageDetailed(svc service.ResistorAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.ImageFetchTimeout)
		defer cancel()

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		response, err := svc.AnalyzeImageDetailed(ctx, req)
		if err != nil {
			respondAppError(c, req.URL, err)
			return
		}
		c.JSON(http.StatusOK, response)
	}
}

func decodeSequence(svc service.ResistorAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DecodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		response, err := svc.DecodeSequence(req)
		if err != nil {
			respondAppError(c, "", err)
			return
		}
		c.JSON(http.StatusOK, response)
	}
}

func listResults(resultRepo repository.ResultRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"results": resultRepo.ListResults(c.Request.Context(), 20),
		})
	}
}

func getResult(resultRepo repository.ResultRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := resultRepo.GetResult(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, http.StatusNotFound, "result not found", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func showStats(stats *observer.StatsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.GetStats())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

// respondAppError maps service errors to HTTP responses, distinguishing
// fetch timeouts from other failures.
func respondAppError(c *gin.Context, location string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.NewTimeoutError("image fetch timeout", err)
	}

	statusCode := apperrors.GetStatusCode(err)
	logger.WithError(err).WithFields(logrus.Fields{
		"url": location,
		"ip":  c.ClientIP(),
	}).Error("Request failed")
	respondError(c, statusCode, "analysis failed", err)
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
