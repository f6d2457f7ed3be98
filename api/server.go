// Package api exposes the rehabilitation decision-support service over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rehabengine/app"
	"rehabengine/domain/core"
	"rehabengine/internal"
	apperrors "rehabengine/internal/errors"
	"rehabengine/internal/nlp"
)

// Server represents the JSON API server.
type Server struct {
	router *gin.Engine
	logger *internal.Logger
}

// NewServer builds the router and wires all handlers.
func NewServer(
	generation *app.GenerationService,
	assessment *app.AssessmentService,
	recommendation *app.RecommendationService,
	analyzer *nlp.Analyzer,
	logger *internal.Logger,
) *Server {
	s := &Server{
		router: gin.Default(),
		logger: logger,
	}

	datasets := NewDatasetHandler(generation, logger)
	inmates := NewInmateHandler(generation, logger)
	predictions := NewPredictionHandler(assessment, logger)
	recommendations := NewRecommendationHandler(recommendation, logger)
	analysis := NewAnalysisHandler(analyzer)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := s.router.Group("/api")
	{
		apiGroup.POST("/generate", datasets.HandleGenerate())
		apiGroup.GET("/datasets", datasets.HandleList())
		apiGroup.GET("/datasets/:name", datasets.HandleGet())
		apiGroup.GET("/datasets/:name/profile", datasets.HandleProfile())
		apiGroup.GET("/datasets/:name/export", datasets.HandleExport())
		apiGroup.POST("/upload", datasets.HandleUpload())

		apiGroup.GET("/inmates/:id", inmates.HandleGetInmate())
		apiGroup.GET("/inmates/:id/assessment", inmates.HandleGetAssessment())
		apiGroup.GET("/assessments", inmates.HandleListAssessments())
		apiGroup.GET("/runs/:run_id/profiles", inmates.HandleRunProfiles())

		apiGroup.POST("/predictions/eligibility", predictions.HandleEligibility())
		apiGroup.POST("/predictions/early-release", predictions.HandleInmateTask("early_release"))
		apiGroup.POST("/predictions/industrial-training", predictions.HandleInmateTask("industrial_training"))
		apiGroup.POST("/predictions/home-leave", predictions.HandleInmateTask("home_leave"))
		apiGroup.GET("/models/status", predictions.HandleModelStatus())

		apiGroup.POST("/recommendations", recommendations.HandleRecommend())
		apiGroup.POST("/analysis/notes", analysis.HandleAnalyzeNote())
	}

	return s
}

// Start runs the server on the given address, blocking until it exits.
func (s *Server) Start(addr string) error {
	s.logger.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err), apperrors.GetCode(err) == apperrors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsValidationError(err),
		apperrors.GetCode(err) == apperrors.CodeValidationError,
		apperrors.GetCode(err) == apperrors.CodeUploadError:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.GetCode(err) == apperrors.CodeDatabaseError:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
