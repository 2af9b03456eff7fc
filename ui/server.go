package ui

import (
	"github.com/gin-gonic/gin"

	"sixsigma/adapters/stats/engine"
	"sixsigma/app"
	"sixsigma/internal"
)

// Server exposes the quality engine as a JSON API.
type Server struct {
	router  *gin.Engine
	engine  *engine.QualityEngine
	service *app.AnalysisService
	logger  *internal.Logger
}

// NewServer creates a new API server instance.
func NewServer(eng *engine.QualityEngine, service *app.AnalysisService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  gin.Default(),
		engine:  eng,
		service: service,
		logger:  logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/capability", s.handleCapability)
		api.POST("/capability/discrete", s.handleDiscreteSummary)
		api.POST("/normality", s.handleNormality)
		api.POST("/control/individuals", s.handleControlIndividuals)
		api.POST("/control/proportions", s.handleControlProportions)
		api.POST("/whatif", s.handleWhatIf)
		api.POST("/financial", s.handleFinancial)
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/columns/classify", s.handleClassifyColumns)

		api.GET("/conversion-table", s.handleConversionTable)

		api.GET("/snapshots", s.handleListSnapshots)
		api.GET("/snapshots/:id", s.handleGetSnapshot)
		api.DELETE("/snapshots/:id", s.handleDeleteSnapshot)
	}
}

// Start begins serving on the specified address.
func (s *Server) Start(addr string) error {
	s.logger.Info("quality API listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
