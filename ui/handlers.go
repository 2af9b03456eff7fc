package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sixsigma/adapters/stats/engine"
	"sixsigma/domain/core"
	"sixsigma/domain/dataset"
	"sixsigma/domain/quality"
)

// specRequest carries optional specification limits in request bodies.
type specRequest struct {
	Lower  *float64 `json:"lower_spec"`
	Upper  *float64 `json:"upper_spec"`
	Target *float64 `json:"target"`
}

func (r specRequest) toSpec() quality.SpecLimits {
	return quality.SpecLimits{Lower: r.Lower, Upper: r.Upper, Target: r.Target}
}

// writeEngineError maps domain errors onto HTTP status codes.
func (s *Server) writeEngineError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsInsufficientData(err),
		errors.Is(err, core.ErrInvalidSpec),
		errors.Is(err, core.ErrInvalidTarget),
		errors.Is(err, core.ErrZeroOpportunities),
		errors.Is(err, core.ErrZeroBaseline):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) handleCapability(c *gin.Context) {
	var req struct {
		Sample []float64 `json:"sample" binding:"required"`
		specRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.Capability.Compute(req.Sample, req.toSpec())
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"capability":           result,
		"sigma_interpretation": quality.InterpretSigma(result.SigmaLevel),
		"cpk_rating":           quality.InterpretCpk(result.Cp, result.Cpk),
	})
}

func (s *Server) handleDiscreteSummary(c *gin.Context) {
	var req struct {
		Defects       []int `json:"defects" binding:"required"`
		Opportunities []int `json:"opportunities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.engine.Capability.SummarizeDiscrete(req.Defects, req.Opportunities)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleNormality(c *gin.Context) {
	var req struct {
		Sample []float64 `json:"sample" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.Normality.Check(req.Sample)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleControlIndividuals(c *gin.Context) {
	var req struct {
		Sample []float64 `json:"sample" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := s.engine.Control.AnalyzeIndividuals(req.Sample)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleControlProportions(c *gin.Context) {
	var req struct {
		Defects       []int `json:"defects" binding:"required"`
		Opportunities []int `json:"opportunities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := s.engine.Control.AnalyzeProportions(req.Defects, req.Opportunities)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleWhatIf(c *gin.Context) {
	var req struct {
		CurrentSigma float64 `json:"current_sigma"`
		CurrentDPMO  float64 `json:"current_dpmo" binding:"required"`
		TargetSigma  float64 `json:"target_sigma" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Sigma can be derived when the caller only knows DPMO.
	if req.CurrentSigma == 0 {
		req.CurrentSigma = s.engine.Converter.SigmaFromDPMO(req.CurrentDPMO)
	}

	scenario, err := s.engine.WhatIf.Project(req.CurrentSigma, req.CurrentDPMO, req.TargetSigma)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (s *Server) handleFinancial(c *gin.Context) {
	var req struct {
		CurrentDPMO  float64                  `json:"current_dpmo"`
		TargetDPMO   float64                  `json:"target_dpmo"`
		AnnualVolume float64                  `json:"annual_volume" binding:"required"`
		Costs        *quality.CostAssumptions `json:"costs"`
		ProjectCosts quality.ProjectCosts     `json:"project_costs"`
		DiscountRate float64                  `json:"discount_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	costs := quality.DefaultCostAssumptions()
	if req.Costs != nil {
		costs = *req.Costs
	}
	projectCosts := req.ProjectCosts
	if projectCosts == nil {
		projectCosts = quality.DefaultProjectCosts()
	}

	result := s.engine.Financial.Evaluate(
		req.CurrentDPMO, req.TargetDPMO, req.AnnualVolume,
		costs, projectCosts, req.DiscountRate,
	)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req struct {
		Dataset string    `json:"dataset"`
		Column  string    `json:"column"`
		Sample  []float64 `json:"sample" binding:"required"`
		specRequest
		TargetSigma  float64                  `json:"target_sigma"`
		AnnualVolume float64                  `json:"annual_volume"`
		Costs        *quality.CostAssumptions `json:"costs"`
		ProjectCosts quality.ProjectCosts     `json:"project_costs"`
		DiscountRate float64                  `json:"discount_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.service.Analyze(c.Request.Context(), engine.AnalyzeRequest{
		Dataset:      req.Dataset,
		Column:       req.Column,
		Sample:       req.Sample,
		Spec:         req.toSpec(),
		TargetSigma:  req.TargetSigma,
		AnnualVolume: req.AnnualVolume,
		Costs:        req.Costs,
		ProjectCosts: req.ProjectCosts,
		DiscountRate: req.DiscountRate,
	})
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleClassifyColumns(c *gin.Context) {
	var req struct {
		Columns []string `json:"columns" binding:"required"`
		Numeric []string `json:"numeric_columns"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guesses := dataset.ClassifyColumns(req.Columns)
	if len(req.Numeric) > 0 {
		numeric := make(map[string]bool, len(req.Numeric))
		for _, col := range req.Numeric {
			numeric[col] = true
		}
		guesses = dataset.PromoteMeasurements(guesses, numeric)
	}
	c.JSON(http.StatusOK, gin.H{"columns": guesses})
}

func (s *Server) handleConversionTable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": s.engine.Converter.ConversionTable()})
}

func (s *Server) handleListSnapshots(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	snapshots, err := s.service.ListSnapshots(c.Request.Context(), c.Query("dataset"), limit)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots, "count": len(snapshots)})
}

func (s *Server) handleGetSnapshot(c *gin.Context) {
	id, err := core.ParseSnapshotID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.service.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleDeleteSnapshot(c *gin.Context) {
	id, err := core.ParseSnapshotID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.service.DeleteSnapshot(c.Request.Context(), id); err != nil {
		s.writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": string(id)})
}
