package engine

import (
	"context"
	"time"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// QualityEngine bundles the stateless analyzers and runs a full
// analysis over one sample. Each call is independent; nothing is
// retained between runs.
type QualityEngine struct {
	Capability *CapabilityEngine
	Normality  *NormalityChecker
	Control    *ControlChartAnalyzer
	WhatIf     *WhatIfProjector
	Financial  *FinancialModel
	Converter  *SigmaConverter
}

// NewQualityEngine creates a fully wired engine.
func NewQualityEngine() *QualityEngine {
	return &QualityEngine{
		Capability: NewCapabilityEngine(),
		Normality:  NewNormalityChecker(),
		Control:    NewControlChartAnalyzer(),
		WhatIf:     NewWhatIfProjector(),
		Financial:  NewFinancialModel(),
		Converter:  NewSigmaConverter(),
	}
}

// AnalyzeRequest describes one full analysis run.
type AnalyzeRequest struct {
	Dataset string
	Column  string
	Sample  []float64
	Spec    quality.SpecLimits

	// Optional projections. TargetSigma <= 0 skips the scenario;
	// AnnualVolume <= 0 skips the financial evaluation.
	TargetSigma  float64
	AnnualVolume float64
	Costs        *quality.CostAssumptions
	ProjectCosts quality.ProjectCosts
	DiscountRate float64
}

// Analyze runs capability, normality and control analysis concurrently
// over the same sample, then feeds the capability outcome into the
// optional what-if and financial projections.
func (e *QualityEngine) Analyze(ctx context.Context, req AnalyzeRequest) (*quality.AnalysisSnapshot, error) {
	if len(req.Sample) < 2 {
		return nil, core.NewInsufficientDataError(2, len(req.Sample))
	}

	snapshot := &quality.AnalysisSnapshot{
		ID:        core.SnapshotID(core.NewID()),
		Dataset:   req.Dataset,
		Column:    req.Column,
		CreatedAt: time.Now().UTC(),
		Spec:      &req.Spec,
	}

	type analyzerOutcome struct {
		capability *quality.CapabilityResult
		normality  *quality.NormalityResult
		control    *quality.ControlAnalysis
		err        error
	}

	results := make(chan analyzerOutcome, 3)

	go func() {
		capability, err := e.Capability.Compute(req.Sample, req.Spec)
		results <- analyzerOutcome{capability: capability, err: err}
	}()
	go func() {
		// Normality needs 3 points; with exactly 2 the check is
		// skipped rather than failing the whole run.
		if len(req.Sample) < 3 {
			results <- analyzerOutcome{}
			return
		}
		norm, err := e.Normality.Check(req.Sample)
		results <- analyzerOutcome{normality: norm, err: err}
	}()
	go func() {
		ctrl, err := e.Control.AnalyzeIndividuals(req.Sample)
		results <- analyzerOutcome{control: ctrl, err: err}
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case out := <-results:
			if out.err != nil {
				return nil, out.err
			}
			if out.capability != nil {
				snapshot.Capability = out.capability
			}
			if out.normality != nil {
				snapshot.Normality = out.normality
			}
			if out.control != nil {
				snapshot.Control = out.control
			}
		}
	}

	if req.TargetSigma > 0 && snapshot.Capability != nil {
		scenario, err := e.WhatIf.Project(snapshot.Capability.SigmaLevel, snapshot.Capability.DPMO, req.TargetSigma)
		if err != nil {
			return nil, err
		}
		snapshot.Scenario = scenario

		if req.AnnualVolume > 0 {
			costs := quality.DefaultCostAssumptions()
			if req.Costs != nil {
				costs = *req.Costs
			}
			projectCosts := req.ProjectCosts
			if projectCosts == nil {
				projectCosts = quality.DefaultProjectCosts()
			}
			snapshot.Financial = e.Financial.Evaluate(
				snapshot.Capability.DPMO, scenario.TargetDPMO, req.AnnualVolume,
				costs, projectCosts, req.DiscountRate,
			)
		}
	}

	return snapshot, nil
}
