package engine

import (
	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// WhatIfProjector estimates what an improvement to a target sigma level
// would mean: defect reduction, a rough savings proxy, and fixed
// industry-rule-of-thumb timeline/effort bands. These bands are lookup
// heuristics, not a guarantee; real costing belongs to FinancialModel.
type WhatIfProjector struct {
	converter *SigmaConverter
}

// NewWhatIfProjector creates a new projector.
func NewWhatIfProjector() *WhatIfProjector {
	return &WhatIfProjector{converter: NewSigmaConverter()}
}

// effortBand is one timeline/effort lookup row keyed by sigma delta.
type effortBand struct {
	maxDelta   float64
	timeline   string
	effort     string
	difficulty string
}

var effortBands = []effortBand{
	{0.5, "2-3 months", "Low - Quick wins, basic improvements", "Easy"},
	{1.0, "3-6 months", "Medium - Standard DMAIC project", "Moderate"},
	{1.5, "6-12 months", "High - Major process redesign likely needed", "Challenging"},
}

var effortBandCeiling = effortBand{
	timeline:   "12-18 months",
	effort:     "Very High - Fundamental changes required",
	difficulty: "Very Challenging",
}

// Project builds an improvement scenario. Only improvements are
// projected: a target below the current sigma level is an error, and a
// zero-DPMO baseline has nothing left to improve.
func (p *WhatIfProjector) Project(currentSigma, currentDPMO, targetSigma float64) (*quality.Scenario, error) {
	if targetSigma < currentSigma {
		return nil, core.NewInvalidTargetError(currentSigma, targetSigma)
	}
	if currentDPMO <= 0 {
		return nil, core.ErrZeroBaseline
	}

	targetDPMO := p.converter.DPMOFromSigma(targetSigma)

	scenario := &quality.Scenario{
		CurrentSigma:   currentSigma,
		TargetSigma:    targetSigma,
		CurrentDPMO:    currentDPMO,
		TargetDPMO:     targetDPMO,
		ImprovementPct: (currentDPMO - targetDPMO) / currentDPMO * 100,

		// $100 per defect per million opportunities heuristic.
		SavingsPerMillion: currentDPMO/10_000 - targetDPMO/10_000,
	}

	band := effortBandCeiling
	for _, b := range effortBands {
		if targetSigma-currentSigma <= b.maxDelta {
			band = b
			break
		}
	}
	scenario.Timeline = band.timeline
	scenario.Effort = band.effort
	scenario.Difficulty = band.difficulty

	return scenario, nil
}
