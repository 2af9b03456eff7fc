package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// CapabilityEngine computes process capability metrics from a sample of
// continuous CTQ measurements plus spec limits.
type CapabilityEngine struct {
	converter *SigmaConverter
}

// NewCapabilityEngine creates a new capability engine.
func NewCapabilityEngine() *CapabilityEngine {
	return &CapabilityEngine{converter: NewSigmaConverter()}
}

// Compute calculates Cp/Cpk/Pp/Ppk, DPMO, sigma level and yield.
// A zero-variance sample is a degenerate-but-valid process (perfect
// precision): indexes saturate at +Inf when the mean is in spec and the
// result carries the ZeroVariation marker instead of an error.
func (e *CapabilityEngine) Compute(sample []float64, spec quality.SpecLimits) (*quality.CapabilityResult, error) {
	n := len(sample)
	if n < 2 {
		return nil, core.NewInsufficientDataError(2, n)
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return nil, err
	}
	stdDev, err := stats.StandardDeviationSample(sample)
	if err != nil {
		return nil, err
	}
	stdDevPop, err := stats.StandardDeviationPopulation(sample)
	if err != nil {
		return nil, err
	}

	result := &quality.CapabilityResult{
		SampleSize:    n,
		Mean:          mean,
		StdDev:        stdDev,
		StdDevPop:     stdDevPop,
		ZeroVariation: stdDev == 0,
	}

	lsl := spec.LowerBound()
	usl := spec.UpperBound()

	result.Cp, result.Cpu, result.Cpl, result.Cpk = capabilityIndexes(mean, stdDev, lsl, usl)
	result.Pp, result.Ppu, result.Ppl, result.Ppk = capabilityIndexes(mean, stdDevPop, lsl, usl)

	for _, v := range sample {
		if !spec.InSpec(v) {
			result.DefectCount++
		}
	}
	result.DPMO = float64(result.DefectCount) / float64(n) * 1_000_000
	result.SigmaLevel = e.converter.SigmaFromDPMO(result.DPMO)
	result.YieldPct = e.converter.YieldPct(result.DPMO)

	return result, nil
}

// capabilityIndexes computes the (cp, cpu, cpl, cpk) family for one
// standard deviation convention. One-sided specs leave the missing
// side -Inf out of cpk via the defined-side fallback; a zero standard
// deviation saturates in-spec indexes at +Inf.
func capabilityIndexes(mean, sd, lsl, usl float64) (cp, cpu, cpl, cpk float64) {
	if sd == 0 {
		cpu = zeroVarIndex(mean <= usl)
		cpl = zeroVarIndex(mean >= lsl)
		cp = math.Inf(1)
		if math.IsInf(cpu, -1) || math.IsInf(cpl, -1) {
			cp = math.Inf(-1)
		}
		cpk = math.Min(cpu, cpl)
		return cp, cpu, cpl, cpk
	}

	cpu = (usl - mean) / (3 * sd)
	cpl = (mean - lsl) / (3 * sd)
	cp = (usl - lsl) / (6 * sd)
	cpk = math.Min(cpu, cpl)
	return cp, cpu, cpl, cpk
}

func zeroVarIndex(inSpec bool) float64 {
	if inSpec {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

// SummarizeDiscrete pools (defect, opportunity) subgroups into DPO,
// DPMO, sigma level and yield. Fails when pooled opportunities are zero.
func (e *CapabilityEngine) SummarizeDiscrete(defects, opportunities []int) (*quality.DiscreteSummary, error) {
	totalDefects := 0
	totalOpportunities := 0
	for _, d := range defects {
		totalDefects += d
	}
	for _, o := range opportunities {
		totalOpportunities += o
	}
	if totalOpportunities <= 0 {
		return nil, core.ErrZeroOpportunities
	}

	dpo := float64(totalDefects) / float64(totalOpportunities)
	dpmo := dpo * 1_000_000

	return &quality.DiscreteSummary{
		TotalDefects:       totalDefects,
		TotalOpportunities: totalOpportunities,
		DPO:                dpo,
		DPMO:               dpmo,
		SigmaLevel:         e.converter.SigmaFromDPMO(dpmo),
		YieldPct:           e.converter.YieldPct(dpmo),
	}, nil
}
