package engine

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// ControlChartAnalyzer computes control limits for I-MR and P charts
// and flags out-of-control points plus Western Electric run patterns.
type ControlChartAnalyzer struct{}

// NewControlChartAnalyzer creates a new analyzer.
func NewControlChartAnalyzer() *ControlChartAnalyzer {
	return &ControlChartAnalyzer{}
}

// I-MR chart constants (individuals chart, n=2 moving range).
const (
	imrLimitFactor = 2.66  // E2 = 3 / d2 for subgroup size 2
	mrUCLFactor    = 3.267 // D4 for subgroup size 2
)

// AnalyzeIndividuals builds an I-MR chart over an ordered sequence of
// continuous measurements. Needs at least 2 points for one moving
// range.
func (a *ControlChartAnalyzer) AnalyzeIndividuals(sample []float64) (*quality.ControlAnalysis, error) {
	n := len(sample)
	if n < 2 {
		return nil, core.NewInsufficientDataError(2, n)
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return nil, err
	}

	movingRange := make([]float64, n-1)
	for i := 1; i < n; i++ {
		movingRange[i-1] = math.Abs(sample[i] - sample[i-1])
	}
	mrMean, err := stats.Mean(movingRange)
	if err != nil {
		return nil, err
	}

	limits := quality.ControlLimits{
		ChartType:  quality.ChartIndividuals,
		CenterLine: mean,
		UCL:        mean + imrLimitFactor*mrMean,
		LCL:        mean - imrLimitFactor*mrMean,
		MRMean:     mrMean,
		MRUCL:      mrUCLFactor * mrMean,
	}

	report := buildViolationReport(sample, limits)
	return &quality.ControlAnalysis{Limits: limits, Report: report}, nil
}

// AnalyzeProportions builds a P chart over ordered (defect,
// opportunity) subgroups. The center line is the pooled proportion,
// not the mean of per-row proportions.
func (a *ControlChartAnalyzer) AnalyzeProportions(defects, opportunities []int) (*quality.ControlAnalysis, error) {
	n := len(defects)
	if n == 0 || n != len(opportunities) {
		return nil, core.NewInsufficientDataError(1, n)
	}

	totalDefects := 0
	totalOpportunities := 0
	proportions := make([]float64, n)
	for i := range defects {
		if opportunities[i] <= 0 {
			return nil, core.ErrZeroOpportunities
		}
		totalDefects += defects[i]
		totalOpportunities += opportunities[i]
		proportions[i] = float64(defects[i]) / float64(opportunities[i])
	}

	pBar := float64(totalDefects) / float64(totalOpportunities)
	nBar := float64(totalOpportunities) / float64(n)
	margin := 3 * math.Sqrt(pBar*(1-pBar)/nBar)

	limits := quality.ControlLimits{
		ChartType:  quality.ChartProportions,
		CenterLine: pBar,
		UCL:        pBar + margin,
		LCL:        math.Max(0, pBar-margin),
	}

	report := buildViolationReport(proportions, limits)
	return &quality.ControlAnalysis{Limits: limits, Report: report}, nil
}

// buildViolationReport flags Rule-1 breaches, runs the Western Electric
// pattern rules, and classifies stability by out-of-control density.
func buildViolationReport(points []float64, limits quality.ControlLimits) quality.ViolationReport {
	report := quality.ViolationReport{
		OutOfControl:   []int{},
		RuleViolations: []quality.RuleViolation{},
	}

	for i, v := range points {
		if v > limits.UCL || v < limits.LCL {
			report.OutOfControl = append(report.OutOfControl, i)
		}
	}

	report.RuleViolations = westernElectricRules(points, limits)

	oocCount := len(report.OutOfControl)
	switch {
	case oocCount == 0:
		report.Status = quality.StatusInControl
	case float64(oocCount) <= float64(len(points))*0.05:
		report.Status = quality.StatusMostlyStable
	default:
		report.Status = quality.StatusOutOfControl
	}

	return report
}

// westernElectricRules applies rules 2-4 against the sigma zones
// implied by the control limits. Every triggering window is reported at
// its last index; overlapping windows are not deduplicated.
func westernElectricRules(points []float64, limits quality.ControlLimits) []quality.RuleViolation {
	violations := []quality.RuleViolation{}
	center := limits.CenterLine
	sigma := limits.Sigma()

	zoneAUpper := center + 2*sigma
	zoneALower := center - 2*sigma
	zoneBUpper := center + sigma
	zoneBLower := center - sigma

	// Rule 2: 2 of 3 consecutive points beyond 2 sigma (either side).
	for i := 0; i+3 <= len(points); i++ {
		beyond := 0
		for _, v := range points[i : i+3] {
			if v > zoneAUpper || v < zoneALower {
				beyond++
			}
		}
		if beyond >= 2 {
			violations = append(violations, quality.RuleViolation{
				Rule:        2,
				Index:       i + 2,
				Description: fmt.Sprintf("2 of 3 points beyond 2-sigma ending at point %d", i+2),
			})
		}
	}

	// Rule 3: 4 of 5 consecutive points beyond 1 sigma on the same side.
	for i := 0; i+5 <= len(points); i++ {
		above := 0
		below := 0
		for _, v := range points[i : i+5] {
			if v > zoneBUpper {
				above++
			}
			if v < zoneBLower {
				below++
			}
		}
		if above >= 4 || below >= 4 {
			violations = append(violations, quality.RuleViolation{
				Rule:        3,
				Index:       i + 4,
				Description: fmt.Sprintf("4 of 5 points beyond 1-sigma (same side) ending at point %d", i+4),
			})
		}
	}

	// Rule 4: 8 consecutive points on the same side of center.
	for i := 0; i+8 <= len(points); i++ {
		allAbove := true
		allBelow := true
		for _, v := range points[i : i+8] {
			if v <= center {
				allAbove = false
			}
			if v >= center {
				allBelow = false
			}
		}
		if allAbove || allBelow {
			violations = append(violations, quality.RuleViolation{
				Rule:        4,
				Index:       i + 7,
				Description: fmt.Sprintf("8 consecutive points on same side of center ending at point %d", i+7),
			})
		}
	}

	return violations
}
