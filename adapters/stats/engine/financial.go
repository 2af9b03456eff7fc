package engine

import (
	"math"

	"sixsigma/domain/quality"
)

// FinancialModel turns defect-reduction assumptions into annual
// savings, ROI, payback and a 5-year NPV.
type FinancialModel struct{}

// NewFinancialModel creates a new model.
func NewFinancialModel() *FinancialModel {
	return &FinancialModel{}
}

// DefaultDiscountRate for the NPV horizon.
const DefaultDiscountRate = 0.10

const npvHorizonYears = 5

// Incidence weights: of the defects avoided, the share that would have
// been scrapped, reworked, or reached the customer as a warranty claim.
const (
	scrapIncidence    = 0.3
	reworkIncidence   = 0.6
	warrantyIncidence = 0.1
)

// Evaluate runs the cost-benefit analysis. A discountRate <= 0 falls
// back to the default 10%. Zero or negative savings never divide by
// zero: payback reports the 999-month sentinel and ROI is computed
// against the investment only.
func (m *FinancialModel) Evaluate(
	currentDPMO, targetDPMO, annualVolume float64,
	costs quality.CostAssumptions,
	projectCosts quality.ProjectCosts,
	discountRate float64,
) *quality.FinancialResult {
	if discountRate <= 0 {
		discountRate = DefaultDiscountRate
	}

	currentDefects := annualVolume * currentDPMO / 1_000_000
	improvedDefects := annualVolume * targetDPMO / 1_000_000
	defectsAvoided := currentDefects - improvedDefects

	result := &quality.FinancialResult{
		CurrentDefectsPerYear:  currentDefects,
		ImprovedDefectsPerYear: improvedDefects,
		DefectsAvoided:         defectsAvoided,

		ScrapSavings:    defectsAvoided * costs.Scrap * scrapIncidence,
		ReworkSavings:   defectsAvoided * costs.Rework * reworkIncidence,
		WarrantySavings: defectsAvoided * costs.Warranty * warrantyIncidence,

		TotalInvestment: projectCosts.Total(),
	}
	result.TotalAnnualSavings = result.ScrapSavings + result.ReworkSavings + result.WarrantySavings

	if result.TotalInvestment > 0 {
		result.ROIPct = (result.TotalAnnualSavings - result.TotalInvestment) / result.TotalInvestment * 100
	}

	if result.TotalAnnualSavings > 0 {
		result.PaybackMonths = result.TotalInvestment / result.TotalAnnualSavings * 12
	} else {
		result.PaybackMonths = quality.PaybackSentinelMonths
	}

	npv := -result.TotalInvestment
	for year := 1; year <= npvHorizonYears; year++ {
		npv += result.TotalAnnualSavings / math.Pow(1+discountRate, float64(year))
	}
	result.NPV5Yr = npv

	result.Rating = quality.RateFinancials(result.ROIPct, result.PaybackMonths, result.NPV5Yr)
	return result
}
