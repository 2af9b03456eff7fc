package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

func TestWhatIfProjector_RejectsWorseTarget(t *testing.T) {
	projector := NewWhatIfProjector()

	_, err := projector.Project(3.0, 66807, 2.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidTarget))
}

func TestWhatIfProjector_RejectsZeroBaseline(t *testing.T) {
	projector := NewWhatIfProjector()

	_, err := projector.Project(6.0, 0, 6.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrZeroBaseline))
}

func TestWhatIfProjector_ThreeToFourSigma(t *testing.T) {
	projector := NewWhatIfProjector()

	scenario, err := projector.Project(3.0, 66807, 4.0)
	require.NoError(t, err)

	assert.InDelta(t, 6210, scenario.TargetDPMO, 30)
	assert.InDelta(t, 90.7, scenario.ImprovementPct, 0.5)
	assert.Equal(t, "3-6 months", scenario.Timeline)
	assert.Equal(t, "Moderate", scenario.Difficulty)
	// $100 per defect per million opportunities proxy.
	assert.InDelta(t, (66807-scenario.TargetDPMO)/10000, scenario.SavingsPerMillion, 1e-9)
}

func TestWhatIfProjector_EffortBands(t *testing.T) {
	projector := NewWhatIfProjector()

	cases := []struct {
		current, target float64
		timeline        string
	}{
		{3.0, 3.5, "2-3 months"},
		{3.0, 4.0, "3-6 months"},
		{3.0, 4.5, "6-12 months"},
		{3.0, 5.5, "12-18 months"},
	}

	for _, tc := range cases {
		scenario, err := projector.Project(tc.current, 66807, tc.target)
		require.NoError(t, err)
		assert.Equal(t, tc.timeline, scenario.Timeline,
			"delta %.1f", tc.target-tc.current)
	}
}

func TestFinancialModel_FourSigmaProject(t *testing.T) {
	model := NewFinancialModel()

	result := model.Evaluate(6210, 233, 100000,
		quality.DefaultCostAssumptions(), quality.DefaultProjectCosts(), 0)

	assert.InDelta(t, 597.7, result.DefectsAvoided, 0.01)
	assert.InDelta(t, 90000, result.TotalInvestment, 1e-9)

	// scrap 50*0.3 + rework 30*0.6 + warranty 100*0.1 = 43 per defect
	assert.InDelta(t, result.DefectsAvoided*43, result.TotalAnnualSavings, 1e-6)

	assert.False(t, math.IsInf(result.ROIPct, 0))
	assert.False(t, math.IsNaN(result.ROIPct))
	assert.Greater(t, result.PaybackMonths, 0.0)
	assert.NotEqual(t, float64(quality.PaybackSentinelMonths), result.PaybackMonths)
	assert.NotEmpty(t, result.Rating.ROIRating)
	assert.NotEmpty(t, result.Rating.Recommendation)
}

func TestFinancialModel_ProfitableProject(t *testing.T) {
	model := NewFinancialModel()

	// Big volume: savings dwarf investment, ROI and payback must both
	// look healthy.
	result := model.Evaluate(66807, 6210, 1_000_000,
		quality.DefaultCostAssumptions(), quality.DefaultProjectCosts(), 0.10)

	require.Greater(t, result.TotalAnnualSavings, result.TotalInvestment)
	assert.Greater(t, result.ROIPct, 0.0)
	assert.Less(t, result.PaybackMonths, 12.0)
	assert.Greater(t, result.NPV5Yr, 0.0)
	assert.Equal(t, "approved", result.Rating.Recommendation)
}

func TestFinancialModel_NoSavingsSentinel(t *testing.T) {
	model := NewFinancialModel()

	result := model.Evaluate(1000, 1000, 100000,
		quality.DefaultCostAssumptions(), quality.DefaultProjectCosts(), 0)

	assert.Zero(t, result.DefectsAvoided)
	assert.Equal(t, float64(quality.PaybackSentinelMonths), result.PaybackMonths)
	assert.Less(t, result.NPV5Yr, 0.0)
	assert.Equal(t, "negative", result.Rating.NPVRating)
}

func TestFinancialModel_NPVDiscounting(t *testing.T) {
	model := NewFinancialModel()

	result := model.Evaluate(66807, 6210, 1_000_000,
		quality.DefaultCostAssumptions(), quality.DefaultProjectCosts(), 0.10)

	// NPV = sum savings/(1.1^y) - investment over 5 years.
	want := -result.TotalInvestment
	for year := 1; year <= 5; year++ {
		want += result.TotalAnnualSavings / math.Pow(1.1, float64(year))
	}
	assert.InDelta(t, want, result.NPV5Yr, 1e-6)
}
