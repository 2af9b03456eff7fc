package quality

import "math"

// Rating tables are fixed industry thresholds exposed as data. The core
// never renders prose from them; labeling is the UI layer's job.

// SigmaInterpretation describes a sigma-level performance band.
type SigmaInterpretation struct {
	Level     string  `json:"level"`
	MinSigma  float64 `json:"min_sigma"`
	Benchmark string  `json:"benchmark"`
	DPMO      float64 `json:"typical_dpmo"`
}

var sigmaBands = []SigmaInterpretation{
	{Level: "world_class", MinSigma: 6, Benchmark: "Best in class", DPMO: 3.4},
	{Level: "excellent", MinSigma: 5, Benchmark: "Industry leader", DPMO: 233},
	{Level: "good", MinSigma: 4, Benchmark: "Above average", DPMO: 6210},
	{Level: "average", MinSigma: 3, Benchmark: "Industry average", DPMO: 66807},
	{Level: "below_average", MinSigma: 2, Benchmark: "Needs improvement", DPMO: 308537},
	{Level: "poor", MinSigma: math.Inf(-1), Benchmark: "Uncompetitive", DPMO: 691462},
}

// InterpretSigma maps a sigma level to its performance band.
func InterpretSigma(sigma float64) SigmaInterpretation {
	for _, band := range sigmaBands {
		if sigma >= band.MinSigma {
			return band
		}
	}
	return sigmaBands[len(sigmaBands)-1]
}

// CpkRating describes a process capability band.
type CpkRating struct {
	Rating         string  `json:"rating"`
	MinCpk         float64 `json:"min_cpk"`
	ExpectedPPM    string  `json:"expected_ppm"`
	CenteringIssue bool    `json:"centering_issue"`
}

var cpkBands = []CpkRating{
	{Rating: "excellent", MinCpk: 2.0, ExpectedPPM: "< 3.4"},
	{Rating: "very_good", MinCpk: 1.67, ExpectedPPM: "< 0.6"},
	{Rating: "good", MinCpk: 1.33, ExpectedPPM: "< 63"},
	{Rating: "marginal", MinCpk: 1.0, ExpectedPPM: "~ 2700"},
	{Rating: "not_capable", MinCpk: math.Inf(-1), ExpectedPPM: "> 2700"},
}

// InterpretCpk maps Cpk to a capability band. A gap between Cp and Cpk
// larger than 0.2 marks the process as off-center: centering would
// improve Cpk without reducing variation.
func InterpretCpk(cp, cpk float64) CpkRating {
	for _, band := range cpkBands {
		if cpk >= band.MinCpk {
			rating := band
			rating.CenteringIssue = math.Abs(cp-cpk) > 0.2
			return rating
		}
	}
	last := cpkBands[len(cpkBands)-1]
	last.CenteringIssue = math.Abs(cp-cpk) > 0.2
	return last
}

// FinancialRating labels ROI, payback speed and NPV sign with fixed
// thresholds.
type FinancialRating struct {
	ROIRating      string `json:"roi_rating"`
	PaybackRating  string `json:"payback_rating"`
	NPVRating      string `json:"npv_rating"`
	Recommendation string `json:"recommendation"`
}

// RateFinancials applies the fixed rating thresholds.
func RateFinancials(roiPct, paybackMonths, npv float64) FinancialRating {
	rating := FinancialRating{}

	switch {
	case roiPct >= 300:
		rating.ROIRating = "outstanding"
	case roiPct >= 200:
		rating.ROIRating = "excellent"
	case roiPct >= 100:
		rating.ROIRating = "very_good"
	case roiPct >= 50:
		rating.ROIRating = "good"
	case roiPct >= 0:
		rating.ROIRating = "marginal"
	default:
		rating.ROIRating = "negative"
	}

	switch {
	case paybackMonths <= 6:
		rating.PaybackRating = "very_fast"
	case paybackMonths <= 12:
		rating.PaybackRating = "fast"
	case paybackMonths <= 24:
		rating.PaybackRating = "moderate"
	default:
		rating.PaybackRating = "slow"
	}

	switch {
	case npv > 100000:
		rating.NPVRating = "highly_positive"
	case npv > 0:
		rating.NPVRating = "positive"
	default:
		rating.NPVRating = "negative"
	}

	switch {
	case roiPct >= 100 && paybackMonths <= 12:
		rating.Recommendation = "approved"
	case roiPct >= 50:
		rating.Recommendation = "conditional"
	default:
		rating.Recommendation = "not_recommended"
	}

	return rating
}
