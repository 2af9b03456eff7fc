package quality

import "testing"

func TestInterpretSigma(t *testing.T) {
	tests := []struct {
		sigma float64
		level string
	}{
		{6.2, "world_class"},
		{6.0, "world_class"},
		{5.5, "excellent"},
		{4.0, "good"},
		{3.9, "average"},
		{2.1, "below_average"},
		{1.0, "poor"},
		{0.0, "poor"},
	}

	for _, tt := range tests {
		got := InterpretSigma(tt.sigma)
		if got.Level != tt.level {
			t.Errorf("InterpretSigma(%v) = %s, want %s", tt.sigma, got.Level, tt.level)
		}
	}
}

func TestInterpretCpk(t *testing.T) {
	tests := []struct {
		cp, cpk float64
		rating  string
	}{
		{2.1, 2.1, "excellent"},
		{1.7, 1.7, "very_good"},
		{1.4, 1.4, "good"},
		{1.1, 1.1, "marginal"},
		{0.9, 0.9, "not_capable"},
	}

	for _, tt := range tests {
		got := InterpretCpk(tt.cp, tt.cpk)
		if got.Rating != tt.rating {
			t.Errorf("InterpretCpk(%v, %v) = %s, want %s", tt.cp, tt.cpk, got.Rating, tt.rating)
		}
		if got.CenteringIssue {
			t.Errorf("InterpretCpk(%v, %v) flagged centering for a centered process", tt.cp, tt.cpk)
		}
	}
}

func TestInterpretCpk_CenteringIssue(t *testing.T) {
	got := InterpretCpk(1.8, 1.2)
	if got.Rating != "marginal" {
		t.Errorf("rating = %s, want marginal", got.Rating)
	}
	if !got.CenteringIssue {
		t.Error("Cp-Cpk gap of 0.6 should flag a centering issue")
	}
}

func TestRateFinancials(t *testing.T) {
	tests := []struct {
		name           string
		roi, payback   float64
		npv            float64
		roiRating      string
		recommendation string
	}{
		{"outstanding fast", 350, 3, 200000, "outstanding", "approved"},
		{"strong approved", 150, 10, 50000, "very_good", "approved"},
		{"good but slow", 80, 18, 20000, "good", "conditional"},
		{"high roi slow payback", 120, 20, 50000, "very_good", "conditional"},
		{"marginal", 20, 30, -5000, "marginal", "not_recommended"},
		{"negative", -10, PaybackSentinelMonths, -90000, "negative", "not_recommended"},
	}

	for _, tt := range tests {
		got := RateFinancials(tt.roi, tt.payback, tt.npv)
		if got.ROIRating != tt.roiRating {
			t.Errorf("%s: roi rating = %s, want %s", tt.name, got.ROIRating, tt.roiRating)
		}
		if got.Recommendation != tt.recommendation {
			t.Errorf("%s: recommendation = %s, want %s", tt.name, got.Recommendation, tt.recommendation)
		}
	}
}

func TestRateFinancials_PaybackBands(t *testing.T) {
	tests := []struct {
		months float64
		rating string
	}{
		{4, "very_fast"},
		{6, "very_fast"},
		{12, "fast"},
		{24, "moderate"},
		{36, "slow"},
		{PaybackSentinelMonths, "slow"},
	}

	for _, tt := range tests {
		got := RateFinancials(100, tt.months, 0)
		if got.PaybackRating != tt.rating {
			t.Errorf("payback %v rated %s, want %s", tt.months, got.PaybackRating, tt.rating)
		}
	}
}
