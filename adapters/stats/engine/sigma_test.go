package engine

import (
	"math"
	"testing"
)

func TestSigmaConverter_Saturation(t *testing.T) {
	c := NewSigmaConverter()

	if got := c.SigmaFromDPMO(0); got != 6.0 {
		t.Errorf("SigmaFromDPMO(0) = %f, want 6.0", got)
	}
	if got := c.SigmaFromDPMO(-5); got != 6.0 {
		t.Errorf("SigmaFromDPMO(-5) = %f, want 6.0", got)
	}
	if got := c.SigmaFromDPMO(1_000_000); got != 0 {
		t.Errorf("SigmaFromDPMO(1e6) = %f, want 0", got)
	}
	if got := c.SigmaFromDPMO(2_000_000); got != 0 {
		t.Errorf("SigmaFromDPMO(2e6) = %f, want 0", got)
	}
}

func TestSigmaConverter_KnownBenchmarks(t *testing.T) {
	c := NewSigmaConverter()

	// Canonical Six Sigma table values under the 1.5-sigma shift.
	cases := []struct {
		sigma float64
		dpmo  float64
	}{
		{6.0, 3.4},
		{5.0, 233},
		{4.0, 6210},
		{3.0, 66807},
		{2.0, 308538},
	}

	for _, tc := range cases {
		got := c.DPMOFromSigma(tc.sigma)
		if relDiff(got, tc.dpmo) > 0.01 {
			t.Errorf("DPMOFromSigma(%.1f) = %.1f, want ~%.1f", tc.sigma, got, tc.dpmo)
		}
	}
}

func TestSigmaConverter_RoundTrip(t *testing.T) {
	c := NewSigmaConverter()

	for _, dpmo := range []float64{0.5, 3.4, 100, 6210, 66807, 308538, 500000, 900000, 999999} {
		sigma := c.SigmaFromDPMO(dpmo)
		back := c.DPMOFromSigma(sigma)
		if relDiff(back, dpmo) > 1e-3 {
			t.Errorf("round trip dpmo %.1f -> sigma %.4f -> %.4f", dpmo, sigma, back)
		}
	}
}

func TestSigmaConverter_YieldClamped(t *testing.T) {
	c := NewSigmaConverter()

	if got := c.YieldPct(0); got != 100 {
		t.Errorf("YieldPct(0) = %f, want 100", got)
	}
	if got := c.YieldPct(1_500_000); got != 0 {
		t.Errorf("YieldPct above 1e6 should clamp to 0, got %f", got)
	}
	if got := c.YieldPct(66807); math.Abs(got-93.3193) > 0.001 {
		t.Errorf("YieldPct(66807) = %f, want ~93.3193", got)
	}
}

func TestSigmaConverter_ConversionTable(t *testing.T) {
	rows := NewSigmaConverter().ConversionTable()

	if len(rows) != 51 {
		t.Fatalf("expected 51 rows, got %d", len(rows))
	}
	if rows[0].Sigma != 1.0 || rows[len(rows)-1].Sigma != 6.0 {
		t.Errorf("table should span sigma 1.0..6.0, got %.1f..%.1f", rows[0].Sigma, rows[len(rows)-1].Sigma)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].DPMO >= rows[i-1].DPMO {
			t.Errorf("DPMO should decrease with sigma: row %d", i)
		}
	}
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}
