package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sigma<->DPMO conversion under the 1.5-sigma long-term shift
// convention. Both directions saturate at the practical bounds instead
// of returning infinities: a perfect process reports 6.0 sigma, a 100%
// defective one reports 0.

const (
	// SigmaShift is the assumed long-term process drift.
	SigmaShift = 1.5

	// SigmaCeiling caps the sigma level for dpmo <= 0.
	SigmaCeiling = 6.0

	opportunitiesPerMillion = 1_000_000
)

// SigmaConverter converts between sigma levels and DPMO.
type SigmaConverter struct{}

// NewSigmaConverter creates a new converter.
func NewSigmaConverter() *SigmaConverter {
	return &SigmaConverter{}
}

// DPMOFromSigma returns the long-term defect rate implied by a
// short-term sigma level: (1 - Phi(sigma - 1.5)) * 1e6.
func (c *SigmaConverter) DPMOFromSigma(sigma float64) float64 {
	return (1 - distuv.UnitNormal.CDF(sigma-SigmaShift)) * opportunitiesPerMillion
}

// SigmaFromDPMO inverts DPMOFromSigma over (0, 1e6). Out of that range
// it saturates: >= 1e6 cannot be inverted and maps to 0, <= 0 maps to
// the 6.0 ceiling.
func (c *SigmaConverter) SigmaFromDPMO(dpmo float64) float64 {
	if dpmo >= opportunitiesPerMillion {
		return 0
	}
	if dpmo <= 0 {
		return SigmaCeiling
	}
	return distuv.UnitNormal.Quantile(1-dpmo/opportunitiesPerMillion) + SigmaShift
}

// YieldPct returns the first-pass yield percentage for a defect rate,
// clamped to [0, 100].
func (c *SigmaConverter) YieldPct(dpmo float64) float64 {
	yield := (1 - dpmo/opportunitiesPerMillion) * 100
	return math.Max(0, math.Min(100, yield))
}

// ConversionRow is one line of the sigma-to-DPMO reference table.
type ConversionRow struct {
	Sigma    float64 `json:"sigma"`
	DPMO     float64 `json:"dpmo"`
	YieldPct float64 `json:"yield_pct"`
}

// ConversionTable generates the standard reference table from sigma 1.0
// to 6.0 in steps of 0.1.
func (c *SigmaConverter) ConversionTable() []ConversionRow {
	rows := make([]ConversionRow, 0, 51)
	for i := 10; i <= 60; i++ {
		sigma := float64(i) / 10
		dpmo := c.DPMOFromSigma(sigma)
		rows = append(rows, ConversionRow{
			Sigma:    sigma,
			DPMO:     dpmo,
			YieldPct: c.YieldPct(dpmo),
		})
	}
	return rows
}
