package quality

import (
	"encoding/json"
	"math"
	"time"

	"sixsigma/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// SpecLimits holds the engineering specification for a CTQ characteristic.
// A nil bound means the specification is one-sided; the missing side is
// treated as infinite and the corresponding capability index degrades
// instead of crashing.
type SpecLimits struct {
	Lower  *float64 `json:"lower,omitempty"`
	Upper  *float64 `json:"upper,omitempty"`
	Target *float64 `json:"target,omitempty"`
}

// NewSpecLimits builds a two-sided specification.
func NewSpecLimits(lower, upper float64) SpecLimits {
	return SpecLimits{Lower: &lower, Upper: &upper}
}

// LowerBound returns the lower spec limit, -Inf when absent.
func (s SpecLimits) LowerBound() float64 {
	if s.Lower == nil {
		return math.Inf(-1)
	}
	return *s.Lower
}

// UpperBound returns the upper spec limit, +Inf when absent.
func (s SpecLimits) UpperBound() float64 {
	if s.Upper == nil {
		return math.Inf(1)
	}
	return *s.Upper
}

// TwoSided reports whether both limits are present.
func (s SpecLimits) TwoSided() bool {
	return s.Lower != nil && s.Upper != nil
}

// InSpec reports whether a value meets the specification.
// Values exactly at a limit count as in-spec.
func (s SpecLimits) InSpec(v float64) bool {
	return v >= s.LowerBound() && v <= s.UpperBound()
}

// CapabilityResult holds process capability metrics for one sample.
// INVARIANTS:
// - StdDev uses divisor n-1, StdDevPop divisor n
// - DPMO in [0, 1e6], YieldPct in [0, 100]
// - capability indexes are +Inf (not NaN) for a zero-variance in-spec process
type CapabilityResult struct {
	SampleSize int     `json:"sample_size"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`     // sample (short-term) standard deviation
	StdDevPop  float64 `json:"std_dev_pop"` // population (overall) standard deviation

	Cp  float64 `json:"cp"`
	Cpu float64 `json:"cpu"`
	Cpl float64 `json:"cpl"`
	Cpk float64 `json:"cpk"`

	Pp  float64 `json:"pp"`
	Ppu float64 `json:"ppu"`
	Ppl float64 `json:"ppl"`
	Ppk float64 `json:"ppk"`

	DefectCount int     `json:"defect_count"`
	DPMO        float64 `json:"dpmo"`
	SigmaLevel  float64 `json:"sigma_level"`
	YieldPct    float64 `json:"yield_pct"`

	// ZeroVariation marks the degenerate all-identical-values case.
	// The result is still valid: perfect precision, indexes saturate.
	ZeroVariation bool `json:"zero_variation"`
}

// MarshalJSON emits non-finite capability indexes as null so a
// zero-variance result survives JSON encoding. On the way back in,
// null leaves the field at zero; the ZeroVariation flag is the durable
// record of the degenerate case.
func (r CapabilityResult) MarshalJSON() ([]byte, error) {
	type payload struct {
		SampleSize    int      `json:"sample_size"`
		Mean          float64  `json:"mean"`
		StdDev        float64  `json:"std_dev"`
		StdDevPop     float64  `json:"std_dev_pop"`
		Cp            *float64 `json:"cp"`
		Cpu           *float64 `json:"cpu"`
		Cpl           *float64 `json:"cpl"`
		Cpk           *float64 `json:"cpk"`
		Pp            *float64 `json:"pp"`
		Ppu           *float64 `json:"ppu"`
		Ppl           *float64 `json:"ppl"`
		Ppk           *float64 `json:"ppk"`
		DefectCount   int      `json:"defect_count"`
		DPMO          float64  `json:"dpmo"`
		SigmaLevel    float64  `json:"sigma_level"`
		YieldPct      float64  `json:"yield_pct"`
		ZeroVariation bool     `json:"zero_variation"`
	}
	return json.Marshal(payload{
		SampleSize:    r.SampleSize,
		Mean:          r.Mean,
		StdDev:        r.StdDev,
		StdDevPop:     r.StdDevPop,
		Cp:            finiteOrNil(r.Cp),
		Cpu:           finiteOrNil(r.Cpu),
		Cpl:           finiteOrNil(r.Cpl),
		Cpk:           finiteOrNil(r.Cpk),
		Pp:            finiteOrNil(r.Pp),
		Ppu:           finiteOrNil(r.Ppu),
		Ppl:           finiteOrNil(r.Ppl),
		Ppk:           finiteOrNil(r.Ppk),
		DefectCount:   r.DefectCount,
		DPMO:          r.DPMO,
		SigmaLevel:    r.SigmaLevel,
		YieldPct:      r.YieldPct,
		ZeroVariation: r.ZeroVariation,
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// DiscreteSummary holds defect-based metrics pooled across subgroups.
type DiscreteSummary struct {
	TotalDefects       int     `json:"total_defects"`
	TotalOpportunities int     `json:"total_opportunities"`
	DPO                float64 `json:"dpo"`
	DPMO               float64 `json:"dpmo"`
	SigmaLevel         float64 `json:"sigma_level"`
	YieldPct           float64 `json:"yield_pct"`
}

// NormalityResult aggregates the three normality tests.
// Shapiro-Wilk fields are nil when the sample exceeds the test's
// practical limit (5000 points).
type NormalityResult struct {
	SampleSize int `json:"sample_size"`

	AndersonStat      float64 `json:"anderson_statistic"`
	AndersonCritical5 float64 `json:"anderson_critical_5pct"`
	AndersonNormal    bool    `json:"anderson_normal"`

	ShapiroStat   *float64 `json:"shapiro_statistic,omitempty"`
	ShapiroP      *float64 `json:"shapiro_p,omitempty"`
	ShapiroNormal *bool    `json:"shapiro_normal,omitempty"`

	KSStat   float64 `json:"ks_statistic"`
	KSP      float64 `json:"ks_p"`
	KSNormal bool    `json:"ks_normal"`

	// OverallNormal follows Anderson-Darling, the only test that is
	// always computable regardless of sample size.
	OverallNormal bool `json:"overall_normal"`
}

// ChartType identifies the control chart family.
type ChartType string

const (
	ChartIndividuals ChartType = "i-mr"
	ChartProportions ChartType = "p"
)

// ControlLimits holds center line and 3-sigma control limits.
type ControlLimits struct {
	ChartType  ChartType `json:"chart_type"`
	CenterLine float64   `json:"center_line"`
	UCL        float64   `json:"upper_control_limit"`
	LCL        float64   `json:"lower_control_limit"`

	// I-MR only: mean moving range and the MR chart upper limit.
	MRMean float64 `json:"mr_mean,omitempty"`
	MRUCL  float64 `json:"mr_ucl,omitempty"`
}

// Sigma returns the 1-sigma zone width implied by the limits.
func (c ControlLimits) Sigma() float64 {
	return (c.UCL - c.CenterLine) / 3
}

// StabilityStatus classifies process stability by out-of-control density.
type StabilityStatus string

const (
	StatusInControl    StabilityStatus = "in_control"
	StatusMostlyStable StabilityStatus = "mostly_stable"
	StatusOutOfControl StabilityStatus = "out_of_control"
)

// RuleViolation is a single Western Electric pattern finding, anchored
// at the last point of the triggering window.
type RuleViolation struct {
	Rule        int    `json:"rule"`
	Index       int    `json:"index"`
	Description string `json:"description"`
}

// ViolationReport lists everything the control chart flagged.
// Overlapping windows each produce separate findings; nothing is
// deduplicated.
type ViolationReport struct {
	OutOfControl   []int           `json:"out_of_control_indices"`
	RuleViolations []RuleViolation `json:"rule_violations"`
	Status         StabilityStatus `json:"status"`
}

// ControlAnalysis pairs limits with the violations found against them.
type ControlAnalysis struct {
	Limits ControlLimits   `json:"limits"`
	Report ViolationReport `json:"report"`
}

// Scenario is a what-if improvement projection between two sigma levels.
type Scenario struct {
	CurrentSigma      float64 `json:"current_sigma"`
	TargetSigma       float64 `json:"target_sigma"`
	CurrentDPMO       float64 `json:"current_dpmo"`
	TargetDPMO        float64 `json:"target_dpmo"`
	ImprovementPct    float64 `json:"improvement_pct"`
	Timeline          string  `json:"estimated_timeline"`
	Effort            string  `json:"effort_level"`
	Difficulty        string  `json:"difficulty"`
	SavingsPerMillion float64 `json:"savings_per_million_opportunities"`
}

// CostAssumptions are per-defect unit costs by failure category.
type CostAssumptions struct {
	Scrap                float64 `json:"scrap"`
	Rework               float64 `json:"rework"`
	Warranty             float64 `json:"warranty"`
	CustomerSatisfaction float64 `json:"customer_satisfaction"`
	Inspection           float64 `json:"inspection"`
}

// DefaultCostAssumptions returns the industry-average unit costs the
// model ships with. Callers should customize for their process.
func DefaultCostAssumptions() CostAssumptions {
	return CostAssumptions{
		Scrap:                50,
		Rework:               30,
		Warranty:             100,
		CustomerSatisfaction: 200,
		Inspection:           5,
	}
}

// ProjectCosts are one-time implementation costs by line item.
type ProjectCosts map[string]float64

// DefaultProjectCosts returns typical DMAIC project cost estimates.
func DefaultProjectCosts() ProjectCosts {
	return ProjectCosts{
		"black_belt_time": 40000,
		"team_time":       20000,
		"training":        5000,
		"equipment_tools": 10000,
		"consulting":      0,
		"implementation":  15000,
	}
}

// Total sums all line items.
func (p ProjectCosts) Total() float64 {
	total := 0.0
	for _, cost := range p {
		total += cost
	}
	return total
}

// PaybackSentinelMonths signals "no payback within the modeled horizon"
// when annual savings are zero or negative.
const PaybackSentinelMonths = 999

// FinancialResult is the cost-benefit evaluation of a defect-reduction
// project.
type FinancialResult struct {
	CurrentDefectsPerYear  float64 `json:"current_defects_per_year"`
	ImprovedDefectsPerYear float64 `json:"improved_defects_per_year"`
	DefectsAvoided         float64 `json:"defects_avoided"`

	ScrapSavings       float64 `json:"scrap_savings"`
	ReworkSavings      float64 `json:"rework_savings"`
	WarrantySavings    float64 `json:"warranty_savings"`
	TotalAnnualSavings float64 `json:"total_annual_savings"`

	TotalInvestment float64 `json:"total_investment"`
	ROIPct          float64 `json:"roi_pct"`
	PaybackMonths   float64 `json:"payback_months"`
	NPV5Yr          float64 `json:"npv_5yr"`

	Rating FinancialRating `json:"rating"`
}

// AnalysisSnapshot is the full result of one analysis run over a single
// column. Immutable once computed; persistence is an explicit caller
// concern, the engine never retains one.
type AnalysisSnapshot struct {
	ID        core.SnapshotID `json:"id"`
	Dataset   string          `json:"dataset,omitempty"`
	Column    string          `json:"column"`
	CreatedAt time.Time       `json:"created_at"`

	Spec       *SpecLimits      `json:"spec,omitempty"`
	Capability *CapabilityResult `json:"capability,omitempty"`
	Normality  *NormalityResult  `json:"normality,omitempty"`
	Control    *ControlAnalysis  `json:"control,omitempty"`
	Scenario   *Scenario         `json:"scenario,omitempty"`
	Financial  *FinancialResult  `json:"financial,omitempty"`
}
