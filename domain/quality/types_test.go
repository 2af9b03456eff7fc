package quality

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSpecLimits_InSpec(t *testing.T) {
	spec := NewSpecLimits(8.5, 11.5)

	// Boundary values count as in-spec.
	for _, v := range []float64{8.5, 10.0, 11.5} {
		if !spec.InSpec(v) {
			t.Errorf("InSpec(%v) = false, want true", v)
		}
	}
	for _, v := range []float64{8.49, 11.51} {
		if spec.InSpec(v) {
			t.Errorf("InSpec(%v) = true, want false", v)
		}
	}
}

func TestSpecLimits_OneSided(t *testing.T) {
	upper := 11.5
	spec := SpecLimits{Upper: &upper}

	if spec.TwoSided() {
		t.Error("upper-only spec should not report two-sided")
	}
	if !spec.InSpec(-1e9) {
		t.Error("missing lower limit should admit any low value")
	}
	if spec.InSpec(12.0) {
		t.Error("value above upper limit should be out of spec")
	}
	if !math.IsInf(spec.LowerBound(), -1) {
		t.Errorf("LowerBound() = %v, want -Inf", spec.LowerBound())
	}
}

// A zero-variance in-spec process carries +Inf indexes in Go but must
// still round-trip through JSON, where Inf is not representable.
func TestCapabilityResult_MarshalNonFinite(t *testing.T) {
	result := CapabilityResult{
		SampleSize:    10,
		Mean:          10.0,
		Cp:            math.Inf(1),
		Cpk:           math.Inf(1),
		Pp:            math.Inf(1),
		Ppk:           math.Inf(1),
		DPMO:          0,
		SigmaLevel:    6.0,
		YieldPct:      100,
		ZeroVariation: true,
	}

	out, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["cp"] != nil {
		t.Errorf("cp encoded as %v, want null", decoded["cp"])
	}
	if decoded["zero_variation"] != true {
		t.Error("zero_variation flag lost in encoding")
	}
	if decoded["sigma_level"].(float64) != 6.0 {
		t.Errorf("sigma_level = %v, want 6", decoded["sigma_level"])
	}
}

func TestDefaultProjectCosts_Total(t *testing.T) {
	if total := DefaultProjectCosts().Total(); total != 90000 {
		t.Errorf("default project costs total = %v, want 90000", total)
	}
}

func TestControlLimits_Sigma(t *testing.T) {
	limits := ControlLimits{CenterLine: 10, UCL: 13, LCL: 7}
	if got := limits.Sigma(); got != 1.0 {
		t.Errorf("Sigma() = %v, want 1", got)
	}
}
