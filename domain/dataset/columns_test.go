package dataset

import (
	"math"
	"testing"
)

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		name       string
		role       ColumnRole
		confidence float64
	}{
		{"date", RoleDate, 0.95},
		{"inspection_date", RoleDate, 0.8},
		{"defects", RoleDefect, 0.8},
		{"defect_count", RoleDefect, 0.8},
		{"num_rejects", RoleDefect, 0.6},
		{"bad_parts", RoleDefect, 0.8},
		{"NG_flag", RoleDefect, 0.8},
		{"opportunities", RoleOpportunity, 0.8},
		{"sample_size", RoleOpportunity, 0.8},
		{"units_inspected", RoleOpportunity, 0.8},
		{"total", RoleOpportunity, 0.95},
		{"diameter_mm", RoleUnknown, 0.0},
	}

	for _, tt := range tests {
		got := ClassifyColumn(tt.name)
		if got.Role != tt.role {
			t.Errorf("ClassifyColumn(%q).Role = %s, want %s", tt.name, got.Role, tt.role)
		}
		if got.Confidence != tt.confidence {
			t.Errorf("ClassifyColumn(%q).Confidence = %v, want %v", tt.name, got.Confidence, tt.confidence)
		}
	}
}

// Date keywords take priority: a failure date is a date column, not a
// defect column.
func TestClassifyColumn_DatePriority(t *testing.T) {
	got := ClassifyColumn("failure_date")
	if got.Role != RoleDate {
		t.Errorf("failure_date classified %s, want %s", got.Role, RoleDate)
	}
}

func TestClassifyColumn_CaseInsensitive(t *testing.T) {
	got := ClassifyColumn("DEFECT_COUNT")
	if got.Role != RoleDefect {
		t.Errorf("DEFECT_COUNT classified %s, want %s", got.Role, RoleDefect)
	}
}

func TestClassifyColumn_ExactMatchConfidence(t *testing.T) {
	exact := ClassifyColumn("defect")
	prefixed := ClassifyColumn("defect_count")
	substring := ClassifyColumn("total_defect_rate")

	if exact.Confidence != 0.95 {
		t.Errorf("exact match confidence = %v, want 0.95", exact.Confidence)
	}
	if prefixed.Confidence != 0.8 {
		t.Errorf("prefix match confidence = %v, want 0.8", prefixed.Confidence)
	}
	// Defect keywords are checked before opportunity, so the embedded
	// "defect" wins over the leading "total".
	if substring.Role != RoleDefect {
		t.Errorf("total_defect_rate classified %s", substring.Role)
	}
	if substring.Confidence != 0.6 {
		t.Errorf("substring match confidence = %v, want 0.6", substring.Confidence)
	}
}

func TestPromoteMeasurements(t *testing.T) {
	guesses := ClassifyColumns([]string{"diameter", "operator", "defects"})
	numeric := map[string]bool{"diameter": true, "defects": true}

	promoted := PromoteMeasurements(guesses, numeric)

	byName := map[string]ColumnRoleGuess{}
	for _, g := range promoted {
		byName[g.Name] = g
	}

	if byName["diameter"].Role != RoleMeasurement {
		t.Errorf("diameter role = %s, want measurement", byName["diameter"].Role)
	}
	if byName["diameter"].Confidence != 0.5 {
		t.Errorf("promoted confidence = %v, want 0.5", byName["diameter"].Confidence)
	}
	// Text columns stay unknown; keyword matches are not downgraded.
	if byName["operator"].Role != RoleUnknown {
		t.Errorf("operator role = %s, want unknown", byName["operator"].Role)
	}
	if byName["defects"].Role != RoleDefect {
		t.Errorf("defects role = %s, want defect", byName["defects"].Role)
	}

	// Input slice is untouched.
	if guesses[0].Role != RoleUnknown {
		t.Error("PromoteMeasurements mutated its input")
	}
}

func TestTableNumericColumn_FiltersNaN(t *testing.T) {
	table := NewTable("t")
	table.Columns = []string{"x"}
	table.Numeric["x"] = []float64{1.0, math.NaN(), 3.0}

	values, err := table.NumericColumn("x")
	if err != nil {
		t.Fatalf("NumericColumn() error = %v", err)
	}
	if len(values) != 2 || values[0] != 1.0 || values[1] != 3.0 {
		t.Errorf("NumericColumn() = %v, want [1 3]", values)
	}
}

func TestTableNumericColumn_Missing(t *testing.T) {
	table := NewTable("t")
	if _, err := table.NumericColumn("absent"); err == nil {
		t.Error("expected error for missing column")
	}
}
