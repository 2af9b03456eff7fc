package dataset

import "strings"

// ColumnRole classifies what a column likely holds, guessed from its
// name alone. The guess never touches the numeric core; callers decide
// whether to trust it or ask the user.
type ColumnRole string

const (
	RoleDate        ColumnRole = "date"
	RoleDefect      ColumnRole = "defect"
	RoleOpportunity ColumnRole = "opportunity"
	RoleMeasurement ColumnRole = "measurement"
	RoleUnknown     ColumnRole = "unknown"
)

// ColumnRoleGuess is one classified column with the keyword that
// matched and a confidence score.
type ColumnRoleGuess struct {
	Name       string     `json:"name"`
	Role       ColumnRole `json:"role"`
	Keyword    string     `json:"matched_keyword,omitempty"`
	Confidence float64    `json:"confidence"`
}

// Keyword tables, checked in priority order. Date wins over defect so
// that "failure_date" classifies as a date column.
var roleKeywords = []struct {
	role     ColumnRole
	keywords []string
}{
	{RoleDate, []string{"date", "time", "day", "month", "year"}},
	{RoleDefect, []string{"defect", "bad", "ng", "fail", "rework", "reject", "error"}},
	{RoleOpportunity, []string{"opportunity", "opportun", "sample", "unit", "total"}},
}

// ClassifyColumn guesses the role of a single column name.
func ClassifyColumn(name string) ColumnRoleGuess {
	lower := strings.ToLower(name)

	for _, entry := range roleKeywords {
		for _, kw := range entry.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			confidence := 0.6
			if lower == kw {
				confidence = 0.95
			} else if strings.HasPrefix(lower, kw) || strings.HasSuffix(lower, kw) {
				confidence = 0.8
			}
			return ColumnRoleGuess{Name: name, Role: entry.role, Keyword: kw, Confidence: confidence}
		}
	}

	return ColumnRoleGuess{Name: name, Role: RoleUnknown, Confidence: 0}
}

// ClassifyColumns classifies every column name. Columns that match no
// keyword table come back RoleUnknown; a caller holding the numeric
// data may promote those to RoleMeasurement.
func ClassifyColumns(names []string) []ColumnRoleGuess {
	guesses := make([]ColumnRoleGuess, len(names))
	for i, name := range names {
		guesses[i] = ClassifyColumn(name)
	}
	return guesses
}

// PromoteMeasurements upgrades unknown columns to measurement when the
// caller knows they parsed as numeric.
func PromoteMeasurements(guesses []ColumnRoleGuess, numeric map[string]bool) []ColumnRoleGuess {
	out := make([]ColumnRoleGuess, len(guesses))
	copy(out, guesses)
	for i, g := range out {
		if g.Role == RoleUnknown && numeric[g.Name] {
			out[i].Role = RoleMeasurement
			out[i].Confidence = 0.5
		}
	}
	return out
}
