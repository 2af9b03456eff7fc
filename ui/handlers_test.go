package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"sixsigma/adapters/stats/engine"
	"sixsigma/app"
	"sixsigma/internal"
	"sixsigma/internal/testkit"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	eng := engine.NewQualityEngine()
	service := app.NewAnalysisService(eng, nil, 2, internal.NewLogger(internal.LogLevelError))
	return NewServer(eng, service, internal.NewLogger(internal.LogLevelError))
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func getPath(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleCapability(t *testing.T) {
	s := newTestServer()
	kit := testkit.NewTestKit()

	rec := postJSON(t, s, "/api/capability", map[string]interface{}{
		"sample":     kit.NormalProcess(500, 10.0, 0.4, 99),
		"lower_spec": 8.5,
		"upper_spec": 11.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Capability map[string]interface{} `json:"capability"`
		SigmaInt   map[string]interface{} `json:"sigma_interpretation"`
		CpkRating  map[string]interface{} `json:"cpk_rating"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, key := range []string{"cp", "cpk", "dpmo", "sigma_level"} {
		if _, ok := result.Capability[key]; !ok {
			t.Errorf("capability missing %q", key)
		}
	}
	if result.SigmaInt["level"] == nil {
		t.Error("response missing sigma interpretation band")
	}
	if result.CpkRating["rating"] == nil {
		t.Error("response missing cpk rating band")
	}
}

func TestHandleCapability_InsufficientData(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/capability", map[string]interface{}{
		"sample":     []float64{1.0},
		"lower_spec": 0.0,
		"upper_spec": 2.0,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCapability_MissingSample(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/capability", map[string]interface{}{
		"lower_spec": 0.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleWhatIf_TargetBelowCurrent(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/whatif", map[string]interface{}{
		"current_sigma": 4.0,
		"current_dpmo":  6210.0,
		"target_sigma":  3.0,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleFinancial_Defaults(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/financial", map[string]interface{}{
		"current_dpmo":  66807.0,
		"target_dpmo":   6210.0,
		"annual_volume": 100000.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result["total_investment"].(float64) != 90000 {
		t.Errorf("total_investment = %v, want default 90000", result["total_investment"])
	}
}

func TestHandleConversionTable(t *testing.T) {
	s := newTestServer()

	rec := getPath(s, "/api/conversion-table")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var result struct {
		Rows []map[string]interface{} `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(result.Rows) != 51 {
		t.Errorf("table rows = %d, want 51", len(result.Rows))
	}
}

func TestHandleClassifyColumns(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/columns/classify", map[string]interface{}{
		"columns":         []string{"defect_count", "sample_size", "measurement_mm"},
		"numeric_columns": []string{"measurement_mm"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Columns []struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	roles := map[string]string{}
	for _, col := range result.Columns {
		roles[col.Name] = col.Role
	}
	if roles["defect_count"] != "defect" {
		t.Errorf("defect_count classified %q", roles["defect_count"])
	}
	if roles["sample_size"] != "opportunity" {
		t.Errorf("sample_size classified %q", roles["sample_size"])
	}
	if roles["measurement_mm"] != "measurement" {
		t.Errorf("measurement_mm classified %q", roles["measurement_mm"])
	}
}

func TestHandleGetSnapshot_NotFound(t *testing.T) {
	s := newTestServer()

	rec := getPath(s, fmt.Sprintf("/api/snapshots/%s", "0198a9a0-0000-7000-8000-000000000000"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body = %s", rec.Code, rec.Body.String())
	}
}
