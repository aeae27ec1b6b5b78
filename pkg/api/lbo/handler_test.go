package lbo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lbo_model/pkg/core/projection"
)

func TestHandleRunBaseCase(t *testing.T) {
	body := `{
		"entry_ebitda": 100,
		"ebitda_cagr": 0.10,
		"entry_tev": 2000,
		"exit_multiple": 19,
		"entry_debt": 800,
		"tax_rate": 0.25,
		"interest_rate": 0.08,
		"capex_pct": 0.10,
		"years": 5
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/lbo/run", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RunResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("Missing request ID")
	}
	if resp.Schedule == nil || len(resp.Schedule.Years) != 6 {
		t.Fatalf("Expected 6-row schedule, got %+v", resp.Schedule)
	}
	if resp.Summary == nil || resp.Summary.LeveredIRR == nil {
		t.Fatal("Expected solved levered IRR")
	}
	if *resp.Summary.LeveredIRR <= *resp.Summary.UnleveredIRR {
		t.Error("Base case should show positive leverage impact")
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", resp.Warnings)
	}
}

func TestHandleRunLenientPayload(t *testing.T) {
	// Hjson-style payload with comments; the handler accepts it.
	body := `{
		# quick what-if
		entry_ebitda: 100
		entry_tev: 2000
		exit_multiple: 19
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/lbo/run", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleRunInvalidAssumptions(t *testing.T) {
	body := `{"entry_ebitda": -5, "entry_tev": 2000}`
	req := httptest.NewRequest(http.MethodPost, "/api/lbo/run", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}

func TestHandleRunNoIRRWarning(t *testing.T) {
	// Debt above TEV with real interest drag: entry equity is negative and
	// every later flow is non-negative, so the IRR has no solution.
	body := `{
		"entry_ebitda": 100,
		"ebitda_cagr": 0.10,
		"entry_tev": 2000,
		"exit_multiple": 19,
		"entry_debt": 2500,
		"tax_rate": 0.25,
		"interest_rate": 0.08,
		"capex_pct": 0.10,
		"years": 5
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/lbo/run", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp RunResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if resp.Summary.LeveredIRR != nil {
		t.Error("Expected null levered IRR")
	}
	if len(resp.Warnings) == 0 {
		t.Error("Expected a no-solution warning")
	}
}

func TestHandleRunTraceSink(t *testing.T) {
	var buf bytes.Buffer
	InitHandler(projection.WriterSink{W: &buf})
	defer InitHandler(nil)

	body := `{"entry_ebitda": 100, "entry_tev": 2000, "exit_multiple": 19, "years": 3}`
	req := httptest.NewRequest(http.MethodPost, "/api/lbo/run", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	trace := buf.String()
	if strings.Count(trace, "[PROJECT]") != 3 {
		t.Errorf("Expected one trace line per projected year, got:\n%s", trace)
	}
}

func TestHandleRunPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/lbo/run", nil)
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Missing CORS header, got %q", got)
	}
}

func TestHandleRunRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/lbo/run", nil)
	w := httptest.NewRecorder()
	HandleRun(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}
