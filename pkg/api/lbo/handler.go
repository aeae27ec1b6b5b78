// Package lbo exposes the LBO model over HTTP for the frontend.
package lbo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"lbo_model/pkg/core/assumption"
	"lbo_model/pkg/core/projection"
	"lbo_model/pkg/core/validate"
	"lbo_model/pkg/core/valuation"
)

var engine = projection.NewEngine()

// InitHandler configures the projection trace sink for the run endpoint.
// Passing nil disables tracing (the default).
func InitHandler(trace projection.TraceSink) {
	if trace == nil {
		trace = projection.NopSink{}
	}
	engine = &projection.Engine{Trace: trace}
}

// RunResponse bundles everything the frontend needs to render one model run.
type RunResponse struct {
	RequestID string                   `json:"request_id"`
	Schedule  *projection.Schedule     `json:"schedule"`
	Summary   *valuation.ReturnSummary `json:"summary"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

// HandleRun computes a full projection + return analysis for the posted
// assumptions. Accepts lenient JSON (comments, trailing commas) since the
// payload is often hand-edited during scenario work.
func HandleRun(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID := uuid.New().String()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := assumption.Parse(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.Validate(); err != nil {
		fmt.Printf("[LBO] %s rejected: %v\n", reqID, err)
		http.Error(w, fmt.Sprintf("invalid assumptions: %v", err), http.StatusUnprocessableEntity)
		return
	}

	fmt.Printf("[LBO] %s run: EBITDA=%.1f TEV=%.1f Debt=%.1f years=%d policy=%s\n",
		reqID, a.EntryEBITDA, a.EntryTEV, a.EntryDebt, a.WithDefaults().Years, a.WithDefaults().Policy)

	sched, err := engine.Project(a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summary, err := valuation.Analyze(a, sched)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := RunResponse{
		RequestID: reqID,
		Schedule:  sched,
		Summary:   summary,
	}
	if sched.HasShortfall() {
		resp.Warnings = append(resp.Warnings, "one or more years ran a funding shortfall; cash balance went negative")
	}
	if summary.LeveredIRR == nil {
		resp.Warnings = append(resp.Warnings, "levered IRR has no solution for these flows")
	}
	for _, e := range validate.CheckSchedule(sched) {
		resp.Warnings = append(resp.Warnings, e.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
