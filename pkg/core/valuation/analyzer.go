package valuation

import (
	"fmt"
	"math"

	"lbo_model/pkg/core/assumption"
	"lbo_model/pkg/core/projection"
)

// DecompositionResult splits the levered IRR into its sources. All rates are
// annualized over the holding period.
//
// Identity: LeveredIRR = TEVGrowth + Yield + Covariance + LeverageImpact.
// Covariance is the residual between the additive approximation and the true
// unlevered IRR, so the identity holds exactly by construction.
type DecompositionResult struct {
	EBITDAGrowth   float64 `json:"ebitda_growth"`
	MultipleChange float64 `json:"multiple_change"`
	TEVGrowth      float64 `json:"tev_growth"` // (1+g_ebitda)*(1+g_mult) - 1
	Yield          float64 `json:"yield"`      // 1 / entry multiple
	Covariance     float64 `json:"covariance"`
	UnleveredIRR   float64 `json:"unlevered_irr"`
	LeverageImpact float64 `json:"leverage_impact"`
	LeveredIRR     float64 `json:"levered_irr"`
}

// Components returns the flat label -> rate view of the decomposition.
func (d DecompositionResult) Components() map[string]float64 {
	return map[string]float64{
		"ebitda_growth":   d.EBITDAGrowth,
		"multiple_change": d.MultipleChange,
		"tev_growth":      d.TEVGrowth,
		"yield":           d.Yield,
		"covariance":      d.Covariance,
		"unlevered_irr":   d.UnleveredIRR,
		"leverage_impact": d.LeverageImpact,
		"levered_irr":     d.LeveredIRR,
	}
}

// ReturnSummary is the analyzer output. IRRs are nil when the equity flow
// vector admits no solution (no sign change, or solver non-convergence);
// Decomposition is nil unless both IRR legs solved.
type ReturnSummary struct {
	EntryEquity   float64              `json:"entry_equity"`
	ExitEquity    float64              `json:"exit_equity"`
	LeveredIRR    *float64             `json:"levered_irr"`
	UnleveredIRR  *float64             `json:"unlevered_irr"`
	Decomposition *DecompositionResult `json:"decomposition,omitempty"`
	EquityFlows   []float64            `json:"equity_flows"`
}

// EquityFlows assembles the sponsor's cash flow vector from a schedule:
// -entryEquity at close, per-year distributions (zero under the retain
// policy), and exit equity added into the final year. Exit nets retained cash
// against remaining debt.
func EquityFlows(a assumption.Assumptions, sched *projection.Schedule) []float64 {
	a = a.WithDefaults()
	final := sched.Final()
	exitEquity := sched.ExitTEV - final.EndingDebt + final.EndingCash

	flows := make([]float64, len(sched.Years))
	flows[0] = -a.EntryEquity()
	for y := 1; y < len(sched.Years); y++ {
		flows[y] = sched.Years[y].Distribution
	}
	flows[len(flows)-1] += exitEquity
	return flows
}

// Analyze computes levered and unlevered IRR plus the decomposition for a
// schedule produced from the same assumptions.
//
// The unlevered leg re-runs the projection with zero entry debt and applies
// the identical exit convention, so a deal that already has no debt yields
// bit-identical levered and unlevered results.
func Analyze(a assumption.Assumptions, sched *projection.Schedule) (*ReturnSummary, error) {
	a = a.WithDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if sched.Horizon() != a.Years {
		return nil, fmt.Errorf("schedule horizon %d does not match assumptions horizon %d", sched.Horizon(), a.Years)
	}

	final := sched.Final()
	exitEquity := sched.ExitTEV - final.EndingDebt + final.EndingCash

	flows := EquityFlows(a, sched)
	summary := &ReturnSummary{
		EntryEquity: a.EntryEquity(),
		ExitEquity:  exitEquity,
		EquityFlows: flows,
	}

	if r, ok := IRR(flows); ok {
		summary.LeveredIRR = &r
	}

	// All-equity counterfactual: same operating model, no debt.
	ua := a.Unlevered()
	usched, err := projection.Project(ua)
	if err != nil {
		return nil, fmt.Errorf("unlevered projection: %w", err)
	}
	uflows := EquityFlows(ua, usched)
	if r, ok := IRR(uflows); ok {
		summary.UnleveredIRR = &r
	}

	if summary.LeveredIRR != nil && summary.UnleveredIRR != nil {
		d := decompose(a, sched, *summary.LeveredIRR, *summary.UnleveredIRR)
		summary.Decomposition = &d
	}
	return summary, nil
}

// Run is the one-call form: project then analyze.
func Run(a assumption.Assumptions) (*projection.Schedule, *ReturnSummary, error) {
	a = a.WithDefaults()
	sched, err := projection.Project(a)
	if err != nil {
		return nil, nil, err
	}
	summary, err := Analyze(a, sched)
	if err != nil {
		return nil, nil, err
	}
	return sched, summary, nil
}

func decompose(a assumption.Assumptions, sched *projection.Schedule, levered, unlevered float64) DecompositionResult {
	years := float64(a.Years)
	entryMultiple := a.EntryMultiple()

	ebitdaGrowth := math.Pow(sched.ExitEBITDA/a.EntryEBITDA, 1/years) - 1
	multipleChange := math.Pow(a.ExitMultiple/entryMultiple, 1/years) - 1
	tevGrowth := (1+ebitdaGrowth)*(1+multipleChange) - 1
	yield := 1 / entryMultiple

	covariance := unlevered - (tevGrowth + yield)
	leverageImpact := levered - unlevered

	return DecompositionResult{
		EBITDAGrowth:   ebitdaGrowth,
		MultipleChange: multipleChange,
		TEVGrowth:      tevGrowth,
		Yield:          yield,
		Covariance:     covariance,
		UnleveredIRR:   unlevered,
		LeverageImpact: leverageImpact,
		LeveredIRR:     levered,
	}
}
