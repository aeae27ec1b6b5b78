// Package assumption defines the immutable input record for one LBO model run.
// Assumptions are plain scalars passed by value into the projection and
// valuation cores; there is no hidden state behind them.
package assumption

import (
	"fmt"
)

// CashPolicy controls what happens to free cash flow left over after the
// mandatory debt sweep.
type CashPolicy string

const (
	// CashRetain accumulates post-sweep cash on the balance sheet until exit,
	// where it nets against remaining debt. Intermediate equity flows are
	// zero. This is the default.
	CashRetain CashPolicy = "retain"

	// CashDistribute pays post-sweep cash out to equity holders each year.
	// The ending cash balance stays at zero (shortfall years excepted).
	CashDistribute CashPolicy = "distribute"
)

// Assumptions is the full set of entry parameters for a single calculation.
// Rates are decimals (0.08 = 8%). Money fields share one arbitrary unit
// (typically $M); the model is scale-invariant.
type Assumptions struct {
	EntryEBITDA  float64 `json:"entry_ebitda"`
	EBITDACAGR   float64 `json:"ebitda_cagr"` // May be negative (decline scenario)
	EntryTEV     float64 `json:"entry_tev"`
	ExitMultiple float64 `json:"exit_multiple"`
	EntryDebt    float64 `json:"entry_debt"`
	TaxRate      float64 `json:"tax_rate"`
	InterestRate float64 `json:"interest_rate"` // Simple annual, on beginning balance
	CapexPct     float64 `json:"capex_pct"`     // Capex as % of same-year EBITDA
	Years        int     `json:"years"`         // Projection horizon; 0 means default

	// Optional revenue path, carried for display only. Zero EntryRevenue
	// means "not provided" and the revenue column is omitted downstream.
	EntryRevenue float64 `json:"entry_revenue,omitempty"`
	RevenueCAGR  float64 `json:"revenue_cagr,omitempty"`

	// Policy selects the treatment of post-sweep cash. Empty means CashRetain.
	Policy CashPolicy `json:"cash_policy,omitempty"`
}

// DefaultYears is the standard holding period when none is given.
const DefaultYears = 5

// WithDefaults returns a copy with the horizon and policy defaulted.
func (a Assumptions) WithDefaults() Assumptions {
	if a.Years == 0 {
		a.Years = DefaultYears
	}
	if a.Policy == "" {
		a.Policy = CashRetain
	}
	return a
}

// EntryMultiple returns EntryTEV / EntryEBITDA (the implied entry multiple).
func (a Assumptions) EntryMultiple() float64 {
	if a.EntryEBITDA == 0 {
		return 0
	}
	return a.EntryTEV / a.EntryEBITDA
}

// EntryEquity is the sponsor's check at close: TEV minus debt raised.
// It can be zero or negative for degenerate inputs; the IRR layer reports
// "no solution" in that case rather than rejecting here.
func (a Assumptions) EntryEquity() float64 {
	return a.EntryTEV - a.EntryDebt
}

// Validate rejects inputs the projection cannot meaningfully run on.
// Degenerate-but-computable inputs (e.g. EntryDebt >= EntryTEV) pass; they
// surface later as an absent IRR, not an input error.
func (a Assumptions) Validate() error {
	if a.EntryEBITDA <= 0 {
		return fmt.Errorf("entry EBITDA must be positive, got %g", a.EntryEBITDA)
	}
	if a.Years < 0 {
		return fmt.Errorf("projection horizon cannot be negative, got %d", a.Years)
	}
	if a.ExitMultiple < 0 {
		return fmt.Errorf("exit multiple cannot be negative, got %g", a.ExitMultiple)
	}
	if a.EntryDebt < 0 {
		return fmt.Errorf("entry debt cannot be negative, got %g", a.EntryDebt)
	}
	if a.EntryTEV <= 0 {
		return fmt.Errorf("entry TEV must be positive, got %g", a.EntryTEV)
	}
	switch a.Policy {
	case "", CashRetain, CashDistribute:
	default:
		return fmt.Errorf("unknown cash policy %q", a.Policy)
	}
	return nil
}

// Unlevered returns the all-equity counterfactual of the same deal:
// identical operating assumptions, zero entry debt.
func (a Assumptions) Unlevered() Assumptions {
	a.EntryDebt = 0
	return a
}
