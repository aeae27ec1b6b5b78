package projection

// YearRecord is one row of the projection: income statement, debt waterfall
// and cash rollforward for a single year. Year 0 is the initialization row
// (no flows, balances at entry values).
type YearRecord struct {
	Year int `json:"year"`

	// Income statement
	Revenue      float64 `json:"revenue,omitempty"` // Zero when no revenue path was given
	EBITDA       float64 `json:"ebitda"`
	Capex        float64 `json:"capex"`
	EBIT         float64 `json:"ebit"`
	Interest     float64 `json:"interest"`
	EBT          float64 `json:"ebt"`
	Taxes        float64 `json:"taxes"`
	NetIncome    float64 `json:"net_income"`
	FreeCashFlow float64 `json:"free_cash_flow"`

	// Debt waterfall
	BeginningDebt float64 `json:"beginning_debt"`
	DebtPaydown   float64 `json:"debt_paydown"`
	EndingDebt    float64 `json:"ending_debt"`

	// Cash rollforward
	BeginningCash float64 `json:"beginning_cash"`
	CashGenerated float64 `json:"cash_generated"` // Post-sweep remainder kept on balance sheet
	EndingCash    float64 `json:"ending_cash"`

	// Distribution is the amount paid to equity this year (CashDistribute
	// policy only; always zero under CashRetain).
	Distribution float64 `json:"distribution,omitempty"`

	// Shortfall marks a year whose free cash flow was negative. The deficit
	// is carried in the cash balance (which may go negative) rather than
	// silently clamped.
	Shortfall bool `json:"shortfall,omitempty"`
}

// Schedule is the full projection output: N+1 year records plus the exit
// valuation. It is produced by one Engine run and never mutated afterwards.
type Schedule struct {
	Years      []YearRecord `json:"years"`
	ExitEBITDA float64      `json:"exit_ebitda"`
	ExitTEV    float64      `json:"exit_tev"`
}

// Horizon returns the number of projected years (excluding year 0).
func (s *Schedule) Horizon() int {
	return len(s.Years) - 1
}

// Final returns the last year record.
func (s *Schedule) Final() YearRecord {
	return s.Years[len(s.Years)-1]
}

// HasShortfall reports whether any projected year ran a cash deficit.
func (s *Schedule) HasShortfall() bool {
	for _, yr := range s.Years {
		if yr.Shortfall {
			return true
		}
	}
	return false
}
