// Package projection implements the LBO projection engine: the year-by-year
// debt/cash waterfall that turns entry assumptions into a full schedule.
package projection

import (
	"math"

	"lbo_model/pkg/core/assumption"
)

// Engine builds projection schedules. The zero value is ready to use; set
// Trace to observe per-year results as they are computed.
type Engine struct {
	Trace TraceSink
}

// NewEngine creates an engine with tracing disabled.
func NewEngine() *Engine {
	return &Engine{Trace: NopSink{}}
}

// Project runs the forward recurrence for the full horizon.
//
// Per year: capex is a fixed share of EBITDA, interest accrues on the
// beginning debt balance, taxes are floored at zero (losses carry no value
// here, so no refunds), and all positive free cash flow is swept into debt
// paydown before anything accumulates as cash. Debt amortizes at most to
// zero; there is no new issuance. A negative free cash flow year pays down
// nothing and drags the cash balance down instead, flagged as a shortfall.
func (e *Engine) Project(a assumption.Assumptions) (*Schedule, error) {
	a = a.WithDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	years := a.Years
	sched := &Schedule{Years: make([]YearRecord, 0, years+1)}

	// Year 0: balances only, no flows.
	year0 := YearRecord{
		Year:          0,
		Revenue:       a.EntryRevenue,
		EBITDA:        a.EntryEBITDA,
		BeginningDebt: a.EntryDebt,
		EndingDebt:    a.EntryDebt,
	}
	sched.Years = append(sched.Years, year0)

	debt := a.EntryDebt
	cash := 0.0

	for y := 1; y <= years; y++ {
		ebitda := a.EntryEBITDA * math.Pow(1+a.EBITDACAGR, float64(y))

		revenue := 0.0
		if a.EntryRevenue > 0 {
			revenue = a.EntryRevenue * math.Pow(1+a.RevenueCAGR, float64(y))
		}

		capex := ebitda * a.CapexPct
		interest := debt * a.InterestRate

		// D&A is assumed equal to capex, so EBIT already carries the full
		// capital charge and FCF equals net income.
		ebit := ebitda - capex
		ebt := ebit - interest

		taxes := ebt * a.TaxRate
		if taxes < 0 {
			taxes = 0
		}

		netIncome := ebt - taxes
		fcf := netIncome

		// Sweep: all positive FCF goes to debt first, capped at the balance.
		available := fcf
		if available < 0 {
			available = 0
		}
		paydown := math.Min(available, debt)

		endingDebt := debt - paydown
		remaining := fcf - paydown

		distribution := 0.0
		if a.Policy == assumption.CashDistribute && remaining > 0 {
			distribution = remaining
			remaining = 0
		}

		rec := YearRecord{
			Year:          y,
			Revenue:       revenue,
			EBITDA:        ebitda,
			Capex:         capex,
			EBIT:          ebit,
			Interest:      interest,
			EBT:           ebt,
			Taxes:         taxes,
			NetIncome:     netIncome,
			FreeCashFlow:  fcf,
			BeginningDebt: debt,
			DebtPaydown:   paydown,
			EndingDebt:    endingDebt,
			BeginningCash: cash,
			CashGenerated: remaining,
			EndingCash:    cash + remaining,
			Distribution:  distribution,
			Shortfall:     fcf < 0,
		}
		sched.Years = append(sched.Years, rec)

		if e.Trace != nil {
			e.Trace.YearProjected(rec)
		}

		debt = endingDebt
		cash = rec.EndingCash
	}

	sched.ExitEBITDA = sched.Final().EBITDA
	sched.ExitTEV = sched.ExitEBITDA * a.ExitMultiple
	return sched, nil
}

// Project is the package-level convenience form with tracing disabled.
func Project(a assumption.Assumptions) (*Schedule, error) {
	return NewEngine().Project(a)
}
