// Package validate provides reusable integrity checks over projection
// schedules and return summaries. These functions can be called from tests,
// API handlers, or the calc-engine binary to verify a run before it is
// presented.
package validate

import (
	"fmt"
	"math"

	"lbo_model/pkg/core/projection"
	"lbo_model/pkg/core/valuation"
)

// Tolerance for floating-point identity checks (relative).
const Tolerance = 1e-6

// CheckSchedule verifies the structural invariants of a projection run:
// debt never increases or goes negative, balances chain across years, and
// the waterfall arithmetic is internally consistent. Returns all violations,
// not just the first.
func CheckSchedule(s *projection.Schedule) []error {
	var errs []error

	if len(s.Years) < 2 {
		return append(errs, fmt.Errorf("schedule has %d rows, need at least 2", len(s.Years)))
	}

	for i := 1; i < len(s.Years); i++ {
		yr := s.Years[i]
		prev := s.Years[i-1]

		if yr.EndingDebt < 0 {
			errs = append(errs, fmt.Errorf("year %d: ending debt is negative (%.6f)", yr.Year, yr.EndingDebt))
		}
		if yr.EndingDebt > yr.BeginningDebt+absTol(yr.BeginningDebt) {
			errs = append(errs, fmt.Errorf("year %d: debt increased from %.6f to %.6f", yr.Year, yr.BeginningDebt, yr.EndingDebt))
		}
		if !closeEnough(yr.BeginningDebt, prev.EndingDebt) {
			errs = append(errs, fmt.Errorf("year %d: beginning debt %.6f does not chain from prior ending debt %.6f", yr.Year, yr.BeginningDebt, prev.EndingDebt))
		}
		if !closeEnough(yr.BeginningCash, prev.EndingCash) {
			errs = append(errs, fmt.Errorf("year %d: beginning cash %.6f does not chain from prior ending cash %.6f", yr.Year, yr.BeginningCash, prev.EndingCash))
		}
		if !closeEnough(yr.EndingDebt, yr.BeginningDebt-yr.DebtPaydown) {
			errs = append(errs, fmt.Errorf("year %d: ending debt %.6f != beginning %.6f - paydown %.6f", yr.Year, yr.EndingDebt, yr.BeginningDebt, yr.DebtPaydown))
		}
		if yr.Shortfall && yr.FreeCashFlow >= 0 {
			errs = append(errs, fmt.Errorf("year %d: shortfall flagged with non-negative FCF %.6f", yr.Year, yr.FreeCashFlow))
		}
	}
	return errs
}

// CheckDecomposition verifies the additive identity
// levered = tevGrowth + yield + covariance + leverageImpact.
func CheckDecomposition(d *valuation.DecompositionResult) error {
	if d == nil {
		return nil // Nothing to check when the IRRs did not solve
	}
	sum := d.TEVGrowth + d.Yield + d.Covariance + d.LeverageImpact
	if !closeEnough(sum, d.LeveredIRR) {
		return fmt.Errorf("decomposition identity broken: components sum to %.9f, levered IRR is %.9f", sum, d.LeveredIRR)
	}
	return nil
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= absTol(math.Max(math.Abs(a), math.Abs(b)))
}

func absTol(scale float64) float64 {
	if scale < 1 {
		scale = 1
	}
	return Tolerance * scale
}
