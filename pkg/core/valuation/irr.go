// Package valuation implements the return analysis layer: the IRR solver and
// the decomposition of levered returns into growth, multiple, yield and
// leverage contributions.
package valuation

import (
	"math"
)

const (
	irrSeed       = 0.10 // Starting guess: a conventional PE underwriting rate
	irrTolerance  = 1e-10
	newtonMaxIter = 100
	bisectMaxIter = 200
	bisectLow     = -0.9999
	bisectHigh    = 10.0
)

// NPV discounts a cash flow series at the given rate. flows[0] is at time 0.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for y, f := range flows {
		npv += f / math.Pow(1+rate, float64(y))
	}
	return npv
}

// npvDerivative is d(NPV)/d(rate), used by the Newton step.
func npvDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for y, f := range flows {
		if y == 0 {
			continue
		}
		d -= float64(y) * f / math.Pow(1+rate, float64(y+1))
	}
	return d
}

// IRR finds the rate r with NPV(r) = 0 for the given flow vector.
//
// Absence is a value, not an exception: if the flows have no sign change the
// IRR is mathematically undefined and the second return is false. Same if the
// solver exhausts its iteration budget. Newton-Raphson runs first; if it
// stalls or leaves the valid domain (r <= -1), bisection takes over on a
// bounded rate range.
func IRR(flows []float64) (float64, bool) {
	if !hasSignChange(flows) {
		return 0, false
	}

	// Newton-Raphson
	r := irrSeed
	for i := 0; i < newtonMaxIter; i++ {
		npv := NPV(r, flows)
		if math.Abs(npv) < irrTolerance {
			return r, true
		}
		deriv := npvDerivative(r, flows)
		if deriv == 0 || math.IsNaN(deriv) || math.IsInf(deriv, 0) {
			break
		}
		next := r - npv/deriv
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		if math.Abs(next-r) < irrTolerance {
			return next, true
		}
		r = next
	}

	return bisectIRR(flows)
}

// bisectIRR brackets a root on [bisectLow, bisectHigh] and halves in.
func bisectIRR(flows []float64) (float64, bool) {
	lo, hi := bisectLow, bisectHigh
	fLo, fHi := NPV(lo, flows), NPV(hi, flows)

	if fLo*fHi > 0 {
		// Endpoints agree in sign; scan for an interior bracket.
		const steps = 100
		found := false
		prev := lo
		fPrev := fLo
		for i := 1; i <= steps; i++ {
			x := lo + (hi-lo)*float64(i)/steps
			fx := NPV(x, flows)
			if fPrev*fx <= 0 {
				lo, hi, fLo = prev, x, fPrev
				found = true
				break
			}
			prev, fPrev = x, fx
		}
		if !found {
			return 0, false
		}
	}

	for i := 0; i < bisectMaxIter; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return 0, false
}

func hasSignChange(flows []float64) bool {
	hasPos, hasNeg := false, false
	for _, f := range flows {
		if f > 0 {
			hasPos = true
		}
		if f < 0 {
			hasNeg = true
		}
	}
	return hasPos && hasNeg
}
