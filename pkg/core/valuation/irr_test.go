package valuation

import (
	"math"
	"testing"
)

func TestIRRSinglePeriod(t *testing.T) {
	// -100 now, 110 in a year: exactly 10%.
	r, ok := IRR([]float64{-100, 110})
	if !ok {
		t.Fatal("Expected a solution")
	}
	if math.Abs(r-0.10) > 1e-8 {
		t.Errorf("Expected 0.10, got %f", r)
	}
}

func TestIRRMultiPeriod(t *testing.T) {
	// -100 now, 121 in two years: (121/100)^(1/2) - 1 = 10%.
	r, ok := IRR([]float64{-100, 0, 121})
	if !ok {
		t.Fatal("Expected a solution")
	}
	if math.Abs(r-0.10) > 1e-8 {
		t.Errorf("Expected 0.10, got %f", r)
	}

	// Five-year double: IRR = 2^(1/5) - 1 ~ 14.87%.
	r, ok = IRR([]float64{-100, 0, 0, 0, 0, 200})
	if !ok {
		t.Fatal("Expected a solution")
	}
	want := math.Pow(2, 0.2) - 1
	if math.Abs(r-want) > 1e-8 {
		t.Errorf("Expected %f, got %f", want, r)
	}
}

func TestIRRNegativeRate(t *testing.T) {
	// Losing deal: -100 in, 50 out after two years. IRR = sqrt(0.5) - 1 < 0.
	r, ok := IRR([]float64{-100, 0, 50})
	if !ok {
		t.Fatal("Expected a solution")
	}
	want := math.Sqrt(0.5) - 1
	if math.Abs(r-want) > 1e-8 {
		t.Errorf("Expected %f, got %f", want, r)
	}
}

func TestIRRIntermediateFlows(t *testing.T) {
	// -100 + 230/(1+r) - 132/(1+r)^2 has roots at r = 0.10 and r = 0.20.
	// Either is a valid IRR; the solver must return one of them, and the
	// returned rate must actually zero the NPV.
	flows := []float64{-100, 230, -132}
	r, ok := IRR(flows)
	if !ok {
		t.Fatal("Expected a solution")
	}
	if math.Abs(NPV(r, flows)) > 1e-8 {
		t.Errorf("Returned rate %f does not zero the NPV (%g)", r, NPV(r, flows))
	}
}

func TestIRRNoSignChange(t *testing.T) {
	cases := [][]float64{
		{100, 50, 25},    // all positive
		{-100, -50, -25}, // all negative
		{0, 0, 0},        // degenerate
		{200, 0, 0, 0, 0, 2500}, // negative entry equity flipped positive
	}
	for _, flows := range cases {
		if r, ok := IRR(flows); ok {
			t.Errorf("Flows %v have no sign change but solver returned %f", flows, r)
		}
	}
}

func TestIRRAbsenceIsNotZeroConflation(t *testing.T) {
	// A genuine zero IRR must come back as (0, true), distinct from absence.
	r, ok := IRR([]float64{-100, 0, 100})
	if !ok {
		t.Fatal("Expected a true-zero solution")
	}
	if math.Abs(r) > 1e-8 {
		t.Errorf("Expected 0.0, got %f", r)
	}
}

func TestNPV(t *testing.T) {
	// At 10%: -100 + 110/1.1 = 0.
	if npv := NPV(0.10, []float64{-100, 110}); math.Abs(npv) > 1e-9 {
		t.Errorf("Expected zero NPV, got %f", npv)
	}
	// At 0%: plain sum.
	if npv := NPV(0, []float64{-100, 60, 60}); math.Abs(npv-20) > 1e-9 {
		t.Errorf("Expected 20, got %f", npv)
	}
}
