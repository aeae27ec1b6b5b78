package main

import (
	"flag"
	"fmt"
	"os"

	"lbo_model/pkg/core/assumption"
	"lbo_model/pkg/core/projection"
	"lbo_model/pkg/core/validate"
	"lbo_model/pkg/core/valuation"
)

// Logger helper
func logStep(step string, details string) {
	fmt.Printf("\n[STEP] %s\n", step)
	fmt.Println("---------------------------------------------------------")
	fmt.Println(details)
	fmt.Println("---------------------------------------------------------")
}

func main() {
	scenarioPath := flag.String("scenario", "scenarios/base_case.hjson", "Path to scenario file (json or hjson)")
	trace := flag.Bool("trace", false, "Print per-year trace lines while projecting")
	flag.Parse()

	logStep("0. Initialization", "Starting LBO Model Demo...")

	// =========================================================================
	// STEP 1: LOAD SCENARIO
	// =========================================================================
	a, err := assumption.LoadFile(*scenarioPath)
	if err != nil {
		fmt.Printf("Error loading scenario from %s: %v\n", *scenarioPath, err)
		os.Exit(1)
	}
	if err := a.Validate(); err != nil {
		fmt.Printf("Invalid scenario: %v\n", err)
		os.Exit(1)
	}
	a = a.WithDefaults()

	logStep("1. Scenario Loaded", fmt.Sprintf(
		"EBITDA %.1f (CAGR %.1f%%) | TEV %.1f (%.1fx) | Debt %.1f | Exit %.1fx | %d years | policy=%s",
		a.EntryEBITDA, a.EBITDACAGR*100, a.EntryTEV, a.EntryMultiple(), a.EntryDebt, a.ExitMultiple, a.Years, a.Policy))

	// =========================================================================
	// STEP 2: PROJECTION
	// =========================================================================
	engine := projection.NewEngine()
	if *trace {
		engine.Trace = projection.WriterSink{W: os.Stdout}
	}
	sched, err := engine.Project(a)
	if err != nil {
		fmt.Printf("Projection failed: %v\n", err)
		os.Exit(1)
	}

	logStep("2. Debt Schedule", "Year-by-year waterfall:")
	printSchedule(sched, a)

	if errs := validate.CheckSchedule(sched); len(errs) > 0 {
		fmt.Println("[WARNING] Schedule invariant violations:")
		for _, e := range errs {
			fmt.Printf("  - %v\n", e)
		}
	}

	// =========================================================================
	// STEP 3: RETURN ANALYSIS
	// =========================================================================
	summary, err := valuation.Analyze(a, sched)
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	logStep("3. Returns", "Equity flows and IRR decomposition:")
	printSummary(sched, summary)
}

func printSchedule(s *projection.Schedule, a assumption.Assumptions) {
	hasRev := a.EntryRevenue > 0

	if hasRev {
		fmt.Printf("%4s %10s %10s %9s %9s %9s %9s %10s %10s %10s\n",
			"Year", "Revenue", "EBITDA", "Capex", "Interest", "Taxes", "FCF", "Paydown", "Debt", "Cash")
	} else {
		fmt.Printf("%4s %10s %9s %9s %9s %9s %10s %10s %10s\n",
			"Year", "EBITDA", "Capex", "Interest", "Taxes", "FCF", "Paydown", "Debt", "Cash")
	}
	for _, yr := range s.Years {
		mark := " "
		if yr.Shortfall {
			mark = "!"
		}
		if hasRev {
			fmt.Printf("%3d%s %10.1f %10.1f %9.1f %9.1f %9.1f %9.1f %10.1f %10.1f %10.1f\n",
				yr.Year, mark, yr.Revenue, yr.EBITDA, yr.Capex, yr.Interest, yr.Taxes, yr.FreeCashFlow, yr.DebtPaydown, yr.EndingDebt, yr.EndingCash)
		} else {
			fmt.Printf("%3d%s %10.1f %9.1f %9.1f %9.1f %9.1f %10.1f %10.1f %10.1f\n",
				yr.Year, mark, yr.EBITDA, yr.Capex, yr.Interest, yr.Taxes, yr.FreeCashFlow, yr.DebtPaydown, yr.EndingDebt, yr.EndingCash)
		}
	}
	fmt.Printf("\nExit EBITDA: %.1f   Exit TEV: %.1f\n", s.ExitEBITDA, s.ExitTEV)
}

func printSummary(sched *projection.Schedule, sum *valuation.ReturnSummary) {
	fmt.Printf("Entry Equity: %.1f   Exit Equity: %.1f\n\n", sum.EntryEquity, sum.ExitEquity)

	fmt.Print("Equity Flows: [")
	for i, f := range sum.EquityFlows {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%.1f", f)
	}
	fmt.Println("]")

	printRate := func(label string, r *float64) {
		if r == nil {
			fmt.Printf("%-18s %s\n", label, "no solution")
			return
		}
		fmt.Printf("%-18s %7.2f%%\n", label, *r*100)
	}
	printRate("Levered IRR:", sum.LeveredIRR)
	printRate("Unlevered IRR:", sum.UnleveredIRR)

	if sum.Decomposition == nil {
		return
	}
	d := sum.Decomposition
	fmt.Println("\nDecomposition (annualized):")
	fmt.Printf("  %-22s %7.2f%%\n", "EBITDA Growth", d.EBITDAGrowth*100)
	fmt.Printf("  %-22s %7.2f%%\n", "Multiple Change", d.MultipleChange*100)
	fmt.Printf("  %-22s %7.2f%%\n", "Implied TEV Growth", d.TEVGrowth*100)
	fmt.Printf("  %-22s %7.2f%%\n", "Yield", d.Yield*100)
	fmt.Printf("  %-22s %7.2f%%\n", "Covariance", d.Covariance*100)
	fmt.Printf("  %-22s %7.2f%%\n", "Leverage Impact", d.LeverageImpact*100)

	if err := validate.CheckDecomposition(d); err != nil {
		fmt.Printf("[WARNING] %v\n", err)
	}
}
