// calc-engine is a one-shot calculation binary: assumptions JSON in via flag,
// results JSON out on stdout. Useful for wiring the model into non-Go hosts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"lbo_model/pkg/core/assumption"
	"lbo_model/pkg/core/validate"
	"lbo_model/pkg/core/valuation"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON assumptions payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	a, err := assumption.Parse([]byte(*dataStr))
	if err != nil {
		fmt.Printf("Error parsing assumptions: %v\n", err)
		os.Exit(1)
	}
	if err := a.Validate(); err != nil {
		fmt.Printf("Error: invalid assumptions: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "check":
		runChecks(a)
	case "calculate":
		runCalculations(a)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

// runChecks projects the schedule and verifies every structural invariant
// plus the decomposition identity.
func runChecks(a assumption.Assumptions) {
	sched, summary, err := valuation.Run(a)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, e := range validate.CheckSchedule(sched) {
		fmt.Printf("Error: %v\n", e)
		failed = true
	}
	if err := validate.CheckDecomposition(summary.Decomposition); err != nil {
		fmt.Printf("Error: %v\n", err)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
	fmt.Println("Success: schedule invariants and decomposition identity hold")
}

func runCalculations(a assumption.Assumptions) {
	sched, summary, err := valuation.Run(a)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	out := map[string]interface{}{
		"schedule": sched,
		"summary":  summary,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Printf("Error encoding result: %v\n", err)
		os.Exit(1)
	}
}
