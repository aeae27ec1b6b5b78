package assumption

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Scenario files are human-written, so parsing is deliberately lenient:
// strict JSON first, then automatic repair of common mistakes (trailing
// commas, single quotes), then Hjson as the most forgiving format.

// Parse decodes a scenario payload into Assumptions, trying strategies in
// order of strictness. The returned Assumptions have defaults applied but are
// NOT validated; callers decide when to call Validate.
func Parse(input []byte) (Assumptions, error) {
	var a Assumptions

	// Hjson happily decodes empty input into a zero value, so an empty
	// payload would otherwise sail through the whole fallback chain.
	if len(bytes.TrimSpace(input)) == 0 {
		return Assumptions{}, fmt.Errorf("scenario parse failed: empty input")
	}

	// Try 1: Standard JSON
	if err := json.Unmarshal(input, &a); err == nil {
		return a.WithDefaults(), nil
	}

	// Try 2: JSON repair
	if repaired, err := jsonrepair.RepairJSON(string(input)); err == nil {
		a = Assumptions{}
		if err := json.Unmarshal([]byte(repaired), &a); err == nil {
			return a.WithDefaults(), nil
		}
	}

	// Try 3: Hjson (most lenient; allows comments and unquoted keys)
	a = Assumptions{}
	if err := hjson.Unmarshal(input, &a); err == nil {
		return a.WithDefaults(), nil
	}

	return Assumptions{}, fmt.Errorf("scenario parse failed: input is not valid JSON or Hjson")
}

// LoadFile reads a scenario file (.json or .hjson) from disk.
func LoadFile(path string) (Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Assumptions{}, fmt.Errorf("reading scenario %s: %w", filepath.Base(path), err)
	}
	a, err := Parse(data)
	if err != nil {
		return Assumptions{}, fmt.Errorf("parsing scenario %s: %w", filepath.Base(path), err)
	}
	return a, nil
}
