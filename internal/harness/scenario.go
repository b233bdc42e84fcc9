package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario: one verification run with
// expectations on its outcome counts. Scenarios pin down the published
// theorem instances and the sharding behavior in data rather than in
// test code.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// DegP and DegQ select the conjecture instance.
	DegP int `yaml:"deg_p"`
	DegQ int `yaml:"deg_q"`

	// CaseMask, when set, restricts the run to one top-level case of
	// the parallel partition instead of the full instance.
	CaseMask *uint64 `yaml:"case_mask,omitempty"`

	// Workers is the worker count for the run; 0 means sequential.
	Workers int `yaml:"workers,omitempty"`

	// Paranoid re-checks structural invariants on every search node.
	Paranoid bool `yaml:"paranoid,omitempty"`

	// Expect holds the assertions on the run outcome.
	Expect Expect `yaml:"expect"`
}

// Expect lists outcome assertions; nil counts are not checked.
type Expect struct {
	// Solved is the exact number of cases proven {0,1}-valued.
	Solved *int `yaml:"solved,omitempty"`

	// Inconsistent is the exact number of contradictory cases.
	Inconsistent *int `yaml:"inconsistent,omitempty"`

	// Leaves is the exact number of unresolved leaf systems.
	Leaves *int `yaml:"leaves,omitempty"`

	// NoLeaves asserts the run hands nothing to the external solver.
	NoLeaves bool `yaml:"no_leaves,omitempty"`

	// Error asserts the run fails (e.g. an invalid degree pair).
	Error bool `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently skipping an
// assertion.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadDir loads every .yaml file in dir, sorted by filename.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var scenarios []*Scenario
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func validateScenario(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if !sc.Expect.Error {
		if sc.DegP < 1 || sc.DegQ < 1 {
			return fmt.Errorf("degrees must be positive, got (%d, %d)", sc.DegP, sc.DegQ)
		}
	}
	if sc.Expect.Leaves != nil && sc.Expect.NoLeaves && *sc.Expect.Leaves != 0 {
		return fmt.Errorf("no_leaves contradicts leaves: %d", *sc.Expect.Leaves)
	}
	if sc.CaseMask != nil && sc.Workers > 1 {
		return fmt.Errorf("a single case mask cannot be combined with workers")
	}
	return nil
}
