package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunScenario executes sc and checks every expectation it declares.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()

	out, err := Execute(context.Background(), sc)
	if sc.Expect.Error {
		require.Error(t, err, "scenario %s must fail", sc.Name)
		return
	}
	require.NoError(t, err, "scenario %s", sc.Name)

	if sc.Expect.Solved != nil {
		assert.Equal(t, *sc.Expect.Solved, out.Solved, "solved count")
	}
	if sc.Expect.Inconsistent != nil {
		assert.Equal(t, *sc.Expect.Inconsistent, out.Inconsistent, "inconsistent count")
	}
	if sc.Expect.Leaves != nil {
		assert.Equal(t, *sc.Expect.Leaves, out.Leaves, "leaf count")
	}
	if sc.Expect.NoLeaves {
		assert.Zero(t, out.Leaves, "run must not hand off leaf systems")
	}
}

func TestScenarios(t *testing.T) {
	scenarios, err := LoadDir("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
deg_p: 2
deg_q: 3
expectations:
  solved: 1
`)
	_, err := LoadScenario(path)
	assert.Error(t, err, "misspelled expect block must not be ignored")
}

func TestLoadScenario_RequiresName(t *testing.T) {
	path := writeScenario(t, `
deg_p: 2
deg_q: 3
expect:
  solved: 1
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestLoadScenario_RejectsMaskWithWorkers(t *testing.T) {
	path := writeScenario(t, `
name: conflict
deg_p: 3
deg_q: 5
case_mask: 1
workers: 4
expect: {}
`)
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_ParsesFields(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "06_deg2x3_case_mask.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "deg2x3_case_zero", sc.Name)
	require.NotNil(t, sc.CaseMask)
	assert.Equal(t, uint64(0), *sc.CaseMask)
	require.NotNil(t, sc.Expect.Solved)
	assert.Equal(t, 1, *sc.Expect.Solved)
	assert.True(t, sc.Expect.NoLeaves)
}
