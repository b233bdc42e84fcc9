package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zeroone/internal/store"
)

func TestVerify_SolvedInstance(t *testing.T) {
	out, err := execute(t, "verify", "2", "3", "--workers", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "(2, 3): 1 cases, 1 solved, 0 inconsistent, 0 open leaves, 1 nodes")
}

func TestVerify_BranchingInstance(t *testing.T) {
	out, err := execute(t, "verify", "3", "5", "--workers", "1", "--paranoid")
	require.NoError(t, err)
	assert.Contains(t, out, "(3, 5): 1 cases, 2 solved, 0 inconsistent, 0 open leaves, 3 nodes")
}

func TestVerify_EqualDegrees(t *testing.T) {
	out, err := execute(t, "verify", "3", "3")
	require.NoError(t, err, "a contradiction closes the instance, it is not a failure")
	assert.Contains(t, out, "1 inconsistent")
}

func TestVerify_ShardedRun(t *testing.T) {
	out, err := execute(t, "verify", "3", "5", "--workers", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "4 cases")
	assert.Contains(t, out, "4 solved")
}

func TestVerify_BadDegrees(t *testing.T) {
	for _, args := range [][]string{
		{"verify", "0", "2"},
		{"verify", "2", "-1"},
		{"verify", "2", "256"},
		{"verify", "two", "3"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, "args %v", args)
		assert.Equal(t, ExitCommandError, GetExitCode(err), "args %v", args)
	}
}

func TestVerify_PersistsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	_, err := execute(t, "verify", "2", "3", "--workers", "1", "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.LatestRun(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Solved)
	assert.Equal(t, 0, run.Inconsistent)
	assert.Equal(t, 0, run.LeafCount)
}

func TestVerify_WritesLaTeXProof(t *testing.T) {
	proofPath := filepath.Join(t.TempDir(), "proof.tex")
	_, err := execute(t, "--format", "latex", "verify", "3", "5", "--proof", proofPath)
	require.NoError(t, err)

	proof, err := os.ReadFile(proofPath)
	require.NoError(t, err)
	assert.Contains(t, string(proof), `\documentclass{article}`)
	assert.Contains(t, string(proof), "Verification of the $(3, 5)$ instance")
	assert.Contains(t, string(proof), `\subsection*{Case 1}`)
}

func TestVerify_WritesPlainProof(t *testing.T) {
	proofPath := filepath.Join(t.TempDir(), "proof.txt")
	_, err := execute(t, "verify", "3", "5", "--proof", proofPath)
	require.NoError(t, err)

	proof, err := os.ReadFile(proofPath)
	require.NoError(t, err)
	assert.Contains(t, string(proof), "verification of (3, 5)")
	assert.Contains(t, string(proof), "split: ")
	assert.Contains(t, string(proof), "case 1: ")
}
