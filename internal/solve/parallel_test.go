package solve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zeroone/internal/system"
)

func TestRun_SingleWorker(t *testing.T) {
	res, err := Run(context.Background(), 2, 3, RunOptions{Workers: 1})
	require.NoError(t, err)
	assert.False(t, res.Sharded)
	require.Len(t, res.Cases, 1)
	assert.Equal(t, res.Cases[0].Result.Solved, res.Solved)
	assert.Empty(t, res.Leaves)
	assert.Zero(t, res.Inconsistent)
}

func TestRun_Sharded_CoversAllMasks(t *testing.T) {
	res, err := Run(context.Background(), 3, 5, RunOptions{Workers: 4, Paranoid: true})
	require.NoError(t, err)
	assert.True(t, res.Sharded)
	require.Len(t, res.Cases, int(system.CaseCount(3)))
	for k, cr := range res.Cases {
		assert.Equal(t, uint64(k), cr.Mask, "cases must come back ordered by mask")
		require.NotNil(t, cr.Result)
	}

	var solved, inconsistent, nodes, leaves int
	for _, cr := range res.Cases {
		solved += cr.Result.Solved
		inconsistent += cr.Result.Inconsistent
		nodes += cr.Result.Nodes
		leaves += len(cr.Result.Leaves)
	}
	assert.Equal(t, solved, res.Solved)
	assert.Equal(t, inconsistent, res.Inconsistent)
	assert.Equal(t, nodes, res.Nodes)
	assert.Equal(t, leaves, len(res.Leaves))
}

func TestRun_Sharded_Deterministic(t *testing.T) {
	run := func(workers int) *RunResult {
		res, err := Run(context.Background(), 3, 5, RunOptions{Workers: workers})
		require.NoError(t, err)
		return res
	}
	a := run(2)
	b := run(4)
	assert.Equal(t, a.Solved, b.Solved)
	assert.Equal(t, a.Inconsistent, b.Inconsistent)
	assert.Equal(t, a.Nodes, b.Nodes)
	require.Equal(t, len(a.Leaves), len(b.Leaves))
	for k := range a.Leaves {
		assert.Equal(t, a.Leaves[k].Path, b.Leaves[k].Path)
		assert.True(t, a.Leaves[k].System.Equal(b.Leaves[k].System))
	}
}

func TestRun_ShardingRequiresSmallerDegP(t *testing.T) {
	// degP >= degQ has no case-mask partition; the run falls back to a
	// single root search even with many workers.
	res, err := Run(context.Background(), 2, 2, RunOptions{Workers: 8})
	require.NoError(t, err)
	assert.False(t, res.Sharded)
	require.Len(t, res.Cases, 1)
	assert.Equal(t, 1, res.Inconsistent)
}

func TestRun_TraceForcesUnshardedRun(t *testing.T) {
	tr := &Trace{}
	res, err := Run(context.Background(), 3, 5, RunOptions{Workers: 8, Trace: tr})
	require.NoError(t, err)
	assert.False(t, res.Sharded)
	assert.NotEmpty(t, tr.Events)
}
