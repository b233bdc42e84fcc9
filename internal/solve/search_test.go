package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

func TestSearch_Deg2x3_NoLeaves(t *testing.T) {
	// The published theorem instance: the full tree closes with no
	// hand-off to an external solver.
	s := build(t, 2, 3)
	res, err := Search(s, Options{Paranoid: true})
	require.NoError(t, err)
	assert.Zero(t, res.Inconsistent)
	assert.Empty(t, res.Leaves)
	assert.GreaterOrEqual(t, res.Solved, 1)
}

func TestSearch_Deg3x5_Branches(t *testing.T) {
	s := build(t, 3, 5)
	res, err := Search(s, Options{Paranoid: true})
	require.NoError(t, err)
	assert.Greater(t, res.Nodes, 1, "deduction alone does not close (3,5)")
	assert.Greater(t, res.MaxDepth, 0)
	closed := res.Solved + res.Inconsistent + len(res.Leaves)
	assert.Greater(t, closed, 0)
	assert.LessOrEqual(t, closed, res.Nodes)
}

func TestSearch_Deterministic(t *testing.T) {
	run := func() *Result {
		res, err := Search(build(t, 3, 5), Options{Paranoid: true})
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.Solved, b.Solved)
	assert.Equal(t, a.Inconsistent, b.Inconsistent)
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.MaxDepth, b.MaxDepth)
	require.Equal(t, len(a.Leaves), len(b.Leaves))
	for k := range a.Leaves {
		assert.Equal(t, a.Leaves[k].Path, b.Leaves[k].Path)
		assert.True(t, a.Leaves[k].System.Equal(b.Leaves[k].System))
	}
}

func TestSearch_TraceShape(t *testing.T) {
	tr := &Trace{}
	_, err := Search(build(t, 3, 5), Options{Trace: tr})
	require.NoError(t, err)
	require.NotEmpty(t, tr.Events)

	first := tr.Events[0]
	assert.Equal(t, TraceEnter, first.Kind)
	assert.Empty(t, first.Path)
	assert.Equal(t, "initial system", first.Note)
	require.NotNil(t, first.System)

	var splits, closes int
	for _, ev := range tr.Events {
		switch ev.Kind {
		case TraceSplit:
			splits++
		case TraceSolved, TraceInconsistent, TraceLeaf:
			closes++
		}
	}
	assert.Greater(t, splits, 0)
	assert.Greater(t, closes, 0)
}

func TestFindCaseSplit_ZeroedTermFirst(t *testing.T) {
	// After root simplification of (3,5) no variable is marked binary,
	// so the split must decompose the oldest zeroed product two ways:
	// p = 0 explored before q = 0.
	s := build(t, 3, 5)
	require.Equal(t, Residual, Simplify(s, nil, nil))
	require.NotEmpty(t, s.Zeroed())

	note, brs := findCaseSplit(s)
	require.Len(t, brs, 2)
	assert.Contains(t, note, s.Zeroed()[0].String())
	assert.NotNil(t, brs[0].sys)
	assert.NotNil(t, brs[1].sys)
	// children are clones, the parent is untouched
	assert.False(t, brs[0].sys.Equal(s))
	assert.False(t, brs[1].sys.Equal(s))
	assert.Equal(t, Residual, Simplify(s.Clone(), nil, nil))
}

func TestFindCaseSplit_OldestZeroedTermWins(t *testing.T) {
	// The zeroed split takes the oldest pending product, not the lowest
	// variable index: eliminate p_2 * q_1 before p_1 * q_1 and the split
	// must branch on p_2 * q_1.
	s := build(t, 3, 4)
	var first system.ZeroSet
	first.ZeroTerm(poly.PQ(2, 1))
	s.Apply(&first)
	var second system.ZeroSet
	second.ZeroTerm(poly.PQ(1, 1))
	s.Apply(&second)
	require.Equal(t, []poly.Term{poly.PQ(2, 1), poly.PQ(1, 1)}, s.Zeroed())

	note, brs := findCaseSplit(s)
	require.Len(t, brs, 2)
	assert.Contains(t, note, "p_2 * q_1")
	assert.Contains(t, brs[0].note, "p_2 = 0")
	assert.Contains(t, brs[1].note, "q_1 = 0")
}

func TestCasePath_String(t *testing.T) {
	assert.Equal(t, "", CasePath(nil).String())
	assert.Equal(t, "1", CasePath{1}.String())
	assert.Equal(t, "1.2.1", CasePath{1, 2, 1}.String())
}

func TestCasePath_ChildDoesNotAliasParent(t *testing.T) {
	p := CasePath{1}
	a := p.Child(2)
	b := p.Child(3)
	assert.Equal(t, CasePath{1, 2}, a)
	assert.Equal(t, CasePath{1, 3}, b)
	assert.Equal(t, CasePath{1}, p)
}
