package render

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

func mustBuild(t *testing.T, degP, degQ int) *system.System {
	t.Helper()
	s, err := system.Build(degP, degQ)
	require.NoError(t, err)
	return s
}

// mixedSystem is a (2,3) system pushed through a few deductions so all
// three row kinds show up: a zeroed product, fixed right-hand sides
// and open ones.
func mixedSystem(t *testing.T) *system.System {
	t.Helper()
	s := mustBuild(t, 2, 3)
	var z system.ZeroSet
	z.ZeroTerm(poly.PQ(1, 1))
	s.Apply(&z)
	s.SubtractConstant(3)
	s.ForceRHS(1, poly.RHSOne)
	return s
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestPlain_Golden(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "system_2x3_plain", []byte(Plain(mustBuild(t, 2, 3))))
	g.Assert(t, "system_mixed_plain", []byte(Plain(mixedSystem(t))))
}

func TestLaTeX_Golden(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "system_2x3_latex", []byte(LaTeX(mustBuild(t, 2, 3))))
	g.Assert(t, "system_mixed_latex", []byte(LaTeX(mixedSystem(t))))
}

func TestCAS_Golden(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "system_mixed_cas", []byte(CAS(mixedSystem(t))))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"plain", "latex", "cas"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func TestSystem_DispatchesOnFormat(t *testing.T) {
	s := mustBuild(t, 2, 3)
	for f, want := range map[Format]string{
		FormatPlain: "p_1 * q_1",
		FormatLaTeX: "p_{1} q_{1}",
		FormatCAS:   "p[1] q[1]",
	} {
		out, err := System(s, f)
		require.NoError(t, err)
		assert.Contains(t, out, want, "format %s", f)
	}
}

func TestPlain_RoundTrip(t *testing.T) {
	for _, s := range []*system.System{mustBuild(t, 2, 3), mustBuild(t, 3, 5), mixedSystem(t)} {
		text := Plain(s)
		parsed, err := ParsePlain(text)
		require.NoError(t, err)

		// re-rendering the parsed pairs must reproduce the text exactly
		var b strings.Builder
		for _, eq := range parsed {
			b.WriteString(eq.LHS.String())
			b.WriteString(" = ")
			b.WriteString(eq.RHS.String())
			b.WriteByte('\n')
		}
		assert.Equal(t, text, b.String())
	}
}

func TestParsePlain_Values(t *testing.T) {
	parsed, err := ParsePlain("p_1 * q_2 + q_1 + 1 = 0 or 1\n\n1 = 1\n0 = 0\n")
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	assert.Equal(t, poly.Polynomial{poly.PQ(1, 2), poly.Q(1), poly.One()}, parsed[0].LHS)
	assert.Equal(t, poly.RHSZeroOrOne, parsed[0].RHS)
	assert.Equal(t, poly.Polynomial{poly.One()}, parsed[1].LHS)
	assert.Equal(t, poly.RHSOne, parsed[1].RHS)
	assert.Empty(t, parsed[2].LHS)
	assert.Equal(t, poly.RHSZero, parsed[2].RHS)
}

func TestParsePlain_Errors(t *testing.T) {
	for _, bad := range []string{
		"q_1 + p_1",            // no equals sign
		"q_1 = 2",              // bad right-hand side
		"x_1 = 0",              // unknown variable kind
		"p_0 = 0",              // index out of range
		"p_one = 1",            // non-numeric index
		"p_1 * p_2 = 0",        // repeated P-factor
		"q_1 * q_1 = 0 or 1",   // repeated Q-factor
		"q_1 + = 0",            // empty term
	} {
		_, err := ParsePlain(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseBlocks(t *testing.T) {
	text := "q_1 + p_1 = 1\np_1 * q_2 = 0\n\n\np_2 + q_1 = 0 or 1\n"
	blocks, err := ParseBlocks(text)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0], 2)
	assert.Len(t, blocks[1], 1)
	assert.Equal(t, poly.Polynomial{poly.P(2), poly.Q(1)}, blocks[1][0].LHS)
}

func TestBlocks_SeparatesSystems(t *testing.T) {
	a := mustBuild(t, 1, 2)
	b := mustBuild(t, 2, 3)
	out := Blocks([]*system.System{a, b})
	blocks, err := ParseBlocks(out)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0], 2)
	assert.Len(t, blocks[1], 4)
}
