package render

import (
	"strings"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

// Plain renders the still-active equations of s, one per line, in the
// canonical interchange form: pending zeroed products first as
// explicit "= 0" lines, then the equations in index order. Trivial
// 0 = 0 rows are skipped. The result ends with a newline unless it is
// empty.
func Plain(s *system.System) string {
	var b strings.Builder
	for _, t := range s.Zeroed() {
		b.WriteString(t.String())
		b.WriteString(" = 0\n")
	}
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.LHS.IsZero() && eq.RHS == poly.RHSZero {
			continue
		}
		b.WriteString(eq.LHS.String())
		b.WriteString(" = ")
		b.WriteString(eq.RHS.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Blocks renders several systems as blank-line-separated plain-text
// blocks, the on-disk layout of leaf-equation files.
func Blocks(systems []*system.System) string {
	parts := make([]string, len(systems))
	for k, s := range systems {
		parts[k] = Plain(s)
	}
	return strings.Join(parts, "\n")
}
