package render

import (
	"fmt"
	"strings"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

// LaTeXTerm renders t as math text: "1", "p_{2}", "q_{3}", "p_{2} q_{3}".
func LaTeXTerm(t poly.Term) string {
	switch {
	case t.IsQuadratic():
		i, _ := t.PIndex()
		j, _ := t.QIndex()
		return fmt.Sprintf("p_{%d} q_{%d}", i, j)
	case t.HasP():
		i, _ := t.PIndex()
		return fmt.Sprintf("p_{%d}", i)
	case t.HasQ():
		j, _ := t.QIndex()
		return fmt.Sprintf("q_{%d}", j)
	default:
		return "1"
	}
}

// LaTeXPolynomial renders p as a sum, "0" for the empty sum.
func LaTeXPolynomial(p poly.Polynomial) string {
	if len(p) == 0 {
		return "0"
	}
	parts := make([]string, len(p))
	for k, t := range p {
		parts[k] = LaTeXTerm(t)
	}
	return strings.Join(parts, " + ")
}

func latexRHS(r poly.RHS) string {
	switch r {
	case poly.RHSZero:
		return "0"
	case poly.RHSOne:
		return "1"
	default:
		return "0 \\text{ or } 1"
	}
}

// LaTeX renders s as an align* block. The opening line carries the
// still-active variables in a comment; zeroed products come first,
// then the live equations in index order.
func LaTeX(s *system.System) string {
	var b strings.Builder
	b.WriteString("\\begin{align*} %")
	for i := 1; i <= s.PVarCount(); i++ {
		if !s.PState(i).Fixed() {
			fmt.Fprintf(&b, " p_{%d}", i)
		}
	}
	for j := 1; j <= s.QVarCount(); j++ {
		if !s.QState(j).Fixed() {
			fmt.Fprintf(&b, " q_{%d}", j)
		}
	}

	first := true
	row := func(lhs, rhs string) {
		if first {
			first = false
			b.WriteString("\n    ")
		} else {
			b.WriteString(" \\\\\n    ")
		}
		b.WriteString(lhs)
		b.WriteString(" &= ")
		b.WriteString(rhs)
	}
	for _, t := range s.Zeroed() {
		row(LaTeXTerm(t), "0")
	}
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.LHS.IsZero() && eq.RHS == poly.RHSZero {
			continue
		}
		row(LaTeXPolynomial(eq.LHS), latexRHS(eq.RHS))
	}
	b.WriteString("\n\\end{align*}")
	return b.String()
}
