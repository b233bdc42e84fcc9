package render

import (
	"fmt"
	"strings"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

// CASTerm renders t in computer-algebra syntax: "1", "p[2]", "q[3]",
// "p[2] q[3]".
func CASTerm(t poly.Term) string {
	switch {
	case t.IsQuadratic():
		i, _ := t.PIndex()
		j, _ := t.QIndex()
		return fmt.Sprintf("p[%d] q[%d]", i, j)
	case t.HasP():
		i, _ := t.PIndex()
		return fmt.Sprintf("p[%d]", i)
	case t.HasQ():
		j, _ := t.QIndex()
		return fmt.Sprintf("q[%d]", j)
	default:
		return "1"
	}
}

// CASPolynomial renders p as a sum, "0" for the empty sum.
func CASPolynomial(p poly.Polynomial) string {
	if len(p) == 0 {
		return "0"
	}
	parts := make([]string, len(p))
	for k, t := range p {
		parts[k] = CASTerm(t)
	}
	return strings.Join(parts, " + ")
}

// CAS renders the equations of s for the external algebra system, one
// per line. A fixed right-hand side becomes an ordinary equation; an
// open one becomes the polynomial condition (f) ((f) - 1) == 0, which
// holds exactly when f is 0 or 1.
func CAS(s *system.System) string {
	var b strings.Builder
	for _, t := range s.Zeroed() {
		fmt.Fprintf(&b, "%s == 0\n", CASTerm(t))
	}
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.LHS.IsZero() && eq.RHS == poly.RHSZero {
			continue
		}
		f := CASPolynomial(eq.LHS)
		switch eq.RHS {
		case poly.RHSZero:
			fmt.Fprintf(&b, "%s == 0\n", f)
		case poly.RHSOne:
			fmt.Fprintf(&b, "%s == 1\n", f)
		default:
			fmt.Fprintf(&b, "(%s) ((%s) - 1) == 0\n", f, f)
		}
	}
	return b.String()
}
