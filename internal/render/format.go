package render

import (
	"fmt"
	"strings"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

// Format selects an output syntax.
type Format string

const (
	// FormatPlain is the canonical plain-text form, "p_1 * q_2 + 1 = 0 or 1".
	FormatPlain Format = "plain"
	// FormatLaTeX is an align* block suitable for proof documents.
	FormatLaTeX Format = "latex"
	// FormatCAS is computer-algebra syntax, "p[1] q[2] + 1 == 1".
	FormatCAS Format = "cas"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatPlain, FormatLaTeX, FormatCAS:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want plain, latex or cas)", name)
	}
}

// Equations renders re-parsed (Polynomial, status) pairs in the given
// format, one line per equation. Used for stored leaves, which exist
// only as parsed pairs rather than live Systems.
func Equations(eqs []ParsedEquation, f Format) (string, error) {
	var b strings.Builder
	for _, eq := range eqs {
		switch f {
		case FormatPlain:
			fmt.Fprintf(&b, "%s = %s\n", eq.LHS, eq.RHS)
		case FormatLaTeX:
			fmt.Fprintf(&b, "%s &= %s \\\\\n", LaTeXPolynomial(eq.LHS), latexRHS(eq.RHS))
		case FormatCAS:
			lhs := CASPolynomial(eq.LHS)
			switch eq.RHS {
			case poly.RHSZero:
				fmt.Fprintf(&b, "%s == 0\n", lhs)
			case poly.RHSOne:
				fmt.Fprintf(&b, "%s == 1\n", lhs)
			default:
				fmt.Fprintf(&b, "(%s) ((%s) - 1) == 0\n", lhs, lhs)
			}
		default:
			return "", fmt.Errorf("unknown output format %q", f)
		}
	}
	return b.String(), nil
}

// System renders s in the given format.
func System(s *system.System, f Format) (string, error) {
	switch f {
	case FormatPlain:
		return Plain(s), nil
	case FormatLaTeX:
		return LaTeX(s), nil
	case FormatCAS:
		return CAS(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}
