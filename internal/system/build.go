package system

import (
	"fmt"

	"github.com/roach88/zeroone/internal/poly"
)

// maxDegree bounds degrees so every variable index fits a Term.
const maxDegree = 256

// Option adjusts a freshly built System before it is returned.
type Option func(*System) error

// Build constructs the canonical system of equations for monic P of
// degree degP and monic Q of degree degQ, both with all coefficients in
// [0, 1], whose product is required to be a 0-1 polynomial.
//
// Equation e (1 <= e <= degP+degQ-1) is the coefficient of x^e in P*Q:
// the sum of p_a * q_b over a+b = e, where p_0, p_degP, q_0 and q_degQ
// are the monic 1-coefficients and contribute their partner factor (or
// the constant 1) directly. The constant and leading coefficients of
// the product are omitted: both are 1 by construction.
func Build(degP, degQ int, opts ...Option) (*System, error) {
	if degP < 1 || degQ < 1 {
		return nil, fmt.Errorf("degrees must be positive, got (%d, %d)", degP, degQ)
	}
	if degP > maxDegree || degQ > maxDegree {
		return nil, fmt.Errorf("degrees must be at most %d, got (%d, %d)", maxDegree, degP, degQ)
	}

	s := &System{
		degP:   degP,
		degQ:   degQ,
		pState: make([]poly.VarState, degP-1),
		qState: make([]poly.VarState, degQ-1),
		eqs:    make([]Equation, degP+degQ-1),
	}

	for e := 1; e <= degP+degQ-1; e++ {
		lo := 0
		if e-degQ > lo {
			lo = e - degQ
		}
		hi := degP
		if e < hi {
			hi = e
		}
		var lhs poly.Polynomial
		for a := lo; a <= hi; a++ {
			b := e - a
			hasP := a != 0 && a != degP
			hasQ := b != 0 && b != degQ
			switch {
			case hasP && hasQ:
				lhs = append(lhs, poly.PQ(a, b))
			case hasP:
				lhs = append(lhs, poly.P(a))
			case hasQ:
				lhs = append(lhs, poly.Q(b))
			default:
				lhs = append(lhs, poly.One())
			}
		}
		s.eqs[e-1] = Equation{LHS: lhs, RHS: poly.RHSZeroOrOne}
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// CaseCount returns the number of top-level cases for degP, which is
// 2^(degP-1): one bit per P-variable.
func CaseCount(degP int) uint64 {
	return uint64(1) << uint(degP-1)
}

// WithCase applies the top-level case assignment identified by mask,
// used to partition the search for parallel verification. Bit i-1
// governs p_i: a clear bit fixes p_i = 0, a set bit instead fixes the
// paired Q-coefficients q_{degP-i} = q_{degQ-i} = 0. Independently of
// the mask, q_degP = q_{degQ-degP} = 0 always holds in this partition.
//
// Requires degP < degQ; the pairing is undefined otherwise.
func WithCase(mask uint64) Option {
	return func(s *System) error {
		if s.degP >= s.degQ {
			return fmt.Errorf("case assignment requires degP < degQ, got (%d, %d)", s.degP, s.degQ)
		}
		if mask >= CaseCount(s.degP) {
			return fmt.Errorf("case mask %d out of range for degP=%d (have %d cases)", mask, s.degP, CaseCount(s.degP))
		}
		s.SetQZero(s.degP)
		s.SetQZero(s.degQ - s.degP)
		for i := 1; i <= s.degP-1; i++ {
			if mask&(1<<uint(i-1)) != 0 {
				s.SetQZero(s.degP - i)
				s.SetQZero(s.degQ - i)
			} else {
				s.SetPZero(i)
			}
		}
		return nil
	}
}
