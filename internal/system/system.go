package system

import (
	"fmt"
	"strings"

	"github.com/roach88/zeroone/internal/poly"
)

// Equation is one row of the system: a sum of terms on the left and a
// status on the right. Resolved equations keep their slot as the
// trivial 0 = 0 so that equation e always corresponds to the
// coefficient of x^e in the product polynomial.
type Equation struct {
	LHS poly.Polynomial
	RHS poly.RHS
}

// System is the full state of one search node.
type System struct {
	degP int
	degQ int

	// pState[i-1] is the domain state of p_i, likewise qState for q_j.
	pState []poly.VarState
	qState []poly.VarState

	// eqs has fixed length degP+degQ-1; eqs[e-1] derives from the
	// coefficient of x^e.
	eqs []Equation

	// zeroed holds quadratic terms individually known to be 0.
	// p_i * q_j = 0 forces neither factor, so these wait here until
	// the search splits on one.
	zeroed []poly.Term
}

// DegP returns the degree of P.
func (s *System) DegP() int { return s.degP }

// DegQ returns the degree of Q.
func (s *System) DegQ() int { return s.degQ }

// EquationCount returns the fixed number of equations, degP+degQ-1.
func (s *System) EquationCount() int { return len(s.eqs) }

// Equation returns equation e (1-based). The returned LHS is the live
// slice; callers must treat it as read-only and mutate only through
// the System primitives.
func (s *System) Equation(e int) Equation {
	return s.eqs[s.eqIndex(e)]
}

// Zeroed returns the pending zeroed quadratic terms, oldest first.
// Read-only for callers.
func (s *System) Zeroed() []poly.Term { return s.zeroed }

// PState returns the domain state of p_i.
func (s *System) PState(i int) poly.VarState {
	return s.pState[s.pIndex(i)]
}

// QState returns the domain state of q_j.
func (s *System) QState(j int) poly.VarState {
	return s.qState[s.qIndex(j)]
}

// PVarCount returns the number of P-variables, degP-1.
func (s *System) PVarCount() int { return len(s.pState) }

// QVarCount returns the number of Q-variables, degQ-1.
func (s *System) QVarCount() int { return len(s.qState) }

// HasUnknownVar reports whether any variable is still fully
// unconstrained. A System with no unknown variables is proven
// {0,1}-valued, which is the claim under verification.
func (s *System) HasUnknownVar() bool {
	for _, st := range s.pState {
		if st == poly.VarUnknown {
			return true
		}
	}
	for _, st := range s.qState {
		if st == poly.VarUnknown {
			return true
		}
	}
	return false
}

// TermUnknown reports whether t mentions a variable that is still
// unknown. Terms over binary-proven variables contribute a known
// {0,1} quantity even when the exact value is open.
func (s *System) TermUnknown(t poly.Term) bool {
	if i, ok := t.PIndex(); ok && s.PState(i) == poly.VarUnknown {
		return true
	}
	if j, ok := t.QIndex(); ok && s.QState(j) == poly.VarUnknown {
		return true
	}
	return false
}

// Clone returns a structurally independent deep copy. Branching clones
// the parent once per child; this is the dominant allocation in the
// engine, so everything else mutates in place.
func (s *System) Clone() *System {
	out := &System{
		degP:   s.degP,
		degQ:   s.degQ,
		pState: append([]poly.VarState(nil), s.pState...),
		qState: append([]poly.VarState(nil), s.qState...),
		eqs:    make([]Equation, len(s.eqs)),
		zeroed: append([]poly.Term(nil), s.zeroed...),
	}
	for e, eq := range s.eqs {
		out.eqs[e] = Equation{LHS: eq.LHS.Clone(), RHS: eq.RHS}
	}
	return out
}

// Equal reports structural equality, including equation order and the
// order of pending zeroed terms. Used by tests for idempotence and
// determinism checks.
func (s *System) Equal(o *System) bool {
	if s.degP != o.degP || s.degQ != o.degQ {
		return false
	}
	for i := range s.pState {
		if s.pState[i] != o.pState[i] {
			return false
		}
	}
	for j := range s.qState {
		if s.qState[j] != o.qState[j] {
			return false
		}
	}
	if len(s.zeroed) != len(o.zeroed) {
		return false
	}
	for k := range s.zeroed {
		if s.zeroed[k] != o.zeroed[k] {
			return false
		}
	}
	for e := range s.eqs {
		if s.eqs[e].RHS != o.eqs[e].RHS || len(s.eqs[e].LHS) != len(o.eqs[e].LHS) {
			return false
		}
		for k := range s.eqs[e].LHS {
			if s.eqs[e].LHS[k] != o.eqs[e].LHS[k] {
				return false
			}
		}
	}
	return true
}

// SetPZero fixes p_i to 0 and removes every term mentioning p_i from
// all equations and from the zeroed-term list. Panics if p_i is
// already fixed to 1.
func (s *System) SetPZero(i int) {
	idx := s.pIndex(i)
	if s.pState[idx] == poly.VarOne {
		panic(fmt.Sprintf("system: p_%d fixed to 1, cannot re-fix to 0", i))
	}
	s.pState[idx] = poly.VarZero
	for e := range s.eqs {
		s.eqs[e].LHS = dropMatching(s.eqs[e].LHS, func(t poly.Term) bool {
			p, ok := t.PIndex()
			return ok && p == i
		})
	}
	s.zeroed = dropMatching(s.zeroed, func(t poly.Term) bool {
		p, ok := t.PIndex()
		return ok && p == i
	})
}

// SetQZero fixes q_j to 0. Symmetric to SetPZero.
func (s *System) SetQZero(j int) {
	idx := s.qIndex(j)
	if s.qState[idx] == poly.VarOne {
		panic(fmt.Sprintf("system: q_%d fixed to 1, cannot re-fix to 0", j))
	}
	s.qState[idx] = poly.VarZero
	for e := range s.eqs {
		s.eqs[e].LHS = dropMatching(s.eqs[e].LHS, func(t poly.Term) bool {
			q, ok := t.QIndex()
			return ok && q == j
		})
	}
	s.zeroed = dropMatching(s.zeroed, func(t poly.Term) bool {
		q, ok := t.QIndex()
		return ok && q == j
	})
}

// SetPOne fixes p_i to 1. Every term p_i * q_j collapses to q_j and
// every lone p_i becomes the constant 1. A pending zeroed term
// p_i * q_j = 0 now forces q_j = 0, which is applied in the same call.
// Panics if p_i is already fixed to 0.
func (s *System) SetPOne(i int) {
	idx := s.pIndex(i)
	if s.pState[idx] == poly.VarZero {
		panic(fmt.Sprintf("system: p_%d fixed to 0, cannot re-fix to 1", i))
	}
	s.pState[idx] = poly.VarOne

	var forced ZeroSet
	kept := s.zeroed[:0]
	for _, t := range s.zeroed {
		if p, ok := t.PIndex(); ok && p == i {
			q, _ := t.QIndex()
			forced.ZeroQ(q)
		} else {
			kept = append(kept, t)
		}
	}
	s.zeroed = kept

	for e := range s.eqs {
		lhs := s.eqs[e].LHS
		for k, t := range lhs {
			if p, ok := t.PIndex(); ok && p == i {
				lhs[k] = t.DropP()
			}
		}
	}

	if !forced.IsEmpty() {
		s.Apply(&forced)
	}
}

// SetQOne fixes q_j to 1. Symmetric to SetPOne.
func (s *System) SetQOne(j int) {
	idx := s.qIndex(j)
	if s.qState[idx] == poly.VarZero {
		panic(fmt.Sprintf("system: q_%d fixed to 0, cannot re-fix to 1", j))
	}
	s.qState[idx] = poly.VarOne

	var forced ZeroSet
	kept := s.zeroed[:0]
	for _, t := range s.zeroed {
		if q, ok := t.QIndex(); ok && q == j {
			p, _ := t.PIndex()
			forced.ZeroP(p)
		} else {
			kept = append(kept, t)
		}
	}
	s.zeroed = kept

	for e := range s.eqs {
		lhs := s.eqs[e].LHS
		for k, t := range lhs {
			if q, ok := t.QIndex(); ok && q == j {
				lhs[k] = t.DropQ()
			}
		}
	}

	if !forced.IsEmpty() {
		s.Apply(&forced)
	}
}

// MarkPZeroOrOne records that p_i is binary-valued. Reports whether the
// state changed; a variable already binary or fixed is left alone.
func (s *System) MarkPZeroOrOne(i int) bool {
	idx := s.pIndex(i)
	if s.pState[idx] == poly.VarUnknown {
		s.pState[idx] = poly.VarZeroOrOne
		return true
	}
	return false
}

// MarkQZeroOrOne records that q_j is binary-valued.
func (s *System) MarkQZeroOrOne(j int) bool {
	idx := s.qIndex(j)
	if s.qState[idx] == poly.VarUnknown {
		s.qState[idx] = poly.VarZeroOrOne
		return true
	}
	return false
}

// ForceRHS sets the right-hand side of equation e. Legal transitions
// are ZeroOrOne -> anything and r -> r; flipping a terminal 0 to 1 or
// back is an engine bug and panics. Contradictions must be detected by
// the caller before forcing.
func (s *System) ForceRHS(e int, r poly.RHS) {
	idx := s.eqIndex(e)
	cur := s.eqs[idx].RHS
	if cur != poly.RHSZeroOrOne && cur != r {
		panic(fmt.Sprintf("system: equation %d right-hand side %v cannot become %v", e, cur, r))
	}
	s.eqs[idx].RHS = r
}

// SubtractConstant subtracts the unit constant of equation e from both
// sides: one constant term is removed and the right-hand side drops to
// 0. This is the only legal way an equation leaves the 1 state; the
// caller must rule out the 1 + ... = 0 contradiction first. Panics if
// the equation carries no constant or already equals 0.
func (s *System) SubtractConstant(e int) {
	idx := s.eqIndex(e)
	if s.eqs[idx].RHS == poly.RHSZero {
		panic(fmt.Sprintf("system: equation %d equals 0, cannot subtract a constant", e))
	}
	lhs := s.eqs[idx].LHS
	for k, t := range lhs {
		if t.IsConstant() {
			s.eqs[idx].LHS = append(lhs[:k], lhs[k+1:]...)
			s.eqs[idx].RHS = poly.RHSZero
			return
		}
	}
	panic(fmt.Sprintf("system: equation %d has no constant term to subtract", e))
}

// Apply eliminates everything in z from the system in one pass:
// variables in z are fixed to 0 (with the usual transition check),
// quadratic terms in z move to the zeroed side list unless one of
// their factors is itself zeroed, and all matching terms disappear
// from every equation. Right-hand sides are untouched.
func (s *System) Apply(z *ZeroSet) {
	for _, i := range z.ps {
		idx := s.pIndex(i)
		if s.pState[idx] == poly.VarOne {
			panic(fmt.Sprintf("system: p_%d fixed to 1, cannot eliminate as 0", i))
		}
		s.pState[idx] = poly.VarZero
	}
	for _, j := range z.qs {
		idx := s.qIndex(j)
		if s.qState[idx] == poly.VarOne {
			panic(fmt.Sprintf("system: q_%d fixed to 1, cannot eliminate as 0", j))
		}
		s.qState[idx] = poly.VarZero
	}

	kept := s.zeroed[:0]
	for _, t := range s.zeroed {
		if !z.Zeroes(t) {
			kept = append(kept, t)
		}
	}
	s.zeroed = kept
	for _, t := range z.terms {
		p, _ := t.PIndex()
		q, _ := t.QIndex()
		if !z.hasP(p) && !z.hasQ(q) && !containsTerm(s.zeroed, t) {
			s.zeroed = append(s.zeroed, t)
		}
	}

	for e := range s.eqs {
		s.eqs[e].LHS = dropMatching(s.eqs[e].LHS, z.Zeroes)
	}
}

// VerifyInvariants checks the structural invariants that every System
// reachable by the search must satisfy. It is run per node under
// paranoid mode; any violation is an engine defect.
func (s *System) VerifyInvariants() error {
	if len(s.eqs) != s.degP+s.degQ-1 {
		return fmt.Errorf("equation count %d, want %d", len(s.eqs), s.degP+s.degQ-1)
	}
	check := func(t poly.Term) error {
		if i, ok := t.PIndex(); ok {
			if i > len(s.pState) {
				return fmt.Errorf("term %v references p_%d beyond degP=%d", t, i, s.degP)
			}
			if s.PState(i).Fixed() {
				return fmt.Errorf("term %v references fixed variable p_%d", t, i)
			}
		}
		if j, ok := t.QIndex(); ok {
			if j > len(s.qState) {
				return fmt.Errorf("term %v references q_%d beyond degQ=%d", t, j, s.degQ)
			}
			if s.QState(j).Fixed() {
				return fmt.Errorf("term %v references fixed variable q_%d", t, j)
			}
		}
		return nil
	}
	for e := range s.eqs {
		for _, t := range s.eqs[e].LHS {
			if err := check(t); err != nil {
				return fmt.Errorf("equation %d: %w", e+1, err)
			}
		}
	}
	for _, t := range s.zeroed {
		if !t.IsQuadratic() {
			return fmt.Errorf("zeroed term %v is not quadratic", t)
		}
		if err := check(t); err != nil {
			return fmt.Errorf("zeroed term: %w", err)
		}
	}
	return nil
}

// String renders the system for logs and debugging, one equation per
// line with trivial 0 = 0 rows skipped, followed by variable states.
func (s *System) String() string {
	var b strings.Builder
	for e := range s.eqs {
		eq := s.eqs[e]
		if eq.LHS.IsZero() && eq.RHS == poly.RHSZero {
			continue
		}
		fmt.Fprintf(&b, "%s = %s\n", eq.LHS, eq.RHS)
	}
	for _, t := range s.zeroed {
		fmt.Fprintf(&b, "%s = 0\n", t)
	}
	for i := 1; i <= len(s.pState); i++ {
		fmt.Fprintf(&b, "p_%d: %s\n", i, s.PState(i))
	}
	for j := 1; j <= len(s.qState); j++ {
		fmt.Fprintf(&b, "q_%d: %s\n", j, s.QState(j))
	}
	return b.String()
}

func (s *System) pIndex(i int) int {
	if i < 1 || i > len(s.pState) {
		panic(fmt.Sprintf("system: p index %d out of range [1, %d]", i, len(s.pState)))
	}
	return i - 1
}

func (s *System) qIndex(j int) int {
	if j < 1 || j > len(s.qState) {
		panic(fmt.Sprintf("system: q index %d out of range [1, %d]", j, len(s.qState)))
	}
	return j - 1
}

func (s *System) eqIndex(e int) int {
	if e < 1 || e > len(s.eqs) {
		panic(fmt.Sprintf("system: equation index %d out of range [1, %d]", e, len(s.eqs)))
	}
	return e - 1
}

func dropMatching(ts []poly.Term, match func(poly.Term) bool) []poly.Term {
	out := ts[:0]
	for _, t := range ts {
		if !match(t) {
			out = append(out, t)
		}
	}
	return out
}

func containsTerm(ts []poly.Term, t poly.Term) bool {
	for _, u := range ts {
		if u == t {
			return true
		}
	}
	return false
}
