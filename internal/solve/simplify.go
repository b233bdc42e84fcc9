package solve

import (
	"fmt"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

// Status is the outcome of running the deduction fixpoint on a system.
type Status int

const (
	// Contradiction: some equation cannot hold under any nonnegative
	// assignment. The case is closed; the branch assumption was false.
	Contradiction Status = iota
	// Resolved: every variable is proven binary. The case is closed in
	// favor of the conjecture.
	Resolved
	// Residual: no rule fires but unknown variables remain. The search
	// must split before deduction can continue.
	Residual
)

func (st Status) String() string {
	switch st {
	case Contradiction:
		return "contradiction"
	case Resolved:
		return "resolved"
	case Residual:
		return "residual"
	default:
		return fmt.Sprintf("Status(%d)", int(st))
	}
}

// Simplify runs the deduction rules to fixpoint, mutating s in place.
// Each pass applies the first rule that fires, scanning rules in a
// fixed order and equations by index, then restarts; the result is
// therefore deterministic and, because every rule only narrows domains,
// running Simplify twice is a no-op the second time.
//
// A Contradiction return leaves s in the state that exposed the
// contradiction; callers discard it.
func Simplify(s *system.System, path CasePath, tr *Trace) Status {
	for {
		st, progress := applyOnce(s, path, tr)
		if st == ruleContradiction {
			return Contradiction
		}
		if progress {
			continue
		}
		if s.HasUnknownVar() {
			return Residual
		}
		return Resolved
	}
}

// ruleStatus is the intermediate verdict of one rule pass.
type ruleStatus int

const (
	ruleOK ruleStatus = iota
	ruleContradiction
)

func applyOnce(s *system.System, path CasePath, tr *Trace) (ruleStatus, bool) {
	if st, progress := normalizeConstants(s, path, tr); st == ruleContradiction || progress {
		return st, progress
	}
	if drainZeroEquations(s, path, tr) {
		return ruleOK, true
	}
	if pinSingletons(s, path, tr) {
		return ruleOK, true
	}
	if markLoneUnknowns(s, path, tr) {
		return ruleOK, true
	}
	if markPairedFactors(s, path, tr) {
		return ruleOK, true
	}
	return ruleOK, false
}

// normalizeConstants settles equations that are decided by their
// constant terms alone: two constants overflow every admissible
// right-hand side, an empty equation forces its right-hand side to 0
// (or contradicts a forced 1), and a single constant is subtracted from
// both sides.
func normalizeConstants(s *system.System, path CasePath, tr *Trace) (ruleStatus, bool) {
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		constants := 0
		for _, t := range eq.LHS {
			if t.IsConstant() {
				constants++
			}
		}
		if constants >= 2 {
			tr.add(TraceDeduce, path,
				fmt.Sprintf("equation %d sums two unit constants and exceeds 1", e), nil)
			return ruleContradiction, false
		}
		if len(eq.LHS) == 0 {
			switch eq.RHS {
			case poly.RHSOne:
				tr.add(TraceDeduce, path,
					fmt.Sprintf("equation %d reduces to 0 = 1", e), nil)
				return ruleContradiction, false
			case poly.RHSZeroOrOne:
				s.ForceRHS(e, poly.RHSZero)
				tr.add(TraceDeduce, path,
					fmt.Sprintf("equation %d has an empty left-hand side, so it equals 0", e), nil)
				return ruleOK, true
			}
			continue
		}
		if constants == 1 {
			if eq.RHS == poly.RHSZero {
				tr.add(TraceDeduce, path,
					fmt.Sprintf("equation %d contains the constant 1 but must equal 0", e), nil)
				return ruleContradiction, false
			}
			s.SubtractConstant(e)
			tr.add(TraceDeduce, path,
				fmt.Sprintf("subtracting 1 from both sides of equation %d", e), nil)
			tr.add(TraceDeduce, path, "after subtraction", s)
			return ruleOK, true
		}
	}
	return ruleOK, false
}

// drainZeroEquations eliminates every term of an equation forced to 0:
// terms are nonnegative, so each is individually 0. Linear terms fix
// their variable; quadratic terms move to the zeroed side list.
func drainZeroEquations(s *system.System, path CasePath, tr *Trace) bool {
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.RHS != poly.RHSZero || len(eq.LHS) == 0 {
			continue
		}
		var z system.ZeroSet
		z.ZeroPolynomial(eq.LHS)
		tr.add(TraceDeduce, path,
			fmt.Sprintf("equation %d equals 0, so each of its nonnegative terms is 0", e), nil)
		s.Apply(&z)
		tr.add(TraceDeduce, path, "after elimination", s)
		return true
	}
	return false
}

// pinSingletons fixes the lone term of an equation forced to 1. A
// quadratic singleton p_i * q_j = 1 pins both factors: neither exceeds
// 1, so neither can be below 1.
func pinSingletons(s *system.System, path CasePath, tr *Trace) bool {
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.RHS != poly.RHSOne || len(eq.LHS) != 1 {
			continue
		}
		t := eq.LHS[0]
		tr.add(TraceDeduce, path,
			fmt.Sprintf("equation %d pins %s = 1", e, t), nil)
		if i, ok := t.PIndex(); ok {
			s.SetPOne(i)
		}
		if j, ok := t.QIndex(); ok {
			s.SetQOne(j)
		}
		tr.add(TraceDeduce, path, "after substitution", s)
		return true
	}
	return false
}

// markLoneUnknowns applies the all-but-one rule: when exactly one term
// of an equation mentions an unknown variable and that term is linear,
// the variable equals a binary right-hand side minus a sum of binary
// terms, hence is an integer in [0, 1]. Quadratic lone terms are left
// for the paired rule and the case split. All equations are marked in
// one pass.
func markLoneUnknowns(s *system.System, path CasePath, tr *Trace) bool {
	progress := false
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		lone := -1
		for k, t := range eq.LHS {
			if s.TermUnknown(t) {
				if lone >= 0 {
					lone = -2
					break
				}
				lone = k
			}
		}
		if lone < 0 {
			continue
		}
		t := eq.LHS[lone]
		if t.IsQuadratic() {
			continue
		}
		changed := false
		if i, ok := t.PIndex(); ok {
			changed = s.MarkPZeroOrOne(i)
		} else if j, ok := t.QIndex(); ok {
			changed = s.MarkQZeroOrOne(j)
		}
		if changed {
			progress = true
			tr.add(TraceDeduce, path,
				fmt.Sprintf("every other term of equation %d is binary, so %s is binary", e, t), nil)
		}
	}
	if progress {
		tr.add(TraceDeduce, path, "after binary marking", s)
	}
	return progress
}

// markPairedFactors applies the sum/product rule: when p_i + q_j is
// constrained to a binary value by a two-term equation and the product
// p_i * q_j is itself known binary (it is the only unknown term of some
// equation, or sits on the zeroed side list), both factors are binary.
// With s = p+q and t = pq binary, t = 1 forces p = q = 1, and t = 0
// makes one factor 0 and the other equal to s.
func markPairedFactors(s *system.System, path CasePath, tr *Trace) bool {
	var isolated []poly.Term
	isolated = append(isolated, s.Zeroed()...)
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		lone := -1
		for k, t := range eq.LHS {
			if s.TermUnknown(t) {
				if lone >= 0 {
					lone = -2
					break
				}
				lone = k
			}
		}
		if lone >= 0 && eq.LHS[lone].IsQuadratic() {
			isolated = append(isolated, eq.LHS[lone])
		}
	}
	if len(isolated) == 0 {
		return false
	}

	progress := false
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if len(eq.LHS) != 2 {
			continue
		}
		x, y := eq.LHS[0], eq.LHS[1]
		if !x.IsLinear() || !y.IsLinear() {
			continue
		}
		var i, j int
		switch {
		case x.HasP() && y.HasQ():
			i, _ = x.PIndex()
			j, _ = y.QIndex()
		case x.HasQ() && y.HasP():
			i, _ = y.PIndex()
			j, _ = x.QIndex()
		default:
			continue
		}
		if !hasTerm(isolated, poly.PQ(i, j)) {
			continue
		}
		changed := s.MarkPZeroOrOne(i)
		if s.MarkQZeroOrOne(j) {
			changed = true
		}
		if changed {
			progress = true
			tr.add(TraceDeduce, path,
				fmt.Sprintf("p_%d + q_%d and p_%d * q_%d are both binary, so p_%d and q_%d are binary", i, j, i, j, i, j), nil)
		}
	}
	if progress {
		tr.add(TraceDeduce, path, "after binary marking", s)
	}
	return progress
}

func hasTerm(ts []poly.Term, t poly.Term) bool {
	for _, u := range ts {
		if u == t {
			return true
		}
	}
	return false
}
