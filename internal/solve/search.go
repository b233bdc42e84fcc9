package solve

import (
	"fmt"

	"github.com/roach88/zeroone/internal/poly"
	"github.com/roach88/zeroone/internal/system"
)

// Leaf is a residual case that neither deduction nor branching could
// make progress on. Leaves are handed off to an external algebraic
// solver; for the degree pairs covered by the published theorem
// instances a full run produces none.
type Leaf struct {
	Path   CasePath
	System *system.System
}

// Result aggregates the outcome of one search.
type Result struct {
	// Solved counts cases proven {0,1}-valued.
	Solved int
	// Inconsistent counts cases closed by contradiction.
	Inconsistent int
	// Leaves holds the unresolved cases in depth-first order.
	Leaves []Leaf
	// Nodes counts every system popped from the stack, including the
	// root.
	Nodes int
	// MaxDepth is the deepest case path visited.
	MaxDepth int
}

// Options configures a search.
type Options struct {
	// Paranoid re-checks the structural invariants of every system
	// popped from the stack. A violation is reported as an error and
	// aborts the search.
	Paranoid bool
	// Trace, when non-nil, accumulates a full transcript of the run.
	Trace *Trace
}

type node struct {
	sys  *system.System
	path CasePath
	note string
}

// branch is one child of a case split, in exploration order.
type branch struct {
	sys  *system.System
	note string
}

// Search exhaustively explores the decision tree rooted at s, taking
// ownership of s. Each popped system is simplified to fixpoint; if it
// stays residual, one branch point is selected by findCaseSplit and the
// children are pushed so that the zero-side branch is explored first.
// The traversal order is fully deterministic.
//
// The only error Search returns is a paranoid-mode invariant violation.
// Invariant violations detected by the system primitives themselves
// panic; Run recovers those at the worker boundary.
func Search(s *system.System, opts Options) (*Result, error) {
	res := &Result{}
	stack := []node{{sys: s, note: "initial system"}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Nodes++
		if d := len(n.path); d > res.MaxDepth {
			res.MaxDepth = d
		}
		if opts.Paranoid {
			if err := n.sys.VerifyInvariants(); err != nil {
				return nil, fmt.Errorf("invariant violated at case %q: %w", n.path, err)
			}
		}
		opts.Trace.add(TraceEnter, n.path, n.note, n.sys)

		switch Simplify(n.sys, n.path, opts.Trace) {
		case Contradiction:
			res.Inconsistent++
			opts.Trace.add(TraceInconsistent, n.path, "case closed by contradiction", nil)
			continue
		case Resolved:
			res.Solved++
			opts.Trace.add(TraceSolved, n.path, "all variables proven binary", nil)
			continue
		}

		note, brs := findCaseSplit(n.sys)
		if len(brs) == 0 {
			if !hasUnknownEquation(n.sys) {
				// A residual system with nothing left to constrain
				// should have been classified Resolved.
				panic(fmt.Sprintf("solve: no case split for residual system at case %q:\n%s", n.path, n.sys))
			}
			res.Leaves = append(res.Leaves, Leaf{Path: n.path, System: n.sys})
			opts.Trace.add(TraceLeaf, n.path, "no deduction or split applies; handing off", n.sys)
			continue
		}
		opts.Trace.add(TraceSplit, n.path, note, nil)
		for k := len(brs) - 1; k >= 0; k-- {
			stack = append(stack, node{
				sys:  brs[k].sys,
				path: n.path.Child(k + 1),
				note: brs[k].note,
			})
		}
	}
	return res, nil
}

// findCaseSplit selects the branch point of a residual system, trying
// in order: a variable already proven binary (P before Q, lowest index
// first), the oldest pending zeroed quadratic term, an equation whose
// whole left-hand side is a single open product, and finally the
// shortest equation with an open right-hand side. Ties break toward
// the lowest index, so selection is deterministic.
//
// The single-product split is three-way: p = 0, q = 0, and p = q = 1
// jointly cover every admissible assignment, since p * q strictly
// between 0 and 1 would violate the binary right-hand side.
//
// A nil branch list means no rule applies; the caller decides whether
// that is a leaf or a defect.
func findCaseSplit(s *system.System) (string, []branch) {
	for i := 1; i <= s.PVarCount(); i++ {
		if s.PState(i) == poly.VarZeroOrOne {
			zero := s.Clone()
			zero.SetPZero(i)
			one := s.Clone()
			one.SetPOne(i)
			return fmt.Sprintf("p_%d is binary", i), []branch{
				{zero, fmt.Sprintf("p_%d = 0", i)},
				{one, fmt.Sprintf("p_%d = 1", i)},
			}
		}
	}
	for j := 1; j <= s.QVarCount(); j++ {
		if s.QState(j) == poly.VarZeroOrOne {
			zero := s.Clone()
			zero.SetQZero(j)
			one := s.Clone()
			one.SetQOne(j)
			return fmt.Sprintf("q_%d is binary", j), []branch{
				{zero, fmt.Sprintf("q_%d = 0", j)},
				{one, fmt.Sprintf("q_%d = 1", j)},
			}
		}
	}

	if zs := s.Zeroed(); len(zs) > 0 {
		t := zs[0]
		i, _ := t.PIndex()
		j, _ := t.QIndex()
		pz := s.Clone()
		pz.SetPZero(i)
		qz := s.Clone()
		qz.SetQZero(j)
		return fmt.Sprintf("%s = 0, so one factor is 0", t), []branch{
			{pz, fmt.Sprintf("p_%d = 0", i)},
			{qz, fmt.Sprintf("q_%d = 0", j)},
		}
	}

	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.RHS != poly.RHSZeroOrOne || len(eq.LHS) != 1 || !eq.LHS[0].IsQuadratic() {
			continue
		}
		t := eq.LHS[0]
		i, _ := t.PIndex()
		j, _ := t.QIndex()
		pz := s.Clone()
		pz.SetPZero(i)
		qz := s.Clone()
		qz.SetQZero(j)
		both := s.Clone()
		both.SetPOne(i)
		both.SetQOne(j)
		return fmt.Sprintf("equation %d is the single product %s", e, t), []branch{
			{pz, fmt.Sprintf("p_%d = 0", i)},
			{qz, fmt.Sprintf("q_%d = 0", j)},
			{both, fmt.Sprintf("p_%d = 1, q_%d = 1", i, j)},
		}
	}

	best, bestLen := 0, 0
	for e := 1; e <= s.EquationCount(); e++ {
		eq := s.Equation(e)
		if eq.RHS != poly.RHSZeroOrOne || len(eq.LHS) == 0 {
			continue
		}
		if best == 0 || len(eq.LHS) < bestLen {
			best, bestLen = e, len(eq.LHS)
		}
	}
	if best != 0 {
		zero := s.Clone()
		zero.ForceRHS(best, poly.RHSZero)
		one := s.Clone()
		one.ForceRHS(best, poly.RHSOne)
		return fmt.Sprintf("equation %d is open", best), []branch{
			{zero, fmt.Sprintf("equation %d = 0", best)},
			{one, fmt.Sprintf("equation %d = 1", best)},
		}
	}
	return "", nil
}

func hasUnknownEquation(s *system.System) bool {
	for e := 1; e <= s.EquationCount(); e++ {
		for _, t := range s.Equation(e).LHS {
			if s.TermUnknown(t) {
				return true
			}
		}
	}
	return false
}
