// Package system implements the aggregate state of one verification
// node: the variable domains, the fixed-length equation list, and the
// side list of quadratic terms known to be zero.
//
// A System is built once per (degP, degQ) pair, optionally with a
// top-level case assignment, and is then owned by exactly one search
// stack. Mutation primitives operate in place; the search clones a
// System before branching, so a System reachable from a stack is never
// aliased by a mutating caller.
//
// The primitives enforce the variable-state transition order. Violating
// it (re-fixing a variable to the other value, forcing an equation's
// right-hand side from 0 to 1) panics: such a call means the deduction
// rules are unsound, and the whole point of this program is that they
// are not.
package system
