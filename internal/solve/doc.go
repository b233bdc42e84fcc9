// Package solve implements the propagation-and-branch engine: the
// deduction fixpoint that simplifies a system, the case-split search
// that explores the binary decision tree when deduction stalls, and
// the sharded parallel driver.
//
// ARCHITECTURE:
//
// Exclusive-Owner Search Stacks:
// Every System on a search stack is owned by exactly one worker
// goroutine. Branching clones the parent before mutating, so sibling
// branches share nothing mutable. Workers communicate only finished
// results back to the coordinator. No locks, no shared Systems.
//
// Determinism:
// Deduction rules scan equations in index order and apply the first
// rule that fires. Branch children are pushed in a fixed order, so a
// full run visits nodes in a reproducible sequence and the merged
// parallel result is ordered by case mask. No randomness, no shared
// state, no wall-clock dependence.
//
// Outcomes vs defects:
// Contradiction and Resolved are ordinary results. A violated engine
// invariant (re-fixing a variable, a residual system with no possible
// split) panics: it means the deduction rules are unsound, which this
// program exists to prevent.
package solve
