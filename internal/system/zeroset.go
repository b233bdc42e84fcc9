package system

import "github.com/roach88/zeroone/internal/poly"

// ZeroSet is a batch of variables and quadratic terms simultaneously
// known to equal zero. It arises from an equation t_1 + ... + t_n = 0:
// every term is nonnegative, so every term is zero. Linear terms zero
// their variable; a quadratic term p_i * q_j only proves the product is
// zero, so it is carried as a term.
//
// The zero value is an empty, ready-to-use set.
type ZeroSet struct {
	ps    []int
	qs    []int
	terms []poly.Term
}

// ZeroP records p_i = 0.
func (z *ZeroSet) ZeroP(i int) {
	if !z.hasP(i) {
		z.ps = append(z.ps, i)
	}
}

// ZeroQ records q_j = 0.
func (z *ZeroSet) ZeroQ(j int) {
	if !z.hasQ(j) {
		z.qs = append(z.qs, j)
	}
}

// ZeroTerm records t = 0. Linear terms zero their variable, quadratic
// terms are carried whole, and the constant 1 is ignored: eliminating
// it is the caller's concern (it is the subtracted constant of a
// unit-constant deduction, not a zeroed quantity).
func (z *ZeroSet) ZeroTerm(t poly.Term) {
	switch {
	case t.IsQuadratic():
		if !containsTerm(z.terms, t) {
			z.terms = append(z.terms, t)
		}
	case t.HasP():
		i, _ := t.PIndex()
		z.ZeroP(i)
	case t.HasQ():
		j, _ := t.QIndex()
		z.ZeroQ(j)
	}
}

// ZeroPolynomial records every term of p as zero.
func (z *ZeroSet) ZeroPolynomial(p poly.Polynomial) {
	for _, t := range p {
		z.ZeroTerm(t)
	}
}

// Zeroes reports whether t is eliminated by this set: its P factor is
// zeroed, its Q factor is zeroed, or t itself is a zeroed term.
func (z *ZeroSet) Zeroes(t poly.Term) bool {
	if i, ok := t.PIndex(); ok && z.hasP(i) {
		return true
	}
	if j, ok := t.QIndex(); ok && z.hasQ(j) {
		return true
	}
	return containsTerm(z.terms, t)
}

// IsEmpty reports whether the set eliminates nothing.
func (z *ZeroSet) IsEmpty() bool {
	return len(z.ps) == 0 && len(z.qs) == 0 && len(z.terms) == 0
}

func (z *ZeroSet) hasP(i int) bool {
	for _, p := range z.ps {
		if p == i {
			return true
		}
	}
	return false
}

func (z *ZeroSet) hasQ(j int) bool {
	for _, q := range z.qs {
		if q == j {
			return true
		}
	}
	return false
}
