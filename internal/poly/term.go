package poly

import "fmt"

// maxIndex bounds variable indices so a Term packs into two bytes.
// Degree pairs anywhere near this bound are far beyond what the search
// can traverse anyway.
const maxIndex = 255

// Term is a monomial of one of four shapes: the constant 1, a lone
// P-variable p_i, a lone Q-variable q_j, or the product p_i * q_j.
// Indices start at 1. The zero value of Term is the constant 1.
//
// Terms are immutable values; substitution produces new Terms.
type Term struct {
	p uint8
	q uint8
}

// One returns the constant term 1.
func One() Term {
	return Term{}
}

// P returns the term p_i.
func P(i int) Term {
	return Term{p: checkIndex(i)}
}

// Q returns the term q_j.
func Q(j int) Term {
	return Term{q: checkIndex(j)}
}

// PQ returns the quadratic term p_i * q_j.
func PQ(i, j int) Term {
	return Term{p: checkIndex(i), q: checkIndex(j)}
}

func checkIndex(i int) uint8 {
	if i < 1 || i > maxIndex {
		panic(fmt.Sprintf("poly: variable index %d out of range [1, %d]", i, maxIndex))
	}
	return uint8(i)
}

// PIndex reports the P-variable of t, if present.
func (t Term) PIndex() (int, bool) {
	return int(t.p), t.p != 0
}

// QIndex reports the Q-variable of t, if present.
func (t Term) QIndex() (int, bool) {
	return int(t.q), t.q != 0
}

// HasP reports whether t mentions a P-variable.
func (t Term) HasP() bool { return t.p != 0 }

// HasQ reports whether t mentions a Q-variable.
func (t Term) HasQ() bool { return t.q != 0 }

// IsConstant reports whether t is the constant 1.
func (t Term) IsConstant() bool { return t.p == 0 && t.q == 0 }

// IsLinear reports whether t is a lone variable.
func (t Term) IsLinear() bool { return (t.p != 0) != (t.q != 0) }

// IsQuadratic reports whether t is a product p_i * q_j.
func (t Term) IsQuadratic() bool { return t.p != 0 && t.q != 0 }

// DropP returns t with its P-variable removed (substituting p_i = 1).
// p_i * q_j becomes q_j; p_i becomes 1.
func (t Term) DropP() Term { return Term{q: t.q} }

// DropQ returns t with its Q-variable removed (substituting q_j = 1).
func (t Term) DropQ() Term { return Term{p: t.p} }

// Compare orders Terms: by P index, then by Q index. The ordering is
// total, which is what deduplication and deterministic output need;
// it has no algebraic meaning.
func (t Term) Compare(u Term) int {
	switch {
	case t.p != u.p:
		return int(t.p) - int(u.p)
	case t.q != u.q:
		return int(t.q) - int(u.q)
	default:
		return 0
	}
}

// String renders t in plain text: "1", "p_2", "q_3", "p_2 * q_3".
func (t Term) String() string {
	switch {
	case t.IsQuadratic():
		return fmt.Sprintf("p_%d * q_%d", t.p, t.q)
	case t.HasP():
		return fmt.Sprintf("p_%d", t.p)
	case t.HasQ():
		return fmt.Sprintf("q_%d", t.q)
	default:
		return "1"
	}
}
