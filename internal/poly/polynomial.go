package poly

import "strings"

// Polynomial is a list of Terms representing their sum. Ordering is
// arbitrary and duplicates are legal: 1 + 1 is two entries, never
// combined into a coefficient.
type Polynomial []Term

// IsZero reports whether p is the empty sum.
func (p Polynomial) IsZero() bool { return len(p) == 0 }

// IsOne reports whether p is exactly the constant 1.
func (p Polynomial) IsOne() bool {
	return len(p) == 1 && p[0].IsConstant()
}

// IsZeroOrOne reports whether p is trivially 0 or trivially 1.
func (p Polynomial) IsZeroOrOne() bool {
	return p.IsZero() || p.IsOne()
}

// Clone returns an independent copy of p.
func (p Polynomial) Clone() Polynomial {
	if p == nil {
		return nil
	}
	out := make(Polynomial, len(p))
	copy(out, p)
	return out
}

// Contains reports whether t occurs in p.
func (p Polynomial) Contains(t Term) bool {
	for _, u := range p {
		if u == t {
			return true
		}
	}
	return false
}

// String renders p as "t_1 + t_2 + ... + t_n", or "0" for the empty sum.
func (p Polynomial) String() string {
	if len(p) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range p {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(t.String())
	}
	return b.String()
}
