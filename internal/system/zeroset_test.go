package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/zeroone/internal/poly"
)

func TestZeroSet_Dedup(t *testing.T) {
	var z ZeroSet
	z.ZeroP(1)
	z.ZeroP(1)
	z.ZeroQ(2)
	z.ZeroTerm(poly.PQ(3, 3))
	z.ZeroTerm(poly.PQ(3, 3))

	assert.Len(t, z.ps, 1)
	assert.Len(t, z.qs, 1)
	assert.Len(t, z.terms, 1)
}

func TestZeroSet_ZeroTermRouting(t *testing.T) {
	var z ZeroSet
	z.ZeroTerm(poly.P(2))
	z.ZeroTerm(poly.Q(4))
	z.ZeroTerm(poly.PQ(1, 1))
	// the constant 1 is never a zeroed quantity
	z.ZeroTerm(poly.One())

	assert.Equal(t, []int{2}, z.ps)
	assert.Equal(t, []int{4}, z.qs)
	assert.Equal(t, []poly.Term{poly.PQ(1, 1)}, z.terms)
}

func TestZeroSet_Zeroes(t *testing.T) {
	var z ZeroSet
	z.ZeroP(1)
	z.ZeroTerm(poly.PQ(2, 2))

	assert.True(t, z.Zeroes(poly.P(1)))
	assert.True(t, z.Zeroes(poly.PQ(1, 5)), "any term with a zeroed factor vanishes")
	assert.True(t, z.Zeroes(poly.PQ(2, 2)))
	assert.False(t, z.Zeroes(poly.PQ(2, 3)))
	assert.False(t, z.Zeroes(poly.Q(1)))
	assert.False(t, z.Zeroes(poly.One()))
}

func TestZeroSet_ZeroPolynomial(t *testing.T) {
	var z ZeroSet
	assert.True(t, z.IsEmpty())
	z.ZeroPolynomial(poly.Polynomial{poly.Q(1), poly.PQ(1, 2), poly.Q(1)})
	assert.False(t, z.IsEmpty())
	assert.Equal(t, []int{1}, z.qs)
	assert.Equal(t, []poly.Term{poly.PQ(1, 2)}, z.terms)
}
