// Package montgomery implements 64-bit Montgomery modular arithmetic: the
// kernel that Miller-Rabin, the Lucas-sequence tests, BPSW, and the
// Frobenius tests all run on for odd 64-bit moduli.
//
// Montgomery multiplication avoids costly division by transforming operands
// into "Montgomery form" (x * 2^64 mod n), performing arithmetic in this
// domain, and converting back. Unlike a general arbitrary-precision
// Montgomery multiplier, this package is specialized to a single 64-bit
// limb: R = 2^64 fixed, one Newton-Raphson inverse, one REDC step per
// product.
package montgomery

import (
	"math/bits"

	"github.com/blck-snwmn/primecheck/modarith"
)

// Context holds the precomputed values for Montgomery arithmetic modulo an
// odd 64-bit N: the Montgomery inverse NPrime, and the Montgomery
// representations One (2^64 mod N) and Two (2^65 mod N).
type Context struct {
	N      uint64
	NPrime uint64 // -N^-1 mod 2^64
	One    uint64 // 2^64 mod N, Montgomery form of 1
	Two    uint64 // 2^65 mod N, Montgomery form of 2
}

// New builds a Montgomery context for odd modulus n. Panics if n is even or
// zero: the caller is responsible for routing even moduli elsewhere (see
// lucasseq.AltSeq), since Montgomery form requires an odd modulus to invert.
func New(n uint64) *Context {
	if n == 0 || n&1 == 0 {
		panic("montgomery: modulus must be odd and non-zero")
	}
	one := computeModN(n)
	return &Context{
		N:      n,
		NPrime: newtonRaphsonInverse(n),
		One:    one,
		Two:    compute2x65ModN(n, one),
	}
}

// newtonRaphsonInverse computes -n^-1 mod 2^64.
//
// Seeded with x=1 (correct mod 2), each iteration x = x*(2-n*x) doubles the
// number of correct low bits via the identity a*x ≡ 1 (mod 2^k) implies
// a*x*(2-a*x) ≡ 1 (mod 2^2k), reaching 64 bits of precision in six steps.
func newtonRaphsonInverse(n uint64) uint64 {
	x := uint64(1)
	x *= 2 - n*x // 2 bits
	x *= 2 - n*x // 4 bits
	x *= 2 - n*x // 8 bits
	x *= 2 - n*x // 16 bits
	x *= 2 - n*x // 32 bits
	x *= 2 - n*x // 64 bits
	return -x
}

// computeModN returns 2^64 mod n, the Montgomery representation of 1.
func computeModN(n uint64) uint64 {
	if n <= 1<<63 {
		res := ((uint64(1) << 63) % n) << 1
		if res < n {
			return res
		}
		return res - n
	}
	return -n
}

// compute2x65ModN returns 2^65 mod n given modN = 2^64 mod n, the
// Montgomery representation of 2.
func compute2x65ModN(n, modN uint64) uint64 {
	if n <= 1<<63 {
		res := modN << 1
		if res < n {
			return res
		}
		return res - n
	}
	// n fits 2^65 two or three times depending on range.
	if n > 12297829382473034410 {
		return -n - n
	}
	return -n - n - n
}

// ToMont converts x in [0, n) into Montgomery form.
func (c *Context) ToMont(x uint64) uint64 {
	return modarith.Mul(x, c.One, c.N)
}

// FromMont converts xm out of Montgomery form back to [0, n).
func (c *Context) FromMont(xm uint64) uint64 {
	return c.Prod(xm, 1)
}

// Prod computes the Montgomery product of a and b, both already in
// Montgomery form: (a*b*2^-64) mod n.
//
// The "+1 and branchless reduction" form is deliberate: once lo is nonzero,
// the carry out of the low-word addition is always exactly one, so no
// separate carry branch is needed.
func (c *Context) Prod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if lo == 0 {
		return hi
	}
	m := lo * c.NPrime
	mnHi, _ := bits.Mul64(m, c.N)
	u, carry := bits.Add64(hi, mnHi, 1)
	if carry != 0 || u >= c.N {
		u -= c.N
	}
	return u
}

// Square computes the Montgomery square of a.
func (c *Context) Square(a uint64) uint64 {
	return c.Prod(a, a)
}

// PowMod computes base^k in Montgomery form via right-to-left
// square-and-multiply, starting from the Montgomery representation of 1.
func (c *Context) PowMod(baseM, k uint64) uint64 {
	t := c.One
	for k != 0 {
		if k&1 == 1 {
			t = c.Prod(t, baseM)
		}
		k >>= 1
		if k != 0 {
			baseM = c.Square(baseM)
		}
	}
	return t
}
