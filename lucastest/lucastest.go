// Package lucastest implements the Lucas-sequence family of compositeness
// tests: the standard, strong, and extra-strong Lucas pseudoprime tests, the
// almost-extra-strong variant, and the BPSW test that composes a base-2
// Miller-Rabin test with it. All arithmetic runs through a per-call
// Montgomery context over the (odd) modulus under test.
package lucastest

import (
	"math/bits"

	"github.com/blck-snwmn/primecheck/millerrabin"
	"github.com/blck-snwmn/primecheck/modarith"
	"github.com/blck-snwmn/primecheck/montgomery"
)

// montOfSigned converts a signed value into its Montgomery residue mod ctx.N.
func montOfSigned(ctx *montgomery.Context, x int64) uint64 {
	if x >= 0 {
		return ctx.ToMont(uint64(x) % ctx.N)
	}
	neg := ctx.ToMont(uint64(-x) % ctx.N)
	return ctx.N - neg
}

// halveMont computes u/2 mod n for odd n (u>>1 for even u, (u+n)/2 for odd
// u), dividing by two without a modular inverse. Works identically in Montgomery or plain
// domain since it only depends on n being odd.
func halveMont(u, n uint64) uint64 {
	if u&1 == 1 {
		return (n >> 1) + (u >> 1) + 1
	}
	return u >> 1
}

// lucasChain evaluates the Lucas chain (U_d, V_d, Q^d) in Montgomery form,
// where d is the odd part (or full exponent, for the standard test) left
// after factoring powers of two out of n+1. montP and montD are the
// Montgomery residues of P and D=P^2-4Q; Q is the signed, un-reduced
// parameter (only its value, not its Montgomery form, is needed since the
// fast paths below special-case Q=+-1 and the general path keeps its own
// running power of Q).
func lucasChain(ctx *montgomery.Context, montP, montD uint64, Q int64, d uint64) (U, V, Qk uint64) {
	b := bits.Len64(d) - 1

	U = ctx.One
	V = montP

	if Q == 1 || Q == -1 {
		sign := Q
		for b > 0 {
			b--
			U = ctx.Prod(U, V)
			if sign == 1 {
				V = modarith.Sub(ctx.Square(V), ctx.Two, ctx.N)
			} else {
				V = modarith.Add(ctx.Square(V), ctx.Two, ctx.N)
			}
			sign = 1
			if (d>>uint(b))&1 == 1 {
				t2 := ctx.Prod(U, montD)
				newU := modarith.Add(ctx.Prod(U, montP), V, ctx.N)
				newV := modarith.Add(ctx.Prod(V, montP), t2, ctx.N)
				U = halveMont(newU, ctx.N)
				V = halveMont(newV, ctx.N)
				sign = Q
			}
		}
		if sign == 1 {
			Qk = ctx.One
		} else {
			Qk = ctx.N - ctx.One
		}
		return U, V, Qk
	}

	montQ := montOfSigned(ctx, Q)
	Qk = montQ
	for b > 0 {
		b--
		U = ctx.Prod(U, V)
		V = modarith.Sub(ctx.Square(V), modarith.Add(Qk, Qk, ctx.N), ctx.N)
		Qk = ctx.Square(Qk)
		if (d>>uint(b))&1 == 1 {
			t2 := ctx.Prod(U, montD)
			newU := modarith.Add(ctx.Prod(U, montP), V, ctx.N)
			newV := modarith.Add(ctx.Prod(V, montP), t2, ctx.N)
			U = halveMont(newU, ctx.N)
			V = halveMont(newV, ctx.N)
			Qk = ctx.Prod(Qk, montQ)
		}
	}
	return U, V, Qk
}

// Strength selects which flavor of Lucas pseudoprime test IsLucasPseudoprime
// runs.
type Strength int

const (
	Standard Strength = iota
	Strong
	ExtraStrong
)

// IsLucasPseudoprime reports whether n passes the Lucas pseudoprime test at
// the given strength, using Selfridge parameters (Standard, Strong) or the
// extra-strong parameter search (ExtraStrong). It returns false for even n
// and for n<7 reduces to direct membership in {2,3,5}.
func IsLucasPseudoprime(n uint64, strength Strength) bool {
	if n < 7 {
		return n == 2 || n == 3 || n == 5
	}
	if n%2 == 0 {
		return false
	}

	var P, Q int64
	if strength < ExtraStrong {
		p, q, ok := SelfridgeParams(n)
		if !ok {
			return false
		}
		P, Q = p, q
	} else {
		p, ok := ExtraStrongParams(n, 1)
		if !ok {
			return false
		}
		P, Q = int64(p), 1
	}
	D := P*P - 4*Q

	d := n + 1
	s := 0
	if strength > Standard {
		for d&1 == 0 {
			s++
			d >>= 1
		}
	}

	ctx := montgomery.New(n)
	montP := montOfSigned(ctx, P)
	montD := montOfSigned(ctx, D)
	U, V, Qk := lucasChain(ctx, montP, montD, Q, d)

	switch strength {
	case Standard:
		return U == 0
	case Strong:
		if U == 0 {
			return true
		}
		for r := s; r > 0; r-- {
			if V == 0 {
				return true
			}
			if r > 1 {
				V = modarith.Sub(ctx.Square(V), modarith.Add(Qk, Qk, ctx.N), ctx.N)
				Qk = ctx.Square(Qk)
			}
		}
		return false
	default: // ExtraStrong
		if U == 0 && (V == ctx.Two || V == ctx.N-ctx.Two) {
			return true
		}
		s--
		for r := s; r > 0; r-- {
			if V == 0 {
				return true
			}
			if r > 1 {
				V = modarith.Sub(ctx.Square(V), ctx.Two, ctx.N)
			}
		}
		return false
	}
}

// IsAlmostExtraStrongLucasPseudoprime runs the "almost extra strong" Lucas
// test: it uses the extra-strong parameter search but tracks only V (not U),
// making it cheaper per round at the cost of a small, well-characterized
// false-positive rate above the plain extra-strong test. increment controls
// how the extra-strong P search steps (must be in [1,256]).
func IsAlmostExtraStrongLucasPseudoprime(n, increment uint64) bool {
	if n < 7 {
		return n == 2 || n == 3 || n == 5
	}
	if n%2 == 0 {
		return false
	}
	if increment < 1 || increment > 256 {
		panic("lucastest: increment out of range [1,256]")
	}

	P, ok := ExtraStrongParams(n, increment)
	if !ok {
		return false
	}

	d := n + 1
	s := 0
	for d&1 == 0 {
		s++
		d >>= 1
	}
	b := bits.Len64(d) - 1

	ctx := montgomery.New(n)
	montP := ctx.ToMont(P % n)
	W := modarith.Sub(ctx.Square(montP), ctx.Two, ctx.N)
	V := montP

	for b > 0 {
		b--
		T := modarith.Sub(ctx.Prod(V, W), montP, ctx.N)
		if (d>>uint(b))&1 == 1 {
			V = T
			W = modarith.Sub(ctx.Square(W), ctx.Two, ctx.N)
		} else {
			W = T
			V = modarith.Sub(ctx.Square(V), ctx.Two, ctx.N)
		}
	}

	if V == ctx.Two || V == ctx.N-ctx.Two {
		return true
	}
	s--
	for r := s; r > 0; r-- {
		if V == 0 {
			return true
		}
		if r > 1 {
			V = modarith.Sub(ctx.Square(V), ctx.Two, ctx.N)
		}
	}
	return false
}

// BPSW runs the Baillie-PSW compositeness test: a base-2 Miller-Rabin test
// composed with the almost-extra-strong Lucas test (increment 1). No
// composite n is known to pass both; n<7 is handled by direct membership.
func BPSW(n uint64) bool {
	if n < 7 {
		return n == 2 || n == 3 || n == 5
	}
	if n%2 == 0 {
		return false
	}
	if !millerrabin.Test(n, []uint64{2}) {
		return false
	}
	return IsAlmostExtraStrongLucasPseudoprime(n, 1)
}
