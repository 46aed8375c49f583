// Package frobenius implements the generalized Frobenius pseudoprime test
// and its two named specializations, Frobenius-Khashin and
// Frobenius-Underwood.
package frobenius

import (
	"github.com/blck-snwmn/primecheck/lucasseq"
	"github.com/blck-snwmn/primecheck/modarith"
	"github.com/blck-snwmn/primecheck/montgomery"
	"github.com/blck-snwmn/primecheck/numtheory"
)

func absInt64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// IsFrobeniusPseudoprime runs the generalized Frobenius test for the
// quadratic x^2-Px+Q. If P==0 and Q==0, parameters are auto-selected by
// scanning P=1,5,7,9,... (skipping P=3, which forces D=1) for the first D
// with a nonzero, non-trivial Kronecker symbol. Otherwise D=P^2-4Q must not
// be a perfect square unless D==5; violating that is a programmer error
// and panics.
func IsFrobeniusPseudoprime(n uint64, P, Q int64) bool {
	if n < 7 {
		return n == 2 || n == 3 || n == 5
	}
	if n%2 == 0 {
		return false
	}

	var D int64
	k := 0
	var Vcomp uint64

	if P == 0 && Q == 0 {
		P, Q = -1, 2
		if n == 7 {
			P = 1
		}
		for k != -1 {
			P += 2
			if P == 3 {
				P = 5
			}
			D = P*P - 4*Q
			k = numtheory.Kronecker(D, n)
			if k == 0 {
				return false
			}
			if P == 10001 && numtheory.IsPerfectSquare(n) {
				return false
			}
		}
		Vcomp = 4
	} else {
		D = P*P - 4*Q
		Du := absInt64(D)
		if D != 5 && numtheory.IsPerfectSquare(Du) {
			panic("frobenius: invalid P,Q parameters (D is a non-5 perfect square)")
		}
	}

	Pu, Qu, Du := absInt64(P), absInt64(Q), absInt64(D)
	if numtheory.GCD(n, Pu*Qu*Du) != 1 {
		return false
	}

	if k == 0 {
		k = numtheory.Kronecker(D, n)
		if k == 0 {
			return false
		}
		Qu2 := modarith.Add(Qu%n, Qu%n, n)
		switch {
		case k == 1:
			Vcomp = 2
		case Q >= 0:
			Vcomp = Qu2
		default:
			Vcomp = n - Qu2
		}
	}

	var idx uint64
	if k == 1 {
		idx = n - 1
	} else {
		idx = n + 1
	}

	U, V, _ := lucasseq.Seq(n, P, Q, idx)
	return U == 0 && V == Vcomp
}

// IsFrobeniusKhashinPseudoprime runs Khashin's Frobenius-style test in the
// ring Z_n[sqrt(c)], where c is the smallest odd value with
// kronecker(c,n)=-1: it accepts iff (1+sqrt(c))^n ≡ (1-sqrt(c)) (mod n).
func IsFrobeniusKhashinPseudoprime(n uint64) bool {
	if n < 7 {
		return n == 2 || n == 3 || n == 5
	}
	if n%2 == 0 {
		return false
	}
	if numtheory.IsPerfectSquare(n) {
		return false
	}

	c := uint64(1)
	k := 0
	for {
		c += 2
		k = numtheory.Kronecker(int64(c), n)
		if k != 1 {
			break
		}
	}
	if k == 0 {
		return false
	}

	ra, rb, a, b := uint64(1), uint64(1), uint64(1), uint64(1)
	d := n - 1
	for d != 0 {
		if d&1 == 1 {
			ta, tb := ra, rb
			ra = modarith.Add(modarith.Mul(ta, a, n), modarith.Mul(modarith.Mul(tb, b, n), c, n), n)
			rb = modarith.Add(modarith.Mul(tb, a, n), modarith.Mul(ta, b, n), n)
		}
		d >>= 1
		if d != 0 {
			t := modarith.Mul(modarith.Sqr(b, n), c, n)
			b = modarith.Mul(b, a, n)
			b = modarith.Add(b, b, n)
			a = modarith.Add(modarith.Sqr(a, n), t, n)
		}
	}
	return ra == 1 && rb == n-1
}

// IsFrobeniusUnderwoodPseudoprime runs the Frobenius-Underwood (minimal
// lambda+2) test: it finds the smallest x>=0 with jacobi(x^2-4,n)=-1, then
// evaluates a degree-2 recurrence over n+1 in Montgomery form.
func IsFrobeniusUnderwoodPseudoprime(n uint64) bool {
	if n < 7 {
		return n == 2 || n == 3 || n == 5
	}
	if n%2 == 0 {
		return false
	}
	if numtheory.IsPerfectSquare(n) {
		return false
	}

	x := uint64(0)
	t := int64(-1)
	for numtheory.Jacobi(t, n) != -1 {
		x++
		t = int64(x*x) - 4
	}

	np1 := n + 1
	length := 1
	for v := np1; v>>1 != 0; v >>= 1 {
		length++
	}

	ctx := montgomery.New(n)
	mont5 := ctx.ToMont(5 % n)

	var a, b, result uint64
	if x == 0 {
		a = ctx.One
		b = ctx.Two
		result = mont5
		for bit := length - 2; bit >= 0; bit-- {
			t1 := modarith.Add(b, b, n)
			b = ctx.Prod(modarith.Sub(b, a, n), modarith.Add(b, a, n))
			a = ctx.Prod(a, t1)
			if (np1>>uint(bit))&1 == 1 {
				t1 = b
				b = modarith.Sub(modarith.Add(b, b, n), a, n)
				a = modarith.Add(modarith.Add(a, a, n), t1, n)
			}
		}
	} else {
		montX := ctx.ToMont(x % n)
		a = ctx.One
		b = ctx.Two
		multiplier := modarith.Add(montX, ctx.Two, n)
		result = modarith.Add(modarith.Add(montX, montX, n), mont5, n)
		for bit := length - 2; bit >= 0; bit-- {
			t1 := modarith.Add(ctx.Prod(a, montX), modarith.Add(b, b, n), n)
			b = ctx.Prod(modarith.Sub(b, a, n), modarith.Add(b, a, n))
			a = ctx.Prod(a, t1)
			if (np1>>uint(bit))&1 == 1 {
				t1 = b
				b = modarith.Sub(modarith.Add(b, b, n), a, n)
				a = modarith.Add(ctx.Prod(a, multiplier), t1, n)
			}
		}
	}
	return a == 0 && b == result
}
