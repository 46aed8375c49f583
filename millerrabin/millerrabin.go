// Package millerrabin implements the strong probable-prime (Miller-Rabin)
// test and the simpler Fermat test it generalizes, both running in
// Montgomery form over a 64-bit modulus.
package millerrabin

import (
	"github.com/blck-snwmn/primecheck/modarith"
	"github.com/blck-snwmn/primecheck/montgomery"
)

// IsFermatPseudoprime reports whether n is a Fermat pseudoprime to base a:
// a^(n-1) ≡ 1 (mod n). Panics if a < 2.
func IsFermatPseudoprime(n, a uint64) bool {
	if n < 5 {
		return n == 2 || n == 3
	}
	if a < 2 {
		panic("millerrabin: base is invalid")
	}
	if a >= n {
		a %= n
		if a <= 1 || a == n-1 {
			return true
		}
	}
	if n&1 == 0 {
		return modarith.Pow(a, n-1, n) == 1
	}
	ctx := montgomery.New(n)
	x := ctx.PowMod(ctx.ToMont(a), n-1)
	return x == ctx.One
}

// Test runs the Miller-Rabin test on odd n>3 against every base in bases,
// in Montgomery form. It returns true ("probably prime") iff every base
// accepts. Panics if n<=3 or any base is below 2.
func Test(n uint64, bases []uint64) bool {
	if n <= 3 {
		panic("millerrabin: Test called with n <= 3")
	}
	if n&1 == 0 {
		return false
	}

	ctx := montgomery.New(n)
	u := n - 1
	t := 0
	for u&1 == 0 {
		t++
		u >>= 1
	}
	nr := n - ctx.One

	for _, a := range bases {
		if a < 2 {
			panic("millerrabin: base is invalid")
		}
		ar := a
		if ar >= n {
			ar %= n
		}
		if ar <= 1 || ar == n-1 {
			continue // base gives no information; accept
		}

		d := ctx.PowMod(ctx.ToMont(ar), u)
		if d == ctx.One || d == nr {
			continue
		}

		accepted := false
		for i := 1; i < t; i++ {
			d = ctx.Square(d)
			if d == nr {
				accepted = true
				break
			}
			if d == ctx.One {
				return false
			}
		}
		if !accepted {
			return false
		}
	}
	return true
}

