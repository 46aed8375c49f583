package lucastest

import "github.com/blck-snwmn/primecheck/numtheory"

// SelfridgeParams selects the Selfridge (P, Q) pair used by the standard
// and strong Lucas tests: D ranges over 5, -7, 9, -11, 13, ... (increment 2,
// alternating sign) until the first D with gcd(|D|,n)=1 and
// jacobi(D,n)=-1. ok is false if a non-trivial gcd is found, or if n turns
// out to be a perfect square once D reaches 21.
func SelfridgeParams(n uint64) (P, Q int64, ok bool) {
	Du := uint64(5)
	sign := int64(1)
	var D int64
	for {
		D = int64(Du) * sign
		g := numtheory.GCD(Du, n)
		if g > 1 && g != n {
			return 0, 0, false
		}
		if numtheory.Jacobi(D, n) == -1 {
			break
		}
		if Du == 21 && numtheory.IsPerfectSquare(n) {
			return 0, 0, false
		}
		Du += 2
		sign = -sign
	}
	P = 1
	Q = (1 - D) / 4
	return P, Q, true
}

// ExtraStrongParams selects the smallest P >= 3 (stepping by increment)
// with jacobi(P^2-4, n) = -1 and gcd(P^2-4, n) in {1, n}, as used by the
// extra-strong and almost-extra-strong Lucas tests (Q is fixed at 1).
// Panics if P exceeds 65535 without finding a suitable value.
func ExtraStrongParams(n, increment uint64) (P uint64, ok bool) {
	P = 3
	for {
		D := int64(P*P) - 4
		absD := uint64(D) // D is always positive here since P >= 3
		g := numtheory.GCD(absD, n)
		if g > 1 && g != n {
			return 0, false
		}
		if numtheory.Jacobi(D, n) == -1 {
			break
		}
		if P == 3+20*increment && numtheory.IsPerfectSquare(n) {
			return 0, false
		}
		P += increment
		if P > 65535 {
			panic("lucastest: P exceeded 65535 selecting extra-strong Lucas parameters")
		}
	}
	if P >= n {
		P %= n
	}
	return P, true
}
