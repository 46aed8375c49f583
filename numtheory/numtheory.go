// Package numtheory provides the generic number-theoretic helpers the
// primality tests are built on: greatest common divisor, integer square
// root, perfect-square detection, and the Jacobi and Kronecker symbols.
package numtheory

import (
	"math"
	"math/bits"
)

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// sqrGreater reports whether x*x > n without risking a 64-bit overflow.
func sqrGreater(x, n uint64) bool {
	hi, lo := bits.Mul64(x, x)
	if hi != 0 {
		return true
	}
	return lo > n
}

// Isqrt returns floor(sqrt(n)).
func Isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := uint64(math.Sqrt(float64(n)))
	// math.Sqrt can be off by one in either direction near the boundary;
	// nudge to the exact floor.
	for x > 0 && sqrGreater(x, n) {
		x--
	}
	for !sqrGreater(x+1, n) {
		x++
	}
	return x
}

// IsPerfectSquare reports whether n is a perfect square.
func IsPerfectSquare(n uint64) bool {
	r := Isqrt(n)
	hi, lo := bits.Mul64(r, r)
	return hi == 0 && lo == n
}

// Jacobi computes the Jacobi symbol (a/m) for signed a and positive odd m.
// It returns 0 if m is even or non-positive, and 0 whenever gcd(a,m) > 1.
func Jacobi(a int64, m uint64) int {
	if m == 0 || m%2 == 0 {
		return 0
	}
	j := 1
	var n uint64
	if a < 0 {
		n = uint64(-a)
	} else {
		n = uint64(a)
	}
	if a < 0 && m%4 == 3 {
		j = -j
	}
	for n != 0 {
		for n%2 == 0 {
			n >>= 1
			if m%8 == 3 || m%8 == 5 {
				j = -j
			}
		}
		n, m = m, n
		if n%4 == 3 && m%4 == 3 {
			j = -j
		}
		n = n % m
	}
	if m == 1 {
		return j
	}
	return 0
}

// Kronecker computes the Kronecker symbol (a/m) for signed a and any
// non-negative m, extending Jacobi to even m by peeling off factors of 2
// and consulting a mod 8.
func Kronecker(a int64, m uint64) int {
	if m == 0 {
		if a == 1 || a == -1 {
			return 1
		}
		return 0
	}
	e := 0
	for m&1 == 0 {
		m >>= 1
		e++
	}
	sign := 1
	if e > 0 {
		if a%2 == 0 {
			return 0
		}
		amod8 := a % 8
		if amod8 < 0 {
			amod8 += 8
		}
		if (amod8 == 3 || amod8 == 5) && e%2 == 1 {
			sign = -1
		}
	}
	return sign * Jacobi(a, m)
}
