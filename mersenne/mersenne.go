// Package mersenne implements the Lucas-Lehmer primality test for Mersenne
// numbers 2^p-1 and a fast lookup against the known Mersenne exponents.
package mersenne

import "github.com/blck-snwmn/primecheck/modarith"

// knownMersennePrimes lists every exponent p for which 2^p-1 is known to be
// prime, in increasing order.
var knownMersennePrimes = [...]uint32{
	2, 3, 5, 7, 13, 17, 19, 31, 61, 89, 107, 127, 521, 607, 1279, 2203, 2281,
	3217, 4253, 4423, 9689, 9941, 11213, 19937, 21701, 23209, 44497, 86243,
	110503, 132049, 216091, 756839, 859433, 1257787, 1398269, 2976221,
	3021377, 6972593, 13466917, 20996011, 24036583, 25964951, 30402457,
	32582657, 37156667, 42643801, 43112609, 57885161,
}

// lastCheckedMersenne is the largest exponent below which every Mersenne
// number has been exhaustively checked: below it, absence from
// knownMersennePrimes means composite; at or above it, absence is unknown.
const lastCheckedMersenne = 33720287

// IsMersennePrime reports whether 2^p-1 is known to be prime (1), known to
// be composite (0), or undetermined by the known-exponent table (-1).
func IsMersennePrime(p uint64) int {
	for _, known := range knownMersennePrimes {
		if p == uint64(known) {
			return 1
		}
	}
	if p < lastCheckedMersenne {
		return 0
	}
	return -1
}

// LucasLehmer runs the Lucas-Lehmer test on the Mersenne number 2^p-1: the
// sequence s_0=4, s_k=s_(k-1)^2-2 (mod 2^p-1) is evaluated for p-2 steps;
// 2^p-1 is prime iff s_(p-2)==0. p must satisfy 2<=p<=64 (the test operates
// on a single machine word); isProbablePrime is used to reject composite
// exponents cheaply before doing the O(p) squaring work, since a composite
// p always yields a composite 2^p-1.
func LucasLehmer(p uint64, isProbablePrime func(uint64) bool) bool {
	if p == 2 {
		return true
	}
	if !isProbablePrime(p) {
		return false
	}
	if p > 64 {
		panic("mersenne: LucasLehmer called with p > 64")
	}

	mp := ^uint64(0) >> (64 - p)
	V := uint64(4)
	for k := uint64(3); k <= p; k++ {
		V = modarith.MulSub(V, V, 2%mp, mp)
	}
	return V == 0
}
