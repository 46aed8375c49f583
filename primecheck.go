// Package primecheck provides deterministic and probabilistic primality
// tests for machine-word (64-bit) integers: Fermat and Miller-Rabin,
// the Lucas-sequence family (standard/strong/extra-strong/almost-extra
// -strong), BPSW, the generalized and specialized Frobenius tests, the
// Perrin pseudoprime test, and the Lucas-Lehmer Mersenne test. The
// centerpiece is IsProbablePrime, a dispatcher that routes n through
// trial division, a single-base Miller-Rabin hash table below 2^32, and
// BPSW above it.
package primecheck

import (
	"sync/atomic"

	"github.com/blck-snwmn/primecheck/frobenius"
	"github.com/blck-snwmn/primecheck/lucasseq"
	"github.com/blck-snwmn/primecheck/lucastest"
	"github.com/blck-snwmn/primecheck/mersenne"
	"github.com/blck-snwmn/primecheck/millerrabin"
	"github.com/blck-snwmn/primecheck/numtheory"
	"github.com/blck-snwmn/primecheck/perrin"
)

var verbosity atomic.Int32

// SetVerbose sets the package-wide diagnostic verbosity level. It has no
// effect on any test's result; it exists only so callers that previously
// relied on the reference implementation's stderr tracing have somewhere
// to route that intent.
func SetVerbose(level int) {
	verbosity.Store(int32(level))
}

// Verbose returns the current diagnostic verbosity level set by SetVerbose.
func Verbose() int {
	return int(verbosity.Load())
}

// mrBasesHash32 is a 256-entry perfect-hash witness table: hashing any
// n<2^32 down to one of these 256 bases and running a single Miller-Rabin
// round with it is sufficient to decide primality exactly (Forišek and
// Jančina, 2015).
var mrBasesHash32 = [256]uint16{
	157, 1150, 304, 8758, 362, 15524, 1743, 212, 1056, 1607, 140, 3063, 160, 913, 5842, 2013,
	598, 1929, 696, 1474, 3006, 524, 155, 705, 694, 1238, 1851, 1053, 585, 626, 603, 222,
	1109, 1105, 604, 646, 606, 1249, 1553, 5609, 515, 548, 1371, 152, 2824, 532, 3556, 831,
	88, 185, 1355, 501, 1556, 317, 582, 4739, 4710, 145, 1045, 2976, 2674, 318, 1293, 10934,
	1434, 1178, 3159, 26, 3526, 1859, 6467, 602, 699, 5113, 3152, 2002, 2361, 101, 464, 68,
	813, 446, 1368, 4637, 368, 1068, 307, 2820, 6189, 10457, 569, 1690, 551, 237, 226, 3235,
	405, 3179, 1101, 610, 56, 14647, 1687, 247, 8109, 5172, 1725, 1248, 536, 2869, 1047, 899,
	12285, 1026, 250, 1867, 1432, 336, 5175, 1632, 5169, 39, 362, 290, 1372, 11988, 1329, 2168,
	34, 8781, 495, 399, 34, 29, 4333, 1669, 166, 6405, 7357, 694, 579, 746, 1278, 6347,
	7751, 179, 1085, 11734, 1615, 3575, 4253, 7894, 3097, 591, 1354, 1676, 151, 702, 7, 5607,
	2565, 440, 566, 112, 3622, 1241, 1193, 2324, 1530, 1423, 548, 3341, 2012, 6305, 2410, 39,
	106, 3046, 1507, 1325, 1807, 2323, 5645, 1524, 1301, 1522, 238, 1226, 2476, 2126, 1677, 3288,
	1981, 18481, 287, 1011, 2877, 563, 7654, 1231, 776, 3907, 117, 174, 1124, 199, 16838, 164,
	41, 313, 1692, 1574, 1021, 2804, 1093, 1263, 956, 8508, 1221, 3743, 1318, 1304, 1344, 7628,
	10739, 228, 30, 520, 103, 1621, 6278, 847, 4537, 272, 2213, 1989, 1826, 915, 318, 401,
	924, 227, 911, 15505, 1670, 212, 1391, 700, 3254, 4931, 3637, 2822, 1726, 137, 1843, 1300,
}

// smallPrimes are the trial-division witnesses tried before any
// probabilistic test: passing all of them and being below 59^2 settles
// primality outright.
var smallPrimes = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// IsProbablePrime implements the dispatcher: trial division by the first
// sixteen primes, a single-base Miller-Rabin round for n<2^32 (chosen via
// mrBasesHash32), and BPSW above that. It returns 2 for prime, 0 for
// composite - the reference implementation's {0,2} convention, not a
// boolean. Every path, BPSW included, reports a pass as 2.
func IsProbablePrime(n uint64) int {
	if n < 11 {
		if n == 2 || n == 3 || n == 5 || n == 7 {
			return 2
		}
		return 0
	}
	for _, p := range smallPrimes {
		if n%p == 0 {
			if n == p {
				return 2
			}
			return 0
		}
	}
	if n < 59*59 {
		return 2
	}

	if n <= 0xFFFFFFFF {
		x := uint32(n)
		x = ((x >> 16) ^ x) * 0x45d9f3b
		x = ((x >> 16) ^ x) & 0xFF
		base := uint64(mrBasesHash32[x])
		if millerrabin.Test(n, []uint64{base}) {
			return 2
		}
		return 0
	}

	if lucastest.BPSW(n) {
		return 2
	}
	return 0
}

// IsPseudoprime reports whether n is a Fermat pseudoprime to base a.
func IsPseudoprime(n, a uint64) bool {
	return millerrabin.IsFermatPseudoprime(n, a)
}

// MillerRabin runs the strong probable-prime test against every base in
// bases.
func MillerRabin(n uint64, bases []uint64) bool {
	return millerrabin.Test(n, bases)
}

// BPSW runs the Baillie-PSW compositeness test.
func BPSW(n uint64) bool {
	return lucastest.BPSW(n)
}

// IsLucasPseudoprime runs the Lucas pseudoprime test at the given strength
// (0=standard, 1=strong, 2=extra-strong).
func IsLucasPseudoprime(n uint64, strength int) bool {
	return lucastest.IsLucasPseudoprime(n, lucastest.Strength(strength))
}

// IsAlmostExtraStrongLucasPseudoprime runs the almost-extra-strong Lucas
// pseudoprime test with the given parameter-search increment.
func IsAlmostExtraStrongLucasPseudoprime(n, increment uint64) bool {
	return lucastest.IsAlmostExtraStrongLucasPseudoprime(n, increment)
}

// IsPerrinPseudoprime runs the Perrin pseudoprime test.
func IsPerrinPseudoprime(n uint64) bool {
	return perrin.IsPerrinPseudoprime(n)
}

// IsFrobeniusPseudoprime runs the generalized Frobenius pseudoprime test
// for x^2-Px+Q, auto-selecting parameters when P==0 and Q==0.
func IsFrobeniusPseudoprime(n uint64, P, Q int64) bool {
	return frobenius.IsFrobeniusPseudoprime(n, P, Q)
}

// IsFrobeniusKhashinPseudoprime runs the Frobenius-Khashin test.
func IsFrobeniusKhashinPseudoprime(n uint64) bool {
	return frobenius.IsFrobeniusKhashinPseudoprime(n)
}

// IsFrobeniusUnderwoodPseudoprime runs the Frobenius-Underwood test.
func IsFrobeniusUnderwoodPseudoprime(n uint64) bool {
	return frobenius.IsFrobeniusUnderwoodPseudoprime(n)
}

// IsMersennePrime reports whether 2^p-1 is known prime (1), known
// composite (0), or undetermined (-1).
func IsMersennePrime(p uint64) int {
	return mersenne.IsMersennePrime(p)
}

// LucasLehmer runs the Lucas-Lehmer test on the Mersenne number 2^p-1,
// using IsProbablePrime to reject a composite exponent cheaply.
func LucasLehmer(p uint64) bool {
	return mersenne.LucasLehmer(p, func(x uint64) bool { return IsProbablePrime(x) == 2 })
}

// LucasSeq computes (U_k, V_k, Q^k) mod n for Lucas parameters (P, Q).
func LucasSeq(n uint64, P, Q int64, k uint64) (U, V, Qk uint64) {
	return lucasseq.Seq(n, P, Q, k)
}

// LucasU computes the signed term U_k(P,Q), returning ok=false on overflow.
func LucasU(P, Q int64, k uint64) (int64, bool) {
	return lucasseq.LucasU(P, Q, k)
}

// LucasV computes the signed term V_k(P,Q), returning ok=false on overflow.
func LucasV(P, Q int64, k uint64) (int64, bool) {
	return lucasseq.LucasV(P, Q, k)
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b uint64) uint64 {
	return numtheory.GCD(a, b)
}

// Isqrt returns floor(sqrt(n)).
func Isqrt(n uint64) uint64 {
	return numtheory.Isqrt(n)
}

// IsPerfectSquare reports whether n is a perfect square.
func IsPerfectSquare(n uint64) bool {
	return numtheory.IsPerfectSquare(n)
}

// Jacobi computes the Jacobi symbol (a/m) for signed a and positive odd m.
func Jacobi(a int64, m uint64) int {
	return numtheory.Jacobi(a, m)
}

// Kronecker computes the Kronecker symbol (a/m) for signed a and any
// non-negative m.
func Kronecker(a int64, m uint64) int {
	return numtheory.Kronecker(a, m)
}
