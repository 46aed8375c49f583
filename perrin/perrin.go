// Package perrin implements the Perrin pseudoprime test: a compositeness
// test built on the Perrin sequence P(k) = P(k-2) + P(k-3) (P(0)=3, P(1)=0,
// P(2)=2), evaluated mod n via 3x3 matrix exponentiation, preceded by a
// fast periodicity sieve over the small divisors of n.
package perrin

import "github.com/blck-snwmn/primecheck/modarith"

// mulMod3x3 computes a = a*b (mod n) for 3x3 matrices stored row-major.
func mulMod3x3(a, b *[9]uint64, n uint64) {
	var t [9]uint64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			i1 := modarith.Mul(a[3*row+0], b[0+col], n)
			i2 := modarith.Mul(a[3*row+1], b[3+col], n)
			i3 := modarith.Mul(a[3*row+2], b[6+col], n)
			t[3*row+col] = modarith.Add(modarith.Add(i1, i2, n), i3, n)
		}
	}
	*a = t
}

// powMod3x3 raises m to the k-th power mod n in place.
func powMod3x3(m *[9]uint64, k, n uint64) {
	res := [9]uint64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for k != 0 {
		if k&1 == 1 {
			mulMod3x3(&res, m, n)
		}
		k >>= 1
		if k != 0 {
			mulMod3x3(m, m, n)
		}
	}
	*m = res
}

type divSieve struct {
	div, period, offset uint16
}

// nPerrinDiv is the number of small-divisor sieve entries below.
const nPerrinDiv = 29

// perrinDivisors lists, for each small prime power d, the period of the
// Perrin sequence mod d and the bit offset into perrinMask where the
// admissible-residue bitmap for that divisor begins.
var perrinDivisors = [nPerrinDiv]divSieve{
	{2, 7, 0},
	{3, 13, 1},
	{4, 14, 2},
	{5, 24, 3},
	{7, 48, 4},
	{9, 39, 6},
	{11, 120, 8},
	{13, 183, 12},
	{17, 288, 18},
	{19, 180, 27},
	{23, 22, 33},
	{25, 120, 34},
	{29, 871, 38},
	{31, 993, 66},
	{37, 1368, 98},
	{41, 1723, 141},
	{43, 231, 195},
	{49, 336, 203},
	{53, 1404, 214},
	{59, 58, 258},
	{61, 930, 260},
	{101, 100, 290},
	{137, 391, 294},
	{167, 166, 307},
	{173, 172, 313},
	{211, 210, 319},
	{223, 111, 326},
	{271, 270, 330},
	{347, 173, 339},
}

// perrinMask packs, for every divisor's period, a bit per residue class
// marking whether a Perrin-pseudoprime n may have that residue mod the
// period; n%div==0 with a zero bit proves n composite without the matrix
// exponentiation below. Bit-exact against the reference sieve table.
var perrinMask = [...]uint32{
	22, 523, 514, 65890, 8519810, 130, 4259842, 0, 526338, 2147483904, 1644233728, 1, 8194, 1073774592, 1024, 134221824, 128, 512, 181250, 2048, 0, 1, 134217736, 1049600, 524545, 2147500288, 0, 524290, 536870912, 32768, 33554432, 2048, 0, 2, 2, 256, 65536, 64, 536875010, 32768, 256, 64, 0, 32, 1073741824, 0, 1048576, 1048832, 371200000, 0, 0, 536887552, 32, 2147487744, 2097152, 32768, 1024, 0, 1024, 536870912, 128, 512, 0, 0, 512, 0, 2147483650, 45312, 128, 0, 8388640, 0, 8388608, 8388608, 0, 2048, 4096, 92800000, 262144, 0, 65536, 4, 0, 4, 4, 4194304, 8388608, 1075838976, 536870956, 0, 134217728, 8192, 0, 8192, 8192, 0, 2, 0, 268435458, 134223392, 1073741824, 268435968, 2097152, 67108864, 0, 8192, 1073741840, 0, 0, 128, 0, 0, 512, 1450000, 8, 131136, 536870928, 0, 4, 2097152, 4096, 64, 0, 32768, 0, 0, 131072, 371200000, 2048, 33570816, 4096, 32, 1024, 536870912, 1048576, 16384, 0, 8388608, 0, 0, 0, 2, 512, 0, 128, 0, 134217728, 2, 32, 0, 0, 0, 0, 8192, 0, 1073742080, 536870912, 0, 4096, 16777216, 526336, 32, 0, 65536, 33554448, 708, 67108864, 2048, 0, 0, 536870912, 0, 536870912, 33554432, 33554432, 2147483648, 512, 64, 0, 1074003968, 512, 0, 524288, 0, 0, 0, 67108864, 524288, 1048576, 0, 131076, 0, 33554432, 131072, 0, 2, 8390656, 16384, 16777216, 134217744, 0, 131104, 0, 2, 128, 0, 131072, 8388608, 0, 0, 2, 128, 0, 0, 2, 2097152, 2155872256, 2147500032, 0, 131072, 4194304, 67108864, 0, 512, 0, 0, 32784, 0, 1048576, 0, 16, 134217728, 0, 64, 0, 1, 8, 2147483648, 2048, 8388608, 0, 0, 4096, 536871168, 128, 0, 0, 0, 134217728, 0, 0, 0, 0, 0, 0, 134217728, 0, 0, 2, 0, 2, 536872960, 0, 0, 32768, 0, 0, 0, 0, 8388608, 0, 524290, 0, 0, 32, 0, 0, 0, 0, 8192, 8388608, 512, 0, 134217728, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 512, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 2, 0, 64, 0, 4096, 0, 0, 2, 32, 1024, 0, 2, 0, 67108864, 0, 0, 1074790400, 0, 0, 0, 2, 0, 0, 0, 0, 0,
}

// IsPerrinPseudoprime reports whether n passes the Perrin pseudoprime test:
// the companion matrix of x^3-x-1 raised to the n-th power mod n has trace
// zero. n<4 is resolved directly.
func IsPerrinPseudoprime(n uint64) bool {
	if n < 4 {
		return n >= 2
	}
	for _, d := range perrinDivisors {
		if n%uint64(d.div) != 0 {
			continue
		}
		mod := n % uint64(d.period)
		word := perrinMask[uint64(d.offset)+mod/32]
		if (word>>(mod%32))&1 == 0 {
			return false
		}
	}

	m := [9]uint64{0, 1, 0, 0, 0, 1, 1, 1, 0}
	powMod3x3(&m, n, n)
	trace := modarith.Add(modarith.Add(m[0], m[4], n), m[8], n)
	return trace == 0
}
