package lucasseq

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blck-snwmn/primecheck/modarith"
)

// checkIdentity verifies V_k^2 - D*U_k^2 ≡ 4*Q^k (mod n).
func checkIdentity(t *testing.T, n uint64, P, Q int64, k uint64) {
	t.Helper()
	U, V, Qk := Seq(n, P, Q, k)

	Pmod := reduceSigned(P, n)
	Qmod := reduceSigned(Q, n)
	Dmod := modarith.Sub(modarith.Mul(Pmod, Pmod, n), modarith.Mul(4%n, Qmod, n), n)

	lhs := modarith.Sub(modarith.Sqr(V, n), modarith.Mul(Dmod, modarith.Sqr(U, n), n), n)
	rhs := modarith.Mul(4%n, Qk, n)
	require.Equal(t, rhs, lhs, "identity failed for n=%d P=%d Q=%d k=%d", n, P, Q, k)
}

func TestSeqIdentityOddModulus(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := uint64(2*r.Intn(50000) + 3)
		P := int64(r.Intn(21) - 10)
		Q := int64(r.Intn(21) - 10)
		k := uint64(r.Intn(100000) + 1)
		checkIdentity(t, n, P, Q, k)
	}
}

func TestSeqIdentityEvenModulus(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		n := uint64(2*(r.Intn(50000)+1))
		P := int64(r.Intn(21) - 10)
		Q := int64(r.Intn(21) - 10)
		k := uint64(r.Intn(100000) + 1)
		checkIdentity(t, n, P, Q, k)
	}
}

func TestSeqSpecializations(t *testing.T) {
	t.Parallel()

	n := uint64(1000003)
	for k := uint64(1); k < 5000; k += 37 {
		checkIdentity(t, n, 1, -1, k) // P=1, Q=-1 fast path
		checkIdentity(t, n, 2, -3, k) // generic path
	}
}

func TestSeqQEquals1(t *testing.T) {
	t.Parallel()

	n := uint64(999983)
	for k := uint64(1); k < 5000; k += 31 {
		checkIdentity(t, n, 3, 1, k)
	}
}

func TestSeqZeroIndex(t *testing.T) {
	t.Parallel()

	U, V, Qk := Seq(11, 2, 3, 0)
	require.Equal(t, uint64(0), U)
	require.Equal(t, uint64(2), V)
	require.Equal(t, uint64(3), Qk)
}

func TestSeqPanicsOnTrivialModulus(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Seq(1, 1, 1, 5) })
	require.Panics(t, func() { Seq(0, 1, 1, 5) })
}

func TestLucasUVAgainstSmallCases(t *testing.T) {
	t.Parallel()

	// Standard Fibonacci/Lucas numbers: P=1, Q=-1.
	// U_k = Fibonacci(k), V_k = Lucas(k).
	fib := []int64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	luc := []int64{2, 1, 3, 4, 7, 11, 18, 29, 47, 76, 123}
	for k := 0; k < len(fib); k++ {
		u, ok := LucasU(1, -1, uint64(k))
		require.True(t, ok)
		require.Equal(t, fib[k], u, "U_%d", k)

		v, ok := LucasV(1, -1, uint64(k))
		require.True(t, ok)
		require.Equal(t, luc[k], v, "V_%d", k)
	}
}

func TestLucasUOverflowSignaled(t *testing.T) {
	t.Parallel()

	_, ok := LucasU(1, -1, 200)
	require.False(t, ok, "expected overflow signal for a large Fibonacci index")
}
