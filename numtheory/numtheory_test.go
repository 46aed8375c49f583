package numtheory

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(6), GCD(54, 24))
	require.Equal(t, uint64(1), GCD(17, 5))
	require.Equal(t, uint64(5), GCD(0, 5))
	require.Equal(t, uint64(5), GCD(5, 0))
}

func TestIsqrt(t *testing.T) {
	t.Parallel()

	for n := uint64(0); n < 100000; n++ {
		r := Isqrt(n)
		require.LessOrEqual(t, r*r, n)
		require.Greater(t, (r+1)*(r+1), n)
	}

	require.Equal(t, uint64(4294967295), Isqrt(18446744073709551615))
}

func TestIsPerfectSquare(t *testing.T) {
	t.Parallel()

	for i := uint64(0); i < 1000; i++ {
		require.True(t, IsPerfectSquare(i*i))
		if i > 0 { // 0*0+1 = 1 is itself a square
			require.False(t, IsPerfectSquare(i*i+1))
		}
	}
}

func TestJacobiKnownValues(t *testing.T) {
	t.Parallel()

	// (1/n) is always 1.
	for _, m := range []uint64{1, 3, 5, 7, 9, 101} {
		require.Equal(t, 1, Jacobi(1, m))
	}

	// (a/1) = 1 for any a.
	require.Equal(t, 1, Jacobi(42, 1))
	require.Equal(t, 1, Jacobi(-17, 1))

	// gcd(a,m) > 1 implies 0.
	require.Equal(t, 0, Jacobi(3, 9))
	require.Equal(t, 0, Jacobi(21, 15))

	// A few textbook values.
	require.Equal(t, 1, Jacobi(2, 15))
	require.Equal(t, 1, Jacobi(5, 21))
	require.Equal(t, -1, Jacobi(5, 23))
}

func TestJacobiMultiplicative(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		m := uint64(2*r.Intn(5000) + 1)
		if m == 1 {
			continue
		}
		a := int64(r.Intn(1000) + 1)
		b := int64(r.Intn(1000) + 1)
		lhs := Jacobi(a*b, m)
		rhs := Jacobi(a, m) * Jacobi(b, m)
		require.Equal(t, rhs, lhs, "a=%d b=%d m=%d", a, b, m)
	}
}

func TestKronecker2(t *testing.T) {
	t.Parallel()

	// Kronecker(a,2): 0 if a even, 1 if a = ±1 mod 8, -1 if a = ±3 mod 8.
	require.Equal(t, 0, Kronecker(4, 2))
	require.Equal(t, 1, Kronecker(1, 2))
	require.Equal(t, 1, Kronecker(7, 2))
	require.Equal(t, -1, Kronecker(3, 2))
	require.Equal(t, -1, Kronecker(5, 2))
}

func TestKroneckerAgreesWithJacobiOnOddModulus(t *testing.T) {
	t.Parallel()

	for m := uint64(3); m < 200; m += 2 {
		for a := int64(-20); a < 20; a++ {
			require.Equal(t, Jacobi(a, m), Kronecker(a, m), "a=%d m=%d", a, m)
		}
	}
}
