package frobenius

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsFrobeniusPseudoprimeAutoSelectAgainstKnownPrimes(t *testing.T) {
	t.Parallel()

	primes := []uint64{7, 11, 13, 17, 19, 101, 7919, 999999937}
	for _, p := range primes {
		require.True(t, IsFrobeniusPseudoprime(p, 0, 0), "%d", p)
	}
}

func TestIsFrobeniusPseudoprimeExplicitParamsAgainstKnownPrimes(t *testing.T) {
	t.Parallel()

	primes := []uint64{11, 13, 17, 19, 101, 7919}
	for _, p := range primes {
		require.True(t, IsFrobeniusPseudoprime(p, 1, -1), "%d", p)
	}
}

func TestIsFrobeniusPseudoprimeRejectsEven(t *testing.T) {
	t.Parallel()

	require.False(t, IsFrobeniusPseudoprime(100, 0, 0))
}

func TestIsFrobeniusPseudoprimeSmallValues(t *testing.T) {
	t.Parallel()

	require.True(t, IsFrobeniusPseudoprime(2, 0, 0))
	require.True(t, IsFrobeniusPseudoprime(5, 0, 0))
	require.False(t, IsFrobeniusPseudoprime(4, 0, 0))
}

func TestIsFrobeniusPseudoprimePanicsOnInvalidParams(t *testing.T) {
	t.Parallel()

	// D = 3^2-4*1 = 5 is allowed (explicitly excluded from the perfect
	// square check), but D = 4^2-4*3 = 4 is a non-5 perfect square.
	require.NotPanics(t, func() { IsFrobeniusPseudoprime(101, 3, 1) })
	require.Panics(t, func() { IsFrobeniusPseudoprime(101, 4, 3) })
}

func TestIsFrobeniusKhashinPseudoprimeAgainstKnownPrimes(t *testing.T) {
	t.Parallel()

	primes := []uint64{7, 11, 13, 17, 19, 101, 7919, 999999937}
	for _, p := range primes {
		require.True(t, IsFrobeniusKhashinPseudoprime(p), "%d", p)
	}
}

func TestIsFrobeniusKhashinPseudoprimeRejectsPerfectSquare(t *testing.T) {
	t.Parallel()

	require.False(t, IsFrobeniusKhashinPseudoprime(121))
}

func TestIsFrobeniusUnderwoodPseudoprimeAgainstKnownPrimes(t *testing.T) {
	t.Parallel()

	primes := []uint64{7, 11, 13, 17, 19, 101, 7919, 999999937}
	for _, p := range primes {
		require.True(t, IsFrobeniusUnderwoodPseudoprime(p), "%d", p)
	}
}

func TestIsFrobeniusUnderwoodPseudoprimeRejectsPerfectSquareAndEven(t *testing.T) {
	t.Parallel()

	require.False(t, IsFrobeniusUnderwoodPseudoprime(121))
	require.False(t, IsFrobeniusUnderwoodPseudoprime(100))
}

func TestIsFrobeniusUnderwoodPseudoprimeAgainstKnownComposites(t *testing.T) {
	t.Parallel()

	composites := []uint64{9, 15, 21, 341, 561, 1105}
	for _, c := range composites {
		require.False(t, IsFrobeniusUnderwoodPseudoprime(c), "%d", c)
	}
}
