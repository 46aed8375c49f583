package mersenne

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func isPrimeTrialDivision(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for f := uint64(3); f*f <= n; f += 2 {
		if n%f == 0 {
			return false
		}
	}
	return true
}

func TestIsMersennePrimeKnownExponents(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, IsMersennePrime(2))
	require.Equal(t, 1, IsMersennePrime(31))
	require.Equal(t, 1, IsMersennePrime(127))
	require.Equal(t, 1, IsMersennePrime(521))
}

func TestIsMersennePrimeKnownComposite(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, IsMersennePrime(11))
	require.Equal(t, 0, IsMersennePrime(67))
}

func TestIsMersennePrimeUnknownRegion(t *testing.T) {
	t.Parallel()

	require.Equal(t, -1, IsMersennePrime(40000000))
}

func TestLucasLehmerKnownMersennePrimeExponents(t *testing.T) {
	t.Parallel()

	require.True(t, LucasLehmer(2, isPrimeTrialDivision))
	require.True(t, LucasLehmer(3, isPrimeTrialDivision))
	require.True(t, LucasLehmer(5, isPrimeTrialDivision))
	require.True(t, LucasLehmer(7, isPrimeTrialDivision))
	require.True(t, LucasLehmer(13, isPrimeTrialDivision))
	require.True(t, LucasLehmer(17, isPrimeTrialDivision))
	require.True(t, LucasLehmer(19, isPrimeTrialDivision))
	require.True(t, LucasLehmer(31, isPrimeTrialDivision))
}

func TestLucasLehmerKnownComposite(t *testing.T) {
	t.Parallel()

	require.False(t, LucasLehmer(11, isPrimeTrialDivision))
	require.False(t, LucasLehmer(23, isPrimeTrialDivision))
}

func TestLucasLehmerRejectsCompositeExponentWithoutRunning(t *testing.T) {
	t.Parallel()

	calls := 0
	require.False(t, LucasLehmer(9, func(uint64) bool {
		calls++
		return false
	}))
	require.Equal(t, 1, calls)
}

func TestLucasLehmerPanicsAboveWordSize(t *testing.T) {
	t.Parallel()

	// 67 is prime, so the exponent pretest passes and the p>64 guard fires.
	require.Panics(t, func() { LucasLehmer(67, isPrimeTrialDivision) })
}
