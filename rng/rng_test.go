package rng_test

import (
	"testing"

	"github.com/andreasmzz/metaheuristics/rng"
	"github.com/stretchr/testify/require"
)

func TestFromSeed_ZeroUsesDefault(t *testing.T) {
	a := rng.FromSeed(0)
	b := rng.FromSeed(rng.DefaultSeed)
	require.Equal(t, a.Int63(), b.Int63())
}

func TestFromSeed_Deterministic(t *testing.T) {
	a := rng.FromSeed(42)
	b := rng.FromSeed(42)
	for i := 0; i < 16; i++ {
		require.Equal(t, a.Int63(), b.Int63())
	}
}

func TestDerive_IndependentStreams(t *testing.T) {
	base := rng.FromSeed(7)
	s1 := rng.Derive(base, 1)
	s2 := rng.Derive(base, 2)
	require.NotEqual(t, s1.Int63(), s2.Int63())
}

func TestDerive_NilBaseIsDeterministic(t *testing.T) {
	a := rng.Derive(nil, 3)
	b := rng.Derive(nil, 3)
	require.Equal(t, a.Int63(), b.Int63())
}

func TestShuffleInts_Permutes(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7}
	want := append([]int(nil), a...)
	rng.ShuffleInts(a, rng.FromSeed(9))
	require.ElementsMatch(t, want, a)
}

func TestShuffleInts_SmallSlicesNoop(t *testing.T) {
	empty := []int{}
	rng.ShuffleInts(empty, rng.FromSeed(1))
	require.Empty(t, empty)

	single := []int{5}
	rng.ShuffleInts(single, rng.FromSeed(1))
	require.Equal(t, []int{5}, single)
}

func TestPermRange(t *testing.T) {
	p := rng.PermRange(10, rng.FromSeed(1))
	require.Len(t, p, 10)
	seen := make(map[int]bool, 10)
	for _, v := range p {
		require.False(t, seen[v])
		seen[v] = true
	}
}

func TestPermRange_Negative(t *testing.T) {
	require.Nil(t, rng.PermRange(-1, nil))
}

func TestPermRange_Deterministic(t *testing.T) {
	p1 := rng.PermRange(20, rng.FromSeed(123))
	p2 := rng.PermRange(20, rng.FromSeed(123))
	require.Equal(t, p1, p2)
}
