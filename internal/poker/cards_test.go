package poker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidCard(t *testing.T) {
	for _, card := range []int{0, 1, 2, 3, 5, 8, 13, 21, 34} {
		require.True(t, IsValidCard(card), "card %d must be valid", card)
	}

	for _, v := range []int{-1, 4, 6, 7, 9, 20, 35, 100} {
		require.False(t, IsValidCard(v), "value %d must be invalid", v)
	}
}

func TestParseCard(t *testing.T) {
	n, err := ParseCard("13")
	require.NoError(t, err)
	require.Equal(t, 13, n)

	_, err = ParseCard("4")
	require.ErrorIs(t, err, ErrInvalidCard)

	_, err = ParseCard("abc")
	require.ErrorIs(t, err, ErrInvalidCard)

	_, err = ParseCard("")
	require.ErrorIs(t, err, ErrInvalidCard)
}

func TestAllValid(t *testing.T) {
	votes := []Vote{{Value: "5"}, {Value: "8"}}
	require.True(t, AllValid(votes))

	votes = append(votes, Vote{Value: "4"})
	require.False(t, AllValid(votes))

	require.False(t, AllValid([]Vote{{Value: "?"}}))
}

func TestAverage(t *testing.T) {
	require.Equal(t, 0.0, Average(nil))
	require.Equal(t, 5.0, Average([]int{5, 5, 5}))
	require.Equal(t, 5.5, Average([]int{3, 8}))
}

func TestMedianIsLowerMedian(t *testing.T) {
	// нечетное количество: середина
	require.Equal(t, 5, Median([]int{8, 3, 5}))
	// четное количество: элемент с индексом n/2, не интерполяция
	require.Equal(t, 5, Median([]int{5, 3}))
	require.Equal(t, 8, Median([]int{13, 3, 8, 5}))
	require.Equal(t, 0, Median(nil))
}

func TestModeFirstEncounteredWinsTie(t *testing.T) {
	// при равной частоте побеждает встреченное первым
	require.Equal(t, 3, Mode([]int{3, 5, 3, 5}))
	require.Equal(t, 5, Mode([]int{5, 3, 5, 3}))
	require.Equal(t, 8, Mode([]int{8, 13}))

	// обычный случай: наибольшая частота
	require.Equal(t, 5, Mode([]int{3, 5, 5, 8}))
	require.Equal(t, 13, Mode([]int{13, 13, 13, 5}))
}

func TestHasConsensus(t *testing.T) {
	require.False(t, HasConsensus(nil))
	require.False(t, HasConsensus([]int{}))
	require.True(t, HasConsensus([]int{5}))
	require.True(t, HasConsensus([]int{8, 8, 8}))
	require.False(t, HasConsensus([]int{8, 8, 5}))
}
