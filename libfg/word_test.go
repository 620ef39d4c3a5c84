package libfg

import (
	"math/rand"
	"testing"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet(t *testing.T) {
	letter, err := ABC.Letter("a")
	require.NoError(t, err)
	assert.Equal(t, -1, letter)

	letter, err = LowerABC.Letter("a")
	require.NoError(t, err)
	assert.Equal(t, 1, letter)

	_, err = ABC.Letter("?")
	assert.ErrorIs(t, err, freegroup.ErrInvalidInput)

	assert.Equal(t, "1", ABC.Spell(nil))
	assert.Equal(t, "AbZz", ABC.Spell([]int{1, -2, 26, -26}))

	letters, err := ABC.Decode("1A1b")
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2}, letters)

	sep := NewAlphabet("e", []string{"x1", "x2"}, []string{"X1", "X2"}, "*")
	letters, err = sep.Decode("x1*X2*e")
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2}, letters)
	assert.Equal(t, "x2*X1", sep.Spell([]int{2, -1}))
}

func TestWordReduction(t *testing.T) {
	W, err := NewWord([]int{1, 2, -2, -1, 3})
	require.NoError(t, err)
	assert.Equal(t, Word{3}, W)

	// cancellation never wraps around the ends of a word
	W, err = NewWord([]int{3, -3, 1, 2, -1})
	require.NoError(t, err)
	assert.Equal(t, Word{1, 2, -1}, W)

	_, err = NewWord([]int{1, 0})
	assert.ErrorIs(t, err, freegroup.ErrInvalidInput)

	W, err = ParseWord("ABba", nil)
	require.NoError(t, err)
	assert.Empty(t, W)
	assert.Equal(t, "1", W.String())
}

func TestWordArithmetic(t *testing.T) {
	X, _ := ParseWord("ABC", nil)
	Y, _ := ParseWord("cA", nil)

	assert.Equal(t, "ABA", X.Mul(Y).String())
	assert.Equal(t, "cba", X.Inverse().String())
	assert.Empty(t, X.Mul(X.Inverse()))
	assert.Equal(t, []int{1, 2, 3}, X.Mul(Y.Inverse()).Letters())
}

func randomLetters(rng *rand.Rand, numGens, maxLen int) []int {
	letters := make([]int, rng.Intn(maxLen+1))
	for i := range letters {
		letters[i] = 1 + rng.Intn(numGens)
		if rng.Intn(2) == 0 {
			letters[i] = -letters[i]
		}
	}
	return letters
}

// requireNoCancellation fails if two adjacent letters are inverse, including the wrap pair when cyclic is set.
func requireNoCancellation(t *testing.T, letters []int, cyclic bool) {
	t.Helper()
	N := len(letters)
	for n := 0; n+1 < N; n++ {
		require.NotEqual(t, -letters[n], letters[n+1], "%v at %d", letters, n)
	}
	if cyclic && N > 1 {
		require.NotEqual(t, -letters[N-1], letters[0], "%v wraps", letters)
	}
}

func TestReductionProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 500; trial++ {
		letters := randomLetters(rng, 3, 24)

		W, err := NewWord(letters)
		require.NoError(t, err)
		requireNoCancellation(t, W, false)
		again, err := NewWord(W)
		require.NoError(t, err)
		assert.True(t, W.Equal(again), "%v", letters)
		assert.True(t, W.Equal(W.Inverse().Inverse()), "%v", letters)
		assert.Empty(t, W.Mul(W.Inverse()), "%v", letters)

		C, err := NewCyclicWord(letters)
		require.NoError(t, err)
		requireNoCancellation(t, C, true)
		cagain, err := NewCyclicWord(C)
		require.NoError(t, err)
		assert.True(t, C.Equal(cagain), "%v", letters)
		assert.True(t, C.Equal(C.Inverse().Inverse()), "%v", letters)
		assert.LessOrEqual(t, len(C), len(W))
	}
}

func TestCyclicReduction(t *testing.T) {
	W, err := NewCyclicWord([]int{1, 2, -1})
	require.NoError(t, err)
	assert.Equal(t, CyclicWord{2}, W)

	W, err = NewCyclicWord([]int{1, 2, 3, -2, -1})
	require.NoError(t, err)
	assert.Equal(t, CyclicWord{3}, W)

	W, err = NewCyclicWord([]int{1, -1, 2, -2})
	require.NoError(t, err)
	assert.Empty(t, W)

	W, err = ParseCyclicWord("aBAbA", nil)
	require.NoError(t, err)
	assert.Equal(t, "A", W.String())

	W, err = ParseCyclicWord("aBAAb", nil)
	require.NoError(t, err)
	assert.Equal(t, "aBAAb", W.String())

	_, err = W.Mul(W)
	assert.ErrorIs(t, err, freegroup.ErrUndefinedOperation)
}

func TestCyclicWordOps(t *testing.T) {
	W := CyclicWord{1, 2, -3, 2}

	assert.Equal(t, CyclicWord{-3, 2, 1, 2}, W.Spun(2))
	assert.Equal(t, CyclicWord{2, 1, 2, -3}, W.Spun(-1))
	assert.Equal(t, CyclicWord{-2, 3, -2, -1}, W.Inverse())

	V := W.Copy()
	V.Invert()
	assert.Equal(t, W.Inverse(), V)
	assert.Equal(t, CyclicWord{1, 2, -3, 2}, W)

	R, err := W.Rewrite([]int{-2, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, CyclicWord{3, -1, -2, -1}, R)

	_, err = W.Rewrite([]int{1, 2})
	assert.ErrorIs(t, err, freegroup.ErrInvalidInput)
}

func TestShuffle(t *testing.T) {
	W := CyclicWord{1, 2, -1, 3}
	require.NoError(t, W.Shuffle(map[int]int{1: 2, 2: -1}))
	assert.Equal(t, CyclicWord{2, -1, -2, 3}, W)

	assert.ErrorIs(t, W.Shuffle(map[int]int{1: 3}), freegroup.ErrNotAPermutation)
	assert.ErrorIs(t, W.Shuffle(map[int]int{1: 2, 2: -2}), freegroup.ErrNotAPermutation)
	assert.ErrorIs(t, W.Shuffle(map[int]int{-1: -1}), freegroup.ErrNotAPermutation)
	assert.Equal(t, CyclicWord{2, -1, -2, 3}, W)
}

func TestPowers(t *testing.T) {
	W := CyclicWord{1, 1, 2, 1}
	assert.Equal(t, []Power{{1, 2}, {2, 1}, {1, 1}}, W.Powers(0))
	assert.Equal(t, []Power{{1, 3}, {2, 1}}, W.Powers(3))
	assert.Nil(t, CyclicWord{}.Powers(0))
}

func TestComplexityOrder(t *testing.T) {
	assert.True(t, Complexity{5, 5, 5}.Less(Complexity{0, 0}))
	assert.True(t, Complexity{0, 1}.Less(Complexity{0, 2}))
	assert.True(t, Complexity{0}.Less(nil))
	assert.False(t, Complexity(nil).Less(nil))
	assert.True(t, Complexity{0, 3}.Equal(Complexity{0, 3}))
	assert.Zero(t, CompareComplexity(nil, Complexity{}))
}

func TestComplexity(t *testing.T) {
	W := CyclicWord{1, 2, 1, -2}

	cx, ext := W.Complexity(2, nil, 0)
	assert.Equal(t, Complexity{0, 1, 0, 3}, cx)
	assert.Equal(t, []int{1, 2}, ext)

	cx, ext = W.Complexity(2, nil, 3)
	assert.Equal(t, Complexity{0, 1, 2, 1}, cx)
	assert.Equal(t, []int{-2, 1}, ext)

	// a supplied ordering is extended, not modified
	ordering := []int{-1}
	cx, ext = W.Complexity(3, ordering, 0)
	assert.Equal(t, Complexity{3, 1, 3, 4}, cx)
	assert.Equal(t, []int{-1, 2}, ext)
	assert.Equal(t, []int{-1}, ordering)
}

func TestMinimaTies(t *testing.T) {
	least, minima := CyclicWord{1, 2}.Minima(2, nil)
	assert.Equal(t, Complexity{0, 1}, least)
	require.Len(t, minima, 4)
	assert.Equal(t, Minimum{CyclicWord{1, 2}, []int{1, 2}}, minima[0])
	assert.Equal(t, Minimum{CyclicWord{2, 1}, []int{2, 1}}, minima[1])
	assert.Equal(t, Minimum{CyclicWord{-2, -1}, []int{-2, -1}}, minima[2])
	assert.Equal(t, Minimum{CyclicWord{-1, -2}, []int{-1, -2}}, minima[3])

	least, minima = CyclicWord{1, 1, 2}.Minima(2, nil)
	assert.Equal(t, Complexity{0, 0, 1}, least)
	require.Len(t, minima, 2)
	assert.Equal(t, CyclicWord{1, 1, 2}, minima[0].Word)
	assert.Equal(t, CyclicWord{-1, -1, -2}, minima[1].Word)

	least, minima = CyclicWord{}.Minima(2, nil)
	assert.Empty(t, least)
	assert.Empty(t, minima)
}
