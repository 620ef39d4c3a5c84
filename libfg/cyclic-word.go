package libfg

import (
	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
)

// CyclicWord is a cyclically reduced word: it is freely reduced and its last letter is not the inverse of its first.
// Rotations of a CyclicWord represent the same conjugacy class.
type CyclicWord []int

func cyclicReduce(letters []int) []int {
	out := freeReduce(letters)
	lo, hi := 0, len(out)
	for hi-lo > 1 && out[lo] == -out[hi-1] {
		lo++
		hi--
	}
	return out[lo:hi]
}

// NewCyclicWord returns the cyclic reduction of the given letters.
func NewCyclicWord(letters []int) (CyclicWord, error) {
	if err := checkLetters(letters); err != nil {
		return nil, err
	}
	return CyclicWord(cyclicReduce(letters)), nil
}

// ParseCyclicWord decodes str using the given alphabet (ABC if nil) and cyclically reduces it.
func ParseCyclicWord(str string, alpha *Alphabet) (CyclicWord, error) {
	if alpha == nil {
		alpha = ABC
	}
	letters, err := alpha.Decode(str)
	if err != nil {
		return nil, err
	}
	return CyclicWord(cyclicReduce(letters)), nil
}

func (w CyclicWord) Len() int {
	return len(w)
}

// Mul is not defined for cyclic words.
func (w CyclicWord) Mul(other CyclicWord) (CyclicWord, error) {
	return nil, freegroup.ErrUndefinedOperation
}

// Inverse returns a new CyclicWord that is w reversed with each letter inverted.
func (w CyclicWord) Inverse() CyclicWord {
	return CyclicWord(inverseOf(w))
}

// Invert inverts w in place.
func (w CyclicWord) Invert() {
	N := len(w)
	for i := 0; i < N/2; i++ {
		w[i], w[N-1-i] = w[N-1-i], w[i]
	}
	for i := range w {
		w[i] = -w[i]
	}
}

// Spun returns a copy of w rotated to begin at index start (mod len(w)).
func (w CyclicWord) Spun(start int) CyclicWord {
	N := len(w)
	spun := make(CyclicWord, N)
	if N == 0 {
		return spun
	}
	start %= N
	if start < 0 {
		start += N
	}
	copy(spun, w[start:])
	copy(spun[N-start:], w[:start])
	return spun
}

// letterAt returns the letter at position start+n in cyclic order.
func (w CyclicWord) letterAt(start, n int) int {
	return w[(start+n)%len(w)]
}

func (w CyclicWord) Letters() []int {
	return generatorsOf(w)
}

func (w CyclicWord) Equal(other CyclicWord) bool {
	return equalLetters(w, other)
}

func (w CyclicWord) Copy() CyclicWord {
	return append(CyclicWord(nil), w...)
}

func indexOf(ordering []int, letter int) int {
	for i, li := range ordering {
		if li == letter {
			return i
		}
	}
	return -1
}

// Rewrite renames each letter by its rank in ordering: a letter at index i becomes i+1,
// and a letter whose inverse is at index i becomes -(i+1).
// Every letter must appear in ordering, directly or as its inverse.
func (w CyclicWord) Rewrite(ordering []int) (CyclicWord, error) {
	out := make(CyclicWord, len(w))
	for i, letter := range w {
		if idx := indexOf(ordering, letter); idx >= 0 {
			out[i] = 1 + idx
		} else if idx = indexOf(ordering, -letter); idx >= 0 {
			out[i] = -1 - idx
		} else {
			return nil, errors.Wrapf(freegroup.ErrInvalidInput, "letter %d is not ordered", letter)
		}
	}
	return out, nil
}

// Shuffle permutes generators in place: generator k becomes perm[k] (which may be negative).
// Generators absent from perm are unchanged.  The keys of perm must be positive and equal the
// set of magnitudes of its values.
func (w CyclicWord) Shuffle(perm map[int]int) error {
	image := make(map[int]struct{}, len(perm))
	for _, v := range perm {
		if v < 0 {
			v = -v
		}
		image[v] = struct{}{}
	}
	if len(image) != len(perm) {
		return freegroup.ErrNotAPermutation
	}
	for k := range perm {
		if _, ok := image[k]; !ok || k <= 0 {
			return freegroup.ErrNotAPermutation
		}
	}

	for i, letter := range w {
		if letter > 0 {
			if to, ok := perm[letter]; ok {
				w[i] = to
			}
		} else if to, ok := perm[-letter]; ok {
			w[i] = -to
		}
	}
	return nil
}

// Power is a run of a repeated letter.
type Power struct {
	Letter int
	Count  int
}

// Powers returns the run-length encoding of w read cyclically from start.
// A run crossing the start boundary is split.
func (w CyclicWord) Powers(start int) []Power {
	N := len(w)
	if N == 0 {
		return nil
	}
	start %= N
	if start < 0 {
		start += N
	}

	runs := []Power{{Letter: w[start], Count: 0}}
	for n := 0; n < N; n++ {
		letter := w.letterAt(start, n)
		if last := &runs[len(runs)-1]; last.Letter == letter {
			last.Count++
		} else {
			runs = append(runs, Power{Letter: letter, Count: 1})
		}
	}
	return runs
}

// Complexity reads w cyclically from spin and ranks each letter against ordering, extending a copy of
// ordering with each letter first seen.  A letter at index i ranks i, a letter whose inverse is at index
// i ranks size+i, and a new letter ranks len(ordering) as it is appended.
//
// size is the total number of generators, which may exceed the number appearing in w.
func (w CyclicWord) Complexity(size int, ordering []int, spin int) (Complexity, []int) {
	ext := make([]int, len(ordering), len(ordering)+len(w))
	copy(ext, ordering)

	N := len(w)
	cx := make(Complexity, N)
	for n := 0; n < N; n++ {
		letter := w.letterAt(spin, n)
		if idx := indexOf(ext, letter); idx >= 0 {
			cx[n] = idx
		} else if idx = indexOf(ext, -letter); idx >= 0 {
			cx[n] = size + idx
		} else {
			cx[n] = len(ext)
			ext = append(ext, letter)
		}
	}
	return cx, ext
}

// Minimum is a rotation (or inverted rotation) of a CyclicWord and the ordering it extends to.
type Minimum struct {
	Word     CyclicWord
	Ordering []int
}

// Minima returns the least Complexity over every rotation of w and of its inverse, along with each
// rotation realizing it, in the order encountered (w's rotations first).
func (w CyclicWord) Minima(size int, ordering []int) (Complexity, []Minimum) {
	var least Complexity
	var minima []Minimum

	for _, word := range [2]CyclicWord{w, w.Inverse()} {
		for n := range word {
			cx, ext := word.Complexity(size, ordering, n)
			switch d := CompareComplexity(cx, least); {
			case d < 0:
				least = cx
				minima = append(minima[:0], Minimum{Word: word.Spun(n), Ordering: ext})
			case d == 0:
				minima = append(minima, Minimum{Word: word.Spun(n), Ordering: ext})
			}
		}
	}
	return least, minima
}

func (w CyclicWord) Spell(alpha *Alphabet) string {
	return alpha.Spell(w)
}

func (w CyclicWord) String() string {
	return ABC.Spell(w)
}
