package libfg

import (
	"sort"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
)

// Word is a freely reduced word in a free group: no letter is adjacent to its inverse.
// Letter k and -k are a generator and its inverse.
type Word []int

func checkLetters(letters []int) error {
	for i, letter := range letters {
		if letter == 0 {
			return errors.Wrapf(freegroup.ErrInvalidInput, "zero letter at position %d", i)
		}
	}
	return nil
}

// freeReduce returns the free reduction of letters, cancelling adjacent inverse pairs until none remain.
func freeReduce(letters []int) []int {
	out := make([]int, 0, len(letters))
	for _, letter := range letters {
		if n := len(out); n > 0 && out[n-1] == -letter {
			out = out[:n-1]
		} else {
			out = append(out, letter)
		}
	}
	return out
}

// NewWord returns the free reduction of the given letters.
func NewWord(letters []int) (Word, error) {
	if err := checkLetters(letters); err != nil {
		return nil, err
	}
	return Word(freeReduce(letters)), nil
}

// ParseWord decodes str using the given alphabet (ABC if nil) and reduces it.
func ParseWord(str string, alpha *Alphabet) (Word, error) {
	if alpha == nil {
		alpha = ABC
	}
	letters, err := alpha.Decode(str)
	if err != nil {
		return nil, err
	}
	return Word(freeReduce(letters)), nil
}

func (w Word) Len() int {
	return len(w)
}

// Mul returns the reduced product w * other.
func (w Word) Mul(other Word) Word {
	prod := make([]int, 0, len(w)+len(other))
	prod = append(prod, w...)
	prod = append(prod, other...)
	return Word(freeReduce(prod))
}

// Inverse returns w reversed with each letter inverted.
func (w Word) Inverse() Word {
	return Word(inverseOf(w))
}

func inverseOf(letters []int) []int {
	N := len(letters)
	inv := make([]int, N)
	for i, letter := range letters {
		inv[N-1-i] = -letter
	}
	return inv
}

// Letters returns the generators (positive) appearing in w, ascending.
func (w Word) Letters() []int {
	return generatorsOf(w)
}

func generatorsOf(letters []int) []int {
	seen := make(map[int]struct{}, len(letters))
	var gens []int
	for _, letter := range letters {
		if letter < 0 {
			letter = -letter
		}
		if _, dupe := seen[letter]; !dupe {
			seen[letter] = struct{}{}
			gens = append(gens, letter)
		}
	}
	sort.Ints(gens)
	return gens
}

func (w Word) Equal(other Word) bool {
	return equalLetters(w, other)
}

func equalLetters(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (w Word) Spell(alpha *Alphabet) string {
	return alpha.Spell(w)
}

func (w Word) String() string {
	return ABC.Spell(w)
}
