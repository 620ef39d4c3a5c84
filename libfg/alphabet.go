package libfg

import (
	"fmt"
	"strings"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
)

// Alphabet translates between letters (nonzero ints) and symbols.
// Letter k > 0 is spelled by Pos[k-1] and letter -k by Neg[k-1].
type Alphabet struct {
	Identity  string // spells the empty word
	Pos       []string
	Neg       []string
	Separator string // placed between symbols; when empty, each symbol is a single rune

	lookup map[string]int
}

func NewAlphabet(identity string, pos, neg []string, separator string) *Alphabet {
	alpha := &Alphabet{
		Identity:  identity,
		Pos:       pos,
		Neg:       neg,
		Separator: separator,
		lookup:    make(map[string]int, len(pos)+len(neg)),
	}
	for i, sym := range pos {
		alpha.lookup[sym] = i + 1
	}
	for i, sym := range neg {
		alpha.lookup[sym] = -i - 1
	}
	return alpha
}

func runes(s string) []string {
	syms := make([]string, 0, len(s))
	for _, r := range s {
		syms = append(syms, string(r))
	}
	return syms
}

var (
	// ABC spells generators in uppercase and their inverses in lowercase.
	ABC = NewAlphabet("1", runes("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), runes("abcdefghijklmnopqrstuvwxyz"), "")

	// LowerABC spells generators in lowercase and their inverses in uppercase.
	LowerABC = NewAlphabet("1", runes("abcdefghijklmnopqrstuvwxyz"), runes("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "")
)

// Symbol returns the symbol for the given letter (or the identity for 0).
func (alpha *Alphabet) Symbol(letter int) string {
	switch {
	case letter == 0:
		return alpha.Identity
	case letter > 0 && letter <= len(alpha.Pos):
		return alpha.Pos[letter-1]
	case letter < 0 && -letter <= len(alpha.Neg):
		return alpha.Neg[-letter-1]
	}
	return fmt.Sprintf("<%d>", letter)
}

// Letter returns the letter for the given symbol, or 0 for the identity symbol.
func (alpha *Alphabet) Letter(sym string) (int, error) {
	if sym == alpha.Identity {
		return 0, nil
	}
	letter, found := alpha.lookup[sym]
	if !found {
		return 0, errors.Wrapf(freegroup.ErrInvalidInput, "symbol %q not in alphabet", sym)
	}
	return letter, nil
}

// Decode converts a string to letters.  Identity symbols contribute nothing.
func (alpha *Alphabet) Decode(str string) ([]int, error) {
	var syms []string
	if alpha.Separator == "" {
		syms = runes(str)
	} else if str != "" {
		syms = strings.Split(str, alpha.Separator)
	}

	letters := make([]int, 0, len(syms))
	for _, sym := range syms {
		letter, err := alpha.Letter(sym)
		if err != nil {
			return nil, err
		}
		if letter != 0 {
			letters = append(letters, letter)
		}
	}
	return letters, nil
}

// Spell converts letters to a string, the identity symbol denoting no letters.
func (alpha *Alphabet) Spell(letters []int) string {
	if len(letters) == 0 {
		return alpha.Identity
	}
	buf := strings.Builder{}
	for i, letter := range letters {
		if i > 0 {
			buf.WriteString(alpha.Separator)
		}
		buf.WriteString(alpha.Symbol(letter))
	}
	return buf.String()
}
