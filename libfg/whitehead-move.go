package libfg

import (
	"strings"
)

// WhiteheadMove describes the substitution performed by Presentation.WhiteheadMove(Letter, CutSet).
type WhiteheadMove struct {
	Letter     int
	CutSet     []int
	Generators []int
	Alphabet   *Alphabet // nil denotes ABC
}

// String lists the substitution made for each generator, e.g. "A -> A, B -> aBA".
func (move WhiteheadMove) String() string {
	alpha := move.Alphabet
	if alpha == nil {
		alpha = ABC
	}
	inCut := newCutMembers(move.CutSet)
	a := move.Letter

	buf := strings.Builder{}
	for i, x := range move.Generators {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(alpha.Symbol(x))
		buf.WriteString(" -> ")
		if !inCut.has(-x) && x != a {
			buf.WriteString(alpha.Symbol(a))
		}
		buf.WriteString(alpha.Symbol(x))
		if !inCut.has(x) && x != -a {
			buf.WriteString(alpha.Symbol(-a))
		}
	}
	return buf.String()
}
