package libfg

import (
	"github.com/alecthomas/participle/v2"
	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
)

// PresentationExpr is a presentation in group notation, e.g. "< A, B | AAbb, ABab >" or "< | [1, -2, 1] >".
// Relators are spelled with an Alphabet or given as bracketed letter lists.
type PresentationExpr struct {
	Generators []*GenExpr     `"<" (@@ ("," @@)*)? "|"`
	Relators   []*RelatorExpr `(@@ ("," @@)*)? ">"`
}

type GenExpr struct {
	Symbols *string `  @Ident`
	Letter  *int    `| @Int`
}

type RelatorExpr struct {
	Symbols *string      `  @Ident`
	Letters []*IntLetter `| "[" (@@ ("," @@)*)? "]"`
}

type IntLetter struct {
	Neg bool `@"-"?`
	Mag int  `@Int`
}

var parsePresentationExpr = participle.MustBuild[PresentationExpr]()

// ParsePresentation reads a presentation in group notation, spelling symbols with alpha (ABC if nil).
func ParsePresentation(expr string, alpha *Alphabet) (*Presentation, error) {
	if alpha == nil {
		alpha = ABC
	}

	Pexpr, err := parsePresentationExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(freegroup.ErrInvalidInput, "%q: %v", expr, err)
	}

	var gens []int
	for _, gen := range Pexpr.Generators {
		if gen.Symbols != nil {
			letters, err := alpha.Decode(*gen.Symbols)
			if err != nil {
				return nil, err
			}
			gens = append(gens, letters...)
		} else if gen.Letter != nil {
			gens = append(gens, *gen.Letter)
		}
	}

	relators := make([][]int, 0, len(Pexpr.Relators))
	for _, rel := range Pexpr.Relators {
		var letters []int
		if rel.Symbols != nil {
			letters, err = alpha.Decode(*rel.Symbols)
			if err != nil {
				return nil, err
			}
		} else {
			letters = make([]int, len(rel.Letters))
			for i, l := range rel.Letters {
				letters[i] = l.Mag
				if l.Neg {
					letters[i] = -l.Mag
				}
			}
		}
		relators = append(relators, letters)
	}

	P, err := NewPresentation(relators, gens)
	if err != nil {
		return nil, err
	}
	P.Alphabet = alpha
	return P, nil
}
