package libfg

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/fine-structures/freegroup/libfg/graph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Presentation is a finite set of cyclically reduced relators over a set of generators.
//
// Generators are positive and ascending; they include every generator appearing in a relator (as given,
// before reduction) and may include others.  Relators that reduce to the empty word are dropped.
type Presentation struct {
	Generators []int
	Relators   []CyclicWord
	Alphabet   *Alphabet // display only; nil denotes ABC
}

// NewPresentation cyclically reduces each relator and forms the generator set from the relators and the given extra generators.
func NewPresentation(relators [][]int, generators []int) (*Presentation, error) {
	P := &Presentation{}
	gens := append([]int(nil), generators...)
	for _, Ri := range relators {
		W, err := NewCyclicWord(Ri)
		if err != nil {
			return nil, err
		}
		if len(W) > 0 {
			P.Relators = append(P.Relators, W)
		}
		gens = append(gens, generatorsOf(Ri)...)
	}
	if err := P.setGenerators(gens); err != nil {
		return nil, err
	}
	return P, nil
}

// NewPresentationFromStrings decodes each relator with the given alphabet (ABC if nil).
func NewPresentationFromStrings(relators []string, alpha *Alphabet) (*Presentation, error) {
	if alpha == nil {
		alpha = ABC
	}
	letters := make([][]int, len(relators))
	for i, str := range relators {
		var err error
		letters[i], err = alpha.Decode(str)
		if err != nil {
			return nil, errors.Wrapf(err, "relator %d", i)
		}
	}
	P, err := NewPresentation(letters, nil)
	if err != nil {
		return nil, err
	}
	P.Alphabet = alpha
	return P, nil
}

// NewPresentationFromSignature forms the canonical presentation that a signature denotes.
func NewPresentationFromSignature(sig freegroup.Signature) (*Presentation, error) {
	return NewPresentation(sig, nil)
}

func (P *Presentation) setGenerators(gens []int) error {
	for _, g := range gens {
		if g == 0 {
			return errors.Wrap(freegroup.ErrInvalidInput, "zero generator")
		}
	}
	P.Generators = generatorsOf(gens)
	return nil
}

func (P *Presentation) alphabet() *Alphabet {
	if P.Alphabet == nil {
		return ABC
	}
	return P.Alphabet
}

// Len returns the total length of all relators.
func (P *Presentation) Len() int {
	N := 0
	for _, R := range P.Relators {
		N += len(R)
	}
	return N
}

// Equal returns true if P and other have the same generators and the same relators in the same order.
func (P *Presentation) Equal(other *Presentation) bool {
	if !equalLetters(P.Generators, other.Generators) || len(P.Relators) != len(other.Relators) {
		return false
	}
	for i, R := range P.Relators {
		if !R.Equal(other.Relators[i]) {
			return false
		}
	}
	return true
}

func (P *Presentation) Copy() *Presentation {
	dup := &Presentation{
		Generators: append([]int(nil), P.Generators...),
		Relators:   make([]CyclicWord, len(P.Relators)),
		Alphabet:   P.Alphabet,
	}
	for i, R := range P.Relators {
		dup.Relators[i] = R.Copy()
	}
	return dup
}

func (P *Presentation) MakeCopy() freegroup.PresentationState {
	return P.Copy()
}

// RelatorsString spells the relators as "[R1, R2, ...]".
func (P *Presentation) RelatorsString() string {
	alpha := P.alphabet()
	buf := strings.Builder{}
	buf.WriteByte('[')
	for i, R := range P.Relators {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(R.Spell(alpha))
	}
	buf.WriteByte(']')
	return buf.String()
}

// WriteAsString writes P as "generators: [A, B]\nrelators: [AAB, Ba]"
func (P *Presentation) WriteAsString(out io.Writer) {
	alpha := P.alphabet()
	buf := strings.Builder{}
	buf.WriteString("generators: [")
	for i, g := range P.Generators {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(alpha.Symbol(g))
	}
	buf.WriteString("]\nrelators: ")
	buf.WriteString(P.RelatorsString())
	io.WriteString(out, buf.String())
}

func (P *Presentation) String() string {
	buf := strings.Builder{}
	P.WriteAsString(&buf)
	return buf.String()
}

// WhiteheadGraph returns the Whitehead graph of P: vertices g and -g for each generator, and for each
// relator R and each cyclic position n (wrap pair first), an edge joining R[n] and the inverse of R[n+1].
func (P *Presentation) WhiteheadGraph() *graph.Graph {
	Wh := graph.NewGraph()
	for _, g := range P.Generators {
		Wh.AddVertex(g)
		Wh.AddVertex(-g)
	}
	for _, R := range P.Relators {
		N := len(R)
		for n := -1; n < N-1; n++ {
			Wh.AddEdge(R[(n+N)%N], -R[n+1])
		}
	}
	return Wh
}

// WriteWhiteheadDOT writes the Whitehead graph of P in DOT format, labeling vertices with P's alphabet.
func (P *Presentation) WriteWhiteheadDOT(out io.Writer) error {
	return P.WhiteheadGraph().WriteDOT(out, "whitehead", P.alphabet().Symbol)
}

// RenderWhiteheadSVG renders the Whitehead graph of P as SVG.
func (P *Presentation) RenderWhiteheadSVG(ctx context.Context) ([]byte, error) {
	return P.WhiteheadGraph().RenderSVG(ctx, "whitehead", P.alphabet().Symbol)
}

// Reducer is a Whitehead move that shortens a presentation by -Change letters.
type Reducer struct {
	Change int // always negative
	Letter int
	CutSet []int
}

// Level is a generator whose minimum cut equals its valence, so Whitehead moves built on it preserve length.
type Level struct {
	Letter int
	Cut    graph.Cut
}

// FindReducers computes, for each generator x, a minimum cut separating x from its inverse in the
// Whitehead graph.  A cut smaller than the valence of x yields a Reducer (sorted most reducing first, ties
// kept in generator order), and a cut equal to it yields a Level.
func (P *Presentation) FindReducers() ([]Reducer, []Level, error) {
	Wh := P.WhiteheadGraph()

	var reducers []Reducer
	var levels []Level
	for _, x := range P.Generators {
		cut, err := Wh.OneMinCut(x, -x)
		if err != nil {
			return nil, nil, err
		}
		change := cut.Size - Wh.Valence(x)
		switch {
		case change < 0:
			reducers = append(reducers, Reducer{
				Change: change,
				Letter: x,
				CutSet: cut.Set,
			})
		case change == 0:
			levels = append(levels, Level{
				Letter: x,
				Cut:    cut,
			})
		default:
			return nil, nil, errors.Wrapf(freegroup.ErrCollaboratorInvariant, "generator %d: cut %d, valence %d", x, cut.Size, Wh.Valence(x))
		}
	}

	sort.SliceStable(reducers, func(i, j int) bool {
		return reducers[i].Change < reducers[j].Change
	})
	return reducers, levels, nil
}

type cutMembers map[int]struct{}

func newCutMembers(cutSet []int) cutMembers {
	members := make(cutMembers, len(cutSet))
	for _, v := range cutSet {
		members[v] = struct{}{}
	}
	return members
}

func (cm cutMembers) has(v int) bool {
	_, ok := cm[v]
	return ok
}

// WhiteheadMove returns the presentation obtained by substituting, for each letter x of each relator,
// a x a^-1 with a dropped when x == a or -x is in cutSet, and a^-1 dropped when x == -a or x is in cutSet.
// The result keeps P's generators and alphabet.
func (P *Presentation) WhiteheadMove(a int, cutSet []int) *Presentation {
	inCut := newCutMembers(cutSet)

	moved := &Presentation{
		Generators: append([]int(nil), P.Generators...),
		Alphabet:   P.Alphabet,
	}
	for _, R := range P.Relators {
		subst := make([]int, 0, 3*len(R))
		for _, x := range R {
			if !inCut.has(-x) && x != a {
				subst = append(subst, a)
			}
			subst = append(subst, x)
			if !inCut.has(x) && x != -a {
				subst = append(subst, -a)
			}
		}
		if W := CyclicWord(cyclicReduce(subst)); len(W) > 0 {
			moved.Relators = append(moved.Relators, W)
		}
	}

	movesApplied.Inc()
	return moved
}

// ShortenStep reports one length reducing move made by Shorten.
type ShortenStep struct {
	Move   WhiteheadMove
	Result *Presentation
}

// Shorten applies the most reducing Whitehead move until no reducing move remains, returning the resulting minimal presentation.
// If given, onStep is called after each move.
func (P *Presentation) Shorten(onStep func(step ShortenStep)) (*Presentation, error) {
	result := P.Copy()
	klog.V(2).Infof("shorten: %s (length %d)", result.RelatorsString(), result.Len())

	for {
		reducers, _, err := result.FindReducers()
		if err != nil {
			return nil, err
		}
		if len(reducers) == 0 {
			return result, nil
		}

		best := reducers[0]
		move := WhiteheadMove{
			Letter:     best.Letter,
			CutSet:     best.CutSet,
			Generators: P.Generators,
			Alphabet:   P.alphabet(),
		}
		result = result.WhiteheadMove(best.Letter, best.CutSet)
		shortenSteps.Inc()

		klog.V(2).Infof("shorten: %v", move)
		klog.V(2).Infof("shorten: %s (length %d)", result.RelatorsString(), result.Len())
		if onStep != nil {
			onStep(ShortenStep{
				Move:   move,
				Result: result.Copy(),
			})
		}
	}
}
