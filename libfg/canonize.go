package libfg

import (
	"github.com/fine-structures/freegroup/freegroup"
)

// canonizeNode is a partial canonization: relators chosen so far (each a minimal rotation), those
// still remaining, and the generator ordering the chosen relators extend to.
type canonizeNode struct {
	chosen    []CyclicWord
	remaining []CyclicWord
	ordering  []int
}

// children extends n by each remaining relator of least complexity, once for every rotation realizing it.
func (n *canonizeNode) children(size int) []*canonizeNode {
	var least Complexity
	var childList []*canonizeNode

	for ri, R := range n.remaining {
		cx, minima := R.Minima(size, n.ordering)
		d := CompareComplexity(cx, least)
		if d > 0 {
			continue
		}
		if d < 0 {
			least = cx
			childList = childList[:0]
		}
		for _, m := range minima {
			child := &canonizeNode{
				chosen:    make([]CyclicWord, len(n.chosen), len(n.chosen)+1),
				remaining: make([]CyclicWord, 0, len(n.remaining)-1),
				ordering:  m.Ordering,
			}
			copy(child.chosen, n.chosen)
			child.chosen = append(child.chosen, m.Word)
			child.remaining = append(child.remaining, n.remaining[:ri]...)
			child.remaining = append(child.remaining, n.remaining[ri+1:]...)
			childList = append(childList, child)
		}
	}
	return childList
}

// Canonize computes the signature of P: a breadth-first search that repeatedly extends the front
// node by its least complex remaining relators, stopping once the front node has none left.
// The chosen relators are then rewritten as ranks in that node's ordering.  Empty relators are skipped.
func (P *Presentation) Canonize() (freegroup.Signature, error) {
	size := len(P.Generators)
	root := &canonizeNode{
		remaining: make([]CyclicWord, 0, len(P.Relators)),
	}
	for _, R := range P.Relators {
		if len(R) > 0 {
			root.remaining = append(root.remaining, R)
		}
	}
	queue := []*canonizeNode{root}

	expanded := 0
	for len(queue[0].remaining) > 0 {
		front := queue[0]
		queue = queue[1:]
		queue = append(queue, front.children(size)...)
		expanded++
	}
	canonizeNodes.Observe(float64(expanded))

	front := queue[0]
	sig := make(freegroup.Signature, len(front.chosen))
	for i, R := range front.chosen {
		Ri, err := R.Rewrite(front.ordering)
		if err != nil {
			return nil, err
		}
		sig[i] = Ri
	}
	return sig, nil
}

// Signature returns the canonical signature of P.
//
// The search stops at the first node to place every relator, without comparing it against the other
// nodes still queued.  So presentations that differ by renaming or inverting generators, or by
// rotating, inverting or reordering relators, usually share a signature but are not guaranteed to:
// {aa, AbAb} gives {1212, 11} while {ABAB, BB} gives {1212, 22}.  Equal signatures always denote
// equivalent presentations.
func (P *Presentation) Signature() freegroup.Signature {
	sig, err := P.Canonize()
	if err != nil {
		// every letter of a chosen relator is in the final ordering
		panic(err)
	}
	return sig
}
