package libfg

import (
	"sort"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/fine-structures/freegroup/libfg/graph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// LevelTransformation is a length preserving Whitehead move.
type LevelTransformation struct {
	Letter int
	CutSet []int // ascending
}

// LevelTransformations lists the non-trivial length preserving Whitehead moves of a minimal presentation.
//
// For each level generator x, the edges carrying flow (directed along the flow) and the unsaturated
// edges (in both directions) form a digraph whose strongly connected components are never split by a
// minimum cut.  The closed subsets of the component order that hold x and not -x are then exactly the
// minimum cuts separating x from -x.  Subsets of one component, or missing only one, are skipped.
func (P *Presentation) LevelTransformations() ([]LevelTransformation, error) {
	reducers, levels, err := P.FindReducers()
	if err != nil {
		return nil, err
	}
	if len(reducers) > 0 {
		return nil, errors.Wrapf(freegroup.ErrNotMinimal, "generator %d reduces length by %d", reducers[0].Letter, -reducers[0].Change)
	}

	var moves []LevelTransformation
	for _, lvl := range levels {
		x := lvl.Letter

		D := graph.NewDigraph()
		for _, e := range lvl.Cut.Flow {
			D.AddEdge(e[0], e[1])
		}
		for _, e := range lvl.Cut.Unsaturated {
			D.AddEdge(e[0], e[1])
			D.AddEdge(e[1], e[0])
		}
		if !D.HasVertex(x) || !D.HasVertex(-x) {
			continue
		}

		dag := D.ComponentDAG()
		poset := graph.NewPoset(dag)
		N := poset.Len()
		src, sink := dag.ComponentOf[x], dag.ComponentOf[-x]

		poset.ClosedSubsets(func(subset []int) bool {
			if len(subset) <= 1 || len(subset) >= N-1 {
				levelCuts.WithLabelValues("trivial").Inc()
				return true
			}
			hasSrc, hasSink := false, false
			for _, elem := range subset {
				hasSrc = hasSrc || elem == src
				hasSink = hasSink || elem == sink
			}
			if !hasSrc || hasSink {
				return true
			}

			cutSet := poset.Union(subset)
			sort.Ints(cutSet)
			moves = append(moves, LevelTransformation{
				Letter: x,
				CutSet: cutSet,
			})
			levelCuts.WithLabelValues("yielded").Inc()
			return true
		})
	}
	return moves, nil
}

// OrbitNode is a presentation reached by a level orbit search.
type OrbitNode struct {
	Presentation *Presentation       // the canonical presentation formed from Signature
	Signature    freegroup.Signature
	Parent       *Presentation       // verbose only: the presentation Move was applied to (nil for the start)
	Move         *WhiteheadMove      // verbose only: the move producing this node from Parent
}

type orbitEntry struct {
	parent *Presentation
	move   *WhiteheadMove
	pres   *Presentation
	sig    freegroup.Signature
}

// LevelOrbit visits, breadth first, every presentation reachable from P by level transformations,
// calling onNode once per distinct signature, P first.  P must be minimal.
// The search stops at the first error from onNode, which is returned.
func (P *Presentation) LevelOrbit(opts freegroup.OrbitOpts, onNode func(node OrbitNode) error) error {
	seen := opts.Seen
	if seen == nil {
		seen = NewOrderedSignatureSet()
		defer seen.Close()
	}

	sig0, err := P.Canonize()
	if err != nil {
		return err
	}
	if _, err = seen.TryAdd(sig0); err != nil {
		return err
	}

	queue := []orbitEntry{{pres: P, sig: sig0}}
	count := 0
	for len(queue) > 0 {
		ei := queue[0]
		queue = queue[1:]

		moves, err := ei.pres.LevelTransformations()
		if err != nil {
			return err
		}
		for _, lt := range moves {
			Q := ei.pres.WhiteheadMove(lt.Letter, lt.CutSet)
			sig, err := Q.Canonize()
			if err != nil {
				return err
			}
			added, err := seen.TryAdd(sig)
			if err != nil {
				return err
			}
			if added {
				queue = append(queue, orbitEntry{
					parent: ei.pres,
					move: &WhiteheadMove{
						Letter:     lt.Letter,
						CutSet:     lt.CutSet,
						Generators: ei.pres.Generators,
						Alphabet:   P.Alphabet,
					},
					pres: Q,
					sig:  sig,
				})
			}
		}

		canon, err := NewPresentationFromSignature(ei.sig)
		if err != nil {
			return err
		}
		canon.Alphabet = P.Alphabet

		node := OrbitNode{
			Presentation: canon,
			Signature:    ei.sig,
		}
		if opts.Verbose {
			node.Parent = ei.parent
			node.Move = ei.move
		}
		if err = onNode(node); err != nil {
			return err
		}
		orbitNodes.Inc()

		count++
		if count%1000 == 0 {
			klog.V(2).Infof("level orbit: %d presentations, %d queued", count, len(queue))
		}
		if opts.MaxNodes > 0 && count >= opts.MaxNodes {
			break
		}
	}
	return nil
}

// StreamLevelOrbit runs LevelOrbit in a goroutine, sending each canonical presentation to the returned stream.
// Once the stream's Outlet closes, its Err() reports any error that ended the search.
func (P *Presentation) StreamLevelOrbit(opts freegroup.OrbitOpts) *freegroup.PresentationStream {
	stream := freegroup.NewPresentationStream()
	start := P.Copy()

	go func() {
		err := start.LevelOrbit(opts, func(node OrbitNode) error {
			stream.Outlet <- node.Presentation
			return nil
		})
		if err != nil {
			stream.SetErr(err)
		}
		stream.Close()
	}()

	return stream
}

// CatalogOrbit stores the complete level orbit of P in cat, or returns the orbit already holding P's signature.
func (P *Presentation) CatalogOrbit(cat freegroup.Catalog) (freegroup.OrbitID, bool, error) {
	sig, err := P.Canonize()
	if err != nil {
		return 0, false, err
	}
	if oid, found, err := cat.LookupOrbit(sig); err != nil || found {
		return oid, false, err
	}

	var members []freegroup.Signature
	err = P.LevelOrbit(freegroup.OrbitOpts{}, func(node OrbitNode) error {
		members = append(members, node.Signature)
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	oid, added, err := cat.AddOrbit(members)
	if err == nil && added {
		klog.Infof("cataloged orbit %v: %d presentations of length %d", oid, len(members), P.Len())
	}
	return oid, added, err
}
