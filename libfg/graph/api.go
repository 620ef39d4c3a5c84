// Package graph is the combinatorial engine behind Whitehead's algorithm: an undirected multigraph
// with edge multiplicities and min-cuts, a digraph with strongly connected components, and the
// closed subsets of the induced partial order.
//
// Vertices are signed integers (the letters of a free group).
package graph

import (
	"errors"
)

// Errors
var (
	ErrVertexNotFound = errors.New("vertex not found")
	ErrSameVertex     = errors.New("source and sink must differ")
	ErrBadDOT         = errors.New("bad graph rendering")
)

// Edge is an undirected edge {U, V} with U listed first in vertex order.
type Edge struct {
	U, V int
	Mult int // number of parallel edges
}

// Cut is a minimum cut separating a source from a sink along with the max flow realizing it.
type Cut struct {
	Size        int      // total multiplicity of edges crossing the cut, equal to the max flow
	Set         []int    // source side: vertices reachable from source in the residual graph (ascending)
	Flow        [][2]int // edges carrying net flow, each directed along its flow
	Unsaturated [][2]int // edges whose net flow is below their multiplicity
}

// Contains returns true if v is on the source side of this cut.
func (cut *Cut) Contains(v int) bool {
	for _, vi := range cut.Set {
		if vi == v {
			return true
		}
	}
	return false
}
