package graph

import (
	"context"
	"sort"
	"strconv"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/flow"
	"github.com/pkg/errors"
)

// Graph is an undirected multigraph on signed integer vertices.
// Vertices keep the order in which they were added, and every traversal follows that order.
type Graph struct {
	verts []int
	index map[int]int
	mult  [][]int // mult[i][j] == mult[j][i] is the number of edges between verts i and j
}

func NewGraph() *Graph {
	return &Graph{
		index: make(map[int]int),
	}
}

// AddVertex adds v if not already present.
func (G *Graph) AddVertex(v int) {
	if _, exists := G.index[v]; exists {
		return
	}
	G.index[v] = len(G.verts)
	G.verts = append(G.verts, v)
	for i := range G.mult {
		G.mult[i] = append(G.mult[i], 0)
	}
	G.mult = append(G.mult, make([]int, len(G.verts)))
}

// AddEdge adds an edge between u and v, adding either vertex if needed.
// Adding an edge that already exists raises its multiplicity.
func (G *Graph) AddEdge(u, v int) {
	G.AddVertex(u)
	G.AddVertex(v)
	i, j := G.index[u], G.index[v]
	G.mult[i][j]++
	if i != j {
		G.mult[j][i]++
	}
}

func (G *Graph) NumVertices() int {
	return len(G.verts)
}

func (G *Graph) HasVertex(v int) bool {
	_, exists := G.index[v]
	return exists
}

// Vertices returns the vertices in the order they were added.
func (G *Graph) Vertices() []int {
	return append([]int(nil), G.verts...)
}

// Multiplicity returns the number of edges between u and v.
func (G *Graph) Multiplicity(u, v int) int {
	i, iok := G.index[u]
	j, jok := G.index[v]
	if !iok || !jok {
		return 0
	}
	return G.mult[i][j]
}

// Edges lists each distinct edge once, ordered by vertex order.
func (G *Graph) Edges() []Edge {
	var edges []Edge
	for i := range G.verts {
		for j := i; j < len(G.verts); j++ {
			if m := G.mult[i][j]; m > 0 {
				edges = append(edges, Edge{U: G.verts[i], V: G.verts[j], Mult: m})
			}
		}
	}
	return edges
}

// Valence returns the total multiplicity of the edges at v, a loop counting twice.
func (G *Graph) Valence(v int) int {
	i, exists := G.index[v]
	if !exists {
		return 0
	}
	val := G.mult[i][i]
	for _, m := range G.mult[i] {
		val += m
	}
	return val
}

// OneMinCut finds a maximum flow from source to sink (each edge carrying up to its multiplicity in
// either direction) and returns the minimum cut it determines.
//
// The source side is the set reachable from source in the residual graph, so it is the same for every
// maximum flow.  Flow and Unsaturated depend on which maximum flow Edmonds-Karp settles on.
func (G *Graph) OneMinCut(source, sink int) (Cut, error) {
	s, sok := G.index[source]
	t, tok := G.index[sink]
	if !sok || !tok {
		return Cut{}, ErrVertexNotFound
	}
	if s == t {
		return Cut{}, ErrSameVertex
	}

	N := len(G.verts)
	ids := make([]string, N)
	byID := make(map[string]int, N)
	net, err := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	if err != nil {
		return Cut{}, err
	}
	for i, v := range G.verts {
		ids[i] = strconv.Itoa(v)
		byID[ids[i]] = i
		if err := net.AddVertex(ids[i]); err != nil {
			return Cut{}, err
		}
	}
	for i := 0; i < N; i++ {
		for j := i + 1; j < N; j++ {
			m := G.mult[i][j]
			if m == 0 {
				continue
			}
			if _, err := net.AddEdge(ids[i], ids[j], float64(m)); err != nil {
				return Cut{}, err
			}
			if _, err := net.AddEdge(ids[j], ids[i], float64(m)); err != nil {
				return Cut{}, err
			}
		}
	}

	opts := flow.DefaultOptions()
	opts.Ctx = context.Background()
	maxFlow, residual, err := flow.EdmondsKarp(net, ids[s], ids[t], opts)
	if err != nil {
		return Cut{}, errors.Wrap(err, "max flow")
	}

	resid := make([][]int, N)
	for i := range resid {
		resid[i] = make([]int, N)
	}
	for _, e := range residual.Edges() {
		i, iok := byID[e.From]
		j, jok := byID[e.To]
		if iok && jok && i != j {
			resid[i][j] += int(e.Weight)
		}
	}

	cut := Cut{
		Size: int(maxFlow),
	}
	if cut.Set, err = G.reachable(ids, s, resid); err != nil {
		return Cut{}, err
	}

	// net flow i->j is what the arc i->j gave up
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			m := G.mult[i][j]
			if i == j || m == 0 {
				continue
			}
			f := m - resid[i][j]
			if f > 0 {
				cut.Flow = append(cut.Flow, [2]int{G.verts[i], G.verts[j]})
			}
			if i < j && f < m && f > -m {
				cut.Unsaturated = append(cut.Unsaturated, [2]int{G.verts[i], G.verts[j]})
			}
		}
	}
	return cut, nil
}

// reachable returns the verts reachable from s over arcs with positive residual capacity, ascending.
func (G *Graph) reachable(ids []string, s int, resid [][]int) ([]int, error) {
	N := len(ids)
	arcs, err := core.NewGraph(core.WithDirected(true))
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := arcs.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if resid[i][j] > 0 {
				if _, err := arcs.AddEdge(ids[i], ids[j], 0); err != nil {
					return nil, err
				}
			}
		}
	}

	res, err := bfs.BFS(arcs, ids[s])
	if err != nil {
		return nil, errors.Wrap(err, "residual search")
	}
	set := make([]int, 0, len(res.Order))
	for _, id := range res.Order {
		v, err := strconv.Atoi(id)
		if err != nil {
			return nil, err
		}
		set = append(set, v)
	}
	sort.Ints(set)
	return set, nil
}
