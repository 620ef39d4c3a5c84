package graph

import (
	"sort"
)

// Digraph is a directed graph on signed integer vertices without parallel edges.
type Digraph struct {
	verts []int
	index map[int]int
	succ  [][]int // succ[i] lists the indexes of the heads of edges leaving verts[i], ascending
}

func NewDigraph() *Digraph {
	return &Digraph{
		index: make(map[int]int),
	}
}

func (D *Digraph) addVertex(v int) int {
	i, exists := D.index[v]
	if !exists {
		i = len(D.verts)
		D.index[v] = i
		D.verts = append(D.verts, v)
		D.succ = append(D.succ, nil)
	}
	return i
}

// AddEdge adds the edge u -> v, adding either vertex if needed.  Repeated edges are ignored.
func (D *Digraph) AddEdge(u, v int) {
	i := D.addVertex(u)
	j := D.addVertex(v)
	heads := D.succ[i]
	k := sort.SearchInts(heads, j)
	if k < len(heads) && heads[k] == j {
		return
	}
	heads = append(heads, 0)
	copy(heads[k+1:], heads[k:])
	heads[k] = j
	D.succ[i] = heads
}

func (D *Digraph) HasVertex(v int) bool {
	_, exists := D.index[v]
	return exists
}

func (D *Digraph) NumVertices() int {
	return len(D.verts)
}

// DAG is the acyclic graph of the strongly connected components of a Digraph.
// Components are listed in topological order: every edge runs from a lower to a higher component index.
type DAG struct {
	Components  [][]int     // vertices of each component, ascending
	Succ        [][]int     // component indexes reachable by one edge, ascending
	Pred        [][]int     // component indexes reaching by one edge, ascending
	ComponentOf map[int]int // vertex -> component index
}

func (dag *DAG) Len() int {
	return len(dag.Components)
}

// ComponentDAG collapses each strongly connected component of D into a single node (Tarjan).
func (D *Digraph) ComponentDAG() *DAG {
	N := len(D.verts)
	index := make([]int, N)
	lowLink := make([]int, N)
	onStack := make([]bool, N)
	for i := range index {
		index[i] = -1
	}
	var sccStack []int
	var sccs [][]int
	counter := 0

	type callFrame struct {
		vtx     int
		edgeIdx int
		child   int // -1 unless returning from child
	}

	for root := 0; root < N; root++ {
		if index[root] >= 0 {
			continue
		}
		index[root], lowLink[root] = counter, counter
		counter++
		sccStack = append(sccStack, root)
		onStack[root] = true
		callStack := []callFrame{{vtx: root, child: -1}}

		for len(callStack) > 0 {
			frame := &callStack[len(callStack)-1]
			i := frame.vtx
			if frame.child >= 0 {
				if lowLink[frame.child] < lowLink[i] {
					lowLink[i] = lowLink[frame.child]
				}
				frame.child = -1
			}

			descended := false
			for frame.edgeIdx < len(D.succ[i]) {
				j := D.succ[i][frame.edgeIdx]
				frame.edgeIdx++
				if index[j] < 0 {
					index[j], lowLink[j] = counter, counter
					counter++
					sccStack = append(sccStack, j)
					onStack[j] = true
					frame.child = j
					callStack = append(callStack, callFrame{vtx: j, child: -1})
					descended = true
					break
				} else if onStack[j] && index[j] < lowLink[i] {
					lowLink[i] = index[j]
				}
			}
			if descended {
				continue
			}

			if lowLink[i] == index[i] {
				var scc []int
				for {
					w := sccStack[len(sccStack)-1]
					sccStack = sccStack[:len(sccStack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == i {
						break
					}
				}
				sccs = append(sccs, scc)
			}
			callStack = callStack[:len(callStack)-1]
		}
	}

	// Tarjan completes a component only after every component it reaches, so reversing gives topological order.
	numComp := len(sccs)
	compOf := make([]int, N)
	dag := &DAG{
		Components:  make([][]int, numComp),
		Succ:        make([][]int, numComp),
		Pred:        make([][]int, numComp),
		ComponentOf: make(map[int]int, N),
	}
	for k, scc := range sccs {
		c := numComp - 1 - k
		verts := make([]int, len(scc))
		for n, i := range scc {
			compOf[i] = c
			verts[n] = D.verts[i]
			dag.ComponentOf[D.verts[i]] = c
		}
		sort.Ints(verts)
		dag.Components[c] = verts
	}

	linked := make(map[[2]int]struct{})
	for i, heads := range D.succ {
		for _, j := range heads {
			a, b := compOf[i], compOf[j]
			if a == b {
				continue
			}
			if _, dupe := linked[[2]int{a, b}]; dupe {
				continue
			}
			linked[[2]int{a, b}] = struct{}{}
			dag.Succ[a] = append(dag.Succ[a], b)
			dag.Pred[b] = append(dag.Pred[b], a)
		}
	}
	for c := 0; c < numComp; c++ {
		sort.Ints(dag.Succ[c])
		sort.Ints(dag.Pred[c])
	}
	return dag
}
