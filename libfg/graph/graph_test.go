package graph

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValenceAndEdges(t *testing.T) {
	G := NewGraph()
	G.AddEdge(1, 2)
	G.AddEdge(2, 1)
	G.AddEdge(2, 3)
	G.AddVertex(-1)

	assert.Equal(t, 2, G.Multiplicity(1, 2))
	assert.Equal(t, 2, G.Multiplicity(2, 1))
	assert.Equal(t, 3, G.Valence(2))
	assert.Equal(t, 0, G.Valence(-1))
	assert.Equal(t, 0, G.Valence(99))
	assert.Equal(t, []int{1, 2, 3, -1}, G.Vertices())
	assert.Equal(t, 4, G.NumVertices())
	assert.Equal(t, []Edge{{1, 2, 2}, {2, 3, 1}}, G.Edges())

	G.AddEdge(3, 3)
	assert.Equal(t, 3, G.Valence(3))
}

func TestOneMinCutPath(t *testing.T) {
	G := NewGraph()
	G.AddEdge(1, 2)
	G.AddEdge(1, 2)
	G.AddEdge(2, 3)

	cut, err := G.OneMinCut(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, cut.Size)
	assert.Equal(t, []int{1, 2}, cut.Set)
	assert.True(t, cut.Contains(2))
	assert.False(t, cut.Contains(3))
	assert.Equal(t, [][2]int{{1, 2}}, cut.Unsaturated)
	assert.Equal(t, [][2]int{{1, 2}, {2, 3}}, cut.Flow)
}

func TestOneMinCutParallelRoutes(t *testing.T) {
	G := NewGraph()
	G.AddEdge(1, 2)
	G.AddEdge(2, 4)
	G.AddEdge(1, 3)
	G.AddEdge(3, 4)

	cut, err := G.OneMinCut(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, cut.Size)
	assert.Equal(t, []int{1}, cut.Set)
	assert.Empty(t, cut.Unsaturated)
	assert.Equal(t, [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, cut.Flow)
}

// The max flow equals the min cut size on a denser multigraph, and every crossing edge is saturated outward.
func TestOneMinCutFlowConservation(t *testing.T) {
	G := NewGraph()
	for _, e := range [][2]int{
		{1, -1}, {1, 2}, {1, 2}, {1, -2}, {2, -1}, {-2, -1}, {-2, -1}, {2, -2}, {1, 3}, {3, -1}, {3, -3}, {-3, 2},
	} {
		G.AddEdge(e[0], e[1])
	}

	cut, err := G.OneMinCut(1, -1)
	require.NoError(t, err)
	assert.Equal(t, G.Valence(1), cut.Size)

	for _, e := range cut.Flow {
		require.Positive(t, G.Multiplicity(e[0], e[1]))
		if cut.Contains(e[0]) != cut.Contains(e[1]) {
			assert.True(t, cut.Contains(e[0]), "flow %v enters the source side", e)
		}
	}
	for _, e := range cut.Unsaturated {
		assert.Equal(t, cut.Contains(e[0]), cut.Contains(e[1]), "crossing edge %v is unsaturated", e)
	}

	// crossing multiplicity of the returned set equals the cut size
	crossing := 0
	for _, e := range G.Edges() {
		if cut.Contains(e.U) != cut.Contains(e.V) {
			crossing += e.Mult
		}
	}
	assert.Equal(t, cut.Size, crossing)
}

func TestOneMinCutErrors(t *testing.T) {
	G := NewGraph()
	G.AddEdge(1, 2)

	_, err := G.OneMinCut(1, 7)
	assert.ErrorIs(t, err, ErrVertexNotFound)
	_, err = G.OneMinCut(2, 2)
	assert.ErrorIs(t, err, ErrSameVertex)

	// disconnected: empty flow
	G.AddVertex(5)
	cut, err := G.OneMinCut(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, cut.Size)
	assert.Equal(t, []int{1, 2}, cut.Set)
	assert.Empty(t, cut.Flow)
}

func sampleDigraph() *Digraph {
	D := NewDigraph()
	D.AddEdge(1, 2)
	D.AddEdge(2, 1)
	D.AddEdge(2, 3)
	D.AddEdge(2, 3)
	D.AddEdge(3, 4)
	D.AddEdge(4, 3)
	D.AddEdge(5, 3)
	return D
}

func TestComponentDAG(t *testing.T) {
	D := sampleDigraph()
	assert.Equal(t, 5, D.NumVertices())
	dag := D.ComponentDAG()
	require.Equal(t, 3, dag.Len())

	A, B, C := dag.ComponentOf[1], dag.ComponentOf[5], dag.ComponentOf[3]
	assert.Equal(t, A, dag.ComponentOf[2])
	assert.Equal(t, C, dag.ComponentOf[4])
	assert.Equal(t, []int{1, 2}, dag.Components[A])
	assert.Equal(t, []int{3, 4}, dag.Components[C])
	assert.Equal(t, []int{5}, dag.Components[B])

	preds := append([]int(nil), dag.Pred[C]...)
	sort.Ints(preds)
	expect := []int{A, B}
	sort.Ints(expect)
	assert.Equal(t, expect, preds)
	assert.Empty(t, dag.Succ[C])

	for a, heads := range dag.Succ {
		for _, b := range heads {
			assert.Less(t, a, b, "components must be in topological order")
		}
	}
}

func TestComponentDAGLongCycle(t *testing.T) {
	D := NewDigraph()
	for i := 1; i <= 50; i++ {
		D.AddEdge(i, i%50+1)
	}
	D.AddEdge(50, 51)
	dag := D.ComponentDAG()
	require.Equal(t, 2, dag.Len())
	assert.Len(t, dag.Components[0], 50)
	assert.Equal(t, []int{51}, dag.Components[1])
}

func TestClosedSubsets(t *testing.T) {
	dag := sampleDigraph().ComponentDAG()
	P := NewPoset(dag)
	require.Equal(t, 3, P.Len())

	var found []string
	P.ClosedSubsets(func(subset []int) bool {
		verts := P.Union(subset)
		sort.Ints(verts)
		strs := make([]string, len(verts))
		for i, v := range verts {
			strs[i] = string(rune('0' + v))
		}
		found = append(found, strings.Join(strs, ""))
		return true
	})

	sort.Strings(found)
	assert.Equal(t, []string{"", "12", "12345", "125", "5"}, found)
}

func TestClosedSubsetsChainAndStop(t *testing.T) {
	D := NewDigraph()
	D.AddEdge(1, 2)
	D.AddEdge(2, 3)
	D.AddEdge(3, 4)
	P := NewPoset(D.ComponentDAG())

	count := 0
	P.ClosedSubsets(func(subset []int) bool {
		count++
		return true
	})
	assert.Equal(t, 5, count)

	count = 0
	P.ClosedSubsets(func(subset []int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestWriteDOT(t *testing.T) {
	G := NewGraph()
	G.AddEdge(1, -2)
	G.AddEdge(1, -2)

	buf := strings.Builder{}
	require.NoError(t, G.WriteDOT(&buf, "wh", nil))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, `graph "wh" {`))
	assert.Contains(t, dot, `n1 [label="-2"];`)
	assert.Equal(t, 2, strings.Count(dot, "n0 -- n1;"))
}
