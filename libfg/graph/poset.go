package graph

// Poset is the reachability order of a DAG: a <= b when b can be reached from a.
type Poset struct {
	dag *DAG
}

func NewPoset(dag *DAG) *Poset {
	return &Poset{
		dag: dag,
	}
}

// Len returns the number of elements (DAG components).
func (P *Poset) Len() int {
	return P.dag.Len()
}

// Elements returns the underlying vertices of the given element.
func (P *Poset) Elements(elem int) []int {
	return P.dag.Components[elem]
}

// Union returns the underlying vertices of all the given elements.
func (P *Poset) Union(subset []int) []int {
	var verts []int
	for _, elem := range subset {
		verts = append(verts, P.dag.Components[elem]...)
	}
	return verts
}

// ClosedSubsets calls onSubset with every closed subset (down-set) of P, the empty set included.
// A subset is closed when it contains every predecessor of each of its elements.
// Each subset lists element indexes ascending and is only valid during the call.
// Enumeration stops early if onSubset returns false.
func (P *Poset) ClosedSubsets(onSubset func(subset []int) bool) {
	N := P.dag.Len()
	in := make([]bool, N)
	subset := make([]int, 0, N)

	// Elements are decided in topological order, so every predecessor of elem is decided already.
	var visit func(elem int) bool
	visit = func(elem int) bool {
		if elem == N {
			return onSubset(subset)
		}

		if !visit(elem + 1) {
			return false
		}

		for _, pred := range P.dag.Pred[elem] {
			if !in[pred] {
				return true
			}
		}
		in[elem] = true
		subset = append(subset, elem)
		more := visit(elem + 1)
		subset = subset[:len(subset)-1]
		in[elem] = false
		return more
	}

	visit(0)
}
