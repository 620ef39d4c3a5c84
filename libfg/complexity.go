package libfg

// Complexity ranks a cyclic word relative to a generator ordering.
// A longer Complexity is smaller, and Complexities of equal length compare lexicographically.
// The empty Complexity is therefore the greatest and serves as the initial "worst" value.
type Complexity []int

// CompareComplexity returns a negative value if a < b, 0 if a == b, and a positive value if a > b.
func CompareComplexity(a, b Complexity) int {
	if d := len(b) - len(a); d != 0 {
		return d
	}
	for i, ai := range a {
		if d := ai - b[i]; d != 0 {
			return d
		}
	}
	return 0
}

func (c Complexity) Less(other Complexity) bool {
	return CompareComplexity(c, other) < 0
}

func (c Complexity) Equal(other Complexity) bool {
	return CompareComplexity(c, other) == 0
}
